// Package screentest provides in-memory screen dependencies for tests.
package screentest

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"

	"github.com/abhisek/matteflyt/internal/catalog"
	"github.com/abhisek/matteflyt/internal/diploma"
	"github.com/abhisek/matteflyt/internal/logger"
	"github.com/abhisek/matteflyt/internal/problemgen"
	"github.com/abhisek/matteflyt/internal/progress"
	"github.com/abhisek/matteflyt/internal/screen"
)

// Deps returns screen dependencies over the shipped catalog, an in-memory
// progress slot and a fixed random seed. The submitter is returned so tests
// can inspect or fail submissions.
func Deps() (screen.Deps, *Submitter) {
	sub := &Submitter{ID: "diploma-1"}
	return screen.Deps{
		Catalog:  catalog.Default(),
		Progress: progress.NewStore(progress.NewMemorySlots(), logger.Nop()),
		Diplomas: sub,
		Rand:     rand.New(rand.NewPCG(1, 2)),
		Prompts:  problemgen.PromptsFor(problemgen.DefaultLocale),
		Log:      logger.Nop(),
	}, sub
}

// Master records a perfect, fast result for each id.
func Master(d screen.Deps, ids ...int) {
	for _, id := range ids {
		d.Progress.RecordResult(context.Background(), id, 100, 2.0)
	}
}

// MasterAll records a perfect, fast result for every catalog level.
func MasterAll(d screen.Deps) {
	Master(d, d.Catalog.IDs()...)
}

// ErrSubmit is returned by a failing Submitter.
var ErrSubmit = errors.New("submit failed")

// Submitter is a fake diploma.Submitter.
type Submitter struct {
	mu   sync.Mutex
	ID   string
	Fail bool
	Got  []diploma.Submission
}

func (s *Submitter) Submit(_ context.Context, sub diploma.Submission) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Got = append(s.Got, sub)
	if s.Fail {
		return "", ErrSubmit
	}
	return s.ID, nil
}

// Calls returns the number of submissions received.
func (s *Submitter) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Got)
}
