package diploma

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/matteflyt/internal/logger"
	"github.com/abhisek/matteflyt/internal/store"
)

// Service stores diplomas directly in the database. It is the submitter
// used by the server and by the CLI when no server is configured.
type Service struct {
	repo store.DiplomaRepo
	log  *logger.Logger
	now  func() time.Time
}

// NewService returns a Service over repo.
func NewService(repo store.DiplomaRepo, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{repo: repo, log: log, now: time.Now}
}

// Submit validates and stores sub.
func (s *Service) Submit(ctx context.Context, sub Submission) (string, error) {
	if err := sub.Validate(); err != nil {
		return "", err
	}
	id := uuid.New().String()
	err := s.repo.Create(ctx, store.DiplomaData{
		ID:           id,
		StudentName:  strings.TrimSpace(sub.StudentName),
		TotalStars:   sub.TotalStars,
		AvgAccuracy:  sub.AvgAccuracy,
		LevelResults: sub.LevelResults,
		CompletedAt:  s.now(),
	})
	if err != nil {
		return "", fmt.Errorf("store diploma: %w", err)
	}
	s.log.Info("diploma stored", "id", id, "total_stars", sub.TotalStars, "avg_accuracy", sub.AvgAccuracy)
	return id, nil
}

// List returns every stored diploma, newest first.
func (s *Service) List(ctx context.Context) ([]Diploma, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list diplomas: %w", err)
	}
	out := make([]Diploma, len(rows))
	for i, r := range rows {
		out[i] = Diploma{
			ID:           r.ID,
			StudentName:  r.StudentName,
			TotalStars:   r.TotalStars,
			AvgAccuracy:  r.AvgAccuracy,
			CompletedAt:  r.CompletedAt,
			LevelResults: r.LevelResults,
		}
	}
	return out, nil
}
