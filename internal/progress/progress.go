// Package progress keeps each level's best result in a single named slot.
package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"sync"

	"github.com/abhisek/matteflyt/internal/logger"
)

// SlotName is the fixed slot the progress mapping is stored under.
const SlotName = "math-dash-progress"

// Star thresholds.
const (
	ThreeStarAccuracy = 90
	ThreeStarAvgTime  = 5.0
	TwoStarAccuracy   = 80
	OneStarAccuracy   = 60
)

// LevelProgress is the best recorded result for one level.
type LevelProgress struct {
	Accuracy int `json:"accuracy"`
	// AvgTime is nil for legacy records written before speed was tracked.
	AvgTime  *float64 `json:"avgTime,omitempty"`
	Stars    int      `json:"stars"`
	Unlocked bool     `json:"unlocked"`
}

// HasSpeed reports whether the record carries an average time.
func (p LevelProgress) HasSpeed() bool {
	return p.AvgTime != nil
}

// Stars rates a session from 0 to 3.
func Stars(accuracy int, avgTime float64) int {
	switch {
	case accuracy >= ThreeStarAccuracy && avgTime < ThreeStarAvgTime:
		return 3
	case accuracy >= TwoStarAccuracy:
		return 2
	case accuracy >= OneStarAccuracy:
		return 1
	default:
		return 0
	}
}

// better reports whether (stars, accuracy) strictly beats cur.
func better(stars, accuracy int, cur LevelProgress) bool {
	if stars != cur.Stars {
		return stars > cur.Stars
	}
	return accuracy > cur.Accuracy
}

// SlotRepo is a named durable byte store. Get returns nil data and no error
// for a slot that was never written.
type SlotRepo interface {
	Get(ctx context.Context, name string) ([]byte, error)
	Put(ctx context.Context, name string, data []byte) error
	Delete(ctx context.Context, name string) error
}

// Store records and reads level progress. Writes are last-writer-wins.
type Store struct {
	repo SlotRepo
	log  *logger.Logger
	mu   sync.Mutex
}

// NewStore returns a progress store over repo.
func NewStore(repo SlotRepo, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{repo: repo, log: log}
}

// RecordResult stores a completed session's result for levelID when it beats
// the existing record, or when there is none. Write failures are logged and
// otherwise ignored so a broken slot never interrupts play.
func (s *Store) RecordResult(ctx context.Context, levelID, accuracy int, avgTime float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.load(ctx)
	stars := Stars(accuracy, avgTime)
	if cur, ok := all[levelID]; ok && !better(stars, accuracy, cur) {
		s.log.Debug("result not better than stored record",
			"level", levelID, "stars", stars, "accuracy", accuracy,
			"stored_stars", cur.Stars, "stored_accuracy", cur.Accuracy)
		return
	}

	avg := avgTime
	all[levelID] = LevelProgress{
		Accuracy: accuracy,
		AvgTime:  &avg,
		Stars:    stars,
		Unlocked: true,
	}
	if err := s.save(ctx, all); err != nil {
		s.log.Warn("progress write failed", "level", levelID, "error", err)
		return
	}
	s.log.Info("progress recorded", "level", levelID, "stars", stars, "accuracy", accuracy, "avg_time", avgTime)
}

// All returns a copy of every stored record keyed by level id. Missing or
// unreadable data yields an empty map.
func (s *Store) All(ctx context.Context) map[int]LevelProgress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.load(ctx))
}

// Reset clears all progress.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.Delete(ctx, SlotName); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	return nil
}

func (s *Store) load(ctx context.Context) map[int]LevelProgress {
	data, err := s.repo.Get(ctx, SlotName)
	if err != nil {
		s.log.Warn("progress read failed", "error", err)
		return map[int]LevelProgress{}
	}
	if len(data) == 0 {
		return map[int]LevelProgress{}
	}
	var all map[int]LevelProgress
	if err := json.Unmarshal(data, &all); err != nil {
		s.log.Warn("progress data unreadable, starting fresh", "error", err)
		return map[int]LevelProgress{}
	}
	if all == nil {
		all = map[int]LevelProgress{}
	}
	return all
}

func (s *Store) save(ctx context.Context, all map[int]LevelProgress) error {
	data, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	return s.repo.Put(ctx, SlotName, data)
}

// MemorySlots is an in-memory SlotRepo.
type MemorySlots struct {
	mu    sync.Mutex
	slots map[string][]byte
}

// NewMemorySlots returns an empty in-memory slot repo.
func NewMemorySlots() *MemorySlots {
	return &MemorySlots{slots: make(map[string][]byte)}
}

func (m *MemorySlots) Get(_ context.Context, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.slots[name]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *MemorySlots) Put(_ context.Context, name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	m.slots[name] = buf
	return nil
}

func (m *MemorySlots) Delete(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, name)
	return nil
}
