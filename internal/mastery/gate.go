// Package mastery decides which levels are open and whether the whole chain
// is complete.
package mastery

import (
	"github.com/abhisek/matteflyt/internal/catalog"
	"github.com/abhisek/matteflyt/internal/progress"
)

// Unlock requirements for the level after a completed one.
const (
	UnlockAccuracy   = 90
	UnlockMaxAvgTime = 5.0
)

// Gate answers unlock and completion questions over a progress snapshot.
// It never mutates the snapshot.
type Gate struct {
	cat  *catalog.Catalog
	snap map[int]progress.LevelProgress
}

// NewGate returns a gate over cat and a snapshot from progress.Store.All.
func NewGate(cat *catalog.Catalog, snap map[int]progress.LevelProgress) *Gate {
	if snap == nil {
		snap = map[int]progress.LevelProgress{}
	}
	return &Gate{cat: cat, snap: snap}
}

// IsUnlocked reports whether level id can be played. The root level and
// levels marked alwaysUnlocked are open; any other level needs a record for
// the previous level with at least UnlockAccuracy and an average time under
// UnlockMaxAvgTime. Records without an average time keep the next level
// locked. Ids outside the catalog are locked.
func (g *Gate) IsUnlocked(id int) bool {
	level, ok := g.cat.Get(id)
	if !ok {
		return false
	}
	if id == g.cat.First() || level.AlwaysUnlocked {
		return true
	}
	prev, ok := g.cat.Previous(id)
	if !ok {
		return false
	}
	p, ok := g.snap[prev.ID]
	if !ok || p.AvgTime == nil {
		return false
	}
	return p.Accuracy >= UnlockAccuracy && *p.AvgTime < UnlockMaxAvgTime
}

// IsPassed reports whether level id has a record meeting its passing score.
func (g *Gate) IsPassed(id int) bool {
	level, ok := g.cat.Get(id)
	if !ok {
		return false
	}
	p, ok := g.snap[id]
	return ok && p.Accuracy >= level.PassingScore
}

// IsAllComplete reports whether every level in the catalog has been passed.
func (g *Gate) IsAllComplete() bool {
	for _, id := range g.cat.IDs() {
		if !g.IsPassed(id) {
			return false
		}
	}
	return true
}

// State resolves the display state for level id.
func (g *Gate) State(id int) LevelState {
	if !g.IsUnlocked(id) {
		return StateLocked
	}
	if g.IsPassed(id) {
		return StatePassed
	}
	if _, ok := g.snap[id]; ok {
		return StatePlaying
	}
	return StateAvailable
}

// NextPlayable returns the first unlocked level that has not been passed.
// Returns false when every unlocked level is passed.
func (g *Gate) NextPlayable() (catalog.Level, bool) {
	for _, l := range g.cat.Levels() {
		if g.IsUnlocked(l.ID) && !g.IsPassed(l.ID) {
			return l, true
		}
	}
	return catalog.Level{}, false
}

// Progress returns the stored record for level id.
func (g *Gate) Progress(id int) (progress.LevelProgress, bool) {
	p, ok := g.snap[id]
	return p, ok
}

// TotalStars sums the stars over all catalog levels.
func (g *Gate) TotalStars() int {
	total := 0
	for _, id := range g.cat.IDs() {
		total += g.snap[id].Stars
	}
	return total
}

// MaxStars is the star total of a perfect run.
func (g *Gate) MaxStars() int {
	return 3 * g.cat.Len()
}

// UnlockedCount returns how many levels are open.
func (g *Gate) UnlockedCount() int {
	n := 0
	for _, id := range g.cat.IDs() {
		if g.IsUnlocked(id) {
			n++
		}
	}
	return n
}
