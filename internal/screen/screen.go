package screen

import (
	"context"
	"math/rand/v2"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/matteflyt/internal/catalog"
	"github.com/abhisek/matteflyt/internal/diploma"
	"github.com/abhisek/matteflyt/internal/logger"
	"github.com/abhisek/matteflyt/internal/mastery"
	"github.com/abhisek/matteflyt/internal/problemgen"
	"github.com/abhisek/matteflyt/internal/progress"
	"github.com/abhisek/matteflyt/internal/store"
	"github.com/abhisek/matteflyt/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Resumer is an optional interface for screens that refresh their state
// when they become active again after the screen above them is popped.
type Resumer interface {
	Resume() tea.Cmd
}

// Deps holds the collaborators shared by all screens. Events and Diplomas
// may be nil.
type Deps struct {
	Catalog  *catalog.Catalog
	Progress *progress.Store
	Events   store.EventRepo
	Diplomas diploma.Submitter
	Rand     *rand.Rand
	Prompts  problemgen.Prompts
	Log      *logger.Logger
}

// Gate evaluates the mastery gate over the current progress.
func (d Deps) Gate(ctx context.Context) *mastery.Gate {
	return mastery.NewGate(d.Catalog, d.Progress.All(ctx))
}
