// Package home is the start screen.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/matteflyt/internal/router"
	"github.com/abhisek/matteflyt/internal/screen"
	"github.com/abhisek/matteflyt/internal/screens/diploma"
	"github.com/abhisek/matteflyt/internal/screens/levels"
	"github.com/abhisek/matteflyt/internal/screens/play"
	"github.com/abhisek/matteflyt/internal/ui/components"
	"github.com/abhisek/matteflyt/internal/ui/layout"
	"github.com/abhisek/matteflyt/internal/ui/theme"
)

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	deps   screen.Deps
	menu   components.Menu
	mascot MascotVariant

	stars, maxStars int
	unlocked, total int
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps screen.Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}
	h.refresh()
	return h
}

// refresh rebuilds the menu and stats from the stored progress.
func (h *HomeScreen) refresh() {
	gate := h.deps.Gate(context.Background())
	h.stars, h.maxStars = gate.TotalStars(), gate.MaxStars()
	h.unlocked, h.total = gate.UnlockedCount(), h.deps.Catalog.Len()

	complete := gate.IsAllComplete()
	h.mascot = MascotIdle
	if complete {
		h.mascot = MascotCelebrating
	}

	deps := h.deps
	playItem := components.MenuItem{Label: "Alle nivåer er bestått", Disabled: true}
	if next, ok := gate.NextPlayable(); ok {
		playItem = components.MenuItem{
			Label:  "Spill neste: " + next.Name,
			Action: func() tea.Cmd { return router.Push(play.New(deps, next)) },
		}
	}

	diplomaItem := components.MenuItem{
		Label:    "Diplom",
		Disabled: !complete,
		Action:   func() tea.Cmd { return router.Push(diploma.New(deps)) },
	}
	if !complete {
		diplomaItem.Note = "(fullfør alle nivåene)"
	}

	h.menu = components.NewMenu([]components.MenuItem{
		playItem,
		{Label: "Nivåer", Action: func() tea.Cmd { return router.Push(levels.New(deps)) }},
		diplomaItem,
		{Label: "Avslutt", Action: func() tea.Cmd { return tea.Quit }},
	})
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Resume reloads progress when a pushed screen is closed.
func (h *HomeScreen) Resume() tea.Cmd {
	h.refresh()
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, theme.Title.Render(layout.AppName))
	sections = append(sections, theme.Subtitle.Render("Regn raskt, samle stjerner"))
	if !layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight) {
		sections = append(sections, RenderMascot(h.mascot))
	}

	stats := theme.StarOn.Render("★") +
		lipgloss.NewStyle().Foreground(theme.Text).Render(fmt.Sprintf(" %d/%d", h.stars, h.maxStars)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("   %d av %d nivåer åpne", h.unlocked, h.total))
	sections = append(sections, stats)

	sections = append(sections, theme.Card.Render(strings.TrimRight(h.menu.View(), "\n")))

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Hjem"
}
