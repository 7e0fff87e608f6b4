package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/matteflyt/internal/router"
	"github.com/abhisek/matteflyt/internal/screen"
	"github.com/abhisek/matteflyt/internal/screens/home"
	"github.com/abhisek/matteflyt/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	deps   screen.Deps
	router *router.Router
	width  int
	height int

	stars, maxStars int
}

// newAppModel creates a new AppModel with the given first screen, or the
// home screen when start is nil.
func newAppModel(deps screen.Deps, start screen.Screen) AppModel {
	var root screen.Screen = home.New(deps)
	m := AppModel{
		deps:   deps,
		router: router.New(root),
	}
	if start != nil {
		m.router.Push(start)
	}
	m.refreshStars()
	return m
}

func (m *AppModel) refreshStars() {
	gate := m.deps.Gate(context.Background())
	m.stars, m.maxStars = gate.TotalStars(), gate.MaxStars()
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, router.Pop
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	switch msg.(type) {
	case router.PushScreenMsg, router.PopScreenMsg, router.ReplaceScreenMsg:
		m.refreshStars()
	}
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current terminal size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.stars, m.maxStars, m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Tilbake"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Velg"},
			{Key: "Enter", Description: "Åpne"},
		}
	}
	footerHints = append(footerHints, layout.KeyHint{Key: "Ctrl+C", Description: "Avslutt"})

	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program. A non-nil start screen opens on top of
// the home screen, as for "play --level".
func Run(deps screen.Deps, start screen.Screen) error {
	p := tea.NewProgram(newAppModel(deps, start))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
