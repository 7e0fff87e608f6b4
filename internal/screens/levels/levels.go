// Package levels lists the level chain with its locks and stars.
package levels

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/matteflyt/internal/catalog"
	"github.com/abhisek/matteflyt/internal/mastery"
	"github.com/abhisek/matteflyt/internal/router"
	"github.com/abhisek/matteflyt/internal/screen"
	"github.com/abhisek/matteflyt/internal/screens/diploma"
	"github.com/abhisek/matteflyt/internal/screens/play"
	"github.com/abhisek/matteflyt/internal/ui/components"
	"github.com/abhisek/matteflyt/internal/ui/layout"
	"github.com/abhisek/matteflyt/internal/ui/theme"
)

// LevelsScreen displays every level in catalog order.
type LevelsScreen struct {
	deps         screen.Deps
	levels       []catalog.Level
	gate         *mastery.Gate
	cursor       int
	scrollOffset int
	notice       string
}

var _ screen.Screen = (*LevelsScreen)(nil)
var _ screen.KeyHintProvider = (*LevelsScreen)(nil)
var _ screen.Resumer = (*LevelsScreen)(nil)

// New creates the level list with the cursor on the next playable level.
func New(deps screen.Deps) *LevelsScreen {
	s := &LevelsScreen{
		deps:   deps,
		levels: deps.Catalog.Levels(),
	}
	s.refresh()
	if next, ok := s.gate.NextPlayable(); ok {
		s.cursor = s.indexOf(next.ID)
	}
	return s
}

func (s *LevelsScreen) refresh() {
	s.gate = s.deps.Gate(context.Background())
}

func (s *LevelsScreen) indexOf(id int) int {
	for i, l := range s.levels {
		if l.ID == id {
			return i
		}
	}
	return 0
}

func (s *LevelsScreen) Init() tea.Cmd {
	return nil
}

// Resume reloads progress after a play session or the diploma screen.
func (s *LevelsScreen) Resume() tea.Cmd {
	s.refresh()
	s.notice = ""
	return nil
}

func (s *LevelsScreen) Title() string {
	return "Nivåer"
}

func (s *LevelsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Velg"},
		{Key: "Enter", Description: "Spill"},
	}
	if s.gate.IsAllComplete() {
		hints = append(hints, layout.KeyHint{Key: "D", Description: "Diplom"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Tilbake"})
}

func (s *LevelsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "up", "k":
		s.moveCursor(-1)
	case "down", "j":
		s.moveCursor(1)
	case "home":
		s.cursor = 0
	case "end":
		s.cursor = len(s.levels) - 1
	case "enter":
		return s, s.selectLevel()
	case "d", "D":
		if s.gate.IsAllComplete() {
			return s, router.Push(diploma.New(s.deps))
		}
		s.notice = "Diplomet åpnes når alle nivåene er bestått."
	case "q":
		return s, router.Pop
	}
	return s, nil
}

func (s *LevelsScreen) moveCursor(delta int) {
	s.notice = ""
	s.cursor = min(max(s.cursor+delta, 0), len(s.levels)-1)
}

func (s *LevelsScreen) selectLevel() tea.Cmd {
	if len(s.levels) == 0 {
		return nil
	}
	l := s.levels[s.cursor]
	if !s.gate.IsUnlocked(l.ID) {
		s.notice = fmt.Sprintf("Låst. Få minst %d %% og under %.0f s i snitt på nivået før.",
			mastery.UnlockAccuracy, mastery.UnlockMaxAvgTime)
		return nil
	}
	return router.Push(play.New(s.deps, l))
}

// adjustScroll keeps the cursor within the viewport.
func (s *LevelsScreen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	if s.cursor < s.scrollOffset {
		s.scrollOffset = s.cursor
	}
	if s.cursor >= s.scrollOffset+height {
		s.scrollOffset = s.cursor - height + 1
	}
}

func (s *LevelsScreen) View(width, height int) string {
	var b strings.Builder
	summary := fmt.Sprintf("%s %d/%d   %d av %d nivåer åpne",
		theme.StarOn.Render("★"), s.gate.TotalStars(), s.gate.MaxStars(),
		s.gate.UnlockedCount(), len(s.levels))
	b.WriteString(layout.Centered(summary, width))
	b.WriteString("\n\n")

	// Two lines above for the summary, two below for the notice.
	rows := max(height-4, 1)
	s.adjustScroll(rows)

	var lines []string
	for i := s.scrollOffset; i < len(s.levels) && len(lines) < rows; i++ {
		lines = append(lines, s.renderRow(s.levels[i], i == s.cursor, width))
	}
	b.WriteString(strings.Join(lines, "\n"))

	if s.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(layout.Centered(theme.Hint.Render(s.notice), width))
	}
	return b.String()
}

func (s *LevelsScreen) renderRow(l catalog.Level, selected bool, width int) string {
	state := s.gate.State(l.ID)

	stars := components.Stars(0)
	best := ""
	if p, ok := s.gate.Progress(l.ID); ok {
		stars = components.Stars(p.Stars)
		best = fmt.Sprintf("%3d %%", p.Accuracy)
		if p.AvgTime != nil {
			best += fmt.Sprintf("  %4.1f s", *p.AvgTime)
		}
	}

	nameWidth := max(width-40, 12)
	name := l.Name
	if len([]rune(name)) > nameWidth {
		name = string([]rune(name)[:nameWidth-1]) + "…"
	}

	var nameStyle lipgloss.Style
	switch {
	case selected:
		nameStyle = theme.Selected
	case state == mastery.StateLocked:
		nameStyle = theme.Locked
	default:
		nameStyle = theme.Unselected
	}

	cursor := "  "
	if selected {
		cursor = theme.Selected.Render("▸ ")
	}

	return fmt.Sprintf("  %s%s %s %s  %s  %s",
		cursor,
		state.Icon(),
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("%2d", l.ID)),
		nameStyle.Width(nameWidth).Render(name),
		stars,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(best),
	)
}
