package play

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
	"github.com/abhisek/matteflyt/internal/session"
	"github.com/abhisek/matteflyt/internal/ui/components"
	"github.com/abhisek/matteflyt/internal/ui/layout"
	"github.com/abhisek/matteflyt/internal/ui/theme"
)

// maxReviewLines caps the mistake list on small terminals.
const maxReviewLines = 8

// ResultScreen shows the score of a finished session.
type ResultScreen struct {
	deps   screen.Deps
	level  catalog.Level
	result session.Result

	next         catalog.Level
	nextUnlocked bool
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// NewResult creates the result screen for a completed session on level.
func NewResult(deps screen.Deps, level catalog.Level, result session.Result) *ResultScreen {
	r := &ResultScreen{deps: deps, level: level, result: result}
	if next, ok := deps.Catalog.Get(level.ID + 1); ok {
		r.next = next
		r.nextUnlocked = deps.Gate(context.Background()).IsUnlocked(next.ID)
	}
	return r
}

func (r *ResultScreen) Init() tea.Cmd {
	return nil
}

func (r *ResultScreen) Title() string {
	return "Resultat"
}

func (r *ResultScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Tilbake"},
		{Key: "R", Description: "Spill igjen"},
	}
	if r.nextUnlocked {
		hints = append(hints, layout.KeyHint{Key: "N", Description: "Neste nivå"})
	}
	return hints
}

func (r *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}
	switch kmsg.String() {
	case "enter", "esc":
		return r, router.Pop
	case "r", "R":
		return r, router.Replace(New(r.deps, r.level))
	case "n", "N":
		if r.nextUnlocked {
			return r, router.Replace(New(r.deps, r.next))
		}
	}
	return r, nil
}

func (r *ResultScreen) View(width, height int) string {
	res := r.result
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(layout.Centered(theme.Title.Render(fmt.Sprintf("Nivå %d: %s", r.level.ID, r.level.Name)), width))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(components.Stars(res.Stars), width))
	b.WriteString("\n\n")

	stats := []string{
		fmt.Sprintf("Riktige svar:    %d av %d", res.Correct, res.Total),
		fmt.Sprintf("Treffsikkerhet:  %d %%", res.Accuracy),
		fmt.Sprintf("Snittid:         %.1f s", res.AvgTime),
	}
	card := theme.Card.Render(theme.Body.Render(strings.Join(stats, "\n")))
	b.WriteString(layout.Centered(card, width))
	b.WriteString("\n\n")

	b.WriteString(layout.Centered(r.renderVerdict(), width))
	b.WriteString("\n")

	if mistakes := res.Mistakes(); len(mistakes) > 0 {
		b.WriteString("\n")
		b.WriteString(layout.Centered(theme.Subtitle.Render("Dette må du øve mer på:"), width))
		b.WriteString("\n")
		b.WriteString(layout.Centered(renderMistakes(mistakes, maxReviewLines), width))
	}
	return b.String()
}

func (r *ResultScreen) renderVerdict() string {
	var lines []string
	if r.result.Passed(r.level) {
		lines = append(lines, theme.Correct.Render("Bestått!"))
	} else {
		lines = append(lines, theme.Incorrect.Render(
			fmt.Sprintf("Ikke bestått ennå. Du trenger %d %%.", r.level.PassingScore)))
	}
	if r.nextUnlocked {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Secondary).Render(
			"Neste nivå er åpent: "+r.next.Name))
	} else if r.next.Name != "" {
		lines = append(lines, theme.Hint.Render(fmt.Sprintf(
			"Få minst %d %% og under %.0f s i snitt for å åpne neste nivå.",
			mastery.UnlockAccuracy, mastery.UnlockMaxAvgTime)))
	}
	return strings.Join(lines, "\n")
}

func renderMistakes(mistakes []session.Answer, limit int) string {
	var lines []string
	for i, m := range mistakes {
		if i == limit {
			lines = append(lines, theme.Hint.Render(fmt.Sprintf("... og %d til", len(mistakes)-limit)))
			break
		}
		lines = append(lines, fmt.Sprintf("%s   %s   %s",
			theme.Body.Render(m.Question.ReviewText()),
			theme.Correct.Render("→ "+m.Question.CorrectText()),
			theme.Hint.Render(fmt.Sprintf("(du svarte %d)", m.Given)),
		))
	}
	return strings.Join(lines, "\n")
}
