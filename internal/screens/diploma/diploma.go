// Package diploma is the screen where a learner who finished every level
// enters their name and submits the diploma.
package diploma

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	dipl "github.com/abhisek/matteflyt/internal/diploma"
	"github.com/abhisek/matteflyt/internal/router"
	"github.com/abhisek/matteflyt/internal/screen"
	"github.com/abhisek/matteflyt/internal/ui/components"
	"github.com/abhisek/matteflyt/internal/ui/layout"
	"github.com/abhisek/matteflyt/internal/ui/theme"
)

// SubmitTimeout bounds one submission attempt.
const SubmitTimeout = 15 * time.Second

// NameLimit is the longest accepted student name.
const NameLimit = 40

var errNoSubmitter = errors.New("diploma submission is not configured")

type phase int

const (
	phaseLocked phase = iota
	phaseInput
	phaseSubmitting
	phaseDone
	phaseFailed
)

type submittedMsg struct {
	id  string
	err error
}

// DiplomaScreen implements screen.Screen for diploma submission.
type DiplomaScreen struct {
	deps   screen.Deps
	phase  phase
	input  components.TextInput
	sub    dipl.Submission
	id     string
	errMsg string
}

var _ screen.Screen = (*DiplomaScreen)(nil)
var _ screen.KeyHintProvider = (*DiplomaScreen)(nil)

// New creates the diploma screen. It only accepts a name once every level
// is complete.
func New(deps screen.Deps) *DiplomaScreen {
	d := &DiplomaScreen{
		deps:  deps,
		phase: phaseLocked,
		input: components.NewTextInput("Ditt navn", NameLimit),
	}
	if deps.Gate(context.Background()).IsAllComplete() {
		d.phase = phaseInput
	}
	return d
}

func (d *DiplomaScreen) Init() tea.Cmd {
	if d.phase != phaseInput {
		return nil
	}
	return d.input.Init()
}

func (d *DiplomaScreen) Title() string {
	return "Diplom"
}

func (d *DiplomaScreen) KeyHints() []layout.KeyHint {
	switch d.phase {
	case phaseInput:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Send inn"},
			{Key: "Esc", Description: "Tilbake"},
		}
	case phaseFailed:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Prøv igjen"},
			{Key: "E", Description: "Endre navn"},
			{Key: "Esc", Description: "Tilbake"},
		}
	case phaseSubmitting:
		return nil
	}
	return []layout.KeyHint{{Key: "Enter", Description: "Tilbake"}}
}

func (d *DiplomaScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case submittedMsg:
		return d, d.handleSubmitted(msg)
	case tea.KeyMsg:
		return d, d.handleKey(msg)
	}
	if d.phase == phaseInput {
		var cmd tea.Cmd
		d.input, cmd = d.input.Update(msg)
		return d, cmd
	}
	return d, nil
}

func (d *DiplomaScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	switch d.phase {
	case phaseInput:
		if key == "enter" {
			return d.start()
		}
		var cmd tea.Cmd
		d.input, cmd = d.input.Update(msg)
		return cmd
	case phaseFailed:
		switch key {
		case "enter":
			return d.submit()
		case "e", "E":
			d.phase = phaseInput
			d.errMsg = ""
			return d.input.Init()
		}
	case phaseLocked, phaseDone:
		if key == "enter" {
			return router.Pop
		}
	}
	return nil
}

// start builds the submission from the current progress and sends it.
func (d *DiplomaScreen) start() tea.Cmd {
	name := d.input.Value()
	if name == "" {
		d.errMsg = "Skriv navnet ditt først."
		return nil
	}
	ctx := context.Background()
	sub, err := dipl.Build(name, d.deps.Catalog, d.deps.Progress.All(ctx))
	if err != nil {
		d.errMsg = err.Error()
		return nil
	}
	d.sub = sub
	return d.submit()
}

func (d *DiplomaScreen) submit() tea.Cmd {
	d.phase = phaseSubmitting
	d.errMsg = ""
	submitter, sub := d.deps.Diplomas, d.sub
	return func() tea.Msg {
		if submitter == nil {
			return submittedMsg{err: errNoSubmitter}
		}
		ctx, cancel := context.WithTimeout(context.Background(), SubmitTimeout)
		defer cancel()
		id, err := submitter.Submit(ctx, sub)
		return submittedMsg{id: id, err: err}
	}
}

func (d *DiplomaScreen) handleSubmitted(msg submittedMsg) tea.Cmd {
	if d.phase != phaseSubmitting {
		return nil
	}
	if msg.err != nil {
		d.deps.Log.Warn("diploma submission failed", "error", msg.err)
		d.phase = phaseFailed
		d.errMsg = msg.err.Error()
		return nil
	}
	d.deps.Log.Info("diploma submitted", "id", msg.id, "student", d.sub.StudentName)
	d.phase = phaseDone
	d.id = msg.id
	return nil
}

func (d *DiplomaScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(layout.Centered(theme.Title.Render("🎓 Diplom"), width))
	b.WriteString("\n\n")

	switch d.phase {
	case phaseLocked:
		b.WriteString(layout.Centered(theme.Subtitle.Render(
			"Fullfør alle nivåene for å få diplomet ditt."), width))
	case phaseInput:
		b.WriteString(layout.Centered(theme.Body.Render("Hva heter du?"), width))
		b.WriteString("\n\n")
		b.WriteString(layout.Centered(d.input.View(), width))
	case phaseSubmitting:
		b.WriteString(layout.Centered(theme.Hint.Render("Sender inn..."), width))
	case phaseFailed:
		b.WriteString(layout.Centered(theme.Incorrect.Render("Innsendingen feilet: "+d.errMsg), width))
		b.WriteString("\n")
		b.WriteString(layout.Centered(theme.Hint.Render("Fremgangen din er lagret. Prøv igjen."), width))
	case phaseDone:
		b.WriteString(layout.Centered(d.renderCertificate(), width))
	}

	if d.phase == phaseInput && d.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(layout.Centered(theme.Incorrect.Render(d.errMsg), width))
	}
	return b.String()
}

func (d *DiplomaScreen) renderCertificate() string {
	lines := []string{
		theme.Title.Render("Gratulerer, " + d.sub.StudentName + "!"),
		"",
		theme.Body.Render("Du har fullført alle nivåene i MatteFlyt."),
		fmt.Sprintf("%s  %d stjerner", theme.StarOn.Render("★"), d.sub.TotalStars),
		theme.Body.Render(fmt.Sprintf("Gjennomsnittlig treffsikkerhet: %d %%", d.sub.AvgAccuracy)),
		"",
		theme.Hint.Render("Diplom-ID: " + d.id),
	}
	return theme.Card.Render(strings.Join(lines, "\n"))
}
