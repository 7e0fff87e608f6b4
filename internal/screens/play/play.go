// Package play holds the screens for playing a level and reviewing the
// result.
package play

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/matteflyt/internal/catalog"
	"github.com/abhisek/matteflyt/internal/problemgen"
	"github.com/abhisek/matteflyt/internal/router"
	"github.com/abhisek/matteflyt/internal/screen"
	"github.com/abhisek/matteflyt/internal/session"
	"github.com/abhisek/matteflyt/internal/ui/components"
	"github.com/abhisek/matteflyt/internal/ui/layout"
	"github.com/abhisek/matteflyt/internal/ui/theme"
)

// PlayScreen implements screen.Screen for an active level.
type PlayScreen struct {
	deps   screen.Deps
	level  catalog.Level
	sess   *session.Session
	keypad components.Keypad
	errMsg string

	// done is set once the result screen has been issued.
	done bool
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)

// New starts a fresh session on level.
func New(deps screen.Deps, level catalog.Level) *PlayScreen {
	p := &PlayScreen{
		deps:   deps,
		level:  level,
		keypad: components.NewKeypad(problemgen.MaxAnswerDigits),
	}
	if level.IsTutorial() {
		p.keypad = components.NewKeypad(1)
	}

	sess, err := session.Start(context.Background(), level, deps.Rand, deps.Prompts, sessionOptions(deps)...)
	if err != nil {
		p.errMsg = err.Error()
		return p
	}
	p.sess = sess
	deps.Log.Info("session started", "session", sess.ID(), "level", level.ID)
	return p
}

func sessionOptions(deps screen.Deps) []session.Option {
	var opts []session.Option
	if deps.Progress != nil {
		opts = append(opts, session.WithRecorder(deps.Progress))
	}
	if deps.Events != nil {
		opts = append(opts, session.WithEvents(deps.Events))
	}
	log := deps.Log
	opts = append(opts, session.WithErrorHook(func(err error) {
		log.Warn("event log write failed", "error", err)
	}))
	return opts
}

func (p *PlayScreen) Init() tea.Cmd {
	if p.sess == nil {
		return nil
	}
	return countdownTick(p.sess.ID(), p.sess.Index())
}

func (p *PlayScreen) Title() string {
	return p.level.Name
}

func (p *PlayScreen) KeyHints() []layout.KeyHint {
	if p.sess == nil {
		return []layout.KeyHint{{Key: "any key", Description: "Tilbake"}}
	}
	if p.sess.Feedback() != session.FeedbackNone {
		return []layout.KeyHint{{Key: "Enter", Description: "Neste"}}
	}
	if p.level.IsTutorial() {
		return []layout.KeyHint{
			{Key: "0-9", Description: "Trykk tallet"},
			{Key: "Esc", Description: "Avbryt"},
		}
	}
	return []layout.KeyHint{
		{Key: "0-9", Description: "Skriv svar"},
		{Key: "⌫", Description: "Slett"},
		{Key: "Enter", Description: "Svar"},
		{Key: "Esc", Description: "Avbryt"},
	}
}

func (p *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case feedbackDoneMsg:
		if p.sess == nil || msg.sessionID != p.sess.ID() || msg.index != p.sess.Index() {
			return p, nil
		}
		return p, p.advance()

	case countdownTickMsg:
		if p.sess == nil || msg.sessionID != p.sess.ID() || msg.index != p.sess.Index() ||
			p.sess.Feedback() != session.FeedbackNone || p.sess.State() == session.StateCompleted {
			return p, nil
		}
		return p, countdownTick(msg.sessionID, msg.index)

	case tea.KeyMsg:
		return p, p.handleKey(msg.String())
	}
	return p, nil
}

func (p *PlayScreen) handleKey(key string) tea.Cmd {
	if p.sess == nil {
		return router.Pop
	}

	if p.sess.Feedback() != session.FeedbackNone {
		switch key {
		case "enter", "space":
			return p.advance()
		}
		return nil
	}

	switch key {
	case "enter":
		return p.submit()
	case "backspace":
		p.keypad.Backspace()
		return nil
	}

	if len(key) == 1 && p.keypad.Press(rune(key[0])) && p.level.IsTutorial() {
		return p.submit()
	}
	return nil
}

func (p *PlayScreen) submit() tea.Cmd {
	n, err := problemgen.ParseAnswer(p.keypad.Value())
	if err != nil {
		return nil
	}
	index := p.sess.Index()
	if _, err := p.sess.Submit(context.Background(), n); err != nil {
		if !errors.Is(err, session.ErrFeedbackPending) {
			p.deps.Log.Warn("submit rejected", "session", p.sess.ID(), "error", err)
		}
		return nil
	}
	p.keypad.Clear()
	return feedbackAfter(FeedbackDelay, p.sess.ID(), index)
}

// advance leaves the feedback period: either the next question becomes
// current or the finished session is replaced by its result.
func (p *PlayScreen) advance() tea.Cmd {
	if p.sess.State() == session.StateCompleted {
		if p.done {
			return nil
		}
		p.done = true
		res, _ := p.sess.Result()
		p.deps.Log.Info("session completed",
			"session", p.sess.ID(), "level", p.level.ID,
			"accuracy", res.Accuracy, "avgTime", res.AvgTime, "stars", res.Stars)
		return router.Replace(NewResult(p.deps, p.level, res))
	}
	p.sess.Next()
	p.keypad.Clear()
	return countdownTick(p.sess.ID(), p.sess.Index())
}

func (p *PlayScreen) View(width, height int) string {
	if p.errMsg != "" {
		return layout.Centered(theme.Incorrect.Render("\n\nKunne ikke starte nivået: "+p.errMsg), width)
	}

	var b strings.Builder

	bar := components.NewProgressBar("Oppgave", len(p.sess.Answers()), p.sess.Len(), min(width-8, 60))
	b.WriteString(layout.Centered(bar.View(), width))
	b.WriteString("\n")
	b.WriteString(layout.Centered(p.renderCountdown(), width))
	b.WriteString("\n\n")

	q := p.sess.Current()
	if p.level.IsTutorial() {
		b.WriteString(layout.Centered(theme.Subtitle.Render("Trykk på tallet"), width))
		b.WriteString("\n")
	}
	b.WriteString(layout.Centered(theme.Equation.Render(q.Equation()), width))
	b.WriteString("\n\n")

	b.WriteString(layout.Centered(p.renderFeedback(), width))
	b.WriteString("\n")

	if layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight) {
		b.WriteString(layout.Centered(p.keypad.Display(), width))
	} else {
		b.WriteString(layout.Centered(p.keypad.View(), width))
	}
	return b.String()
}

func (p *PlayScreen) renderCountdown() string {
	limit := p.level.TimeLimit()
	if limit <= 0 || p.sess.Feedback() != session.FeedbackNone {
		return ""
	}
	remaining := limit - p.sess.Elapsed()
	if remaining <= 0 {
		return theme.Hint.Render("⏱ Ta den tiden du trenger")
	}
	secs := int((remaining + time.Second - 1) / time.Second)
	style := lipgloss.NewStyle().Foreground(theme.TextDim)
	if remaining <= 2*time.Second {
		style = style.Foreground(theme.Accent)
	}
	return style.Render(fmt.Sprintf("⏱ %d s", secs))
}

func (p *PlayScreen) renderFeedback() string {
	last, ok := p.sess.LastAnswer()
	if !ok {
		return ""
	}
	switch p.sess.Feedback() {
	case session.FeedbackCorrect:
		return theme.Correct.Render("✓ Riktig!")
	case session.FeedbackIncorrect:
		return theme.Incorrect.Render(fmt.Sprintf("✗ Riktig svar er %s", last.Question.CorrectText()))
	}
	return ""
}
