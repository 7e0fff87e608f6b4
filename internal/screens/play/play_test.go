package play

import (
	"context"
	"strconv"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/matteflyt/internal/catalog"
	"github.com/abhisek/matteflyt/internal/router"
	"github.com/abhisek/matteflyt/internal/screen"
	"github.com/abhisek/matteflyt/internal/screens/screentest"
	"github.com/abhisek/matteflyt/internal/session"
)

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func enter() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeyEnter}
}

func typeNumber(t *testing.T, p *PlayScreen, n int) {
	t.Helper()
	for _, r := range strconv.Itoa(n) {
		p.Update(key(r))
	}
}

func level(t *testing.T, d screen.Deps, id int) catalog.Level {
	t.Helper()
	l, ok := d.Catalog.Get(id)
	if !ok {
		t.Fatalf("level %d missing from catalog", id)
	}
	return l
}

// finishFeedback delivers the feedback tick for the current question.
func finishFeedback(p *PlayScreen) tea.Cmd {
	_, cmd := p.Update(feedbackDoneMsg{sessionID: p.sess.ID(), index: p.sess.Index()})
	return cmd
}

func TestPlayScreen_CorrectRunRecordsProgress(t *testing.T) {
	d, _ := screentest.Deps()
	p := New(d, level(t, d, 1))
	if p.sess == nil {
		t.Fatalf("session not started: %s", p.errMsg)
	}

	var last tea.Cmd
	for i := 0; i < p.sess.Len(); i++ {
		typeNumber(t, p, p.sess.Current().Expected())
		_, cmd := p.Update(enter())
		if cmd == nil {
			t.Fatalf("question %d: expected feedback tick after submit", i)
		}
		if p.sess.Feedback() != session.FeedbackCorrect {
			t.Fatalf("question %d: feedback = %v, want correct", i, p.sess.Feedback())
		}
		last = finishFeedback(p)
	}

	if p.sess.State() != session.StateCompleted {
		t.Fatalf("state = %v, want completed", p.sess.State())
	}
	msg, ok := last().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg after last feedback, got %T", last())
	}
	res, ok := msg.Screen.(*ResultScreen)
	if !ok {
		t.Fatalf("expected *ResultScreen, got %T", msg.Screen)
	}
	if res.result.Accuracy != 100 {
		t.Errorf("result accuracy = %d, want 100", res.result.Accuracy)
	}

	rec, ok := d.Progress.All(context.Background())[1]
	if !ok {
		t.Fatal("expected progress recorded for level 1")
	}
	if rec.Accuracy != 100 {
		t.Errorf("recorded accuracy = %d, want 100", rec.Accuracy)
	}
}

func TestPlayScreen_WrongAnswerShowsCorrection(t *testing.T) {
	d, _ := screentest.Deps()
	p := New(d, level(t, d, 1))

	want := p.sess.Current().Expected()
	wrong := (want + 1) % 100
	typeNumber(t, p, wrong)
	p.Update(enter())

	if p.sess.Feedback() != session.FeedbackIncorrect {
		t.Fatalf("feedback = %v, want incorrect", p.sess.Feedback())
	}
	view := p.View(80, 30)
	if !strings.Contains(view, "Riktig svar er "+strconv.Itoa(want)) {
		t.Errorf("view missing correction for %d", want)
	}
}

func TestPlayScreen_EmptyEnterIgnored(t *testing.T) {
	d, _ := screentest.Deps()
	p := New(d, level(t, d, 1))

	_, cmd := p.Update(enter())
	if cmd != nil {
		t.Error("expected no command for empty submit")
	}
	if len(p.sess.Answers()) != 0 {
		t.Error("empty submit should not record an answer")
	}
}

func TestPlayScreen_BackspaceAndDigitLimit(t *testing.T) {
	d, _ := screentest.Deps()
	p := New(d, level(t, d, 1))

	p.Update(key('1'))
	p.Update(key('2'))
	p.Update(key('3'))
	if got := p.keypad.Value(); got != "12" {
		t.Errorf("keypad = %q, want 12", got)
	}
	p.Update(tea.KeyPressMsg{Code: tea.KeyBackspace})
	if got := p.keypad.Value(); got != "1" {
		t.Errorf("after backspace = %q, want 1", got)
	}
	p.Update(key('x'))
	if got := p.keypad.Value(); got != "1" {
		t.Errorf("letters should be ignored, got %q", got)
	}
}

func TestPlayScreen_StaleFeedbackTickIgnored(t *testing.T) {
	d, _ := screentest.Deps()
	p := New(d, level(t, d, 1))

	typeNumber(t, p, p.sess.Current().Expected())
	p.Update(enter())
	// Skip the feedback with a key press; the pending tick is now stale.
	p.Update(enter())
	if p.sess.Index() != 1 {
		t.Fatalf("index = %d, want 1", p.sess.Index())
	}

	typeNumber(t, p, p.sess.Current().Expected())
	p.Update(enter())
	p.Update(feedbackDoneMsg{sessionID: p.sess.ID(), index: 0})
	if p.sess.Feedback() == session.FeedbackNone {
		t.Error("stale tick cleared feedback of a later question")
	}

	p.Update(feedbackDoneMsg{sessionID: "other", index: 1})
	if p.sess.Feedback() == session.FeedbackNone {
		t.Error("tick from another session cleared feedback")
	}
}

func TestPlayScreen_DigitsIgnoredDuringFeedback(t *testing.T) {
	d, _ := screentest.Deps()
	p := New(d, level(t, d, 1))

	typeNumber(t, p, p.sess.Current().Expected())
	p.Update(enter())
	p.Update(key('5'))
	if !p.keypad.Empty() {
		t.Errorf("keypad = %q during feedback, want empty", p.keypad.Value())
	}
}

func TestPlayScreen_TutorialSubmitsOnPress(t *testing.T) {
	d, _ := screentest.Deps()
	p := New(d, level(t, d, 0))
	if p.sess.Len() != 10 {
		t.Fatalf("tutorial length = %d, want 10", p.sess.Len())
	}

	want := p.sess.Current().Expected()
	_, cmd := p.Update(key(rune('0' + want)))
	if cmd == nil {
		t.Fatal("expected feedback tick after tutorial press")
	}
	if p.sess.Feedback() != session.FeedbackCorrect {
		t.Errorf("feedback = %v, want correct", p.sess.Feedback())
	}
}

// tick delivers a countdown tick for the current question.
func tick(p *PlayScreen) tea.Cmd {
	_, cmd := p.Update(countdownTickMsg{sessionID: p.sess.ID(), index: p.sess.Index()})
	return cmd
}

func TestPlayScreen_CountdownTickStopsAfterCompletion(t *testing.T) {
	d, _ := screentest.Deps()
	p := New(d, level(t, d, 1))

	if tick(p) == nil {
		t.Error("expected countdown to continue while playing")
	}
	if _, cmd := p.Update(countdownTickMsg{sessionID: "old", index: 0}); cmd != nil {
		t.Error("expected foreign countdown tick to be dropped")
	}

	for p.sess.State() != session.StateCompleted {
		typeNumber(t, p, p.sess.Current().Expected())
		p.Update(enter())
		if p.sess.State() != session.StateCompleted {
			finishFeedback(p)
		}
	}
	if tick(p) != nil {
		t.Error("expected countdown to stop after completion")
	}
}

func TestPlayScreen_OneCountdownChainPerQuestion(t *testing.T) {
	d, _ := screentest.Deps()
	p := New(d, level(t, d, 1))
	id := p.sess.ID()

	for i := 0; i < 3; i++ {
		typeNumber(t, p, p.sess.Current().Expected())
		p.Update(enter())
		if tick(p) != nil {
			t.Errorf("question %d: countdown re-armed during feedback", i)
		}
		if finishFeedback(p) == nil {
			t.Fatalf("question %d: expected a countdown for the next question", i)
		}
	}

	live := 0
	for index := 0; index <= p.sess.Index(); index++ {
		if _, cmd := p.Update(countdownTickMsg{sessionID: id, index: index}); cmd != nil {
			live++
		}
	}
	if live != 1 {
		t.Errorf("live countdown chains = %d, want 1", live)
	}
}

func TestPlayScreen_ResultIssuedOnce(t *testing.T) {
	d, _ := screentest.Deps()
	p := New(d, level(t, d, 1))

	for i := 0; i < p.sess.Len()-1; i++ {
		typeNumber(t, p, p.sess.Current().Expected())
		p.Update(enter())
		finishFeedback(p)
	}
	typeNumber(t, p, p.sess.Current().Expected())
	p.Update(enter())

	// Skipping the feedback and the feedback timer both end the session.
	_, cmd := p.Update(enter())
	if cmd == nil {
		t.Fatal("expected the result screen after the last answer")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if cmd := finishFeedback(p); cmd != nil {
		t.Errorf("feedback timer issued a second result: %T", cmd())
	}
	if _, cmd := p.Update(enter()); cmd != nil {
		t.Errorf("second key press issued a second result: %T", cmd())
	}
}

func TestPlayScreen_KeyHints(t *testing.T) {
	d, _ := screentest.Deps()
	p := New(d, level(t, d, 1))
	if len(p.KeyHints()) != 4 {
		t.Errorf("KeyHints length = %d, want 4", len(p.KeyHints()))
	}
	typeNumber(t, p, p.sess.Current().Expected())
	p.Update(enter())
	if len(p.KeyHints()) != 1 {
		t.Errorf("feedback KeyHints length = %d, want 1", len(p.KeyHints()))
	}
}

func TestPlayScreen_Title(t *testing.T) {
	d, _ := screentest.Deps()
	l := level(t, d, 4)
	if got := New(d, l).Title(); got != l.Name {
		t.Errorf("Title = %q, want %q", got, l.Name)
	}
}
