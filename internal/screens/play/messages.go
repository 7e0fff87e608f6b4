package play

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// FeedbackDelay is how long answer feedback shows before the next question.
const FeedbackDelay = time.Second

// feedbackDoneMsg ends the feedback period for the answer at index. Stale
// messages from an earlier question or an earlier screen are ignored.
type feedbackDoneMsg struct {
	sessionID string
	index     int
}

// countdownTickMsg refreshes the advisory countdown of the question at
// index. Each question runs its own tick chain; a chain stops once its
// question is answered.
type countdownTickMsg struct {
	sessionID string
	index     int
}

func feedbackAfter(d time.Duration, sessionID string, index int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return feedbackDoneMsg{sessionID: sessionID, index: index}
	})
}

func countdownTick(sessionID string, index int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return countdownTickMsg{sessionID: sessionID, index: index}
	})
}
