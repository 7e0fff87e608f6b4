package session

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/matteflyt/internal/store"
)

// State is the lifecycle position of a session.
type State int

const (
	StatePlaying   State = iota // Questions remain
	StateCompleted              // Every question answered; terminal
)

func (s State) String() string {
	if s == StateCompleted {
		return "completed"
	}
	return "playing"
}

// Feedback is the verdict on the answer just submitted.
type Feedback int

const (
	FeedbackNone Feedback = iota
	FeedbackCorrect
	FeedbackIncorrect
)

func (f Feedback) String() string {
	switch f {
	case FeedbackCorrect:
		return "correct"
	case FeedbackIncorrect:
		return "incorrect"
	default:
		return "none"
	}
}

var (
	// ErrCompleted is returned when submitting to a finished session.
	ErrCompleted = errors.New("session completed")

	// ErrFeedbackPending is returned when submitting before Next has
	// cleared the previous answer's feedback.
	ErrFeedbackPending = errors.New("feedback pending")

	// ErrNoQuestions is returned when starting a session without questions.
	ErrNoQuestions = errors.New("session has no questions")
)

// Recorder receives the result of a completed session.
type Recorder interface {
	RecordResult(ctx context.Context, levelID, accuracy int, avgTime float64)
}

// EventSink receives the session's play events.
type EventSink interface {
	AppendSessionEvent(ctx context.Context, data store.SessionEventData) error
	AppendAnswerEvent(ctx context.Context, data store.AnswerEventData) error
}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces time.Now for elapsed-time measurement.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithRecorder sets where the completed result is recorded.
func WithRecorder(r Recorder) Option {
	return func(s *Session) { s.recorder = r }
}

// WithEvents sets the event sink. Event write failures are reported to the
// error hook and never interrupt play.
func WithEvents(sink EventSink) Option {
	return func(s *Session) { s.events = sink }
}

// WithID overrides the generated session id.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// WithErrorHook is called with event write failures.
func WithErrorHook(fn func(error)) Option {
	return func(s *Session) { s.onError = fn }
}
