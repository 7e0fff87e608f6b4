// Package session runs one play-through of a level: it serves the questions
// in order, checks answers, times them and scores the finished run.
package session

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/matteflyt/internal/catalog"
	"github.com/abhisek/matteflyt/internal/problemgen"
	"github.com/abhisek/matteflyt/internal/progress"
	"github.com/abhisek/matteflyt/internal/store"
)

// Answer is one submitted answer.
type Answer struct {
	Question problemgen.Question
	Given    int
	Correct  bool
	// Elapsed is the time in seconds from the question becoming current to
	// the submission.
	Elapsed float64
}

// Result scores a completed session.
type Result struct {
	LevelID  int
	Accuracy int
	AvgTime  float64
	Stars    int
	Correct  int
	Total    int
	Answers  []Answer
}

// Mistakes returns the incorrect answers in order.
func (r Result) Mistakes() []Answer {
	var out []Answer
	for _, a := range r.Answers {
		if !a.Correct {
			out = append(out, a)
		}
	}
	return out
}

// Passed reports whether the result meets level's passing score.
func (r Result) Passed(level catalog.Level) bool {
	return r.Accuracy >= level.PassingScore
}

// Score computes accuracy and average time over answers. Accuracy is
// rounded to the nearest percent of total.
func Score(answers []Answer, total int) (accuracy int, avgTime float64) {
	if total <= 0 || len(answers) == 0 {
		return 0, 0
	}
	correct := 0
	var sum float64
	for _, a := range answers {
		if a.Correct {
			correct++
		}
		sum += a.Elapsed
	}
	accuracy = int(math.Round(float64(correct) * 100 / float64(total)))
	avgTime = sum / float64(len(answers))
	return accuracy, avgTime
}

// Session is an in-progress play-through. It is driven from a single
// goroutine; the feedback-pending check is the only guard against double
// submission.
type Session struct {
	id        string
	level     catalog.Level
	questions []problemgen.Question
	index     int
	state     State
	feedback  Feedback
	answers   []Answer
	result    *Result
	started   time.Time // current question became current

	now      func() time.Time
	recorder Recorder
	events   EventSink
	onError  func(error)
}

// New starts a session over questions, which must be non-empty. The first
// question is current immediately.
func New(ctx context.Context, level catalog.Level, questions []problemgen.Question, opts ...Option) (*Session, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	s := &Session{
		level:     level,
		questions: questions,
		state:     StatePlaying,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.id == "" {
		s.id = uuid.New().String()
	}
	s.started = s.now()

	s.emitSession(ctx, store.SessionEventData{
		SessionID: s.id,
		LevelID:   level.ID,
		Action:    store.ActionStart,
		Questions: len(questions),
	})
	return s, nil
}

// Start generates the questions for level from r and starts a session.
func Start(ctx context.Context, level catalog.Level, r *rand.Rand, p problemgen.Prompts, opts ...Option) (*Session, error) {
	return New(ctx, level, problemgen.Questions(r, level, p), opts...)
}

// Submit checks input against the current question. The returned feedback
// stays pending until Next. Submitting the last answer completes the
// session and records the result.
func (s *Session) Submit(ctx context.Context, input int) (Feedback, error) {
	if s.state == StateCompleted {
		return FeedbackNone, ErrCompleted
	}
	if s.feedback != FeedbackNone {
		return FeedbackNone, ErrFeedbackPending
	}

	q := s.questions[s.index]
	now := s.now()
	ans := Answer{
		Question: q,
		Given:    input,
		Correct:  q.Correct(input),
		Elapsed:  now.Sub(s.started).Seconds(),
	}
	s.answers = append(s.answers, ans)
	s.started = now

	if ans.Correct {
		s.feedback = FeedbackCorrect
	} else {
		s.feedback = FeedbackIncorrect
	}

	s.emitAnswer(ctx, ans)

	if len(s.answers) == len(s.questions) {
		s.complete(ctx)
	}
	return s.feedback, nil
}

// Next clears pending feedback and, while questions remain, makes the
// following question current. It reports whether a new question became
// current. Without pending feedback it does nothing.
func (s *Session) Next() bool {
	if s.feedback == FeedbackNone {
		return false
	}
	s.feedback = FeedbackNone
	if s.state == StateCompleted {
		return false
	}
	s.index++
	s.started = s.now()
	return true
}

func (s *Session) complete(ctx context.Context) {
	s.state = StateCompleted
	accuracy, avg := Score(s.answers, len(s.questions))

	correct := 0
	for _, a := range s.answers {
		if a.Correct {
			correct++
		}
	}
	answers := make([]Answer, len(s.answers))
	copy(answers, s.answers)

	s.result = &Result{
		LevelID:  s.level.ID,
		Accuracy: accuracy,
		AvgTime:  avg,
		Stars:    progress.Stars(accuracy, avg),
		Correct:  correct,
		Total:    len(s.questions),
		Answers:  answers,
	}

	if s.recorder != nil {
		s.recorder.RecordResult(ctx, s.level.ID, accuracy, avg)
	}

	s.emitSession(ctx, store.SessionEventData{
		SessionID:      s.id,
		LevelID:        s.level.ID,
		Action:         store.ActionEnd,
		Questions:      len(s.questions),
		CorrectAnswers: correct,
		Accuracy:       accuracy,
		AvgTime:        avg,
		Stars:          s.result.Stars,
	})
}

func (s *Session) emitSession(ctx context.Context, data store.SessionEventData) {
	if s.events == nil {
		return
	}
	if err := s.events.AppendSessionEvent(ctx, data); err != nil {
		s.reportError(fmt.Errorf("session %s event: %w", data.Action, err))
	}
}

func (s *Session) emitAnswer(ctx context.Context, a Answer) {
	if s.events == nil {
		return
	}
	err := s.events.AppendAnswerEvent(ctx, store.AnswerEventData{
		SessionID:    s.id,
		LevelID:      s.level.ID,
		QuestionText: a.Question.Equation(),
		Expected:     a.Question.Expected(),
		Given:        a.Given,
		Correct:      a.Correct,
		TimeMs:       int64(a.Elapsed * 1000),
	})
	if err != nil {
		s.reportError(fmt.Errorf("answer event: %w", err))
	}
}

func (s *Session) reportError(err error) {
	if s.onError != nil {
		s.onError(err)
	}
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Level returns the level being played.
func (s *Session) Level() catalog.Level { return s.level }

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Feedback returns the pending feedback.
func (s *Session) Feedback() Feedback { return s.feedback }

// Index returns the zero-based index of the current question.
func (s *Session) Index() int { return s.index }

// Len returns the number of questions in the session.
func (s *Session) Len() int { return len(s.questions) }

// Current returns the current question.
func (s *Session) Current() problemgen.Question { return s.questions[s.index] }

// Answers returns a copy of the answers so far.
func (s *Session) Answers() []Answer {
	out := make([]Answer, len(s.answers))
	copy(out, s.answers)
	return out
}

// LastAnswer returns the most recent answer, if any.
func (s *Session) LastAnswer() (Answer, bool) {
	if len(s.answers) == 0 {
		return Answer{}, false
	}
	return s.answers[len(s.answers)-1], true
}

// Elapsed returns how long the current question has been showing.
func (s *Session) Elapsed() time.Duration {
	return s.now().Sub(s.started)
}

// Result returns the scored result once the session is completed.
func (s *Session) Result() (Result, bool) {
	if s.result == nil {
		return Result{}, false
	}
	return *s.result, true
}
