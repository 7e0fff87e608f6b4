package session

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/matteflyt/internal/catalog"
	"github.com/abhisek/matteflyt/internal/problemgen"
	"github.com/abhisek/matteflyt/internal/progress"
	"github.com/abhisek/matteflyt/internal/store"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type recordCall struct {
	levelID, accuracy int
	avgTime           float64
}

type fakeRecorder struct{ calls []recordCall }

func (r *fakeRecorder) RecordResult(_ context.Context, levelID, accuracy int, avgTime float64) {
	r.calls = append(r.calls, recordCall{levelID, accuracy, avgTime})
}

type fakeSink struct {
	sessions []store.SessionEventData
	answers  []store.AnswerEventData
	err      error
}

func (f *fakeSink) AppendSessionEvent(_ context.Context, d store.SessionEventData) error {
	f.sessions = append(f.sessions, d)
	return f.err
}

func (f *fakeSink) AppendAnswerEvent(_ context.Context, d store.AnswerEventData) error {
	f.answers = append(f.answers, d)
	return f.err
}

func addLevel() catalog.Level {
	return catalog.Level{ID: 4, Name: "add", Type: catalog.TypeAddWithin10, Operator: catalog.OpAdd, QuestionCount: 5, TimeLimitPerQuestion: 8, PassingScore: 80}
}

func sums(pairs ...[2]int) []problemgen.Question {
	qs := make([]problemgen.Question, len(pairs))
	for i, p := range pairs {
		qs[i] = problemgen.Question{Num1: p[0], Num2: p[1], Operator: catalog.OpAdd, Answer: p[0] + p[1], Missing: problemgen.MissingResult}
	}
	return qs
}

func TestSession_EndToEnd(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	rec := &fakeRecorder{}
	sink := &fakeSink{}

	qs := sums([2]int{1, 1}, [2]int{2, 3}, [2]int{4, 4}, [2]int{0, 6}, [2]int{5, 5})
	s, err := New(ctx, addLevel(), qs, WithClock(clock.Now), WithRecorder(rec), WithEvents(sink), WithID("sess-1"))
	require.NoError(t, err)
	assert.Equal(t, StatePlaying, s.State())
	assert.Equal(t, 0, s.Index())

	inputs := []int{2, 5, 7, 6, 10} // third is wrong
	for i, in := range inputs {
		require.Equal(t, i, s.Index())
		clock.Advance(2 * time.Second)
		fb, err := s.Submit(ctx, in)
		require.NoError(t, err)
		if i == 2 {
			assert.Equal(t, FeedbackIncorrect, fb)
		} else {
			assert.Equal(t, FeedbackCorrect, fb)
		}
		s.Next()
	}

	assert.Equal(t, StateCompleted, s.State())
	res, ok := s.Result()
	require.True(t, ok)
	assert.Equal(t, 80, res.Accuracy)
	assert.InDelta(t, 2.0, res.AvgTime, 1e-9)
	assert.Equal(t, 2, res.Stars)
	assert.Equal(t, 4, res.Correct)
	assert.Equal(t, 5, res.Total)
	assert.True(t, res.Passed(addLevel()))

	mistakes := res.Mistakes()
	require.Len(t, mistakes, 1)
	assert.Equal(t, 7, mistakes[0].Given)
	assert.Equal(t, 8, mistakes[0].Question.Expected())

	require.Len(t, rec.calls, 1)
	assert.Equal(t, recordCall{4, 80, 2.0}, rec.calls[0])

	require.Len(t, sink.sessions, 2)
	assert.Equal(t, store.ActionStart, sink.sessions[0].Action)
	assert.Equal(t, store.ActionEnd, sink.sessions[1].Action)
	assert.Equal(t, 80, sink.sessions[1].Accuracy)
	assert.Len(t, sink.answers, 5)
	assert.Equal(t, "sess-1", sink.answers[0].SessionID)
	assert.Equal(t, int64(2000), sink.answers[0].TimeMs)
}

func TestSession_SubmitWhileFeedbackPending(t *testing.T) {
	ctx := context.Background()
	rec := &fakeRecorder{}
	s, err := New(ctx, addLevel(), sums([2]int{1, 1}, [2]int{2, 2}), WithRecorder(rec))
	require.NoError(t, err)

	_, err = s.Submit(ctx, 2)
	require.NoError(t, err)
	_, err = s.Submit(ctx, 4)
	assert.ErrorIs(t, err, ErrFeedbackPending)
	assert.Len(t, s.Answers(), 1)
	assert.Equal(t, 0, s.Index())
}

func TestSession_SubmitAfterCompletion(t *testing.T) {
	ctx := context.Background()
	rec := &fakeRecorder{}
	s, err := New(ctx, addLevel(), sums([2]int{1, 1}), WithRecorder(rec))
	require.NoError(t, err)

	_, err = s.Submit(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, s.State())

	assert.False(t, s.Next())
	assert.Equal(t, FeedbackNone, s.Feedback())

	_, err = s.Submit(ctx, 2)
	assert.ErrorIs(t, err, ErrCompleted)
	assert.Len(t, rec.calls, 1, "result is recorded exactly once")
}

func TestSession_NextWithoutFeedbackIsNoop(t *testing.T) {
	s, err := New(context.Background(), addLevel(), sums([2]int{1, 1}, [2]int{2, 2}))
	require.NoError(t, err)
	assert.False(t, s.Next())
	assert.Equal(t, 0, s.Index())
}

func TestSession_TimerRestartsOnNext(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Unix(0, 0)}
	s, err := New(ctx, addLevel(), sums([2]int{1, 1}, [2]int{2, 2}), WithClock(clock.Now))
	require.NoError(t, err)

	clock.Advance(3 * time.Second)
	_, err = s.Submit(ctx, 2)
	require.NoError(t, err)

	// Time spent looking at feedback does not count against the next question.
	clock.Advance(10 * time.Second)
	s.Next()
	assert.Equal(t, time.Duration(0), s.Elapsed())

	clock.Advance(time.Second)
	_, err = s.Submit(ctx, 4)
	require.NoError(t, err)

	res, _ := s.Result()
	assert.InDelta(t, 3.0, res.Answers[0].Elapsed, 1e-9)
	assert.InDelta(t, 1.0, res.Answers[1].Elapsed, 1e-9)
	assert.InDelta(t, 2.0, res.AvgTime, 1e-9)
}

func TestSession_BondExpectsMissingOperand(t *testing.T) {
	ctx := context.Background()
	q := problemgen.Question{Num1: 3, Num2: 7, Operator: catalog.OpAdd, Answer: 10, Missing: problemgen.MissingNum2}
	s, err := New(ctx, addLevel(), []problemgen.Question{q})
	require.NoError(t, err)

	fb, err := s.Submit(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, FeedbackCorrect, fb)
}

func TestSession_EventFailuresDoNotStopPlay(t *testing.T) {
	ctx := context.Background()
	sink := &fakeSink{err: errors.New("db locked")}
	var reported []error
	s, err := New(ctx, addLevel(), sums([2]int{1, 1}), WithEvents(sink), WithErrorHook(func(err error) {
		reported = append(reported, err)
	}))
	require.NoError(t, err)

	_, err = s.Submit(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, s.State())
	assert.Len(t, reported, 3) // start, answer, end
}

func TestSession_NoQuestions(t *testing.T) {
	_, err := New(context.Background(), addLevel(), nil)
	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestSession_RecordsIntoProgressStore(t *testing.T) {
	ctx := context.Background()
	ps := progress.NewStore(progress.NewMemorySlots(), nil)
	clock := &fakeClock{t: time.Unix(0, 0)}
	s, err := New(ctx, addLevel(), sums([2]int{1, 1}, [2]int{2, 2}), WithRecorder(ps), WithClock(clock.Now))
	require.NoError(t, err)

	for _, in := range []int{2, 4} {
		clock.Advance(time.Second)
		_, err := s.Submit(ctx, in)
		require.NoError(t, err)
		s.Next()
	}

	p, ok := ps.All(ctx)[4]
	require.True(t, ok)
	assert.Equal(t, 100, p.Accuracy)
	assert.Equal(t, 3, p.Stars)
}

func TestStart_Tutorial(t *testing.T) {
	level := catalog.Default().Root()
	s, err := Start(context.Background(), level, rand.New(rand.NewPCG(1, 1)), problemgen.PromptsFor("nb"))
	require.NoError(t, err)
	assert.Equal(t, 10, s.Len())
	assert.NotEmpty(t, s.ID())
}

func TestScore(t *testing.T) {
	answers := []Answer{{Correct: true, Elapsed: 1}, {Correct: false, Elapsed: 2}, {Correct: true, Elapsed: 3}}
	acc, avg := Score(answers, 3)
	assert.Equal(t, 67, acc)
	assert.InDelta(t, 2.0, avg, 1e-9)

	acc, avg = Score(nil, 0)
	assert.Zero(t, acc)
	assert.Zero(t, avg)
}
