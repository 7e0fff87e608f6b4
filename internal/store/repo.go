package store

import (
	"context"
	"time"
)

// Session event actions.
const (
	ActionStart = "start"
	ActionEnd   = "end"
)

// SessionEventData captures a session start or end.
type SessionEventData struct {
	SessionID string
	LevelID   int
	Action    string

	// Filled on ActionEnd.
	Questions      int
	CorrectAnswers int
	Accuracy       int
	AvgTime        float64
	Stars          int
}

// SessionEvent is a stored session event.
type SessionEvent struct {
	SessionEventData
	Sequence  int64
	Timestamp time.Time
}

// AnswerEventData captures one submitted answer.
type AnswerEventData struct {
	SessionID    string
	LevelID      int
	QuestionText string
	Expected     int
	Given        int
	Correct      bool
	TimeMs       int64
}

// AnswerEvent is a stored answer event.
type AnswerEvent struct {
	AnswerEventData
	Sequence  int64
	Timestamp time.Time
}

// EventRepo provides append and query access to the play event log.
type EventRepo interface {
	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendAnswerEvent records one answer.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// RecentSessions returns the latest completed sessions, newest first.
	RecentSessions(ctx context.Context, limit int) ([]SessionEvent, error)

	// SessionAnswers returns the answers of one session in order.
	SessionAnswers(ctx context.Context, sessionID string) ([]AnswerEvent, error)

	// LevelAccuracy returns the share of correct answers ever given on a
	// level and the number of answers it is based on.
	LevelAccuracy(ctx context.Context, levelID int) (float64, int, error)
}

// DiplomaData is a stored diploma.
type DiplomaData struct {
	ID           string
	StudentName  string
	TotalStars   int
	AvgAccuracy  int
	LevelResults string
	CompletedAt  time.Time
}

// DiplomaRepo is append-only diploma storage.
type DiplomaRepo interface {
	// Create stores a new diploma.
	Create(ctx context.Context, d DiplomaData) error

	// List returns all diplomas, newest first.
	List(ctx context.Context) ([]DiplomaData, error)
}
