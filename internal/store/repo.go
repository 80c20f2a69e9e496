package store

import (
	"context"
	"time"
)

// KVRepo stores small JSON documents under fixed keys.
type KVRepo interface {
	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// PutAll writes every entry in a single transaction.
	PutAll(ctx context.Context, values map[string]string) error

	// Delete removes keys. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}

// Session event actions.
const (
	ActionStart   = "start"
	ActionEnd     = "end"
	ActionAbandon = "abandon"
)

// SessionEventData captures a lesson attempt starting or ending.
type SessionEventData struct {
	SessionID  string
	NodeID     int
	Language   string
	Action     string
	Completed  bool
	Stars      int
	Correct    int
	Total      int
	Hearts     int
	BestStreak int
	Points     int
	Duration   time.Duration
}

// AnswerEventData captures one submitted answer.
type AnswerEventData struct {
	SessionID string
	NodeID    int
	Step      int
	Kind      string
	Correct   bool
	Elapsed   time.Duration
	Points    int
}

// SessionRecord is a stored session event.
type SessionRecord struct {
	Sequence  int64
	Timestamp time.Time
	SessionEventData
}

// Totals aggregates all finished attempts.
type Totals struct {
	Sessions  int
	Completed int
	Answers   int
	Correct   int
	Points    int
}

// Accuracy returns the share of correct answers in [0,1].
func (t Totals) Accuracy() float64 {
	if t.Answers == 0 {
		return 0
	}
	return float64(t.Correct) / float64(t.Answers)
}

// EventRepo provides append and query access to lesson events.
type EventRepo interface {
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// RecentSessions returns the latest ended or abandoned attempts,
	// newest first.
	RecentSessions(ctx context.Context, limit int) ([]SessionRecord, error)

	// Totals aggregates every recorded attempt and answer.
	Totals(ctx context.Context) (Totals, error)
}
