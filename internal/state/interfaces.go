package state

import (
	"context"
	"time"
)

// Store is the interaction journal. It never holds drawer progress; every
// launch starts dismissed.
type Store interface {
	EnsureSchema(ctx context.Context) error
	StartSession(ctx context.Context, session Session) error
	RecordTransition(ctx context.Context, tr Transition) (int64, error)
	RecentTransitions(ctx context.Context, limit int) ([]Transition, error)
	GetSummary(ctx context.Context) (Summary, error)
	SaveSettings(ctx context.Context, values map[string]string) error
	LoadSettings(ctx context.Context) (map[string]string, error)
	Close() error
}

type Session struct {
	ID               string
	StartTS          time.Time
	MotionLevel      string
	DecelerationRate float64
}

type Transition struct {
	ID           int64
	SessionID    string
	TS           time.Time
	Source       string
	Command      string
	FromProgress float64
	Target       float64
	Velocity     float64
	Interrupted  bool
}

type Summary struct {
	Sessions      int
	Transitions   int
	Commands      int
	Gestures      int
	BackdropTaps  int
	Opens         int
	Closes        int
	Interruptions int
}
