package store

import (
	"context"
	"time"
)

// Store persists evaluation runs
type Store interface {
	Close() error

	SaveRun(ctx context.Context, r Run) error
	GetRun(ctx context.Context, id string) (Run, bool, error)
	// ListRuns returns up to limit runs, newest first. limit <= 0 means 20.
	ListRuns(ctx context.Context, limit int) ([]Run, error)
	DeleteRun(ctx context.Context, id string) error
}

// DefaultListLimit is used when ListRuns is called without a limit.
const DefaultListLimit = 20

// Run is a stored evaluation
type Run struct {
	ID             string
	CreatedAt      time.Time
	Candidate      string
	References     []string
	MaxOrder       int
	Score          float64
	BrevityPenalty float64
	Precisions     []float64
	Sentences      int
	Skipped        int
}
