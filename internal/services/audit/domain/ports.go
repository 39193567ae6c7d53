package domain

import "context"

// RecorderPort accepts events without blocking the caller
type RecorderPort interface {
	Record(ctx context.Context, ev Event)
}

// WorkerPort drains recorded events into the sinks until ctx ends
type WorkerPort interface {
	Run(ctx context.Context) error
}

// Sink persists batches of events
type Sink interface {
	Name() string
	// Ensure prepares the destination, creating tables when missing
	Ensure(ctx context.Context) error
	WriteBatch(ctx context.Context, xs []Event) error
}
