// Package service implements the audit recorder and its batch worker
package service

import (
	"context"
	"sync/atomic"
	"time"

	"fingerprintd/internal/platform/logger"
	ptime "fingerprintd/internal/platform/time"

	dom "fingerprintd/internal/services/audit/domain"

	"github.com/google/uuid"
)

// Service implements both recorder and worker ports
type Service interface {
	dom.RecorderPort
	dom.WorkerPort
}

// Config controls queueing and flushing
type Config struct {
	Queue      int
	Batch      int
	FlushEvery time.Duration
}

// Svc queues events in memory and flushes them to every sink
type Svc struct {
	cfg   Config
	sinks []dom.Sink
	queue chan dom.Event
	clock ptime.Clock
	log   *logger.Logger

	dropped atomic.Int64
}

// New constructs the service; with no sinks events are only counted
func New(cfg Config, clock ptime.Clock, sinks ...dom.Sink) *Svc {
	if cfg.Queue <= 0 {
		cfg.Queue = 256
	}
	if cfg.Batch <= 0 {
		cfg.Batch = 64
	}
	if cfg.FlushEvery <= 0 {
		cfg.FlushEvery = time.Second
	}
	if clock == nil {
		clock = ptime.System
	}
	return &Svc{
		cfg:   cfg,
		sinks: sinks,
		queue: make(chan dom.Event, cfg.Queue),
		clock: clock,
		log:   logger.Named("audit"),
	}
}

// Record stamps ev and queues it, dropping it when the queue is full
func (s *Svc) Record(ctx context.Context, ev dom.Event) {
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	if ev.At.IsZero() {
		ev.At = s.clock.Now()
	}
	if ev.RequestID == "" {
		ev.RequestID = logger.RequestID(ctx)
	}
	select {
	case s.queue <- ev:
	default:
		n := s.dropped.Add(1)
		logger.C(ctx).Warn().
			Str("kind", string(ev.Kind)).
			Int64("dropped_total", n).
			Msg("audit queue full, event dropped")
	}
}

// Dropped reports how many events were discarded on a full queue
func (s *Svc) Dropped() int64 { return s.dropped.Load() }

// Pending reports queued events not yet taken by the worker
func (s *Svc) Pending() int { return len(s.queue) }
