package service

import (
	"context"
	"time"

	perr "fingerprintd/internal/platform/errors"
	dom "fingerprintd/internal/services/audit/domain"
)

const (
	// drainTimeout bounds the final flush after ctx ends
	drainTimeout = 5 * time.Second
	retryBackoff = 250 * time.Millisecond
)

// Run ensures every sink, then flushes queued events in batches until ctx ends.
// Whatever is still queued at shutdown gets one last flush
func (s *Svc) Run(ctx context.Context) error {
	for _, sk := range s.sinks {
		if err := sk.Ensure(ctx); err != nil {
			s.log.Error().Err(err).Str("sink", sk.Name()).Msg("audit sink ensure failed")
			return err
		}
	}

	ticker := time.NewTicker(s.cfg.FlushEvery)
	defer ticker.Stop()

	buf := make([]dom.Event, 0, s.cfg.Batch)
	for {
		select {
		case <-ctx.Done():
			buf = s.drain(buf)
			fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), drainTimeout)
			s.flush(fctx, buf)
			cancel()
			s.log.Info().Int64("dropped", s.Dropped()).Msg("audit worker stopped")
			return ctx.Err()
		case ev := <-s.queue:
			buf = append(buf, ev)
			if len(buf) >= s.cfg.Batch {
				s.flush(ctx, buf)
				buf = buf[:0]
			}
		case <-ticker.C:
			if len(buf) > 0 {
				s.flush(ctx, buf)
				buf = buf[:0]
			}
		}
	}
}

func (s *Svc) drain(buf []dom.Event) []dom.Event {
	for {
		select {
		case ev := <-s.queue:
			buf = append(buf, ev)
		default:
			return buf
		}
	}
}

// flush hands xs to every sink. A transient failure gets one retry, sinks
// ignore replayed ids; anything else is logged and the batch is dropped for that sink
func (s *Svc) flush(ctx context.Context, xs []dom.Event) {
	if len(xs) == 0 {
		return
	}
	for _, sk := range s.sinks {
		err := sk.WriteBatch(ctx, xs)
		if err != nil && perr.IsRetryable(err) && ctx.Err() == nil {
			s.log.Warn().Err(err).Str("sink", sk.Name()).Msg("audit flush retrying")
			s.clock.Sleep(retryBackoff)
			err = sk.WriteBatch(ctx, xs)
		}
		if err != nil {
			s.log.Error().Err(err).Str("sink", sk.Name()).Int("events", len(xs)).Msg("audit flush failed")
		}
	}
}
