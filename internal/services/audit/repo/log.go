package repo

import (
	"context"

	"fingerprintd/internal/platform/logger"
	"fingerprintd/internal/services/audit/domain"
)

// Log is the sink used when no database is configured
type Log struct {
	log *logger.Logger
}

// NewLog writes events through log
func NewLog(log *logger.Logger) *Log { return &Log{log: log} }

func (s *Log) Name() string { return "log" }

func (s *Log) Ensure(context.Context) error { return nil }

func (s *Log) WriteBatch(_ context.Context, xs []domain.Event) error {
	for _, e := range xs {
		ev := s.log.Info().
			Str("event_id", e.ID.String()).
			Str("kind", string(e.Kind)).
			Str("outcome", string(e.Outcome)).
			Bool("matched", e.Matched).
			Int("score", e.Score).
			Int("candidates", e.CandidateCount).
			Dur("took", e.Duration)
		if e.CandidateID != nil {
			ev = ev.Int64("candidate_id", *e.CandidateID)
		}
		if e.DriverStatus != 0 {
			ev = ev.Int("driver_status", e.DriverStatus)
		}
		if e.ErrorCode != "" {
			ev = ev.Str("error_code", e.ErrorCode)
		}
		if e.RequestID != "" {
			ev = ev.Str("request_id", e.RequestID)
		}
		ev.Msg("audit")
	}
	return nil
}
