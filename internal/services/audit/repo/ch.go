package repo

import (
	"context"

	"fingerprintd/internal/modkit/repokit"
	"fingerprintd/internal/services/audit/domain"
)

const chSchema = `
CREATE TABLE IF NOT EXISTS biometric_events (
	id              UUID,
	at              DateTime64(3, 'UTC'),
	kind            LowCardinality(String),
	outcome         LowCardinality(String),
	matched         Bool,
	score           Int32,
	candidate_id    Nullable(Int64),
	candidate_count Int32,
	driver_status   Int32,
	error_code      LowCardinality(String),
	duration_ms     Int64,
	request_id      String
) ENGINE = MergeTree
ORDER BY (kind, at)`

// CH writes events to clickhouse in one batch per flush
type CH struct {
	ch repokit.Columnar
}

// NewCH wraps a clickhouse seam
func NewCH(ch repokit.Columnar) *CH { return &CH{ch: ch} }

func (s *CH) Name() string { return "ch" }

func (s *CH) Ensure(ctx context.Context) error { return s.ch.Exec(ctx, chSchema) }

func (s *CH) WriteBatch(ctx context.Context, xs []domain.Event) error {
	if len(xs) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(xs))
	for _, e := range xs {
		rows = append(rows, []any{
			e.ID, e.At.UTC(), string(e.Kind), string(e.Outcome), e.Matched, int32(e.Score),
			e.CandidateID, int32(e.CandidateCount), int32(e.DriverStatus), e.ErrorCode,
			e.Duration.Milliseconds(), e.RequestID,
		})
	}
	return s.ch.Insert(ctx, "biometric_events", rows)
}
