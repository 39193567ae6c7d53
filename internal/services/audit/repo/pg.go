// Package repo provides the audit sinks
package repo

import (
	"context"
	"fmt"
	"strings"

	"fingerprintd/internal/modkit/repokit"
	perr "fingerprintd/internal/platform/errors"
	"fingerprintd/internal/services/audit/domain"
)

// pgSchema runs in one transaction when the queryer supports it
var pgSchema = []string{
	`CREATE TABLE IF NOT EXISTS biometric_events (
		id              uuid PRIMARY KEY,
		at              timestamptz NOT NULL,
		kind            text NOT NULL,
		outcome         text NOT NULL,
		matched         boolean NOT NULL DEFAULT false,
		score           integer NOT NULL DEFAULT 0,
		candidate_id    bigint,
		candidate_count integer NOT NULL DEFAULT 0,
		driver_status   integer NOT NULL DEFAULT 0,
		error_code      text NOT NULL DEFAULT '',
		duration_ms     bigint NOT NULL DEFAULT 0,
		request_id      text NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS biometric_events_at_idx ON biometric_events (at)`,
}

const pgCols = 12

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new sink binder for Postgres
func NewPG() repokit.Binder[domain.Sink] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) domain.Sink { return &pg{q: q} }

func (s *pg) Name() string { return "pg" }

func (s *pg) Ensure(ctx context.Context) error {
	run := func(q repokit.Queryer) error {
		for _, ddl := range pgSchema {
			if _, err := q.Exec(ctx, ddl); err != nil {
				return err
			}
		}
		return nil
	}
	var err error
	if tx, ok := s.q.(repokit.TxRunner); ok {
		err = repokit.WithTx(ctx, tx, run)
	} else {
		err = run(s.q)
	}
	return perr.FromPostgres(err, "ensure biometric_events")
}

// WriteBatch inserts xs in one statement, replays of an id are ignored
func (s *pg) WriteBatch(ctx context.Context, xs []domain.Event) error {
	if len(xs) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO biometric_events
		(id, at, kind, outcome, matched, score, candidate_id, candidate_count,
		driver_status, error_code, duration_ms, request_id) VALUES `)

	args := make([]any, 0, len(xs)*pgCols)
	for i, e := range xs {
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i*pgCols + 1
		fmt.Fprintf(&sb, "($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base, base+1, base+2, base+3, base+4, base+5,
			base+6, base+7, base+8, base+9, base+10, base+11)

		args = append(args,
			e.ID, e.At.UTC(), string(e.Kind), string(e.Outcome), e.Matched, e.Score,
			e.CandidateID, e.CandidateCount, e.DriverStatus, e.ErrorCode,
			e.Duration.Milliseconds(), e.RequestID,
		)
	}
	sb.WriteString(` ON CONFLICT (id) DO NOTHING`)
	_, err := s.q.Exec(ctx, sb.String(), args...)
	return perr.FromPostgres(err, "insert biometric_events")
}
