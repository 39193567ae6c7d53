package service

import (
	"context"
	"errors"
	"time"

	"fingerprintd/internal/core/sensor"
	perr "fingerprintd/internal/platform/errors"

	auditdom "fingerprintd/internal/services/audit/domain"
	"fingerprintd/internal/services/api/biometrics/domain"
)

// trail collects one operation's audit fields while it runs
type trail struct {
	ev     auditdom.Event
	start  time.Time
	scored bool
}

func (s *Svc) begin(kind auditdom.Kind, scored bool) *trail {
	return &trail{ev: auditdom.Event{Kind: kind}, start: s.clock.Now(), scored: scored}
}

// status keeps the vendor code carried by err, if any
func (t *trail) status(err error) {
	var se *sensor.StatusError
	if errors.As(err, &se) {
		t.ev.DriverStatus = se.Code
	}
}

// finish hands the event to the recorder. Callers defer it before taking
// s.mu so it runs once the lock is released
func (s *Svc) finish(ctx context.Context, t *trail, res domain.MatchResult, err error) {
	if s.rec == nil {
		return
	}
	if err != nil {
		t.status(err)
	}
	ev := t.ev
	ev.Duration = s.clock.Now().Sub(t.start)
	ev.Matched, ev.Score = res.Matched, res.Score
	if res.ID != nil {
		ev.CandidateID = auditdom.Candidate(*res.ID)
	}
	switch {
	case err != nil:
		ev.Outcome = auditdom.OutcomeError
		ev.ErrorCode = perr.CodeOf(err).String()
	case t.scored && !res.Matched:
		ev.Outcome = auditdom.OutcomeNoMatch
	default:
		ev.Outcome = auditdom.OutcomeOK
	}
	s.rec.Record(ctx, ev)
}
