package service

import (
	"context"
	"math"

	"fingerprintd/internal/core/sensor"
	perr "fingerprintd/internal/platform/errors"

	auditdom "fingerprintd/internal/services/audit/domain"
	"fingerprintd/internal/services/api/biometrics/domain"
)

// Verify captures a live sample and scores it against stored.
// An empty stored template is a non-match without touching the sensor;
// a failed capture is a non-match, not an error
func (s *Svc) Verify(ctx context.Context, stored string) (res domain.MatchResult, err error) {
	t := s.begin(auditdom.KindVerify, true)
	defer func() { s.finish(ctx, t, res, err) }()

	if stored == "" {
		return domain.NoMatch, nil
	}
	ref, err := domain.DecodeTemplate(stored)
	if err != nil {
		return domain.NoMatch, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireOpen(); err != nil {
		return domain.NoMatch, err
	}

	live, err := s.acquire(s.cfg.CaptureTimeout)
	if err != nil {
		t.status(err)
		s.log(ctx).Info().Err(err).Msg("verify capture failed")
		return domain.NoMatch, nil
	}

	score := s.drv.MatchScore(s.sess.db, ref, live.Template)
	if score < 0 {
		t.status(sensor.Status("MatchScore", score))
		s.log(ctx).Warn().Int("ret", score).Msg("match score failed")
		score = 0
	}
	return domain.MatchResult{Matched: score >= s.cfg.Threshold, Score: score}, nil
}

// Identify loads entries into the emptied match database and returns the best
// candidate for a live capture. Bad entries are logged and skipped
func (s *Svc) Identify(ctx context.Context, entries []domain.Entry) (res domain.MatchResult, err error) {
	t := s.begin(auditdom.KindIdentify, true)
	defer func() { s.finish(ctx, t, res, err) }()

	if len(entries) == 0 {
		return domain.NoMatch, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireOpen(); err != nil {
		return domain.NoMatch, err
	}
	log := s.log(ctx)

	// a stale database could answer with an id from an earlier call
	if err := s.drv.ClearDB(s.sess.db); err != nil {
		t.status(err)
		log.Warn().Err(err).Int("ret", sensor.CodeOf(err)).Msg("identify could not clear match database")
		return domain.NoMatch, nil
	}

	loaded := 0
	for i, e := range entries {
		if err := s.load(e); err != nil {
			log.Warn().Err(err).Int("index", i).Int64("id", e.ID).Msg("identify entry skipped")
			continue
		}
		loaded++
	}
	t.ev.CandidateCount = loaded

	live, err := s.acquire(s.cfg.CaptureTimeout)
	if err != nil {
		t.status(err)
		log.Info().Err(err).Msg("identify capture failed")
		return domain.NoMatch, nil
	}

	id, score, err := s.drv.IdentifyBest(s.sess.db, live.Template)
	if err != nil {
		t.status(err)
		log.Info().Err(err).Msg("identify found no candidate")
		return domain.NoMatch, nil
	}
	score = max(score, 0)
	if score >= s.cfg.Threshold {
		return domain.MatchResult{Matched: true, Score: score, ID: &id}, nil
	}
	return domain.MatchResult{Score: score}, nil
}

func (s *Svc) load(e domain.Entry) error {
	if e.ID < 0 || e.ID > math.MaxUint32 {
		return perr.Newf(perr.ErrorCodeMatchDatabaseLoad, "id out of range")
	}
	tpl, err := domain.DecodeTemplate(e.Template)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeMatchDatabaseLoad, "bad template")
	}
	if err := s.drv.AddIdentity(s.sess.db, uint32(e.ID), tpl); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeMatchDatabaseLoad, "add identity failed (ret=%d)", sensor.CodeOf(err))
	}
	return nil
}
