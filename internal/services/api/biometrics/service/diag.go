package service

import (
	"context"

	auditdom "fingerprintd/internal/services/audit/domain"
	"fingerprintd/internal/services/api/biometrics/domain"
)

// SelfTest captures the same finger twice and scores the pair.
// The raw driver score is returned, negative values included
func (s *Svc) SelfTest(ctx context.Context) (out domain.SelfTest, err error) {
	t := s.begin(auditdom.KindSelfTest, false)
	defer func() { s.finish(ctx, t, domain.MatchResult{Score: max(out.Score, 0)}, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireOpen(); err != nil {
		return out, err
	}

	a, err := s.acquire(s.cfg.EnrollCaptureTimeout)
	if err != nil {
		t.status(err)
		return out, err
	}
	b, err := s.acquire(s.cfg.EnrollCaptureTimeout)
	if err != nil {
		t.status(err)
		return out, err
	}
	return domain.SelfTest{
		ABytes: len(a.Template),
		BBytes: len(b.Template),
		Score:  s.drv.MatchScore(s.sess.db, a.Template, b.Template),
	}, nil
}

// Info reports readiness and geometry, zero geometry when Closed
func (s *Svc) Info(_ context.Context) domain.Info {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess.state != stateOpen {
		return domain.Info{}
	}
	return domain.Info{Ready: true, Width: s.sess.width, Height: s.sess.height}
}
