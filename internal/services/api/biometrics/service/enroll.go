package service

import (
	"bytes"
	"context"

	"fingerprintd/internal/core/sensor"
	perr "fingerprintd/internal/platform/errors"

	auditdom "fingerprintd/internal/services/audit/domain"
	"fingerprintd/internal/services/api/biometrics/domain"
)

const enrollSamples = 3

// Enroll captures three reads of one finger and returns their fused template.
// Each read after the first must score above zero against the one before it,
// otherwise it is discarded and the slot is captured again
func (s *Svc) Enroll(ctx context.Context) (tpl []byte, err error) {
	t := s.begin(auditdom.KindEnroll, false)
	defer func() { s.finish(ctx, t, domain.NoMatch, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireOpen(); err != nil {
		return nil, err
	}
	log := s.log(ctx)

	var accepted [enrollSamples][]byte
	attempts := 0
	for idx := 0; idx < enrollSamples; {
		if limit := s.cfg.EnrollMaxAttempts; limit > 0 && attempts >= limit {
			return nil, perr.Newf(perr.ErrorCodeEnrollExhausted,
				"enrollment gave up after %d attempts with %d of %d samples", attempts, idx, enrollSamples)
		}
		attempts++

		smp, err := s.acquire(s.cfg.EnrollCaptureTimeout)
		if err != nil {
			t.status(err)
			log.Warn().Err(err).Int("slot", idx).Msg("enroll capture failed, retrying slot")
			continue
		}
		if idx > 0 {
			if sc := s.drv.MatchScore(s.sess.db, accepted[idx-1], smp.Template); sc <= 0 {
				log.Info().Int("slot", idx).Int("score", sc).Msg("enroll sample rejected, not the same finger")
				continue
			}
		}
		accepted[idx] = smp.Template
		idx++
		s.clock.Sleep(s.cfg.SettleDelay)
	}

	out := make([]byte, sensor.MaxTemplateSize)
	n, err := s.drv.FuseTemplates(s.sess.db, accepted[0], accepted[1], accepted[2], out)
	if err != nil {
		t.status(err)
		return nil, perr.Wrapf(err, perr.ErrorCodeFusion, "fuse templates failed (ret=%d)", sensor.CodeOf(err))
	}
	log.Info().Int("attempts", attempts).Int("bytes", n).Msg("enrolled")
	return bytes.Clone(out[:min(n, len(out))]), nil
}
