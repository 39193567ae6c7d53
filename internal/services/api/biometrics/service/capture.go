package service

import (
	"bytes"
	"time"

	"fingerprintd/internal/core/sensor"
	perr "fingerprintd/internal/platform/errors"

	"fingerprintd/internal/services/api/biometrics/domain"
)

// minCaptureTimeout floors every capture deadline
const minCaptureTimeout = time.Second

// acquire polls CaptureOnce until a sample arrives or the deadline passes.
// Wall time is at most timeout plus one poll interval plus driver time.
// Caller holds s.mu and has checked the session is open
func (s *Svc) acquire(timeout time.Duration) (domain.Sample, error) {
	timeout = max(timeout, minCaptureTimeout)
	deadline := s.clock.Now().Add(timeout)

	image := make([]byte, s.sess.width*s.sess.height)
	tpl := make([]byte, sensor.MaxTemplateSize)

	var last error
	for {
		n, err := s.drv.CaptureOnce(s.sess.dev, image, tpl)
		if err == nil && n > 0 {
			return domain.Sample{Image: image, Template: bytes.Clone(tpl[:min(n, len(tpl))])}, nil
		}
		if err == nil {
			err = sensor.Status("CaptureOnce", sensor.StatusExtract)
		}
		last = err

		s.clock.Sleep(s.cfg.PollInterval)
		if !s.clock.Now().Before(deadline) {
			break
		}
	}
	return domain.Sample{}, perr.Wrapf(last, perr.ErrorCodeCaptureTimeout,
		"no fingerprint captured within %s (ret=%d)", timeout, sensor.CodeOf(last))
}
