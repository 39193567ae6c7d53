package module

import (
	"time"

	"fingerprintd/internal/platform/config"
	"fingerprintd/internal/services/api/biometrics/domain"
)

// Options tunes matching and capture pacing
type Options struct {
	Threshold            int
	CaptureTimeout       time.Duration
	EnrollCaptureTimeout time.Duration
	PollInterval         time.Duration
	SettleDelay          time.Duration
	EnrollMaxAttempts    int // 0 means unbounded
}

// FromConfig reads FP_BIOMETRICS_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("FP_BIOMETRICS_")
	return Options{
		Threshold:            c.MayIntRange("MATCH_THRESHOLD", domain.DefaultThreshold, 1, 100),
		CaptureTimeout:       c.MayDuration("CAPTURE_TIMEOUT", 8*time.Second),
		EnrollCaptureTimeout: c.MayDuration("ENROLL_CAPTURE_TIMEOUT", 10*time.Second),
		PollInterval:         c.MayDuration("POLL_INTERVAL", 60*time.Millisecond),
		SettleDelay:          c.MayDuration("SETTLE_DELAY", 300*time.Millisecond),
		EnrollMaxAttempts:    c.MayIntRange("ENROLL_MAX_ATTEMPTS", 0, 0, 1000),
	}
}
