package module

import (
	"time"

	"fingerprintd/internal/platform/config"
)

// Options controls the audit queue and worker
type Options struct {
	Queue      int
	Batch      int
	FlushEvery time.Duration
}

// FromConfig reads with FP_AUDIT_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("FP_AUDIT_")
	return Options{
		Queue:      c.MayIntRange("QUEUE", 256, 1, 1<<16),
		Batch:      c.MayIntRange("BATCH", 64, 1, 10000),
		FlushEvery: c.MayDuration("FLUSH_EVERY", time.Second),
	}
}
