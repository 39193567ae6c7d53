// Package service runs the sensor session and the biometric workflows on top of it.
// Every device operation is serialized by one mutex, held across capture sleeps
package service

import (
	"context"
	"sync"
	"time"

	"fingerprintd/internal/core/sensor"
	"fingerprintd/internal/platform/logger"
	ptime "fingerprintd/internal/platform/time"

	auditdom "fingerprintd/internal/services/audit/domain"
	"fingerprintd/internal/services/api/biometrics/domain"
)

// Service defines the service contract for biometrics
type Service interface{ domain.ServicePort }

// Config tunes thresholds and timings
type Config struct {
	Threshold            int
	CaptureTimeout       time.Duration
	EnrollCaptureTimeout time.Duration
	PollInterval         time.Duration
	SettleDelay          time.Duration
	// EnrollMaxAttempts caps capture attempts per enrollment, 0 means unbounded
	EnrollMaxAttempts int
}

// DefaultConfig matches the vendor demo timings
func DefaultConfig() Config {
	return Config{
		Threshold:            domain.DefaultThreshold,
		CaptureTimeout:       8 * time.Second,
		EnrollCaptureTimeout: 10 * time.Second,
		PollInterval:         60 * time.Millisecond,
		SettleDelay:          300 * time.Millisecond,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Threshold <= 0 {
		c.Threshold = d.Threshold
	}
	if c.CaptureTimeout <= 0 {
		c.CaptureTimeout = d.CaptureTimeout
	}
	if c.EnrollCaptureTimeout <= 0 {
		c.EnrollCaptureTimeout = d.EnrollCaptureTimeout
	}
	if c.PollInterval <= 0 {
		c.PollInterval = d.PollInterval
	}
	if c.SettleDelay <= 0 {
		c.SettleDelay = d.SettleDelay
	}
	if c.EnrollMaxAttempts < 0 {
		c.EnrollMaxAttempts = 0
	}
	return c
}

// Svc implements Service over a sensor.Driver
type Svc struct {
	mu   sync.Mutex
	sess session

	drv   sensor.Driver
	cfg   Config
	clock ptime.Clock
	rec   auditdom.RecorderPort
}

// New builds the service in the Closed state. rec may be nil, clock nil means wall time
func New(drv sensor.Driver, cfg Config, rec auditdom.RecorderPort, clock ptime.Clock) *Svc {
	if drv == nil {
		panic("biometrics.Service requires a non nil sensor.Driver")
	}
	if clock == nil {
		clock = ptime.System
	}
	return &Svc{drv: drv, cfg: cfg.withDefaults(), clock: clock, rec: rec}
}

// Config returns the effective configuration
func (s *Svc) Config() Config { return s.cfg }

func (s *Svc) log(ctx context.Context) *logger.Logger {
	l := logger.C(ctx).With().Str("component", "biometrics").Logger()
	return &l
}
