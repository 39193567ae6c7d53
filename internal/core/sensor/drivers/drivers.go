// Package drivers picks a sensor.Driver implementation by name
package drivers

import (
	"fmt"
	"strings"

	"fingerprintd/internal/core/sensor"
	"fingerprintd/internal/core/sensor/sim"
)

const (
	// Sim is the in-process simulated sensor
	Sim = "sim"
	// ZKFP is the ZKTeco libzkfp hardware driver (needs -tags zkfp)
	ZKFP = "zkfp"
)

// Config selects and configures a driver
type Config struct {
	Name       string
	SimProfile string
}

// Open returns the driver named in cfg
func Open(cfg Config) (sensor.Driver, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Name)) {
	case "", Sim:
		p, err := sim.LoadProfile(cfg.SimProfile)
		if err != nil {
			return nil, fmt.Errorf("load sim profile: %w", err)
		}
		return sim.New(p), nil
	case ZKFP:
		return openZKFP()
	default:
		return nil, fmt.Errorf("unknown sensor driver %q", cfg.Name)
	}
}
