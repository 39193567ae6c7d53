//go:build zkfp && cgo

package drivers

import (
	"fingerprintd/internal/core/sensor"
	"fingerprintd/internal/core/sensor/zkfp"
)

func openZKFP() (sensor.Driver, error) { return zkfp.New(), nil }
