//go:build !(zkfp && cgo)

package drivers

import (
	"errors"

	"fingerprintd/internal/core/sensor"
)

func openZKFP() (sensor.Driver, error) {
	return nil, errors.New("zkfp driver not compiled in; rebuild with -tags zkfp and cgo enabled")
}
