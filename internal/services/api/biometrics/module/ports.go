package module

import (
	"fingerprintd/internal/core/sensor"
	auditdom "fingerprintd/internal/services/audit/domain"
)

// Ports declares what the API module needs injected
type Ports struct {
	Driver   sensor.Driver
	Recorder auditdom.RecorderPort // optional
}

// Ports returns the biometrics service as domain.ServicePort
func (m *Module) Ports() any { return m.svc }
