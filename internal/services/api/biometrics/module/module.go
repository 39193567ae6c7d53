// Package module wires biometrics into the API using modkit
package module

import (
	"time"

	modkit "fingerprintd/internal/modkit"
	"fingerprintd/internal/modkit/httpkit"

	bhttp "fingerprintd/internal/services/api/biometrics/http"
	bsvc "fingerprintd/internal/services/api/biometrics/service"

	ptime "fingerprintd/internal/platform/time"
)

// Module implements the biometrics API module
type Module struct {
	deps  modkit.Deps
	built modkit.Built
	svc   *bsvc.Svc
}

// New constructs the biometrics module. Routes mount at the root
// unless modkit.WithPrefix says otherwise
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("biometrics"),
	}, opts...)...)

	injected, _ := b.Ports.(Ports)
	if injected.Driver == nil {
		panic("biometrics API module requires a Driver port (from core/sensor)")
	}

	o := FromConfig(deps.Cfg)
	svc := bsvc.New(injected.Driver, bsvc.Config{
		Threshold:            o.Threshold,
		CaptureTimeout:       o.CaptureTimeout,
		EnrollCaptureTimeout: o.EnrollCaptureTimeout,
		PollInterval:         o.PollInterval,
		SettleDelay:          o.SettleDelay,
		EnrollMaxAttempts:    o.EnrollMaxAttempts,
	}, injected.Recorder, ptime.System)

	return &Module{deps: deps, built: b, svc: svc}
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) {
		bhttp.Register(rr, m.svc, time.Now)
	})
}

// Name returns the module name
func (m *Module) Name() string { return m.built.Name }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return m.built.Prefix }
