// Package module wires the audit trail and exposes its ports
package module

import (
	"fingerprintd/internal/modkit"
	"fingerprintd/internal/modkit/httpkit"
	"fingerprintd/internal/modkit/repokit"
	ptime "fingerprintd/internal/platform/time"

	dom "fingerprintd/internal/services/audit/domain"
	"fingerprintd/internal/services/audit/repo"
	"fingerprintd/internal/services/audit/service"
)

// Module defines the audit module
type Module struct {
	deps  modkit.Deps
	sinks []string
	ports Ports
}

// New constructs the audit module. Each enabled backend becomes a sink;
// with neither enabled events go to the log
func New(deps modkit.Deps, overrides Options) *Module {
	opts := FromConfig(deps.Cfg)
	if overrides.Queue != 0 {
		opts.Queue = overrides.Queue
	}
	if overrides.Batch != 0 {
		opts.Batch = overrides.Batch
	}
	if overrides.FlushEvery != 0 {
		opts.FlushEvery = overrides.FlushEvery
	}

	var sinks []dom.Sink
	if deps.PG != nil {
		sinks = append(sinks, repokit.MustBind(repo.NewPG(), deps.PG))
	}
	if deps.CH != nil {
		sinks = append(sinks, repo.NewCH(deps.CH))
	}
	if len(sinks) == 0 {
		log := deps.Log.With().Str("component", "audit").Logger()
		sinks = append(sinks, repo.NewLog(&log))
	}

	svc := service.New(service.Config{
		Queue:      opts.Queue,
		Batch:      opts.Batch,
		FlushEvery: opts.FlushEvery,
	}, ptime.System, sinks...)

	m := &Module{deps: deps}
	for _, s := range sinks {
		m.sinks = append(m.sinks, s.Name())
	}
	m.ports = Ports{
		Recorder: svc,
		Worker:   svc,
	}
	return m
}

// Sinks names the configured sinks in write order
func (m *Module) Sinks() []string { return m.sinks }

// Ports returns the module ports (Recorder, Worker)
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "audit" }

// MountRoutes returns no HTTP routes
func (m *Module) MountRoutes(_ httpkit.Router) {}
