// Package module wires meta endpoints into the API using a tiny module
package module

import (
	modkit "fingerprintd/internal/modkit"
	"fingerprintd/internal/modkit/httpkit"
	str "fingerprintd/internal/platform/strings"

	metahttp "fingerprintd/internal/services/api/meta/http"
)

// ServiceName is reported by /meta/version
const ServiceName = "fingerprintd-api"

// Module implements the modkit.Module interface
type Module struct {
	deps  modkit.Deps
	built modkit.Built
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)
	return &Module{deps: deps, built: b}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	d := metahttp.Deps{ServiceName: ServiceName}
	// typed nils must stay nil so the check reports skipped
	if m.deps.PG != nil {
		d.PG = m.deps.PG
	}
	if m.deps.CH != nil {
		d.CH = m.deps.CH
	}
	m.built.Mount(r, func(rr httpkit.Router) {
		metahttp.Register(rr, d)
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.built.Name, "meta") }

// Prefix implements the modkit.Module interface
func (m *Module) Prefix() string { return str.MustPrefix(m.built.Prefix) }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
