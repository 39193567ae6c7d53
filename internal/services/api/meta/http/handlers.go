// Package http provides meta endpoints
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"fingerprintd/internal/core/version"
	"fingerprintd/internal/modkit/httpkit"
	pnet "fingerprintd/internal/platform/net"
	"fingerprintd/internal/platform/store"
)

// Deps are the handler dependencies
// PG and CH are nil when the backend is disabled
type Deps struct {
	ServiceName string
	PG          any
	CH          any
	Now         func() time.Time
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	if d.Now == nil {
		d.Now = time.Now
	}
	h := &handlers{deps: d}

	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/ready", h.ready)
}

// VersionResponse is the build info payload
type VersionResponse struct {
	pnet.Ack
	version.BuildInfo
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"   example:"pg"`
	Status string `json:"status" example:"ok"` // ok fail skipped unknown
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432: connect: connection refused"`
}

// ReadyResponse summarizes readiness of the audit stores
type ReadyResponse struct {
	pnet.Ack
	Status string       `json:"status" example:"ok"` // ok fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-10-15T13:05:00Z"`
}

// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} VersionResponse
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return VersionResponse{Ack: pnet.Done, BuildInfo: version.Info(h.deps.ServiceName)}, nil
}

// @Summary Readiness of the audit stores
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	check := func(name string, c any) ReadyCheck {
		if c == nil {
			return ReadyCheck{Name: name, Status: "skipped"}
		}
		p, ok := c.(store.Pinger)
		if !ok {
			return ReadyCheck{Name: name, Status: "unknown"}
		}
		if err := p.Ping(ctx); err != nil {
			return ReadyCheck{Name: name, Status: "fail", Error: err.Error()}
		}
		return ReadyCheck{Name: name, Status: "ok"}
	}

	checks := []ReadyCheck{check("pg", h.deps.PG), check("ch", h.deps.CH)}
	overall := "ok"
	for _, c := range checks {
		if c.Status == "fail" {
			overall = "fail"
		}
	}

	return ReadyResponse{
		Ack:    pnet.Done,
		Status: overall,
		Checks: checks,
		Now:    h.deps.Now().UTC().Format(time.RFC3339),
	}, nil
}
