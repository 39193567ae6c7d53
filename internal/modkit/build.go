package modkit

import (
	"net/http"

	"fingerprintd/internal/modkit/httpkit"
	str "fingerprintd/internal/platform/strings"
)

// Built is a plain struct with the fields modules care about
type Built struct {
	Name     string
	Prefix   string
	Mw       []func(http.Handler) http.Handler
	Ports    any
	Register func(httpkit.Router)
}

// Build applies Option funcs to an internal buildCfg and returns a plain struct
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	if c.register == nil {
		c.register = func(httpkit.Router) {}
	}
	return Built{
		Name:     c.name,
		Prefix:   c.prefix,
		Mw:       append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:    c.ports,
		Register: c.register,
	}
}

// Mount attaches own and the Built extra routes under Prefix with the module middleware.
// An empty prefix mounts in a group on r itself
func (b Built) Mount(r httpkit.Router, own func(httpkit.Router)) {
	attach := func(rr httpkit.Router) {
		if len(b.Mw) > 0 {
			rr.Use(b.Mw...)
		}
		own(rr)
		b.Register(rr)
	}
	if b.Prefix == "" {
		r.Group(attach)
		return
	}
	r.Route(str.MustPrefix(b.Prefix), attach)
}
