// Package api provides the HTTP API for the application
package api

import (
	"time"

	"fingerprintd/internal/core/sensor"
	"fingerprintd/internal/platform/config"
	"fingerprintd/internal/platform/logger"
	phttp "fingerprintd/internal/platform/net/http"
	"fingerprintd/internal/platform/store"

	"fingerprintd/internal/modkit"
	"fingerprintd/internal/modkit/httpkit"
	"fingerprintd/internal/modkit/module"
	"fingerprintd/internal/modkit/swaggerkit"

	biomod "fingerprintd/internal/services/api/biometrics/module"
	metamod "fingerprintd/internal/services/api/meta/module"

	biodom "fingerprintd/internal/services/api/biometrics/domain"

	// audit worker module (owns the Recorder and Worker ports)
	auditdom "fingerprintd/internal/services/audit/domain"
	auditmod "fingerprintd/internal/services/audit/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	Driver         sensor.Driver
	EnableSwagger  bool
	EnableProfiler bool
	CORSOrigins    []string
	SlowRequest    time.Duration
}

// Mounted hands the long running pieces back to the caller
type Mounted struct {
	// Audit must be run for recorded events to reach the sinks
	Audit auditdom.WorkerPort
	// Sensor is the biometrics service, closed by the caller on shutdown
	Sensor biodom.ServicePort
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) Mounted {
	log := opt.Logger
	if log == nil {
		log = logger.Get()
	}
	deps := modkit.FromStore(*log, opt.Config, opt.Store)

	// audit first, biometrics records into it
	audit := auditmod.New(deps, auditmod.Options{})
	ports := module.MustPortsOf[auditmod.Ports](audit)

	bio := biomod.New(deps, modkit.WithPorts(biomod.Ports{
		Driver:   opt.Driver,
		Recorder: ports.Recorder,
	}))

	mods := []module.Module{
		audit,
		bio,
		metamod.New(deps),
	}

	// must precede MountAPI so the /api subrouter inherits them
	r.NotFound(phttp.NotFound)
	r.MethodNotAllowed(phttp.MethodNotAllowed)

	stack := httpkit.CommonStack(httpkit.StackOptions{
		CORSOrigins: opt.CORSOrigins,
		SlowRequest: opt.SlowRequest,
	})
	httpkit.MountAPI(r, stack, func(api httpkit.Router) {
		for _, m := range mods {
			// register each module's ports under its own name for cross module lookups
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})

	swaggerkit.Mount(r, httpkit.APIPrefix, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	return Mounted{
		Audit:  ports.Worker,
		Sensor: module.MustPortsOf[biodom.ServicePort](bio),
	}
}
