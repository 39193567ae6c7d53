// @title         fingerprintd API
// @version       1.0
// @description   Local HTTP bridge to a USB fingerprint sensor

package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"fingerprintd/internal/core/sensor/drivers"
	"fingerprintd/internal/modkit/repokit"
	"fingerprintd/internal/platform/config"
	"fingerprintd/internal/platform/logger"
	phttp "fingerprintd/internal/platform/net/http"
	"fingerprintd/internal/platform/store"

	"fingerprintd/internal/services/api"
)

func main() {
	root := config.New()
	apiCfg := root.Prefix("FP_API_")
	sensorCfg := root.Prefix("FP_SENSOR_")

	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// audit backends are optional, with neither enabled events go to the log
	st, err := store.Open(ctx, store.ConfigFromEnv("fingerprintd-api"), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	if st.Enabled() {
		repokit.MustGuard(ctx, st)
	}

	drv, err := drivers.Open(drivers.Config{
		Name:       sensorCfg.MayEnum("DRIVER", drivers.Sim, drivers.Sim, drivers.ZKFP),
		SimProfile: sensorCfg.MayString("SIM_PROFILE", ""),
	})
	if err != nil {
		l.Panic().Err(err).Msg("sensor driver unavailable")
	}

	srv := phttp.NewServer(apiCfg)

	mounted := api.Mount(srv.Router(), api.Options{
		Config:         root,
		Store:          st,
		Logger:         l,
		Driver:         drv,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
		CORSOrigins:    apiCfg.MayCSV("CORS_ORIGINS", nil),
		SlowRequest:    apiCfg.MayDuration("SLOW_REQUEST", 0),
	})

	// outlives the server so the close event at shutdown still reaches the sinks
	auditCtx, stopAudit := context.WithCancel(context.Background())
	auditDone := make(chan struct{})
	go func() {
		defer close(auditDone)
		if err := mounted.Audit.Run(auditCtx); err != nil && !errors.Is(err, context.Canceled) {
			l.Error().Err(err).Msg("audit worker stopped")
		}
	}()

	if sensorCfg.MayBool("AUTO_OPEN", false) {
		if err := mounted.Sensor.Open(ctx); err != nil {
			l.Warn().Err(err).Msg("sensor auto open failed, POST /api/device/open to retry")
		}
	}

	if err := srv.Run(ctx); err != nil {
		l.Error().Err(err).Msg("http server stopped")
	}
	stop()

	if err := mounted.Sensor.Close(context.Background()); err != nil {
		l.Warn().Err(err).Msg("sensor close on shutdown")
	}
	stopAudit()
	<-auditDone
	l.Info().Msg("bye")
}
