package store

import (
	"time"

	"fingerprintd/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG PGConfig
	CH CHConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// boot knobs, zero means default
	ConnectRetries int           // default 20
	PingTimeout    time.Duration // default 3s
}

// CHConfig configures clickhouse connectivity
type CHConfig struct {
	Enabled bool
	URL     string
}

// ConfigFromEnv reads SERVICE_PGSQL_* and SERVICE_CLICKHOUSE_*.
// A backend that is enabled without a DBURL panics at boot
func ConfigFromEnv(appName string) Config {
	pgc := config.New().Prefix("SERVICE_PGSQL_")
	chc := config.New().Prefix("SERVICE_CLICKHOUSE_")

	cfg := Config{
		AppName: appName,
		PG: PGConfig{
			Enabled:        pgc.MayBool("ENABLED", false),
			MaxConns:       int32(pgc.MayIntRange("MAX_CONNS", 4, 1, 256)),
			LogSQL:         pgc.MayBool("LOG_SQL", false),
			SlowQueryMs:    pgc.MayInt("SLOW_MS", 200),
			ConnectRetries: pgc.MayIntRange("CONNECT_RETRIES", 20, 1, 1000),
			PingTimeout:    pgc.MayDuration("PING_TIMEOUT", 3*time.Second),
		},
		CH: CHConfig{
			Enabled: chc.MayBool("ENABLED", false),
		},
	}
	if cfg.PG.Enabled {
		cfg.PG.URL = pgc.MustString("DBURL")
	}
	if cfg.CH.Enabled {
		cfg.CH.URL = chc.MustString("DBURL")
	}
	return cfg
}
