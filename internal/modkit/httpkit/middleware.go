package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"fingerprintd/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	CORSOrigins []string
	// SlowRequest marks access log lines at warn, 0 disables
	SlowRequest time.Duration
}

// CommonStack returns the baseline middleware for every /api route.
// There is no request timeout: captures block for seconds and cannot be cancelled
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		// correlation
		middleware.RequestID(),
		middleware.RealIP(),

		// safety
		middleware.RecoverJSON,

		middleware.NoCache(),

		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.SlowRequest}),

		// browsers call the sensor from kiosk pages on other origins
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
		middleware.Preflight(),

		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes(),
	}
}
