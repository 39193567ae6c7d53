package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	perr "fingerprintd/internal/platform/errors"
	"fingerprintd/internal/platform/logger"
	pnet "fingerprintd/internal/platform/net"
)

// RecoverJSON converts panics into {ok:false,error} 500s; the stack goes to the log only
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			status, body := pnet.Error(perr.PanicErrf("internal error"), pnet.RequestID(r.Context()))
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(body)
		}()
		next.ServeHTTP(w, r)
	})
}
