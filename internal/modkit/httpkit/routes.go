package httpkit

import (
	"net/http"

	str "fingerprintd/internal/platform/strings"
)

// APIPrefix is where every module is mounted
const APIPrefix = "/api"

// MountUnder mounts a subrouter at prefix and applies per-scope middlewares
func MountUnder(r Router, prefix string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route(str.MustPrefix(prefix), func(sub Router) {
		if len(mw) > 0 {
			sub.Use(mw...)
		}
		mount(sub)
	})
}

// MountAPI mounts the unversioned API under /api
//
// example:
//
//	httpkit.MountAPI(r, httpkit.CommonStack(httpkit.StackOptions{}), func(api httpkit.Router) {
//	  biometrics.MountRoutes(api)
//	})
func MountAPI(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountUnder(r, APIPrefix, mw, mount)
}
