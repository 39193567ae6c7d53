// Package swaggerkit mounts Swagger UI and the JSON spec
package swaggerkit

import (
	"net/http"

	phttp "fingerprintd/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Mount the Swagger UI and JSON spec under base+"/docs" if enabled
func Mount(r phttp.Router, base string, enabled bool) {
	if !enabled {
		return
	}
	root := base + "/docs"
	r.Get(root, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, root+"/", http.StatusPermanentRedirect)
	})
	r.Get(root+"/doc.json", serveDocJSON(base))
	r.Handle(root+"/*", httpSwagger.Handler(
		httpSwagger.InstanceName("api"),
		httpSwagger.URL(root+"/doc.json"),
	))
}
