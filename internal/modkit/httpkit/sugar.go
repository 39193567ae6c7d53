package httpkit

import (
	"net/http"

	phttp "fingerprintd/internal/platform/net/http"
)

// Get registers a body-less handler under GET
func Get(r Router, path string, h func(*http.Request) (any, error)) { phttp.GetJSON(r, path, h) }

// Post registers a body-less handler under POST
func Post(r Router, path string, h func(*http.Request) (any, error)) { phttp.PostNoBody(r, path, h) }

// PostJSON registers a handler under POST that binds T from the body
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error), opts ...JSONOptions) {
	phttp.PostJSON(r, path, h, opts...)
}
