package http_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fingerprintd/internal/platform/config"
	phttp "fingerprintd/internal/platform/net/http"
)

func jsonBody(s string) io.Reader { return strings.NewReader(s) }

func newAPI(t *testing.T) *phttp.Server {
	t.Helper()
	srv := phttp.NewServer(config.New().Prefix("FPTEST_API_"))
	srv.Router().Route("/api", func(api phttp.Router) {
		api.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("X-Scope", "api")
				next.ServeHTTP(w, r)
			})
		})
		phttp.GetJSON(api, "/ping", func(*http.Request) (any, error) { return nil, nil })
		phttp.PostNoBody(api, "/device/open", func(*http.Request) (any, error) { return nil, nil })
		api.Group(func(g phttp.Router) {
			phttp.PostJSON(g, "/echo", func(_ *http.Request, in map[string]any) (any, error) {
				return map[string]any{"ok": true, "in": in}, nil
			})
		})
	})
	return srv
}

func TestServer_DefaultAddr(t *testing.T) {
	if got := newAPI(t).Addr(); got != phttp.DefaultAddr {
		t.Fatalf("Addr = %q, want %q", got, phttp.DefaultAddr)
	}
}

func TestServer_RoutesAndFallbacks(t *testing.T) {
	h := newAPI(t).Handler()

	cases := []struct {
		method, path string
		status       int
		scoped       bool
	}{
		{"GET", "/api/ping", 200, true},
		{"POST", "/api/device/open", 200, true},
		{"POST", "/api/echo", 200, true},
		{"GET", "/api/device/open", 405, true},
		{"GET", "/api/nope", 404, true},
		{"GET", "/elsewhere", 404, false},
	}
	for _, c := range cases {
		t.Run(c.method+" "+c.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(c.method, c.path, jsonBody(`{"a":1}`)))
			if rec.Code != c.status {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, c.status, rec.Body.String())
			}
			if c.scoped && rec.Header().Get("X-Scope") != "api" {
				t.Fatalf("api middleware did not run")
			}
			if !strings.Contains(rec.Body.String(), `"ok"`) {
				t.Fatalf("body lacks ok flag: %s", rec.Body.String())
			}
		})
	}
}

func TestServer_ServeAndShutdown(t *testing.T) {
	srv := newAPI(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	res, err := http.Get("http://" + ln.Addr().String() + "/api/ping")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	_ = res.Body.Close()
	if res.StatusCode != 200 {
		t.Fatalf("status = %d", res.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not stop")
	}
}

func TestMountProfiler(t *testing.T) {
	srv := phttp.NewServer(config.New().Prefix("FPTEST_API_"))
	phttp.MountProfiler(srv.Router(), "/debug", true)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/debug/pprof/cmdline", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("pprof status = %d", rec.Code)
	}

	off := phttp.NewServer(config.New().Prefix("FPTEST_API_"))
	phttp.MountProfiler(off.Router(), "/debug", false)
	rec = httptest.NewRecorder()
	off.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/debug/pprof/cmdline", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("disabled profiler status = %d", rec.Code)
	}
}
