package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"fingerprintd/internal/core/sensor/sensortest"
	"fingerprintd/internal/platform/config"
	phttp "fingerprintd/internal/platform/net/http"
	"fingerprintd/internal/platform/store"
	"fingerprintd/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

func mount(t *testing.T, swagger bool) (http.Handler, Mounted) {
	t.Helper()
	mux := chi.NewRouter()
	m := Mount(phttp.AdaptChi(mux), Options{
		Config:        config.New(),
		Store:         &store.Store{},
		Driver:        &sensortest.Fake{},
		EnableSwagger: swagger,
	})
	return mux, m
}

func do(h http.Handler, method, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	if method == http.MethodOptions {
		req.Header.Set("Origin", "http://kiosk.local")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	}
	h.ServeHTTP(rr, req)
	return rr
}

func TestMount_Routes(t *testing.T) {
	h, m := mount(t, false)
	if m.Audit == nil || m.Sensor == nil {
		t.Fatalf("mounted = %+v", m)
	}

	cases := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/api/ping", http.StatusOK},
		{http.MethodGet, "/api/meta/version", http.StatusOK},
		{http.MethodGet, "/api/meta/ready", http.StatusOK},
		{http.MethodPost, "/api/device/open", http.StatusOK},
		{http.MethodGet, "/api/debug/info", http.StatusOK},
		{http.MethodGet, "/api/enroll", http.StatusMethodNotAllowed},
		{http.MethodGet, "/api/nope", http.StatusNotFound},
		{http.MethodOptions, "/api/verify", http.StatusNoContent},
		{http.MethodGet, "/api/docs/doc.json", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rr := do(h, tc.method, tc.path)
			if rr.Code != tc.status {
				t.Fatalf("status = %d, want %d: %s", rr.Code, tc.status, rr.Body.String())
			}
		})
	}

	if !m.Sensor.Info(context.Background()).Ready {
		t.Fatal("sensor should be open after /api/device/open")
	}
	if err := m.Sensor.Close(context.Background()); err != nil {
		t.Fatal(err)
	}
}

func TestMount_ErrorEnvelope(t *testing.T) {
	h, _ := mount(t, false)
	rr := do(h, http.MethodPost, "/api/enroll")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rr.Code)
	}
	body := testkit.MustJSON(t, rr.Body.Bytes())
	if body["ok"] != false || body["error"] == "" {
		t.Fatalf("body = %v", body)
	}
}

func TestMount_Swagger(t *testing.T) {
	h, _ := mount(t, true)
	rr := do(h, http.MethodGet, "/api/docs/doc.json")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body := testkit.MustJSON(t, rr.Body.Bytes())
	if _, ok := body["paths"]; !ok {
		t.Fatalf("doc.json without paths: %v", body)
	}
}
