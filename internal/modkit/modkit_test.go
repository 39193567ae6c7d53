package modkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"fingerprintd/internal/modkit/httpkit"
	"fingerprintd/internal/platform/config"
	"fingerprintd/internal/platform/logger"
	phttp "fingerprintd/internal/platform/net/http"
	"fingerprintd/internal/platform/store"

	"github.com/go-chi/chi/v5"
)

func TestBuild_Defaults(t *testing.T) {
	t.Parallel()

	b := Build()
	if b.Name != "" || b.Prefix != "" || b.Ports != nil || len(b.Mw) != 0 {
		t.Fatalf("unexpected defaults %#v", b)
	}
	b.Register(nil) // default is a no-op
}

func TestBuild_OptionsAndCopy(t *testing.T) {
	t.Parallel()

	mw := func(next http.Handler) http.Handler { return next }
	type ports struct{ N int }

	opts := []Option{
		WithName("audit"),
		WithPrefix("/audit"),
		WithMiddlewares(mw),
		WithMiddlewares(mw),
		WithPorts(ports{N: 3}),
	}
	b := Build(opts...)
	if b.Name != "audit" || b.Prefix != "/audit" || len(b.Mw) != 2 {
		t.Fatalf("unexpected build %#v", b)
	}
	if p, ok := b.Ports.(ports); !ok || p.N != 3 {
		t.Fatalf("ports = %#v", b.Ports)
	}

	b.Mw[0] = nil
	if Build(opts...).Mw[0] == nil {
		t.Fatal("Build must copy middleware")
	}
}

func serve(t *testing.T, b Built, path string) *httptest.ResponseRecorder {
	t.Helper()
	mux := chi.NewRouter()
	mux.NotFound(phttp.NotFound)
	b.Mount(phttp.AdaptChi(mux), func(r httpkit.Router) {
		httpkit.Get(r, "/own", func(*http.Request) (any, error) { return nil, nil })
	})
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func TestBuilt_Mount(t *testing.T) {
	t.Parallel()

	var seen int
	mw := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen++
			next.ServeHTTP(w, r)
		})
	}
	extra := WithRegister(func(r phttp.Router) {
		httpkit.Get(r, "/extra", func(*http.Request) (any, error) { return nil, nil })
	})

	prefixed := Build(WithPrefix("meta"), WithMiddlewares(mw), extra)
	for _, p := range []string{"/meta/own", "/meta/extra"} {
		if rr := serve(t, prefixed, p); rr.Code != http.StatusOK {
			t.Fatalf("%s status = %d", p, rr.Code)
		}
	}
	if seen != 2 {
		t.Fatalf("module middleware ran %d times", seen)
	}

	flat := Build(extra)
	if rr := serve(t, flat, "/own"); rr.Code != http.StatusOK {
		t.Fatalf("flat mount status = %d", rr.Code)
	}
	if rr := serve(t, flat, "/meta/own"); rr.Code != http.StatusNotFound {
		t.Fatalf("flat mount should not add a prefix, got %d", rr.Code)
	}
}

func TestFromStore(t *testing.T) {
	t.Parallel()

	d := FromStore(*logger.Get(), config.New(), nil)
	if d.PG != nil || d.CH != nil {
		t.Fatal("nil store should leave backends nil")
	}
	d = FromStore(*logger.Get(), config.New(), &store.Store{})
	if d.PG != nil || d.CH != nil {
		t.Fatal("empty store should leave backends nil")
	}
}
