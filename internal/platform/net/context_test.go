package net_test

import (
	"context"
	"testing"

	"fingerprintd/internal/platform/logger"
	pnet "fingerprintd/internal/platform/net"

	chimw "github.com/go-chi/chi/v5/middleware"
)

func TestWithRequest(t *testing.T) {
	base := context.Background()

	if ctx := pnet.WithRequest(base, ""); ctx != base {
		t.Fatalf("empty id should leave ctx unchanged")
	}

	ctx := pnet.WithRequest(base, "req-123")
	if got := pnet.RequestID(ctx); got != "req-123" {
		t.Fatalf("RequestID = %q", got)
	}
	if got := chimw.GetReqID(ctx); got != "req-123" {
		t.Fatalf("chi should see the id, got %q", got)
	}
	if got := logger.RequestID(ctx); got != "req-123" {
		t.Fatalf("logger should see the id, got %q", got)
	}
}

func TestRequestID_FallsBackToLogger(t *testing.T) {
	ctx := logger.WithRequest(context.Background(), "from-logger")
	if got := pnet.RequestID(ctx); got != "from-logger" {
		t.Fatalf("RequestID = %q", got)
	}
	if got := pnet.RequestID(context.Background()); got != "" {
		t.Fatalf("empty ctx = %q", got)
	}
}
