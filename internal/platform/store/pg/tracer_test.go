package pg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"fingerprintd/internal/platform/logger"

	"github.com/rs/zerolog"
)

func TestCompact(t *testing.T) {
	t.Parallel()

	cases := []struct{ in, want string }{
		{"select 1", "select 1"},
		{"  select   1  ", " select 1 "},
		{"INSERT INTO biometric_events\n\t(id, kind)\r\nVALUES ($1,  $2)", "INSERT INTO biometric_events (id, kind) VALUES ($1, $2)"},
		{"", ""},
	}
	for i, c := range cases {
		if got := compact(c.in); got != c.want {
			t.Fatalf("case %d: compact(%q) = %q, want %q", i, c.in, got, c.want)
		}
	}
}

func TestTracer_LevelsAndFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	tr := Tracer(zerolog.New(&buf))

	type line struct {
		Level     string  `json:"level"`
		ElapsedMS float64 `json:"elapsed_ms"`
		Slow      bool    `json:"slow"`
		SQL       string  `json:"sql"`
		Error     string  `json:"error"`
		Message   string  `json:"message"`
		Component string  `json:"component"`
		RequestID string  `json:"request_id"`
	}

	ev := QueryEvent{
		SQL:       "SELECT  count(*) \n FROM biometric_events",
		ElapsedUS: 2500,
		Err:       errors.New("boom"),
	}
	ctx := logger.WithRequest(context.Background(), "req-9")
	tr.OnQuery(ctx, ev)

	var l line
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &l); err != nil {
		t.Fatalf("unmarshal: %v\nraw=%s", err, buf.String())
	}
	if l.Level != "info" || l.Slow || l.ElapsedMS != 2.5 {
		t.Fatalf("unexpected line %#v", l)
	}
	if l.SQL != "SELECT count(*) FROM biometric_events" || l.Error != "boom" || l.Message != "pg query" {
		t.Fatalf("unexpected line %#v", l)
	}
	if l.Component != "pg" || l.RequestID != "req-9" {
		t.Fatalf("missing context fields %#v", l)
	}

	buf.Reset()
	ev.Slow = true
	tr.OnQuery(context.Background(), ev)
	l = line{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &l); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if l.Level != "warn" || !l.Slow {
		t.Fatalf("slow query should warn: %#v", l)
	}
}
