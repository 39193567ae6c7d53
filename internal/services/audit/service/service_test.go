package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fingerprintd/internal/platform/logger"
	ptime "fingerprintd/internal/platform/time"

	dom "fingerprintd/internal/services/audit/domain"

	"github.com/google/uuid"
)

type fakeSink struct {
	mu        sync.Mutex
	name      string
	ensureErr error
	writeErr  error
	failOnce  error
	batches   [][]dom.Event
	wrote     chan int
}

func newSink(name string) *fakeSink { return &fakeSink{name: name, wrote: make(chan int, 64)} }

func (f *fakeSink) Name() string                 { return f.name }
func (f *fakeSink) Ensure(context.Context) error { return f.ensureErr }

func (f *fakeSink) WriteBatch(_ context.Context, xs []dom.Event) error {
	f.mu.Lock()
	f.batches = append(f.batches, append([]dom.Event(nil), xs...))
	err := f.writeErr
	if f.failOnce != nil {
		err, f.failOnce = f.failOnce, nil
	}
	f.mu.Unlock()
	f.wrote <- len(xs)
	return err
}

func (f *fakeSink) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, b := range f.batches {
		n += len(b)
	}
	return n
}

func waitWrite(t *testing.T, f *fakeSink) int {
	t.Helper()
	select {
	case n := <-f.wrote:
		return n
	case <-time.After(2 * time.Second):
		t.Fatalf("sink %s saw no write", f.name)
		return 0
	}
}

func TestRecord_Stamps(t *testing.T) {
	clk := ptime.NewFake(time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC))
	s := New(Config{Queue: 4}, clk)

	ctx := logger.WithRequest(context.Background(), "req-7")
	s.Record(ctx, dom.Event{Kind: dom.KindVerify})

	ev := <-s.queue
	if ev.ID == uuid.Nil {
		t.Fatal("id not assigned")
	}
	if !ev.At.Equal(clk.Now()) {
		t.Fatalf("at = %v", ev.At)
	}
	if ev.RequestID != "req-7" {
		t.Fatalf("request id = %q", ev.RequestID)
	}

	keep := uuid.New()
	s.Record(ctx, dom.Event{ID: keep, RequestID: "mine"})
	ev = <-s.queue
	if ev.ID != keep || ev.RequestID != "mine" {
		t.Fatalf("caller fields overwritten: %+v", ev)
	}
}

func TestRecord_DropsWhenFull(t *testing.T) {
	s := New(Config{Queue: 2}, nil)
	for i := 0; i < 5; i++ {
		s.Record(context.Background(), dom.Event{Kind: dom.KindOpen})
	}
	if s.Pending() != 2 {
		t.Fatalf("pending = %d", s.Pending())
	}
	if s.Dropped() != 3 {
		t.Fatalf("dropped = %d", s.Dropped())
	}
}

func TestNew_Defaults(t *testing.T) {
	s := New(Config{}, nil)
	if s.cfg.Queue != 256 || s.cfg.Batch != 64 || s.cfg.FlushEvery != time.Second {
		t.Fatalf("cfg = %+v", s.cfg)
	}
	if cap(s.queue) != 256 {
		t.Fatalf("queue cap = %d", cap(s.queue))
	}
}

func TestRun_EnsureFailureStops(t *testing.T) {
	sk := newSink("pg")
	sk.ensureErr = errors.New("relation denied")
	s := New(Config{}, nil, sk)
	if err := s.Run(context.Background()); !errors.Is(err, sk.ensureErr) {
		t.Fatalf("err = %v", err)
	}
}

func TestRun_FlushesFullBatch(t *testing.T) {
	sk := newSink("ch")
	s := New(Config{Queue: 16, Batch: 3, FlushEvery: time.Hour}, nil, sk)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	for i := 0; i < 3; i++ {
		s.Record(ctx, dom.Event{Kind: dom.KindIdentify})
	}
	if n := waitWrite(t, sk); n != 3 {
		t.Fatalf("batch size = %d", n)
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("run err = %v", err)
	}
}

func TestRun_FlushesOnTick(t *testing.T) {
	sk := newSink("log")
	s := New(Config{Queue: 16, Batch: 100, FlushEvery: 10 * time.Millisecond}, nil, sk)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = s.Run(ctx) }()

	s.Record(ctx, dom.Event{Kind: dom.KindEnroll})
	if n := waitWrite(t, sk); n != 1 {
		t.Fatalf("batch size = %d", n)
	}
}

func TestRun_DrainsOnShutdown(t *testing.T) {
	a, b := newSink("pg"), newSink("ch")
	b.writeErr = errors.New("ch down")
	s := New(Config{Queue: 16, Batch: 100, FlushEvery: time.Hour}, nil, a, b)

	for i := 0; i < 4; i++ {
		s.Record(context.Background(), dom.Event{Kind: dom.KindClose})
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = s.Run(ctx)

	// a failing sink does not stop the others
	if a.total() != 4 || b.total() != 4 {
		t.Fatalf("totals = %d, %d", a.total(), b.total())
	}
	if s.Pending() != 0 {
		t.Fatalf("pending = %d", s.Pending())
	}
}

func TestFlush_RetriesTransientOnce(t *testing.T) {
	clk := ptime.NewFake(time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC))
	flaky, broken := newSink("pg"), newSink("ch")
	flaky.failOnce = errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")
	broken.writeErr = errors.New("syntax error at or near VALUES")
	s := New(Config{}, clk, flaky, broken)

	s.flush(context.Background(), []dom.Event{{Kind: dom.KindOpen}})

	if len(flaky.batches) != 2 {
		t.Fatalf("transient failure should be retried once, writes = %d", len(flaky.batches))
	}
	if len(broken.batches) != 1 {
		t.Fatalf("permanent failure must not be retried, writes = %d", len(broken.batches))
	}
	if d, n := clk.Slept(); d != retryBackoff || n != 1 {
		t.Fatalf("slept %v over %d calls", d, n)
	}
}
