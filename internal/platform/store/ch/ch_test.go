package ch

import (
	"context"
	"errors"
	"testing"

	"fingerprintd/internal/platform/testkit"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

type fakeBatch struct {
	driver.Batch
	rows    [][]any
	sent    bool
	aborted bool
	failAt  int
}

func (b *fakeBatch) Append(v ...any) error {
	if b.failAt > 0 && len(b.rows)+1 == b.failAt {
		return errors.New("bad column")
	}
	b.rows = append(b.rows, v)
	return nil
}

func (b *fakeBatch) Send() error  { b.sent = true; return nil }
func (b *fakeBatch) Abort() error { b.aborted = true; return nil }

type fakeConn struct {
	driver.Conn
	batch    *fakeBatch
	prepared string
	execs    []string
	pingErr  error
	closed   bool
}

func (c *fakeConn) PrepareBatch(_ context.Context, q string, _ ...driver.PrepareBatchOption) (driver.Batch, error) {
	c.prepared = q
	return c.batch, nil
}

func (c *fakeConn) Exec(_ context.Context, q string, _ ...any) error {
	c.execs = append(c.execs, q)
	return nil
}

func (c *fakeConn) Ping(context.Context) error { return c.pingErr }
func (c *fakeConn) Close() error               { c.closed = true; return nil }

func TestOpen_RejectsBadDSN(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), Config{}); err == nil {
		t.Fatal("expected error for empty dsn")
	}
	if _, err := Open(context.Background(), Config{URL: "clickhouse://host:notaport/db"}); err == nil {
		t.Fatal("expected error for bad dsn")
	}
}

func TestOpen_SetsClientInfo(t *testing.T) {
	testkit.Serial(t)

	var seen *clickhouse.Options
	testkit.Swap(t, &openConn, func(o *clickhouse.Options) (driver.Conn, error) {
		seen = o
		return &fakeConn{}, nil
	})

	c, err := Open(context.Background(), Config{URL: "clickhouse://localhost:9000/audit", Role: "api", Tag: "v1"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if c == nil || seen == nil {
		t.Fatal("expected client and captured options")
	}
	if seen.Auth.Database != "audit" {
		t.Fatalf("database = %q", seen.Auth.Database)
	}
	names := map[string]string{}
	for _, p := range seen.ClientInfo.Products {
		names[p.Name] = p.Version
	}
	if names["fingerprintd"] != "v1" || names["role"] != "api" {
		t.Fatalf("client info = %#v", seen.ClientInfo.Products)
	}
}

func TestInsert_BatchesRows(t *testing.T) {
	t.Parallel()

	fc := &fakeConn{batch: &fakeBatch{}}
	c := New(fc)

	rows := [][]any{{"a", 1}, {"b", 2}}
	if err := c.Insert(context.Background(), "biometric_events", rows); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if fc.prepared != "INSERT INTO biometric_events" {
		t.Fatalf("prepared = %q", fc.prepared)
	}
	if len(fc.batch.rows) != 2 || !fc.batch.sent {
		t.Fatalf("batch = %#v", fc.batch)
	}
}

func TestInsert_AbortsOnAppendError(t *testing.T) {
	t.Parallel()

	fc := &fakeConn{batch: &fakeBatch{failAt: 2}}
	err := New(fc).Insert(context.Background(), "t", [][]any{{1}, {2}, {3}})
	if err == nil {
		t.Fatal("expected append error")
	}
	if !fc.batch.aborted || fc.batch.sent {
		t.Fatalf("batch should be aborted, got %#v", fc.batch)
	}
}

func TestInsert_EmptyIsNoop(t *testing.T) {
	t.Parallel()

	fc := &fakeConn{}
	if err := New(fc).Insert(context.Background(), "t", nil); err != nil {
		t.Fatal(err)
	}
	if fc.prepared != "" {
		t.Fatal("no batch should be prepared")
	}
}

func TestExecPingClose(t *testing.T) {
	t.Parallel()

	fc := &fakeConn{pingErr: errors.New("down")}
	c := New(fc)
	if err := c.Exec(context.Background(), "CREATE TABLE x"); err != nil || len(fc.execs) != 1 {
		t.Fatalf("exec err=%v execs=%v", err, fc.execs)
	}
	if err := c.Ping(context.Background()); err == nil {
		t.Fatal("expected ping error")
	}
	if err := c.Close(); err != nil || !fc.closed {
		t.Fatal("close not forwarded")
	}

	var nilCH *CH
	if err := nilCH.Close(); err != nil {
		t.Fatal("nil close should be a noop")
	}
}

func TestBuildClientInfo(t *testing.T) {
	t.Parallel()

	ci := BuildClientInfo(" probe ", "dev")
	if len(ci.Products) != 5 || ci.Products[1].Version != "probe" {
		t.Fatalf("products = %#v", ci.Products)
	}
}
