package store

import (
	"context"
	"errors"
	"testing"

	"fingerprintd/internal/platform/store/ch"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

type chFakeRows struct {
	driver.Rows
	n      int
	closed bool
}

func (r *chFakeRows) Next() bool             { r.n++; return r.n == 1 }
func (r *chFakeRows) Scan(dest ...any) error { *(dest[0].(*uint64)) = 5; return nil }
func (r *chFakeRows) Err() error             { return nil }
func (r *chFakeRows) Close() error           { r.closed = true; return nil }
func (r *chFakeRows) Columns() []string      { return []string{"count()"} }

type chFakeConn struct {
	driver.Conn
	rows    *chFakeRows
	pingErr error
	execs   []string
}

func (c *chFakeConn) Query(context.Context, string, ...any) (driver.Rows, error) { return c.rows, nil }
func (c *chFakeConn) Exec(_ context.Context, q string, _ ...any) error           { c.execs = append(c.execs, q); return nil }
func (c *chFakeConn) Ping(context.Context) error                                 { return c.pingErr }
func (c *chFakeConn) Close() error                                               { return nil }

func TestCHAdapter(t *testing.T) {
	t.Parallel()

	fc := &chFakeConn{rows: &chFakeRows{}}
	a := newCHAdapter(ch.New(fc))
	ctx := context.Background()

	if err := a.Exec(ctx, "CREATE TABLE IF NOT EXISTS biometric_events"); err != nil || len(fc.execs) != 1 {
		t.Fatalf("exec err=%v", err)
	}
	if err := a.Insert(ctx, "biometric_events", nil); err != nil {
		t.Fatalf("empty insert: %v", err)
	}

	rs, err := a.Query(ctx, "SELECT count() FROM biometric_events")
	if err != nil {
		t.Fatal(err)
	}
	if cols := rs.Columns(); len(cols) != 1 {
		t.Fatalf("columns = %v", cols)
	}
	var n uint64
	if !rs.Next() || rs.Scan(&n) != nil || n != 5 {
		t.Fatalf("n = %d", n)
	}
	if rs.Next() || rs.Err() != nil {
		t.Fatal("expected a single row")
	}
	rs.Close()
	if !fc.rows.closed {
		t.Fatal("rows not closed")
	}

	if err := a.Ping(ctx); err != nil {
		t.Fatal(err)
	}
	fc.pingErr = errors.New("down")
	if err := a.Ping(ctx); err == nil {
		t.Fatal("expected ping error")
	}
	if err := a.Close(); err != nil {
		t.Fatal(err)
	}
}
