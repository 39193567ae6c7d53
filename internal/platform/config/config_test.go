package config

import (
	"testing"
	"time"

	kit "fingerprintd/internal/platform/testkit"
)

func TestPrefixAndKey(t *testing.T) {
	api := New().Prefix("FP_").Prefix("API_")
	if got := api.key("ADDR"); got != "FP_API_ADDR" {
		t.Fatalf("key() = %q, want %q", got, "FP_API_ADDR")
	}
}

func TestMustString(t *testing.T) {
	c := New().Prefix("SERVICE_PGSQL_")
	t.Setenv("SERVICE_PGSQL_DBURL", "  postgres://x ")
	if got := c.MustString("DBURL"); got != "postgres://x" {
		t.Fatalf("MustString = %q", got)
	}
	kit.MustPanic(t, func() { _ = c.MustString("MISSING") })
}

func TestMayScalars(t *testing.T) {
	c := New().Prefix("FP_BIOMETRICS_")
	t.Setenv("FP_BIOMETRICS_MATCH_THRESHOLD", " 70 ")
	t.Setenv("FP_BIOMETRICS_BAD_INT", "x")
	t.Setenv("FP_BIOMETRICS_POLL_INTERVAL", "20ms")
	t.Setenv("FP_BIOMETRICS_NEG", "-1s")
	t.Setenv("FP_BIOMETRICS_ON", "true")
	t.Setenv("FP_BIOMETRICS_BAD_BOOL", "nope")

	if got := c.MayInt("MATCH_THRESHOLD", 60); got != 70 {
		t.Fatalf("MayInt = %d", got)
	}
	if got := c.MayInt("BAD_INT", 60); got != 60 {
		t.Fatalf("MayInt bad -> %d", got)
	}
	if got := c.MayString("MISSING", "def"); got != "def" {
		t.Fatalf("MayString default = %q", got)
	}
	if got := c.MayDuration("POLL_INTERVAL", time.Second); got != 20*time.Millisecond {
		t.Fatalf("MayDuration = %v", got)
	}
	if got := c.MayDuration("NEG", time.Second); got != time.Second {
		t.Fatalf("negative duration should fall back, got %v", got)
	}
	if !c.MayBool("ON", false) || c.MayBool("BAD_BOOL", false) {
		t.Fatalf("MayBool mismatch")
	}
}

func TestMayIntRange(t *testing.T) {
	c := New().Prefix("R_")
	t.Setenv("R_HI", "101")
	t.Setenv("R_OK", "0")
	if got := c.MayIntRange("HI", 60, 0, 100); got != 60 {
		t.Fatalf("out of range -> %d, want 60", got)
	}
	if got := c.MayIntRange("OK", 60, 0, 100); got != 0 {
		t.Fatalf("in range -> %d, want 0", got)
	}
}

func TestMayCSV(t *testing.T) {
	c := New().Prefix("CSV_")
	t.Setenv("CSV_VALS", " one, two , ,three ,, ")
	t.Setenv("CSV_EMPTY", " , ,")
	got := c.MayCSV("VALS", nil)
	want := []string{"one", "two", "three"}
	if len(got) != len(want) {
		t.Fatalf("MayCSV = %#v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("MayCSV[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if got := c.MayCSV("EMPTY", []string{"*"}); len(got) != 1 || got[0] != "*" {
		t.Fatalf("MayCSV all-empty -> %#v", got)
	}
}

func TestMayEnum(t *testing.T) {
	c := New().Prefix("FP_SENSOR_")
	if got := c.MayEnum("DRIVER", "sim", "sim", "zkfp"); got != "sim" {
		t.Fatalf("MayEnum default = %q", got)
	}
	t.Setenv("FP_SENSOR_DRIVER", "ZKFP")
	if got := c.MayEnum("DRIVER", "sim", "sim", "zkfp"); got != "zkfp" {
		t.Fatalf("MayEnum = %q, want zkfp", got)
	}
	t.Setenv("FP_SENSOR_BAD", "usb")
	kit.MustPanic(t, func() { _ = c.MayEnum("BAD", "sim", "sim", "zkfp") })
}

func TestMayAddr(t *testing.T) {
	c := New().Prefix("FP_API_")
	const def = "127.0.0.1:8787"
	if got := c.MayAddr("ADDR", def); got != def {
		t.Fatalf("MayAddr default = %q", got)
	}
	t.Setenv("FP_API_ADDR", "9000")
	if got := c.MayAddr("ADDR", def); got != "127.0.0.1:9000" {
		t.Fatalf("bare port = %q", got)
	}
	t.Setenv("FP_API_ADDR", "0.0.0.0:80")
	if got := c.MayAddr("ADDR", def); got != "0.0.0.0:80" {
		t.Fatalf("host:port = %q", got)
	}
	t.Setenv("FP_API_ADDR", "localhost")
	kit.MustPanic(t, func() { _ = c.MayAddr("ADDR", def) })
	t.Setenv("FP_API_ADDR", "localhost:99999")
	kit.MustPanic(t, func() { _ = c.MayAddr("ADDR", def) })
}
