package testkit

import (
	"encoding/json"
	"testing"
)

func TestMustPanic(t *testing.T) {
	t.Parallel()
	MustPanic(t, func() { panic("boom") })
}

func TestMustNotPanic(t *testing.T) {
	t.Parallel()
	MustNotPanic(t, func() {})
}

func TestMustContain(t *testing.T) {
	t.Parallel()
	MustContain(t, `{"ok":false,"error":"device not open"}`, "not open")
}

func TestMustJSON(t *testing.T) {
	t.Parallel()
	m := MustJSON(t, []byte(`{"ok":true,"score":73}`))
	if m["ok"] != true || m["score"] != json.Number("73") {
		t.Fatalf("got %#v", m)
	}
}
