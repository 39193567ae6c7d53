package module

import (
	"context"
	"reflect"
	"testing"
	"time"

	"fingerprintd/internal/modkit"
	"fingerprintd/internal/modkit/module"
	"fingerprintd/internal/modkit/repokit"
	"fingerprintd/internal/platform/config"
	"fingerprintd/internal/platform/logger"
)

type fakeTx struct{ repokit.TxRunner }

type fakeCH struct{ repokit.Columnar }

func (fakeCH) Exec(context.Context, string, ...any) error { return nil }

func TestNew_SinkSelection(t *testing.T) {
	cases := []struct {
		name string
		deps modkit.Deps
		want []string
	}{
		{"none", modkit.Deps{}, []string{"log"}},
		{"pg", modkit.Deps{PG: fakeTx{}}, []string{"pg"}},
		{"ch", modkit.Deps{CH: fakeCH{}}, []string{"ch"}},
		{"both", modkit.Deps{PG: fakeTx{}, CH: fakeCH{}}, []string{"pg", "ch"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.deps.Log = *logger.Get()
			m := New(tc.deps, Options{})
			if got := m.Sinks(); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("sinks = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestModule_Ports(t *testing.T) {
	m := New(modkit.Deps{Cfg: config.New()}, Options{Queue: 8, FlushEvery: time.Millisecond})
	if m.Name() != "audit" {
		t.Fatalf("name = %s", m.Name())
	}
	p := module.MustPortsOf[Ports](m)
	if p.Recorder == nil || p.Worker == nil {
		t.Fatalf("ports = %+v", p)
	}
	m.MountRoutes(nil)
}

func TestFromConfig(t *testing.T) {
	t.Setenv("FP_AUDIT_QUEUE", "32")
	t.Setenv("FP_AUDIT_FLUSH_EVERY", "250ms")
	o := FromConfig(config.New())
	if o.Queue != 32 || o.Batch != 64 || o.FlushEvery != 250*time.Millisecond {
		t.Fatalf("options = %+v", o)
	}
}
