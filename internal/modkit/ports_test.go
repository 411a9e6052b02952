package modkit_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/gentlementlegen/assistive-pricing/internal/modkit"
	phttp "github.com/gentlementlegen/assistive-pricing/internal/platform/net/http"
	kit "github.com/gentlementlegen/assistive-pricing/internal/platform/testkit"
)

// Quoter is the kind of narrow interface a port bundle carries
type Quoter interface {
	Quote() float64
}

type fixedQuote struct{ v float64 }

func (q fixedQuote) Quote() float64 { return q.v }

type portedModule struct {
	name  string
	ports any
}

func (m portedModule) Name() string               { return m.name }
func (m portedModule) Ports() any                 { return m.ports }
func (m portedModule) MountRoutes(_ phttp.Router) {}

func TestPortsOf(t *testing.T) {
	t.Parallel()

	type bundle struct {
		Quoter Quoter
		Extra  int
	}
	type hidden struct {
		quoter Quoter
	}

	cases := []struct {
		name  string
		ports any
		want  float64
		ok    bool
	}{
		{name: "nil ports", ports: nil, ok: false},
		{name: "direct interface", ports: Quoter(fixedQuote{v: 25}), want: 25, ok: true},
		{name: "exported bundle field", ports: bundle{Quoter: fixedQuote{v: 12.5}, Extra: 1}, want: 12.5, ok: true},
		{name: "unexported field invisible", ports: hidden{quoter: fixedQuote{v: 1}}, ok: false},
		{name: "non-struct bundle", ports: 42, ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, ok := modkit.PortsOf[Quoter](portedModule{ports: tc.ports})
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if ok && got.Quote() != tc.want {
				t.Fatalf("Quote() = %v, want %v", got.Quote(), tc.want)
			}
		})
	}
}

func TestMustPortsOf(t *testing.T) {
	t.Parallel()

	got := modkit.MustPortsOf[Quoter](portedModule{ports: Quoter(fixedQuote{v: 50})})
	if got.Quote() != 50 {
		t.Fatalf("Quote() = %v, want 50", got.Quote())
	}

	v := kit.MustPanic(t, func() {
		modkit.MustPortsOf[Quoter](portedModule{name: "hooks"})
	})
	msg, _ := v.(string)
	if !strings.Contains(msg, "hooks") {
		t.Fatalf("panic %q does not name the module", msg)
	}
}

func TestRegistryRoundtrip(t *testing.T) {
	type hookPorts struct {
		Secret string
		Tries  int
	}

	modkit.Reset()
	modkit.Register("hooks", hookPorts{Secret: "s3cr3t", Tries: 1})
	modkit.Register("hooks", hookPorts{Secret: "rotated", Tries: 2})

	got, ok := modkit.PortsAs[hookPorts]("hooks")
	if !ok || got.Secret != "rotated" || got.Tries != 2 {
		t.Fatalf("PortsAs = %+v ok=%v, want the overwritten bundle", got, ok)
	}

	if _, ok := modkit.PortsAs[hookPorts]("quote"); ok {
		t.Fatalf("unregistered name must miss")
	}
	if _, ok := modkit.PortsAs[int]("hooks"); ok {
		t.Fatalf("wrong type must miss")
	}

	modkit.Reset()
	if _, ok := modkit.PortsAs[hookPorts]("hooks"); ok {
		t.Fatalf("Reset left a registration behind")
	}
}

func TestRegistryConcurrent(t *testing.T) {
	modkit.Reset()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := range 100 {
			modkit.Register("pricing", i)
		}
	}()
	go func() {
		defer wg.Done()
		for range 100 {
			modkit.PortsAs[int]("pricing")
		}
	}()
	wg.Wait()

	if got, ok := modkit.PortsAs[int]("pricing"); !ok || got != 99 {
		t.Fatalf("final registration = %v ok=%v, want 99", got, ok)
	}
}
