package modkit_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/gentlementlegen/assistive-pricing/internal/modkit"
	phttp "github.com/gentlementlegen/assistive-pricing/internal/platform/net/http"
)

// stubModule pins the Module contract at compile time
type stubModule struct{ built modkit.Built }

var _ modkit.Module = (*stubModule)(nil)

func (m *stubModule) MountRoutes(r phttp.Router) { m.built.Register(r) }
func (m *stubModule) Ports() any                 { return m.built.Ports }
func (m *stubModule) Name() string               { return m.built.Name }

// tracer stamps tag into log when the request passes through
func tracer(log *[]string, tag string) phttp.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*log = append(*log, tag)
			next.ServeHTTP(w, r)
		})
	}
}

func TestBuildDefaults(t *testing.T) {
	t.Parallel()

	b := modkit.Build()

	if b.Name != "" || b.Prefix != "" || b.Ports != nil || b.SwaggerOn {
		t.Fatalf("zero options should build zero fields, got %+v", b)
	}
	if len(b.Mw) != 0 {
		t.Fatalf("Mw = %d entries, want none", len(b.Mw))
	}

	r := phttp.AdaptChi(chi.NewRouter())
	if got := b.Subrouter(r); got != r {
		t.Fatalf("default Subrouter is not identity")
	}
	b.Register(r) // default hook must be callable
}

func TestBuildComposes(t *testing.T) {
	t.Parallel()

	type quotePorts struct {
		Currency string
		Base     float64
	}
	p := quotePorts{Currency: "USD", Base: 12.5}

	var trace []string
	var wrapped, registered bool

	b := modkit.Build(
		modkit.WithName("quote"),
		modkit.WithPrefix("/quote"),
		modkit.WithMiddlewares(tracer(&trace, "signature"), tracer(&trace, "audit")),
		modkit.WithPorts(p),
		modkit.WithSwagger(true),
		modkit.WithSubrouter(func(r phttp.Router) phttp.Router {
			wrapped = true
			return r
		}),
		modkit.WithRegister(func(phttp.Router) { registered = true }),
	)

	if b.Name != "quote" || b.Prefix != "/quote" || !b.SwaggerOn {
		t.Fatalf("identity fields not carried: %+v", b)
	}
	if got, ok := b.Ports.(quotePorts); !ok || got != p {
		t.Fatalf("Ports = %#v, want %#v", b.Ports, p)
	}

	// Mw[0] wraps outermost, so signature must stamp before audit
	h := http.Handler(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	for i := len(b.Mw) - 1; i >= 0; i-- {
		h = b.Mw[i](h)
	}
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/quote", nil))
	if len(trace) != 2 || trace[0] != "signature" || trace[1] != "audit" {
		t.Fatalf("middleware order = %v, want [signature audit]", trace)
	}

	r := phttp.AdaptChi(chi.NewRouter())
	b.Subrouter(r)
	b.Register(r)
	if !wrapped || !registered {
		t.Fatalf("router hooks not wired: wrapped=%v registered=%v", wrapped, registered)
	}
}

func TestBuildClonesMiddleware(t *testing.T) {
	t.Parallel()

	var trace []string
	src := []phttp.Middleware{tracer(&trace, "kept")}
	b := modkit.Build(modkit.WithMiddlewares(src...))

	src[0] = nil
	if len(b.Mw) != 1 || b.Mw[0] == nil {
		t.Fatalf("Built.Mw shares backing array with the caller's slice")
	}
}

func TestModuleContract(t *testing.T) {
	t.Parallel()

	var mounted bool
	m := &stubModule{built: modkit.Build(
		modkit.WithName("pricing"),
		modkit.WithRegister(func(phttp.Router) { mounted = true }),
	)}

	if m.Name() != "pricing" {
		t.Fatalf("Name() = %q", m.Name())
	}
	m.MountRoutes(phttp.AdaptChi(chi.NewRouter()))
	if !mounted {
		t.Fatalf("MountRoutes did not reach the register hook")
	}
}
