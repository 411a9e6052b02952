// Package module wires the webhook intake into the API using modkit
package module

import (
	"net/http"

	modkit "github.com/gentlementlegen/assistive-pricing/internal/modkit"
	"github.com/gentlementlegen/assistive-pricing/internal/modkit/httpkit"
	"github.com/gentlementlegen/assistive-pricing/internal/platform/net/middleware"
	str "github.com/gentlementlegen/assistive-pricing/internal/platform/strings"
	hookshttp "github.com/gentlementlegen/assistive-pricing/internal/services/api/hooks/http"
	pricingdom "github.com/gentlementlegen/assistive-pricing/internal/services/pricing/domain"
)

// Ports consumed by the hooks module
type Ports struct {
	Runner pricingdom.RunnerPort
}

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	runner pricingdom.RunnerPort
}

// New constructs a hooks module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("hooks"),
		modkit.WithPrefix("/hooks"),
	}, opts...)...)

	ports, ok := b.Ports.(Ports)
	if !ok || ports.Runner == nil {
		panic("hooks module: expected WithPorts(hooks/module.Ports) with a Runner")
	}

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		runner:    ports.Runner,
	}

	// deliveries are rejected unless signed with the shared secret
	// an empty secret leaves the route open (local development)
	var verifier middleware.VerifierPort
	if secret := deps.Cfg.Prefix("PRICING_").MayString("WEBHOOK_SECRET", ""); secret != "" {
		verifier = httpkit.NewSignaturePort(secret)
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		httpkit.Protected(r, verifier, func(gr httpkit.Router) {
			hookshttp.Register(gr, m.runner)
		})
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports returns the module ports
func (m *Module) Ports() any { return Ports{Runner: m.runner} }
