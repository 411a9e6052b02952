// Package module wires the quote endpoint into the API using modkit
package module

import (
	"net/http"

	modkit "github.com/gentlementlegen/assistive-pricing/internal/modkit"
	"github.com/gentlementlegen/assistive-pricing/internal/modkit/httpkit"
	str "github.com/gentlementlegen/assistive-pricing/internal/platform/strings"
	quotehttp "github.com/gentlementlegen/assistive-pricing/internal/services/api/quote/http"
	pricingdom "github.com/gentlementlegen/assistive-pricing/internal/services/pricing/domain"
)

// Ports consumed by the quote module
type Ports struct {
	Quoter pricingdom.QuoterPort
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

	quoter pricingdom.QuoterPort
}

// New constructs a quote module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("quote"),
		modkit.WithPrefix("/quote"),
	}, opts...)...)

	ports, ok := b.Ports.(Ports)
	if !ok || ports.Quoter == nil {
		panic("quote module: expected WithPorts(quote/module.Ports) with a Quoter")
	}

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		quoter:    ports.Quoter,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		quotehttp.Register(r, m.quoter)
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
func (m *Module) Ports() any { return Ports{Quoter: m.quoter} }
