// Package module wires the meta surface (health, readiness, version, pack)
// into the API router
package module

import (
	"net/http"
	"time"

	"github.com/gentlementlegen/assistive-pricing/internal/core/labelpack"
	modkit "github.com/gentlementlegen/assistive-pricing/internal/modkit"
	"github.com/gentlementlegen/assistive-pricing/internal/modkit/httpkit"
	str "github.com/gentlementlegen/assistive-pricing/internal/platform/strings"

	metahttp "github.com/gentlementlegen/assistive-pricing/internal/services/api/meta/http"
)

// Ports consumed by the meta module; Pack is optional
type Ports struct {
	Pack *labelpack.Pack
}

// Module serves the meta endpoints
type Module struct {
	deps      modkit.Deps
	name      string
	prefix    string
	mws       []func(http.Handler) http.Handler
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	startedAt time.Time
}

// New constructs the meta module, defaulting to the /meta prefix
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	var pack *labelpack.Pack
	if p, ok := b.Ports.(Ports); ok {
		pack = p.Pack
	}

	// keep the interface nil when there is no client to ping
	var gh metahttp.Pinger
	if deps.GH != nil {
		gh = deps.GH
	}

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		startedAt: time.Now(),
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		metahttp.Register(r, metahttp.Deps{
			ServiceName: "pricing-api",
			StartedAt:   m.startedAt,
			GitHub:      gh,
			Pack:        pack,
		})
		if external != nil {
			external(r)
		}
	}

	return m
}

// MountRoutes mounts the meta routes under the module prefix
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
func (m *Module) Name() string { return str.MustString(m.name, "meta") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports returns the module ports
func (m *Module) Ports() any { return nil }
