package modkit

import (
	"slices"

	phttp "github.com/gentlementlegen/assistive-pricing/internal/platform/net/http"
)

// settings is the accumulator the options mutate
type settings struct {
	name   string
	prefix string
	stack  []phttp.Middleware
	ports  any
	docs   bool
	scope  func(phttp.Router) phttp.Router
	mount  func(phttp.Router)
}

// Option mutates the build settings for a module
type Option func(*settings)

// WithName sets the module name used in logs and the registry
func WithName(name string) Option {
	return func(s *settings) { s.name = name }
}

// WithPrefix sets the route prefix the module mounts under
func WithPrefix(prefix string) Option {
	return func(s *settings) { s.prefix = prefix }
}

// WithMiddlewares appends module-scoped middleware, outermost first
func WithMiddlewares(mw ...phttp.Middleware) Option {
	return func(s *settings) { s.stack = append(s.stack, mw...) }
}

// WithPorts sets the ports value the module publishes. The concrete type
// is owned by the module that declares it; consumers type-assert
func WithPorts[T any](p T) Option {
	return func(s *settings) { s.ports = p }
}

// WithSwagger toggles swagger docs under the module's subtree
func WithSwagger(on bool) Option {
	return func(s *settings) { s.docs = on }
}

// WithSubrouter replaces the identity subrouter hook, letting a module
// rescope or wrap the router it mounts under
func WithSubrouter(fn func(phttp.Router) phttp.Router) Option {
	return func(s *settings) { s.scope = fn }
}

// WithRegister sets the hook that attaches endpoints to the module router
func WithRegister(fn func(phttp.Router)) Option {
	return func(s *settings) { s.mount = fn }
}

// Built is the resolved module configuration, plain fields only
type Built struct {
	Name      string
	Prefix    string
	Mw        []phttp.Middleware
	Ports     any
	SwaggerOn bool

	// router hooks, never nil after Build
	Subrouter func(phttp.Router) phttp.Router
	Register  func(phttp.Router)
}

// Build folds the options into a Built. The middleware slice is cloned so
// later mutation of a caller-held slice cannot leak into the module
func Build(opts ...Option) Built {
	var s settings
	for _, o := range opts {
		o(&s)
	}
	if s.scope == nil {
		s.scope = func(r phttp.Router) phttp.Router { return r }
	}
	if s.mount == nil {
		s.mount = func(phttp.Router) {}
	}
	return Built{
		Name:      s.name,
		Prefix:    s.prefix,
		Mw:        slices.Clone(s.stack),
		Ports:     s.ports,
		SwaggerOn: s.docs,
		Subrouter: s.scope,
		Register:  s.mount,
	}
}
