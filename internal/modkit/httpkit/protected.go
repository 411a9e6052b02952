package httpkit

import (
	"net/http"
	"strings"

	"github.com/gentlementlegen/assistive-pricing/internal/modkit/swaggerkit"
	phttp "github.com/gentlementlegen/assistive-pricing/internal/platform/net/http"
	"github.com/gentlementlegen/assistive-pricing/internal/platform/net/middleware"
)

// Protected groups routes under webhook signature verification. Every verb
// registered inside the group is also recorded with swaggerkit so doc.json
// advertises the signature requirement on those operations
func Protected(r Router, p middleware.VerifierPort, fn func(Router)) {
	r.Group(func(gr Router) {
		gr.Use(Verify(p))
		fn(&securedRouter{Router: gr})
	})
}

// securedRouter forwards registrations to the wrapped router and marks each
// verb+path pair as signature protected. base accumulates nested Route
// prefixes so marks carry the full path
type securedRouter struct {
	Router
	base string
}

func joinPath(a, b string) string {
	if a == "" {
		return "/" + strings.TrimPrefix(b, "/")
	}
	return strings.TrimSuffix(a, "/") + "/" + strings.TrimPrefix(b, "/")
}

func (s *securedRouter) mark(path, verb string) {
	swaggerkit.MarkSecurePath(joinPath(s.base, path), verb)
}

func (s *securedRouter) Route(prefix string, fn func(Router)) {
	child := &securedRouter{Router: s.Router, base: joinPath(s.base, prefix)}
	s.Router.Route(prefix, func(_ Router) { fn(child) })
}

// Handle carries no single verb, so it is forwarded without a mark
func (s *securedRouter) Handle(path string, h http.Handler) { s.Router.Handle(path, h) }

func (s *securedRouter) Get(path string, h phttp.Handler)     { s.mark(path, "get"); s.Router.Get(path, h) }
func (s *securedRouter) Post(path string, h phttp.Handler)    { s.mark(path, "post"); s.Router.Post(path, h) }
func (s *securedRouter) Put(path string, h phttp.Handler)     { s.mark(path, "put"); s.Router.Put(path, h) }
func (s *securedRouter) Patch(path string, h phttp.Handler)   { s.mark(path, "patch"); s.Router.Patch(path, h) }
func (s *securedRouter) Delete(path string, h phttp.Handler)  { s.mark(path, "delete"); s.Router.Delete(path, h) }
func (s *securedRouter) Options(path string, h phttp.Handler) { s.mark(path, "options"); s.Router.Options(path, h) }
func (s *securedRouter) Head(path string, h phttp.Handler)    { s.mark(path, "head"); s.Router.Head(path, h) }
