package httpkit

import "strings"

// MountUnder scopes a subrouter at prefix with the module's middleware
// installed ahead of the routes mount registers
func MountUnder(r Router, prefix string, mw []Middleware, mount func(Router)) {
	r.Route(prefix, func(sub Router) {
		if len(mw) > 0 {
			sub.Use(mw...)
		}
		mount(sub)
	})
}

// MountAPI scopes mount under /api/{version}. A leading slash on version
// is tolerated, so "v1" and "/v1" land in the same place
func MountAPI(r Router, version string, mw []Middleware, mount func(Router)) {
	MountUnder(r, "/api/"+strings.TrimPrefix(version, "/"), mw, mount)
}

// MountAPIV1 mounts under /api/v1, where every current route lives
func MountAPIV1(r Router, mw []Middleware, mount func(Router)) {
	MountAPI(r, "v1", mw, mount)
}
