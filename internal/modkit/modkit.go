// Package modkit carries the module wiring shared by every service: common
// deps, build options, and the contract the API mounts modules through
package modkit

import (
	"github.com/gentlementlegen/assistive-pricing/internal/adapters/github"
	"github.com/gentlementlegen/assistive-pricing/internal/platform/config"
	phttp "github.com/gentlementlegen/assistive-pricing/internal/platform/net/http"
)

// Module is what the API mounts. Kept tiny so modules stay decoupled
type Module interface {
	// MountRoutes attaches the module's endpoints under the router seam
	MountRoutes(r phttp.Router)
	// Ports exposes the module's cross-wiring surface
	Ports() any
	// Name identifies the module in logs and the registry
	Name() string
}

// Deps are the process-wide dependencies handed to every module.
// GH stays nil in tests that wire fake ports instead
type Deps struct {
	Cfg config.Conf
	GH  *github.Client
}
