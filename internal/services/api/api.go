// Package api provides the HTTP API for the application
package api

import (
	"github.com/gentlementlegen/assistive-pricing/internal/platform/config"
	phttp "github.com/gentlementlegen/assistive-pricing/internal/platform/net/http"

	"github.com/gentlementlegen/assistive-pricing/internal/modkit"
	"github.com/gentlementlegen/assistive-pricing/internal/modkit/httpkit"
	"github.com/gentlementlegen/assistive-pricing/internal/modkit/swaggerkit"

	gh "github.com/gentlementlegen/assistive-pricing/internal/adapters/github"
	hooksmod "github.com/gentlementlegen/assistive-pricing/internal/services/api/hooks/module"
	metamod "github.com/gentlementlegen/assistive-pricing/internal/services/api/meta/module"
	quotemod "github.com/gentlementlegen/assistive-pricing/internal/services/api/quote/module"

	// Worker pricing module (owns the Runner and Quoter ports)
	pricingmod "github.com/gentlementlegen/assistive-pricing/internal/services/pricing/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	GitHub         *gh.Client
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		GH:  opt.GitHub,
	}

	// Construct the worker pricing module first and extract its ports
	// module config comes from the PRICING_* env, no overrides here
	pricing := pricingmod.New(deps, pricingmod.Options{})
	pp := modkit.MustPortsOf[pricingmod.Ports](pricing)

	// Inject those ports into the API-facing modules
	hooks := hooksmod.New(deps, modkit.WithPorts(hooksmod.Ports{Runner: pp.Runner}))
	quote := quotemod.New(deps, modkit.WithPorts(quotemod.Ports{Quoter: pp.Quoter}))
	meta := metamod.New(deps, modkit.WithPorts(metamod.Ports{Pack: pp.Pack}))

	mods := []modkit.Module{
		meta,
		pricing, // include the worker so its ports are registered
		hooks,
		quote,
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			modkit.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
