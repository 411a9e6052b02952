// Package module implements the pricing module
package module

import (
	"net/http"

	"github.com/gentlementlegen/assistive-pricing/internal/core/labelpack"
	"github.com/gentlementlegen/assistive-pricing/internal/core/pricing"
	"github.com/gentlementlegen/assistive-pricing/internal/modkit"
	"github.com/gentlementlegen/assistive-pricing/internal/modkit/httpkit"
	"github.com/gentlementlegen/assistive-pricing/internal/services/pricing/domain"
	"github.com/gentlementlegen/assistive-pricing/internal/services/pricing/repo"
	"github.com/gentlementlegen/assistive-pricing/internal/services/pricing/service"
)

// Ports exposed by the pricing module
type Ports struct {
	Runner domain.RunnerPort
	Quoter domain.QuoterPort
	Pack   *labelpack.Pack
}

// Module implements modkit.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new pricing module
func New(deps modkit.Deps, overrides Options, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("pricing"),
	}, opts...)...)

	// Merge config + overrides
	cfg := FromConfig(deps.Cfg)
	if overrides.ConfigFile != "" {
		cfg.ConfigFile = overrides.ConfigFile
	}
	if overrides.TimeLabels != "" {
		cfg.TimeLabels = overrides.TimeLabels
	}
	if overrides.PriorityLabels != "" {
		cfg.PriorityLabels = overrides.PriorityLabels
	}
	if overrides.Currency != "" {
		cfg.Currency = overrides.Currency
	}
	if overrides.BaseMultiplier != 0 {
		cfg.BaseMultiplier = overrides.BaseMultiplier
	}
	if overrides.Aggregation != "" {
		cfg.Aggregation = overrides.Aggregation
	}
	// bool overrides win (default false if caller didn't set)
	cfg.PublicSetLabel = cfg.PublicSetLabel || overrides.PublicSetLabel
	cfg.DryRun = cfg.DryRun || overrides.DryRun

	pack, err := cfg.BuildPack()
	if err != nil {
		panic(err)
	}
	agg, err := pricing.ParseAggregationRule(cfg.Aggregation)
	if err != nil {
		panic(err)
	}

	// Ports: tests inject fakes via WithPorts; otherwise bind the GitHub repo
	var p domain.Ports
	switch v := b.Ports.(type) {
	case nil:
		if deps.GH == nil {
			panic("pricing module: deps.GH required without WithPorts override")
		}
		r := repo.New(deps.GH, pack)
		p = domain.Ports{Store: r, History: r, Permission: r}
	case domain.Ports:
		if v.Store == nil {
			panic("pricing module: Ports missing Store")
		}
		p = v
	default:
		panic("pricing module: expected WithPorts(pricing/domain.Ports)")
	}

	svc := service.New(p, pack, service.Config{
		PublicSetLabel: cfg.PublicSetLabel,
		Aggregation:    agg,
		DryRun:         cfg.DryRun,
	})

	m := &Module{deps: deps}
	m.ports = Ports{Runner: svc, Quoter: svc, Pack: pack}
	return m
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "pricing" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// Prefix satisfies modkit.Module
func (m *Module) Prefix() string { return "" }

// Middlewares satisfies modkit.Module
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return nil }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(_ httpkit.Router) {}
