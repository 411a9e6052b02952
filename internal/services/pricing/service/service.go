// Package service implements the pricing service
package service

import (
	"context"

	"github.com/gentlementlegen/assistive-pricing/internal/core/labelpack"
	"github.com/gentlementlegen/assistive-pricing/internal/core/pricing"
	"github.com/gentlementlegen/assistive-pricing/internal/services/pricing/domain"
)

// Config for the pricing service
type Config struct {
	PublicSetLabel bool // true waves everyone through the permission gate
	Aggregation    pricing.AggregationRule
	DryRun         bool
}

// Service implements domain.RunnerPort and domain.QuoterPort
type Service struct {
	Store   domain.LabelStorePort
	History domain.EventHistoryPort
	Perm    domain.PermissionPort
	Pack    *labelpack.Pack
	Cfg     Config
}

// New constructs a new pricing service
func New(ports domain.Ports, pack *labelpack.Pack, cfg Config) *Service {
	if ports.Store == nil {
		panic("pricing.Service requires a non nil LabelStorePort")
	}
	if pack == nil {
		panic("pricing.Service requires a non nil labelpack")
	}
	if cfg.Aggregation == "" {
		cfg.Aggregation = pricing.AggregationSum
	}
	return &Service{
		Store:   ports.Store,
		History: ports.History,
		Perm:    ports.Permission,
		Pack:    pack,
		Cfg:     cfg,
	}
}

// Quote previews the price for a label set without touching any issue
func (s *Service) Quote(_ context.Context, in domain.QuoteInput) (domain.QuoteResult, error) {
	rec := pricing.Recognize(in.Labels, s.Pack)
	out := domain.QuoteResult{
		Time:     rec.Time,
		Priority: rec.Priority,
		Currency: s.Pack.Currency,
	}
	tl, pl, ok := pricing.SelectMinimum(rec, s.Pack)
	if !ok {
		return out, nil
	}
	out.TimePick, out.PriorityPick = tl, pl

	target := pricing.ResolveTarget(in.Labels, s.Pack)
	out.Priced = target.OK
	out.Price = target.Value
	out.Label = target.Label
	return out, nil
}
