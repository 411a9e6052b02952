// Package http serves the meta surface: health, readiness, version, pack
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"github.com/gentlementlegen/assistive-pricing/internal/core/labelpack"
	"github.com/gentlementlegen/assistive-pricing/internal/core/version"
	"github.com/gentlementlegen/assistive-pricing/internal/modkit/httpkit"
)

// Pinger matches adapters that can answer a liveness ping
type Pinger interface {
	Ping(stdctx.Context) error
}

// Deps carries what the meta handlers read
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	GitHub      Pinger
	Pack        *labelpack.Pack
}

type handlers struct {
	deps Deps
}

// Register wires the meta routes onto r
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/pack", h.pack)
}

//
// Response DTOs and swagger docs
//

// HealthResponse reports liveness
// swagger:model
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"pricing-api"`
	Started string `json:"started"  example:"2026-08-01T13:00:00Z"`
	Now     string `json:"now"      example:"2026-08-01T13:05:00Z"`
}

// ReadyCheck is one dependency probe result
type ReadyCheck struct {
	Name   string `json:"name"   example:"github"`
	Status string `json:"status" example:"ok"` // ok fail skipped
	Error  string `json:"error,omitempty" example:"context deadline exceeded"`
}

// ReadyResponse aggregates dependency probes
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok degraded fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-08-01T13:05:00Z"`
}

// ServiceResponse reports service identity and uptime
type ServiceResponse struct {
	Name    string `json:"name"    example:"pricing-api"`
	Started string `json:"started" example:"2026-08-01T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// PackResponse reports the label vocabulary fingerprint
type PackResponse struct {
	Currency       string  `json:"currency" example:"USD"`
	PricePrefix    string  `json:"price_prefix" example:"Price: "`
	BaseMultiplier float64 `json:"base_multiplier" example:"1"`
	TimeLabels     int     `json:"time_labels" example:"6"`
	PriorityLabels int     `json:"priority_labels" example:"5"`
}

// swagger:route GET /meta/health Meta metaHealth
// @Summary Service liveness
// @Tags Meta
// @Produce json
// @Success 200 type HealthResponse "ok"
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// swagger:route GET /meta/ready Meta metaReady
// @Summary Readiness with dependency probes
// @Tags Meta
// @Produce json
// @Success 200 type ReadyResponse ok
// @Router /meta/ready [get]
func (h *handlers) ready(_ *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(stdctx.Background(), 2*time.Second)
	defer cancel()

	check := func(name string, p Pinger) ReadyCheck {
		if p == nil {
			return ReadyCheck{Name: name, Status: "skipped"}
		}
		if err := p.Ping(ctx); err != nil {
			return ReadyCheck{Name: name, Status: "fail", Error: err.Error()}
		}
		return ReadyCheck{Name: name, Status: "ok"}
	}

	gh := check("github", h.deps.GitHub)

	overall := "ok"
	if gh.Status != "ok" {
		overall = "degraded"
		if gh.Status == "fail" {
			overall = "fail"
		}
	}

	return ReadyResponse{
		Status: overall,
		Checks: []ReadyCheck{gh},
		Now:    time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build metadata
// @Tags Meta
// @Produce json
// @Success 200 type version.BuildInfo ok
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// swagger:route GET /meta/service Meta metaService
// @Summary Service identity and uptime
// @Tags Meta
// @Produce json
// @Success 200 type ServiceResponse ok
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	uptime := time.Since(h.deps.StartedAt)
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(uptime / time.Second),
	}, nil
}

// swagger:route GET /meta/pack Meta metaPack
// @Summary Label vocabulary fingerprint
// @Tags Meta
// @Produce json
// @Success 200 type PackResponse ok
// @Router /meta/pack [get]
func (h *handlers) pack(_ *http.Request) (any, error) {
	p := h.deps.Pack
	if p == nil {
		return PackResponse{}, nil
	}
	return PackResponse{
		Currency:       p.Currency,
		PricePrefix:    p.PricePrefix,
		BaseMultiplier: p.BaseMultiplier,
		TimeLabels:     p.Time.Len(),
		PriorityLabels: p.Priority.Len(),
	}, nil
}
