// Package http provides the quote endpoint transport
package http

import (
	stdhttp "net/http"
	"strings"
	"sync"

	"github.com/gentlementlegen/assistive-pricing/internal/modkit/httpkit"
	pricingdom "github.com/gentlementlegen/assistive-pricing/internal/services/pricing/domain"
)

var labelTagOnce sync.Once

// registerLabelTag teaches the binder what a GitHub label name looks like
func registerLabelTag() {
	_ = httpkit.RegisterValidation("label_name", func(fl httpkit.FieldLevel) bool {
		s, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		return strings.TrimSpace(s) != "" && len(s) <= 100 && !strings.ContainsAny(s, "\r\n")
	})
	_ = httpkit.RegisterMessage("label_name", "{0} must be a printable label name up to 100 chars")
}

// Register mounts the quote endpoint on the given router
func Register(r httpkit.Router, q pricingdom.QuoterPort) {
	labelTagOnce.Do(registerLabelTag)
	h := &handlers{quoter: q}
	httpkit.PostJSON[pricingdom.QuoteInput](r, "/", h.quote)
}

type handlers struct{ quoter pricingdom.QuoterPort }

// swagger:route POST /quote Quote quotePreview
// @Summary Price preview for a label set
// @Tags Quote
// @Accept json
// @Produce json
// @Param payload body domain.QuoteInput true "labels to price"
// @Success 200 {object} domain.QuoteResult "ok"
// @Router /quote [post]
func (h *handlers) quote(r *stdhttp.Request, in pricingdom.QuoteInput) (any, error) {
	return h.quoter.Quote(r.Context(), in)
}
