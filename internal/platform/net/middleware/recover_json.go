package middleware

import (
	stdhttp "net/http"
	"runtime/debug"

	perr "github.com/gentlementlegen/assistive-pricing/internal/platform/errors"
	"github.com/gentlementlegen/assistive-pricing/internal/platform/logger"
	pnet "github.com/gentlementlegen/assistive-pricing/internal/platform/net"
	phttp "github.com/gentlementlegen/assistive-pricing/internal/platform/net/http"
)

// RecoverJSON turns a panic into an enveloped JSON 500. The stack travels as
// a structured field so log processors keep it attached to the request id
func RecoverJSON(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			reqID := pnet.RequestID(r.Context())

			logger.C(r.Context()).Error().
				Str("request_id", reqID).
				Interface("panic", v).
				Str("stack", string(debug.Stack())).
				Msg("panic recovered")

			// the caller gets the id back, never the panic value
			if reqID != "" {
				w.Header().Set("X-Request-ID", reqID)
			}
			status, wire := perr.HTTP(perr.PanicErrf("panic recovered"))
			phttp.JSON(w, status, phttp.Envelope{
				StatusCode: status,
				Status:     stdhttp.StatusText(status),
				Code:       wire.Code,
				Error:      wire.Message,
				RequestID:  reqID,
			})
		}()
		next.ServeHTTP(w, r)
	})
}
