package middleware

import (
	"net/http"

	pnet "github.com/gentlementlegen/assistive-pricing/internal/platform/net"
)

// VerifierPort is a tiny seam for request authenticity checks on intake routes
type VerifierPort interface {
	// Verify inspects the request and returns an error when it must be rejected
	Verify(r *http.Request) error
}

// Verify is a no-op until wired. It uses the port when provided
func Verify(p VerifierPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			if err := p.Verify(r); err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
