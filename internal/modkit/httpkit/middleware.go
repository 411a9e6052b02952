package httpkit

import (
	"compress/flate"
	"time"

	phttp "github.com/gentlementlegen/assistive-pricing/internal/platform/net/http"
	"github.com/gentlementlegen/assistive-pricing/internal/platform/net/middleware"
)

// StackOptions tunes the baseline middleware stack
type StackOptions struct {
	// Timeout is the per-request deadline, 30s unless set
	Timeout time.Duration
	// Slow is the access log warn threshold, 2s unless set
	Slow time.Duration
	// Heartbeat is the probe path, /health unless set
	Heartbeat string
}

// CommonStack returns the baseline per-module middleware slice; callers
// append their own pieces on top. Zero options mean production defaults
func CommonStack(opts ...StackOptions) []Middleware {
	var o StackOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.Timeout == 0 {
		o.Timeout = 30 * time.Second
	}
	if o.Slow == 0 {
		o.Slow = 2 * time.Second
	}
	if o.Heartbeat == "" {
		o.Heartbeat = "/health"
	}

	return []Middleware{
		// correlation first so every later line carries the id
		middleware.RequestID(),
		middleware.RealIP(),

		// the access line wraps recovery so panics still produce a 500 entry
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.Slow}),
		middleware.RecoverJSON,

		middleware.NoCache(),
		middleware.CORS(middleware.CORSOptions{}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat(o.Heartbeat),
		middleware.StripSlashes(),
		middleware.Timeout(o.Timeout),
	}
}

// Verify adapts webhook verification onto the platform JSON writer
func Verify(p middleware.VerifierPort) Middleware {
	return middleware.Verify(p, phttp.JSON)
}
