package middleware

import (
	"net/http"
	"time"

	"github.com/gentlementlegen/assistive-pricing/internal/platform/logger"
	pnet "github.com/gentlementlegen/assistive-pricing/internal/platform/net"
)

// AccessLogOptions tunes the zerolog access log
type AccessLogOptions struct {
	// Slow promotes requests that take at least this long to warn, 0 never does
	Slow time.Duration
}

// meter keeps the status and body size that actually went out
type meter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (m *meter) WriteHeader(code int) {
	m.status = code
	m.ResponseWriter.WriteHeader(code)
}

func (m *meter) Write(b []byte) (int, error) {
	n, err := m.ResponseWriter.Write(b)
	m.bytes += n
	return n, err
}

// AccessLogZerolog emits one structured line per request through the
// request-scoped logger
func AccessLogZerolog(opt AccessLogOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m := &meter{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(m, r)
			elapsed := time.Since(start)

			// the transport id becomes the logger correlation id
			ctx := r.Context()
			if id := pnet.RequestID(ctx); id != "" {
				ctx = logger.WithRequest(ctx, id, "")
			}

			log := logger.C(ctx)
			evt := log.Info()
			if opt.Slow > 0 && elapsed >= opt.Slow {
				evt = log.Warn()
			}
			evt.Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("remote", r.RemoteAddr).
				Int("status", m.status).
				Int("bytes", m.bytes).
				Dur("elapsed", elapsed).
				Msg("request done")
		})
	}
}
