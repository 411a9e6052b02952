// Package middleware adapts chi middleware behind stdlib signatures and adds
// the in-house pieces (access log, recovery, webhook verification)
package middleware

import (
	"net/http"
	"time"

	pstrings "github.com/gentlementlegen/assistive-pricing/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// correlation

// RequestID propagates or mints X-Request-ID and stores it on the context
func RequestID() func(http.Handler) http.Handler { return chimw.RequestID }

// RealIP rewrites RemoteAddr from forwarding headers so logs carry the caller
func RealIP() func(http.Handler) http.Handler { return chimw.RealIP }

// request shaping

// Timeout aborts the request context once d elapses
func Timeout(d time.Duration) func(http.Handler) http.Handler { return chimw.Timeout(d) }

// StripSlashes drops a trailing slash before routing. Webhook senders do not
// follow redirects with their bodies intact, so rewriting beats redirecting
func StripSlashes() func(http.Handler) http.Handler { return chimw.StripSlashes }

// Compress gzips responses. level is a flate constant, BestSpeed in practice
func Compress(level int) func(http.Handler) http.Handler {
	c := chimw.NewCompressor(level)
	return func(next http.Handler) http.Handler { return c.Handler(next) }
}

// freshness and probes

// NoCache disables client and proxy caching on every response
func NoCache() func(http.Handler) http.Handler { return chimw.NoCache }

// Heartbeat answers 200 OK on GET path for load balancer probes
func Heartbeat(path string) func(http.Handler) http.Handler { return chimw.Heartbeat(path) }

// CORSOptions carries the subset of go-chi/cors knobs the service tunes
type CORSOptions struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

var (
	defaultCORSMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	defaultCORSHeaders = []string{
		"Accept",
		"Content-Type",
		"X-Request-ID",
		"X-GitHub-Event",
		"X-GitHub-Delivery",
		"X-Hub-Signature-256",
	}
)

// CORS wraps go-chi/cors, filling empty fields with defaults that admit the
// GitHub webhook headers
func CORS(o CORSOptions) func(http.Handler) http.Handler {
	return chicors.Handler(chicors.Options{
		AllowedOrigins:   o.AllowedOrigins,
		AllowedMethods:   pstrings.IfEmpty(o.AllowedMethods, defaultCORSMethods),
		AllowedHeaders:   pstrings.IfEmpty(o.AllowedHeaders, defaultCORSHeaders),
		ExposedHeaders:   o.ExposedHeaders,
		AllowCredentials: o.AllowCredentials,
		MaxAge:           o.MaxAge,
	})
}
