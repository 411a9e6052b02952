// Package net carries the wire envelope and the request-scoped ids the
// transports agree on: the request id minted by chi and the GitHub owner
// the request concerns.
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ownerKey struct{}

// WithRequest stamps the ids the rest of the request shares.
// owner is the GitHub login the request concerns, when known
func WithRequest(ctx context.Context, reqID, owner string) context.Context {
	if reqID != "" {
		// chi's key, so chimw.GetReqID sees ours too
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if owner != "" {
		ctx = context.WithValue(ctx, ownerKey{}, owner)
	}
	return ctx
}

// RequestID reports the id chi (or WithRequest) put on the context
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// Owner reports the GitHub login on the context, empty when unset
func Owner(ctx context.Context) string {
	v, _ := ctx.Value(ownerKey{}).(string)
	return v
}
