// Package requestctx threads the per-request correlation id through
// context. It sits outside the transport package so domain code can log a
// request id without importing HTTP middleware.
package requestctx

import "context"

type requestIDKey struct{}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// GetRequestID returns the id set by the HTTP layer, or "" outside a
// request scope.
func GetRequestID(ctx context.Context) string {
	if value, ok := ctx.Value(requestIDKey{}).(string); ok {
		return value
	}
	return ""
}
