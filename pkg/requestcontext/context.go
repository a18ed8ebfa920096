// Package requestcontext provides accessors for call-scoped values carried on a
// context.Context.
//
// Usage in consumers (pin one instant for a whole dashboard render):
//
//	ctx = requestcontext.WithTime(ctx, clk.Now())
//	ctx = requestcontext.WithRequestID(ctx, requestID)
//
// Usage in the engine facade (read values):
//
//	now := requestcontext.Now(ctx)
//	requestID := requestcontext.RequestID(ctx)
package requestcontext

import (
	"context"
	"time"
)

type (
	requestIDKey   struct{}
	requestTimeKey struct{}
)

// Exported context keys for direct use in tests that need context.WithValue.
var (
	ContextKeyRequestID   = requestIDKey{}
	ContextKeyRequestTime = requestTimeKey{}
)

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// Time retrieves the pinned instant from context and whether one was set.
func Time(ctx context.Context) (time.Time, bool) {
	t, ok := ctx.Value(ContextKeyRequestTime).(time.Time)
	return t, ok
}

// Now retrieves the pinned instant from context.
// Falls back to time.Now() if not set (for callers outside a render or CLI run).
func Now(ctx context.Context) time.Time {
	if t, ok := Time(ctx); ok {
		return t
	}
	return time.Now()
}

// WithTime pins an instant on the context. Every computation that reads the
// clock through this context sees the same "now".
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}
