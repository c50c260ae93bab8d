package logger

import "context"

// FieldRequestID is the structured key for per-request correlation ids.
const FieldRequestID = "request_id"

type ctxKey struct{}

// WithRequestID annotates ctx with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(ctxKey{}).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
