package logger

import "context"

// Logger is the leveled, printf-style logger used across the service.
// Every method attaches the request id carried by ctx, if any.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
}
