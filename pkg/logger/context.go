package logger

import (
	"context"
	"log/slog"
)

type requestLoggerKey struct{}

// With stores a logger carrying fields on the returned context. Request
// middleware uses it to tag everything logged downstream with request_id and user_id.
func With(ctx context.Context, fields ...any) context.Context {
	return context.WithValue(ctx, requestLoggerKey{}, From(ctx).With(fields...))
}

// From returns the request logger, or the process logger outside a request.
func From(ctx context.Context) *slog.Logger {
	return FromOr(ctx, LoggerWrapper())
}

// FromOr is From with an explicit fallback for components built with their own logger.
func FromOr(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(requestLoggerKey{}).(*slog.Logger); ok {
			return l
		}
	}
	return fallback
}
