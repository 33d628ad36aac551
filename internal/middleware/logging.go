package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC call with
// its procedure, caller, duration and, on failure, the error code.
// Client mistakes (invalid argument, not found, ...) log at WARN, the rest at ERROR.
func LoggingInterceptor(logger *slog.Logger) connect.UnaryInterceptorFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()

			resp, err := next(ctx, req)

			attrs := []slog.Attr{
				slog.String("procedure", req.Spec().Procedure),
				slog.String("user_id", GetUserID(ctx)), // empty before auth
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			}
			if err == nil {
				logger.LogAttrs(ctx, slog.LevelInfo, "RPC ok", attrs...)
				return resp, nil
			}

			var connectErr *connect.Error
			if errors.As(err, &connectErr) && connectErr.Code() != connect.CodeInternal {
				attrs = append(attrs, slog.String("code", connectErr.Code().String()), slog.String("error", connectErr.Message()))
				logger.LogAttrs(ctx, slog.LevelWarn, "RPC error", attrs...)
			} else {
				attrs = append(attrs, slog.Any("error", err))
				logger.LogAttrs(ctx, slog.LevelError, "RPC error", attrs...)
			}

			return resp, err
		}
	}
}
