package receiver

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// loggingInterceptor logs each unary RPC with timing, grounded on the
// teacher's transport/grpc.LoggingInterceptor.
func loggingInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		duration := time.Since(start)

		if err != nil {
			logger.Error("otlp export request failed",
				"method", info.FullMethod,
				"duration_ms", duration.Milliseconds(),
				"error", err,
			)
		} else {
			logger.Debug("otlp export request completed",
				"method", info.FullMethod,
				"duration_ms", duration.Milliseconds(),
			)
		}
		return resp, err
	}
}

// recoveryInterceptor converts a panicking handler into an internal-error
// gRPC status instead of crashing the server, the spec's "never crash the
// server on bad input" rule (spec.md §4.4) extended to cover handler bugs
// as well as malformed payloads. The teacher has no equivalent interceptor
// (see DESIGN.md); this one is hand-rolled stdlib recover() since no pack
// example carries a gRPC recovery middleware dependency.
func recoveryInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (resp interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("otlp export handler panicked",
					"method", info.FullMethod,
					"panic", r,
				)
				err = status.Error(codes.Internal, "internal error handling export request")
			}
		}()
		return handler(ctx, req)
	}
}
