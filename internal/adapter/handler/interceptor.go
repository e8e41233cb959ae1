package handler

import (
	"context"
	"path"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rl1809/book-lending/internal/metrics"
)

// UnaryInterceptor records one access log line and the RPC metrics per call.
func UnaryInterceptor(m *metrics.Metrics) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		elapsed := time.Since(start)

		code := status.Code(err)
		method := path.Base(info.FullMethod)
		m.RPCRequests.WithLabelValues(method, code.String()).Inc()
		m.RPCDuration.WithLabelValues(method).Observe(elapsed.Seconds())

		logEvent(code).
			Str("method", method).
			Str("code", code.String()).
			Dur("duration", elapsed).
			Err(err).
			Msg("rpc")
		return resp, err
	}
}

func logEvent(code codes.Code) *zerolog.Event {
	switch code {
	case codes.OK:
		return log.Info()
	case codes.Internal, codes.Unknown, codes.Unavailable:
		return log.Error()
	default:
		return log.Warn()
	}
}
