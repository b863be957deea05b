package rpc

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"github.com/saturnino-fabrica-de-software/faceid/internal/audit"
)

const requestIDHeader = "x-request-id"

type wrappedStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (w *wrappedStream) Context() context.Context { return w.ctx }

// withRequest reuses the caller's x-request-id or mints one, echoes it in
// the response header and stores it for the audit trail. Ids longer than the
// audit column are replaced.
func withRequest(ctx context.Context) (context.Context, audit.RequestInfo) {
	info := audit.RequestInfo{Transport: audit.TransportGRPC}
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ids := md.Get(requestIDHeader); len(ids) > 0 {
			info.ID = ids[0]
		}
	}
	info.ID = audit.RequestID(info.ID)
	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		info.Peer = p.Addr.String()
	}

	_ = grpc.SetHeader(ctx, metadata.Pairs(requestIDHeader, info.ID))
	return audit.WithRequest(ctx, info), info
}

func logCall(ctx context.Context, logger *slog.Logger, method string, info audit.RequestInfo, start time.Time, err error) {
	code := status.Code(err)

	level := slog.LevelInfo
	switch code {
	case codes.OK:
	case codes.Internal, codes.Unknown, codes.DataLoss, codes.Unavailable:
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}

	attrs := []slog.Attr{
		slog.String("method", method),
		slog.String("code", code.String()),
		slog.Duration("latency", time.Since(start)),
		slog.String("peer", info.Peer),
		slog.String("request_id", info.ID),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	logger.LogAttrs(ctx, level, "grpc request", attrs...)
}

func StreamLogger(logger *slog.Logger) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()
		ctx, req := withRequest(ss.Context())

		err := handler(srv, &wrappedStream{ServerStream: ss, ctx: ctx})

		logCall(ctx, logger, info.FullMethod, req, start, err)
		return err
	}
}

func UnaryLogger(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, r any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		ctx, req := withRequest(ctx)

		resp, err := handler(ctx, r)

		logCall(ctx, logger, info.FullMethod, req, start, err)
		return resp, err
	}
}

func StreamRecover(logger *slog.Logger) grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = recovered(ss.Context(), logger, info.FullMethod, r)
			}
		}()
		return handler(srv, ss)
	}
}

func UnaryRecover(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, r any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if p := recover(); p != nil {
				err = recovered(ctx, logger, info.FullMethod, p)
			}
		}()
		return handler(ctx, r)
	}
}

func recovered(ctx context.Context, logger *slog.Logger, method string, r any) error {
	logger.ErrorContext(ctx, "panic recovered",
		slog.Any("panic", r),
		slog.String("method", method),
		slog.String("stack", string(debug.Stack())),
	)
	return status.Error(codes.Internal, fmt.Sprintf("panic in %s", method))
}
