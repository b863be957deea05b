// Package rpc serves the FaceRecognition gRPC service and provides a client
// for it.
package rpc

import (
	"context"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/saturnino-fabrica-de-software/faceid/internal/recognition"
	"github.com/saturnino-fabrica-de-software/faceid/internal/rpc/facepb"
)

type Options struct {
	// Workers sets the number of stream worker goroutines.
	Workers int
	// MaxConcurrentStreams caps in-flight streams per connection; 0 keeps
	// the grpc default.
	MaxConcurrentStreams uint32
	// RequestTimeout bounds one recognition from first fragment to response.
	RequestTimeout time.Duration
}

// Server hosts the FaceRecognition and health services.
type Server struct {
	facepb.UnimplementedFaceRecognitionServer

	svc     *recognition.Service
	grpc    *grpc.Server
	health  *health.Server
	timeout time.Duration
	logger  *slog.Logger
}

func NewServer(svc *recognition.Service, opts Options, logger *slog.Logger) *Server {
	logger = logger.With("component", "grpc")

	serverOpts := []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(UnaryLogger(logger), UnaryRecover(logger)),
		grpc.ChainStreamInterceptor(StreamLogger(logger), StreamRecover(logger)),
	}
	if opts.Workers > 0 {
		serverOpts = append(serverOpts, grpc.NumStreamWorkers(uint32(opts.Workers)))
	}
	if opts.MaxConcurrentStreams > 0 {
		serverOpts = append(serverOpts, grpc.MaxConcurrentStreams(opts.MaxConcurrentStreams))
	}

	s := &Server{
		svc:     svc,
		grpc:    grpc.NewServer(serverOpts...),
		health:  health.NewServer(),
		timeout: opts.RequestTimeout,
		logger:  logger,
	}

	facepb.RegisterFaceRecognitionServer(s.grpc, s)
	healthpb.RegisterHealthServer(s.grpc, s.health)
	reflection.Register(s.grpc)
	s.SetServing(true)

	return s
}

// SetServing flips the health status of the whole server and of the
// FaceRecognition service.
func (s *Server) SetServing(serving bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		st = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(facepb.FaceRecognition_ServiceDesc.ServiceName, st)
}

func (s *Server) RecogniseFace(stream facepb.FaceRecognition_RecogniseFaceServer) error {
	ctx := stream.Context()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	rec, err := s.svc.RecogniseStream(ctx, s.receiver(ctx, stream))
	if err != nil {
		return toStatus(err)
	}

	return stream.SendAndClose(responseToProto(rec))
}

// receiver adapts stream.Recv, which only observes the transport context,
// so that the request deadline also interrupts a stalled client.
func (s *Server) receiver(ctx context.Context, stream facepb.FaceRecognition_RecogniseFaceServer) recognition.NextFunc {
	type result struct {
		req *facepb.FaceRecognitionRequest
		err error
	}

	return func() (recognition.Fragment, error) {
		if s.timeout <= 0 {
			req, err := stream.Recv()
			if err != nil {
				return recognition.Fragment{}, err
			}
			return fragmentFromProto(req), nil
		}

		ch := make(chan result, 1)
		go func() {
			req, err := stream.Recv()
			ch <- result{req, err}
		}()

		select {
		case r := <-ch:
			if r.err != nil {
				return recognition.Fragment{}, r.err
			}
			return fragmentFromProto(r.req), nil
		case <-ctx.Done():
			return recognition.Fragment{}, ctx.Err()
		}
	}
}

func (s *Server) Serve(lis net.Listener) error {
	s.logger.Info("grpc server listening", slog.String("addr", lis.Addr().String()))
	return s.grpc.Serve(lis)
}

// Stop drains in-flight streams until ctx ends, then closes everything.
func (s *Server) Stop(ctx context.Context) {
	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.grpc.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		s.logger.Warn("graceful stop timed out, closing streams")
		s.grpc.Stop()
	}
}
