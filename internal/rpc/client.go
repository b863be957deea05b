package rpc

import (
	"context"
	"errors"
	"fmt"
	"io"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/saturnino-fabrica-de-software/faceid/internal/domain"
	"github.com/saturnino-fabrica-de-software/faceid/internal/rpc/facepb"
)

const DefaultChunkSize = 64 << 10

// Client streams images to a FaceRecognition server.
type Client struct {
	conn      *grpc.ClientConn
	faces     facepb.FaceRecognitionClient
	health    healthpb.HealthClient
	chunkSize int
}

// NewClient connects without TLS. Extra dial options are appended, which is
// how tests swap in an in-memory listener.
func NewClient(target string, chunkSize int, opts ...grpc.DialOption) (*Client, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}, opts...)

	conn, err := grpc.NewClient(target, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", target, err)
	}

	return &Client{
		conn:      conn,
		faces:     facepb.NewFaceRecognitionClient(conn),
		health:    healthpb.NewHealthClient(conn),
		chunkSize: chunkSize,
	}, nil
}

// Recognise sends the header, then the image in chunks, and returns one
// identity per region.
func (c *Client) Recognise(ctx context.Context, regions []domain.Region, image io.Reader) ([]domain.Identity, error) {
	stream, err := c.faces.RecogniseFace(ctx)
	if err != nil {
		return nil, fmt.Errorf("open stream: %w", err)
	}

	if err := stream.Send(headerToProto(regions)); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("send header: %w", err)
	}

	buf := make([]byte, c.chunkSize)
	for {
		n, readErr := io.ReadFull(image, buf)
		if n > 0 {
			chunk := append([]byte(nil), buf[:n]...)
			if err := stream.Send(chunkToProto(chunk)); err != nil {
				// io.EOF means the server already answered; the status
				// comes from CloseAndRecv
				if errors.Is(err, io.EOF) {
					break
				}
				return nil, fmt.Errorf("send chunk: %w", err)
			}
		}
		if errors.Is(readErr, io.EOF) || errors.Is(readErr, io.ErrUnexpectedEOF) {
			break
		}
		if readErr != nil {
			_ = stream.CloseSend()
			return nil, fmt.Errorf("read image: %w", readErr)
		}
	}

	resp, err := stream.CloseAndRecv()
	if err != nil {
		return nil, err
	}
	return identitiesFromProto(resp), nil
}

// Check queries the standard health service. An empty service name asks
// about the server as a whole.
func (c *Client) Check(ctx context.Context, service string) (healthpb.HealthCheckResponse_ServingStatus, error) {
	resp, err := c.health.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		return healthpb.HealthCheckResponse_UNKNOWN, err
	}
	return resp.GetStatus(), nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}
