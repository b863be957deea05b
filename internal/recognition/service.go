package recognition

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/saturnino-fabrica-de-software/faceid/internal/audit"
	"github.com/saturnino-fabrica-de-software/faceid/internal/domain"
	"github.com/saturnino-fabrica-de-software/faceid/internal/imaging"
	"github.com/saturnino-fabrica-de-software/faceid/internal/vision"
)

type Options struct {
	MaxImageBytes     int
	// MaxImagePixels caps width*height before pixels are allocated; 0
	// disables the cap.
	MaxImagePixels    int
	RegionParallelism int
}

// Service owns the request pipeline: reassembly, decode, and the per-region
// landmark and descriptor calls.
type Service struct {
	backend vision.Backend
	pool    *Pool
	audit   audit.Logger
	opts    Options
	logger  *slog.Logger
}

func NewService(backend vision.Backend, pool *Pool, auditLogger audit.Logger, opts Options, logger *slog.Logger) *Service {
	if opts.RegionParallelism < 1 {
		opts.RegionParallelism = 1
	}
	if auditLogger == nil {
		auditLogger = &audit.NoOpLogger{}
	}
	return &Service{
		backend: backend,
		pool:    pool,
		audit:   auditLogger,
		opts:    opts,
		logger:  logger.With("component", "recognition"),
	}
}

func (s *Service) BackendName() string { return s.backend.Name() }

// RecogniseStream drains next to io.EOF and recognises the assembled image.
// A missing header fails before anything is decoded.
func (s *Service) RecogniseStream(ctx context.Context, next NextFunc) (*domain.Recognition, error) {
	start := time.Now()
	asm := NewAssembler(s.opts.MaxImageBytes, s.logger)

	if err := asm.Drain(ctx, next); err != nil {
		s.record(ctx, start, asm.Header(), nil, len(asm.Bytes()), err)
		return nil, err
	}

	s.logger.DebugContext(ctx, "stream assembled",
		slog.Int("fragments", asm.Fragments()),
		slog.Int("bytes", len(asm.Bytes())),
		slog.Int("faces", len(asm.Header().Faces)),
	)

	return s.recognise(ctx, start, asm.Header(), asm.Bytes())
}

// Recognise handles an image that is already in memory.
func (s *Service) Recognise(ctx context.Context, header domain.Header, data []byte) (*domain.Recognition, error) {
	start := time.Now()
	if s.opts.MaxImageBytes > 0 && len(data) > s.opts.MaxImageBytes {
		err := domain.ErrImageTooLarge.WithError(fmt.Errorf("received %d bytes, limit is %d", len(data), s.opts.MaxImageBytes))
		s.record(ctx, start, header, nil, len(data), err)
		return nil, err
	}
	return s.recognise(ctx, start, header, data)
}

func (s *Service) recognise(ctx context.Context, start time.Time, header domain.Header, data []byte) (*domain.Recognition, error) {
	out := make(chan []domain.Identity, 1)
	err := s.pool.Do(ctx, func(ctx context.Context) error {
		ids, err := s.process(ctx, header, data)
		if err == nil {
			out <- ids
		}
		return err
	})

	var identities []domain.Identity
	if err == nil {
		identities = <-out
	}

	s.record(ctx, start, header, identities, len(data), err)
	if err != nil {
		return nil, err
	}

	rec := &domain.Recognition{
		ID:         uuid.New(),
		Identities: identities,
		Latency:    time.Since(start),
	}
	s.logger.InfoContext(ctx, "faces recognised",
		slog.String("recognition_id", rec.ID.String()),
		slog.Int("faces", len(identities)),
		slog.Duration("elapsed", rec.Latency),
	)
	return rec, nil
}

func (s *Service) process(ctx context.Context, header domain.Header, data []byte) ([]domain.Identity, error) {
	img, info, err := imaging.DecodeLimited(data, s.opts.MaxImagePixels)
	if errors.Is(err, imaging.ErrTooManyPixels) {
		return nil, domain.ErrImageTooLarge.WithError(err)
	}
	if err != nil {
		return nil, domain.ErrDecode.WithError(err)
	}
	if info.HadAlpha {
		s.logger.DebugContext(ctx, "alpha channel dropped", slog.String("format", info.Format))
	}

	identities := make([]domain.Identity, len(header.Faces))
	if len(header.Faces) == 0 {
		return identities, nil
	}

	if s.opts.RegionParallelism == 1 {
		for i, region := range header.Faces {
			id, err := s.recogniseRegion(ctx, img, i, region)
			if err != nil {
				return nil, err
			}
			identities[i] = id
		}
		return identities, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.RegionParallelism)
	for i, region := range header.Faces {
		g.Go(func() (err error) {
			// errgroup goroutines sit outside the pool's recover
			defer func() {
				if r := recover(); r != nil {
					err = domain.ErrInternal.WithError(fmt.Errorf("face %d: panic: %v", i, r))
				}
			}()
			id, err := s.recogniseRegion(gctx, img, i, region)
			if err != nil {
				return err
			}
			identities[i] = id
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// gctx is also cancelled by a failing sibling
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}
	return identities, nil
}

func (s *Service) recogniseRegion(ctx context.Context, img *imaging.Image, i int, region domain.Region) (domain.Identity, error) {
	clamped, err := region.ClampTo(img.Bounds())
	if err != nil {
		return domain.Identity{}, fmt.Errorf("face %d: %w", i, err)
	}
	if clamped != region {
		s.logger.DebugContext(ctx, "region clamped to image",
			slog.Int("face", i),
			slog.String("region", region.String()),
			slog.String("clamped", clamped.String()),
		)
	}

	landmarks, err := s.backend.DetectLandmarks(ctx, img, clamped)
	if err != nil {
		return domain.Identity{}, inferenceError(ctx, i, err)
	}

	descriptor, err := s.backend.ComputeDescriptor(ctx, img, clamped, landmarks)
	if err != nil {
		return domain.Identity{}, inferenceError(ctx, i, err)
	}

	return domain.Identity{Embedding: descriptor}, nil
}

func inferenceError(ctx context.Context, i int, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return domain.ErrInference.WithError(fmt.Errorf("face %d: %w", i, err))
}

func (s *Service) record(ctx context.Context, start time.Time, header domain.Header, identities []domain.Identity, size int, err error) {
	event := audit.Event{
		EventType:  audit.EventFaceRecognised,
		Backend:    s.backend.Name(),
		Success:    err == nil,
		Regions:    header.Faces,
		ImageBytes: size,
		LatencyMS:  time.Since(start).Milliseconds(),
		Identities: identities,
	}
	if info, ok := audit.RequestFromContext(ctx); ok {
		event.RequestID = info.ID
		event.Transport = info.Transport
		event.Peer = info.Peer
	}
	if err != nil {
		event.EventType = audit.EventRecognitionFailed
		event.Error = err.Error()
		var appErr *domain.AppError
		if errors.As(err, &appErr) {
			event.ErrorCode = appErr.Code
		}
	}

	// audit writes outlive request cancellation
	if logErr := s.audit.Log(context.WithoutCancel(ctx), event); logErr != nil {
		s.logger.WarnContext(ctx, "audit log failed", slog.String("error", logErr.Error()))
	}
}
