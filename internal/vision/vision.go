// Package vision defines the narrow interface the recognition core uses to
// reach a face model, and selects a concrete backend at startup.
package vision

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/saturnino-fabrica-de-software/faceid/internal/domain"
	"github.com/saturnino-fabrica-de-software/faceid/internal/imaging"
)

var (
	// ErrModel wraps every failure raised inside a backend.
	ErrModel = errors.New("vision model failure")

	// ErrBackendUnavailable is returned when a backend was not compiled in.
	ErrBackendUnavailable = errors.New("vision backend not available in this build")

	ErrUnknownBackend = errors.New("unknown vision backend")
	ErrLandmarksOnly  = errors.New("vision backend provides landmarks only")
)

// LandmarkDetector locates facial landmarks inside a region. The order of
// the returned points is fixed per backend.
type LandmarkDetector interface {
	DetectLandmarks(ctx context.Context, img *imaging.Image, region domain.Region) ([]domain.Point, error)
}

// DescriptorExtractor computes a fixed-length embedding for an aligned face.
type DescriptorExtractor interface {
	ComputeDescriptor(ctx context.Context, img *imaging.Image, region domain.Region, landmarks []domain.Point) ([]float64, error)
}

// Backend is a loaded model handle. Implementations must be safe for
// concurrent use.
type Backend interface {
	LandmarkDetector
	DescriptorExtractor
	Name() string
	Close() error
}

// Composite pairs the landmarks of one model with the descriptor of another.
type Composite struct {
	landmarks   LandmarkDetector
	descriptors DescriptorExtractor
}

func NewComposite(landmarks LandmarkDetector, descriptors DescriptorExtractor) *Composite {
	return &Composite{landmarks: landmarks, descriptors: descriptors}
}

func (c *Composite) DetectLandmarks(ctx context.Context, img *imaging.Image, region domain.Region) ([]domain.Point, error) {
	return c.landmarks.DetectLandmarks(ctx, img, region)
}

func (c *Composite) ComputeDescriptor(ctx context.Context, img *imaging.Image, region domain.Region, landmarks []domain.Point) ([]float64, error) {
	return c.descriptors.ComputeDescriptor(ctx, img, region, landmarks)
}

func (c *Composite) Name() string {
	return nameOf(c.landmarks) + "+" + nameOf(c.descriptors)
}

func (c *Composite) Close() error {
	var errs []error
	for _, part := range []any{c.landmarks, c.descriptors} {
		if closer, ok := part.(io.Closer); ok {
			errs = append(errs, closer.Close())
		}
	}
	return errors.Join(errs...)
}

func nameOf(v any) string {
	if n, ok := v.(interface{ Name() string }); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", v)
}

// guarded tags backend errors with ErrModel so the core can tell them apart
// from transport failures. Context errors pass through untouched.
type guarded struct {
	Backend
}

func guard(b Backend) Backend {
	if _, ok := b.(guarded); ok {
		return b
	}
	return guarded{Backend: b}
}

func (g guarded) DetectLandmarks(ctx context.Context, img *imaging.Image, region domain.Region) ([]domain.Point, error) {
	points, err := g.Backend.DetectLandmarks(ctx, img, region)
	if err != nil {
		return nil, g.wrap(ctx, "detect landmarks", err)
	}
	return points, nil
}

func (g guarded) ComputeDescriptor(ctx context.Context, img *imaging.Image, region domain.Region, landmarks []domain.Point) ([]float64, error) {
	descriptor, err := g.Backend.ComputeDescriptor(ctx, img, region, landmarks)
	if err != nil {
		return nil, g.wrap(ctx, "compute descriptor", err)
	}
	if len(descriptor) == 0 {
		return nil, fmt.Errorf("%w: %s: empty descriptor for region %s", ErrModel, g.Name(), region)
	}
	return descriptor, nil
}

func (g guarded) wrap(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		return err
	}
	if errors.Is(err, ErrModel) {
		return err
	}
	return fmt.Errorf("%w: %s: %s: %w", ErrModel, g.Name(), op, err)
}
