// Package fake is a deterministic backend for tests and local development.
// Landmarks come from the region geometry and descriptors from a hash of the
// cropped pixels, so the same face crop always yields the same identity.
package fake

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"math"

	"github.com/saturnino-fabrica-de-software/faceid/internal/domain"
	"github.com/saturnino-fabrica-de-software/faceid/internal/imaging"
)

const Dimension = 128

// landmarkLayout places 5 points relative to the region: left eye, right
// eye, nose tip, left and right mouth corners.
var landmarkLayout = [5][2]float64{
	{0.30, 0.35},
	{0.70, 0.35},
	{0.50, 0.55},
	{0.35, 0.75},
	{0.65, 0.75},
}

type Backend struct{}

func New() *Backend {
	return &Backend{}
}

func (b *Backend) Name() string { return "fake" }

func (b *Backend) Close() error { return nil }

func (b *Backend) DetectLandmarks(ctx context.Context, _ *imaging.Image, region domain.Region) ([]domain.Point, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	points := make([]domain.Point, len(landmarkLayout))
	for i, rel := range landmarkLayout {
		points[i] = domain.Point{
			X: region.X + int(rel[0]*float64(region.Width)),
			Y: region.Y + int(rel[1]*float64(region.Height)),
		}
	}
	return points, nil
}

func (b *Backend) ComputeDescriptor(ctx context.Context, img *imaging.Image, region domain.Region, _ []domain.Point) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	crop := img.Crop(region.Rect())
	return embed(crop.Packed()), nil
}

// embed stretches a sha256 digest into a unit-length vector by hashing the
// seed together with a block counter.
func embed(data []byte) []float64 {
	seed := sha256.Sum256(data)
	out := make([]float64, Dimension)

	var block [sha256.Size + 4]byte
	copy(block[:], seed[:])

	var digest [sha256.Size]byte
	for i := range out {
		if i%(sha256.Size/2) == 0 {
			binary.BigEndian.PutUint32(block[sha256.Size:], uint32(i))
			digest = sha256.Sum256(block[:])
		}
		j := (i % (sha256.Size / 2)) * 2
		v := binary.BigEndian.Uint16(digest[j:])
		out[i] = float64(v)/math.MaxUint16*2 - 1
	}

	var norm float64
	for _, v := range out {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return out
	}
	for i := range out {
		out[i] /= norm
	}
	return out
}
