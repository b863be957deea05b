package domain

import (
	"fmt"
	"image"
	"time"

	"github.com/google/uuid"
)

// Region is an axis-aligned face box in pixel units, origin at the top left.
type Region struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"w"`
	Height int `json:"h"`
}

func (r Region) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

// Rect converts the region to an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// RegionFromRect is the inverse of Region.Rect.
func RegionFromRect(rect image.Rectangle) Region {
	rect = rect.Canon()
	return Region{X: rect.Min.X, Y: rect.Min.Y, Width: rect.Dx(), Height: rect.Dy()}
}

// ClampTo restricts the region to bounds. A region with non-positive width or
// height, or one that does not overlap bounds at all, yields ErrInvalidRegion.
func (r Region) ClampTo(bounds image.Rectangle) (Region, error) {
	if r.Width <= 0 || r.Height <= 0 {
		return Region{}, ErrInvalidRegion.WithError(fmt.Errorf("region %s has non-positive size", r))
	}

	clamped := r.Rect().Intersect(bounds)
	if clamped.Empty() {
		return Region{}, ErrInvalidRegion.WithError(fmt.Errorf("region %s lies outside image %v", r, bounds))
	}

	return RegionFromRect(clamped), nil
}

// Point is a landmark position in image pixel coordinates.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Header is carried by the first message of a recognition stream.
type Header struct {
	Faces []Region `json:"faces"`
}

// Identity is the embedding computed for one input region.
type Identity struct {
	Embedding []float64 `json:"identity"`
}

// Recognition is the outcome of one request. Identities[i] belongs to the
// i-th region of the request header.
type Recognition struct {
	ID         uuid.UUID     `json:"id"`
	Identities []Identity    `json:"identities"`
	Latency    time.Duration `json:"-"`
}
