package deepface

import (
	"context"
	"encoding/base64"
	"fmt"
	"image"

	"github.com/saturnino-fabrica-de-software/faceid/internal/domain"
	"github.com/saturnino-fabrica-de-software/faceid/internal/imaging"
)

const jpegQuality = 92

// Backend computes landmarks and descriptors through a remote DeepFace API.
// Landmarks are the two eye centres, left then right.
type Backend struct {
	client  *Client
	padding float64
}

func NewBackend(config Config) *Backend {
	return &Backend{
		client:  NewClient(config),
		padding: config.Padding,
	}
}

func (b *Backend) Name() string { return "deepface" }

func (b *Backend) Close() error {
	b.client.httpClient.CloseIdleConnections()
	return nil
}

// DetectLandmarks runs the configured detector on a padded crop around the
// region. If the detector does not report eyes, they are estimated from the
// facial area it found.
func (b *Backend) DetectLandmarks(ctx context.Context, img *imaging.Image, region domain.Region) ([]domain.Point, error) {
	window := imaging.Expand(region.Rect(), b.padding, img.Bounds())

	uri, err := cropDataURI(img, window)
	if err != nil {
		return nil, err
	}

	resp, err := b.client.Represent(ctx, uri, "")
	if err != nil {
		return nil, fmt.Errorf("detect landmarks: %w", err)
	}
	if len(resp.Results) == 0 {
		return nil, ErrNoFaceInResponse
	}

	area := resp.Results[0].FacialArea
	left, right := eyes(area)
	offset := window.Min

	return []domain.Point{
		{X: left.X + offset.X, Y: left.Y + offset.Y},
		{X: right.X + offset.X, Y: right.Y + offset.Y},
	}, nil
}

// ComputeDescriptor sends the exact region crop with detection disabled.
func (b *Backend) ComputeDescriptor(ctx context.Context, img *imaging.Image, region domain.Region, _ []domain.Point) ([]float64, error) {
	uri, err := cropDataURI(img, region.Rect())
	if err != nil {
		return nil, err
	}

	resp, err := b.client.Represent(ctx, uri, DetectorSkip)
	if err != nil {
		return nil, fmt.Errorf("compute descriptor: %w", err)
	}
	if len(resp.Results) == 0 || len(resp.Results[0].Embedding) == 0 {
		return nil, ErrNoFaceInResponse
	}

	return resp.Results[0].Embedding, nil
}

func cropDataURI(img *imaging.Image, rect image.Rectangle) (string, error) {
	crop := img.Crop(rect)
	if crop.Bounds().Empty() {
		return "", ErrEmptyCrop
	}

	data, err := imaging.EncodeJPEG(crop, jpegQuality)
	if err != nil {
		return "", err
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(data), nil
}

// eyes returns the eye centres reported in area, or the usual proportions of
// the face box when the detector left them out. DeepFace reports left_eye
// from the subject's point of view, which is on the right of the image.
func eyes(area FacialArea) (left, right image.Point) {
	if len(area.LeftEye) == 2 && len(area.RightEye) == 2 {
		a := image.Pt(area.LeftEye[0], area.LeftEye[1])
		b := image.Pt(area.RightEye[0], area.RightEye[1])
		if a.X > b.X {
			a, b = b, a
		}
		return a, b
	}

	y := area.Y + area.H*35/100
	return image.Pt(area.X+area.W*30/100, y), image.Pt(area.X+area.W*70/100, y)
}
