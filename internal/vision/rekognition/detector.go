// Package rekognition detects facial landmarks with AWS Rekognition. It has
// no descriptor, so it is always paired with another backend.
package rekognition

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
	"github.com/aws/smithy-go"

	"github.com/saturnino-fabrica-de-software/faceid/internal/domain"
	"github.com/saturnino-fabrica-de-software/faceid/internal/imaging"
)

const (
	errCodeAccessDenied       = "AccessDeniedException"
	errCodeInvalidImageFormat = "InvalidImageFormatException"
	errCodeImageTooLarge      = "ImageTooLargeException"

	jpegQuality = 92
)

// landmarkOrder is the order of points returned by DetectLandmarks.
var landmarkOrder = []types.LandmarkType{
	types.LandmarkTypeEyeLeft,
	types.LandmarkTypeEyeRight,
	types.LandmarkTypeNose,
	types.LandmarkTypeMouthLeft,
	types.LandmarkTypeMouthRight,
}

// API is the subset of the Rekognition client used here.
type API interface {
	DetectFaces(ctx context.Context, params *rekognition.DetectFacesInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectFacesOutput, error)
}

type Config struct {
	// Region is the AWS region where Rekognition will be used (e.g., "us-east-1")
	Region string

	// Padding grows each region before upload so the detector sees the
	// whole head.
	Padding float64
}

func DefaultConfig() Config {
	return Config{
		Region:  "us-east-1",
		Padding: 0.25,
	}
}

type Detector struct {
	api     API
	padding float64
}

// New uses the AWS default credential chain.
func New(ctx context.Context, cfg Config) (*Detector, error) {
	if cfg.Region == "" {
		cfg.Region = DefaultConfig().Region
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return NewWithAPI(rekognition.NewFromConfig(awsCfg), cfg), nil
}

func NewWithAPI(api API, cfg Config) *Detector {
	padding := cfg.Padding
	if padding == 0 {
		padding = DefaultConfig().Padding
	}
	return &Detector{api: api, padding: padding}
}

func (d *Detector) Name() string { return "rekognition" }

func (d *Detector) Close() error { return nil }

// DetectLandmarks returns eyeLeft, eyeRight, nose, mouthLeft and mouthRight
// in image coordinates. When Rekognition finds several faces in the padded
// window, the one centred closest to the region wins.
func (d *Detector) DetectLandmarks(ctx context.Context, img *imaging.Image, region domain.Region) ([]domain.Point, error) {
	window := imaging.Expand(region.Rect(), d.padding, img.Bounds())
	crop := img.Crop(window)
	if crop.Bounds().Empty() {
		return nil, ErrEmptyCrop
	}

	data, err := imaging.EncodeJPEG(crop, jpegQuality)
	if err != nil {
		return nil, err
	}

	output, err := d.api.DetectFaces(ctx, &rekognition.DetectFacesInput{
		Image:      &types.Image{Bytes: data},
		Attributes: []types.Attribute{types.AttributeDefault},
	})
	if err != nil {
		return nil, mapError(err)
	}

	face, ok := closestFace(output.FaceDetails, region.Rect(), window)
	if !ok {
		return nil, fmt.Errorf("region %s: %w", region, ErrNoFaceDetected)
	}

	return landmarkPoints(face.Landmarks, window)
}

func mapError(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case errCodeAccessDenied:
			return fmt.Errorf("detect faces: %w", ErrInvalidCredentials)
		case errCodeInvalidImageFormat, errCodeImageTooLarge:
			return fmt.Errorf("detect faces: %w: %s", ErrInvalidImage, apiErr.ErrorMessage())
		}
	}
	return fmt.Errorf("detect faces: %w", err)
}

func closestFace(faces []types.FaceDetail, region, window image.Rectangle) (types.FaceDetail, bool) {
	if len(faces) == 0 {
		return types.FaceDetail{}, false
	}

	cx := float64(region.Min.X+region.Max.X)/2 - float64(window.Min.X)
	cy := float64(region.Min.Y+region.Max.Y)/2 - float64(window.Min.Y)
	w, h := float64(window.Dx()), float64(window.Dy())

	best, bestDist := -1, math.Inf(1)
	for i, face := range faces {
		box := face.BoundingBox
		if box == nil || box.Left == nil || box.Top == nil || box.Width == nil || box.Height == nil {
			continue
		}
		fx := (float64(*box.Left) + float64(*box.Width)/2) * w
		fy := (float64(*box.Top) + float64(*box.Height)/2) * h
		if dist := math.Hypot(fx-cx, fy-cy); dist < bestDist {
			best, bestDist = i, dist
		}
	}

	if best < 0 {
		return types.FaceDetail{}, false
	}
	return faces[best], true
}

func landmarkPoints(landmarks []types.Landmark, window image.Rectangle) ([]domain.Point, error) {
	byType := make(map[types.LandmarkType]types.Landmark, len(landmarks))
	for _, lm := range landmarks {
		byType[lm.Type] = lm
	}

	w, h := float64(window.Dx()), float64(window.Dy())
	points := make([]domain.Point, 0, len(landmarkOrder))
	for _, kind := range landmarkOrder {
		lm, ok := byType[kind]
		if !ok || lm.X == nil || lm.Y == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingLandmark, kind)
		}
		points = append(points, domain.Point{
			X: window.Min.X + int(math.Round(float64(*lm.X)*w)),
			Y: window.Min.Y + int(math.Round(float64(*lm.Y)*h)),
		})
	}
	return points, nil
}
