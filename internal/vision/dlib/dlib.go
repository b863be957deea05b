//go:build dlib

// Package dlib runs the dlib 5-point shape predictor and ResNet face encoder
// through go-face. Requires cgo and libdlib.
package dlib

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	face "github.com/Kagami/go-face"

	"github.com/saturnino-fabrica-de-software/faceid/internal/domain"
	"github.com/saturnino-fabrica-de-software/faceid/internal/imaging"
)

// File names go-face expects inside its model directory.
const (
	shapePredictorFile = "shape_predictor_5_face_landmarks.dat"
	resnetFile         = "dlib_face_recognition_resnet_model_v1.dat"
	cnnDetectorFile    = "mmod_human_face_detector.dat"

	jpegQuality = 95
	padding     = 0.25
)

var ErrNoFace = errors.New("dlib found no face in region")

type Config struct {
	LandmarkModelPath    string
	RecognitionModelPath string
	DetectorModelPath    string
}

// Backend serialises access to the recognizer, which is not safe for
// concurrent use.
type Backend struct {
	mu         sync.Mutex
	rec        *face.Recognizer
	stagingDir string
}

// New loads the models once. Models that do not already sit together under
// go-face's file names are linked into a temporary directory first.
func New(cfg Config, logger *slog.Logger) (*Backend, error) {
	dir, staged, err := modelDir(cfg)
	if err != nil {
		return nil, err
	}

	rec, err := face.NewRecognizer(dir)
	if err != nil {
		if staged {
			_ = os.RemoveAll(dir)
		}
		return nil, fmt.Errorf("init recognizer from %s: %w", dir, err)
	}

	logger.Debug("dlib models loaded",
		slog.String("landmarks", cfg.LandmarkModelPath),
		slog.String("recognition", cfg.RecognitionModelPath),
	)

	b := &Backend{rec: rec}
	if staged {
		b.stagingDir = dir
	}
	return b, nil
}

func modelDir(cfg Config) (dir string, staged bool, err error) {
	models := map[string]string{
		shapePredictorFile: cfg.LandmarkModelPath,
		resnetFile:         cfg.RecognitionModelPath,
		cnnDetectorFile:    cfg.DetectorModelPath,
	}

	shared := filepath.Dir(cfg.LandmarkModelPath)
	together := true
	for name, path := range models {
		if _, err := os.Stat(path); err != nil {
			return "", false, fmt.Errorf("model %s: %w", name, err)
		}
		if filepath.Dir(path) != shared || filepath.Base(path) != name {
			together = false
		}
	}
	if together {
		return shared, false, nil
	}

	dir, err = os.MkdirTemp("", "faceid-dlib-")
	if err != nil {
		return "", false, fmt.Errorf("create model staging dir: %w", err)
	}
	for name, path := range models {
		abs, err := filepath.Abs(path)
		if err != nil {
			_ = os.RemoveAll(dir)
			return "", false, err
		}
		if err := os.Symlink(abs, filepath.Join(dir, name)); err != nil {
			_ = os.RemoveAll(dir)
			return "", false, fmt.Errorf("stage model %s: %w", name, err)
		}
	}
	return dir, true, nil
}

func (b *Backend) Name() string { return "dlib" }

func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.rec != nil {
		b.rec.Close()
		b.rec = nil
	}
	if b.stagingDir != "" {
		return os.RemoveAll(b.stagingDir)
	}
	return nil
}

// DetectLandmarks returns the 5 shape predictor points in dlib order.
func (b *Backend) DetectLandmarks(ctx context.Context, img *imaging.Image, region domain.Region) ([]domain.Point, error) {
	f, offset, err := b.recognize(ctx, img, region)
	if err != nil {
		return nil, err
	}

	points := make([]domain.Point, len(f.Shapes))
	for i, p := range f.Shapes {
		points[i] = domain.Point{X: p.X + offset.X, Y: p.Y + offset.Y}
	}
	return points, nil
}

// ComputeDescriptor returns the 128-d ResNet embedding. The shape predictor
// runs again inside go-face, so the landmarks argument is not consulted.
func (b *Backend) ComputeDescriptor(ctx context.Context, img *imaging.Image, region domain.Region, _ []domain.Point) ([]float64, error) {
	f, _, err := b.recognize(ctx, img, region)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(f.Descriptor))
	for i, v := range f.Descriptor {
		out[i] = float64(v)
	}
	return out, nil
}

// recognize runs go-face on a padded window around the region. go-face
// detects faces itself, so the detection nearest the requested box is used
// and neighbours caught in the padding are ignored.
func (b *Backend) recognize(ctx context.Context, img *imaging.Image, region domain.Region) (*face.Face, image.Point, error) {
	window := imaging.Expand(region.Rect(), padding, img.Bounds())
	data, err := imaging.EncodeJPEG(img.Crop(window), jpegQuality)
	if err != nil {
		return nil, image.Point{}, err
	}

	if err := ctx.Err(); err != nil {
		return nil, image.Point{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.rec == nil {
		return nil, image.Point{}, errors.New("dlib backend is closed")
	}

	faces, err := b.rec.Recognize(data)
	if err != nil {
		return nil, image.Point{}, fmt.Errorf("recognize region %s: %w", region, err)
	}

	rects := make([]image.Rectangle, len(faces))
	for i, f := range faces {
		rects[i] = f.Rectangle
	}
	best, ok := closestFace(rects, region.Rect().Sub(window.Min))
	if !ok {
		return nil, image.Point{}, fmt.Errorf("region %s: %w", region, ErrNoFace)
	}

	return &faces[best], window.Min, nil
}
