//go:build opencv

// Package opencv runs YuNet landmarks and SFace descriptors through gocv.
// Requires cgo and OpenCV 4.8+.
package opencv

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"
	"os"
	"sync"

	"gocv.io/x/gocv"

	"github.com/saturnino-fabrica-de-software/faceid/internal/domain"
	"github.com/saturnino-fabrica-de-software/faceid/internal/imaging"
)

const (
	padding = 0.25

	// YuNet rows are x, y, w, h, five landmark pairs and a score.
	yunetCols    = 15
	landmarkCols = 4
	sfaceSize    = 112
)

var ErrNoFace = errors.New("yunet found no face in region")

type Config struct {
	DetectorModelPath   string
	RecognizerModelPath string
}

// Backend guards both networks with one mutex; cv::dnn nets keep per-call
// state.
type Backend struct {
	mu         sync.Mutex
	detector   gocv.FaceDetectorYN
	recognizer gocv.FaceRecognizerSF
	closed     bool
}

func New(cfg Config, logger *slog.Logger) (*Backend, error) {
	for _, path := range []string{cfg.DetectorModelPath, cfg.RecognizerModelPath} {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("model %s: %w", path, err)
		}
	}

	b := &Backend{
		detector:   gocv.NewFaceDetectorYN(cfg.DetectorModelPath, "", image.Pt(320, 320)),
		recognizer: gocv.NewFaceRecognizerSF(cfg.RecognizerModelPath, ""),
	}

	logger.Debug("opencv models loaded",
		slog.String("detector", cfg.DetectorModelPath),
		slog.String("recognizer", cfg.RecognizerModelPath),
	)
	return b, nil
}

func (b *Backend) Name() string { return "opencv" }

func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	b.detector.Close()
	b.recognizer.Close()
	return nil
}

// DetectLandmarks returns YuNet's points: right eye, left eye, nose tip,
// right and left mouth corners.
func (b *Backend) DetectLandmarks(ctx context.Context, img *imaging.Image, region domain.Region) ([]domain.Point, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	window := imaging.Expand(region.Rect(), padding, img.Bounds())
	mat, err := toBGR(img.Crop(window))
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	faces := gocv.NewMat()
	defer faces.Close()

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, errors.New("opencv backend is closed")
	}
	b.detector.SetInputSize(image.Pt(mat.Cols(), mat.Rows()))
	b.detector.Detect(mat, &faces)
	b.mu.Unlock()

	row, ok := closestFace(faces, region.Rect().Sub(window.Min))
	if !ok {
		return nil, fmt.Errorf("region %s: %w", region, ErrNoFace)
	}

	points := make([]domain.Point, 5)
	for i := range points {
		points[i] = domain.Point{
			X: window.Min.X + int(math.Round(float64(faces.GetFloatAt(row, landmarkCols+2*i)))),
			Y: window.Min.Y + int(math.Round(float64(faces.GetFloatAt(row, landmarkCols+2*i+1)))),
		}
	}
	return points, nil
}

// ComputeDescriptor aligns the face on the five landmarks when they are
// available and otherwise resizes the region crop to the SFace input size.
func (b *Backend) ComputeDescriptor(ctx context.Context, img *imaging.Image, region domain.Region, landmarks []domain.Point) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rect := region.Rect()
	aligned := gocv.NewMat()
	defer aligned.Close()

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, errors.New("opencv backend is closed")
	}

	if len(landmarks) == 5 {
		src, err := toBGR(img)
		if err != nil {
			return nil, err
		}
		defer src.Close()

		box := faceRow(rect, landmarks)
		defer box.Close()
		b.recognizer.AlignCrop(src, box, &aligned)
	} else {
		crop, err := toBGR(img.Crop(rect))
		if err != nil {
			return nil, err
		}
		defer crop.Close()
		gocv.Resize(crop, &aligned, image.Pt(sfaceSize, sfaceSize), 0, 0, gocv.InterpolationLinear)
	}

	feature := gocv.NewMat()
	defer feature.Close()
	b.recognizer.Feature(aligned, &feature)

	if feature.Empty() {
		return nil, fmt.Errorf("region %s: sface returned no feature", region)
	}

	out := make([]float64, feature.Total())
	for i := range out {
		out[i] = float64(feature.GetFloatAt(0, i))
	}
	return out, nil
}

func toBGR(img *imaging.Image) (gocv.Mat, error) {
	rgb, err := gocv.NewMatFromBytes(img.Height(), img.Width(), gocv.MatTypeCV8UC3, img.Packed())
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("wrap pixels: %w", err)
	}
	defer rgb.Close()

	bgr := gocv.NewMat()
	gocv.CvtColor(rgb, &bgr, gocv.ColorRGBToBGR)
	return bgr, nil
}

func faceRow(rect image.Rectangle, landmarks []domain.Point) gocv.Mat {
	row := gocv.NewMatWithSize(1, yunetCols, gocv.MatTypeCV32F)
	row.SetFloatAt(0, 0, float32(rect.Min.X))
	row.SetFloatAt(0, 1, float32(rect.Min.Y))
	row.SetFloatAt(0, 2, float32(rect.Dx()))
	row.SetFloatAt(0, 3, float32(rect.Dy()))
	for i, p := range landmarks {
		row.SetFloatAt(0, landmarkCols+2*i, float32(p.X))
		row.SetFloatAt(0, landmarkCols+2*i+1, float32(p.Y))
	}
	row.SetFloatAt(0, yunetCols-1, 1)
	return row
}

func closestFace(faces gocv.Mat, target image.Rectangle) (int, bool) {
	if faces.Empty() || faces.Cols() < yunetCols {
		return 0, false
	}

	cx := float64(target.Min.X+target.Max.X) / 2
	cy := float64(target.Min.Y+target.Max.Y) / 2

	best, bestDist := -1, math.Inf(1)
	for i := 0; i < faces.Rows(); i++ {
		fx := float64(faces.GetFloatAt(i, 0) + faces.GetFloatAt(i, 2)/2)
		fy := float64(faces.GetFloatAt(i, 1) + faces.GetFloatAt(i, 3)/2)
		if dist := math.Hypot(fx-cx, fy-cy); dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best, best >= 0
}
