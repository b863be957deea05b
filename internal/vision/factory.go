package vision

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/saturnino-fabrica-de-software/faceid/internal/config"
	"github.com/saturnino-fabrica-de-software/faceid/internal/vision/deepface"
	"github.com/saturnino-fabrica-de-software/faceid/internal/vision/fake"
	"github.com/saturnino-fabrica-de-software/faceid/internal/vision/rekognition"
)

// Kind names a backend implementation.
type Kind string

const (
	KindFake        Kind = "fake"
	KindDlib        Kind = "dlib"
	KindOpenCV      Kind = "opencv"
	KindDeepFace    Kind = "deepface"
	KindRekognition Kind = "rekognition"
)

// New loads the backend selected by VISION_BACKEND. When LANDMARK_BACKEND
// names a different backend, landmarks come from it and descriptors from the
// primary one.
//
// Environment variables:
//   - VISION_BACKEND: fake, dlib, opencv or deepface
//   - LANDMARK_BACKEND: optional, any of the above plus rekognition
//   - LANDMARK_MODEL_PATH, RECOGNITION_MODEL_PATH, DETECTOR_MODEL_PATH: dlib models
//   - OPENCV_DETECTOR_MODEL_PATH, OPENCV_RECOGNIZER_MODEL_PATH: YuNet and SFace models
//   - DEEPFACE_URL, DEEPFACE_MODEL: remote DeepFace API
//   - AWS_REGION: region for Rekognition
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Backend, error) {
	primaryKind := Kind(cfg.VisionBackend)
	if primaryKind == KindRekognition {
		return nil, fmt.Errorf("%w: %s cannot be VISION_BACKEND, use it as LANDMARK_BACKEND", ErrLandmarksOnly, primaryKind)
	}

	primary, err := newBackend(ctx, primaryKind, cfg, logger)
	if err != nil {
		return nil, err
	}

	landmarkKind := Kind(cfg.LandmarkBackend)
	if landmarkKind == "" || landmarkKind == primaryKind {
		logger.Info("vision backend loaded", slog.String("backend", primary.Name()))
		return guard(primary), nil
	}

	landmarks, err := newLandmarkDetector(ctx, landmarkKind, cfg, logger)
	if err != nil {
		_ = primary.Close()
		return nil, err
	}

	composite := NewComposite(landmarks, primary)
	logger.Info("vision backend loaded", slog.String("backend", composite.Name()))
	return guard(composite), nil
}

func newBackend(ctx context.Context, kind Kind, cfg *config.Config, logger *slog.Logger) (Backend, error) {
	switch kind {
	case KindFake:
		return fake.New(), nil
	case KindDeepFace:
		return newDeepFace(cfg), nil
	case KindDlib:
		return newDlib(cfg, logger)
	case KindOpenCV:
		return newOpenCV(cfg, logger)
	default:
		return nil, fmt.Errorf("%w: %q (supported: %s, %s, %s, %s)",
			ErrUnknownBackend, kind, KindFake, KindDlib, KindOpenCV, KindDeepFace)
	}
}

func newLandmarkDetector(ctx context.Context, kind Kind, cfg *config.Config, logger *slog.Logger) (LandmarkDetector, error) {
	if kind == KindRekognition {
		detector, err := rekognition.New(ctx, rekognition.Config{Region: cfg.AWSRegion})
		if err != nil {
			return nil, fmt.Errorf("create rekognition landmark detector: %w", err)
		}
		return detector, nil
	}
	return newBackend(ctx, kind, cfg, logger)
}

func newDeepFace(cfg *config.Config) *deepface.Backend {
	dfConfig := deepface.DefaultConfig()
	if cfg.DeepFaceURL != "" {
		dfConfig.BaseURL = cfg.DeepFaceURL
	}
	if cfg.DeepFaceModel != "" {
		dfConfig.Model = cfg.DeepFaceModel
	}
	return deepface.NewBackend(dfConfig)
}
