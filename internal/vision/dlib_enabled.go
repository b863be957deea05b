//go:build dlib

package vision

import (
	"fmt"
	"log/slog"

	"github.com/saturnino-fabrica-de-software/faceid/internal/config"
	"github.com/saturnino-fabrica-de-software/faceid/internal/vision/dlib"
)

func newDlib(cfg *config.Config, logger *slog.Logger) (Backend, error) {
	backend, err := dlib.New(dlib.Config{
		LandmarkModelPath:    cfg.LandmarkModelPath,
		RecognitionModelPath: cfg.RecognitionModelPath,
		DetectorModelPath:    cfg.DetectorModelPath,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("load dlib models: %w", err)
	}
	return backend, nil
}
