//go:build opencv

package vision

import (
	"fmt"
	"log/slog"

	"github.com/saturnino-fabrica-de-software/faceid/internal/config"
	"github.com/saturnino-fabrica-de-software/faceid/internal/vision/opencv"
)

func newOpenCV(cfg *config.Config, logger *slog.Logger) (Backend, error) {
	backend, err := opencv.New(opencv.Config{
		DetectorModelPath:   cfg.OpenCVDetectorModelPath,
		RecognizerModelPath: cfg.OpenCVRecognizerModelPath,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("load opencv models: %w", err)
	}
	return backend, nil
}
