//go:build !dlib

package vision

import (
	"fmt"
	"log/slog"

	"github.com/saturnino-fabrica-de-software/faceid/internal/config"
)

func newDlib(*config.Config, *slog.Logger) (Backend, error) {
	return nil, fmt.Errorf("%w: %s (rebuild with -tags dlib)", ErrBackendUnavailable, KindDlib)
}
