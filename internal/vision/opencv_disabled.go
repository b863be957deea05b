//go:build !opencv

package vision

import (
	"fmt"
	"log/slog"

	"github.com/saturnino-fabrica-de-software/faceid/internal/config"
)

func newOpenCV(*config.Config, *slog.Logger) (Backend, error) {
	return nil, fmt.Errorf("%w: %s (rebuild with -tags opencv)", ErrBackendUnavailable, KindOpenCV)
}
