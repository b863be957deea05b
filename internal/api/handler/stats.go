package handler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/faceid/internal/domain"
	"github.com/saturnino-fabrica-de-software/faceid/internal/metrics"
)

const (
	defaultStatsWindow = 24 * time.Hour
	maxStatsWindow     = 90 * 24 * time.Hour
)

// StatsSource is the part of metrics.Repository the handler needs.
type StatsSource interface {
	Summary(ctx context.Context, since time.Time) (*metrics.Summary, error)
}

type StatsHandler struct {
	source StatsSource
	logger *slog.Logger
}

func NewStatsHandler(source StatsSource, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{source: source, logger: logger}
}

// Stats GET /v1/stats?window=24h - audit summary over a trailing window
func (h *StatsHandler) Stats(c *fiber.Ctx) error {
	window := defaultStatsWindow
	if raw := c.Query("window"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 || d > maxStatsWindow {
			return domain.ErrValidationFailed.WithError(fmt.Errorf("window must be a duration between 0 and %s", maxStatsWindow))
		}
		window = d
	}

	summary, err := h.source.Summary(c.UserContext(), time.Now().UTC().Add(-window))
	if err != nil {
		return domain.ErrInternal.WithError(err)
	}
	return c.JSON(summary)
}
