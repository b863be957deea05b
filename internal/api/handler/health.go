package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/faceid/internal/database"
)

const Version = "0.1.0"

type HealthHandler struct {
	backend string
	db      database.Pinger
	logger  *slog.Logger
}

// NewHealthHandler takes a nil db when auditing to Postgres is off; readiness
// then only reflects the process itself.
func NewHealthHandler(backend string, db database.Pinger, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{backend: backend, db: db, logger: logger}
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Backend string `json:"backend,omitempty"`
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:  "ok",
		Version: Version,
		Backend: h.backend,
	})
}

func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	if h.db != nil {
		if err := database.HealthCheck(c.UserContext(), h.db); err != nil {
			h.logger.WarnContext(c.UserContext(), "readiness check failed", slog.String("error", err.Error()))
			return c.Status(fiber.StatusServiceUnavailable).JSON(HealthResponse{Status: "unavailable"})
		}
	}
	return c.JSON(HealthResponse{Status: "ready"})
}
