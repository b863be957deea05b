// Package api is the HTTP side-car: health checks, Swagger docs and a
// single-request recognition endpoint sharing the gRPC service's pipeline.
package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	swagger "github.com/go-swagno/swagno-fiber/swagger"
	"github.com/saturnino-fabrica-de-software/faceid/internal/api/docs"
	"github.com/saturnino-fabrica-de-software/faceid/internal/api/handler"
	"github.com/saturnino-fabrica-de-software/faceid/internal/api/middleware"
	"github.com/saturnino-fabrica-de-software/faceid/internal/database"
)

// Service is the slice of recognition.Service the routes use.
type Service interface {
	handler.Recogniser
	BackendName() string
}

type Dependencies struct {
	Service Service
	// DB and Stats are nil when no database is configured.
	DB             database.Pinger
	Stats          handler.StatsSource
	MaxImageBytes  int
	RequestTimeout time.Duration
}

type Router struct {
	app    *fiber.App
	logger *slog.Logger
	deps   Dependencies
}

func NewRouter(logger *slog.Logger, deps Dependencies) *Router {
	logger = logger.With("component", "http")

	cfg := fiber.Config{
		ErrorHandler:          middleware.ErrorHandler(logger),
		AppName:               "faceid",
		DisableStartupMessage: true,
	}
	if deps.MaxImageBytes > 0 {
		// room for the multipart envelope and the faces field
		cfg.BodyLimit = deps.MaxImageBytes + 1<<20
	}

	return &Router{
		app:    fiber.New(cfg),
		logger: logger,
		deps:   deps,
	}
}

func (r *Router) Setup() {
	r.app.Use(requestid.New())
	r.app.Use(middleware.RequestContext())
	r.app.Use(middleware.Logger(r.logger))
	r.app.Use(middleware.Recover(r.logger))

	sw := docs.NewSwagger()
	swagger.SwaggerHandler(r.app, sw.MustToJson())

	healthHandler := handler.NewHealthHandler(r.deps.Service.BackendName(), r.deps.DB, r.logger)
	r.app.Get("/health", healthHandler.Health)
	r.app.Get("/ready", healthHandler.Ready)

	v1 := r.app.Group("/v1")
	recognizeHandler := handler.NewRecognizeHandler(r.deps.Service, r.deps.MaxImageBytes, r.deps.RequestTimeout, r.logger)
	v1.Post("/recognize", recognizeHandler.Recognize)

	if r.deps.Stats != nil {
		statsHandler := handler.NewStatsHandler(r.deps.Stats, r.logger)
		v1.Get("/stats", statsHandler.Stats)
	}
}

func (r *Router) App() *fiber.App {
	return r.app
}

func (r *Router) Listen(addr string) error {
	r.logger.Info("http server listening", slog.String("addr", addr))
	return r.app.Listen(addr)
}

func (r *Router) Shutdown(ctx context.Context) error {
	return r.app.ShutdownWithContext(ctx)
}
