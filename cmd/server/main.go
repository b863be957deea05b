package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"google.golang.org/grpc"

	"github.com/saturnino-fabrica-de-software/faceid/internal/api"
	"github.com/saturnino-fabrica-de-software/faceid/internal/audit"
	"github.com/saturnino-fabrica-de-software/faceid/internal/config"
	"github.com/saturnino-fabrica-de-software/faceid/internal/database"
	"github.com/saturnino-fabrica-de-software/faceid/internal/metrics"
	"github.com/saturnino-fabrica-de-software/faceid/internal/recognition"
	"github.com/saturnino-fabrica-de-software/faceid/internal/rpc"
	"github.com/saturnino-fabrica-de-software/faceid/internal/vision"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := config.NewLogger(cfg.Environment)
	slog.SetDefault(logger)

	logger.Info("starting faceid",
		slog.String("environment", cfg.Environment),
		slog.Int("grpc_port", cfg.GRPCPort),
		slog.Int("http_port", cfg.HTTPPort),
		slog.String("backend", cfg.VisionBackend),
		slog.Int("workers", cfg.Workers),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Models load once here and are shared by every request.
	loadStart := time.Now()
	backend, err := vision.New(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to load vision backend: %w", err)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logger.Warn("closing vision backend", slog.String("error", err.Error()))
		}
	}()
	logger.Info("vision backend ready",
		slog.String("backend", backend.Name()),
		slog.Duration("elapsed", time.Since(loadStart)),
	)

	auditLogger, db, err := setupAudit(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()

		if cfg.AuditRetention > 0 {
			retention := metrics.NewRetentionWorker(metrics.NewRepository(db), logger, cfg.AuditRetention, time.Hour)
			go retention.Start(ctx)
			defer retention.Stop()
		}
	}

	pool := recognition.NewPool(cfg.Workers, cfg.QueueSize, logger)
	svc := recognition.NewService(backend, pool, auditLogger, recognition.Options{
		MaxImageBytes:     cfg.MaxImageBytes,
		MaxImagePixels:    cfg.MaxImagePixels,
		RegionParallelism: cfg.RegionParallelism,
	}, logger)

	grpcServer := rpc.NewServer(svc, rpc.Options{
		Workers:        cfg.Workers,
		RequestTimeout: cfg.RequestTimeout,
	}, logger)

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen on grpc port: %w", err)
	}

	errChan := make(chan error, 2)
	go func() {
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errChan <- fmt.Errorf("grpc server: %w", err)
		}
	}()

	var router *api.Router
	if cfg.HTTPPort > 0 {
		deps := api.Dependencies{
			Service:        svc,
			MaxImageBytes:  cfg.MaxImageBytes,
			RequestTimeout: cfg.RequestTimeout,
		}
		if db != nil {
			deps.DB = db
			deps.Stats = metrics.NewRepository(db)
		}
		router = api.NewRouter(logger, deps)
		router.Setup()

		go func() {
			if err := router.Listen(fmt.Sprintf(":%d", cfg.HTTPPort)); err != nil {
				errChan <- fmt.Errorf("http server: %w", err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case runErr = <-errChan:
		logger.Error("server failed", slog.String("error", runErr.Error()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Info("shutting down")
	grpcServer.SetServing(false)
	if router != nil {
		if err := router.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown error", slog.String("error", err.Error()))
		}
	}
	grpcServer.Stop(shutdownCtx)
	if err := pool.Shutdown(shutdownCtx); err != nil {
		logger.Warn("inference pool did not drain", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
	return runErr
}

// setupAudit always logs to slog and adds the Postgres store when a
// database is configured.
func setupAudit(ctx context.Context, cfg *config.Config, logger *slog.Logger) (audit.Logger, *pgxpool.Pool, error) {
	slogAudit := audit.NewSlogLogger(logger)
	if !cfg.AuditEnabled() {
		return slogAudit, nil, nil
	}

	db, err := database.NewPool(ctx, database.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to audit database: %w", err)
	}
	logger.Info("audit store enabled", slog.Bool("store_embeddings", cfg.AuditStoreEmbeddings))

	return audit.MultiLogger{slogAudit, audit.NewPostgresLogger(db, cfg.AuditStoreEmbeddings, logger)}, db, nil
}
