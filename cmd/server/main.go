package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/scamlens-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/scamlens-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/scamlens-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/scamlens-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/scamlens-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/scamlens-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/scamlens-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/scamlens-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/scamlens-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}
	if !cfg.HasAdminCredential() {
		slog.Error("ADMIN_SECRET or ADMIN_SECRET_HASH environment variable is required")
		os.Exit(1)
	}

	// Reversible identity sealing (optional; rows written without it stay
	// one-way only)
	sealer, err := identity.NewSealer(cfg.SealKey)
	if err != nil {
		slog.Error("invalid SEAL_KEY", "error", err)
		os.Exit(1)
	}
	if sealer.Enabled() {
		slog.Info("contact sealing enabled")
	} else {
		slog.Info("contact sealing disabled, reveal unavailable for new rows")
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		pgLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Evidence storage
	blobs, err := buildBlobStore(cfg)
	if err != nil {
		slog.Error("storage init failed", "driver", cfg.StorageDriver, "error", err)
		os.Exit(1)
	}
	slog.Info("evidence storage ready", "driver", cfg.StorageDriver)

	// Services
	contactService := services.NewContactService(database.DB)
	reportService := services.NewReportService(database.DB, sealer, blobs)
	moderationService := services.NewModerationService(database.DB, sealer)
	removalService := services.NewRemovalService(database.DB)
	adminAuth := services.NewAdminAuthService(cfg)

	// Handlers
	searchHandler := handlers.NewSearchHandler(contactService)
	reportHandler := handlers.NewReportHandler(reportService)
	removalHandler := handlers.NewRemovalHandler(removalService)
	adminHandler := handlers.NewAdminHandler(moderationService, contactService, adminAuth)
	healthHandler := handlers.NewHealthHandler()

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app — 8 MiB body limit leaves room for evidence uploads
	app := fiber.New(fiber.Config{
		BodyLimit:    8 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	routes.Setup(app, adminAuth, searchHandler, reportHandler, removalHandler, adminHandler, healthHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	// Close database connections
	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func buildBlobStore(cfg *config.Config) (storage.BlobStore, error) {
	if cfg.StorageDriver == "minio" {
		return storage.NewMinioStore(cfg)
	}
	return storage.NewLocalStore(cfg.LocalStorageDir, cfg.LocalStorageBaseURL)
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
