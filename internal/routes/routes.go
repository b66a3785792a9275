package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/scamlens-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/scamlens-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/scamlens-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	adminAuth *services.AdminAuthService,
	searchHandler *handlers.SearchHandler,
	reportHandler *handlers.ReportHandler,
	removalHandler *handlers.RemovalHandler,
	adminHandler *handlers.AdminHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)
	api.Get("/search", searchHandler.Search)

	// Submissions get a stricter limit: 10 req/min per IP
	submit := api.Group("")
	submit.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	submit.Post("/report", reportHandler.SubmitReport)
	submit.Post("/removal-request", removalHandler.SubmitRequest)

	// Token mint does its own credential check; everything else under /admin
	// sits behind the gate.
	api.Post("/admin/token", adminHandler.MintToken)

	admin := api.Group("/admin", middleware.AdminRequired(adminAuth))
	admin.Get("/reports", adminHandler.ListReports)
	admin.Post("/contacts/:id/status", adminHandler.SetContactStatus)
	admin.Delete("/reports/:id", adminHandler.DeleteReport)
	admin.Get("/contacts/:id/reveal", adminHandler.RevealContact)
}
