package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bilgisen/tldr-relay/internal/middleware"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(app *fiber.App, handlers *Handlers, adminKey string) {
	api := app.Group("/api/v1")

	api.Get("/health", handlers.HealthCheck)

	// Schedulers trigger runs here
	api.Get("/run", handlers.Run)
	api.Post("/run", handlers.Run)

	admin := api.Group("/admin", middleware.AdminOnly(adminKey))
	{
		admin.Get("/status", middleware.ValidateQuery[StatusQuery](), handlers.Status)
		admin.Delete("/markers/:date", handlers.ResetMarkers)
		admin.Get("/runs", middleware.ValidateQuery[RunsQuery](), handlers.ListRuns)
	}

	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Endpoint not found")
	})
}
