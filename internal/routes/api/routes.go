package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/cubello/internal/middleware"
)

// SetupRoutes sets up the API routes.
func SetupRoutes(app *fiber.App) {
	apiGroup := app.Group("/api")

	// Move routes
	apiGroup.Post("/ai_move", AIMove)

	// Decision log routes
	apiGroup.Get("/stats", middleware.AuthOrToken(), GetStats)
	apiGroup.Get("/decisions/:id", middleware.AuthOrToken(), GetDecision)
}
