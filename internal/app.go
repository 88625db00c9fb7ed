package internal

import (
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/cubello/internal/config"
	"github.com/lk16/cubello/internal/middleware"
	"github.com/lk16/cubello/internal/routes"
	"github.com/lk16/cubello/internal/services"
)

const (
	defaultConcurrency  = 256 * 1024
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 30 * time.Second // Endgame solving can take a while
	defaultIdleTimeout  = 5 * time.Second
	defaultBodyLimit    = 64 * 1024 // 64KB, a board is well below 1KB
)

// SetupApp loads the configuration, connects to the external services and builds the app.
func SetupApp() (*fiber.App, *config.ServerConfig, *services.Services) {
	cfg := config.LoadServerConfig()

	services, err := services.InitServices(cfg)
	if err != nil {
		slog.Error("Failed to initialize services", "error", err)
		os.Exit(1)
	}

	return BuildApp(cfg, services), cfg, services
}

// withServices makes the services and configuration available to handlers and middleware.
func withServices(cfg *config.ServerConfig, services *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("services", services)
		c.Locals("config", cfg)
		return c.Next()
	}
}

// BuildApp creates the move server. Postgres and Redis in services may be nil.
func BuildApp(cfg *config.ServerConfig, services *services.Services) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "cubello",
		Prefork:      cfg.Prefork,
		Concurrency:  defaultConcurrency,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
		BodyLimit:    defaultBodyLimit,
	})

	app.Use(withServices(cfg, services))
	app.Use(middleware.Logging())

	routes.SetupRoutes(app)

	return app
}
