package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/nexio-app/nexio-api/internal/config"
	"github.com/nexio-app/nexio-api/internal/handler"
	"github.com/nexio-app/nexio-api/internal/middleware"
	"github.com/nexio-app/nexio-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	StateHandler        *handler.StateHandler
	AuthHandler         *handler.AuthHandler
	FeedHandler         *handler.FeedHandler
	ChatHandler         *handler.ChatHandler
	NotificationHandler *handler.NotificationHandler
	StudioHandler       *handler.StudioHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	if deps.StateHandler != nil {
		deps.StateHandler.Register(api.Group("/state"))
	}

	if deps.AuthHandler != nil {
		auth := api.Group("/auth", middleware.RateLimit("auth", 10, time.Minute))
		deps.AuthHandler.Register(auth)
	}

	if deps.FeedHandler != nil {
		deps.FeedHandler.Register(api.Group("/posts"))
	}

	if deps.ChatHandler != nil {
		deps.ChatHandler.Register(api.Group("/chats"))
	}

	if deps.NotificationHandler != nil {
		deps.NotificationHandler.Register(api.Group("/notifications"))
	}

	if deps.StudioHandler != nil {
		deps.StudioHandler.Register(api.Group("/studio"))
	}
}
