package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/growora/site-api/internal/config"
	"github.com/growora/site-api/internal/handler"
	"github.com/growora/site-api/internal/middleware"
	"github.com/growora/site-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	InquiryHandler         *handler.InquiryHandler
	ContactChannelsHandler *handler.ContactChannelsHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	if deps.InquiryHandler != nil {
		inquiries := api.Group("/inquiries",
			middleware.RateLimit("inquiries", cfg.RateLimitMax, cfg.RateLimitWindow))
		deps.InquiryHandler.Register(inquiries)
	}

	if deps.ContactChannelsHandler != nil {
		channels := api.Group("/contact-channels")
		deps.ContactChannelsHandler.Register(channels)
	}

	app.Get("/metrics", observability.MetricsHandler())
}
