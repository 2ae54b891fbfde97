package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/growora/site-api/internal/config"
	"github.com/growora/site-api/internal/utils"
)

// HealthResponse represents the payload returned by the health endpoint.
type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Service     string    `json:"service"`
	Environment string    `json:"environment"`
	Dispatch    string    `json:"dispatch"`
}

// HealthCheck returns a handler that reports application health information.
func HealthCheck(cfg config.Config) fiber.Handler {
	dispatch := "configured"
	if !cfg.DispatchConfigured() {
		dispatch = "log-only"
	}

	return func(c *fiber.Ctx) error {
		payload := HealthResponse{
			Status:      "ok",
			Timestamp:   time.Now().UTC(),
			Service:     cfg.AppName,
			Environment: cfg.AppEnv,
			Dispatch:    dispatch,
		}

		return utils.SendSuccess(c, "service healthy", payload)
	}
}
