// Package http exposes the bot's operational HTTP surface: health probes and
// counter dumps. Interaction traffic arrives over the gateway, not here.
package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rustytiger/tigerbot/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health *handlers.HealthHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)
}
