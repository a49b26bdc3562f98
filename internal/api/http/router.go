package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/checkin-service/internal/api/http/handlers"
	"github.com/spec-kit/checkin-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Checkins *handlers.CheckinsHandler
	Metrics  *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	if registry := cfg.Metrics.Registry(); registry != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}

	eventGroup := app.Group("/events/:eventId")
	eventGroup.Get("/attendees", cfg.Checkins.ListAttendees)
	eventGroup.Get("/attendees/summary", cfg.Checkins.Summary)
	eventGroup.Get("/attendees/history", cfg.Checkins.History)
}
