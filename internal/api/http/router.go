package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/govhotline/triage-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health        *handlers.HealthHandler
	Tickets       *handlers.TicketsHandler
	Analysis      *handlers.AnalysisHandler
	Notifications *handlers.NotificationsHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/tags/suggest", cfg.Tickets.SuggestTags)

	tickets := app.Group("/tickets")
	tickets.Post("/", cfg.Tickets.CreateTicket)
	tickets.Get("/search", cfg.Tickets.SearchTickets)
	tickets.Get("/", cfg.Tickets.ListTickets)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Put("/:id/status", cfg.Tickets.UpdateStatus)
	tickets.Put("/:id/triage", cfg.Tickets.UpdateTriage)
	tickets.Delete("/:id", cfg.Tickets.DeleteTicket)

	analysis := app.Group("/analysis")
	analysis.Get("/statistics", cfg.Analysis.Statistics)
	analysis.Get("/alerts", cfg.Analysis.Alerts)
	analysis.Get("/trends/category", cfg.Analysis.CategoryTrends)
	analysis.Get("/trends/location", cfg.Analysis.LocationTrends)
	analysis.Get("/sentiment", cfg.Analysis.SentimentAnalysis)
	analysis.Get("/departments", cfg.Analysis.DepartmentPerformance)
	analysis.Get("/keywords", cfg.Analysis.KeywordCloud)

	notifications := app.Group("/notifications")
	notifications.Get("/", cfg.Notifications.List)
	notifications.Post("/read-all", cfg.Notifications.MarkAllRead)
	notifications.Post("/:id/read", cfg.Notifications.MarkRead)
	notifications.Delete("/", cfg.Notifications.Clear)
}
