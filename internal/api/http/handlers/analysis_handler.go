package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/govhotline/triage-service/internal/api/dto"
	"github.com/govhotline/triage-service/internal/service"
)

// AnalysisHandler serves aggregation and alert endpoints for the dashboard.
type AnalysisHandler struct {
	stats    *service.StatisticsService
	detector *service.AlertDetector
}

// NewAnalysisHandler constructs handler.
func NewAnalysisHandler(stats *service.StatisticsService, detector *service.AlertDetector) *AnalysisHandler {
	return &AnalysisHandler{stats: stats, detector: detector}
}

// Statistics GET /analysis/statistics.
func (h *AnalysisHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.stats.Statistics(c.UserContext(), parseIntQuery(c, "days", 7))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stats})
}

// Alerts GET /analysis/alerts.
func (h *AnalysisHandler) Alerts(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": dto.FromAlerts(h.detector.ActiveAlerts())})
}

// CategoryTrends GET /analysis/trends/category.
func (h *AnalysisHandler) CategoryTrends(c *fiber.Ctx) error {
	trend, err := h.stats.CategoryTrends(c.UserContext(), parseIntQuery(c, "days", 30))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": trend})
}

// LocationTrends GET /analysis/trends/location.
func (h *AnalysisHandler) LocationTrends(c *fiber.Ctx) error {
	areas, err := h.stats.HotAreas(c.UserContext(), parseIntQuery(c, "days", 7), 5)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": areas})
}

// SentimentAnalysis GET /analysis/sentiment.
func (h *AnalysisHandler) SentimentAnalysis(c *fiber.Ctx) error {
	summary, err := h.stats.SentimentSummary(c.UserContext(), parseIntQuery(c, "days", 7))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": summary})
}

// DepartmentPerformance GET /analysis/departments.
func (h *AnalysisHandler) DepartmentPerformance(c *fiber.Ctx) error {
	perf, err := h.stats.DepartmentPerformance(c.UserContext(), parseIntQuery(c, "days", 30))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": perf})
}

// KeywordCloud GET /analysis/keywords.
func (h *AnalysisHandler) KeywordCloud(c *fiber.Ctx) error {
	cloud, err := h.stats.KeywordCloud(c.UserContext(), parseIntQuery(c, "days", 30), 30)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": cloud})
}
