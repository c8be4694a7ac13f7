package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/govhotline/triage-service/internal/api/dto"
	"github.com/govhotline/triage-service/internal/domain"
	"github.com/govhotline/triage-service/internal/repository"
	"github.com/govhotline/triage-service/internal/service"
	"github.com/govhotline/triage-service/internal/tagging"
	apperrors "github.com/govhotline/triage-service/pkg/util"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
	tags    *tagging.Engine
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService, tags *tagging.Engine) *TicketsHandler {
	return &TicketsHandler{service: ticketService, tags: tags}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.service.CreateTicket(c.UserContext(), service.TicketCreateInput{
		Content:      req.Content,
		LocationInfo: req.LocationInfo,
		Tags:         req.Tags,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.FromTicket(ticket)})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	ticket, err := h.service.GetTicket(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromTicket(ticket)})
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	opts := repository.ListOptions{
		Limit:  parseIntQuery(c, "limit", 50),
		Offset: parseIntQuery(c, "offset", 0),
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.TicketStatus(raw)
		opts.Status = &status
	}
	if raw := c.Query("category"); raw != "" {
		category := domain.Category(raw)
		opts.Category = &category
	}

	tickets, err := h.service.ListTickets(c.UserContext(), opts)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromTickets(tickets)})
}

// SearchTickets GET /tickets/search.
func (h *TicketsHandler) SearchTickets(c *fiber.Ctx) error {
	filter := service.TicketFilter{
		Area:   c.Query("area"),
		Search: c.Query("keyword"),
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.TicketStatus(raw)
		filter.Status = &status
	}
	if raw := c.Query("category"); raw != "" {
		category := domain.Category(raw)
		filter.Category = &category
	}

	tickets, err := h.service.SearchTickets(c.UserContext(), filter, parseIntQuery(c, "days", 30))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromTickets(tickets)})
}

// UpdateStatus PUT /tickets/:id/status.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Status == "" {
		return apperrors.NewValidationError("status required", nil)
	}

	ticket, err := h.service.Transition(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromTicket(ticket)})
}

// UpdateTriage PUT /tickets/:id/triage.
func (h *TicketsHandler) UpdateTriage(c *fiber.Ctx) error {
	var req dto.UpdateTriageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Department == nil && req.Priority == nil && req.Category == nil {
		return apperrors.NewValidationError("at least one of department, priority, category required", nil)
	}

	ticket, err := h.service.UpdateTriage(c.UserContext(), c.Params("id"), service.TriageUpdateInput{
		Department: req.Department,
		Priority:   req.Priority,
		Category:   req.Category,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromTicket(ticket)})
}

// DeleteTicket DELETE /tickets/:id.
func (h *TicketsHandler) DeleteTicket(c *fiber.Ctx) error {
	if err := h.service.DeleteTicket(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SuggestTags POST /tags/suggest.
func (h *TicketsHandler) SuggestTags(c *fiber.Ctx) error {
	var req dto.SuggestTagsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Content) == "" {
		return c.JSON(fiber.Map{"data": []domain.Category{}})
	}
	return c.JSON(fiber.Map{"data": h.tags.Suggest(req.Content)})
}

func parseIntQuery(c *fiber.Ctx, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
