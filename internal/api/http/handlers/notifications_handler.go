package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/govhotline/triage-service/internal/api/dto"
	"github.com/govhotline/triage-service/internal/service"
)

// NotificationsHandler exposes the notification feed.
type NotificationsHandler struct {
	center *service.NotificationCenter
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(center *service.NotificationCenter) *NotificationsHandler {
	return &NotificationsHandler{center: center}
}

// List GET /notifications.
func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	items, unread := h.center.Feed()
	return c.JSON(fiber.Map{"data": dto.FromNotifications(items, unread, time.Now())})
}

// MarkRead POST /notifications/:id/read.
func (h *NotificationsHandler) MarkRead(c *fiber.Ctx) error {
	h.center.MarkRead(c.Params("id"))
	return c.JSON(fiber.Map{"unread_count": h.center.UnreadCount()})
}

// MarkAllRead POST /notifications/read-all.
func (h *NotificationsHandler) MarkAllRead(c *fiber.Ctx) error {
	h.center.MarkAllRead()
	return c.JSON(fiber.Map{"unread_count": 0})
}

// Clear DELETE /notifications.
func (h *NotificationsHandler) Clear(c *fiber.Ctx) error {
	h.center.Clear()
	return c.JSON(fiber.Map{"unread_count": 0})
}
