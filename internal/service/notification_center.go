package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/govhotline/triage-service/internal/domain"
	"github.com/govhotline/triage-service/internal/events"
)

// NotificationCenter translates lifecycle transitions and alert events into
// a most-recent-first feed of notifications and tracks read state. It
// exclusively owns its collection; mutations are serialized behind a mutex.
type NotificationCenter struct {
	logger *zap.Logger

	mu         sync.Mutex
	items      []domain.Notification
	alertIndex map[string]string // alert pair key -> notification id
}

// NewNotificationCenter constructs an empty feed.
func NewNotificationCenter(logger *zap.Logger) *NotificationCenter {
	return &NotificationCenter{
		logger:     logger,
		alertIndex: make(map[string]string),
	}
}

// RegisterHandlers subscribes the center to lifecycle and alert events.
func (c *NotificationCenter) RegisterHandlers(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	dispatcher.Subscribe(events.EventTicketStatusChanged, c.handleStatusChanged)
	dispatcher.Subscribe(events.EventAlertRaised, c.handleAlertRaised)
}

func (c *NotificationCenter) handleStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketStatusChangedPayload)
	if !ok {
		c.logger.Warn("unexpected payload for status-changed event", zap.String("event_id", event.ID))
		return nil
	}

	kind := kindForStatus(payload.NewStatus)
	notification := domain.Notification{
		ID:           uuid.NewString(),
		TicketID:     event.TicketID,
		TicketNumber: payload.TicketNumber,
		Kind:         kind,
		Emotion:      emotionForKind(kind),
		Message:      statusMessage(payload),
		CreatedAt:    event.Timestamp,
		Read:         false,
	}

	c.mu.Lock()
	c.items = append(c.items, notification)
	c.mu.Unlock()
	return nil
}

func (c *NotificationCenter) handleAlertRaised(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.AlertRaisedPayload)
	if !ok {
		c.logger.Warn("unexpected payload for alert event", zap.String("event_id", event.ID))
		return nil
	}
	alert := payload.Alert
	message := alertMessage(alert)

	c.mu.Lock()
	defer c.mu.Unlock()

	// refresh the existing notification for this (area, category) pair
	// instead of duplicating it; a refreshed alert resets to unread
	if id, ok := c.alertIndex[alert.PairKey()]; ok {
		for i := range c.items {
			if c.items[i].ID == id {
				c.items[i].Message = message
				c.items[i].CreatedAt = event.Timestamp
				c.items[i].Read = false
				return nil
			}
		}
	}

	notification := domain.Notification{
		ID:        uuid.NewString(),
		Kind:      domain.NotificationUrgent,
		Emotion:   domain.EmotionUrgent,
		Message:   message,
		CreatedAt: event.Timestamp,
		Read:      false,
	}
	c.items = append(c.items, notification)
	c.alertIndex[alert.PairKey()] = notification.ID
	return nil
}

// Feed returns the notifications most-recent-first along with the unread
// count. The returned slice is a copy.
func (c *NotificationCenter) Feed() ([]domain.Notification, int) {
	c.mu.Lock()
	items := make([]domain.Notification, len(c.items))
	copy(items, c.items)
	c.mu.Unlock()

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	unread := 0
	for _, n := range items {
		if !n.Read {
			unread++
		}
	}
	return items, unread
}

// UnreadCount recomputes the number of unread notifications.
func (c *NotificationCenter) UnreadCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	unread := 0
	for _, n := range c.items {
		if !n.Read {
			unread++
		}
	}
	return unread
}

// MarkRead sets read on a matching notification. Missing or already-read ids
// are a no-op, not an error.
func (c *NotificationCenter) MarkRead(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Read = true
			return
		}
	}
}

// MarkAllRead sets read on every notification.
func (c *NotificationCenter) MarkAllRead() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		c.items[i].Read = true
	}
}

// Clear empties the feed.
func (c *NotificationCenter) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	c.alertIndex = make(map[string]string)
}

func kindForStatus(status domain.TicketStatus) domain.NotificationKind {
	switch status {
	case domain.TicketStatusProcessing:
		return domain.NotificationProcessing
	case domain.TicketStatusResolved:
		return domain.NotificationCompleted
	default:
		return domain.NotificationStatusUpdate
	}
}

func emotionForKind(kind domain.NotificationKind) domain.EmotionHint {
	switch kind {
	case domain.NotificationCompleted:
		return domain.EmotionHappy
	case domain.NotificationUrgent:
		return domain.EmotionUrgent
	default:
		return domain.EmotionNeutral
	}
}

func statusMessage(payload events.TicketStatusChangedPayload) string {
	switch payload.NewStatus {
	case domain.TicketStatusProcessing:
		return fmt.Sprintf("您的工单 %s 正在处理中", payload.TicketNumber)
	case domain.TicketStatusResolved:
		return fmt.Sprintf("您的工单 %s 已处理完成，请查看并评价", payload.TicketNumber)
	default:
		return fmt.Sprintf("您的工单 %s 状态已更新为 %s", payload.TicketNumber, payload.NewStatus)
	}
}

func alertMessage(alert domain.Alert) string {
	growthPct := int((alert.GrowthRatio - 1) * 100)
	return fmt.Sprintf("%s%s类工单激增%d件，较基准增长%d%%，建议立即关注",
		alert.Area, alert.Category, alert.WindowCount, growthPct)
}

// RelativeAge buckets the distance between now and createdAt for display.
// Boundaries are half-open: 59 minutes falls in the minutes bucket, 60
// minutes in the hours bucket.
func RelativeAge(now, createdAt time.Time) string {
	diff := now.Sub(createdAt)
	switch {
	case diff < time.Minute:
		return "刚刚"
	case diff < time.Hour:
		return fmt.Sprintf("%d分钟前", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%d小时前", int(diff.Hours()))
	default:
		return fmt.Sprintf("%d天前", int(diff.Hours()/24))
	}
}
