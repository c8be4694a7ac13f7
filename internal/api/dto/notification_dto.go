package dto

import (
	"time"

	"github.com/govhotline/triage-service/internal/domain"
	"github.com/govhotline/triage-service/internal/service"
)

// NotificationResponse is one feed entry with its derived display age.
type NotificationResponse struct {
	ID           string                  `json:"id"`
	TicketID     string                  `json:"ticket_id,omitempty"`
	TicketNumber string                  `json:"ticket_number,omitempty"`
	Kind         domain.NotificationKind `json:"kind"`
	Emotion      domain.EmotionHint      `json:"emotion"`
	Message      string                  `json:"message"`
	CreatedAt    time.Time               `json:"created_at"`
	RelativeAge  string                  `json:"relative_age"`
	Read         bool                    `json:"read"`
}

// NotificationFeedResponse wraps the ordered feed and unread count.
type NotificationFeedResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int                    `json:"unread_count"`
}

// FromNotifications maps the feed, deriving relative ages at now.
func FromNotifications(items []domain.Notification, unread int, now time.Time) NotificationFeedResponse {
	out := make([]NotificationResponse, len(items))
	for i, n := range items {
		out[i] = NotificationResponse{
			ID:           n.ID,
			TicketID:     n.TicketID,
			TicketNumber: n.TicketNumber,
			Kind:         n.Kind,
			Emotion:      n.Emotion,
			Message:      n.Message,
			CreatedAt:    n.CreatedAt,
			RelativeAge:  service.RelativeAge(now, n.CreatedAt),
			Read:         n.Read,
		}
	}
	return NotificationFeedResponse{Notifications: out, UnreadCount: unread}
}
