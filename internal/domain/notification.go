package domain

import "time"

// NotificationKind enumerates feed entry types.
type NotificationKind string

const (
	NotificationStatusUpdate NotificationKind = "status_update"
	NotificationProcessing   NotificationKind = "processing"
	NotificationCompleted    NotificationKind = "completed"
	NotificationUrgent       NotificationKind = "urgent"
)

// EmotionHint is a presentation hint attached to a notification.
type EmotionHint string

const (
	EmotionHappy   EmotionHint = "happy"
	EmotionNeutral EmotionHint = "neutral"
	EmotionUrgent  EmotionHint = "urgent"
)

// Notification is a single feed entry referencing a ticket or an alert.
type Notification struct {
	ID           string
	TicketID     string
	TicketNumber string
	Kind         NotificationKind
	Emotion      EmotionHint
	Message      string
	CreatedAt    time.Time
	Read         bool
}
