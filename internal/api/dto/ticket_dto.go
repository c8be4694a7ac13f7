package dto

import (
	"time"

	"github.com/govhotline/triage-service/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Content      string            `json:"content"`
	LocationInfo string            `json:"location_info"`
	Tags         []domain.Category `json:"tags"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status domain.TicketStatus `json:"status"`
}

// UpdateTriageRequest payload; nil fields are left unchanged.
type UpdateTriageRequest struct {
	Department *string                `json:"department"`
	Priority   *domain.TicketPriority `json:"priority"`
	Category   *domain.Category       `json:"category"`
}

// SuggestTagsRequest payload.
type SuggestTagsRequest struct {
	Content string `json:"content"`
}

// TicketResponse is the full ticket representation.
type TicketResponse struct {
	ID                 string                `json:"id"`
	TicketNumber       string                `json:"ticket_number"`
	Content            string                `json:"content"`
	Summary            string                `json:"summary"`
	LocationInfo       string                `json:"location_info"`
	Category           domain.Category       `json:"category"`
	Department         string                `json:"department"`
	Priority           domain.TicketPriority `json:"priority"`
	Sentiment          domain.Sentiment      `json:"sentiment"`
	SentimentScore     float64               `json:"sentiment_score"`
	Status             domain.TicketStatus   `json:"status"`
	Tags               []domain.Category     `json:"tags"`
	Keywords           []string              `json:"keywords"`
	SolutionSuggestion string                `json:"solution_suggestion"`
	ResponseTimeMs     int                   `json:"response_time_ms"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
}

// FromTicket maps a domain ticket to its response form.
func FromTicket(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:                 ticket.ID,
		TicketNumber:       ticket.TicketNumber,
		Content:            ticket.Content,
		Summary:            ticket.Summary,
		LocationInfo:       ticket.LocationInfo,
		Category:           ticket.Category,
		Department:         ticket.Department,
		Priority:           ticket.Priority,
		Sentiment:          ticket.Sentiment,
		SentimentScore:     ticket.SentimentScore,
		Status:             ticket.Status,
		Tags:               ticket.Tags,
		Keywords:           ticket.Keywords,
		SolutionSuggestion: ticket.SolutionSuggestion,
		ResponseTimeMs:     ticket.ResponseTimeMs,
		CreatedAt:          ticket.CreatedAt,
		UpdatedAt:          ticket.UpdatedAt,
	}
}

// FromTickets maps a slice of domain tickets.
func FromTickets(tickets []domain.Ticket) []TicketResponse {
	out := make([]TicketResponse, len(tickets))
	for i := range tickets {
		out[i] = FromTicket(&tickets[i])
	}
	return out
}
