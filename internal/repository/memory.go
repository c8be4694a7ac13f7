package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/govhotline/triage-service/internal/domain"
	apperrors "github.com/govhotline/triage-service/pkg/util"
)

// memoryTicketRepository keeps tickets in process memory. It backs tests and
// DSN-less deployments. Reads return copies so callers can treat results as
// immutable snapshots.
type memoryTicketRepository struct {
	mu      sync.RWMutex
	tickets map[string]domain.Ticket
}

// NewMemoryTicketRepository creates an empty in-memory store.
func NewMemoryTicketRepository() TicketRepository {
	return &memoryTicketRepository{tickets: make(map[string]domain.Ticket)}
}

func (r *memoryTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ticket.ID = uuid.NewString()
	now := time.Now()
	if ticket.CreatedAt.IsZero() {
		ticket.CreatedAt = now
	}
	ticket.UpdatedAt = ticket.CreatedAt
	r.tickets[ticket.ID] = *ticket
	return nil
}

func (r *memoryTicketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tickets[ticket.ID]; !ok {
		return apperrors.NewNotFound("ticket", map[string]any{"id": ticket.ID})
	}
	ticket.UpdatedAt = time.Now()
	r.tickets[ticket.ID] = *ticket
	return nil
}

func (r *memoryTicketRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tickets[id]; !ok {
		return apperrors.NewNotFound("ticket", map[string]any{"id": id})
	}
	delete(r.tickets, id)
	return nil
}

func (r *memoryTicketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ticket, ok := r.tickets[id]
	if !ok {
		return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
	}
	return &ticket, nil
}

func (r *memoryTicketRepository) GetByNumber(ctx context.Context, number string) (*domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ticket := range r.tickets {
		if ticket.TicketNumber == number {
			t := ticket
			return &t, nil
		}
	}
	return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_number": number})
}

func (r *memoryTicketRepository) List(ctx context.Context, opts ListOptions) ([]domain.Ticket, error) {
	r.mu.RLock()
	result := make([]domain.Ticket, 0, len(r.tickets))
	for _, ticket := range r.tickets {
		if opts.Status != nil && ticket.Status != *opts.Status {
			continue
		}
		if opts.Category != nil && ticket.Category != *opts.Category {
			continue
		}
		result = append(result, ticket)
	}
	r.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}
	if offset >= len(result) {
		return []domain.Ticket{}, nil
	}
	result = result[offset:]

	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}

func (r *memoryTicketRepository) ListCreatedSince(ctx context.Context, since time.Time) ([]domain.Ticket, error) {
	r.mu.RLock()
	result := make([]domain.Ticket, 0, len(r.tickets))
	for _, ticket := range r.tickets {
		if ticket.CreatedAt.Before(since) {
			continue
		}
		result = append(result, ticket)
	}
	r.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}
