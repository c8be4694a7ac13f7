package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/govhotline/triage-service/internal/ai"
	"github.com/govhotline/triage-service/internal/domain"
	"github.com/govhotline/triage-service/internal/events"
	"github.com/govhotline/triage-service/internal/repository"
	apperrors "github.com/govhotline/triage-service/pkg/util"
)

// TicketService coordinates ticket intake, triage and the processing
// lifecycle.
type TicketService struct {
	tickets    repository.TicketRepository
	analyzer   ai.Analyzer
	dispatcher events.Dispatcher
	logger     *zap.Logger
	aiTimeout  time.Duration
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Analyzer   ai.Analyzer
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	AITimeout  time.Duration
}

// TicketCreateInput describes the citizen submission payload.
type TicketCreateInput struct {
	Content      string
	LocationInfo string
	Tags         []domain.Category
}

// TriageUpdateInput carries mutable triage fields; nil fields are untouched.
type TriageUpdateInput struct {
	Department *string
	Priority   *domain.TicketPriority
	Category   *domain.Category
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	timeout := deps.AITimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &TicketService{
		tickets:    deps.TicketRepo,
		analyzer:   deps.Analyzer,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		aiTimeout:  timeout,
	}
}

// CreateTicket validates the submission, runs AI analysis with the fail-open
// policy and stores the ticket in Pending state.
func (s *TicketService) CreateTicket(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	content := strings.TrimSpace(input.Content)
	length := utf8.RuneCountInString(content)
	if length < domain.MinContentLength || length > domain.MaxContentLength {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("content must be %d-%d characters", domain.MinContentLength, domain.MaxContentLength),
			map[string]any{"length": length})
	}

	analysis := s.analyze(ctx, content)

	ticket := &domain.Ticket{
		TicketNumber:       generateTicketNumber(),
		Content:            content,
		Summary:            analysis.Summary,
		LocationInfo:       strings.TrimSpace(input.LocationInfo),
		Category:           analysis.Category,
		Department:         analysis.Department,
		Priority:           analysis.Priority,
		Sentiment:          analysis.Sentiment,
		SentimentScore:     analysis.SentimentScore,
		Status:             domain.TicketStatusPending,
		Tags:               input.Tags,
		Keywords:           analysis.Keywords,
		SolutionSuggestion: analysis.SolutionSuggestion,
		ResponseTimeMs:     analysis.ResponseTimeMs,
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			TicketNumber: ticket.TicketNumber,
			Category:     ticket.Category,
			Priority:     ticket.Priority,
			Area:         ticket.LocationInfo,
		},
	})
	return ticket, nil
}

// analyze calls the external collaborator with a hard timeout. A failed or
// timed-out call degrades to the default analysis instead of failing the
// submission.
func (s *TicketService) analyze(ctx context.Context, content string) *domain.Analysis {
	if s.analyzer == nil {
		return ai.DefaultAnalysis(content)
	}

	callCtx, cancel := context.WithTimeout(ctx, s.aiTimeout)
	defer cancel()

	analysis, err := s.analyzer.Analyze(callCtx, content)
	if err != nil {
		s.logger.Warn("ai analysis failed, proceeding unclassified", zap.Error(err))
		return ai.DefaultAnalysis(content)
	}
	return analysis
}

// GetTicket fetches a ticket by id.
func (s *TicketService) GetTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	return s.tickets.GetByID(ctx, id)
}

// ListTickets returns tickets via the store's list contract.
func (s *TicketService) ListTickets(ctx context.Context, opts repository.ListOptions) ([]domain.Ticket, error) {
	return s.tickets.List(ctx, opts)
}

// SearchTickets applies the full conjunctive predicate set over a snapshot
// of the trailing window.
func (s *TicketService) SearchTickets(ctx context.Context, filter TicketFilter, days int) ([]domain.Ticket, error) {
	if days <= 0 {
		days = 30
	}
	snapshot, err := s.tickets.ListCreatedSince(ctx, time.Now().AddDate(0, 0, -days))
	if err != nil {
		return nil, err
	}
	return SortTickets(FilterTickets(snapshot, filter), SortByCreatedAt, true), nil
}

// Transition moves a ticket along the lifecycle state machine and emits a
// status-changed event on success.
func (s *TicketService) Transition(ctx context.Context, id string, next domain.TicketStatus) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isValidTransition(ticket.Status, next) {
		return nil, apperrors.NewInvalidTransition(string(ticket.Status), string(next))
	}

	oldStatus := ticket.Status
	ticket.Status = next
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		Payload: events.TicketStatusChangedPayload{
			TicketNumber: ticket.TicketNumber,
			OldStatus:    oldStatus,
			NewStatus:    next,
		},
	})
	return ticket, nil
}

// DeleteTicket removes a ticket from the store. Deleting an unknown id is
// an error; notifications keep only weak references, so none are touched.
func (s *TicketService) DeleteTicket(ctx context.Context, id string) error {
	return s.tickets.Delete(ctx, id)
}

// UpdateTriage reassigns department, priority or category.
func (s *TicketService) UpdateTriage(ctx context.Context, id string, input TriageUpdateInput) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Department != nil {
		ticket.Department = *input.Department
	}
	if input.Priority != nil {
		ticket.Priority = *input.Priority
	}
	if input.Category != nil {
		ticket.Category = *input.Category
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

var allowedTransitions = map[domain.TicketStatus][]domain.TicketStatus{
	domain.TicketStatusPending:    {domain.TicketStatusProcessing, domain.TicketStatusClosed},
	domain.TicketStatusProcessing: {domain.TicketStatusResolved},
	domain.TicketStatusResolved:   {domain.TicketStatusClosed},
	domain.TicketStatusClosed:     {},
}

func isValidTransition(current, next domain.TicketStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

func generateTicketNumber() string {
	return fmt.Sprintf("GH%s%04d", time.Now().Format("20060102150405"), rand.Intn(10000))
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
