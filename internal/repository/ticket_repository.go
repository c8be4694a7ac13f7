package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/govhotline/triage-service/internal/domain"
)

// ListOptions captures store-level listing parameters. Finer-grained
// filtering (free-text, area, conjunctive predicates) happens in the query
// layer over a snapshot.
type ListOptions struct {
	Status   *domain.TicketStatus
	Category *domain.Category
	Limit    int
	Offset   int
}

// TicketRepository is the external ticket store contract.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	GetByNumber(ctx context.Context, number string) (*domain.Ticket, error)
	List(ctx context.Context, opts ListOptions) ([]domain.Ticket, error)
	ListCreatedSince(ctx context.Context, since time.Time) ([]domain.Ticket, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates the postgres-backed repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, ticket_number, content, summary, location_info, category, department,
        priority, sentiment, sentiment_score, status, tags, keywords,
        solution_suggestion, response_time_ms, created_at, updated_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (ticket_number, content, summary, location_info, category, department,
            priority, sentiment, sentiment_score, status, tags, keywords, solution_suggestion, response_time_ms)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.TicketNumber,
		ticket.Content,
		ticket.Summary,
		ticket.LocationInfo,
		ticket.Category,
		ticket.Department,
		ticket.Priority,
		ticket.Sentiment,
		ticket.SentimentScore,
		ticket.Status,
		categoryStrings(ticket.Tags),
		ticket.Keywords,
		ticket.SolutionSuggestion,
		ticket.ResponseTimeMs,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET category=$1, department=$2, priority=$3, status=$4,
            tags=$5, updated_at=NOW()
        WHERE id=$6
        RETURNING updated_at`
	err := r.pool.QueryRow(ctx, query,
		ticket.Category,
		ticket.Department,
		ticket.Priority,
		ticket.Status,
		categoryStrings(ticket.Tags),
		ticket.ID,
	).Scan(&ticket.UpdatedAt)
	if err == pgx.ErrNoRows {
		return pgx.ErrNoRows
	}
	return err
}

func (r *ticketRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tickets WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE id=$1`, ticketColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *ticketRepository) GetByNumber(ctx context.Context, number string) (*domain.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE ticket_number=$1`, ticketColumns)
	return r.fetchSingle(ctx, query, number)
}

func (r *ticketRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Ticket, error) {
	var (
		ticket domain.Ticket
		tags   []string
	)
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&ticket.ID,
		&ticket.TicketNumber,
		&ticket.Content,
		&ticket.Summary,
		&ticket.LocationInfo,
		&ticket.Category,
		&ticket.Department,
		&ticket.Priority,
		&ticket.Sentiment,
		&ticket.SentimentScore,
		&ticket.Status,
		&tags,
		&ticket.Keywords,
		&ticket.SolutionSuggestion,
		&ticket.ResponseTimeMs,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	ticket.Tags = categoriesFromStrings(tags)
	return &ticket, nil
}

func (r *ticketRepository) List(ctx context.Context, opts ListOptions) ([]domain.Ticket, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if opts.Status != nil {
		args = append(args, *opts.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if opts.Category != nil {
		args = append(args, *opts.Category)
		clauses = append(clauses, fmt.Sprintf("category=$%d", len(args)))
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		ticketColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) ListCreatedSince(ctx context.Context, since time.Time) ([]domain.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE created_at >= $1 ORDER BY created_at DESC`, ticketColumns)
	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var (
			ticket domain.Ticket
			tags   []string
		)
		if err := rows.Scan(
			&ticket.ID,
			&ticket.TicketNumber,
			&ticket.Content,
			&ticket.Summary,
			&ticket.LocationInfo,
			&ticket.Category,
			&ticket.Department,
			&ticket.Priority,
			&ticket.Sentiment,
			&ticket.SentimentScore,
			&ticket.Status,
			&tags,
			&ticket.Keywords,
			&ticket.SolutionSuggestion,
			&ticket.ResponseTimeMs,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
		); err != nil {
			return nil, err
		}
		ticket.Tags = categoriesFromStrings(tags)
		result = append(result, ticket)
	}
	return result, rows.Err()
}

func categoryStrings(tags []domain.Category) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = string(t)
	}
	return out
}

func categoriesFromStrings(tags []string) []domain.Category {
	if len(tags) == 0 {
		return nil
	}
	out := make([]domain.Category, len(tags))
	for i, t := range tags {
		out[i] = domain.Category(t)
	}
	return out
}
