package service

import (
	"sort"
	"strings"
	"time"

	"github.com/govhotline/triage-service/internal/domain"
)

// TicketFilter is the conjunctive predicate set applied over a ticket
// snapshot. Zero-valued fields are ignored.
type TicketFilter struct {
	Status       *domain.TicketStatus
	Category     *domain.Category
	Area         string
	Search       string
	CreatedAfter *time.Time
}

// SortField selects the ordering key for SortTickets.
type SortField string

const (
	SortByCreatedAt SortField = "created_at"
	SortByPriority  SortField = "priority"
)

// FilterTickets returns the tickets matching every provided predicate. The
// free-text predicate matches case-insensitively against content, summary
// and category; the area predicate substring-matches the location. The input
// slice is never mutated.
func FilterTickets(tickets []domain.Ticket, filter TicketFilter) []domain.Ticket {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	area := strings.TrimSpace(filter.Area)

	result := make([]domain.Ticket, 0, len(tickets))
	for _, ticket := range tickets {
		if filter.Status != nil && ticket.Status != *filter.Status {
			continue
		}
		if filter.Category != nil && ticket.Category != *filter.Category {
			continue
		}
		if area != "" && !strings.Contains(ticket.LocationInfo, area) {
			continue
		}
		if filter.CreatedAfter != nil && ticket.CreatedAt.Before(*filter.CreatedAfter) {
			continue
		}
		if search != "" && !matchesSearch(ticket, search) {
			continue
		}
		result = append(result, ticket)
	}
	return result
}

func matchesSearch(ticket domain.Ticket, loweredTerm string) bool {
	return strings.Contains(strings.ToLower(ticket.Content), loweredTerm) ||
		strings.Contains(strings.ToLower(ticket.Summary), loweredTerm) ||
		strings.Contains(strings.ToLower(string(ticket.Category)), loweredTerm)
}

// SortTickets returns a sorted copy of the snapshot. Priority ordering is
// high > medium > low; ties fall back to creation time, newest first.
func SortTickets(tickets []domain.Ticket, field SortField, descending bool) []domain.Ticket {
	result := make([]domain.Ticket, len(tickets))
	copy(result, tickets)

	less := func(i, j int) bool {
		switch field {
		case SortByPriority:
			ri, rj := domain.PriorityRank(result[i].Priority), domain.PriorityRank(result[j].Priority)
			if ri != rj {
				return ri < rj
			}
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		default:
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
	}
	if descending {
		sort.SliceStable(result, func(i, j int) bool { return less(j, i) })
	} else {
		sort.SliceStable(result, less)
	}
	return result
}

// AggregateByStatus counts tickets per status. Counts always sum to the
// input length.
func AggregateByStatus(tickets []domain.Ticket) map[domain.TicketStatus]int {
	out := make(map[domain.TicketStatus]int)
	for _, ticket := range tickets {
		out[ticket.Status]++
	}
	return out
}

// AggregateByCategory counts tickets per category. Unset categories count
// under CategoryOther so the totals stay consistent.
func AggregateByCategory(tickets []domain.Ticket) map[domain.Category]int {
	out := make(map[domain.Category]int)
	for _, ticket := range tickets {
		category := ticket.Category
		if category == "" {
			category = domain.CategoryOther
		}
		out[category]++
	}
	return out
}

// AggregateByPriority counts tickets per priority.
func AggregateByPriority(tickets []domain.Ticket) map[domain.TicketPriority]int {
	out := make(map[domain.TicketPriority]int)
	for _, ticket := range tickets {
		priority := ticket.Priority
		if priority == "" {
			priority = domain.TicketPriorityMedium
		}
		out[priority]++
	}
	return out
}

// AggregateBySentiment counts tickets per sentiment label.
func AggregateBySentiment(tickets []domain.Ticket) map[domain.Sentiment]int {
	out := make(map[domain.Sentiment]int)
	for _, ticket := range tickets {
		sentiment := ticket.Sentiment
		if sentiment == "" {
			sentiment = domain.SentimentNeutral
		}
		out[sentiment]++
	}
	return out
}

// CountSince counts tickets created within the trailing window of
// durationDays ending at now. It matches the set FilterTickets returns for
// the equivalent CreatedAfter predicate.
func CountSince(tickets []domain.Ticket, now time.Time, durationDays int) int {
	cutoff := now.AddDate(0, 0, -durationDays)
	count := 0
	for _, ticket := range tickets {
		if !ticket.CreatedAt.Before(cutoff) {
			count++
		}
	}
	return count
}
