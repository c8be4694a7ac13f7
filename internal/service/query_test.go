package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/govhotline/triage-service/internal/domain"
)

func sampleTickets(now time.Time) []domain.Ticket {
	return []domain.Ticket{
		{
			ID: "t1", Content: "垃圾堆积三天没清理", Summary: "垃圾清理",
			LocationInfo: "朝阳区建国路", Category: domain.CategoryEnvironment,
			Status: domain.TicketStatusPending, Priority: domain.TicketPriorityHigh,
			Sentiment: domain.SentimentNegative, CreatedAt: now.Add(-1 * time.Hour),
		},
		{
			ID: "t2", Content: "路灯不亮", Summary: "路灯维修",
			LocationInfo: "海淀区中关村", Category: domain.CategoryFacilities,
			Status: domain.TicketStatusProcessing, Priority: domain.TicketPriorityMedium,
			Sentiment: domain.SentimentNeutral, CreatedAt: now.Add(-26 * time.Hour),
		},
		{
			ID: "t3", Content: "夜间施工噪音扰民", Summary: "噪音投诉",
			LocationInfo: "朝阳区望京", Category: domain.CategoryNoise,
			Status: domain.TicketStatusResolved, Priority: domain.TicketPriorityLow,
			Sentiment: domain.SentimentNegative, CreatedAt: now.Add(-72 * time.Hour),
		},
		{
			ID: "t4", Content: "朝阳区垃圾站异味严重", Summary: "异味处理",
			LocationInfo: "朝阳区酒仙桥", Category: domain.CategoryEnvironment,
			Status: domain.TicketStatusPending, Priority: domain.TicketPriorityMedium,
			Sentiment: domain.SentimentNegative, CreatedAt: now.Add(-30 * time.Minute),
		},
	}
}

func TestFilterTicketsConjunctive(t *testing.T) {
	now := time.Now()
	tickets := sampleTickets(now)

	pending := domain.TicketStatusPending
	environment := domain.CategoryEnvironment

	tests := []struct {
		name    string
		filter  TicketFilter
		wantIDs []string
	}{
		{name: "no predicates returns all", filter: TicketFilter{}, wantIDs: []string{"t1", "t2", "t3", "t4"}},
		{name: "status only", filter: TicketFilter{Status: &pending}, wantIDs: []string{"t1", "t4"}},
		{name: "category only", filter: TicketFilter{Category: &environment}, wantIDs: []string{"t1", "t4"}},
		{name: "area substring", filter: TicketFilter{Area: "朝阳区"}, wantIDs: []string{"t1", "t3", "t4"}},
		{
			name:    "status and category and area are ANDed",
			filter:  TicketFilter{Status: &pending, Category: &environment, Area: "酒仙桥"},
			wantIDs: []string{"t4"},
		},
		{name: "free text matches content", filter: TicketFilter{Search: "施工"}, wantIDs: []string{"t3"}},
		{name: "free text matches summary", filter: TicketFilter{Search: "维修"}, wantIDs: []string{"t2"}},
		{name: "free text matches category", filter: TicketFilter{Search: "环境卫生"}, wantIDs: []string{"t1", "t4"}},
		{name: "no match", filter: TicketFilter{Search: "不存在的关键词"}, wantIDs: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterTickets(tickets, tt.filter)
			gotIDs := make([]string, 0, len(got))
			for _, ticket := range got {
				gotIDs = append(gotIDs, ticket.ID)
			}
			assert.ElementsMatch(t, tt.wantIDs, gotIDs)
		})
	}
}

func TestSortTickets(t *testing.T) {
	now := time.Now()
	tickets := sampleTickets(now)

	byCreatedDesc := SortTickets(tickets, SortByCreatedAt, true)
	require.Len(t, byCreatedDesc, 4)
	assert.Equal(t, "t4", byCreatedDesc[0].ID)
	assert.Equal(t, "t3", byCreatedDesc[3].ID)

	byPriorityDesc := SortTickets(tickets, SortByPriority, true)
	assert.Equal(t, domain.TicketPriorityHigh, byPriorityDesc[0].Priority)
	assert.Equal(t, domain.TicketPriorityLow, byPriorityDesc[3].Priority)

	// input order untouched
	assert.Equal(t, "t1", tickets[0].ID)
}

func TestAggregateCountsSumToTotal(t *testing.T) {
	now := time.Now()
	tickets := sampleTickets(now)

	pending := domain.TicketStatusPending
	filters := []TicketFilter{
		{},
		{Status: &pending},
		{Area: "朝阳区"},
		{Search: "垃圾"},
	}

	for _, filter := range filters {
		filtered := FilterTickets(tickets, filter)

		statusSum := 0
		for _, count := range AggregateByStatus(filtered) {
			statusSum += count
		}
		assert.Equal(t, len(filtered), statusSum)

		categorySum := 0
		for _, count := range AggregateByCategory(filtered) {
			categorySum += count
		}
		assert.Equal(t, len(filtered), categorySum)
	}
}

func TestCountSinceMatchesFilter(t *testing.T) {
	now := time.Now()
	tickets := sampleTickets(now)

	for days := 0; days <= 5; days++ {
		cutoff := now.AddDate(0, 0, -days)
		filtered := FilterTickets(tickets, TicketFilter{CreatedAfter: &cutoff})
		assert.Equal(t, len(filtered), CountSince(tickets, now, days), "days=%d", days)
	}
}
