package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/govhotline/triage-service/internal/domain"
)

func TestTrendByCategory(t *testing.T) {
	day1 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	day2 := day1.Add(24 * time.Hour)

	trend := TrendByCategory([]domain.Ticket{
		{Category: domain.CategoryEnvironment, CreatedAt: day1},
		{Category: domain.CategoryEnvironment, CreatedAt: day1.Add(time.Hour)},
		{Category: domain.CategoryNoise, CreatedAt: day1},
		{Category: "", CreatedAt: day2},
	})

	assert.Equal(t, []string{"2025-06-01", "2025-06-02"}, trend.Days)
	assert.Equal(t, 2, trend.Daily["2025-06-01"][domain.CategoryEnvironment])
	assert.Equal(t, 1, trend.Daily["2025-06-01"][domain.CategoryNoise])
	assert.Equal(t, 1, trend.Daily["2025-06-02"][domain.CategoryOther], "missing category falls back to 其他")
}

func TestHotAreas(t *testing.T) {
	now := time.Now()
	tickets := []domain.Ticket{
		{LocationInfo: "朝阳区", Category: domain.CategoryEnvironment, CreatedAt: now},
		{LocationInfo: "朝阳区", Category: domain.CategoryEnvironment, CreatedAt: now},
		{LocationInfo: "朝阳区", Category: domain.CategoryNoise, CreatedAt: now},
		{LocationInfo: "海淀区", Category: domain.CategoryFacilities, CreatedAt: now},
		{LocationInfo: "", Category: domain.CategoryOther, CreatedAt: now},
	}

	ranked := HotAreas(tickets, 10)
	require.Len(t, ranked, 2, "tickets without a location are excluded")
	assert.Equal(t, "朝阳区", ranked[0].Area)
	assert.Equal(t, 3, ranked[0].Total)
	assert.Equal(t, 2, ranked[0].ByCategory[domain.CategoryEnvironment])

	capped := HotAreas(tickets, 1)
	require.Len(t, capped, 1)
	assert.Equal(t, "朝阳区", capped[0].Area)
}

func TestSummarizeSentiment(t *testing.T) {
	t.Run("empty snapshot", func(t *testing.T) {
		summary := SummarizeSentiment(nil)
		assert.Equal(t, 0, summary.TotalAnalyzed)
		assert.Equal(t, 0.5, summary.AverageScore)
	})

	t.Run("rates and average", func(t *testing.T) {
		summary := SummarizeSentiment([]domain.Ticket{
			{Sentiment: domain.SentimentPositive, SentimentScore: 0.9},
			{Sentiment: domain.SentimentNegative, SentimentScore: 0.1},
			{Sentiment: domain.SentimentNegative, SentimentScore: 0.2},
			{Sentiment: domain.SentimentNeutral},
		})
		assert.Equal(t, 4, summary.TotalAnalyzed)
		assert.InDelta(t, 0.25, summary.SatisfactionRate, 1e-9)
		assert.InDelta(t, 0.5, summary.NegativeRate, 1e-9)
		assert.InDelta(t, (0.9+0.1+0.2)/3, summary.AverageScore, 1e-9)
	})
}

func TestDepartmentPerformance(t *testing.T) {
	stats := DepartmentPerformance([]domain.Ticket{
		{Department: "环卫部门", Status: domain.TicketStatusResolved, ResponseTimeMs: 800},
		{Department: "环卫部门", Status: domain.TicketStatusPending, ResponseTimeMs: 1200},
		{Department: "", Status: domain.TicketStatusResolved},
	})

	env := stats["环卫部门"]
	assert.Equal(t, 2, env.Total)
	assert.Equal(t, 1, env.Resolved)
	assert.InDelta(t, 0.5, env.ResolutionRate, 1e-9)
	assert.InDelta(t, 1000, env.AvgResponseTimeMs, 1e-9)

	unassigned, ok := stats["未分派"]
	require.True(t, ok)
	assert.Equal(t, 1, unassigned.Total)
	assert.Zero(t, unassigned.AvgResponseTimeMs)
}

func TestKeywordCloud(t *testing.T) {
	cloud := KeywordCloud([]domain.Ticket{
		{Keywords: []string{"垃圾", "异味"}},
		{Keywords: []string{"垃圾"}},
		{Keywords: []string{"路灯", ""}},
	}, 2)

	require.Len(t, cloud, 2)
	assert.Equal(t, KeywordCount{Name: "垃圾", Value: 2}, cloud[0])
	assert.Equal(t, 1, cloud[1].Value)
}
