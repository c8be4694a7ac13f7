package service

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/govhotline/triage-service/internal/domain"
	"github.com/govhotline/triage-service/internal/repository"
)

func seedStatisticsRepo(t *testing.T) repository.TicketRepository {
	t.Helper()
	repo := repository.NewMemoryTicketRepository()
	now := time.Now()
	tickets := []domain.Ticket{
		{Content: "垃圾堆积问题需要尽快处理", Category: domain.CategoryEnvironment, Status: domain.TicketStatusPending, Priority: domain.TicketPriorityHigh, Sentiment: domain.SentimentNegative, CreatedAt: now.Add(-time.Hour)},
		{Content: "路灯损坏多日无人维修", Category: domain.CategoryFacilities, Status: domain.TicketStatusProcessing, Priority: domain.TicketPriorityMedium, Sentiment: domain.SentimentNeutral, CreatedAt: now.Add(-2 * time.Hour)},
		{Content: "夜间施工噪音严重扰民", Category: domain.CategoryNoise, Status: domain.TicketStatusResolved, Priority: domain.TicketPriorityLow, Sentiment: domain.SentimentNegative, CreatedAt: now.Add(-3 * time.Hour)},
	}
	for i := range tickets {
		require.NoError(t, repo.Create(context.Background(), &tickets[i]))
	}
	return repo
}

func TestStatisticsWithoutCache(t *testing.T) {
	svc := NewStatisticsService(seedStatisticsRepo(t), nil, time.Minute, zap.NewNop())

	stats, err := svc.Statistics(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalTickets)
	assert.Equal(t, 1, stats.ByCategory[domain.CategoryEnvironment])
	assert.Equal(t, 1, stats.ByStatus[domain.TicketStatusResolved])
	assert.Equal(t, 1, stats.ByPriority[domain.TicketPriorityHigh])
	assert.Equal(t, 2, stats.SentimentDistribution[domain.SentimentNegative])
}

func TestStatisticsCacheFailOpen(t *testing.T) {
	// a client nothing listens on: every cache read and write errors, and
	// the service must degrade to recomputation instead of failing
	unreachable := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer unreachable.Close()

	svc := NewStatisticsService(seedStatisticsRepo(t), unreachable, time.Minute, zap.NewNop())

	for i := 0; i < 2; i++ {
		stats, err := svc.Statistics(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, 3, stats.TotalTickets)
	}
}
