package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/govhotline/triage-service/internal/domain"
	"github.com/govhotline/triage-service/internal/repository"
)

// Statistics is the aggregate snapshot served to the dashboard.
type Statistics struct {
	TotalTickets          int                           `json:"total_tickets"`
	ByCategory            map[domain.Category]int       `json:"by_category"`
	ByStatus              map[domain.TicketStatus]int   `json:"by_status"`
	ByPriority            map[domain.TicketPriority]int `json:"by_priority"`
	SentimentDistribution map[domain.Sentiment]int      `json:"sentiment_distribution"`
}

// StatisticsService computes aggregations over the trailing ticket window.
// Results are cached in Redis for a short TTL; a missing or unreachable
// cache degrades to direct computation.
type StatisticsService struct {
	tickets  repository.TicketRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewStatisticsService constructs the service. cache may be nil.
func NewStatisticsService(tickets repository.TicketRepository, cache *redis.Client, cacheTTL time.Duration, logger *zap.Logger) *StatisticsService {
	return &StatisticsService{
		tickets:  tickets,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Statistics aggregates tickets created in the trailing days window.
func (s *StatisticsService) Statistics(ctx context.Context, days int) (*Statistics, error) {
	if days <= 0 {
		days = 7
	}

	cacheKey := fmt.Sprintf("stats:%d", days)
	if cached := s.fromCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	snapshot, err := s.snapshot(ctx, days)
	if err != nil {
		return nil, err
	}

	stats := &Statistics{
		TotalTickets:          len(snapshot),
		ByCategory:            AggregateByCategory(snapshot),
		ByStatus:              AggregateByStatus(snapshot),
		ByPriority:            AggregateByPriority(snapshot),
		SentimentDistribution: AggregateBySentiment(snapshot),
	}
	s.toCache(ctx, cacheKey, stats)
	return stats, nil
}

// CategoryTrends groups the trailing window by day and category.
func (s *StatisticsService) CategoryTrends(ctx context.Context, days int) (*CategoryTrend, error) {
	snapshot, err := s.snapshot(ctx, days)
	if err != nil {
		return nil, err
	}
	trend := TrendByCategory(snapshot)
	return &trend, nil
}

// HotAreas ranks areas by volume over the trailing window.
func (s *StatisticsService) HotAreas(ctx context.Context, days, top int) ([]AreaStats, error) {
	snapshot, err := s.snapshot(ctx, days)
	if err != nil {
		return nil, err
	}
	return HotAreas(snapshot, top), nil
}

// SentimentSummary aggregates citizen mood over the trailing window.
func (s *StatisticsService) SentimentSummary(ctx context.Context, days int) (*SentimentSummary, error) {
	snapshot, err := s.snapshot(ctx, days)
	if err != nil {
		return nil, err
	}
	summary := SummarizeSentiment(snapshot)
	return &summary, nil
}

// DepartmentPerformance aggregates handling metrics per department.
func (s *StatisticsService) DepartmentPerformance(ctx context.Context, days int) (map[string]DepartmentStats, error) {
	snapshot, err := s.snapshot(ctx, days)
	if err != nil {
		return nil, err
	}
	return DepartmentPerformance(snapshot), nil
}

// KeywordCloud counts extracted keywords over the trailing window.
func (s *StatisticsService) KeywordCloud(ctx context.Context, days, top int) ([]KeywordCount, error) {
	snapshot, err := s.snapshot(ctx, days)
	if err != nil {
		return nil, err
	}
	return KeywordCloud(snapshot, top), nil
}

func (s *StatisticsService) snapshot(ctx context.Context, days int) ([]domain.Ticket, error) {
	if days <= 0 {
		days = 7
	}
	return s.tickets.ListCreatedSince(ctx, time.Now().AddDate(0, 0, -days))
}

func (s *StatisticsService) fromCache(ctx context.Context, key string) *Statistics {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Debug("stats cache read failed", zap.Error(err))
		}
		return nil
	}
	var stats Statistics
	if err := json.Unmarshal(raw, &stats); err != nil {
		s.logger.Debug("stats cache decode failed", zap.Error(err))
		return nil
	}
	return &stats
}

func (s *StatisticsService) toCache(ctx context.Context, key string, stats *Statistics) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Debug("stats cache write failed", zap.Error(err))
	}
}
