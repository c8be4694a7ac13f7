package service

import (
	"sort"

	"github.com/govhotline/triage-service/internal/domain"
)

// CategoryTrend is the per-day ticket count for every category.
type CategoryTrend struct {
	Days  []string                         `json:"days"`
	Daily map[string]map[domain.Category]int `json:"daily"`
}

// AreaStats summarizes ticket volume for one area.
type AreaStats struct {
	Area       string                  `json:"area"`
	Total      int                     `json:"total"`
	ByCategory map[domain.Category]int `json:"by_category"`
}

// SentimentSummary aggregates citizen mood over a window.
type SentimentSummary struct {
	Distribution     map[domain.Sentiment]int `json:"distribution"`
	AverageScore     float64                  `json:"average_score"`
	SatisfactionRate float64                  `json:"satisfaction_rate"`
	NegativeRate     float64                  `json:"negative_rate"`
	TotalAnalyzed    int                      `json:"total_analyzed"`
}

// DepartmentStats summarizes handling performance for one department.
type DepartmentStats struct {
	Total             int     `json:"total"`
	Resolved          int     `json:"resolved"`
	ResolutionRate    float64 `json:"resolution_rate"`
	AvgResponseTimeMs float64 `json:"avg_response_time_ms"`
}

// KeywordCount is one entry of the keyword cloud.
type KeywordCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// TrendByCategory groups tickets by creation day and category.
func TrendByCategory(tickets []domain.Ticket) CategoryTrend {
	daily := make(map[string]map[domain.Category]int)
	for _, ticket := range tickets {
		day := ticket.CreatedAt.Format("2006-01-02")
		if daily[day] == nil {
			daily[day] = make(map[domain.Category]int)
		}
		category := ticket.Category
		if category == "" {
			category = domain.CategoryOther
		}
		daily[day][category]++
	}

	days := make([]string, 0, len(daily))
	for day := range daily {
		days = append(days, day)
	}
	sort.Strings(days)
	return CategoryTrend{Days: days, Daily: daily}
}

// HotAreas ranks areas by ticket volume, largest first, with a per-category
// breakdown. Tickets without location information are excluded.
func HotAreas(tickets []domain.Ticket, top int) []AreaStats {
	byArea := make(map[string]*AreaStats)
	for _, ticket := range tickets {
		if ticket.LocationInfo == "" {
			continue
		}
		stats, ok := byArea[ticket.LocationInfo]
		if !ok {
			stats = &AreaStats{Area: ticket.LocationInfo, ByCategory: make(map[domain.Category]int)}
			byArea[ticket.LocationInfo] = stats
		}
		stats.Total++
		category := ticket.Category
		if category == "" {
			category = domain.CategoryOther
		}
		stats.ByCategory[category]++
	}

	ranked := make([]AreaStats, 0, len(byArea))
	for _, stats := range byArea {
		ranked = append(ranked, *stats)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Total != ranked[j].Total {
			return ranked[i].Total > ranked[j].Total
		}
		return ranked[i].Area < ranked[j].Area
	})
	if top > 0 && top < len(ranked) {
		ranked = ranked[:top]
	}
	return ranked
}

// SummarizeSentiment computes mood distribution and satisfaction metrics.
func SummarizeSentiment(tickets []domain.Ticket) SentimentSummary {
	summary := SentimentSummary{
		Distribution: AggregateBySentiment(tickets),
	}
	summary.TotalAnalyzed = len(tickets)
	if summary.TotalAnalyzed == 0 {
		summary.AverageScore = 0.5
		return summary
	}

	var scoreSum float64
	var scored int
	for _, ticket := range tickets {
		if ticket.SentimentScore > 0 {
			scoreSum += ticket.SentimentScore
			scored++
		}
	}
	if scored > 0 {
		summary.AverageScore = scoreSum / float64(scored)
	} else {
		summary.AverageScore = 0.5
	}

	total := float64(summary.TotalAnalyzed)
	summary.SatisfactionRate = float64(summary.Distribution[domain.SentimentPositive]) / total
	summary.NegativeRate = float64(summary.Distribution[domain.SentimentNegative]) / total
	return summary
}

// DepartmentPerformance computes per-department totals, resolution rate and
// average analysis response time. Unassigned tickets group under 未分派.
func DepartmentPerformance(tickets []domain.Ticket) map[string]DepartmentStats {
	type acc struct {
		stats         DepartmentStats
		responseTotal int
		responseCount int
	}
	byDept := make(map[string]*acc)

	for _, ticket := range tickets {
		dept := ticket.Department
		if dept == "" {
			dept = "未分派"
		}
		entry, ok := byDept[dept]
		if !ok {
			entry = &acc{}
			byDept[dept] = entry
		}
		entry.stats.Total++
		if ticket.Status == domain.TicketStatusResolved {
			entry.stats.Resolved++
		}
		if ticket.ResponseTimeMs > 0 {
			entry.responseTotal += ticket.ResponseTimeMs
			entry.responseCount++
		}
	}

	out := make(map[string]DepartmentStats, len(byDept))
	for dept, entry := range byDept {
		if entry.stats.Total > 0 {
			entry.stats.ResolutionRate = float64(entry.stats.Resolved) / float64(entry.stats.Total)
		}
		if entry.responseCount > 0 {
			entry.stats.AvgResponseTimeMs = float64(entry.responseTotal) / float64(entry.responseCount)
		}
		out[dept] = entry.stats
	}
	return out
}

// KeywordCloud counts AI-extracted keywords across the snapshot, most
// frequent first, capped at top entries.
func KeywordCloud(tickets []domain.Ticket, top int) []KeywordCount {
	counts := make(map[string]int)
	for _, ticket := range tickets {
		for _, keyword := range ticket.Keywords {
			if keyword == "" {
				continue
			}
			counts[keyword]++
		}
	}

	cloud := make([]KeywordCount, 0, len(counts))
	for name, value := range counts {
		cloud = append(cloud, KeywordCount{Name: name, Value: value})
	}
	sort.Slice(cloud, func(i, j int) bool {
		if cloud[i].Value != cloud[j].Value {
			return cloud[i].Value > cloud[j].Value
		}
		return cloud[i].Name < cloud[j].Name
	})
	if top > 0 && top < len(cloud) {
		cloud = cloud[:top]
	}
	return cloud
}
