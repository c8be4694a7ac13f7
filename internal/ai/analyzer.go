package ai

import (
	"context"

	"github.com/govhotline/triage-service/internal/domain"
	"github.com/govhotline/triage-service/internal/tagging"
)

// Analyzer abstracts the external large-language-model collaborator. It may
// be slow and may fail; callers must apply the fail-open policy.
type Analyzer interface {
	Analyze(ctx context.Context, content string) (*domain.Analysis, error)
}

// DefaultAnalysis returns the conservative result used when the collaborator
// is unreachable or times out. The ticket proceeds unclassified rather than
// being rejected, so citizen input is never lost.
func DefaultAnalysis(content string) *domain.Analysis {
	keywords := make([]string, 0, 3)
	for _, category := range tagging.NewEngine(nil).Suggest(content) {
		keywords = append(keywords, string(category))
	}

	return &domain.Analysis{
		Summary:            truncateRunes(content, 50),
		CoreIssues:         []string{"市民反馈"},
		Category:           domain.CategoryOther,
		Department:         domain.DefaultDepartment,
		Priority:           domain.TicketPriorityMedium,
		Sentiment:          domain.SentimentNeutral,
		SentimentScore:     0.5,
		Urgency:            "medium",
		Keywords:           keywords,
		SolutionSuggestion: "我们已收到您的反馈，将尽快为您处理。",
	}
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
