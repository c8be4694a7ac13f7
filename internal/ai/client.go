package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/govhotline/triage-service/internal/config"
	"github.com/govhotline/triage-service/internal/domain"
	apperrors "github.com/govhotline/triage-service/pkg/util"
)

// Client calls the hotline analysis endpoint over HTTP. The endpoint wraps a
// large-language-model service and returns a structured analysis document.
type Client struct {
	endpoint string
	apiKey   string
	model    string
	http     *http.Client
	logger   *zap.Logger
}

// NewClient builds an analyzer client from configuration. An empty endpoint
// produces a client whose Analyze always fails, which the caller turns into
// the fail-open default analysis.
func NewClient(cfg config.AIConfig, logger *zap.Logger) *Client {
	return &Client{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		model:    cfg.Model,
		http:     &http.Client{Timeout: cfg.Timeout()},
		logger:   logger,
	}
}

type analyzeRequest struct {
	Model   string `json:"model"`
	Content string `json:"content"`
}

type analyzeResponse struct {
	Summary    string   `json:"summary"`
	CoreIssues []string `json:"core_issues"`
	Category   string   `json:"suggested_category"`
	Department string   `json:"suggested_department"`
	Priority   string   `json:"priority"`
	Sentiment  struct {
		Type      string   `json:"type"`
		Intensity float64  `json:"intensity"`
		Urgency   string   `json:"urgency"`
		Keywords  []string `json:"keywords"`
	} `json:"sentiment"`
	Keywords           []string `json:"keywords"`
	SolutionSuggestion string   `json:"solution_suggestion"`
}

// Analyze posts the complaint text and decodes the structured result. The
// response time is measured here so degraded analyses report zero.
func (c *Client) Analyze(ctx context.Context, content string) (*domain.Analysis, error) {
	if c.endpoint == "" {
		return nil, apperrors.NewExternalCallFailure("ai analyzer", fmt.Errorf("no endpoint configured"))
	}

	body, err := json.Marshal(analyzeRequest{Model: c.model, Content: content})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.NewExternalCallFailure("ai analyzer", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewExternalCallFailure("ai analyzer",
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var decoded analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, apperrors.NewExternalCallFailure("ai analyzer", err)
	}

	analysis := &domain.Analysis{
		Summary:            decoded.Summary,
		CoreIssues:         decoded.CoreIssues,
		Category:           normalizeCategory(decoded.Category),
		Department:         decoded.Department,
		Priority:           normalizePriority(decoded.Priority),
		Sentiment:          normalizeSentiment(decoded.Sentiment.Type),
		SentimentScore:     decoded.Sentiment.Intensity,
		Urgency:            decoded.Sentiment.Urgency,
		Keywords:           decoded.Keywords,
		SolutionSuggestion: decoded.SolutionSuggestion,
		ResponseTimeMs:     int(time.Since(start).Milliseconds()),
	}
	if len(analysis.Keywords) == 0 {
		analysis.Keywords = decoded.Sentiment.Keywords
	}
	if analysis.Department == "" {
		analysis.Department = domain.DefaultDepartment
	}
	c.logger.Debug("analysis completed",
		zap.String("category", string(analysis.Category)),
		zap.Int("response_time_ms", analysis.ResponseTimeMs))
	return analysis, nil
}

func normalizeCategory(raw string) domain.Category {
	for _, category := range domain.Categories() {
		if raw == string(category) {
			return category
		}
	}
	return domain.CategoryOther
}

func normalizePriority(raw string) domain.TicketPriority {
	switch domain.TicketPriority(raw) {
	case domain.TicketPriorityLow, domain.TicketPriorityHigh:
		return domain.TicketPriority(raw)
	}
	return domain.TicketPriorityMedium
}

func normalizeSentiment(raw string) domain.Sentiment {
	switch domain.Sentiment(raw) {
	case domain.SentimentPositive, domain.SentimentNegative:
		return domain.Sentiment(raw)
	}
	return domain.SentimentNeutral
}
