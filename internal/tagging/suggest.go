package tagging

import (
	"strings"

	"github.com/govhotline/triage-service/internal/domain"
)

// Engine suggests category labels for free-text complaints by substring
// matching against a taxonomy. It performs no network calls and keeps no
// state, so suggestions are deterministic and safe to call concurrently.
type Engine struct {
	taxonomy Taxonomy
}

// NewEngine builds an engine over the given taxonomy. A nil taxonomy falls
// back to the default one.
func NewEngine(taxonomy Taxonomy) *Engine {
	if taxonomy == nil {
		taxonomy = DefaultTaxonomy()
	}
	return &Engine{taxonomy: taxonomy}
}

// Suggest returns every category whose keyword set matches the text,
// case-insensitively. Empty or whitespace text yields no suggestions.
// Membership is boolean per category; a single text may match several
// categories. The result follows the canonical category order.
func (e *Engine) Suggest(text string) []domain.Category {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return nil
	}

	var matched []domain.Category
	for _, category := range domain.Categories() {
		for _, keyword := range e.taxonomy[category] {
			if strings.Contains(text, strings.ToLower(keyword)) {
				matched = append(matched, category)
				break
			}
		}
	}
	return matched
}
