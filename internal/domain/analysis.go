package domain

// Analysis is the structured result returned by the external AI collaborator
// for a single complaint text. The core treats every field as advisory; a
// failed or timed-out call is replaced by conservative defaults.
type Analysis struct {
	Summary            string
	CoreIssues         []string
	Category           Category
	Department         string
	Priority           TicketPriority
	Sentiment          Sentiment
	SentimentScore     float64
	Urgency            string
	Keywords           []string
	SolutionSuggestion string
	ResponseTimeMs     int
}
