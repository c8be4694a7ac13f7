package domain

import "time"

// TicketStatus enumerates lifecycle states for hotline tickets.
type TicketStatus string

const (
	TicketStatusPending    TicketStatus = "pending"
	TicketStatusProcessing TicketStatus = "processing"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

// TicketPriority enumerates urgency.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
)

// Sentiment is the AI-assessed emotional tone of a complaint.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Category is one of the closed set of complaint classifications.
type Category string

const (
	CategoryEnvironment Category = "环境卫生"
	CategoryFacilities  Category = "市政设施"
	CategoryNoise       Category = "噪音扰民"
	CategoryTraffic     Category = "交通出行"
	CategoryLandscaping Category = "绿化养护"
	CategoryOther       Category = "其他"
)

// Categories lists every known category in display order.
func Categories() []Category {
	return []Category{
		CategoryEnvironment,
		CategoryFacilities,
		CategoryNoise,
		CategoryTraffic,
		CategoryLandscaping,
		CategoryOther,
	}
}

// Content length bounds, in runes, enforced before a ticket reaches the store.
const (
	MinContentLength = 10
	MaxContentLength = 1000
)

// DefaultDepartment receives tickets that could not be classified.
const DefaultDepartment = "综合服务部"

// Ticket is the aggregate for a citizen complaint.
type Ticket struct {
	ID                 string
	TicketNumber       string
	Content            string
	Summary            string
	LocationInfo       string
	Category           Category
	Department         string
	Priority           TicketPriority
	Sentiment          Sentiment
	SentimentScore     float64
	Status             TicketStatus
	Tags               []Category
	Keywords           []string
	SolutionSuggestion string
	ResponseTimeMs     int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// PriorityRank orders priorities for sorting, higher means more urgent.
func PriorityRank(p TicketPriority) int {
	switch p {
	case TicketPriorityHigh:
		return 3
	case TicketPriorityMedium:
		return 2
	case TicketPriorityLow:
		return 1
	}
	return 0
}
