package news

import "errors"

// Sentiment is the category assigned to an article summary.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentNeutral  Sentiment = "Neutral"
)

// Placeholders substituted for missing article fields.
const (
	PlaceholderTitle   = "No title"
	PlaceholderSummary = "No summary"
	PlaceholderLink    = "#"
)

// ErrNoArticles is returned by extractors when the upstream page holds no items.
var ErrNoArticles = errors.New("no articles found")

// ArticleRecord is one parsed news item.
type ArticleRecord struct {
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Link      string    `json:"link"`
	Topics    []string  `json:"topics"`
	Sentiment Sentiment `json:"sentiment,omitempty"`
}

// ComparativeSummary aggregates every article of one request.
type ComparativeSummary struct {
	TotalArticles   int               `json:"total_articles"`
	SentimentCounts map[Sentiment]int `json:"sentiment_counts"`
	UniqueTopics    []string          `json:"unique_topics"`
}

// Request is the payload accepted by both operations.
type Request struct {
	Company string `json:"company"`
}

// Report is returned by the analyze operation.
type Report struct {
	Company  string             `json:"company"`
	Analysis ComparativeSummary `json:"analysis"`
	Articles []ArticleRecord    `json:"articles"`
}

// Config carries the pipeline knobs the analysis needs.
type Config struct {
	MaxArticles int
}
