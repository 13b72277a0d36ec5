package narration

import (
	"fmt"
	"strings"

	"github.com/andyouranurag/NewsSentimentAnalysis/internal/domain/news"
)

// Compose renders the English narration script: a header with the counts and
// topics followed by a numbered digest of at most limit articles.
func Compose(company string, summary news.ComparativeSummary, articles []news.ArticleRecord, limit int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Comparative News Analysis for %s:\n", company)
	fmt.Fprintf(&b, "Total articles analyzed: %d.\n", summary.TotalArticles)
	fmt.Fprintf(&b, "Sentiment breakdown - Positive: %d, Negative: %d, Neutral: %d.\n",
		summary.SentimentCounts[news.SentimentPositive],
		summary.SentimentCounts[news.SentimentNegative],
		summary.SentimentCounts[news.SentimentNeutral],
	)
	b.WriteString("Key topics covered: " + strings.Join(summary.UniqueTopics, ", ") + ".\n\n")

	if limit < 0 || limit > len(articles) {
		limit = len(articles)
	}
	for i, article := range articles[:limit] {
		fmt.Fprintf(&b, "%d. %s - %s.\n\n", i+1, article.Title, article.Summary)
	}
	return b.String()
}
