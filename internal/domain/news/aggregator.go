package news

// Aggregate folds classified articles into a comparative summary. Articles
// without a sentiment are counted as Neutral.
func Aggregate(articles []ArticleRecord) (ComparativeSummary, error) {
	if len(articles) == 0 {
		return ComparativeSummary{}, ErrNoArticles
	}

	counts := map[Sentiment]int{
		SentimentPositive: 0,
		SentimentNegative: 0,
		SentimentNeutral:  0,
	}
	seen := make(map[string]struct{})
	topics := make([]string, 0)
	for _, article := range articles {
		switch article.Sentiment {
		case SentimentPositive, SentimentNegative:
			counts[article.Sentiment]++
		default:
			counts[SentimentNeutral]++
		}
		for _, topic := range article.Topics {
			if _, ok := seen[topic]; ok {
				continue
			}
			seen[topic] = struct{}{}
			topics = append(topics, topic)
		}
	}

	return ComparativeSummary{
		TotalArticles:   len(articles),
		SentimentCounts: counts,
		UniqueTopics:    topics,
	}, nil
}
