package search

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/andyouranurag/NewsSentimentAnalysis/internal/domain/news"
)

// New returns the extractor selected by cfg.Strategy.
func New(cfg Config, logger *slog.Logger) (news.Extractor, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Strategy)) {
	case "", StrategyHTML:
		return NewHTMLExtractor(cfg, logger), nil
	case StrategyRSS:
		return NewRSSExtractor(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown search strategy %q", cfg.Strategy)
	}
}
