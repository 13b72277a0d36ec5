package search

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/andyouranurag/NewsSentimentAnalysis/internal/domain/news"
	"github.com/andyouranurag/NewsSentimentAnalysis/internal/domain/pipeline"
)

// RSSExtractor reads the feed variant of the search endpoint.
type RSSExtractor struct {
	cfg     Config
	fetcher *fetcher
	parser  *gofeed.Parser
	logger  *slog.Logger
}

// NewRSSExtractor builds a feed based extractor.
func NewRSSExtractor(cfg Config, logger *slog.Logger) *RSSExtractor {
	cfg = cfg.withDefaults()
	return &RSSExtractor{
		cfg:     cfg,
		fetcher: newFetcher(cfg),
		parser:  gofeed.NewParser(),
		logger:  logger.With("component", "search.rss"),
	}
}

// Extract fetches the feed for company and maps up to MaxArticles items.
func (e *RSSExtractor) Extract(ctx context.Context, company string) ([]news.ArticleRecord, error) {
	target, err := e.fetcher.searchURL(company, url.Values{"format": []string{"rss"}})
	if err != nil {
		return nil, err
	}
	body, err := e.fetcher.fetch(ctx, target)
	if err != nil {
		return nil, err
	}

	pipeline.Advance(ctx, pipeline.StageParsing)
	feed, err := e.parser.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse search feed: %w", err)
	}

	articles := make([]news.ArticleRecord, 0, e.cfg.MaxArticles)
	for _, item := range feed.Items {
		if len(articles) >= e.cfg.MaxArticles {
			break
		}
		if item == nil {
			continue
		}
		articles = append(articles, news.NewArticle(
			item.Title,
			stripHTML(item.Description),
			resolveLink(target, item.Link),
		))
	}

	e.logger.Debug("search feed parsed", "url", target.String(), "articles", len(articles))
	if len(articles) == 0 {
		return nil, news.ErrNoArticles
	}
	return articles, nil
}

// stripHTML returns the text content of an HTML fragment.
func stripHTML(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return fragment
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	return doc.Text()
}
