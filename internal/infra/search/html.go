package search

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/PuerkitoBio/goquery"

	"github.com/andyouranurag/NewsSentimentAnalysis/internal/domain/news"
	"github.com/andyouranurag/NewsSentimentAnalysis/internal/domain/pipeline"
)

// HTMLExtractor scrapes news cards from a search results page.
type HTMLExtractor struct {
	cfg     Config
	fetcher *fetcher
	logger  *slog.Logger
}

// NewHTMLExtractor builds a markup based extractor.
func NewHTMLExtractor(cfg Config, logger *slog.Logger) *HTMLExtractor {
	cfg = cfg.withDefaults()
	return &HTMLExtractor{
		cfg:     cfg,
		fetcher: newFetcher(cfg),
		logger:  logger.With("component", "search.html"),
	}
}

// Extract fetches the results page for company and parses up to MaxArticles
// item blocks in document order.
func (e *HTMLExtractor) Extract(ctx context.Context, company string) ([]news.ArticleRecord, error) {
	target, err := e.fetcher.searchURL(company, nil)
	if err != nil {
		return nil, err
	}
	body, err := e.fetcher.fetch(ctx, target)
	if err != nil {
		return nil, err
	}

	pipeline.Advance(ctx, pipeline.StageParsing)
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse search html: %w", err)
	}

	articles := make([]news.ArticleRecord, 0, e.cfg.MaxArticles)
	doc.Find(e.cfg.ItemSelector).EachWithBreak(func(_ int, block *goquery.Selection) bool {
		title := block.Find(e.cfg.TitleSelector).First()
		summary := block.Find(e.cfg.SummarySelector).First()

		href, _ := title.Attr("href")
		articles = append(articles, news.NewArticle(
			title.Text(),
			summary.Text(),
			resolveLink(target, href),
		))
		return len(articles) < e.cfg.MaxArticles
	})

	e.logger.Debug("search page parsed", "url", target.String(), "articles", len(articles))
	if len(articles) == 0 {
		return nil, news.ErrNoArticles
	}
	return articles, nil
}
