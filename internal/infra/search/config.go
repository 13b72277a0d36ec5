package search

import "time"

// Strategies understood by New.
const (
	StrategyHTML = "html"
	StrategyRSS  = "rss"
)

const (
	defaultURLTemplate     = "https://www.bing.com/news/search?q={company}"
	defaultUserAgent       = "Mozilla/5.0"
	defaultTimeout         = 10 * time.Second
	defaultMaxArticles     = 10
	defaultItemSelector    = "div.news-card"
	defaultTitleSelector   = "a.title"
	defaultSummarySelector = "div.snippet"
)

// Config describes where and how news items are fetched.
type Config struct {
	Strategy        string
	URLTemplate     string
	UserAgent       string
	Timeout         time.Duration
	MaxArticles     int
	ItemSelector    string
	TitleSelector   string
	SummarySelector string
}

func (c Config) withDefaults() Config {
	if c.Strategy == "" {
		c.Strategy = StrategyHTML
	}
	if c.URLTemplate == "" {
		c.URLTemplate = defaultURLTemplate
	}
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.MaxArticles <= 0 {
		c.MaxArticles = defaultMaxArticles
	}
	if c.ItemSelector == "" {
		c.ItemSelector = defaultItemSelector
	}
	if c.TitleSelector == "" {
		c.TitleSelector = defaultTitleSelector
	}
	if c.SummarySelector == "" {
		c.SummarySelector = defaultSummarySelector
	}
	return c
}
