package search

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/andyouranurag/NewsSentimentAnalysis/internal/domain/news"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const resultsPage = `<html><body>
<div class="news-card">
  <a class="title" href="https://example.com/apple-profit">Apple Reports Record Profit.</a>
  <div class="snippet">The company's outlook remains strong and promising.</div>
</div>
<div class="news-card">
  <a class="title" href="/news/relative">Supply   worries
     hit Apple</a>
</div>
<div class="news-card">
  <div class="snippet">Losses mounted amid declining demand.</div>
</div>
</body></html>`

func TestHTMLExtractorParsesCards(t *testing.T) {
	var gotQuery, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotUA = r.Header.Get("User-Agent")
		_, _ = io.WriteString(w, resultsPage)
	}))
	defer srv.Close()

	extractor := NewHTMLExtractor(Config{URLTemplate: srv.URL + "/news/search?q={company}"}, discardLogger())
	articles, err := extractor.Extract(context.Background(), "Apple Inc")
	require.NoError(t, err)
	require.Equal(t, "Apple Inc", gotQuery)
	require.Equal(t, "Mozilla/5.0", gotUA)
	require.Len(t, articles, 3)

	require.Equal(t, news.ArticleRecord{
		Title:   "Apple Reports Record Profit.",
		Summary: "The company's outlook remains strong and promising.",
		Link:    "https://example.com/apple-profit",
		Topics:  []string{"Apple", "Reports", "Record", "Profit"},
	}, articles[0])

	require.Equal(t, "Supply worries hit Apple", articles[1].Title)
	require.Equal(t, news.PlaceholderSummary, articles[1].Summary)
	require.Equal(t, srv.URL+"/news/relative", articles[1].Link)

	require.Equal(t, news.PlaceholderTitle, articles[2].Title)
	require.Equal(t, news.PlaceholderLink, articles[2].Link)
}

func TestHTMLExtractorCapsArticles(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 15; i++ {
		fmt.Fprintf(&b, `<div class="news-card"><a class="title" href="/%d">Item %d</a></div>`, i, i)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, b.String())
	}))
	defer srv.Close()

	extractor := NewHTMLExtractor(Config{URLTemplate: srv.URL + "?q={company}"}, discardLogger())
	articles, err := extractor.Extract(context.Background(), "Acme")
	require.NoError(t, err)
	require.Len(t, articles, 10)
	require.Equal(t, "Item 9", articles[9].Title)
}

func TestHTMLExtractorNoArticles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "<html><body><p>nothing here</p></body></html>")
	}))
	defer srv.Close()

	extractor := NewHTMLExtractor(Config{URLTemplate: srv.URL + "?q={company}"}, discardLogger())
	_, err := extractor.Extract(context.Background(), "Acme")
	require.ErrorIs(t, err, news.ErrNoArticles)
}

func TestHTMLExtractorTransportFailures(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "blocked", http.StatusForbidden)
		}))
		defer srv.Close()

		extractor := NewHTMLExtractor(Config{URLTemplate: srv.URL + "?q={company}"}, discardLogger())
		_, err := extractor.Extract(context.Background(), "Acme")
		require.Error(t, err)
		require.NotErrorIs(t, err, news.ErrNoArticles)
		require.Contains(t, err.Error(), "status=403")
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(200 * time.Millisecond)
			_, _ = io.WriteString(w, resultsPage)
		}))
		defer srv.Close()

		extractor := NewHTMLExtractor(Config{URLTemplate: srv.URL + "?q={company}", Timeout: 20 * time.Millisecond}, discardLogger())
		_, err := extractor.Extract(context.Background(), "Acme")
		require.Error(t, err)
		require.Contains(t, err.Error(), "search request failed")
	})
}

func TestNewSelectsStrategy(t *testing.T) {
	e, err := New(Config{}, discardLogger())
	require.NoError(t, err)
	require.IsType(t, &HTMLExtractor{}, e)

	e, err = New(Config{Strategy: "RSS"}, discardLogger())
	require.NoError(t, err)
	require.IsType(t, &RSSExtractor{}, e)

	_, err = New(Config{Strategy: "carrier-pigeon"}, discardLogger())
	require.Error(t, err)
}
