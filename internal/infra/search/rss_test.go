package search

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andyouranurag/NewsSentimentAnalysis/internal/domain/news"
)

const feedBody = `<?xml version="1.0" encoding="utf-8"?>
<rss version="2.0"><channel><title>Acme news</title>
<item>
  <title>Acme Expands Overseas</title>
  <link>https://example.com/acme</link>
  <description>&lt;b&gt;Strong&lt;/b&gt; growth in new markets</description>
</item>
<item>
  <title>quiet week for acme</title>
  <link>/relative/item</link>
</item>
</channel></rss>`

func TestRSSExtractorParsesItems(t *testing.T) {
	var gotFormat, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotFormat = r.URL.Query().Get("format")
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = io.WriteString(w, feedBody)
	}))
	defer srv.Close()

	extractor := NewRSSExtractor(Config{URLTemplate: srv.URL + "/news/search?q={company}"}, discardLogger())
	articles, err := extractor.Extract(context.Background(), "Acme & Co")
	require.NoError(t, err)
	require.Equal(t, "rss", gotFormat)
	require.Equal(t, "Acme & Co", gotQuery)
	require.Len(t, articles, 2)

	require.Equal(t, "Acme Expands Overseas", articles[0].Title)
	require.Equal(t, "Strong growth in new markets", articles[0].Summary)
	require.Equal(t, []string{"Acme", "Expands", "Overseas"}, articles[0].Topics)

	require.Equal(t, news.PlaceholderSummary, articles[1].Summary)
	require.Equal(t, srv.URL+"/relative/item", articles[1].Link)
	require.Empty(t, articles[1].Topics)
}

func TestRSSExtractorEmptyFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `<?xml version="1.0"?><rss version="2.0"><channel><title>x</title></channel></rss>`)
	}))
	defer srv.Close()

	extractor := NewRSSExtractor(Config{URLTemplate: srv.URL + "?q={company}"}, discardLogger())
	_, err := extractor.Extract(context.Background(), "Acme")
	require.ErrorIs(t, err, news.ErrNoArticles)
}

func TestStripHTML(t *testing.T) {
	require.Equal(t, "plain", stripHTML("plain"))
	require.Equal(t, "bold text", stripHTML("<b>bold</b> text"))
	require.Equal(t, "a & b", stripHTML("a &amp; b"))
}
