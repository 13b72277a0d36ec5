package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/andyouranurag/NewsSentimentAnalysis/internal/domain/narration"
	"github.com/andyouranurag/NewsSentimentAnalysis/internal/domain/news"
	"github.com/andyouranurag/NewsSentimentAnalysis/internal/domain/pipeline"
	"github.com/andyouranurag/NewsSentimentAnalysis/internal/infra/artifact"
	"github.com/andyouranurag/NewsSentimentAnalysis/internal/infra/config"
	apperrors "github.com/andyouranurag/NewsSentimentAnalysis/pkg/errors"
)

func TestRouter_AnalyzeSuccess(t *testing.T) {
	report := news.Report{
		Company: "Tesla",
		Analysis: news.ComparativeSummary{
			TotalArticles:   1,
			SentimentCounts: map[news.Sentiment]int{news.SentimentPositive: 1, news.SentimentNegative: 0, news.SentimentNeutral: 0},
			UniqueTopics:    []string{"Tesla"},
		},
		Articles: []news.ArticleRecord{{Title: "Tesla Soars", Summary: "great", Link: "#", Topics: []string{"Tesla", "Soars"}, Sentiment: news.SentimentPositive}},
	}
	var gotRequestID string
	newsSvc := &stubNews{
		analyzeFn: func(ctx context.Context, req news.Request) (news.Report, error) {
			require.Equal(t, "Tesla", req.Company)
			gotRequestID = pipeline.RequestIDFromContext(ctx)
			return report, nil
		},
	}

	for _, path := range []string{"/api/v1/news/analyze", "/scrape_news/"} {
		recorder := performRequest(http.MethodPost, path, `{"company":"Tesla"}`, newRouterUnderTest(t, newsSvc, &stubNarration{}, nil))
		require.Equal(t, http.StatusOK, recorder.Code, path)

		var got map[string]any
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
		require.Equal(t, "Tesla", got["company"])
		analysis := got["analysis"].(map[string]any)
		require.EqualValues(t, 1, analysis["total_articles"])
		require.Contains(t, analysis["sentiment_counts"], "Neutral")
		articles := got["articles"].([]any)
		require.Equal(t, "Positive", articles[0].(map[string]any)["sentiment"])

		require.NotEmpty(t, recorder.Header().Get(requestIDHeader))
		require.Equal(t, recorder.Header().Get(requestIDHeader), gotRequestID)
	}
}

func TestRouter_AnalyzeInvalidJSON(t *testing.T) {
	recorder := performRequest(http.MethodPost, "/api/v1/news/analyze", `{"company":42}`, newRouterUnderTest(t, &stubNews{}, &stubNarration{}, nil))
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	body := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, apperrors.CodeInvalidInput, body["code"])
	require.NotEmpty(t, body["error"])
}

func TestRouter_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		reason string
	}{
		{name: "invalid", err: apperrors.Wrap(apperrors.CodeInvalidInput, "company name is required", nil), status: http.StatusBadRequest, reason: "company name is required"},
		{name: "empty", err: apperrors.Wrap(apperrors.CodeEmptyResult, "No articles found", nil), status: http.StatusNotFound, reason: "No articles found"},
		{name: "transport", err: apperrors.Wrap(apperrors.CodeTransportFailure, "Request failed", io.ErrUnexpectedEOF), status: http.StatusBadGateway, reason: "Request failed: unexpected EOF"},
		{name: "translation", err: apperrors.Wrap(apperrors.CodeTranslationFailure, "Translation failed", context.DeadlineExceeded), status: http.StatusBadGateway, reason: "Translation failed: context deadline exceeded"},
		{name: "synthesis", err: apperrors.Wrap(apperrors.CodeSynthesisFailure, "TTS generation failed", io.EOF), status: http.StatusBadGateway, reason: "TTS generation failed: EOF"},
		{name: "unknown", err: io.ErrClosedPipe, status: http.StatusInternalServerError, reason: "something went wrong"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			narrationSvc := &stubNarration{
				narrateFn: func(context.Context, news.Request) (narration.Response, error) {
					return narration.Response{}, tc.err
				},
			}
			recorder := performRequest(http.MethodPost, "/generate_tts/", `{"company":"Acme"}`, newRouterUnderTest(t, &stubNews{}, narrationSvc, nil))
			require.Equal(t, tc.status, recorder.Code)
			body := decodeErrorBody(t, recorder.Body.Bytes())
			require.Equal(t, tc.reason, body["error"])
		})
	}
}

func TestRouter_NarrateSuccess(t *testing.T) {
	narrationSvc := &stubNarration{
		narrateFn: func(_ context.Context, req news.Request) (narration.Response, error) {
			require.Equal(t, "Acme", req.Company)
			return narration.Response{Message: narration.SuccessMessage, File: "/tmp/output.mp3", Language: "hi"}, nil
		},
	}
	recorder := performRequest(http.MethodPost, "/api/v1/news/narrate", `{"company":"Acme"}`, newRouterUnderTest(t, &stubNews{}, narrationSvc, nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var got narration.Response
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, "TTS generated successfully!", got.Message)
	require.Equal(t, "/tmp/output.mp3", got.File)
}

func TestRouter_Audio(t *testing.T) {
	store := artifact.NewFileStore(t.TempDir(), "", nil, newTestLogger())
	server := newRouterUnderTest(t, &stubNews{}, &stubNarration{}, store)

	recorder := performRequest(http.MethodGet, "/api/v1/news/audio", "", server)
	require.Equal(t, http.StatusNotFound, recorder.Code)

	_, err := store.Write(context.Background(), []byte("ID3-bytes"))
	require.NoError(t, err)

	recorder = performRequest(http.MethodGet, "/api/v1/news/audio", "", server)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, "audio/mpeg", recorder.Header().Get("Content-Type"))
	require.Equal(t, "ID3-bytes", recorder.Body.String())
}

func TestRouter_RequestIDPropagated(t *testing.T) {
	server := newRouterUnderTest(t, &stubNews{}, &stubNarration{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}

func TestRouter_RateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.HTTP.RateLimit = config.RateLimitConfig{Enabled: true, RequestsPerMinute: 1, Burst: 1}
	handler := NewHandler(&stubNews{}, &stubNarration{}, missingAudio{}, newTestLogger())
	server := NewRouter(cfg, handler)

	first := performRequest(http.MethodPost, "/api/v1/news/analyze", `{"company":"Acme"}`, server)
	require.Equal(t, http.StatusOK, first.Code)
	second := performRequest(http.MethodPost, "/api/v1/news/analyze", `{"company":"Acme"}`, server)
	require.Equal(t, http.StatusTooManyRequests, second.Code)
	require.Equal(t, "rate_limit_exceeded", decodeErrorBody(t, second.Body.Bytes())["code"])

	health := performRequest(http.MethodGet, "/healthz", "", server)
	require.Equal(t, http.StatusOK, health.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	cfg := testConfig()
	cfg.HTTP.AllowedOrigins = []string{"https://dash.example"}
	server := NewRouter(cfg, NewHandler(&stubNews{}, &stubNarration{}, missingAudio{}, newTestLogger()))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/news/analyze", nil)
	req.Header.Set("Origin", "https://dash.example")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "https://dash.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_PanicReturnsErrorBody(t *testing.T) {
	newsSvc := &stubNews{
		analyzeFn: func(context.Context, news.Request) (news.Report, error) {
			panic("nil map write")
		},
	}
	recorder := performRequest(http.MethodPost, "/api/v1/news/analyze", `{"company":"Tesla"}`, newRouterUnderTest(t, newsSvc, &stubNarration{}, nil))
	require.Equal(t, http.StatusInternalServerError, recorder.Code)
	require.Equal(t, map[string]string{"error": "something went wrong", "code": "internal_error"}, decodeErrorBody(t, recorder.Body.Bytes()))
	require.NotEmpty(t, recorder.Header().Get(requestIDHeader))
}

func performRequest(method, path, body string, server *http.Server) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func testConfig() *config.Config {
	return &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
	}
}

func newRouterUnderTest(t *testing.T, newsSvc news.Service, narrationSvc narration.Service, audio AudioSource) *http.Server {
	t.Helper()
	if audio == nil {
		audio = missingAudio{}
	}
	return NewRouter(testConfig(), NewHandler(newsSvc, narrationSvc, audio, newTestLogger()))
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

type stubNews struct {
	analyzeFn func(ctx context.Context, req news.Request) (news.Report, error)
}

func (s *stubNews) Analyze(ctx context.Context, req news.Request) (news.Report, error) {
	if s.analyzeFn != nil {
		return s.analyzeFn(ctx, req)
	}
	return news.Report{Company: req.Company}, nil
}

type stubNarration struct {
	narrateFn func(ctx context.Context, req news.Request) (narration.Response, error)
}

func (s *stubNarration) Narrate(ctx context.Context, req news.Request) (narration.Response, error) {
	if s.narrateFn != nil {
		return s.narrateFn(ctx, req)
	}
	return narration.Response{Message: narration.SuccessMessage}, nil
}

type missingAudio struct{}

func (missingAudio) Open() (*os.File, error) {
	return nil, artifact.ErrNotFound
}

func decodeErrorBody(t *testing.T, raw []byte) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}
