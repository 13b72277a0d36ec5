package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/andyouranurag/NewsSentimentAnalysis/internal/domain/narration"
	"github.com/andyouranurag/NewsSentimentAnalysis/internal/domain/news"
)

const (
	defaultServer         = "http://127.0.0.1:8000"
	defaultTimeout        = 15 * time.Second
	defaultNarrateTimeout = 30 * time.Second
)

// Options configures the API client.
type Options struct {
	Server         string
	Timeout        time.Duration
	NarrateTimeout time.Duration
}

// APIError is returned when the server answers with an error body.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (status=%d code=%s)", e.Message, e.Status, e.Code)
	}
	return fmt.Sprintf("%s (status=%d)", e.Message, e.Status)
}

// Client calls the news sentiment HTTP API.
type Client struct {
	server         string
	timeout        time.Duration
	narrateTimeout time.Duration
	httpClient     *http.Client
}

// New builds a client; zero options fall back to defaults.
func New(opts Options) *Client {
	server := strings.TrimRight(strings.TrimSpace(opts.Server), "/")
	if server == "" {
		server = defaultServer
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.NarrateTimeout <= 0 {
		opts.NarrateTimeout = defaultNarrateTimeout
	}
	return &Client{
		server:         server,
		timeout:        opts.Timeout,
		narrateTimeout: opts.NarrateTimeout,
		httpClient:     &http.Client{},
	}
}

// Analyze requests the sentiment report for company.
func (c *Client) Analyze(ctx context.Context, company string) (news.Report, error) {
	var out news.Report
	err := c.post(ctx, c.timeout, "/api/v1/news/analyze", news.Request{Company: company}, &out)
	return out, err
}

// Narrate requests the spoken summary for company.
func (c *Client) Narrate(ctx context.Context, company string) (narration.Response, error) {
	var out narration.Response
	err := c.post(ctx, c.narrateTimeout, "/api/v1/news/narrate", news.Request{Company: company}, &out)
	return out, err
}

// DownloadAudio copies the latest artifact into w.
func (c *Client) DownloadAudio(ctx context.Context, w io.Writer) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.server+"/api/v1/news/audio", nil)
	if err != nil {
		return 0, fmt.Errorf("build audio request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("audio request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return 0, decodeError(resp)
	}
	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("read audio: %w", err)
	}
	return n, nil
}

func (c *Client) post(ctx context.Context, timeout time.Duration, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.server+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	var body struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || body.Error == "" {
		return &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
	}
	return &APIError{Status: resp.StatusCode, Code: body.Code, Message: body.Error}
}
