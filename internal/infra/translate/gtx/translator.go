package gtx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultBaseURL   = "https://translate.googleapis.com/translate_a/single"
	defaultUserAgent = "Mozilla/5.0"
	maxBatchRunes    = 4500
)

// Translator calls the public Google Translate web endpoint (client=gtx),
// which needs no API key.
type Translator struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewTranslator builds a keyless translator. A zero timeout leaves the
// deadline to the request context.
func NewTranslator(baseURL string, timeout time.Duration) *Translator {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	client := &http.Client{}
	if timeout > 0 {
		client.Timeout = timeout
	}
	return &Translator{
		baseURL:    baseURL,
		userAgent:  defaultUserAgent,
		httpClient: client,
	}
}

// Translate implements narration.Translator. Text longer than one request
// allows is sent in paragraph batches and rejoined in order.
func (t *Translator) Translate(ctx context.Context, text, source, target string) (string, error) {
	batches := splitParagraphs(text, maxBatchRunes)
	if len(batches) == 0 {
		return "", errors.New("no text to translate")
	}

	out := make([]string, 0, len(batches))
	for idx, batch := range batches {
		translated, err := t.translateBatch(ctx, batch, source, target)
		if err != nil {
			return "", fmt.Errorf("batch %d/%d: %w", idx+1, len(batches), err)
		}
		out = append(out, translated)
	}
	return strings.Join(out, "\n\n"), nil
}

func (t *Translator) translateBatch(ctx context.Context, text, source, target string) (string, error) {
	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", source)
	params.Set("tl", target)
	params.Set("dt", "t")
	params.Set("ie", "UTF-8")
	params.Set("oe", "UTF-8")

	form := url.Values{}
	form.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"?"+params.Encode(), strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build translate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=utf-8")
	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return "", fmt.Errorf("translate request error: status=%d body=%s", resp.StatusCode, string(payload))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read translate response: %w", err)
	}
	return parseResponse(body)
}

// parseResponse joins the translated segments of a gtx reply, shaped as
// [[["translated","original",...],...],...].
func parseResponse(body []byte) (string, error) {
	var top []json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil {
		return "", fmt.Errorf("decode translate response: %w", err)
	}
	if len(top) == 0 {
		return "", errors.New("translate response is empty")
	}
	var segments [][]any
	if err := json.Unmarshal(top[0], &segments); err != nil {
		return "", fmt.Errorf("decode translate segments: %w", err)
	}

	var b strings.Builder
	for _, segment := range segments {
		if len(segment) == 0 {
			continue
		}
		if s, ok := segment[0].(string); ok {
			b.WriteString(s)
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", errors.New("translate response has no text")
	}
	return out, nil
}

// splitParagraphs groups blank-line separated paragraphs into batches of at
// most limit runes. A single oversized paragraph becomes its own batch.
func splitParagraphs(text string, limit int) []string {
	var (
		batches []string
		current strings.Builder
		size    int
	)
	flush := func() {
		if current.Len() > 0 {
			batches = append(batches, current.String())
			current.Reset()
			size = 0
		}
	}
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		n := len([]rune(para))
		if size > 0 && size+2+n > limit {
			flush()
		}
		if size > 0 {
			current.WriteString("\n\n")
			size += 2
		}
		current.WriteString(para)
		size += n
	}
	flush()
	return batches
}
