package gtts

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	defaultBaseURL   = "https://translate.google.com/translate_tts"
	defaultUserAgent = "Mozilla/5.0"
)

// Synthesizer renders speech through the public Google Translate TTS
// endpoint. Long text is split into segments whose MP3 frames are
// concatenated in order.
type Synthesizer struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewSynthesizer builds a keyless synthesizer. A zero timeout leaves the
// deadline to the request context.
func NewSynthesizer(baseURL string, timeout time.Duration) *Synthesizer {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	client := &http.Client{}
	if timeout > 0 {
		client.Timeout = timeout
	}
	return &Synthesizer{
		baseURL:    baseURL,
		userAgent:  defaultUserAgent,
		httpClient: client,
	}
}

// Synthesize implements narration.Synthesizer.
func (s *Synthesizer) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	chunks := splitText(text, maxChunkRunes)
	if len(chunks) == 0 {
		return nil, errors.New("no text to speak")
	}

	var audio bytes.Buffer
	for idx, chunk := range chunks {
		segment, err := s.fetchSegment(ctx, chunk, language, idx, len(chunks))
		if err != nil {
			return nil, fmt.Errorf("segment %d/%d: %w", idx+1, len(chunks), err)
		}
		audio.Write(segment)
	}
	return audio.Bytes(), nil
}

func (s *Synthesizer) fetchSegment(ctx context.Context, chunk, language string, idx, total int) ([]byte, error) {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", chunk)
	params.Set("tl", language)
	params.Set("client", "tw-ob")
	params.Set("total", strconv.Itoa(total))
	params.Set("idx", strconv.Itoa(idx))
	params.Set("textlen", strconv.Itoa(utf8.RuneCountInString(chunk)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build tts request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Referer", "https://translate.google.com/")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("tts request error: status=%d body=%s", resp.StatusCode, string(payload))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read tts response: %w", err)
	}
	if len(body) == 0 {
		return nil, errors.New("tts returned empty audio")
	}
	return body, nil
}
