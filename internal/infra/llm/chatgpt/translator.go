package chatgpt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/andyouranurag/NewsSentimentAnalysis/pkg/metrics"
)

const translatePrompt = "You are a professional translator. Translate the user's text from %s to %s. " +
	"Keep numbers, names and line breaks. Reply with the translation only."

// Translator asks a chat model to translate narration scripts.
type Translator struct {
	client      *Client
	model       string
	temperature float32

	mu    sync.Mutex
	usage metrics.TokenUsage
}

// NewTranslator wraps client with translation prompting.
func NewTranslator(client *Client, model string, temperature float32) *Translator {
	if strings.TrimSpace(model) == "" {
		model = "gpt-4o-mini"
	}
	return &Translator{client: client, model: model, temperature: temperature}
}

// Translate implements narration.Translator.
func (t *Translator) Translate(ctx context.Context, text, source, target string) (string, error) {
	resp, err := t.client.CreateChatCompletion(ctx, ChatCompletionRequest{
		Model: t.model,
		Messages: []Message{
			{Role: "system", Content: fmt.Sprintf(translatePrompt, source, target)},
			{Role: "user", Content: text},
		},
		Temperature: t.temperature,
	})
	if err != nil {
		return "", err
	}
	t.record(resp.Usage)
	if len(resp.Choices) == 0 {
		return "", errors.New("chatgpt returned no choices")
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", errors.New("chatgpt returned an empty translation")
	}
	return out, nil
}

// Usage returns the tokens consumed by all translations so far.
func (t *Translator) Usage() metrics.TokenUsage {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.usage
}

func (t *Translator) record(u Usage) {
	t.mu.Lock()
	t.usage = t.usage.Add(metrics.TokenUsage{
		PromptTokens:     u.PromptTokens,
		CompletionTokens: u.CompletionTokens,
		TotalTokens:      u.TotalTokens,
	})
	t.mu.Unlock()
}
