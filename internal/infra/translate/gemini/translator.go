package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const translatePrompt = "Translate the following text from %s to %s. " +
	"Keep numbers, names and line breaks. Reply with the translation only.\n\n%s"

type generateFunc func(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error)

// Translator prompts a Gemini model to translate narration scripts.
type Translator struct {
	client   *genai.Client
	generate generateFunc
}

// NewTranslator dials the Gemini API with apiKey and selects model.
func NewTranslator(ctx context.Context, apiKey, model string, temperature float32) (*Translator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini api key cannot be empty")
	}
	if strings.TrimSpace(model) == "" {
		model = "gemini-1.5-flash"
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	gm := client.GenerativeModel(model)
	gm.SetTemperature(temperature)
	return &Translator{
		client: client,
		generate: func(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error) {
			return gm.GenerateContent(ctx, genai.Text(prompt))
		},
	}, nil
}

// Translate implements narration.Translator.
func (t *Translator) Translate(ctx context.Context, text, source, target string) (string, error) {
	resp, err := t.generate(ctx, fmt.Sprintf(translatePrompt, source, target, text))
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	out := responseText(resp)
	if out == "" {
		return "", errors.New("gemini returned an empty translation")
	}
	return out, nil
}

// Close releases the underlying connection.
func (t *Translator) Close() error {
	if t.client == nil {
		return nil
	}
	return t.client.Close()
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		var b strings.Builder
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
		if out := strings.TrimSpace(b.String()); out != "" {
			return out
		}
	}
	return ""
}
