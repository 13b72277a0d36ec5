package google

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"google.golang.org/api/option"
	translate "google.golang.org/api/translate/v2"
)

// Translator calls the Cloud Translation v2 REST API.
type Translator struct {
	svc *translate.Service
}

// NewTranslator builds a translator authenticated with apiKey. endpoint
// overrides the API base URL when non-empty.
func NewTranslator(ctx context.Context, apiKey, endpoint string) (*Translator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("google translate api key cannot be empty")
	}
	opts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if strings.TrimSpace(endpoint) != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	svc, err := translate.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create translate service: %w", err)
	}
	return &Translator{svc: svc}, nil
}

// Translate implements narration.Translator.
func (t *Translator) Translate(ctx context.Context, text, source, target string) (string, error) {
	call := t.svc.Translations.List([]string{text}, target).Format("text").Context(ctx)
	if source != "" {
		call = call.Source(source)
	}
	resp, err := call.Do()
	if err != nil {
		return "", fmt.Errorf("translate request failed: %w", err)
	}
	if len(resp.Translations) == 0 {
		return "", errors.New("translate returned no translations")
	}
	return html.UnescapeString(resp.Translations[0].TranslatedText), nil
}
