package google

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	texttospeech "google.golang.org/api/texttospeech/v1"
)

// Synthesizer renders MP3 audio through Cloud Text-to-Speech v1.
type Synthesizer struct {
	svc           *texttospeech.Service
	voiceLanguage string
}

// NewSynthesizer builds a synthesizer authenticated with apiKey. voiceLanguage
// is a BCP-47 tag such as hi-IN; when empty the request language is used.
func NewSynthesizer(ctx context.Context, apiKey, endpoint, voiceLanguage string) (*Synthesizer, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("google text-to-speech api key cannot be empty")
	}
	opts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if strings.TrimSpace(endpoint) != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	svc, err := texttospeech.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create text-to-speech service: %w", err)
	}
	return &Synthesizer{svc: svc, voiceLanguage: voiceLanguage}, nil
}

// Synthesize implements narration.Synthesizer.
func (s *Synthesizer) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	voice := s.voiceLanguage
	if voice == "" {
		voice = language
	}
	resp, err := s.svc.Text.Synthesize(&texttospeech.SynthesizeSpeechRequest{
		Input:       &texttospeech.SynthesisInput{Text: text},
		Voice:       &texttospeech.VoiceSelectionParams{LanguageCode: voice},
		AudioConfig: &texttospeech.AudioConfig{AudioEncoding: "MP3"},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("text-to-speech request failed: %w", err)
	}
	audio, err := base64.StdEncoding.DecodeString(resp.AudioContent)
	if err != nil {
		return nil, fmt.Errorf("decode audio content: %w", err)
	}
	return audio, nil
}
