package main

import (
	"context"
	"errors"
	"log/slog"

	"github.com/andyouranurag/NewsSentimentAnalysis/internal/domain/narration"
	"github.com/andyouranurag/NewsSentimentAnalysis/internal/domain/news"
	"github.com/andyouranurag/NewsSentimentAnalysis/internal/infra/artifact"
	"github.com/andyouranurag/NewsSentimentAnalysis/internal/infra/config"
	"github.com/andyouranurag/NewsSentimentAnalysis/internal/infra/llm/chatgpt"
	"github.com/andyouranurag/NewsSentimentAnalysis/internal/infra/search"
	googlespeech "github.com/andyouranurag/NewsSentimentAnalysis/internal/infra/speech/google"
	"github.com/andyouranurag/NewsSentimentAnalysis/internal/infra/speech/gtts"
	"github.com/andyouranurag/NewsSentimentAnalysis/internal/infra/translate/gemini"
	googletranslate "github.com/andyouranurag/NewsSentimentAnalysis/internal/infra/translate/google"
	"github.com/andyouranurag/NewsSentimentAnalysis/internal/infra/translate/gtx"
	"github.com/andyouranurag/NewsSentimentAnalysis/pkg/logger"
)

func provideLogger(cfg *config.Config) *slog.Logger {
	return logger.New(logger.Options{
		Level:      cfg.Log.Level,
		FilePath:   cfg.Log.FilePath,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	})
}

func provideNewsConfig(cfg *config.Config) news.Config {
	return news.Config{MaxArticles: cfg.Pipeline.MaxArticles}
}

func provideNarrationConfig(cfg *config.Config) narration.Config {
	return narration.Config{
		SourceLanguage: cfg.Pipeline.SourceLanguage,
		TargetLanguage: cfg.Pipeline.TargetLanguage,
		MaxNarrated:    cfg.Pipeline.MaxNarrated,
	}
}

func provideExtractor(cfg *config.Config, logger *slog.Logger) (news.Extractor, error) {
	return search.New(search.Config{
		Strategy:        cfg.Search.Strategy,
		URLTemplate:     cfg.Search.URLTemplate,
		UserAgent:       cfg.Search.UserAgent,
		Timeout:         cfg.Pipeline.SearchTimeout,
		MaxArticles:     cfg.Pipeline.MaxArticles,
		ItemSelector:    cfg.Search.ItemSelector,
		TitleSelector:   cfg.Search.TitleSelector,
		SummarySelector: cfg.Search.SummarySelector,
	}, logger)
}

func provideClassifier(cfg *config.Config) (*news.LexiconClassifier, error) {
	return news.NewLexiconClassifier(cfg.Classifier.LexiconPath)
}

func provideAnalyzer(svc news.Service) narration.Analyzer {
	return svc
}

func provideArtifactStore(cfg *config.Config, logger *slog.Logger) (*artifact.FileStore, error) {
	var mirror artifact.Mirror
	if m := cfg.Artifact.Mirror; m.Enabled {
		s3, err := artifact.NewS3Mirror(artifact.MirrorConfig{
			Endpoint:  m.Endpoint,
			AccessKey: m.AccessKey,
			SecretKey: m.SecretKey,
			Bucket:    m.Bucket,
			Region:    m.Region,
			Prefix:    m.Prefix,
		}, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("artifact mirror enabled", "bucket", m.Bucket)
		mirror = s3
	}
	return artifact.NewFileStore(cfg.Pipeline.OutputDir, cfg.Artifact.Name, mirror, logger), nil
}

func provideTranslator(cfg *config.Config, logger *slog.Logger) (narration.Translator, func(), error) {
	noop := func() {}
	tc := cfg.Translate
	if tc.Provider == config.TranslateGTX {
		return gtx.NewTranslator(tc.Endpoint, 0), noop, nil
	}
	if tc.APIKey == "" {
		logger.Warn("translate api key not set, narration will fail", "provider", tc.Provider)
		return unavailable{reason: tc.Provider + " translate api key not configured"}, noop, nil
	}
	switch tc.Provider {
	case config.TranslateGemini:
		tr, err := gemini.NewTranslator(context.Background(), tc.APIKey, tc.Model, tc.Temperature)
		if err != nil {
			return nil, nil, err
		}
		return tr, func() { _ = tr.Close() }, nil
	case config.TranslateChatGPT:
		client, err := chatgpt.NewClient(tc.APIKey, tc.Endpoint, 0)
		if err != nil {
			return nil, nil, err
		}
		tr := chatgpt.NewTranslator(client, tc.Model, tc.Temperature)
		cleanup := func() {
			if u := tr.Usage(); !u.IsZero() {
				logger.Info("chatgpt translation usage", "promptTokens", u.PromptTokens, "completionTokens", u.CompletionTokens, "totalTokens", u.TotalTokens)
			}
		}
		return tr, cleanup, nil
	default:
		tr, err := googletranslate.NewTranslator(context.Background(), tc.APIKey, tc.Endpoint)
		if err != nil {
			return nil, nil, err
		}
		return tr, noop, nil
	}
}

func provideSynthesizer(cfg *config.Config, logger *slog.Logger) (narration.Synthesizer, error) {
	sc := cfg.Speech
	if sc.Provider == config.SpeechGoogle {
		if sc.APIKey == "" {
			logger.Warn("speech api key not set, narration will fail", "provider", sc.Provider)
			return unavailable{reason: "google text-to-speech api key not configured"}, nil
		}
		return googlespeech.NewSynthesizer(context.Background(), sc.APIKey, sc.Endpoint, sc.VoiceLanguage)
	}
	return gtts.NewSynthesizer(sc.Endpoint, sc.Timeout), nil
}

// unavailable stands in for a backend whose credentials are missing so the
// analyze operation keeps working.
type unavailable struct {
	reason string
}

func (u unavailable) Translate(context.Context, string, string, string) (string, error) {
	return "", errors.New(u.reason)
}

func (u unavailable) Synthesize(context.Context, string, string) ([]byte, error) {
	return nil, errors.New(u.reason)
}
