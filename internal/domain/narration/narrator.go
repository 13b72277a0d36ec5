package narration

import (
	"context"
	"errors"
	"log/slog"

	"github.com/andyouranurag/NewsSentimentAnalysis/internal/domain/news"
	"github.com/andyouranurag/NewsSentimentAnalysis/internal/domain/pipeline"
	apperrors "github.com/andyouranurag/NewsSentimentAnalysis/pkg/errors"
)

// Narrator turns an analysis report into a spoken audio artifact.
type Narrator struct {
	cfg         Config
	translator  Translator
	synthesizer Synthesizer
	store       ArtifactStore
	logger      *slog.Logger
}

// NewNarrator wires the compose, translate and synthesize steps.
func NewNarrator(cfg Config, translator Translator, synthesizer Synthesizer, store ArtifactStore, logger *slog.Logger) *Narrator {
	if cfg.SourceLanguage == "" {
		cfg.SourceLanguage = "en"
	}
	if cfg.TargetLanguage == "" {
		cfg.TargetLanguage = "hi"
	}
	if cfg.MaxNarrated <= 0 {
		cfg.MaxNarrated = 3
	}
	return &Narrator{
		cfg:         cfg,
		translator:  translator,
		synthesizer: synthesizer,
		store:       store,
		logger:      logger.With("component", "narration.narrator"),
	}
}

// Narrate composes, translates and synthesizes report and returns the
// artifact location. A translation failure stops the run before synthesis.
func (n *Narrator) Narrate(ctx context.Context, report news.Report) (string, error) {
	if report.Analysis.TotalArticles == 0 || len(report.Articles) == 0 {
		return "", apperrors.Wrap(apperrors.CodeEmptyResult, "No articles found", nil)
	}

	pipeline.Advance(ctx, pipeline.StageComposing)
	script := Compose(report.Company, report.Analysis, report.Articles, n.cfg.MaxNarrated)
	n.logger.Debug("narration script composed", "company", report.Company, "chars", len(script))

	pipeline.Advance(ctx, pipeline.StageTranslating)
	translated, err := n.translator.Translate(ctx, script, n.cfg.SourceLanguage, n.cfg.TargetLanguage)
	if err == nil && translated == "" {
		err = errors.New("empty translation")
	}
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeTranslationFailure, "Translation failed", err)
	}

	pipeline.Advance(ctx, pipeline.StageSynthesizing)
	audio, err := n.synthesizer.Synthesize(ctx, translated, n.cfg.TargetLanguage)
	if err == nil && len(audio) == 0 {
		err = errors.New("empty audio")
	}
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeSynthesisFailure, "TTS generation failed", err)
	}

	path, err := n.store.Write(ctx, audio)
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeSynthesisFailure, "TTS generation failed", err)
	}
	n.logger.Info("narration artifact written", "company", report.Company, "file", path, "bytes", len(audio))
	return path, nil
}

// Language returns the spoken target language.
func (n *Narrator) Language() string {
	return n.cfg.TargetLanguage
}
