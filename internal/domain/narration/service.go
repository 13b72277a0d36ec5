package narration

import (
	"context"
	"log/slog"

	"github.com/andyouranurag/NewsSentimentAnalysis/internal/domain/news"
	"github.com/andyouranurag/NewsSentimentAnalysis/internal/domain/pipeline"
)

// Service exposes the narrate operation.
type Service interface {
	Narrate(ctx context.Context, req news.Request) (Response, error)
}

// Analyzer runs the fetch, classify and aggregate stages.
type Analyzer interface {
	Analyze(ctx context.Context, req news.Request) (news.Report, error)
}

type service struct {
	analyzer Analyzer
	narrator *Narrator
	logger   *slog.Logger
}

// NewService wires the narration pipeline on top of the analysis.
func NewService(analyzer Analyzer, narrator *Narrator, logger *slog.Logger) Service {
	return &service{
		analyzer: analyzer,
		narrator: narrator,
		logger:   logger.With("component", "narration.service"),
	}
}

func (s *service) Narrate(ctx context.Context, req news.Request) (Response, error) {
	run := pipeline.NewRun(ctx, s.logger)
	ctx = pipeline.WithRun(ctx, run)

	report, err := s.analyzer.Analyze(ctx, req)
	if err != nil {
		return Response{}, run.Fail(err)
	}

	path, err := s.narrator.Narrate(ctx, report)
	if err != nil {
		return Response{}, run.Fail(err)
	}
	run.Done()

	return Response{
		Message:  SuccessMessage,
		File:     path,
		Language: s.narrator.Language(),
	}, nil
}
