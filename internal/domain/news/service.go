package news

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/andyouranurag/NewsSentimentAnalysis/internal/domain/pipeline"
	apperrors "github.com/andyouranurag/NewsSentimentAnalysis/pkg/errors"
)

// Service exposes the analyze operation.
type Service interface {
	Analyze(ctx context.Context, req Request) (Report, error)
}

// Extractor fetches and parses the news items published about a company.
// Implementations return ErrNoArticles when the page holds no items.
type Extractor interface {
	Extract(ctx context.Context, company string) ([]ArticleRecord, error)
}

type service struct {
	cfg        Config
	extractor  Extractor
	classifier Classifier
	logger     *slog.Logger
}

// NewService wires the analysis pipeline.
func NewService(cfg Config, extractor Extractor, classifier Classifier, logger *slog.Logger) Service {
	return &service{
		cfg:        cfg,
		extractor:  extractor,
		classifier: classifier,
		logger:     logger.With("component", "news.service"),
	}
}

func (s *service) Analyze(ctx context.Context, req Request) (Report, error) {
	company := strings.TrimSpace(req.Company)
	if company == "" {
		return Report{}, apperrors.Wrap(apperrors.CodeInvalidInput, "company name is required", nil)
	}

	run := pipeline.RunFromContext(ctx)
	owned := run == nil
	if owned {
		run = pipeline.NewRun(ctx, s.logger)
		ctx = pipeline.WithRun(ctx, run)
	}

	_ = run.Enter(pipeline.StageFetching)
	articles, err := s.extractor.Extract(ctx, company)
	if err != nil {
		if errors.Is(err, ErrNoArticles) {
			return Report{}, run.Fail(apperrors.Wrap(apperrors.CodeEmptyResult, "No articles found", nil))
		}
		return Report{}, run.Fail(apperrors.Wrap(apperrors.CodeTransportFailure, "Request failed", err))
	}
	if limit := s.cfg.MaxArticles; limit > 0 && len(articles) > limit {
		articles = articles[:limit]
	}
	s.logger.Info("news articles extracted", "company", company, "count", len(articles), "run_id", run.ID())

	_ = run.Enter(pipeline.StageClassifying)
	for i := range articles {
		articles[i].Sentiment = s.classifier.Classify(articles[i].Summary)
	}

	_ = run.Enter(pipeline.StageAggregating)
	summary, err := Aggregate(articles)
	if err != nil {
		return Report{}, run.Fail(apperrors.Wrap(apperrors.CodeEmptyResult, "No articles found", nil))
	}

	if owned {
		run.Done()
	}
	return Report{
		Company:  company,
		Analysis: summary,
		Articles: articles,
	}, nil
}
