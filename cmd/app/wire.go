//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/andyouranurag/NewsSentimentAnalysis/internal/bootstrap"
	"github.com/andyouranurag/NewsSentimentAnalysis/internal/domain/narration"
	"github.com/andyouranurag/NewsSentimentAnalysis/internal/domain/news"
	"github.com/andyouranurag/NewsSentimentAnalysis/internal/infra/artifact"
	"github.com/andyouranurag/NewsSentimentAnalysis/internal/infra/config"
	httpiface "github.com/andyouranurag/NewsSentimentAnalysis/internal/interface/http"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		provideLogger,
		provideNewsConfig,
		provideNarrationConfig,
		provideExtractor,
		provideClassifier,
		provideAnalyzer,
		provideArtifactStore,
		provideTranslator,
		provideSynthesizer,
		news.NewService,
		narration.NewNarrator,
		narration.NewService,
		wire.Bind(new(news.Classifier), new(*news.LexiconClassifier)),
		wire.Bind(new(narration.ArtifactStore), new(*artifact.FileStore)),
		wire.Bind(new(httpiface.AudioSource), new(*artifact.FileStore)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
