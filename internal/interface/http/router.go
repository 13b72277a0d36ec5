package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andyouranurag/NewsSentimentAnalysis/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		recoveryMiddleware(handler.logger),
		requestIDMiddleware(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(handler.logger),
	)

	router.GET("/healthz", handler.Health)

	limited := router.Group("", rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger))
	{
		limited.POST("/scrape_news/", handler.Analyze)
		limited.POST("/generate_tts/", handler.Narrate)
	}

	api := limited.Group("/api/v1/news")
	{
		api.POST("/analyze", handler.Analyze)
		api.POST("/narrate", handler.Narrate)
		api.GET("/audio", handler.Audio)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
