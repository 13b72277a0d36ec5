package http

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/andyouranurag/NewsSentimentAnalysis/internal/domain/narration"
	"github.com/andyouranurag/NewsSentimentAnalysis/internal/domain/news"
	"github.com/andyouranurag/NewsSentimentAnalysis/internal/infra/artifact"
	apperrors "github.com/andyouranurag/NewsSentimentAnalysis/pkg/errors"
)

// AudioSource exposes the most recent narration artifact.
type AudioSource interface {
	Open() (*os.File, error)
}

// Handler wires the HTTP transport to the news services.
type Handler struct {
	newsSvc      news.Service
	narrationSvc narration.Service
	audio        AudioSource
	logger       *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(newsSvc news.Service, narrationSvc narration.Service, audio AudioSource, logger *slog.Logger) *Handler {
	return &Handler{
		newsSvc:      newsSvc,
		narrationSvc: narrationSvc,
		audio:        audio,
		logger:       logger.With("component", "http.handler"),
	}
}

// Analyze fetches, classifies and aggregates news for a company.
func (h *Handler) Analyze(c *gin.Context) {
	req, ok := bindRequest(c)
	if !ok {
		return
	}

	report, err := h.newsSvc.Analyze(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}

	c.JSON(http.StatusOK, report)
}

// Narrate runs the analysis and renders it as translated speech.
func (h *Handler) Narrate(c *gin.Context) {
	req, ok := bindRequest(c)
	if !ok {
		return
	}

	resp, err := h.narrationSvc.Narrate(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Audio streams the current narration artifact.
func (h *Handler) Audio(c *gin.Context) {
	f, err := h.audio.Open()
	if err != nil {
		if errors.Is(err, artifact.ErrNotFound) {
			abortWithError(c, NewHTTPError(http.StatusNotFound, apperrors.CodeEmptyResult, "no audio generated yet", err))
			return
		}
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "internal_error", "audio unavailable", err))
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "internal_error", "audio unavailable", err))
		return
	}
	c.Header("Content-Type", "audio/mpeg")
	http.ServeContent(c.Writer, c.Request, filepath.Base(f.Name()), info.ModTime(), f)
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func bindRequest(c *gin.Context) (news.Request, bool) {
	var req news.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, apperrors.CodeInvalidInput, errMessage(err), err))
		return req, false
	}
	return req, true
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
