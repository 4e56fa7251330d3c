package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Hanzlah10/IMDB-Review-RNN/internal/cache"
	"github.com/Hanzlah10/IMDB-Review-RNN/internal/metrics"
	"github.com/Hanzlah10/IMDB-Review-RNN/internal/models"
	"github.com/Hanzlah10/IMDB-Review-RNN/internal/sentiment"
	"github.com/Hanzlah10/IMDB-Review-RNN/internal/tokenizer"
)

func (s *Server) handleIndex(c echo.Context) error {
	data := map[string]any{
		"Examples": sentiment.ExampleReviews,
	}
	if err := s.indexTemplate.Execute(c.Response(), data); err != nil {
		return fmt.Errorf("failed to render index template: %w", err)
	}
	return nil
}

func (s *Server) handleAnalyze(c echo.Context) error {
	var req models.AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "invalid request body",
		})
	}

	ctx := c.Request().Context()

	var cacheKey string
	if s.cache != nil && strings.TrimSpace(req.Text) != "" {
		cacheKey = cache.Key(tokenizer.Normalize(req.Text))
		if prediction, ok := s.cache.Get(ctx, cacheKey); ok {
			metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
			return c.JSON(http.StatusOK, prediction)
		}
		metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
	}

	start := time.Now()
	prediction, err := s.analyzer.Analyze(req.Text)
	if err != nil {
		if errors.Is(err, sentiment.ErrEmptyReview) {
			metrics.AnalysesTotal.WithLabelValues("none", "invalid_input").Inc()
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "please enter a review before analyzing",
			})
		}

		slog.Error("[Server] Analysis failed", slog.String("error", err.Error()))
		metrics.AnalysesTotal.WithLabelValues("none", "error").Inc()
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "analysis failed, please try again",
		})
	}

	metrics.InferenceDuration.Observe(time.Since(start).Seconds())
	metrics.AnalysesTotal.WithLabelValues(prediction.Label, "ok").Inc()
	if prediction.Stats.TokenCount > 0 {
		metrics.UnknownTokenRatio.Observe(
			float64(prediction.Stats.UnknownCount) / float64(prediction.Stats.TokenCount))
	}

	if s.cache != nil && cacheKey != "" {
		s.cache.Put(ctx, cacheKey, prediction)
	}

	return c.JSON(http.StatusOK, prediction)
}

func (s *Server) handleExamples(c echo.Context) error {
	return c.JSON(http.StatusOK, sentiment.ExampleReviews)
}
