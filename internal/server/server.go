package server

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Hanzlah10/IMDB-Review-RNN/config"
	"github.com/Hanzlah10/IMDB-Review-RNN/internal/cache"
	"github.com/Hanzlah10/IMDB-Review-RNN/internal/models"
)

// reviewAnalyzer is the slice of the sentiment pipeline the handlers need.
type reviewAnalyzer interface {
	Analyze(text string) (models.Prediction, error)
}

type Server struct {
	echo          *echo.Echo
	config        config.Config
	analyzer      reviewAnalyzer
	cache         *cache.PredictionCache
	indexTemplate *template.Template
	startTime     time.Time
}

// NewServer wires the analyzer and optional prediction cache behind the
// HTTP surface. cache may be nil; the service then runs inference-only.
func NewServer(cfg config.Config, analyzer reviewAnalyzer, predictionCache *cache.PredictionCache) (*Server, error) {
	indexTmpl, err := template.ParseFiles("web/templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse index template: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	srv := &Server{
		echo:          e,
		config:        cfg,
		analyzer:      analyzer,
		cache:         predictionCache,
		indexTemplate: indexTmpl,
		startTime:     time.Now(),
	}

	srv.registerRoutes()

	return srv, nil
}

func (s *Server) Start() error {
	slog.Info("[Server] Listening", slog.String("port", s.config.Port))
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
