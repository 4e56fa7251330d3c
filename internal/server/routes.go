package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Single-page UI
	s.echo.GET("/", s.handleIndex)

	// API
	s.echo.POST("/api/analyze", s.handleAnalyze)
	s.echo.GET("/api/examples", s.handleExamples)
}
