package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Hanzlah10/IMDB-Review-RNN/config"
	"github.com/Hanzlah10/IMDB-Review-RNN/internal/cache"
	"github.com/Hanzlah10/IMDB-Review-RNN/internal/logging"
	"github.com/Hanzlah10/IMDB-Review-RNN/internal/model"
	"github.com/Hanzlah10/IMDB-Review-RNN/internal/sentiment"
	"github.com/Hanzlah10/IMDB-Review-RNN/internal/server"
	"github.com/Hanzlah10/IMDB-Review-RNN/internal/tokenizer"
	"github.com/Hanzlah10/IMDB-Review-RNN/internal/vocab"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	cfg := config.FromEnv()

	// Model and vocabulary are the process; without them there is nothing
	// to serve.
	vocabulary, err := vocab.Load(cfg.VocabPath, cfg.VocabSize)
	if err != nil {
		slog.Error("[Main] Failed to load vocabulary",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	classifier, err := model.Load(cfg.ModelPath, cfg.OnnxLibPath, cfg.SequenceLength)
	if err != nil {
		slog.Error("[Main] Failed to load model",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer classifier.Close()

	analyzer := sentiment.NewAnalyzer(
		tokenizer.New(vocabulary, cfg.SequenceLength), classifier)

	// Probe inference: surfaces a broken artifact pairing at startup
	// instead of on the first user request.
	if _, err := analyzer.Analyze("a fine film worth watching"); err != nil {
		slog.Error("[Main] Startup probe inference failed",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	var predictionCache *cache.PredictionCache
	if cfg.CacheEnabled() {
		predictionCache, err = cache.New(cfg)
		if err != nil {
			slog.Warn("[Main] Prediction cache unavailable, continuing without it",
				slog.String("error", err.Error()))
		} else {
			defer predictionCache.Close()
		}
	}

	srv, err := server.NewServer(cfg, analyzer, predictionCache)
	if err != nil {
		slog.Error("[Main] Failed to build server",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("[Main] Server stopped",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("[Main] Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("[Main] Shutdown failed",
			slog.String("error", err.Error()))
	}
}
