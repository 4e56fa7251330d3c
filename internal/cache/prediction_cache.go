package cache

import (
	"context"
	"crypto/sha256"
	"crypto/tls"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/Hanzlah10/IMDB-Review-RNN/config"
	"github.com/Hanzlah10/IMDB-Review-RNN/internal/models"
)

const PREDICTION_KEY_PREFIX = "review:prediction:"

// PredictionCache keeps recent predictions in valkey keyed by a hash of the
// normalized review text. It is a latency shortcut only: every failure path
// degrades to running inference directly.
type PredictionCache struct {
	client valkey.Client
	ttl    time.Duration
	cfg    config.Config
	mu     sync.Mutex
}

func New(cfg config.Config) (*PredictionCache, error) {
	client, err := connect(cfg)
	if err != nil {
		return nil, err
	}

	slog.Info("[PredictionCache] Successfully connected to valkey",
		slog.String("address", cfg.ValkeyInitAddress))

	return &PredictionCache{
		client: client,
		ttl:    time.Duration(cfg.CacheTTLSeconds) * time.Second,
		cfg:    cfg,
	}, nil
}

func connect(cfg config.Config) (valkey.Client, error) {
	opts := valkey.ClientOption{
		InitAddress: []string{
			cfg.ValkeyInitAddress,
		},
		Password:         cfg.ValkeyPassword,
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	}

	if cfg.ValkeyTLS {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	}

	client, err := valkey.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("[PredictionCache] failed to create valkey client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	if res := client.Do(ctx, client.B().Ping().Build()); res.Error() != nil {
		client.Close()
		return nil, fmt.Errorf("[PredictionCache] failed to ping valkey: %w", res.Error())
	}

	return client, nil
}

// Key derives the cache key from normalized review text.
func Key(normalized string) string {
	sum := sha256.Sum256([]byte(normalized))
	return PREDICTION_KEY_PREFIX + hex.EncodeToString(sum[:])
}

// Get returns a cached prediction and whether one was found. Errors are
// logged and reported as a miss.
func (pc *PredictionCache) Get(ctx context.Context, key string) (models.Prediction, bool) {
	var prediction models.Prediction

	res := pc.doWithRetry(ctx, pc.client.B().Get().Key(key).Build(), 3)
	if err := res.Error(); err != nil {
		if !valkey.IsValkeyNil(err) {
			slog.Warn("[PredictionCache] Get failed",
				slog.String("error", err.Error()))
		}
		return prediction, false
	}

	raw, err := res.AsBytes()
	if err != nil {
		return prediction, false
	}
	if err := json.Unmarshal(raw, &prediction); err != nil {
		slog.Warn("[PredictionCache] Failed to decode cached prediction",
			slog.String("error", err.Error()))
		return prediction, false
	}

	return prediction, true
}

// Put stores a prediction with the configured TTL. Best effort.
func (pc *PredictionCache) Put(ctx context.Context, key string, prediction models.Prediction) {
	raw, err := json.Marshal(prediction)
	if err != nil {
		slog.Warn("[PredictionCache] Failed to encode prediction",
			slog.String("error", err.Error()))
		return
	}

	cmd := pc.client.B().Set().Key(key).Value(string(raw)).
		Ex(pc.ttl).Build()
	if res := pc.doWithRetry(ctx, cmd, 3); res.Error() != nil {
		slog.Warn("[PredictionCache] Put failed",
			slog.String("error", res.Error().Error()))
	}
}

// Ping is used by the readiness probe.
func (pc *PredictionCache) Ping(ctx context.Context) error {
	return pc.client.Do(ctx, pc.client.B().Ping().Build()).Error()
}

func (pc *PredictionCache) Close() {
	pc.client.Close()
}

func (pc *PredictionCache) doWithRetry(ctx context.Context, completed valkey.Completed, retries int) valkey.ValkeyResult {
	var result valkey.ValkeyResult
	for i := 0; i < retries; i++ {
		result = pc.client.Do(ctx, completed)
		err := result.Error()
		if err == nil || valkey.IsValkeyNil(err) {
			break
		}

		slog.Warn("[PredictionCache] Do failed",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))

		if isConnectionError(err) {
			pc.recreateClient()
		}

		time.Sleep(250 * time.Millisecond)
	}

	return result
}

func (pc *PredictionCache) recreateClient() {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("[PredictionCache] Recreate failed and was recovered from panic",
				slog.Any("panic", r))
		}
	}()

	pc.mu.Lock()
	defer pc.mu.Unlock()

	slog.Warn("[PredictionCache] Attempting to recreate valkey client...")
	pc.client.Close()

	client, err := connect(pc.cfg)
	if err != nil {
		panic(err)
	}

	slog.Info("[PredictionCache] Successfully reconnected to valkey")
	pc.client = client
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "EOF") ||
		strings.Contains(msg, "i/o timeout")
}
