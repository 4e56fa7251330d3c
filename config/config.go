package config

import (
	"os"
	"strconv"
)

const (
	DEFAULT_SEQUENCE_LENGTH = 500
	DEFAULT_VOCAB_SIZE      = 10000
	DEFAULT_CACHE_TTL_SECS  = 3600
)

// Config holds everything the process reads from the environment. It is
// built once in main and passed down; nothing else touches os.Getenv.
type Config struct {
	AppEnv string
	Port   string

	ModelPath   string
	VocabPath   string
	OnnxLibPath string

	SequenceLength int
	VocabSize      int

	ValkeyInitAddress string
	ValkeyPassword    string
	ValkeyTLS         bool
	CacheTTLSeconds   int
}

func FromEnv() Config {
	return Config{
		AppEnv:            getEnv("APP_ENV", "dev"),
		Port:              getEnv("PORT", "8080"),
		ModelPath:         getEnv("MODEL_PATH", "artifacts/imdb_model.onnx"),
		VocabPath:         getEnv("VOCAB_PATH", "artifacts/word_index.json"),
		OnnxLibPath:       os.Getenv("ONNX_LIB_PATH"),
		SequenceLength:    getEnvInt("SEQUENCE_LENGTH", DEFAULT_SEQUENCE_LENGTH),
		VocabSize:         getEnvInt("VOCAB_SIZE", DEFAULT_VOCAB_SIZE),
		ValkeyInitAddress: os.Getenv("VALKEY_INIT_ADDRESS"),
		ValkeyPassword:    os.Getenv("VALKEY_PASSWORD"),
		ValkeyTLS:         os.Getenv("VALKEY_TLS") == "true",
		CacheTTLSeconds:   getEnvInt("CACHE_TTL_SECONDS", DEFAULT_CACHE_TTL_SECS),
	}
}

// CacheEnabled reports whether a valkey address was configured; without one
// the service runs inference-only.
func (c Config) CacheEnabled() bool {
	return c.ValkeyInitAddress != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
