package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process-level configuration for the import service.
type Server struct {
	Addr        string
	DatabaseURL string
	Redis       RedisConfig
	Kafka       KafkaConfig
	Import      ImportConfig
}

// RedisConfig configures the optional Redis client used for advisory
// creation locks. An empty URL disables Redis and falls back to
// in-process locking.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the optional run-report event publisher.
// No seed brokers means events are not published.
type KafkaConfig struct {
	SeedBrokers []string
	Topic       string
}

// ImportConfig carries the tunables of the batch importer.
type ImportConfig struct {
	// SimilarityThreshold is the default acceptance threshold for
	// high-similarity person matches. Call sites may override per run.
	SimilarityThreshold float64
	// CandidateLimit bounds candidate retrieval per row.
	CandidateLimit int
	// LockTTL bounds how long a per-key creation lock may be held.
	LockTTL time.Duration
	// HomeDistrict anchors the jurisdiction rules of the category
	// classifier. Courts outside it classify as substitution duty.
	HomeDistrict string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("DOCKET_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	return Server{
		Addr:        addr,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka: KafkaConfig{
			SeedBrokers: envList("KAFKA_SEED_BROKERS"),
			Topic:       envDefault("KAFKA_IMPORT_TOPIC", "docket.import.runs"),
		},
		Import: ImportConfig{
			SimilarityThreshold: envFloat("IMPORT_SIMILARITY_THRESHOLD", 0.6),
			CandidateLimit:      envInt("IMPORT_CANDIDATE_LIMIT", 10),
			LockTTL:             10 * time.Second,
			HomeDistrict:        envDefault("IMPORT_HOME_DISTRICT", "Camaçari"),
		},
	}
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
