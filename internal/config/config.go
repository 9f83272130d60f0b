package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Mode string

const (
	ModeLocal Mode = "local"
	ModeGCP   Mode = "gcp"
)

type Config struct {
	Mode Mode

	Port string

	GCPProjectID string
	GCPLocation  string
	GeminiAPIKey string
	ModelName    string

	StorageBackend string // "memory", "redis" or "firestore"
	RedisAddr      string
	RedisPassword  string

	UseMockLLM bool // true = use mock even on GCP

	SessionTTL   time.Duration
	ModelTimeout time.Duration

	// FlavorSeed > 0 enables the dialect flavor layer with that seed;
	// 0 disables it.
	FlavorSeed int64
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v == "1" || v == "true" || v == "TRUE"
}

func getDurationEnv(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %s", key, v, def)
		return def
	}
	return d
}

func getInt64Env(key string, def int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Printf("invalid %s=%q, using default %d", key, v, def)
		return def
	}
	return n
}

// Load reads a .env file if present, then builds the config from env vars.
func Load() *Config {
	_ = godotenv.Load()

	modeStr := getEnv("INTERVIEW_MODE", "local")
	var mode Mode
	switch modeStr {
	case "gcp":
		mode = ModeGCP
	default:
		mode = ModeLocal
	}

	cfg := &Config{
		Mode: mode,

		Port: getEnv("INTERVIEW_PORT", "8080"),

		GCPProjectID: getEnv("INTERVIEW_GCP_PROJECT", ""),
		GCPLocation:  getEnv("INTERVIEW_GCP_LOCATION", "us-central1"),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		ModelName:    getEnv("INTERVIEW_MODEL_NAME", "gemini-2.5-flash"),

		StorageBackend: getEnv("INTERVIEW_STORAGE_BACKEND", "memory"),
		RedisAddr:      getEnv("INTERVIEW_REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("INTERVIEW_REDIS_PASSWORD", ""),

		UseMockLLM: getBoolEnv("INTERVIEW_USE_MOCK_LLM", mode == ModeLocal),

		SessionTTL:   getDurationEnv("INTERVIEW_SESSION_TTL", time.Hour),
		ModelTimeout: getDurationEnv("INTERVIEW_MODEL_TIMEOUT", 30*time.Second),

		FlavorSeed: getInt64Env("INTERVIEW_FLAVOR_SEED", 0),
	}

	if cfg.Mode == ModeGCP && cfg.GCPProjectID == "" {
		log.Fatal("INTERVIEW_GCP_PROJECT must be set in gcp mode")
	}

	return cfg
}
