package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultBucketID = 19837
	defaultBaseURL  = "https://api.eyelevel.ai/api/v1"
	defaultHTTPAddr = ":8080"
)

// Config holds everything the process needs from the environment.
type Config struct {
	GroundXAPIKey  string
	GeminiAPIKey   string
	GroundXBaseURL string
	BucketID       int
	HTTPAddr       string
	WatchDir       string // optional auto-ingest directory; empty disables the watcher
}

// Load reads the optional .env file and builds the configuration from the
// process environment. Missing required keys abort startup.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a getenv-style lookup so tests can substitute
// their own environment.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		GroundXAPIKey:  strings.TrimSpace(getenv("GROUNDX_API_KEY")),
		GeminiAPIKey:   strings.TrimSpace(getenv("GEMINI_API_KEY")),
		GroundXBaseURL: strings.TrimSpace(getenv("GROUNDX_BASE_URL")),
		BucketID:       defaultBucketID,
		HTTPAddr:       strings.TrimSpace(getenv("HTTP_ADDR")),
		WatchDir:       strings.TrimSpace(getenv("WATCH_DIR")),
	}

	if cfg.GroundXAPIKey == "" {
		return nil, fmt.Errorf("GROUNDX_API_KEY environment variable is not set")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}

	if raw := strings.TrimSpace(getenv("GROUNDX_BUCKET_ID")); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("GROUNDX_BUCKET_ID must be numeric: %w", err)
		}
		cfg.BucketID = id
	}

	if cfg.GroundXBaseURL == "" {
		cfg.GroundXBaseURL = defaultBaseURL
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = defaultHTTPAddr
	}
	return cfg, nil
}
