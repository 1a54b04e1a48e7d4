package utils

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Addr string

	SessionSecret string
	SessionIssuer string
	SessionTTL    time.Duration

	GeminiAPIKey    string
	VisionModel     string
	TextModel       string
	JikanBaseURL    string
	BooksBaseURL    string
	UpstreamTimeout time.Duration
}

func Load() Config {
	cfg := Config{
		Addr:            getEnv("ITOOK_ADDR", ":8080"),
		SessionSecret:   getEnv("ITOOK_SESSION_SECRET", "dev-secret-change-me"),
		SessionIssuer:   getEnv("ITOOK_SESSION_ISSUER", "itooklib"),
		SessionTTL:      getEnvHours("ITOOK_SESSION_TTL_HOURS", 24),
		VisionModel:     getEnv("ITOOK_VISION_MODEL", "gemini-2.5-flash-lite"),
		TextModel:       getEnv("ITOOK_TEXT_MODEL", "gemini-2.5-flash"),
		JikanBaseURL:    getEnv("ITOOK_JIKAN_URL", "https://api.jikan.moe/v4"),
		BooksBaseURL:    getEnv("ITOOK_BOOKS_URL", "https://www.googleapis.com/books/v1"),
		UpstreamTimeout: 10 * time.Second,
	}
	cfg.GeminiAPIKey = ResolveGeminiKey()
	return cfg
}

// ResolveGeminiKey checks the platform secret store first (a mounted
// secrets directory), then the environment. An empty result is not
// fatal: the advisor degrades to "not configured" answers instead of
// refusing to start.
func ResolveGeminiKey() string {
	dir := getEnv("ITOOK_SECRETS_DIR", "/run/secrets")
	if data, err := os.ReadFile(filepath.Join(dir, "GEMINI_API_KEY")); err == nil {
		if key := strings.TrimSpace(string(data)); key != "" {
			return key
		}
	}
	return strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvHours(key string, def int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Hour
		}
	}
	return time.Duration(def) * time.Hour
}
