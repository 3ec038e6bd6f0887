package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Config holds the server settings read from the environment (and .env).
type Config struct {
	Port string

	PlacesProvider string // "google" or "fake"
	GoogleAPIKey   string
	GoogleBaseURL  string
	GoogleQPS      float64
	PageTokenDelay time.Duration

	IPGeolocationURL string

	SearchRadiusM      int
	FirstPageTimeout   time.Duration
	AggregationTimeout time.Duration

	SessionStore string // "memory" or "redis"
	RedisURL     string
	SessionTTL   time.Duration

	DBPath      string
	DatabaseURL string
}

func Load() (Config, error) {
	cfg := Config{
		Port:             Get("PORT", "8080"),
		PlacesProvider:   strings.ToLower(Get("PLACES_PROVIDER", "google")),
		GoogleAPIKey:     Get("GOOGLE_API_KEY", ""),
		GoogleBaseURL:    Get("GOOGLE_BASE_URL", "https://maps.googleapis.com/maps/api"),
		IPGeolocationURL: Get("IP_GEOLOCATION_URL", ""),
		SessionStore:     strings.ToLower(Get("SESSION_STORE", "memory")),
		RedisURL:         Get("REDIS_URL", "redis://localhost:6379/0"),
		DBPath:           Get("DB_PATH", "data/walks.db"),
		DatabaseURL:      Get("DATABASE_URL", ""),
	}

	var err error
	if cfg.GoogleQPS, err = getFloat("GOOGLE_QPS", 10); err != nil {
		return Config{}, err
	}
	if cfg.SearchRadiusM, err = getInt("SEARCH_RADIUS_M", 20000); err != nil {
		return Config{}, err
	}
	if cfg.PageTokenDelay, err = getDuration("PAGE_TOKEN_DELAY", 2*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.FirstPageTimeout, err = getDuration("FIRST_PAGE_TIMEOUT", 15*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.AggregationTimeout, err = getDuration("AGGREGATION_TIMEOUT", 2*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", 2*time.Hour); err != nil {
		return Config{}, err
	}

	switch cfg.PlacesProvider {
	case "google":
		if cfg.GoogleAPIKey == "" {
			return Config{}, fmt.Errorf("load config: GOOGLE_API_KEY is required when PLACES_PROVIDER=google")
		}
	case "fake":
	default:
		return Config{}, fmt.Errorf("load config: unknown PLACES_PROVIDER %q", cfg.PlacesProvider)
	}

	switch cfg.SessionStore {
	case "memory", "redis":
	default:
		return Config{}, fmt.Errorf("load config: unknown SESSION_STORE %q", cfg.SessionStore)
	}

	if cfg.SearchRadiusM <= 0 || cfg.SearchRadiusM > 50000 {
		return Config{}, fmt.Errorf("load config: SEARCH_RADIUS_M must be between 1 and 50000, got %d", cfg.SearchRadiusM)
	}

	return cfg, nil
}

func getInt(key string, fallback int) (int, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("load config: parse %s=%q: %w", key, raw, err)
	}
	return v, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("load config: parse %s=%q: %w", key, raw, err)
	}
	return v, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("load config: parse %s=%q: %w", key, raw, err)
	}
	return v, nil
}
