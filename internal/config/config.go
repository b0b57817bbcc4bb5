package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backends selectable with STORE
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	AppName string
	Port    string
	Store   string

	DatabaseURL string

	// Redis - optional, caches geocoded addresses when set
	RedisURL        string
	AddressCacheTTL time.Duration
	GoogleAPIKey    string
	GeocodeURL      string
	GeocodeRPS      float64

	CORSOrigins     string
	RateLimitMax    int
	RateLimitWindow time.Duration
}

func Load() Config {
	return Config{
		AppName:         getenv("APP_NAME", "Favornet API v1.0"),
		Port:            getenv("PORT", "8080"),
		Store:           strings.ToLower(getenv("STORE", StorePostgres)),
		DatabaseURL:     getenv("DATABASE_URL", ""),
		RedisURL:        getenv("REDIS_URL", ""),
		AddressCacheTTL: time.Duration(getenvInt("ADDRESS_CACHE_TTL_SECONDS", 86400)) * time.Second,
		GoogleAPIKey:    getenv("GOOGLE_API_KEY", ""),
		GeocodeURL:      getenv("GEOCODE_URL", ""),
		GeocodeRPS:      getenvFloat("GEOCODE_RPS", 10),
		CORSOrigins:     getenv("CORS_ORIGINS", "http://localhost:3000"),
		RateLimitMax:    getenvInt("RATE_LIMIT_MAX", 100),
		RateLimitWindow: time.Duration(getenvInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,
	}
}

// GeocodingEnabled reports whether addresses can be looked up at all
func (c Config) GeocodingEnabled() bool {
	return c.GoogleAPIKey != ""
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
