// Package config loads application settings from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Config holds everything the binaries need to start.
type Config struct {
	Environment    string
	APIBaseURL     string
	DraftDBPath    string
	HTTPTimeout    time.Duration
	DevstubAddr    string
	DefaultCountry string
}

// Load reads configuration from the environment. A missing .env file is
// not an error; explicit environment variables always win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	timeout, err := getEnvDuration("HTTP_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}

	return &Config{
		Environment:    getEnv("APP_ENV", "development"),
		APIBaseURL:     getEnv("API_BASE_URL", "http://localhost:8080/api"),
		DraftDBPath:    getEnv("DRAFT_DB_PATH", defaultDraftDBPath()),
		HTTPTimeout:    timeout,
		DevstubAddr:    getEnv("DEVSTUB_ADDR", ":8080"),
		DefaultCountry: getEnv("DEFAULT_COUNTRY", "LV"),
	}, nil
}

// IsDevelopment reports whether the app runs in a development environment.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func defaultDraftDBPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "skatuve-drafts.db"
	}
	return dir + string(os.PathSeparator) + "skatuve-drafts.db"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}

	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s", key)
	}
	return d, nil
}
