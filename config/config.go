package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingDatabaseURL is returned by Get when DATABASE_URL is not set
var ErrMissingDatabaseURL = errors.New("DATABASE_URL is not defined")

const (
	DefaultPort            = 5000
	DefaultGeocoderBaseURL = "https://www.mapquestapi.com/geocoding/v1"
	DefaultGeocoderTimeout = 10 * time.Second
	DefaultDBTimeout       = 10 * time.Second
)

// This function will Load the ENVIRONMENT VARIABLES from .env if GO_ENV variable is not set
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		err := godotenv.Load()
		// a missing .env is fine, the variables may come from the process environment
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}

	return nil
}

type EnvironmentVariable struct {
	GO_ENV       string
	DATABASE_URL string
	DB_TIMEOUT   time.Duration
	PORT         int
	// Geocoder Configuration
	GEOCODER_PROVIDER string
	GEOCODER_API_KEY  string
	GEOCODER_BASE_URL string
	GEOCODER_TIMEOUT  time.Duration
	// Logging
	LOG_LEVEL string
	// CORS
	ALLOWED_ORIGINS string
}

// IsDevelopment reports whether request logging should be enabled
func (e *EnvironmentVariable) IsDevelopment() bool {
	return e.GO_ENV == "development"
}

func Get() (*EnvironmentVariable, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}

	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil || port <= 0 {
		port = DefaultPort
	}

	provider := os.Getenv("GEOCODER_PROVIDER")
	if provider == "" {
		provider = "mapquest"
	}

	baseURL := os.Getenv("GEOCODER_BASE_URL")
	if baseURL == "" {
		baseURL = DefaultGeocoderBaseURL
	}

	envVariables := &EnvironmentVariable{
		GO_ENV:            os.Getenv("GO_ENV"),
		DATABASE_URL:      databaseURL,
		DB_TIMEOUT:        durationOr("DB_TIMEOUT", DefaultDBTimeout),
		PORT:              port,
		GEOCODER_PROVIDER: provider,
		GEOCODER_API_KEY:  os.Getenv("GEOCODER_API_KEY"),
		GEOCODER_BASE_URL: baseURL,
		GEOCODER_TIMEOUT:  durationOr("GEOCODER_TIMEOUT", DefaultGeocoderTimeout),
		LOG_LEVEL:         os.Getenv("LOG_LEVEL"),
		ALLOWED_ORIGINS:   os.Getenv("ALLOWED_ORIGINS"),
	}

	return envVariables, nil
}

// durationOr parses a Go duration string ("5s", "250ms") from the environment
func durationOr(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
