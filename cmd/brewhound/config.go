package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/joho/godotenv"
)

// Config contains application-wide settings sourced from the environment.
type Config struct {
	Addr           string
	DirectoryURL   string
	AllowedOrigins []string
	DebounceQuiet  time.Duration
	LogLevel       string
	LogFormat      string
}

// Validate checks the settings that would otherwise fail at first use.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.DirectoryURL, validation.Required, is.URL),
		validation.Field(&c.LogFormat, validation.In("json", "text")),
	)
}

func loadConfig() (Config, error) {
	_ = godotenv.Load("config/local.env")

	addr := fmt.Sprintf(":%s", envOrDefault("PORT", "8080"))

	quietMs, err := strconv.Atoi(envOrDefault("SUGGEST_DEBOUNCE_MS", "300"))
	if err != nil || quietMs < 0 {
		return Config{}, fmt.Errorf("invalid SUGGEST_DEBOUNCE_MS: %q", os.Getenv("SUGGEST_DEBOUNCE_MS"))
	}

	cfg := Config{
		Addr:           addr,
		DirectoryURL:   envOrDefault("BREWERY_API_URL", "https://api.openbrewerydb.org/v1/breweries"),
		AllowedOrigins: parseAllowedOrigins(envOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
		DebounceQuiet:  time.Duration(quietMs) * time.Millisecond,
		LogLevel:       envOrDefault("LOG_LEVEL", "info"),
		LogFormat:      envOrDefault("LOG_FORMAT", "json"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseAllowedOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	var origins []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
