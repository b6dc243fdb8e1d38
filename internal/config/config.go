// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Settings holds the runtime configuration for the service. All values come
// from environment variables; sensible defaults cover everything except the
// secrets.
type Settings struct {
	Port        int
	DatabaseURL string

	// GeminiAPIKey enables the LLM-backed endpoints. When empty, cover
	// letter generation and resume parsing return 503 rather than failing
	// at startup.
	GeminiAPIKey string

	// MaxResumePages caps rendered PDF length.
	MaxResumePages int

	// ResponseCacheTTL bounds how long compiled resumes and cover letters
	// are served from cache.
	ResponseCacheTTL time.Duration

	// AllowedOrigin is the CORS origin; "*" in development.
	AllowedOrigin string
}

// NewSettings reads configuration from the environment.
func NewSettings() (*Settings, error) {
	s := &Settings{
		Port:             8080,
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		MaxResumePages:   1,
		ResponseCacheTTL: 5 * time.Minute,
		AllowedOrigin:    "*",
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %v", err)
		}
		s.Port = port
	}

	if v := os.Getenv("MAX_RESUME_PAGES"); v != "" {
		pages, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_RESUME_PAGES: %v", err)
		}
		s.MaxResumePages = pages
	}

	if v := os.Getenv("RESPONSE_CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RESPONSE_CACHE_TTL: %v", err)
		}
		s.ResponseCacheTTL = ttl
	}

	if v := os.Getenv("ALLOWED_ORIGIN"); v != "" {
		s.AllowedOrigin = v
	}

	if err := s.normalize(); err != nil {
		return nil, err
	}
	return s, nil
}

// normalize validates the configuration.
func (s *Settings) normalize() error {
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", s.Port)
	}
	if s.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required but not set")
	}
	if s.MaxResumePages < 1 {
		return fmt.Errorf("MAX_RESUME_PAGES must be at least 1, got: %d", s.MaxResumePages)
	}
	if s.ResponseCacheTTL < 0 {
		return fmt.Errorf("RESPONSE_CACHE_TTL must not be negative")
	}
	return nil
}
