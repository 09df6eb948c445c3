// Package config loads medium-posts settings from the environment.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultFeedBaseURL is the endpoint publication identifiers are appended to.
const DefaultFeedBaseURL = "https://medium.com/feed/"

// Config holds everything a single ingest run needs.
type Config struct {
	// Publication is the Medium publication or @user handle.
	Publication string `json:"publication"`
	FeedBaseURL string `json:"feed_base_url"`
	// SourceDir is the site source directory documents are written under.
	SourceDir string `json:"source_dir"`
	UserAgent string `json:"user_agent,omitempty"`
}

// Load reads configuration from environment variables and an optional .env file.
// The result is not validated; callers validate right before use.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Publication: strings.TrimSpace(os.Getenv("MEDIUM_PUBLICATION")),
		FeedBaseURL: getEnvOrDefault("MEDIUM_FEED_BASE_URL", DefaultFeedBaseURL),
		SourceDir:   getEnvOrDefault("SITE_SOURCE", "."),
		UserAgent:   os.Getenv("MEDIUM_USER_AGENT"),
	}
}

// Validate checks that required values are present.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Publication) == "" {
		return &ConfigError{Field: "MEDIUM_PUBLICATION", Message: "publication identifier is required"}
	}
	if c.FeedBaseURL == "" {
		return &ConfigError{Field: "MEDIUM_FEED_BASE_URL", Message: "feed base URL is required"}
	}
	return nil
}

// FeedURL joins the feed base URL and the publication with exactly one slash.
func (c *Config) FeedURL() string {
	return strings.TrimRight(c.FeedBaseURL, "/") + "/" + strings.TrimLeft(c.Publication, "/")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// ConfigError reports a missing or invalid setting.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
