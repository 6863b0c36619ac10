package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	// YouTube Data API
	YouTubeAPIKey      string        `toml:"youtube_api_key" yaml:"youtube_api_key"`
	YouTubeEndpoint    string        `toml:"youtube_endpoint" yaml:"youtube_endpoint"` // empty = Google default
	RequestTimeout     time.Duration `toml:"request_timeout" yaml:"request_timeout"`
	TranscriptLanguage string        `toml:"transcript_language" yaml:"transcript_language"`
	Headless           bool          `toml:"headless" yaml:"headless"` // enable rod fallback for transcripts

	// Rate limiting (outbound)
	RatePerSecond float64 `toml:"rate_per_second" yaml:"rate_per_second"`
	RateBurst     int     `toml:"rate_burst" yaml:"rate_burst"`

	// Caption scraping
	DelayProfile  string   `toml:"delay_profile" yaml:"delay_profile"` // "none", "normal", "cautious"
	RespectRobots bool     `toml:"respect_robots" yaml:"respect_robots"`
	Proxies       []string `toml:"proxies" yaml:"proxies"`

	// HTTP server
	HTTPPort string `toml:"port" yaml:"port"`
	APIKey   string `toml:"api_key" yaml:"api_key"` // bearer token for /mcp

	// Logging
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"` // "text" or "json"
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		RequestTimeout:     30 * time.Second,
		TranscriptLanguage: "en",
		RatePerSecond:      5.0,
		RateBurst:          5,
		DelayProfile:       "none",
		HTTPPort:           "8080",
		LogLevel:           "info",
		LogFormat:          "text",
	}
}

// LoadFile overlays values from a TOML or YAML file, chosen by extension.
// Keys missing from the file keep their current value.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
	return nil
}

// LoadFromEnv loads .env file (if present) then overrides config from environment variables.
func (c *Config) LoadFromEnv() {
	// Auto-load .env file; silently ignored if missing
	_ = godotenv.Load()

	if v := os.Getenv("YOUTUBE_API_KEY"); v != "" {
		c.YouTubeAPIKey = v
	}
	if v := os.Getenv("YTMCP_YOUTUBE_ENDPOINT"); v != "" {
		c.YouTubeEndpoint = v
	}
	if v := os.Getenv("YTMCP_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.RequestTimeout = d
		}
	}
	if v := os.Getenv("YTMCP_TRANSCRIPT_LANGUAGE"); v != "" {
		c.TranscriptLanguage = v
	}
	if v := os.Getenv("YTMCP_HEADLESS"); v != "" {
		c.Headless = v == "true" || v == "1"
	}
	if v := os.Getenv("YTMCP_RATE_PER_SECOND"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.RatePerSecond = f
		}
	}
	if v := os.Getenv("YTMCP_RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RateBurst = n
		}
	}
	if v := os.Getenv("YTMCP_DELAY_PROFILE"); v != "" {
		c.DelayProfile = v
	}
	if v := os.Getenv("YTMCP_RESPECT_ROBOTS"); v != "" {
		c.RespectRobots = v == "true" || v == "1"
	}
	if v := os.Getenv("YTMCP_PROXIES"); v != "" {
		c.Proxies = splitList(v)
	}
	if v := os.Getenv("PORT"); v != "" {
		c.HTTPPort = v
	}
	if v := os.Getenv("YTMCP_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("YTMCP_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("YTMCP_LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
}

// KeyConfigured reports whether a YouTube API key is present.
func (c *Config) KeyConfigured() bool {
	return strings.TrimSpace(c.YouTubeAPIKey) != ""
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
