// Package config provides configuration loading from YAML files.
package config

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Spotify  SpotifyConfig  `yaml:"spotify"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Charts   ChartsConfig   `yaml:"charts"`
	Export   ExportConfig   `yaml:"export"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig represents HTTP server configuration.
type ServerConfig struct {
	Addr string `yaml:"addr" default:":8080"`
	// CacheTTLSeconds caps how long upstream responses are reused between
	// page views. 0 disables caching.
	CacheTTLSeconds int `yaml:"cache_ttl_seconds" default:"60" validate:"gte=0"`
}

// SpotifyConfig represents Spotify API configuration.
type SpotifyConfig struct {
	ClientID     string `yaml:"client_id" validate:"required"`
	ClientSecret string `yaml:"client_secret" validate:"required"`
	RefreshToken string `yaml:"refresh_token" validate:"required"`
}

// AnalysisConfig controls the batch sizes fed into the analysis core.
type AnalysisConfig struct {
	RecentLimit       int    `yaml:"recent_limit" default:"50" validate:"gte=1,lte=50"`
	TopItemsLimit     int    `yaml:"top_items_limit" default:"10" validate:"gte=1,lte=50"`
	FeatureTrackLimit int    `yaml:"feature_track_limit" default:"50" validate:"gte=1,lte=50"`
	GenreChartLimit   int    `yaml:"genre_chart_limit" default:"10" validate:"gte=1"`
	GenreInsightLimit int    `yaml:"genre_insight_limit" default:"5" validate:"gte=1"`
	PlaylistLimit     int    `yaml:"playlist_limit" default:"20" validate:"gte=1,lte=50"`
	TimeRange         string `yaml:"time_range" default:"short_term" validate:"oneof=short_term medium_term long_term"`
}

// ChartsConfig represents chart rendering configuration.
// Settings are decoded into a chart.Theme by the builder.
type ChartsConfig struct {
	Theme map[string]any `yaml:"theme,omitempty"`
}

// ExportConfig represents CSV export configuration.
type ExportConfig struct {
	Dir string `yaml:"dir" default:"exports"`
}

// LoggingConfig represents logger configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
	Output string `yaml:"output" default:"stdout"`
}

// Load reads, defaults, env-overrides, and validates the configuration.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	// Defaults go on first so an explicit zero in the file is not mistaken
	// for an unset field and clobbered.
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}

	cfg.overrideFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// overrideFromEnv overrides config values with environment variables.
// Credentials usually arrive this way in deployment.
func (c *Config) overrideFromEnv() {
	if v := os.Getenv("SPOTIFY_CLIENT_ID"); v != "" {
		c.Spotify.ClientID = v
	}
	if v := os.Getenv("SPOTIFY_CLIENT_SECRET"); v != "" {
		c.Spotify.ClientSecret = v
	}
	if v := os.Getenv("SPOTIFY_REFRESH_TOKEN"); v != "" {
		c.Spotify.RefreshToken = v
	}
	if v := os.Getenv("SONIFY_ADDR"); v != "" {
		c.Server.Addr = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}
	return nil
}
