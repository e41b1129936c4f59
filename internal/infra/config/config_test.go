package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/creasty/defaults"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	cfg := Config{
		Spotify: SpotifyConfig{
			ClientID:     "test-client-id",
			ClientSecret: "test-client-secret",
			RefreshToken: "test-refresh-token",
		},
	}
	if err := defaults.Set(&cfg); err != nil {
		panic(err)
	}
	return cfg
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid config",
			mutate: func(*Config) {},
		},
		{
			name:    "missing spotify client id",
			mutate:  func(c *Config) { c.Spotify.ClientID = "" },
			wantErr: true,
		},
		{
			name:    "missing refresh token",
			mutate:  func(c *Config) { c.Spotify.RefreshToken = "" },
			wantErr: true,
		},
		{
			name:    "recent limit above spotify cap",
			mutate:  func(c *Config) { c.Analysis.RecentLimit = 100 },
			wantErr: true,
		},
		{
			name:    "unknown time range",
			mutate:  func(c *Config) { c.Analysis.TimeRange = "all_time" },
			wantErr: true,
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: true,
		},
		{
			name:   "medium term range is allowed",
			mutate: func(c *Config) { c.Analysis.TimeRange = "medium_term" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
spotify:
  client_id: "id"
  client_secret: "secret"
  refresh_token: "token"
analysis:
  top_items_limit: 25
charts:
  theme:
    track_color: "#1db954"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	// Explicit values survive, everything else gets defaults.
	assert.Equal(t, 25, cfg.Analysis.TopItemsLimit)
	assert.Equal(t, 50, cfg.Analysis.RecentLimit)
	assert.Equal(t, "short_term", cfg.Analysis.TimeRange)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 60, cfg.Server.CacheTTLSeconds)
	assert.Equal(t, "exports", cfg.Export.Dir)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "#1db954", cfg.Charts.Theme["track_color"])
}

func TestLoad_ExplicitZeroCacheTTL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  cache_ttl_seconds: 0
spotify:
  client_id: "id"
  client_secret: "secret"
  refresh_token: "token"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	// 0 disables caching and must survive loading; unset fields still default.
	assert.Equal(t, 0, cfg.Server.CacheTTLSeconds)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
spotify:
  client_id: "file-id"
  client_secret: "secret"
  refresh_token: "token"
`), 0o644))

	t.Setenv("SPOTIFY_CLIENT_ID", "env-id")
	t.Setenv("SONIFY_ADDR", ":9999")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-id", cfg.Spotify.ClientID)
	assert.Equal(t, ":9999", cfg.Server.Addr)
}
