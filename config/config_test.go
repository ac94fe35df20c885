package config_test

import (
	"docs-portal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfig(t, "api:\n  base_url: \"https://api.example.com/api/\"\n")

	cfg, err := config.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, ":8080", cfg.ServerAddr)
	assert.Equal(t, "rpg_auth_token", cfg.Session.TokenCookie)
	assert.Equal(t, "rpg_auth_token_session", cfg.Session.SessionCookie)
	assert.Equal(t, int64(config.DefaultMaxUploadBytes), cfg.Upload.MaxSizeBytes)
	assert.Equal(t, config.DefaultAllowedTypes, cfg.Upload.AllowedTypes)
	assert.Equal(t, config.DefaultMinQueryLength, cfg.Search.MinLength)
	assert.Equal(t, "/verify-email", cfg.Pages.Verify)

	assert.Equal(t, 10*time.Second, cfg.APITimeout())
	assert.Equal(t, 30*time.Minute, cfg.UploadTimeout())
	assert.Equal(t, 7*24*time.Hour, cfg.DurableTTL())
	assert.Equal(t, time.Duration(0), cfg.ProfileCacheTTL())
	assert.Equal(t, config.DefaultDebounce, cfg.SearchDebounce())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "api:\n  base_url: \"https://api.example.com\"\nsession:\n  profile_cache_ttl: \"10s\"\n")
	t.Setenv("PORTAL_API_BASE_URL", "https://other.example.com")
	t.Setenv("PORTAL_PROFILE_CACHE_TTL", "45s")
	t.Setenv("PORTAL_SESSION_SECURE", "true")

	cfg, err := config.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "https://other.example.com", cfg.API.BaseURL)
	assert.Equal(t, 45*time.Second, cfg.ProfileCacheTTL())
	assert.True(t, cfg.Session.Secure)
}

func TestLoadConfig_MissingFileUsesEnv(t *testing.T) {
	t.Setenv("PORTAL_API_BASE_URL", "https://api.example.com")

	cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))

	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.API.BaseURL)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("нет base_url", func(t *testing.T) {
		_, err := config.LoadConfig(writeConfig(t, "serverAddr: \":9000\"\n"))
		assert.Error(t, err)
	})

	t.Run("неверная длительность", func(t *testing.T) {
		_, err := config.LoadConfig(writeConfig(t, "api:\n  base_url: \"https://x\"\n  timeout: \"soon\"\n"))
		assert.ErrorContains(t, err, "api.timeout")
	})

	t.Run("битый yaml", func(t *testing.T) {
		_, err := config.LoadConfig(writeConfig(t, "api: [\n"))
		assert.Error(t, err)
	})
}

func TestSetupServer(t *testing.T) {
	server, router := config.SetupServer(":0")

	assert.Equal(t, ":0", server.Addr)
	assert.Same(t, router, server.Handler)
}
