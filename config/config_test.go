package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, "8080", c.HTTPPort)
	assert.Equal(t, "en", c.TranscriptLanguage)
	assert.Equal(t, 30*time.Second, c.RequestTimeout)
	assert.False(t, c.KeyConfigured())
}

func TestLoadFileTOML(t *testing.T) {
	path := writeFile(t, "ytmcp.toml", `
youtube_api_key = "file-key"
port = "9090"
proxies = ["http://10.0.0.1:3128", "http://10.0.0.2:3128"]
rate_burst = 7
`)
	c := DefaultConfig()
	require.NoError(t, c.LoadFile(path))

	assert.Equal(t, "file-key", c.YouTubeAPIKey)
	assert.Equal(t, "9090", c.HTTPPort)
	assert.Equal(t, 7, c.RateBurst)
	assert.Len(t, c.Proxies, 2)
	// untouched keys keep defaults
	assert.Equal(t, "en", c.TranscriptLanguage)
}

func TestLoadFileYAML(t *testing.T) {
	path := writeFile(t, "ytmcp.yaml", `
youtube_api_key: yaml-key
request_timeout: 5s
log_format: json
`)
	c := DefaultConfig()
	require.NoError(t, c.LoadFile(path))

	assert.Equal(t, "yaml-key", c.YouTubeAPIKey)
	assert.Equal(t, 5*time.Second, c.RequestTimeout)
	assert.Equal(t, "json", c.LogFormat)
}

func TestLoadFileUnsupported(t *testing.T) {
	path := writeFile(t, "ytmcp.ini", "x=1")
	err := DefaultConfig().LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config format")
}

func TestLoadFromEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "ytmcp.toml", `youtube_api_key = "file-key"`)
	c := DefaultConfig()
	require.NoError(t, c.LoadFile(path))

	t.Setenv("YOUTUBE_API_KEY", "env-key")
	t.Setenv("PORT", "7000")
	t.Setenv("YTMCP_PROXIES", " http://a:1 , ,http://b:2")
	t.Setenv("YTMCP_RESPECT_ROBOTS", "true")
	t.Setenv("YTMCP_RATE_PER_SECOND", "not-a-number")
	c.LoadFromEnv()

	assert.Equal(t, "env-key", c.YouTubeAPIKey)
	assert.Equal(t, "7000", c.HTTPPort)
	assert.Equal(t, []string{"http://a:1", "http://b:2"}, c.Proxies)
	assert.True(t, c.RespectRobots)
	assert.Equal(t, 5.0, c.RatePerSecond, "invalid numbers are ignored")
	assert.True(t, c.KeyConfigured())
}
