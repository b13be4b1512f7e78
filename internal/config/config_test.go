package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MEBEL_CONFIG", "")
	t.Setenv("PORT", "")
	t.Setenv("APP_ENV", "")
	t.Chdir(t.TempDir())

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", c.HTTP.Port)
	assert.Equal(t, "http://localhost:5000/api", c.API.BaseURL)
	assert.Equal(t, 10*time.Second, c.API.Timeout)
	assert.Equal(t, 30*time.Minute, c.Forms.TTL)
	assert.Equal(t, uint32(5), c.Breaker.Failures)
	assert.True(t, c.Metrics.Enabled)
	assert.True(t, c.IsDev())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "mebel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  env: production
api:
  base_url: http://backend:5000/api/
  timeout: 3s
forms:
  ttl: 5m
`), 0o644))
	t.Setenv("MEBEL_CONFIG", path)
	t.Setenv("MEBEL_FORMS_TTL", "1m")
	t.Setenv("PORT", "9090")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", c.App.Env)
	assert.False(t, c.IsDev())
	assert.Equal(t, "http://backend:5000/api", c.API.BaseURL)
	assert.Equal(t, 3*time.Second, c.API.Timeout)
	assert.Equal(t, time.Minute, c.Forms.TTL)
	assert.Equal(t, "9090", c.HTTP.Port)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("MEBEL_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := Load()
	assert.Error(t, err)
}
