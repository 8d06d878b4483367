package config

import (
	"os"
	"path/filepath"
	"testing"

	"chartspec/internal/theme"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chartspec.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
chart:
  color_scheme: dark
  strict: true
storage:
  path: /tmp/history.db
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, theme.Dark, cfg.Chart.ColorScheme)
	assert.True(t, cfg.Chart.Strict)
	assert.Equal(t, "en-US", cfg.Chart.Locale)
	assert.Equal(t, "/tmp/history.db", cfg.Storage.Path)
	assert.Equal(t, 64, cfg.Cache.Size)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("CHARTSPEC_LOCALE", "fr-FR")
	t.Setenv("CHARTSPEC_DB", "other.db")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "fr-FR", cfg.Chart.Locale)
	assert.Equal(t, "other.db", cfg.Storage.Path)
	assert.Equal(t, theme.Light, cfg.Chart.ColorScheme)
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chart: [\n"), 0o644))
	_, err := LoadConfig(path)
	assert.Error(t, err)
}
