package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Sample ID", cfg.Tidy.SampleColumn)
	assert.Equal(t, []string{"buffer", "blank"}, cfg.Tidy.BufferNames)
	assert.True(t, cfg.Tidy.DropBuffers)
	assert.False(t, cfg.Tidy.DropMalformed)
	assert.Equal(t, 800, cfg.Plot.Width)
	assert.Equal(t, 500, cfg.Plot.Height)
	assert.Equal(t, "png", cfg.Plot.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
tidy:
  sample_column: Name
  buffer_names: [pbs]
  drop_malformed: true
plot:
  width: 1200
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Name", cfg.Tidy.SampleColumn)
	assert.Equal(t, []string{"pbs"}, cfg.Tidy.BufferNames)
	assert.True(t, cfg.Tidy.DropMalformed)
	assert.Equal(t, 1200, cfg.Plot.Width)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Defaults still apply for unset values
	assert.Equal(t, 500, cfg.Plot.Height)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
plot:
  format: png
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("WRANGLE_PLOT_FORMAT", "svg")
	t.Setenv("WRANGLE_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "svg", cfg.Plot.Format)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chdirTemp(t)

	t.Setenv("WRANGLE_PLOT_WIDTH", "1024")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1024, cfg.Plot.Width)
}

func TestLoadBadYAML(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(":\n:::"), 0644))

	_, err := Load()
	assert.Error(t, err)
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerBadLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "chatty", Format: "console"})
	assert.Error(t, err)
}
