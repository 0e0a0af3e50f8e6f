package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/scotch/internal/logging"
)

func TestLoadDefaultValues(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "scotch.yaml")
	err := os.WriteFile(configFile, []byte("log:\n  level: info\n"), 0644)
	require.NoError(t, err)

	cfg, err := Load(configFile)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Context.Workers)
	assert.False(t, cfg.Context.SeedSet)
	assert.False(t, cfg.Context.Deterministic)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadCustomValues(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "scotch.yaml")
	content := `
context:
  workers: 4
  seed: 42
  seed_set: true
  deterministic: true
log:
  level: debug
  format: json
profiles:
  fast:
    strategy: "m{vert=100,low=h{pass=2},asc=f{move=10}}"
    description: "quick coarsen-only profile"
`
	err := os.WriteFile(configFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := Load(configFile)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Context.Workers)
	assert.Equal(t, uint64(42), cfg.Context.Seed)
	assert.True(t, cfg.Context.SeedSet)
	assert.True(t, cfg.Context.Deterministic)
	assert.Equal(t, logging.LevelDebug, cfg.Log.LogLevel())
	require.Contains(t, cfg.Profiles, "fast")
	assert.Contains(t, cfg.Profiles["fast"].Strategy, "vert=100")
}

func TestLoadFromReaderParsesYAML(t *testing.T) {
	cfg, err := LoadFromReader("yaml", []byte("context:\n  workers: 2\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Context.Workers)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(filepath.Join(dir, "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLogLevelDefaultsToInfoOnUnknownValue(t *testing.T) {
	lc := LogConfig{Level: "trace"}
	assert.Equal(t, logging.LevelInfo, lc.LogLevel())
}
