package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Crawl.MaxDepth)
	assert.Equal(t, 5, cfg.Crawl.MaxCandidates)
	assert.Equal(t, 3, cfg.Crawl.TopLinks)
	assert.Equal(t, 1500, cfg.Crawl.FetchDelayMS)
	assert.Equal(t, 0.3, cfg.Crawl.MinContentScore)
	assert.Equal(t, 0.2, cfg.Crawl.MinLinkScore)
	assert.Equal(t, 8000, cfg.Extract.MaxContentChars)
	assert.Equal(t, 3, cfg.Extract.MaxRetries)
	assert.Equal(t, 10, cfg.Batch.CheckpointEvery)
	assert.Equal(t, "vendor-scout.db", cfg.Store.Path)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
crawl:
  max_depth: 3
  fetch_delay_ms: 500
extract:
  model: claude-sonnet-4-5-20250929
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Crawl.MaxDepth)
	assert.Equal(t, 500, cfg.Crawl.FetchDelayMS)
	assert.Equal(t, "claude-sonnet-4-5-20250929", cfg.Extract.Model)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Untouched keys keep defaults.
	assert.Equal(t, 5, cfg.Crawl.MaxCandidates)
}

func TestLoadFromEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("VENDORSCOUT_ANTHROPIC_KEY", "sk-test")
	t.Setenv("VENDORSCOUT_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.Anthropic.Key)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestInitLogger(t *testing.T) {
	assert.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))
	assert.Error(t, InitLogger(LogConfig{Level: "nope", Format: "json"}))
}

// chdirTemp runs the test from an empty directory so a developer's local
// config.yaml cannot leak into assertions.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}
