package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvDataset, EnvTheme, EnvLogLevel, EnvWebPort} {
		t.Setenv(k, "")
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), *cfg)
}

func TestLoadMergesWithDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"ui":{"theme":"dark"},"dataset":{"source":"https://example.com/in.geojson"}}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.Equal(t, "https://example.com/in.geojson", cfg.Dataset.Source)
	assert.Equal(t, 60, cfg.Dataset.CacheTTLMinutes)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadRejectsBadJSON(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UI.Theme = "sepia"
	cfg.Dataset.TimeoutSeconds = 0
	cfg.Web.Port = 70000
	cfg.Logging.Level = "loud"

	err := Validate(&cfg)
	require.Error(t, err)
	for _, frag := range []string{"ui.theme", "dataset.timeout_seconds", "web.port", "logging.level"} {
		assert.Contains(t, err.Error(), frag)
	}
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDataset, "/tmp/states.geojson")
	t.Setenv(EnvTheme, "dark")
	t.Setenv(EnvWebPort, "9000")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/states.geojson", cfg.Dataset.Source)
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.Equal(t, 9000, cfg.Web.Port)

	t.Setenv(EnvWebPort, "nine")
	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv(EnvLogLevel)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(EnvLogLevel+"=debug\n"), 0o644))

	require.NoError(t, LoadDotEnv(path))
	t.Cleanup(func() { os.Unsetenv(EnvLogLevel) })
	assert.Equal(t, "debug", os.Getenv(EnvLogLevel))

	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")))
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := DefaultConfig()
	cfg.Web.Port = 9100
	require.NoError(t, Save(&cfg, path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, got.Web.Port)
}
