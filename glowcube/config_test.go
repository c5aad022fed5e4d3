package glowcube

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "glowcube.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 2000, cfg.Scene.StarCount)
	assert.Equal(t, 500, cfg.Scene.GalaxyPoints)
	assert.Equal(t, 4, cfg.Render.MSAA)
	assert.True(t, cfg.Render.VSync)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[window]
width = 800

[scene]
seed = 99

[debug]
profile = true
profile_interval = 2.5
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, int64(99), cfg.Scene.Seed)
	assert.True(t, cfg.Debug.Profile)
	assert.Equal(t, "2.5s", cfg.ProfileEvery().String())
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `
[render]
bloom = true
`)
	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "unknown config keys")
}

func TestLoadConfigLeavesValidationToCaller(t *testing.T) {
	path := writeConfig(t, `
[window]
width = 0

[render]
msaa = 3
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.ErrorContains(t, cfg.Validate(), "window size")

	cfg.Window.Width = 800
	assert.ErrorContains(t, cfg.Validate(), "msaa")

	cfg.Render.MSAA = 4
	cfg.Render.MaxFPS = -1
	assert.ErrorContains(t, cfg.Validate(), "max_fps")

	cfg.Render.MaxFPS = 60
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfigEncodeRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scene.Seed = 5
	data, err := cfg.Encode()
	require.NoError(t, err)

	var decoded Config
	require.NoError(t, decodeConfig(data, &decoded))
	assert.Equal(t, cfg, decoded)
}
