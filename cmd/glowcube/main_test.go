package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/glowcube/glowcube"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "glowcube dev\n", out)
}

func TestConfigCommandAppliesFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glowcube.toml")
	require.NoError(t, os.WriteFile(path, []byte("[window]\nwidth = 640\n[scene]\nseed = 3\n"), 0o600))

	out, err := runCommand(t, "config", "--config", path, "--seed", "42", "--vsync=false")
	require.NoError(t, err)

	var cfg glowcube.Config
	require.NoError(t, toml.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, int64(42), cfg.Scene.Seed)
	assert.False(t, cfg.Render.VSync)
}

func TestConfigCommandFlagsRepairFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glowcube.toml")
	require.NoError(t, os.WriteFile(path, []byte("[window]\nwidth = 0\n"), 0o600))

	_, err := runCommand(t, "config", "--config", path)
	assert.ErrorContains(t, err, "window size")

	out, err := runCommand(t, "config", "--config", path, "--width=800", "--max-fps=30")
	require.NoError(t, err)

	var cfg glowcube.Config
	require.NoError(t, toml.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, float64(30), cfg.Render.MaxFPS)
}

func TestConfigCommandRejectsInvalidFlags(t *testing.T) {
	_, err := runCommand(t, "config", "--width=-5")
	assert.Error(t, err)
}
