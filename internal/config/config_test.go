package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeepsWidthsApart(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, float32(2), cfg.LiveStyle().Width)
	assert.Equal(t, float32(5), cfg.ReplayStyle().Width)
	assert.Equal(t, color.NRGBA{R: 0x21, G: 0x96, B: 0xf3, A: 0xff}, cfg.StrokeColor())
	assert.False(t, cfg.ReplayOvals)
}

func TestLoadWithoutFile(t *testing.T) {
	t.Setenv(AddrEnv, "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doodle.toml")
	body := `
live_width = 3.0
replay_width = 8.0
color = "#ff0000"
replay_ovals = true
advertise = true
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	t.Setenv(AddrEnv, "127.0.0.1:9999")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, float32(3), cfg.LiveWidth)
	assert.Equal(t, float32(8), cfg.ReplayWidth)
	assert.True(t, cfg.ReplayOvals)
	assert.True(t, cfg.Advertise)
	assert.Equal(t, "127.0.0.1:9999", cfg.Addr)
	assert.Equal(t, color.NRGBA{R: 0xff, A: 0xff}, cfg.StrokeColor())
	assert.Equal(t, 1024, cfg.Width)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doodle.toml")
	require.NoError(t, os.WriteFile(path, []byte("stroke = 4\n"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "unknown config keys")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestClampViewport(t *testing.T) {
	cfg := Default()
	w, h := cfg.ClampViewport(2000000000, 600)
	assert.Equal(t, DefaultMaxViewport, w)
	assert.Equal(t, 600, h)

	cfg.MaxViewport = 0
	cfg.Width = 9000
	assert.ErrorContains(t, cfg.Validate(), "max_viewport")

	cfg.MaxViewport = 4096
	assert.ErrorContains(t, cfg.Validate(), "exceeds max_viewport")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.LiveWidth = 0
	cfg.Height = -1
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "live_width")
	assert.ErrorContains(t, err, "viewport")
}
