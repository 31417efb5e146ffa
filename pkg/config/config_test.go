package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"segysak/pkg/segy"
)

func TestLoadMissingConfigReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "segysak.yaml")
	cfg := DefaultConfig()
	cfg.Headers.Preset = "petrel_3d"
	cfg.Processing.Workers = 3
	cfg.Output.JPEGQuality = 60

	require.NoError(t, SaveConfig(cfg, path))
	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestPartialConfigKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("processing:\n  workers: 2\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Processing.Workers)
	assert.Equal(t, 90, cfg.Output.JPEGQuality)
	assert.Equal(t, "standard_3d", cfg.Headers.Preset)
}

func TestInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("processing: [1, 2"), 0644))
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestByteLocs(t *testing.T) {
	cfg := DefaultConfig()
	locs, err := cfg.ByteLocs()
	require.NoError(t, err)
	assert.Equal(t, segy.Inline3D, locs.Iline)
	assert.Equal(t, segy.CDPY, locs.CDPY)

	cfg.Headers.Iline = 9
	locs, err = cfg.ByteLocs()
	require.NoError(t, err)
	assert.Equal(t, segy.FieldRecord, locs.Iline)
	assert.Equal(t, segy.Crossline3D, locs.Xline)

	cfg.Headers.Xline = 2
	_, err = cfg.ByteLocs()
	assert.Error(t, err, "byte 2 falls inside a field")

	cfg.Headers.Preset = "unknown"
	_, err = cfg.ByteLocs()
	assert.Error(t, err)
}

func TestCreateDefaultConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default.yaml")
	require.NoError(t, CreateDefaultConfigFile(path))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}
