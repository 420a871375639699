package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, "pixmap.db", config.Database)
	assert.Equal(t, 10, config.Workers)
	assert.Equal(t, 64, config.Preview.Size)
	assert.Equal(t, 0, config.Render.Width)
	assert.NoError(t, config.Validate())
}

func TestLoadConfig(t *testing.T) {
	t.Run("load existing config", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("database: /tmp/images.db\nworkers: 4\nrender:\n  width: 80\n"), 0600))

		config, err := LoadConfig(configPath)
		require.NoError(t, err)

		assert.Equal(t, "/tmp/images.db", config.Database)
		assert.Equal(t, 4, config.Workers)
		assert.Equal(t, 80, config.Render.Width)
		assert.Equal(t, 64, config.Preview.Size, "default kept")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("workers: [1, 2\n"), 0600))

		_, err := LoadConfig(configPath)
		assert.Error(t, err)
	})

	t.Run("invalid values", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("workers: 0\n"), 0600))

		_, err := LoadConfig(configPath)
		assert.ErrorContains(t, err, "workers")
	})
}

func TestSaveConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "dir", "config.yaml")

	config := DefaultConfig()
	config.Workers = 3
	require.NoError(t, SaveConfig(config, configPath))
	assert.True(t, Exists(configPath))

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, yaml.Unmarshal(data, &raw))
	assert.Equal(t, 3, raw["workers"])

	loaded, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, config, loaded)
}

func TestExists(t *testing.T) {
	assert.False(t, Exists(filepath.Join(t.TempDir(), "nope.yaml")))
	assert.NotEmpty(t, DefaultConfigPath())
}
