package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXDGPaths(t *testing.T) {
	t.Run("explicit XDG variables win", func(t *testing.T) {
		t.Setenv("XDG_DATA_HOME", "/tmp/data")
		t.Setenv("XDG_CONFIG_HOME", "/tmp/config")

		assert.Equal(t, "/tmp/data", GetXDGDataHome())
		assert.Equal(t, filepath.Join("/tmp/data", "lantern", "index.db"), GetIndexPath())
		assert.Equal(t, filepath.Join("/tmp/data", "lantern", "decks"), GetDeckLibraryPath())
		assert.Equal(t, filepath.Join("/tmp/config", "lantern", "config.toml"), GetConfigFilePath())
	})

	t.Run("falls back to home defaults", func(t *testing.T) {
		t.Setenv("XDG_DATA_HOME", "")
		home, err := os.UserHomeDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".local", "share"), GetXDGDataHome())
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("creates a default config on first load", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.False(t, cfg.CatalogConfigured())
		assert.FileExists(t, GetConfigFilePath())
	})

	t.Run("round trips through save", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())

		cfg := &Config{
			CardsFile:  "/data/cards.json",
			PacksFile:  "/data/packs.json",
			CyclesFile: "/data/cycles.json",
		}
		require.NoError(t, cfg.Save())

		loaded, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, cfg, loaded)
		assert.True(t, loaded.CatalogConfigured())
	})
}

func TestCatalogConfigured(t *testing.T) {
	assert.False(t, (&Config{}).CatalogConfigured())
	assert.False(t, (&Config{CardsFile: "a", PacksFile: "b"}).CatalogConfigured())
	assert.True(t, (&Config{CardsFile: "a", PacksFile: "b", CyclesFile: "c"}).CatalogConfigured())
}
