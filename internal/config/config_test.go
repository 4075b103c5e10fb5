package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Greater(t, cfg.Stream.EvictRadius, cfg.Stream.LoadRadius)
	assert.Positive(t, cfg.Physics.TickRate)
	assert.Positive(t, cfg.Player.Reach)
	assert.Positive(t, cfg.Window.Width)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	t.Setenv("MINECRUST_CONFIG", "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	data := []byte("world:\n  seed: 99\nstream:\n  load_radius: 3\n  evict_radius: 5\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(99), cfg.World.Seed)
	assert.Equal(t, 3, cfg.Stream.LoadRadius)
	assert.Equal(t, 5, cfg.Stream.EvictRadius)
	// Untouched sections keep their defaults.
	assert.Equal(t, Default().Player, cfg.Player)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("world: ["), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.yml")
	require.NoError(t, os.WriteFile(path, []byte("world:\n  seed: 7\n"), 0o644))
	t.Setenv("MINECRUST_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.World.Seed)
}
