package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blockworld.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaultsWithoutPath(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	t.Setenv(EnvMetricsAddr, "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesAndKeepsDefaults(t *testing.T) {
	t.Setenv(EnvMetricsAddr, "")
	path := writeConfig(t, `
world:
  radius: 5
  eviction_cache_limit: 64
terrain:
  seed: 42
  noise: simplex
player:
  raycast: dda
metrics:
  addr: "127.0.0.1:9100"
  stats_interval: 30s
log:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.World.Radius)
	assert.Equal(t, 64, cfg.World.EvictionCacheLimit)
	assert.Equal(t, 1, cfg.World.RebuildBudget)
	assert.True(t, cfg.World.FollowPlayer)
	assert.Equal(t, int64(42), cfg.Terrain.Seed)
	assert.Equal(t, NoiseSimplex, cfg.Terrain.Noise)
	assert.Equal(t, DefaultTerrain().SeaLevel, cfg.Terrain.SeaLevel)
	assert.Equal(t, RaycastDDA, cfg.Player.Raycast)
	assert.Equal(t, "127.0.0.1:9100", cfg.Metrics.Addr)
	assert.Equal(t, 30*time.Second, cfg.Metrics.StatsInterval)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadFromEnvironment(t *testing.T) {
	path := writeConfig(t, "world:\n  radius: 2\n")
	t.Setenv(EnvConfigPath, path)
	t.Setenv(EnvMetricsAddr, ":2112")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.World.Radius)
	assert.Equal(t, ":2112", cfg.Metrics.Addr)
}

func TestValidateClamps(t *testing.T) {
	cfg := Default()
	cfg.World.Radius = 99
	cfg.World.RebuildBudget = 0
	cfg.World.EvictionCacheLimit = -3
	cfg.Terrain.SeaLevel = 500
	cfg.Render.FOV = 5
	require.NoError(t, cfg.Validate())

	assert.Equal(t, MaxRadius, cfg.World.Radius)
	assert.Equal(t, 1, cfg.World.RebuildBudget)
	assert.Equal(t, 0, cfg.World.EvictionCacheLimit)
	assert.Equal(t, maxSeaLevel, cfg.Terrain.SeaLevel)
	assert.Equal(t, float32(70), cfg.Render.FOV)
	assert.Equal(t, MinRadius, ClampRadius(-4))
}

func TestValidateRejectsUnknownModes(t *testing.T) {
	cfg := Default()
	cfg.Player.Raycast = "analytic"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Terrain.Noise = "value"
	assert.Error(t, cfg.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateDefaultsMeshWorkers(t *testing.T) {
	cfg := Default()
	cfg.World.MeshWorkers = -3
	require.NoError(t, cfg.Validate())
	assert.Positive(t, cfg.World.MeshWorkers)
}
