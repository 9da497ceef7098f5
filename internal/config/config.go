package config

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable consulted when Load gets no path.
const EnvConfigPath = "BLOCKWORLD_CONFIG"

// EnvMetricsAddr overrides metrics.addr when set.
const EnvMetricsAddr = "BLOCKWORLD_METRICS_ADDR"

// Radius limits in chunk columns
const (
	MinRadius = 1
	MaxRadius = 16
)

// Config is the root of the YAML configuration.
type Config struct {
	World   WorldSettings   `yaml:"world"`
	Terrain TerrainSettings `yaml:"terrain"`
	Player  PlayerSettings  `yaml:"player"`
	Render  RenderSettings  `yaml:"render"`
	Metrics MetricsSettings `yaml:"metrics"`
	Log     LogSettings     `yaml:"log"`
}

// WorldSettings controls streaming and mesh rebuild scheduling.
type WorldSettings struct {
	// Radius is the streaming ring radius in columns (Chebyshev distance).
	Radius int `yaml:"radius"`
	// RebuildBudget caps chunk mesh rebuilds per frame.
	RebuildBudget int `yaml:"rebuild_budget"`
	// EvictionCacheLimit bounds the unloaded-column cache; 0 keeps every column.
	EvictionCacheLimit int  `yaml:"eviction_cache_limit"`
	FollowPlayer       bool `yaml:"follow_player"`
	DebugOutlines      bool `yaml:"debug_outlines"`
	// MeshWorkers meshes the initial area in parallel; 0 uses every CPU.
	MeshWorkers int `yaml:"mesh_workers"`
}

// PlayerSettings holds movement constants in world units (one block is 16).
type PlayerSettings struct {
	Gravity          float32 `yaml:"gravity"`
	TerminalVelocity float32 `yaml:"terminal_velocity"`
	JumpVelocity     float32 `yaml:"jump_velocity"`
	WalkSpeed        float32 `yaml:"walk_speed"`
	FlySpeed         float32 `yaml:"fly_speed"`
	MouseSensitivity float32 `yaml:"mouse_sensitivity"`
	// Raycast is "sampled" or "dda".
	Raycast string `yaml:"raycast"`
}

// RenderSettings holds window and renderer options.
type RenderSettings struct {
	Width           int     `yaml:"width"`
	Height          int     `yaml:"height"`
	FOV             float32 `yaml:"fov"`
	VSync           bool    `yaml:"vsync"`
	// FPSLimit caps the frame rate when vsync is off; 0 is uncapped.
	FPSLimit        int     `yaml:"fps_limit"`
	BackFaceCulling bool    `yaml:"back_face_culling"`
	// AtlasPath optionally points to a PNG atlas; empty builds one from fill colors.
	AtlasPath string `yaml:"atlas_path"`
}

// MetricsSettings controls the Prometheus endpoint and the periodic stats line.
type MetricsSettings struct {
	Addr          string        `yaml:"addr"`
	StatsInterval time.Duration `yaml:"stats_interval"`
}

// LogSettings selects the minimum log level.
type LogSettings struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		World: WorldSettings{
			Radius:        3,
			RebuildBudget: 1,
			FollowPlayer:  true,
			MeshWorkers:   runtime.NumCPU(),
		},
		Terrain: DefaultTerrain(),
		Player: PlayerSettings{
			Gravity:          400,
			TerminalVelocity: 800,
			JumpVelocity:     130,
			WalkSpeed:        70,
			FlySpeed:         140,
			MouseSensitivity: 0.003,
			Raycast:          RaycastSampled,
		},
		Render: RenderSettings{
			Width:  1280,
			Height: 720,
			FOV:    70,
			VSync:  true,
		},
		Metrics: MetricsSettings{
			StatsInterval: 10 * time.Second,
		},
		Log: LogSettings{Level: "info"},
	}
}

// Ray cast modes
const (
	RaycastSampled = "sampled"
	RaycastDDA     = "dda"
)

// Load reads a YAML file over the defaults. An empty path falls back to
// $BLOCKWORLD_CONFIG, and to the defaults alone when that is unset too.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if addr := os.Getenv(EnvMetricsAddr); addr != "" {
		cfg.Metrics.Addr = addr
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate clamps numeric settings into range and rejects unknown modes.
func (c *Config) Validate() error {
	c.World.Radius = ClampRadius(c.World.Radius)
	if c.World.RebuildBudget < 1 {
		c.World.RebuildBudget = 1
	}
	if c.World.MeshWorkers <= 0 {
		c.World.MeshWorkers = runtime.NumCPU()
	}
	if c.World.EvictionCacheLimit < 0 {
		c.World.EvictionCacheLimit = 0
	}
	if err := c.Terrain.validate(); err != nil {
		return err
	}
	switch c.Player.Raycast {
	case "":
		c.Player.Raycast = RaycastSampled
	case RaycastSampled, RaycastDDA:
	default:
		return fmt.Errorf("player.raycast: unknown mode %q", c.Player.Raycast)
	}
	if c.Player.TerminalVelocity <= 0 {
		c.Player.TerminalVelocity = Default().Player.TerminalVelocity
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		c.Render.Width, c.Render.Height = 1280, 720
	}
	if c.Render.FPSLimit < 0 {
		c.Render.FPSLimit = 0
	}
	if c.Render.FOV < 30 || c.Render.FOV > 120 {
		c.Render.FOV = 70
	}
	return nil
}

// ClampRadius bounds a streaming radius to [MinRadius, MaxRadius].
func ClampRadius(r int) int {
	return min(max(r, MinRadius), MaxRadius)
}
