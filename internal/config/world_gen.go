package config

import "fmt"

// Noise sources for the height field
const (
	NoisePerlin  = "perlin"
	NoiseSimplex = "simplex"
)

// the world is 64 blocks tall
const maxSeaLevel = 63

// TerrainSettings holds world generation configuration.
type TerrainSettings struct {
	Seed  int64  `yaml:"seed"`
	Noise string `yaml:"noise"`
	// SeaLevel is a block Y index; water fills up to it.
	SeaLevel   int     `yaml:"sea_level"`
	BaseHeight int     `yaml:"base_height"`
	Amplitude  float64 `yaml:"amplitude"`
	// Scale converts block coordinates to noise space.
	Scale       float64 `yaml:"scale"`
	Octaves     int     `yaml:"octaves"`
	Trees       bool    `yaml:"trees"`
	TreeDensity float64 `yaml:"tree_density"`
}

// DefaultTerrain returns the standard generator settings.
func DefaultTerrain() TerrainSettings {
	return TerrainSettings{
		Seed:        1337,
		Noise:       NoisePerlin,
		SeaLevel:    24,
		BaseHeight:  26,
		Amplitude:   14,
		Scale:       1.0 / 48.0,
		Octaves:     3,
		Trees:       true,
		TreeDensity: 0.02,
	}
}

func (t *TerrainSettings) validate() error {
	switch t.Noise {
	case "":
		t.Noise = NoisePerlin
	case NoisePerlin, NoiseSimplex:
	default:
		return fmt.Errorf("terrain.noise: unknown source %q", t.Noise)
	}
	t.SeaLevel = min(max(t.SeaLevel, 1), maxSeaLevel)
	t.BaseHeight = min(max(t.BaseHeight, 1), maxSeaLevel)
	if t.Octaves < 1 {
		t.Octaves = 1
	}
	if t.Scale <= 0 {
		t.Scale = DefaultTerrain().Scale
	}
	if t.TreeDensity < 0 || t.TreeDensity > 1 {
		t.TreeDensity = DefaultTerrain().TreeDensity
	}
	return nil
}
