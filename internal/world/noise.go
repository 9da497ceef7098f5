package world

import (
	"blockworld/internal/config"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// NoiseSource is a deterministic 2D noise field with values in [0,1].
type NoiseSource interface {
	Noise2D(x, z float64) float64
}

type perlinSource struct {
	p *perlin.Perlin
}

func newPerlinSource(seed int64, octaves int) *perlinSource {
	return &perlinSource{p: perlin.NewPerlin(2, 2, int32(octaves), seed)}
}

func (s *perlinSource) Noise2D(x, z float64) float64 {
	return clamp01((s.p.Noise2D(x, z) + 1) / 2)
}

// simplexSource sums octaves of OpenSimplex noise.
type simplexSource struct {
	n       opensimplex.Noise
	octaves int
}

func newSimplexSource(seed int64, octaves int) *simplexSource {
	return &simplexSource{n: opensimplex.New(seed), octaves: max(octaves, 1)}
}

func (s *simplexSource) Noise2D(x, z float64) float64 {
	amp, freq := 1.0, 1.0
	sum, norm := 0.0, 0.0
	for range s.octaves {
		sum += s.n.Eval2(x*freq, z*freq) * amp
		norm += amp
		amp *= 0.5
		freq *= 2
	}
	return clamp01((sum/norm + 1) / 2)
}

// NewNoiseSource builds the height noise selected by the terrain settings.
func NewNoiseSource(t config.TerrainSettings) NoiseSource {
	if t.Noise == config.NoiseSimplex {
		return newSimplexSource(t.Seed, t.Octaves)
	}
	return newPerlinSource(t.Seed, t.Octaves)
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}

// hash2 is a SplitMix64 hash of a lattice point, stable across runs.
func hash2(x, z, seed int64) uint64 {
	v := uint64(x) + (uint64(z) << 1) + uint64(seed)*0x9E3779B97F4A7C15
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	return v ^ (v >> 31)
}

// unit maps a hash to [0,1).
func unit(h uint64) float64 {
	return float64(h>>11) / float64(1<<53)
}
