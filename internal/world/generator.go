package world

import (
	"math"

	"blockworld/internal/config"
	"blockworld/internal/registry"
)

// TerrainGenerator fills freshly created columns.
type TerrainGenerator interface {
	// HeightAt returns the block Y index of the surface at block (xi, zi).
	HeightAt(xi, zi int) int
	PopulateColumn(col *Column)
}

// Decorator runs once per column after the terrain pass.
type Decorator interface {
	Decorate(col *Column)
}

// dirt layers under a grass or sand cap
const topsoilDepth = 3

// highest surface the generator produces; leaves room for trees
const maxSurface = WorldHeight - 10

// HeightGenerator builds terrain from a noise height field. The same settings
// always produce the same blocks.
type HeightGenerator struct {
	noise      NoiseSource
	scale      float64
	baseHeight int
	amp        float64
	seaLevel   int
}

// NewHeightGenerator creates a generator from terrain settings.
func NewHeightGenerator(t config.TerrainSettings) *HeightGenerator {
	return &HeightGenerator{
		noise:      NewNoiseSource(t),
		scale:      t.Scale,
		baseHeight: t.BaseHeight,
		amp:        t.Amplitude,
		seaLevel:   t.SeaLevel,
	}
}

// SeaLevel returns the block Y index water fills up to.
func (g *HeightGenerator) SeaLevel() int { return g.seaLevel }

// HeightAt computes the surface block Y index at block (xi, zi).
func (g *HeightGenerator) HeightAt(xi, zi int) int {
	n := g.noise.Noise2D(float64(xi)*g.scale, float64(zi)*g.scale)
	h := float64(g.baseHeight) + (n*2-1)*g.amp
	return min(max(int(math.Floor(h)), 1), maxSurface)
}

// PopulateColumn fills a column: grass over dirt over stone above the sea,
// sand over dirt with water up to sea level below it.
func (g *HeightGenerator) PopulateColumn(col *Column) {
	ox, oz := col.Origin()
	for lx := range ChunkSize {
		for lz := range ChunkSize {
			h := g.HeightAt(ox+lx, oz+lz)
			top := registry.BlockTypeGrass
			if h <= g.seaLevel {
				top = registry.BlockTypeSand
			}
			for yi := 0; yi <= h; yi++ {
				bt := registry.BlockTypeStone
				switch {
				case yi == h:
					bt = top
				case yi >= h-topsoilDepth:
					bt = registry.BlockTypeDirt
				}
				col.Set(lx, yi, lz, bt)
			}
			for yi := h + 1; yi <= g.seaLevel; yi++ {
				col.Set(lx, yi, lz, registry.BlockTypeWater)
			}
		}
	}
}

// FlatGenerator produces a flat world, mainly for tests.
type FlatGenerator struct {
	Height int
}

// NewFlatGenerator creates a generator with a fixed surface at height.
func NewFlatGenerator(height int) *FlatGenerator {
	return &FlatGenerator{Height: min(max(height, 0), WorldHeight-1)}
}

// HeightAt returns the fixed height.
func (g *FlatGenerator) HeightAt(_, _ int) int { return g.Height }

// PopulateColumn fills grass at Height, dirt below, stone at the bottom.
func (g *FlatGenerator) PopulateColumn(col *Column) {
	for lx := range ChunkSize {
		for lz := range ChunkSize {
			for yi := 0; yi <= g.Height; yi++ {
				bt := registry.BlockTypeDirt
				switch {
				case yi == g.Height:
					bt = registry.BlockTypeGrass
				case yi == 0:
					bt = registry.BlockTypeStone
				}
				col.Set(lx, yi, lz, bt)
			}
		}
	}
}
