package world

import (
	"crypto/sha256"
	"testing"

	"blockworld/internal/config"
	"blockworld/internal/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorsImplementInterface(t *testing.T) {
	var _ TerrainGenerator = NewHeightGenerator(config.DefaultTerrain())
	var _ TerrainGenerator = NewFlatGenerator(10)
	var _ Decorator = NewTreeDecorator(config.DefaultTerrain())
}

func TestFlatGeneratorPopulate(t *testing.T) {
	col := NewColumn(0, 0)
	g := NewFlatGenerator(5)
	g.PopulateColumn(col)

	assert.Equal(t, 5, g.HeightAt(100, -50))
	assert.Equal(t, registry.BlockTypeStone, col.Get(0, 0, 0))
	for yi := 1; yi < 5; yi++ {
		assert.Equal(t, registry.BlockTypeDirt, col.Get(3, yi, 3))
	}
	assert.Equal(t, registry.BlockTypeGrass, col.Get(15, 5, 15))
	assert.Equal(t, registry.BlockTypeAir, col.Get(0, 6, 0))
}

// hashColumn computes a SHA-256 digest of every block in a column.
func hashColumn(col *Column) [32]byte {
	h := sha256.New()
	for yi := range WorldHeight {
		for lx := range ChunkSize {
			for lz := range ChunkSize {
				h.Write([]byte{byte(col.Get(lx, yi, lz))})
			}
		}
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func generate(t config.TerrainSettings, key ColumnKey) *Column {
	col := NewColumn(key.X, key.Z)
	NewHeightGenerator(t).PopulateColumn(col)
	NewTreeDecorator(t).Decorate(col)
	return col
}

func TestTerrainDeterminism(t *testing.T) {
	for _, noise := range []string{config.NoisePerlin, config.NoiseSimplex} {
		t.Run(noise, func(t *testing.T) {
			settings := config.DefaultTerrain()
			settings.Noise = noise
			for _, key := range []ColumnKey{{0, 0}, {3, -2}, {-5, 7}} {
				a := hashColumn(generate(settings, key))
				b := hashColumn(generate(settings, key))
				assert.Equal(t, a, b, "column %v", key)
			}
		})
	}
}

func TestTerrainDependsOnSeed(t *testing.T) {
	a := config.DefaultTerrain()
	b := a
	b.Seed = a.Seed + 1
	differ := false
	for x := range 4 {
		key := ColumnKey{X: x, Z: -x}
		if hashColumn(generate(a, key)) != hashColumn(generate(b, key)) {
			differ = true
		}
	}
	assert.True(t, differ)
}

func TestHeightGeneratorLayers(t *testing.T) {
	settings := config.DefaultTerrain()
	g := NewHeightGenerator(settings)
	col := NewColumn(2, 2)
	g.PopulateColumn(col)
	ox, oz := col.Origin()

	for lx := range ChunkSize {
		for lz := range ChunkSize {
			h := g.HeightAt(ox+lx, oz+lz)
			require.GreaterOrEqual(t, h, 1)
			require.LessOrEqual(t, h, maxSurface)

			top := col.Get(lx, h, lz)
			if h <= g.SeaLevel() {
				assert.Equal(t, registry.BlockTypeSand, top)
				for yi := h + 1; yi <= g.SeaLevel(); yi++ {
					assert.Equal(t, registry.BlockTypeWater, col.Get(lx, yi, lz))
				}
			} else {
				assert.Equal(t, registry.BlockTypeGrass, top)
			}
			assert.Equal(t, registry.BlockTypeDirt, col.Get(lx, h-1, lz))
			assert.Equal(t, registry.BlockTypeStone, col.Get(lx, 0, lz))
		}
	}
}

func TestTreesStayInsideColumn(t *testing.T) {
	settings := config.DefaultTerrain()
	settings.TreeDensity = 1
	col := NewColumn(0, 0)
	NewFlatGenerator(20).PopulateColumn(col)
	NewTreeDecorator(settings).Decorate(col)

	logs := 0
	for lx := range ChunkSize {
		for lz := range ChunkSize {
			for yi := 21; yi < WorldHeight; yi++ {
				bt := col.Get(lx, yi, lz)
				if bt != registry.BlockTypeLog {
					continue
				}
				logs++
				assert.GreaterOrEqual(t, lx, treeMargin)
				assert.Less(t, lx, ChunkSize-treeMargin)
				below := col.Get(lx, yi-1, lz)
				assert.Contains(t, []registry.BlockType{registry.BlockTypeLog, registry.BlockTypeGrass}, below)
			}
		}
	}
	assert.Positive(t, logs)
}

func TestTreesDisabled(t *testing.T) {
	settings := config.DefaultTerrain()
	settings.TreeDensity = 0
	col := NewColumn(0, 0)
	NewFlatGenerator(20).PopulateColumn(col)
	before := hashColumn(col)
	NewTreeDecorator(settings).Decorate(col)
	assert.Equal(t, before, hashColumn(col))
}

func TestNoiseInUnitRange(t *testing.T) {
	for _, noise := range []string{config.NoisePerlin, config.NoiseSimplex} {
		settings := config.DefaultTerrain()
		settings.Noise = noise
		src := NewNoiseSource(settings)
		for i := range 200 {
			v := src.Noise2D(float64(i)*0.37, float64(-i)*0.11)
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
}

func TestHash2Deterministic(t *testing.T) {
	assert.Equal(t, hash2(10, -4, 99), hash2(10, -4, 99))
	assert.NotEqual(t, hash2(10, -4, 99), hash2(-4, 10, 99))
	assert.NotEqual(t, hash2(10, -4, 99), hash2(10, -4, 100))
	u := unit(hash2(1, 2, 3))
	assert.GreaterOrEqual(t, u, 0.0)
	assert.Less(t, u, 1.0)
}
