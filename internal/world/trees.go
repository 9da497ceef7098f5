package world

import (
	"blockworld/internal/config"
	"blockworld/internal/registry"

	"github.com/ojrac/opensimplex-go"
)

// trees stay this many cells away from the column edge so that a canopy never
// crosses into a neighbor
const treeMargin = 2

// TreeDecorator plants trees on grass. Placement depends only on the seed and
// block coordinates.
type TreeDecorator struct {
	seed    int64
	density float64
	forest  opensimplex.Noise
}

// NewTreeDecorator creates a decorator from terrain settings.
func NewTreeDecorator(t config.TerrainSettings) *TreeDecorator {
	return &TreeDecorator{
		seed:    t.Seed,
		density: t.TreeDensity,
		forest:  opensimplex.NewNormalized(t.Seed ^ 0x7EE5),
	}
}

// Decorate plants the column's trees.
func (d *TreeDecorator) Decorate(col *Column) {
	if d.density <= 0 {
		return
	}
	ox, oz := col.Origin()
	for lx := treeMargin; lx < ChunkSize-treeMargin; lx++ {
		for lz := treeMargin; lz < ChunkSize-treeMargin; lz++ {
			xi, zi := ox+lx, oz+lz
			// forests cluster where the low-frequency field is high
			local := d.density * 2 * d.forest.Eval2(float64(xi)/64, float64(zi)/64)
			h := hash2(int64(xi), int64(zi), d.seed)
			if unit(h) >= local {
				continue
			}
			y := surface(col, lx, lz)
			if y < 0 || col.Get(lx, y, lz) != registry.BlockTypeGrass {
				continue
			}
			trunk := 4 + int(h>>56)%3
			if y+trunk+2 >= WorldHeight || crowded(col, lx, y+1, lz) {
				continue
			}
			plantTree(col, lx, y+1, lz, trunk)
		}
	}
}

// surface returns the highest non-air cell of a column position, or -1.
func surface(col *Column, lx, lz int) int {
	for yi := WorldHeight - 1; yi >= 0; yi-- {
		if !col.Get(lx, yi, lz).IsAir() {
			return yi
		}
	}
	return -1
}

// crowded reports whether another trunk stands next to the base cell.
func crowded(col *Column, lx, yi, lz int) bool {
	for dx := -1; dx <= 1; dx++ {
		for dz := -1; dz <= 1; dz++ {
			if col.Get(lx+dx, yi, lz+dz) == registry.BlockTypeLog {
				return true
			}
		}
	}
	return false
}

func plantTree(col *Column, lx, base, lz, trunk int) {
	top := base + trunk - 1
	for yi := top - 2; yi <= top+1; yi++ {
		r := 2
		if yi > top-1 {
			r = 1
		}
		for dx := -r; dx <= r; dx++ {
			for dz := -r; dz <= r; dz++ {
				// round off the corners of the wide layers
				if r == 2 && (dx == -2 || dx == 2) && (dz == -2 || dz == 2) {
					continue
				}
				if col.Get(lx+dx, yi, lz+dz).IsAir() {
					col.Set(lx+dx, yi, lz+dz, registry.BlockTypeLeaves)
				}
			}
		}
	}
	for yi := base; yi <= top; yi++ {
		col.Set(lx, yi, lz, registry.BlockTypeLog)
	}
}
