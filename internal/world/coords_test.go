package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestFloorDivAndMod(t *testing.T) {
	cases := []struct{ a, div, mod int }{
		{0, 0, 0},
		{15, 0, 15},
		{16, 1, 0},
		{-1, -1, 15},
		{-16, -1, 0},
		{-17, -2, 15},
	}
	for _, c := range cases {
		assert.Equal(t, c.div, floorDiv(c.a, ChunkSize), "floorDiv(%d)", c.a)
		assert.Equal(t, c.mod, mod(c.a, ChunkSize), "mod(%d)", c.a)
	}
}

func TestChunkLocalIndexAlwaysInRange(t *testing.T) {
	for xi := -40; xi <= 40; xi++ {
		lx, ly, lz := BlockIndexToChunkBlockIndex(xi, xi+3, -xi)
		for _, v := range []int{lx, ly, lz} {
			assert.GreaterOrEqual(t, v, 0)
			assert.Less(t, v, ChunkSize)
		}
		c := BlockIndexToChunkIndex(xi, 0, 0)
		assert.Equal(t, xi, c.X*ChunkSize+lx)
	}
}

func TestWorldToBlockIndexFlipsY(t *testing.T) {
	xi, yi, zi := WorldToBlockIndex(mgl32.Vec3{8, -8, 8})
	assert.Equal(t, [3]int{0, 0, 0}, [3]int{xi, yi, zi})

	xi, yi, zi = WorldToBlockIndex(mgl32.Vec3{-0.5, -17, 31.9})
	assert.Equal(t, [3]int{-1, 1, 1}, [3]int{xi, yi, zi})

	// just above the world's top surface plane
	_, yi, _ = WorldToBlockIndex(mgl32.Vec3{0, 0.5, 0})
	assert.Equal(t, -1, yi)
}

func TestBlockIndexWorldRoundTrip(t *testing.T) {
	cases := [][3]int{
		{0, 0, 0},
		{1, 1, 1},
		{-1, -1, -1},
		{15, 63, 16},
		{-16, 64, -17},
		{-1000, 5, 999},
		{12345, -7, -54321},
	}
	for _, b := range cases {
		xi, yi, zi := WorldToBlockIndex(BlockIndexToWorldCoords(b[0], b[1], b[2]))
		assert.Equal(t, b, [3]int{xi, yi, zi})
	}
}

func TestBlockAABBRoundTrip(t *testing.T) {
	for _, idx := range [][3]int{{0, 0, 0}, {-3, 7, 12}, {20, 63, -20}} {
		box := BlockAABB(idx[0], idx[1], idx[2])
		assert.Equal(t, mgl32.Vec3{BlockWidth, BlockWidth, BlockWidth}, box.Size())

		center := box.Min.Add(box.Max).Mul(0.5)
		xi, yi, zi := WorldToBlockIndex(center)
		assert.Equal(t, idx, [3]int{xi, yi, zi})

		// the minimum-index corner sits at the top of the box in world space
		o := BlockIndexToWorldCoords(idx[0], idx[1], idx[2])
		assert.Equal(t, box.Max.Y(), o.Y())
		assert.Equal(t, box.Min.X(), o.X())
	}
}

func TestBlockAABBOrigin(t *testing.T) {
	box := BlockAABB(0, 0, 0)
	assert.Equal(t, mgl32.Vec3{0, -16, 0}, box.Min)
	assert.Equal(t, mgl32.Vec3{16, 0, 16}, box.Max)
}

func TestChunkAndColumnAABB(t *testing.T) {
	c := ChunkAABB(ChunkCoord{X: 1, Y: 0, Z: -1})
	assert.Equal(t, mgl32.Vec3{256, -256, -256}, c.Min)
	assert.Equal(t, mgl32.Vec3{512, 0, 0}, c.Max)

	col := ColumnAABB(ColumnKey{X: 0, Z: 0})
	assert.Equal(t, mgl32.Vec3{0, -WorldHeight * BlockWidth, 0}, col.Min)
	assert.Equal(t, mgl32.Vec3{256, 0, 256}, col.Max)
}

func TestAABBIntersectsIsStrict(t *testing.T) {
	a := BlockAABB(0, 0, 0)
	b := BlockAABB(1, 0, 0)
	assert.False(t, a.Intersects(b), "touching boxes")
	assert.True(t, a.Intersects(a.Translate(mgl32.Vec3{8, 0, 0})))
	assert.True(t, a.Contains(a.Max))
}
