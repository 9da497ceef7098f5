package physics_test

import (
	"testing"

	"blockworld/internal/meshing"
	"blockworld/internal/physics"
	"blockworld/internal/registry"
	"blockworld/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorld(t testing.TB) *world.World {
	t.Helper()
	w := world.NewEmpty(registry.NewRegistry())
	w.LoadColumn(world.ColumnKey{})
	return w
}

func center(xi, yi, zi int) mgl32.Vec3 {
	return meshing.BlockCenter(xi, yi, zi, world.BlockWidth)
}

var casters = map[string]physics.RaycastFunc{
	"sampled": physics.Raycast,
	"dda":     physics.RaycastDDA,
}

func TestRaycastHitsFaces(t *testing.T) {
	cases := []struct {
		name string
		eye  [3]int
		dir  mgl32.Vec3
		face registry.BlockFace
		adj  [3]int
	}{
		{"from -x", [3]int{2, 10, 5}, mgl32.Vec3{1, 0, 0}, registry.FaceLeft, [3]int{4, 10, 5}},
		{"from +x", [3]int{8, 10, 5}, mgl32.Vec3{-1, 0, 0}, registry.FaceRight, [3]int{6, 10, 5}},
		{"from above", [3]int{5, 13, 5}, mgl32.Vec3{0, 1, 0}, registry.FaceTop, [3]int{5, 11, 5}},
		{"from below", [3]int{5, 7, 5}, mgl32.Vec3{0, -1, 0}, registry.FaceBottom, [3]int{5, 9, 5}},
		{"from +z", [3]int{5, 10, 8}, mgl32.Vec3{0, 0, -1}, registry.FaceFront, [3]int{5, 10, 6}},
		{"from -z", [3]int{5, 10, 2}, mgl32.Vec3{0, 0, 1}, registry.FaceBack, [3]int{5, 10, 4}},
	}
	w := newWorld(t)
	require.True(t, w.SetBlockAt(registry.BlockTypeStone, 5, 10, 5))

	for name, cast := range casters {
		for _, c := range cases {
			t.Run(name+"/"+c.name, func(t *testing.T) {
				res := cast(center(c.eye[0], c.eye[1], c.eye[2]), c.dir, physics.ReachDistance, w)
				require.True(t, res.Hit)
				assert.Equal(t, [3]int{5, 10, 5}, res.HitPosition)
				assert.Equal(t, c.face, res.Face)
				assert.Equal(t, c.adj, res.AdjacentPosition)
				assert.InDelta(t, 2.5*world.BlockWidth, res.Distance, 0.01)
			})
		}
	}
}

func TestRaycastOutOfReach(t *testing.T) {
	w := newWorld(t)
	w.SetBlockAt(registry.BlockTypeStone, 9, 10, 5)
	for name, cast := range casters {
		res := cast(center(2, 10, 5), mgl32.Vec3{1, 0, 0}, physics.ReachDistance, w)
		assert.False(t, res.Hit, name)
	}
}

func TestRaycastIgnoresWaterAndMissing(t *testing.T) {
	w := newWorld(t)
	w.SetBlockAt(registry.BlockTypeWater, 4, 10, 5)
	w.SetBlockAt(registry.BlockTypeStone, 5, 10, 5)
	for name, cast := range casters {
		res := cast(center(2, 10, 5), mgl32.Vec3{1, 0, 0}, physics.ReachDistance, w)
		require.True(t, res.Hit, name)
		assert.Equal(t, [3]int{5, 10, 5}, res.HitPosition, name)

		// the neighboring column is not loaded
		res = cast(center(14, 10, 5), mgl32.Vec3{1, 0, 0}, physics.ReachDistance, w)
		assert.False(t, res.Hit, name)
	}
}

func TestRaycastDiagonal(t *testing.T) {
	w := newWorld(t)
	w.SetBlockAt(registry.BlockTypeStone, 4, 12, 4)
	eye := center(2, 10, 2)
	target := center(4, 12, 4)
	for name, cast := range casters {
		res := cast(eye, target.Sub(eye), physics.ReachDistance, w)
		require.True(t, res.Hit, name)
		assert.Equal(t, [3]int{4, 12, 4}, res.HitPosition, name)
		assert.True(t, w.IsAir(res.AdjacentPosition[0], res.AdjacentPosition[1], res.AdjacentPosition[2]), name)
	}
}

func TestRaycastZeroDirection(t *testing.T) {
	w := newWorld(t)
	for name, cast := range casters {
		assert.False(t, cast(center(1, 1, 1), mgl32.Vec3{}, physics.ReachDistance, w).Hit, name)
	}
}

func BenchmarkRaycast(b *testing.B) {
	w := newWorld(b)
	// a wall in front of the eye
	for x := 0; x < 16; x++ {
		for y := 0; y < 16; y++ {
			w.SetBlockAt(registry.BlockTypeGrass, x, y, 5)
		}
	}
	start := center(3, 8, 0)
	dir := mgl32.Vec3{0.1, -0.2, 1}
	for name, cast := range casters {
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = cast(start, dir, physics.ReachDistance, w)
			}
		})
	}
}
