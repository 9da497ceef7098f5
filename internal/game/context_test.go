package game

import (
	"math"
	"testing"

	"blockworld/internal/config"
	"blockworld/internal/meshing"
	"blockworld/internal/physics"
	"blockworld/internal/player"
	"blockworld/internal/registry"
	"blockworld/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = float32(1.0 / 60)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.World.Radius = 1
	cfg.Terrain.Trees = false
	return cfg
}

func newTestContext(t *testing.T) *Context {
	t.Helper()
	g, err := NewContext(testConfig(), nil, nil)
	require.NoError(t, err)
	return g
}

// surface returns the height of the terrain at (xi, zi).
func surface(g *Context, xi, zi int) int {
	return world.NewHeightGenerator(g.Config.Terrain).HeightAt(xi, zi)
}

type recordingRenderer struct {
	meshes map[meshing.Pass]int
	boxes  int
}

func newRecordingRenderer() *recordingRenderer {
	return &recordingRenderer{meshes: map[meshing.Pass]int{}}
}

func (r *recordingRenderer) DrawMesh(_ world.ChunkCoord, pass meshing.Pass, _ *meshing.Mesh) {
	r.meshes[pass]++
}

func (r *recordingRenderer) DrawBox(_, _, _ mgl32.Vec3) {
	r.boxes++
}

func TestNewContextSpawnsOnSurface(t *testing.T) {
	g := newTestContext(t)
	h := surface(g, 0, 0)

	top := world.BlockAABB(0, h, 0).Min.Y()

	assert.Len(t, g.World.LoadedKeys(), 9)
	assert.Equal(t, top, g.Player.Position.Y())
	assert.True(t, g.World.IsSolid(0, h, 0))
	assert.False(t, g.World.IsSolid(0, h+1, 0))
	assert.False(t, physics.Collides(g.Player.AABB(), g.World))

	for range 5 {
		g.Tick(frame, player.Controls{})
	}
	assert.False(t, g.Player.Falling)
	assert.InDelta(t, top, g.Player.Position.Y(), 1e-4)
	assert.Equal(t, uint64(5), g.Frames())
}

func TestNewContextMeshesSpawnArea(t *testing.T) {
	g := newTestContext(t)
	st := g.World.Stats()
	assert.Zero(t, st.QueuedRebuilds)
	assert.Empty(t, g.World.DirtyChunks())
	assert.Positive(t, st.Rebuilt)
}

func TestSpawnClimbsOverTrees(t *testing.T) {
	g := newTestContext(t)
	h := surface(g, 2, 2)
	for y := h + 1; y <= h+3; y++ {
		require.True(t, g.World.SetBlockAt(registry.BlockTypeLog, 2, y, 2))
	}
	g.Spawn(2, 2)
	assert.Equal(t, world.BlockAABB(2, h+3, 2).Min.Y(), g.Player.Position.Y())
	assert.False(t, physics.Collides(g.Player.AABB(), g.World))
}

func TestNewContextRejectsBadConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Terrain.Noise = "value"
	_, err := NewContext(cfg, nil, nil)
	assert.Error(t, err)
}

func TestPlaceBlock(t *testing.T) {
	g := newTestContext(t)
	top := max(surface(g, 3, 3), g.Config.Terrain.SeaLevel) + 2
	aim := func(x, y, z int) {
		g.Player.Target = &player.Target{Block: [3]int{x, y - 1, z}, Adjacent: [3]int{x, y, z}, Face: registry.FaceTop}
	}

	aim(3, top, 3)
	require.True(t, g.PlaceBlock(registry.BlockTypePlanks))
	assert.Equal(t, registry.BlockTypePlanks, g.World.GetBlockType(3, top, 3))

	tests := []struct {
		name string
		bt   registry.BlockType
		cell [3]int
	}{
		{"item", registry.BlockTypeStonePickaxe, [3]int{3, top + 1, 3}},
		{"air", registry.BlockTypeAir, [3]int{3, top + 1, 3}},
		{"out of range id", registry.BlockTypeNone, [3]int{3, top + 1, 3}},
		{"occupied cell", registry.BlockTypeStone, [3]int{3, top, 3}},
		{"player cell", registry.BlockTypeStone, [3]int{0, surface(g, 0, 0) + 1, 0}},
		{"above the world", registry.BlockTypeStone, [3]int{3, world.WorldHeight, 3}},
		{"unloaded column", registry.BlockTypeStone, [3]int{100, 30, 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := g.World.GetBlockType(tt.cell[0], tt.cell[1], tt.cell[2])
			aim(tt.cell[0], tt.cell[1], tt.cell[2])
			assert.False(t, g.PlaceBlock(tt.bt))
			assert.Equal(t, before, g.World.GetBlockType(tt.cell[0], tt.cell[1], tt.cell[2]))
		})
	}

	g.Player.Target = nil
	assert.False(t, g.PlaceBlock(registry.BlockTypeStone))
}

func TestPlaceBlockReplacesWater(t *testing.T) {
	g := newTestContext(t)
	lx, lz := 5, 5
	require.True(t, g.World.SetBlockAt(registry.BlockTypeWater, lx, 60, lz))
	g.Player.Target = &player.Target{Block: [3]int{lx, 59, lz}, Adjacent: [3]int{lx, 60, lz}}
	assert.True(t, g.PlaceBlock(registry.BlockTypeGlass))
	assert.Equal(t, registry.BlockTypeGlass, g.World.GetBlockType(lx, 60, lz))
}

func TestBreakBlock(t *testing.T) {
	g := newTestContext(t)
	h := surface(g, 2, 2)
	g.Player.Target = &player.Target{Block: [3]int{2, h, 2}}
	require.True(t, g.BreakBlock())
	assert.True(t, g.World.IsAir(2, h, 2))

	g.Player.Target = nil
	assert.False(t, g.BreakBlock())

	g.Player.Target = &player.Target{Block: [3]int{100, 10, 100}}
	assert.False(t, g.BreakBlock())
}

func TestTickMinesLookedAtBlock(t *testing.T) {
	g := newTestContext(t)
	h := surface(g, 0, 0)
	g.Player.Tilt = math.Pi / 2.01
	bt := g.World.GetBlockType(0, h, 0)
	total := g.Registry.MineTime(bt, g.Hotbar.Held())
	require.Positive(t, total)

	frames := 0
	for !g.World.IsAir(0, h, 0) {
		g.Tick(frame, player.Controls{Break: true})
		frames++
		require.Less(t, frames, 200)
	}
	assert.InDelta(t, total/frame, float32(frames), 2)
}

func TestReleasingBreakResetsMining(t *testing.T) {
	g := newTestContext(t)
	g.Player.Tilt = math.Pi / 2.01
	g.Tick(frame, player.Controls{Break: true})
	g.Tick(frame, player.Controls{Break: true})
	require.True(t, g.Player.Mining.Active)

	g.Tick(frame, player.Controls{})
	assert.False(t, g.Player.Mining.Active)
}

func TestFlyingBreaksInstantly(t *testing.T) {
	g := newTestContext(t)
	h := surface(g, 0, 0)
	assert.Equal(t, player.ModeFlying, g.CycleControlMode())
	g.Player.Tilt = math.Pi / 2.01

	g.Tick(frame, player.Controls{Break: true})
	assert.True(t, g.World.IsAir(0, h, 0))
}

func TestTickIgnoresNonPositiveDt(t *testing.T) {
	g := newTestContext(t)
	pos := g.Player.Position
	g.Tick(0, player.Controls{Forward: 1})
	g.Tick(-1, player.Controls{Forward: 1})
	assert.Equal(t, pos, g.Player.Position)
	assert.Zero(t, g.Frames())
}

func TestRenderDrawsPassesAndOutlines(t *testing.T) {
	g := newTestContext(t)
	g.World.BuildAllMeshes()

	r := newRecordingRenderer()
	g.Render(r)
	assert.Positive(t, r.meshes[meshing.PassSolid])
	assert.Zero(t, r.boxes)

	require.True(t, g.ToggleDebugOutlines())
	r = newRecordingRenderer()
	g.Render(r)
	assert.Positive(t, r.boxes)
}

func TestToggles(t *testing.T) {
	g := newTestContext(t)
	assert.False(t, g.ToggleFollowPlayer())
	assert.True(t, g.ToggleFollowPlayer())

	assert.Equal(t, config.MinRadius, g.AdjustRadius(-5))
	assert.Equal(t, 2, g.AdjustRadius(1))
	assert.Equal(t, config.MaxRadius, g.AdjustRadius(100))
}

func TestStatsLine(t *testing.T) {
	g := newTestContext(t)
	line := g.StatsLine(3 << 20)
	assert.Contains(t, line, "columns=9")
	assert.Contains(t, line, "generated=9")
	assert.Contains(t, line, "rss=3.0 MiB")
	assert.NotContains(t, g.StatsLine(0), "rss=")
}
