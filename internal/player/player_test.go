package player

import (
	"math"
	"testing"

	"blockworld/internal/physics"
	"blockworld/internal/registry"
	"blockworld/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = float32(1.0 / 60)

func flatWorld(t *testing.T, height int) *world.World {
	t.Helper()
	opts := world.DefaultOptions()
	opts.FollowPlayer = false
	w := world.New(registry.NewRegistry(), world.NewFlatGenerator(height), opts)
	for _, k := range world.RingKeys(world.ColumnKey{}, 1) {
		w.LoadColumn(k)
	}
	return w
}

// standingOn returns feet resting on top of block (xi, yi, zi).
func standingOn(xi, yi, zi int) mgl32.Vec3 {
	box := world.BlockAABB(xi, yi, zi)
	return mgl32.Vec3{(box.Min.X() + box.Max.X()) / 2, box.Min.Y(), (box.Min.Z() + box.Max.Z()) / 2}
}

func TestLandsOnBlockAfterOneStep(t *testing.T) {
	w := world.NewEmpty(registry.NewRegistry())
	w.LoadColumn(world.ColumnKey{})
	require.True(t, w.SetBlockAt(registry.BlockTypeStone, 4, 10, 4))

	p := New(DefaultSettings())
	top := standingOn(4, 10, 4)
	p.SetPosition(top)
	require.True(t, p.Falling)

	p.Update(frame, Controls{}, w)
	assert.Equal(t, top.Y(), p.Position.Y())
	assert.Zero(t, p.Velocity.Y())
	assert.False(t, p.Falling)
}

func TestFallsAndComesToRest(t *testing.T) {
	w := flatWorld(t, 10)
	p := New(DefaultSettings())
	p.SetPosition(standingOn(3, 20, 3))

	for range 300 {
		p.Update(frame, Controls{}, w)
	}
	assert.False(t, p.Falling)
	assert.InDelta(t, standingOn(3, 10, 3).Y(), p.Position.Y(), 1e-4)

	// stays grounded frame after frame
	for range 10 {
		p.Update(frame, Controls{}, w)
		assert.False(t, p.Falling)
	}
}

func TestTerminalVelocity(t *testing.T) {
	w := world.NewEmpty(registry.NewRegistry())
	p := New(DefaultSettings())
	p.SetPosition(mgl32.Vec3{0, -500, 0})
	for range 600 {
		p.Update(frame, Controls{}, w)
	}
	assert.InDelta(t, p.Settings().TerminalVelocity, p.Velocity.Y(), 1e-3)
}

func TestJumpOnlyFromGround(t *testing.T) {
	w := flatWorld(t, 10)
	p := New(DefaultSettings())
	p.SetPosition(standingOn(3, 10, 3))
	p.Update(frame, Controls{}, w)
	require.False(t, p.Falling)

	start := p.Position.Y()
	p.Update(frame, Controls{Jump: true}, w)
	assert.True(t, p.Falling)
	assert.Less(t, p.Position.Y(), start, "moved up")

	v := p.Velocity.Y()
	p.Jump()
	assert.Equal(t, v, p.Velocity.Y(), "no double jump")
}

func TestWalkIsBlockedByWall(t *testing.T) {
	w := flatWorld(t, 10)
	w.SetBlockAt(registry.BlockTypeStone, 6, 11, 3)
	w.SetBlockAt(registry.BlockTypeStone, 6, 12, 3)

	p := New(DefaultSettings())
	p.SetPosition(standingOn(3, 10, 3))
	// pan 0 faces +X
	for range 120 {
		p.Update(frame, Controls{Forward: 1}, w)
	}
	assert.InDelta(t, 6*world.BlockWidth-Width/2, p.Position.X(), 1e-3)
	assert.False(t, p.Falling)
}

func TestDampingSettlesAtWalkSpeed(t *testing.T) {
	w := flatWorld(t, 10)
	p := New(DefaultSettings())
	p.SetPosition(standingOn(0, 10, 0))
	p.Pan = math.Pi / 2 // faces +Z
	for range 30 {
		p.Update(frame, Controls{Forward: 1}, w)
	}
	assert.InDelta(t, p.Settings().WalkSpeed, p.Velocity.Z(), 0.5)
	assert.InDelta(t, 0, p.Velocity.X(), 1e-3)

	for range 60 {
		p.Update(frame, Controls{}, w)
	}
	assert.InDelta(t, 0, p.Velocity.Len(), 0.01)
}

func TestNoClipPassesThroughBlocks(t *testing.T) {
	w := flatWorld(t, 10)
	p := New(DefaultSettings())
	p.SetPosition(standingOn(3, 10, 3))
	p.Mode = ModeNoClip
	start := p.Position
	for range 30 {
		p.Update(frame, Controls{Up: -1}, w)
	}
	assert.Greater(t, p.Position.Y(), start.Y()+world.BlockWidth, "sank into the ground")
}

func TestFlyingHasNoGravity(t *testing.T) {
	w := world.NewEmpty(registry.NewRegistry())
	p := New(DefaultSettings())
	p.SetPosition(mgl32.Vec3{0, -300, 0})
	p.Mode = ModeFlying
	for range 60 {
		p.Update(frame, Controls{}, w)
	}
	assert.Equal(t, float32(-300), p.Position.Y())
}

func TestCycleControlMode(t *testing.T) {
	p := New(DefaultSettings())
	assert.Equal(t, ModeFlying, p.CycleControlMode())
	assert.Equal(t, ModeNoClip, p.CycleControlMode())
	assert.Equal(t, ModeNormal, p.CycleControlMode())
	assert.Equal(t, "noclip", ModeNoClip.String())
}

func TestTiltIsClamped(t *testing.T) {
	p := New(DefaultSettings())
	p.TiltBy(10)
	assert.InDelta(t, math.Pi/2.01, p.Tilt, 1e-6)
	p.TiltBy(-20)
	assert.InDelta(t, -math.Pi/2.01, p.Tilt, 1e-6)

	f := p.Forward()
	assert.InDelta(t, 1, f.Len(), 1e-5)
	assert.Less(t, f.Y(), float32(0), "looking up is -Y")
}

func TestWalkAxes(t *testing.T) {
	p := New(DefaultSettings())
	f, r := p.WalkAxes()
	assert.InDelta(t, 1, f.X(), 1e-6)
	assert.InDelta(t, -1, r.Z(), 1e-6)
	// right = forward x up with world up = -Y
	assert.InDelta(t, 0, f.Cross(worldUp).Sub(r).Len(), 1e-6)
}

func TestTargetingPicksFace(t *testing.T) {
	w := flatWorld(t, 10)
	for _, rc := range []physics.RaycastFunc{physics.Raycast, physics.RaycastDDA} {
		s := DefaultSettings()
		s.Raycast = rc
		p := New(s)
		p.SetPosition(standingOn(3, 10, 3))
		// look straight down
		p.Tilt = math.Pi / 2.01
		tgt := p.UpdateTarget(w)
		require.NotNil(t, tgt)
		assert.Equal(t, [3]int{3, 10, 3}, tgt.Block)
		assert.Equal(t, registry.FaceTop, tgt.Face)
		assert.Equal(t, [3]int{3, 11, 3}, tgt.Adjacent)
		assert.True(t, p.Occupies(3, 11, 3))
	}
}

func TestTargetingNothingInReach(t *testing.T) {
	w := flatWorld(t, 2)
	p := New(DefaultSettings())
	p.SetPosition(standingOn(3, 40, 3))
	p.Tilt = -1
	assert.Nil(t, p.UpdateTarget(w))
	assert.Nil(t, p.Target)
}

func TestMiningTakesMineTime(t *testing.T) {
	reg := registry.NewRegistry()
	p := New(DefaultSettings())
	p.Target = &Target{Block: [3]int{1, 2, 3}}

	total := reg.MineTime(registry.BlockTypeDirt, registry.BlockTypeAir)
	require.Positive(t, total)
	steps := 0
	for !p.UpdateMining(0.05, registry.BlockTypeDirt, registry.BlockTypeAir, reg) {
		steps++
		require.Less(t, steps, 1000)
	}
	assert.InDelta(t, total/0.05, float32(steps+1), 1.01)
	assert.False(t, p.Mining.Active)
}

func TestMiningRestartsOnNewTarget(t *testing.T) {
	reg := registry.NewRegistry()
	p := New(DefaultSettings())
	p.Target = &Target{Block: [3]int{1, 2, 3}}
	p.UpdateMining(0.5, registry.BlockTypeStone, registry.BlockTypeAir, reg)
	require.Equal(t, float32(0.5), p.Mining.Progress)

	p.Target = &Target{Block: [3]int{1, 2, 4}}
	p.UpdateMining(0.1, registry.BlockTypeStone, registry.BlockTypeAir, reg)
	assert.Equal(t, float32(0.1), p.Mining.Progress)
	assert.Equal(t, [3]int{1, 2, 4}, p.Mining.Block)

	p.Target = nil
	p.UpdateMining(0.1, registry.BlockTypeStone, registry.BlockTypeAir, reg)
	assert.False(t, p.Mining.Active)
}
