package game

import (
	"fmt"
	"time"

	"blockworld/internal/config"
	"blockworld/internal/logging"
	"blockworld/internal/metrics"
	"blockworld/internal/player"
	"blockworld/internal/profiling"
	"blockworld/internal/registry"
	"blockworld/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// frames longer than this are simulated as this long
const maxFrameTime = float32(0.1)

// Renderer receives both draw passes and the debug outlines.
type Renderer interface {
	world.MeshDrawer
	world.BoxDrawer
}

// Context owns everything one running game needs. It is built once and
// passed to whatever drives the frame loop.
type Context struct {
	Config   *config.Config
	Registry *registry.Registry
	World    *world.World
	Player   *player.Player
	Hotbar   *Hotbar

	gen     world.TerrainGenerator
	log     *logging.Logger
	metrics *metrics.Metrics
	frames  uint64
}

// NewContext builds the registry, terrain generator, world and player from
// cfg and spawns the player on the surface of the origin column.
func NewContext(cfg *config.Config, log *logging.Logger, m *metrics.Metrics) (*Context, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if log == nil {
		log = logging.Discard()
	}

	reg := registry.NewRegistry()
	gen := world.NewHeightGenerator(cfg.Terrain)
	opts := world.Options{
		Radius:             cfg.World.Radius,
		RebuildBudget:      cfg.World.RebuildBudget,
		EvictionCacheLimit: cfg.World.EvictionCacheLimit,
		MeshWorkers:        cfg.World.MeshWorkers,
		FollowPlayer:       cfg.World.FollowPlayer,
		DebugOutlines:      cfg.World.DebugOutlines,
		Logger:             log,
		Metrics:            m,
	}
	if cfg.Terrain.Trees {
		opts.Decorator = world.NewTreeDecorator(cfg.Terrain)
	}

	g := &Context{
		Config:   cfg,
		Registry: reg,
		World:    world.New(reg, gen, opts),
		Player:   player.New(player.SettingsFromConfig(cfg.Player)),
		Hotbar:   NewHotbar(),
		gen:      gen,
		log:      log.With("game"),
		metrics:  m,
	}
	g.Spawn(0, 0)
	return g, nil
}

// Spawn places the player on top of the terrain at block column (xi, zi),
// loads the ring around it and meshes every loaded chunk.
func (g *Context) Spawn(xi, zi int) {
	g.World.StreamAround(world.WorldToColumnKey(world.BlockIndexToWorldCoords(xi, 0, zi)))
	h := g.gen.HeightAt(xi, zi)
	// trees rise above the height field
	for h+1 < world.WorldHeight && g.World.IsSolid(xi, h+1, zi) {
		h++
	}
	// block h is the surface; its top face is the bottom of cell h+1
	feet := world.BlockIndexToWorldCoords(xi, h+1, zi).Add(mgl32.Vec3{
		world.BlockWidth / 2, 0, world.BlockWidth / 2,
	})
	g.Player.SetPosition(feet)
	g.Player.Velocity = mgl32.Vec3{}
	g.World.BuildAllMeshes()
	g.log.Infof("spawned at block (%d, %d, %d)", xi, h+1, zi)
}

// Tick runs one frame of update work: player physics, streaming, targeting
// and the edits requested by c. dt is in seconds and is capped so a stall
// does not tunnel the player through terrain.
func (g *Context) Tick(dt float32, c player.Controls) {
	defer profiling.Track("game.Tick")()
	if dt <= 0 {
		return
	}
	start := time.Now()
	dt = min(dt, maxFrameTime)
	g.frames++

	g.Player.Update(dt, c, g.World)
	g.World.Update(g.Player.Position)
	g.Player.UpdateTarget(g.World)

	if c.Break {
		g.mine(dt)
	} else {
		g.Player.Mining.Reset()
	}
	if c.Place {
		g.PlaceBlock(g.Hotbar.Held())
	}
	g.metrics.ObserveFrame(time.Since(start))
}

// mine advances mining of the target. Flying and noclip break instantly.
func (g *Context) mine(dt float32) {
	t := g.Player.Target
	if t == nil {
		g.Player.Mining.Reset()
		return
	}
	if g.Player.Mode != player.ModeNormal {
		g.BreakBlock()
		return
	}
	bt := g.World.GetBlockType(t.Block[0], t.Block[1], t.Block[2])
	if g.Player.UpdateMining(dt, bt, g.Hotbar.Held(), g.Registry) {
		g.BreakBlock()
	}
}

// PlaceBlock puts bt into the cell in front of the targeted face. It refuses
// items, air, occupied cells and cells overlapping the player.
func (g *Context) PlaceBlock(bt registry.BlockType) bool {
	t := g.Player.Target
	if t == nil || bt >= registry.BlockTypeCount || bt.IsAir() {
		return false
	}
	if !g.Registry.Get(bt).IsPlaceable {
		g.log.Debugf("%v is not placeable", bt)
		return false
	}
	x, y, z := t.Adjacent[0], t.Adjacent[1], t.Adjacent[2]
	cur := g.World.GetBlockType(x, y, z)
	if cur.IsMissing() || !(cur.IsAir() || g.Registry.IsLiquid(cur)) {
		return false
	}
	if g.Player.Occupies(x, y, z) {
		return false
	}
	if !g.World.SetBlockAt(bt, x, y, z) {
		return false
	}
	g.log.Debugf("placed %v at (%d, %d, %d)", bt, x, y, z)
	g.Player.UpdateTarget(g.World)
	return true
}

// BreakBlock removes the targeted block.
func (g *Context) BreakBlock() bool {
	t := g.Player.Target
	if t == nil {
		return false
	}
	x, y, z := t.Block[0], t.Block[1], t.Block[2]
	if !g.World.DeleteBlockAt(x, y, z) {
		return false
	}
	g.log.Debugf("broke block at (%d, %d, %d)", x, y, z)
	g.Player.Mining.Reset()
	g.Player.UpdateTarget(g.World)
	return true
}

// Render spends the frame's rebuild budget and draws the solid pass, the
// transparent pass and, when enabled, the debug outlines.
func (g *Context) Render(d Renderer) {
	defer profiling.Track("game.Render")()
	g.World.DrawSolidBlocks(d)
	g.World.DrawTransparentBlocks(d)
	g.World.DrawDebugOutlines(d)
}

// ToggleDebugOutlines flips chunk outline drawing and returns the new state.
func (g *Context) ToggleDebugOutlines() bool {
	on := !g.World.DebugOutlines()
	g.World.SetDebugOutlines(on)
	return on
}

// ToggleFollowPlayer flips streaming around the player.
func (g *Context) ToggleFollowPlayer() bool {
	on := !g.World.FollowPlayer()
	g.World.SetFollowPlayer(on)
	g.log.Infof("follow player: %v", on)
	return on
}

// AdjustRadius changes the streaming radius by delta within the configured
// limits and returns the new radius.
func (g *Context) AdjustRadius(delta int) int {
	r := config.ClampRadius(g.World.Radius() + delta)
	if r != g.World.Radius() {
		g.World.SetRadius(r)
		g.log.Infof("radius %d", r)
	}
	return r
}

// CycleControlMode switches the player between normal, flying and noclip.
func (g *Context) CycleControlMode() player.ControlMode {
	m := g.Player.CycleControlMode()
	g.log.Infof("control mode %v", m)
	return m
}

// Frames returns the number of ticks run so far.
func (g *Context) Frames() uint64 { return g.frames }
