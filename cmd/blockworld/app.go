package main

import (
	"time"

	"blockworld/internal/config"
	"blockworld/internal/game"
	"blockworld/internal/graphics/renderables/chunks"
	"blockworld/internal/graphics/renderer"
	"blockworld/internal/input"
	"blockworld/internal/logging"
	"blockworld/internal/metrics"
	"blockworld/internal/profiling"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// frames slower than this are logged with their top timers
const slowFrame = 33 * time.Millisecond

// App drives the frame loop: input, game tick, rendering and periodic stats.
type App struct {
	window       *glfw.Window
	inputManager *input.InputManager
	game         *game.Context
	renderer     *renderer.Renderer
	chunks       *chunks.Chunks
	cfg          *config.Config
	log          *logging.Logger

	paused        bool
	showProfiling bool
	fpsLimiter    *game.FPSLimiter
	lastTime      time.Time
	lastStats     time.Time
}

func NewApp(window *glfw.Window, im *input.InputManager, g *game.Context, r *renderer.Renderer, c *chunks.Chunks, log *logging.Logger) *App {
	limit := g.Config.Render.FPSLimit
	if g.Config.Render.VSync {
		limit = 0
	}
	now := time.Now()
	return &App{
		window:       window,
		inputManager: im,
		game:         g,
		renderer:     r,
		chunks:       c,
		cfg:          g.Config,
		log:          log.With("app"),
		fpsLimiter:   game.NewFPSLimiter(limit),
		lastTime:     now,
		lastStats:    now,
	}
}

func (a *App) Run() {
	for !a.window.ShouldClose() {
		a.tick()
	}
}

func (a *App) tick() {
	profiling.ResetFrame()
	now := time.Now()
	dt := now.Sub(a.lastTime).Seconds()
	a.lastTime = now

	func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()
	a.handleInputActions()

	if !a.paused {
		dx, dy := a.inputManager.Look()
		a.game.Player.Look(dx, dy)
		a.game.Tick(float32(dt), a.inputManager.Controls())
	}

	a.renderer.Render(a.game, dt)
	func() { defer profiling.Track("glfw.SwapBuffers")(); a.window.SwapBuffers() }()

	if d := time.Since(now); d > slowFrame {
		a.log.Debugf("slow frame: %v (world %v, %d mesh uploads). Top tasks: %s",
			d, profiling.SumWithPrefix("world."), profiling.Count("renderer.uploadChunkMesh"), profiling.TopN(5))
	}
	a.logStats(now)

	// Clear "JustPressed" flags
	a.inputManager.PostUpdate()
	a.fpsLimiter.Wait()
}

func (a *App) handleInputActions() {
	im := a.inputManager
	g := a.game

	if im.JustPressed(input.ActionPause) {
		a.SetPaused(!a.paused)
	}
	if a.paused {
		return
	}
	if slot := im.HotbarSlot(); slot >= 0 {
		g.Hotbar.Select(slot)
	}
	if s := im.Scroll(); s != 0 {
		g.Hotbar.Scroll(-s)
	}
	if im.JustPressed(input.ActionCycleMode) {
		g.CycleControlMode()
	}
	if im.JustPressed(input.ActionToggleOutlines) {
		a.log.Infof("debug outlines: %v", g.ToggleDebugOutlines())
	}
	if im.JustPressed(input.ActionToggleFollow) {
		g.ToggleFollowPlayer()
	}
	if im.JustPressed(input.ActionToggleWireframe) {
		a.chunks.ToggleWireframe()
	}
	if im.JustPressed(input.ActionToggleProfiling) {
		a.showProfiling = !a.showProfiling
	}
	if im.JustPressed(input.ActionRadiusUp) {
		a.setRadius(g.AdjustRadius(1))
	}
	if im.JustPressed(input.ActionRadiusDown) {
		a.setRadius(g.AdjustRadius(-1))
	}
}

func (a *App) setRadius(r int) {
	a.renderer.Camera().FarPlane = renderer.FarPlane(r)
	a.log.Infof("render radius: %d", r)
}

// SetPaused releases or captures the cursor.
func (a *App) SetPaused(paused bool) {
	a.paused = paused
	if paused {
		a.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
		return
	}
	a.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	a.inputManager.ResetCursor()
}

func (a *App) logStats(now time.Time) {
	every := a.cfg.Metrics.StatsInterval
	if a.showProfiling {
		every = time.Second
	}
	if every <= 0 || now.Sub(a.lastStats) < every {
		return
	}
	a.lastStats = now

	rss, err := metrics.ProcessRSS()
	if err != nil {
		a.log.Debugf("process stats: %v", err)
	}
	a.log.Infof("%s", a.game.StatsLine(rss))
	if a.showProfiling {
		a.log.Infof("frame timers: %s", profiling.TopN(8))
	}
}

// RefreshRender repaints during window resizes.
func (a *App) RefreshRender() {
	a.renderer.Render(a.game, 0)
	a.window.SwapBuffers()
}
