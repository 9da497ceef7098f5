package renderer

import (
	"fmt"

	"blockworld/internal/config"
	"blockworld/internal/game"
	"blockworld/internal/graphics"
	"blockworld/internal/profiling"
	"blockworld/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// SkyColor clears the frame and tints distant terrain.
var SkyColor = [3]float32{0.53, 0.81, 0.92}

// sprint widens the view by this many degrees
const sprintFOVBoost = 10

// Renderer orchestrates rendering via renderable features
type Renderer struct {
	renderables []Renderable
	camera      *graphics.Camera

	// FOV transition
	baseFOV    float32
	currentFOV float32
}

// NewRenderer configures global GL state and initializes rs in order.
func NewRenderer(cfg config.RenderSettings, radius int, rs ...Renderable) (*Renderer, error) {
	gl.Enable(gl.DEPTH_TEST)
	if cfg.BackFaceCulling {
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	}
	gl.FrontFace(gl.CCW)

	r := &Renderer{
		renderables: rs,
		camera:      graphics.NewCamera(cfg.Width, cfg.Height, cfg.FOV, FarPlane(radius)),
		baseFOV:     cfg.FOV,
		currentFOV:  cfg.FOV,
	}
	for _, rr := range rs {
		if err := rr.Init(); err != nil {
			r.Dispose()
			return nil, fmt.Errorf("init renderable %T: %w", rr, err)
		}
	}
	r.UpdateViewport(cfg.Width, cfg.Height)
	return r, nil
}

// FarPlane returns a far clip distance that covers a streaming radius.
func FarPlane(radius int) float32 {
	return float32(radius+2) * world.ChunkSize * world.BlockWidth
}

// Render draws one frame of g.
func (r *Renderer) Render(g *game.Context, dt float64) {
	defer profiling.Track("renderer.Render")()
	gl.ClearColor(SkyColor[0], SkyColor[1], SkyColor[2], 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	p := g.Player
	target := r.baseFOV
	hs := p.Velocity.X()*p.Velocity.X() + p.Velocity.Z()*p.Velocity.Z()
	walk := p.Settings().WalkSpeed * 1.1
	if hs > walk*walk {
		target += sprintFOVBoost
	}
	step := float32(dt) * 100
	if r.currentFOV < target {
		r.currentFOV = min(r.currentFOV+step, target)
	} else if r.currentFOV > target {
		r.currentFOV = max(r.currentFOV-step, target)
	}
	r.camera.FOV = r.currentFOV
	r.camera.FarPlane = FarPlane(g.World.Radius())

	ctx := RenderContext{
		Camera: r.camera,
		Game:   g,
		DT:     dt,
		View:   p.ViewMatrix(),
		Proj:   r.camera.Projection(),
	}
	for _, renderable := range r.renderables {
		renderable.Render(ctx)
	}
}

// Dispose cleans up all renderables in reverse order
func (r *Renderer) Dispose() {
	for i := len(r.renderables) - 1; i >= 0; i-- {
		r.renderables[i].Dispose()
	}
}

// Camera returns the camera instance
func (r *Renderer) Camera() *graphics.Camera {
	return r.camera
}

// UpdateViewport updates the camera and every renderable.
func (r *Renderer) UpdateViewport(width, height int) {
	r.camera.SetViewport(width, height)
	for _, rr := range r.renderables {
		rr.SetViewport(width, height)
	}
}
