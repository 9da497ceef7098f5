package wireframe

import (
	"blockworld/internal/graphics"
	"blockworld/internal/graphics/renderer"
	"blockworld/internal/profiling"
	"blockworld/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// highlight boxes grow by this much so they do not z-fight the block
const highlightInset = 0.05

var highlightColor = mgl32.Vec3{0, 0, 0}

// unit cube edges, scaled per box by the model matrix
var cubeEdges = []float32{
	0, 0, 0, 1, 0, 0,
	1, 0, 0, 1, 1, 0,
	1, 1, 0, 0, 1, 0,
	0, 1, 0, 0, 0, 0,

	0, 0, 1, 1, 0, 1,
	1, 0, 1, 1, 1, 1,
	1, 1, 1, 0, 1, 1,
	0, 1, 1, 0, 0, 1,

	0, 0, 0, 0, 0, 1,
	1, 0, 0, 1, 0, 1,
	1, 1, 0, 1, 1, 1,
	0, 1, 0, 0, 1, 1,
}

// Wireframe draws line boxes: the targeted block and, on request, the debug
// outlines of chunks and columns.
type Wireframe struct {
	shader *graphics.Shader
	vao    uint32
	vbo    uint32
}

// NewWireframe creates a new wireframe renderable
func NewWireframe() *Wireframe {
	return &Wireframe{}
}

// Init initializes the wireframe rendering system
func (w *Wireframe) Init() error {
	var err error
	w.shader, err = graphics.NewShader("lines")
	if err != nil {
		return err
	}

	gl.GenVertexArrays(1, &w.vao)
	gl.BindVertexArray(w.vao)
	gl.GenBuffers(1, &w.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, w.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(cubeEdges)*4, gl.Ptr(cubeEdges), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.BindVertexArray(0)
	return nil
}

// Begin binds the line program with the frame's camera. DrawBox calls must
// follow it.
func (w *Wireframe) Begin(ctx renderer.RenderContext) {
	w.shader.Use()
	w.shader.SetMatrix4("proj", &ctx.Proj[0])
	w.shader.SetMatrix4("view", &ctx.View[0])
	gl.BindVertexArray(w.vao)
}

// DrawBox draws the edges of the box [min, max].
func (w *Wireframe) DrawBox(min, max, color mgl32.Vec3) {
	size := max.Sub(min)
	model := mgl32.Translate3D(min.X(), min.Y(), min.Z()).Mul4(mgl32.Scale3D(size.X(), size.Y(), size.Z()))
	w.shader.Use()
	w.shader.SetMatrix4("model", &model[0])
	w.shader.SetVector3("color", color.X(), color.Y(), color.Z())
	gl.BindVertexArray(w.vao)
	gl.DrawArrays(gl.LINES, 0, int32(len(cubeEdges)/3))
}

// Render outlines the targeted block.
func (w *Wireframe) Render(ctx renderer.RenderContext) {
	t := ctx.Game.Player.Target
	if t == nil {
		return
	}
	defer profiling.Track("renderer.renderHighlightedBlock")()
	w.Begin(ctx)
	box := world.BlockAABB(t.Block[0], t.Block[1], t.Block[2])
	pad := mgl32.Vec3{highlightInset, highlightInset, highlightInset}
	w.DrawBox(box.Min.Sub(pad), box.Max.Add(pad), highlightColor)
}

// Dispose cleans up OpenGL resources
func (w *Wireframe) Dispose() {
	if w.vao != 0 {
		gl.DeleteVertexArrays(1, &w.vao)
	}
	if w.vbo != 0 {
		gl.DeleteBuffers(1, &w.vbo)
	}
	w.shader.Delete()
}

// SetViewport is a no-op; lines are drawn in world space.
func (w *Wireframe) SetViewport(int, int) {}
