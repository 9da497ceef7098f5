// Package chunks uploads chunk meshes to the GPU and draws the solid and
// transparent passes of the world.
package chunks

import (
	"image"

	"blockworld/internal/graphics"
	"blockworld/internal/graphics/renderer"
	"blockworld/internal/meshing"
	"blockworld/internal/profiling"
	"blockworld/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// light shines mostly downward; world Y points down
var lightDir = mgl32.Vec3{0.3, 1.0, 0.5}.Normalize()

// BoxDrawer draws debug outlines on behalf of the world.
type BoxDrawer interface {
	Begin(ctx renderer.RenderContext)
	DrawBox(min, max, color mgl32.Vec3)
}

type gpuKey struct {
	coord world.ChunkCoord
	pass  meshing.Pass
}

type gpuMesh struct {
	vao, vbo, ebo uint32
	count         int32
	src           *meshing.Mesh
	lastUsed      uint64
}

// Chunks keeps one vertex array per chunk and pass. A mesh is re-uploaded
// when the chunk hands over a different mesh than last frame; arrays of
// chunks that were not drawn in a frame are freed.
type Chunks struct {
	shader  *graphics.Shader
	atlas   *image.RGBA
	texture uint32
	lines   BoxDrawer

	meshes  map[gpuKey]*gpuMesh
	scratch []float32
	frame   uint64

	ctx        renderer.RenderContext
	pass       meshing.Pass
	linesBound bool
	wireframe  bool
}

// NewChunks creates the renderable. atlas is uploaded in Init; lines receives
// the world's debug outlines.
func NewChunks(atlas *image.RGBA, lines BoxDrawer) *Chunks {
	return &Chunks{
		atlas:  atlas,
		lines:  lines,
		meshes: make(map[gpuKey]*gpuMesh),
	}
}

// Init compiles the chunk program and uploads the atlas.
func (c *Chunks) Init() error {
	var err error
	c.shader, err = graphics.NewShader("chunk")
	if err != nil {
		return err
	}
	c.texture = graphics.UploadTexture(c.atlas)
	return nil
}

// ToggleWireframe switches polygon mode between fill and lines.
func (c *Chunks) ToggleWireframe() bool {
	c.wireframe = !c.wireframe
	return c.wireframe
}

// Render draws the world through the game context, which spends the rebuild
// budget and calls back into DrawMesh and DrawBox.
func (c *Chunks) Render(ctx renderer.RenderContext) {
	defer profiling.Track("renderer.renderChunks")()
	c.frame++
	c.ctx = ctx
	c.pass = meshing.PassSolid
	c.linesBound = false

	c.bind()
	if c.wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}

	ctx.Game.Render(c)

	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	gl.Disable(gl.BLEND)
	gl.DepthMask(true)
	c.prune()
}

func (c *Chunks) bind() {
	c.shader.Use()
	c.shader.SetMatrix4("proj", &c.ctx.Proj[0])
	c.shader.SetMatrix4("view", &c.ctx.View[0])
	c.shader.SetVector3("lightDir", lightDir.X(), lightDir.Y(), lightDir.Z())
	c.shader.SetVector3("fogColor", renderer.SkyColor[0], renderer.SkyColor[1], renderer.SkyColor[2])
	c.shader.SetFloat("fogEnd", c.ctx.Camera.FarPlane*0.9)
	c.shader.SetInt("atlas", 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, c.texture)
}

// DrawMesh uploads m if it changed and draws it. The first transparent mesh
// of a frame switches to blending without depth writes.
func (c *Chunks) DrawMesh(coord world.ChunkCoord, pass meshing.Pass, m *meshing.Mesh) {
	if c.linesBound {
		c.bind()
		c.linesBound = false
	}
	if pass != c.pass {
		c.pass = pass
		if pass == meshing.PassTransparent {
			gl.Enable(gl.BLEND)
			gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
			gl.DepthMask(false)
		} else {
			gl.Disable(gl.BLEND)
			gl.DepthMask(true)
		}
	}

	key := gpuKey{coord: coord, pass: pass}
	g := c.meshes[key]
	if g == nil {
		g = c.newGPUMesh()
		c.meshes[key] = g
	}
	if g.src != m {
		c.upload(g, m)
	}
	g.lastUsed = c.frame
	if g.count == 0 {
		return
	}
	gl.BindVertexArray(g.vao)
	gl.DrawElements(gl.TRIANGLES, g.count, gl.UNSIGNED_INT, gl.PtrOffset(0))
}

// DrawBox forwards debug outlines to the line renderer.
func (c *Chunks) DrawBox(min, max, color mgl32.Vec3) {
	if !c.linesBound {
		c.lines.Begin(c.ctx)
		c.linesBound = true
	}
	c.lines.DrawBox(min, max, color)
}

func (c *Chunks) newGPUMesh() *gpuMesh {
	g := &gpuMesh{}
	gl.GenVertexArrays(1, &g.vao)
	gl.GenBuffers(1, &g.vbo)
	gl.GenBuffers(1, &g.ebo)

	gl.BindVertexArray(g.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	stride := int32(meshing.VertexStride * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)
	gl.BindVertexArray(0)
	return g
}

func (c *Chunks) upload(g *gpuMesh, m *meshing.Mesh) {
	defer profiling.Track("renderer.uploadChunkMesh")()
	g.src = m
	g.count = int32(len(m.Indices))
	if g.count == 0 {
		return
	}
	c.scratch = m.Interleaved(c.scratch)

	gl.BindVertexArray(g.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(c.scratch)*4, gl.Ptr(c.scratch), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)
	gl.BindVertexArray(0)
}

func (c *Chunks) prune() {
	for k, g := range c.meshes {
		if g.lastUsed != c.frame {
			deleteGPUMesh(g)
			delete(c.meshes, k)
		}
	}
}

func deleteGPUMesh(g *gpuMesh) {
	gl.DeleteVertexArrays(1, &g.vao)
	gl.DeleteBuffers(1, &g.vbo)
	gl.DeleteBuffers(1, &g.ebo)
}

// Dispose frees every GPU resource.
func (c *Chunks) Dispose() {
	for k, g := range c.meshes {
		deleteGPUMesh(g)
		delete(c.meshes, k)
	}
	if c.texture != 0 {
		gl.DeleteTextures(1, &c.texture)
		c.texture = 0
	}
	c.shader.Delete()
}

// SetViewport is a no-op; projection comes from the camera.
func (c *Chunks) SetViewport(int, int) {}
