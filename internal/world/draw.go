package world

import (
	"blockworld/internal/meshing"
	"blockworld/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

// MeshDrawer submits a chunk mesh to the GPU.
type MeshDrawer interface {
	DrawMesh(coord ChunkCoord, pass meshing.Pass, m *meshing.Mesh)
}

// BoxDrawer draws a wireframe box.
type BoxDrawer interface {
	DrawBox(min, max, color mgl32.Vec3)
}

var (
	chunkOutlineColor  = mgl32.Vec3{1, 1, 0}
	columnOutlineColor = mgl32.Vec3{1, 0, 0}
)

// DrawSolidBlocks spends this frame's rebuild budget and then hands every
// non-empty solid mesh to d. Call it before DrawTransparentBlocks.
func (w *World) DrawSolidBlocks(d MeshDrawer) {
	defer profiling.Track("world.DrawSolidBlocks")()
	w.BuildMeshes()
	w.drawPass(d, meshing.PassSolid)
}

// DrawTransparentBlocks hands every non-empty transparent mesh to d.
func (w *World) DrawTransparentBlocks(d MeshDrawer) {
	defer profiling.Track("world.DrawTransparentBlocks")()
	w.drawPass(d, meshing.PassTransparent)
}

// drawPass walks columns in key order and each column top to bottom.
func (w *World) drawPass(d MeshDrawer, p meshing.Pass) {
	w.store.EachLoaded(func(col *Column) {
		col.TopDown(func(ch *Chunk) {
			m := ch.Mesh(p)
			if m.Empty() {
				return
			}
			d.DrawMesh(ch.Coord(), p, m)
		})
	})
}

// DrawDebugOutlines draws chunk and column boxes when outlines are enabled.
func (w *World) DrawDebugOutlines(d BoxDrawer) {
	if !w.debugOutlines {
		return
	}
	w.store.EachLoaded(func(col *Column) {
		b := ColumnAABB(col.Key())
		d.DrawBox(b.Min, b.Max, columnOutlineColor)
		col.TopDown(func(ch *Chunk) {
			if ch.IsEmpty() {
				return
			}
			b := ChunkAABB(ch.Coord())
			d.DrawBox(b.Min, b.Max, chunkOutlineColor)
		})
	})
}
