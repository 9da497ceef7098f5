package world

import (
	"blockworld/internal/meshing"
	"blockworld/internal/registry"

	"github.com/go-gl/mathgl/mgl32"
)

// Chunk is a ChunkSize³ cube of blocks with cached solid and transparent meshes.
type Chunk struct {
	X, Y, Z int

	blocks [ChunkVolume]registry.BlockType
	// count of non-air blocks
	filled int

	meshes [2]*meshing.Mesh
	dirty  [2]bool
	queued bool
}

// NewChunk creates an all-air chunk at the given chunk coordinates. Both meshes
// start dirty.
func NewChunk(x, y, z int) *Chunk {
	return &Chunk{X: x, Y: y, Z: z, dirty: [2]bool{true, true}}
}

// Coord returns the chunk coordinates.
func (c *Chunk) Coord() ChunkCoord {
	return ChunkCoord{X: c.X, Y: c.Y, Z: c.Z}
}

// indexInChunk converts local coordinates to a flat index.
func indexInChunk(x, y, z int) int {
	return (x*ChunkSize+y)*ChunkSize + z
}

func inChunk(x, y, z int) bool {
	return x >= 0 && x < ChunkSize && y >= 0 && y < ChunkSize && z >= 0 && z < ChunkSize
}

// GetBlock returns the block at local coordinates, or BlockTypeNone when the
// coordinates address a neighbor chunk.
func (c *Chunk) GetBlock(x, y, z int) registry.BlockType {
	if !inChunk(x, y, z) {
		return registry.BlockTypeNone
	}
	return c.blocks[indexInChunk(x, y, z)]
}

// SetBlock stores a block at local coordinates and reports whether the chunk
// changed. Changing a block marks both meshes dirty.
func (c *Chunk) SetBlock(x, y, z int, bt registry.BlockType) bool {
	if !inChunk(x, y, z) || bt.IsMissing() {
		return false
	}
	i := indexInChunk(x, y, z)
	old := c.blocks[i]
	if old == bt {
		return false
	}
	c.blocks[i] = bt
	switch {
	case old == registry.BlockTypeAir:
		c.filled++
	case bt == registry.BlockTypeAir:
		c.filled--
	}
	c.MarkDirty()
	return true
}

// IsEmpty reports whether the chunk holds only air.
func (c *Chunk) IsEmpty() bool {
	return c.filled == 0
}

// hasBlocksOnSide reports whether any non-air block lies in the vertical
// slice facing the horizontal direction (dx, dz).
func (c *Chunk) hasBlocksOnSide(dx, dz int) bool {
	if c.filled == 0 {
		return false
	}
	for a := range ChunkSize {
		x, z := a, a
		switch {
		case dx > 0:
			x = ChunkSize - 1
		case dx < 0:
			x = 0
		}
		switch {
		case dz > 0:
			z = ChunkSize - 1
		case dz < 0:
			z = 0
		}
		for y := range ChunkSize {
			if c.blocks[indexInChunk(x, y, z)] != registry.BlockTypeAir {
				return true
			}
		}
	}
	return false
}

// Dims implements meshing.Volume.
func (c *Chunk) Dims() (int, int, int) {
	return ChunkSize, ChunkSize, ChunkSize
}

// LocalBlock implements meshing.Volume.
func (c *Chunk) LocalBlock(x, y, z int) registry.BlockType {
	return c.blocks[indexInChunk(x, y, z)]
}

// Origin returns the block index of local cell (0,0,0).
func (c *Chunk) Origin() [3]int {
	return [3]int{c.X * ChunkSize, c.Y * ChunkSize, c.Z * ChunkSize}
}

// WorldOrigin returns the world position of the chunk's minimum-index corner.
func (c *Chunk) WorldOrigin() mgl32.Vec3 {
	o := c.Origin()
	return BlockIndexToWorldCoords(o[0], o[1], o[2])
}

// MarkDirty flags both meshes for rebuild.
func (c *Chunk) MarkDirty() {
	c.dirty[meshing.PassSolid] = true
	c.dirty[meshing.PassTransparent] = true
}

// IsDirty reports whether the mesh of a pass must be rebuilt.
func (c *Chunk) IsDirty(p meshing.Pass) bool {
	return c.dirty[p]
}

// NeedsRebuild reports whether either mesh is dirty or missing.
func (c *Chunk) NeedsRebuild() bool {
	return c.dirty[0] || c.dirty[1] || c.meshes[0] == nil || c.meshes[1] == nil
}

// Mesh returns the cached mesh of a pass. It may be stale while a rebuild is
// pending and is nil before the first build.
func (c *Chunk) Mesh(p meshing.Pass) *meshing.Mesh {
	return c.meshes[p]
}

// BuildMeshes rebuilds every mesh that is dirty or missing, resolving
// neighbors outside the chunk through nb. It returns the passes rebuilt.
func (c *Chunk) BuildMeshes(reg *registry.Registry, nb meshing.NeighborSource) meshing.PassMask {
	var mask meshing.PassMask
	for _, p := range []meshing.Pass{meshing.PassSolid, meshing.PassTransparent} {
		if c.dirty[p] || c.meshes[p] == nil {
			mask |= 1 << p
		}
	}
	if mask == 0 {
		return 0
	}
	if c.IsEmpty() {
		for _, p := range []meshing.Pass{meshing.PassSolid, meshing.PassTransparent} {
			if mask&(1<<p) != 0 {
				c.meshes[p] = &meshing.Mesh{}
				c.dirty[p] = false
			}
		}
		return mask
	}
	res := meshing.Build(reg, c, nb, meshing.Options{
		Origin:     c.Origin(),
		BlockWidth: BlockWidth,
		Passes:     mask,
	})
	for _, p := range []meshing.Pass{meshing.PassSolid, meshing.PassTransparent} {
		if m := res.Mesh(p); m != nil {
			c.meshes[p] = m
			c.dirty[p] = false
		}
	}
	return mask
}
