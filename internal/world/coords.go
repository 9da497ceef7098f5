package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// BlockWidth is the edge length of one block in world units.
	BlockWidth = 16

	// ChunkSize is the edge length of a chunk in blocks.
	ChunkSize   = 16
	ChunkVolume = ChunkSize * ChunkSize * ChunkSize

	// WorldHeight is the height of the world in blocks.
	WorldHeight     = 64
	ChunkStackCount = WorldHeight / ChunkSize
)

// ChunkCoord addresses a chunk in chunk-grid space.
type ChunkCoord struct {
	X, Y, Z int
}

// ColumnKey addresses a chunk column.
type ColumnKey struct {
	X, Z int
}

// Column returns the key of the column holding the chunk.
func (c ChunkCoord) Column() ColumnKey {
	return ColumnKey{X: c.X, Z: c.Z}
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// mod is the floor-mod companion of floorDiv; the result is always in [0, b).
func mod(a, b int) int {
	return ((a % b) + b) % b
}

func floorf(v float32) int {
	return int(math.Floor(float64(v)))
}

// WorldToBlockCoords converts a world position to fractional block-index space.
// World Y points down, so block Y is the negated world Y.
func WorldToBlockCoords(p mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{p.X() / BlockWidth, -p.Y() / BlockWidth, p.Z() / BlockWidth}
}

// WorldToBlockIndex returns the index of the block containing p.
func WorldToBlockIndex(p mgl32.Vec3) (xi, yi, zi int) {
	b := WorldToBlockCoords(p)
	return floorf(b.X()), floorf(b.Y()), floorf(b.Z())
}

// WorldToChunkIndex returns the chunk containing p.
func WorldToChunkIndex(p mgl32.Vec3) ChunkCoord {
	return BlockIndexToChunkIndex(WorldToBlockIndex(p))
}

// WorldToChunkBlockIndex returns the chunk-local index of the block containing p.
func WorldToChunkBlockIndex(p mgl32.Vec3) (lx, ly, lz int) {
	return BlockIndexToChunkBlockIndex(WorldToBlockIndex(p))
}

// WorldToColumnKey returns the column containing p.
func WorldToColumnKey(p mgl32.Vec3) ColumnKey {
	return WorldToChunkIndex(p).Column()
}

// BlockIndexToChunkIndex returns the chunk holding block (xi, yi, zi).
func BlockIndexToChunkIndex(xi, yi, zi int) ChunkCoord {
	return ChunkCoord{X: floorDiv(xi, ChunkSize), Y: floorDiv(yi, ChunkSize), Z: floorDiv(zi, ChunkSize)}
}

// BlockIndexToChunkBlockIndex returns the chunk-local index of a block. Each
// component lies in [0, ChunkSize) also for negative block indices.
func BlockIndexToChunkBlockIndex(xi, yi, zi int) (lx, ly, lz int) {
	return mod(xi, ChunkSize), mod(yi, ChunkSize), mod(zi, ChunkSize)
}

// BlockIndexToWorldCoords returns the world position of the block's minimum
// index corner: (xi*BW, -yi*BW, zi*BW).
func BlockIndexToWorldCoords(xi, yi, zi int) mgl32.Vec3 {
	return mgl32.Vec3{float32(xi) * BlockWidth, -float32(yi) * BlockWidth, float32(zi) * BlockWidth}
}

// BlockAABB returns the box occupied by block (xi, yi, zi). It depends only on
// the index, not on what the block holds.
func BlockAABB(xi, yi, zi int) AABB {
	return AABB{
		Min: mgl32.Vec3{float32(xi) * BlockWidth, -float32(yi+1) * BlockWidth, float32(zi) * BlockWidth},
		Max: mgl32.Vec3{float32(xi+1) * BlockWidth, -float32(yi) * BlockWidth, float32(zi+1) * BlockWidth},
	}
}

// ChunkAABB returns the world-space box of a chunk.
func ChunkAABB(c ChunkCoord) AABB {
	lo := BlockAABB(c.X*ChunkSize, c.Y*ChunkSize+ChunkSize-1, c.Z*ChunkSize)
	hi := BlockAABB(c.X*ChunkSize+ChunkSize-1, c.Y*ChunkSize, c.Z*ChunkSize+ChunkSize-1)
	return AABB{Min: lo.Min, Max: hi.Max}
}

// ColumnAABB returns the world-space box of a full column.
func ColumnAABB(k ColumnKey) AABB {
	lo := ChunkAABB(ChunkCoord{X: k.X, Y: ChunkStackCount - 1, Z: k.Z})
	hi := ChunkAABB(ChunkCoord{X: k.X, Y: 0, Z: k.Z})
	return AABB{Min: lo.Min, Max: hi.Max}
}
