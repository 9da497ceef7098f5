package world

import "blockworld/internal/registry"

// Column is the vertical stack of chunks sharing (X, Z). It is the unit of
// streaming.
type Column struct {
	X, Z   int
	Chunks [ChunkStackCount]*Chunk

	// decorated is set once the one-time decorator pass ran.
	decorated bool
	loaded    bool
}

// NewColumn creates a column of all-air chunks.
func NewColumn(x, z int) *Column {
	col := &Column{X: x, Z: z}
	for cy := range col.Chunks {
		col.Chunks[cy] = NewChunk(x, cy, z)
	}
	return col
}

// Key returns the column key.
func (col *Column) Key() ColumnKey {
	return ColumnKey{X: col.X, Z: col.Z}
}

// Chunk returns the chunk at vertical index cy, or nil outside the stack.
func (col *Column) Chunk(cy int) *Chunk {
	if cy < 0 || cy >= ChunkStackCount {
		return nil
	}
	return col.Chunks[cy]
}

// Get returns the block at column-local (lx, lz) and block Y index yi.
func (col *Column) Get(lx, yi, lz int) registry.BlockType {
	if yi < 0 || yi >= WorldHeight {
		return registry.BlockTypeNone
	}
	return col.Chunks[yi/ChunkSize].GetBlock(lx, yi%ChunkSize, lz)
}

// Set stores a block at column-local (lx, lz) and block Y index yi.
func (col *Column) Set(lx, yi, lz int, bt registry.BlockType) bool {
	if yi < 0 || yi >= WorldHeight {
		return false
	}
	return col.Chunks[yi/ChunkSize].SetBlock(lx, yi%ChunkSize, lz, bt)
}

// Origin returns the block index of the column's (0, 0, 0) cell.
func (col *Column) Origin() (xi, zi int) {
	return col.X * ChunkSize, col.Z * ChunkSize
}

// MarkDirty flags every chunk of the column.
func (col *Column) MarkDirty() {
	for _, ch := range col.Chunks {
		ch.MarkDirty()
	}
}

// MarkSidesDirty flags the chunks with blocks on any of the given horizontal
// sides. Faces elsewhere in the column do not depend on its neighbors.
func (col *Column) MarkSidesDirty(sides ...[2]int) {
	for _, ch := range col.Chunks {
		for _, d := range sides {
			if ch.hasBlocksOnSide(d[0], d[1]) {
				ch.MarkDirty()
				break
			}
		}
	}
}

// TopDown calls fn for each chunk from the highest to the lowest.
func (col *Column) TopDown(fn func(ch *Chunk)) {
	for cy := ChunkStackCount - 1; cy >= 0; cy-- {
		fn(col.Chunks[cy])
	}
}
