package world

import (
	"sort"

	"blockworld/internal/logging"
	"blockworld/internal/meshing"
	"blockworld/internal/metrics"
	"blockworld/internal/profiling"
	"blockworld/internal/registry"
)

// Options configures a World.
type Options struct {
	// Radius is the streaming radius in columns.
	Radius int
	// RebuildBudget caps non-empty chunk rebuilds per BuildMeshes call.
	RebuildBudget int
	// EvictionCacheLimit bounds the unloaded-column cache; 0 is unbounded.
	EvictionCacheLimit int
	FollowPlayer       bool
	DebugOutlines      bool
	// MeshWorkers is the goroutine count for BuildAllMeshes; below 2 builds inline.
	MeshWorkers int

	Decorator Decorator
	Logger    *logging.Logger
	Metrics   *metrics.Metrics
}

// DefaultOptions returns a radius-3 world that follows the player and rebuilds
// one chunk per frame.
func DefaultOptions() Options {
	return Options{Radius: 3, RebuildBudget: 1, FollowPlayer: true}
}

// Stats is a snapshot of world bookkeeping.
type Stats struct {
	LoadedColumns  int
	CachedColumns  int
	QueuedRebuilds int
	Generated      int
	Restored       int
	Rebuilt        int
	Edits          int
	DroppedEdits   int
}

// World owns the loaded chunk columns, the eviction cache, terrain generation
// and the mesh rebuild schedule.
type World struct {
	reg       *registry.Registry
	gen       TerrainGenerator
	decorator Decorator
	store     *ColumnStore
	queue     rebuildQueue

	radius        int
	rebuildBudget int
	meshWorkers   int
	followPlayer  bool
	debugOutlines bool

	// last streaming center
	center         ColumnKey
	streamedRadius int
	streamed       bool

	log     *logging.Logger
	metrics *metrics.Metrics
	stats   Stats
}

// New creates an empty world. Columns appear through Update or LoadColumn.
// A nil gen leaves new columns filled with air.
func New(reg *registry.Registry, gen TerrainGenerator, opts Options) *World {
	if opts.RebuildBudget < 1 {
		opts.RebuildBudget = 1
	}
	if opts.Radius < 0 {
		opts.Radius = 0
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	return &World{
		reg:           reg,
		gen:           gen,
		decorator:     opts.Decorator,
		store:         NewColumnStore(opts.EvictionCacheLimit),
		radius:        opts.Radius,
		rebuildBudget: opts.RebuildBudget,
		meshWorkers:   opts.MeshWorkers,
		followPlayer:  opts.FollowPlayer,
		debugOutlines: opts.DebugOutlines,
		log:           log.With("world"),
		metrics:       opts.Metrics,
	}
}

// NewEmpty creates a world without terrain, mainly for tests and tools.
func NewEmpty(reg *registry.Registry) *World {
	opts := DefaultOptions()
	opts.FollowPlayer = false
	return New(reg, nil, opts)
}

// Registry returns the block registry.
func (w *World) Registry() *registry.Registry { return w.reg }

// Radius returns the streaming radius in columns.
func (w *World) Radius() int { return w.radius }

// SetRadius changes the streaming radius; the next Update applies it.
func (w *World) SetRadius(r int) { w.radius = max(r, 0) }

// FollowPlayer reports whether Update streams around the player.
func (w *World) FollowPlayer() bool { return w.followPlayer }

// SetFollowPlayer toggles streaming.
func (w *World) SetFollowPlayer(on bool) { w.followPlayer = on }

// DebugOutlines reports whether DrawDebugOutlines draws anything.
func (w *World) DebugOutlines() bool { return w.debugOutlines }

// SetDebugOutlines toggles chunk and column outlines.
func (w *World) SetDebugOutlines(on bool) { w.debugOutlines = on }

// Column returns a loaded column.
func (w *World) Column(key ColumnKey) (*Column, bool) {
	return w.store.Loaded(key)
}

// LoadedKeys returns the loaded column keys in stable order.
func (w *World) LoadedKeys() []ColumnKey {
	return append([]ColumnKey(nil), w.store.LoadedKeys()...)
}

// IsCached reports whether a column sits in the eviction cache.
func (w *World) IsCached(key ColumnKey) bool {
	return w.store.Cached(key)
}

// ChunkAt returns the loaded chunk at chunk coordinates.
func (w *World) ChunkAt(c ChunkCoord) *Chunk {
	col, ok := w.store.Loaded(c.Column())
	if !ok {
		return nil
	}
	return col.Chunk(c.Y)
}

// GetBlockType returns the block at a block index, or BlockTypeNone when the
// column is not loaded or yi is outside the world's height.
func (w *World) GetBlockType(xi, yi, zi int) registry.BlockType {
	if yi < 0 || yi >= WorldHeight {
		return registry.BlockTypeNone
	}
	ch := w.ChunkAt(BlockIndexToChunkIndex(xi, yi, zi))
	if ch == nil {
		return registry.BlockTypeNone
	}
	lx, ly, lz := BlockIndexToChunkBlockIndex(xi, yi, zi)
	return ch.GetBlock(lx, ly, lz)
}

// IsAir reports whether a loaded cell holds air. Missing cells are not air.
func (w *World) IsAir(xi, yi, zi int) bool {
	return w.GetBlockType(xi, yi, zi) == registry.BlockTypeAir
}

// IsSolid reports whether a cell blocks movement and ray casts. Air, liquids
// and missing cells do not.
func (w *World) IsSolid(xi, yi, zi int) bool {
	return w.reg.IsSolid(w.GetBlockType(xi, yi, zi))
}

// GetBlockAABB returns the box of block (xi, yi, zi).
func (w *World) GetBlockAABB(xi, yi, zi int) AABB {
	return BlockAABB(xi, yi, zi)
}

// SetBlockAt stores bt at a block index. Edits against unloaded columns or
// outside the world's height are dropped and false is returned. The owning
// chunk and every loaded neighbor chunk sharing a face with the cell are
// marked dirty.
func (w *World) SetBlockAt(bt registry.BlockType, xi, yi, zi int) bool {
	return w.edit("set", bt, xi, yi, zi)
}

// DeleteBlockAt replaces the block at a block index with air.
func (w *World) DeleteBlockAt(xi, yi, zi int) bool {
	return w.edit("delete", registry.BlockTypeAir, xi, yi, zi)
}

func (w *World) edit(op string, bt registry.BlockType, xi, yi, zi int) bool {
	if bt >= registry.BlockTypeCount || (bt != registry.BlockTypeAir && !w.reg.Get(bt).IsPlaceable) {
		w.log.Warnf("refusing to place %v at (%d,%d,%d)", bt, xi, yi, zi)
		return false
	}
	var ch *Chunk
	if yi >= 0 && yi < WorldHeight {
		ch = w.ChunkAt(BlockIndexToChunkIndex(xi, yi, zi))
	}
	if ch == nil {
		w.stats.DroppedEdits++
		w.metrics.EditDropped()
		w.log.Debugf("dropped %s at unloaded (%d,%d,%d)", op, xi, yi, zi)
		return false
	}

	lx, ly, lz := BlockIndexToChunkBlockIndex(xi, yi, zi)
	if !ch.SetBlock(lx, ly, lz, bt) {
		return true
	}
	w.stats.Edits++
	w.metrics.Edit(op)
	w.queue.push(ch)
	w.markBoundaryNeighbors(ch, xi, yi, zi)
	return true
}

// markBoundaryNeighbors dirties each loaded chunk across a face of the cell
// that lies on a chunk boundary. All six directions are checked on their own.
func (w *World) markBoundaryNeighbors(owner *Chunk, xi, yi, zi int) {
	own := owner.Coord()
	for _, face := range registry.Faces {
		off := face.Offset()
		nx, ny, nz := xi+off[0], yi+off[1], zi+off[2]
		if ny < 0 || ny >= WorldHeight {
			continue
		}
		c := BlockIndexToChunkIndex(nx, ny, nz)
		if c == own {
			continue
		}
		if nb := w.ChunkAt(c); nb != nil {
			nb.MarkDirty()
			w.queue.push(nb)
		}
	}
}

// queueColumn schedules every chunk of a column that needs a rebuild.
func (w *World) queueColumn(col *Column) {
	for _, ch := range col.Chunks {
		if ch.NeedsRebuild() {
			w.queue.push(ch)
		}
	}
}

// DirtyChunks lists the loaded chunks with a dirty or missing mesh, sorted.
func (w *World) DirtyChunks() []ChunkCoord {
	var out []ChunkCoord
	w.store.EachLoaded(func(col *Column) {
		for _, ch := range col.Chunks {
			if ch.NeedsRebuild() {
				out = append(out, ch.Coord())
			}
		}
	})
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Z != b.Z {
			return a.Z < b.Z
		}
		return a.Y < b.Y
	})
	return out
}

// BuildMeshes rebuilds queued chunks in FIFO order until RebuildBudget
// non-empty chunks were rebuilt. All-air chunks do not count against the
// budget. Chunks still waiting keep drawing their previous mesh.
func (w *World) BuildMeshes() int {
	return w.buildMeshes(w.rebuildBudget)
}

// BuildAllMeshes drains the rebuild queue, ignoring the budget. With
// MeshWorkers above one the chunks are meshed in parallel.
func (w *World) BuildAllMeshes() int {
	if w.meshWorkers < 2 {
		return w.buildMeshes(-1)
	}
	defer profiling.Track("world.BuildAllMeshes")()
	var batch []*Chunk
	for ch := w.queue.pop(); ch != nil; ch = w.queue.pop() {
		if w.isCurrent(ch) {
			batch = append(batch, ch)
		}
	}
	builds := make([]func() meshing.PassMask, len(batch))
	for i, ch := range batch {
		builds[i] = func() meshing.PassMask { return ch.BuildMeshes(w.reg, w) }
	}
	pool := meshing.NewWorkerPool(w.meshWorkers, len(builds))
	masks := pool.Run(builds)
	pool.Shutdown()

	rebuilt := 0
	for i, ch := range batch {
		if w.countRebuild(ch, masks[i]) {
			rebuilt++
		}
	}
	w.stats.Rebuilt += rebuilt
	w.metrics.SetRebuildQueue(w.queue.len())
	return rebuilt
}

func (w *World) buildMeshes(budget int) int {
	defer profiling.Track("world.BuildMeshes")()
	rebuilt := 0
	for budget < 0 || rebuilt < budget {
		ch := w.queue.pop()
		if ch == nil {
			break
		}
		if !w.isCurrent(ch) {
			continue
		}
		if w.countRebuild(ch, ch.BuildMeshes(w.reg, w)) {
			rebuilt++
		}
	}
	w.stats.Rebuilt += rebuilt
	w.metrics.SetRebuildQueue(w.queue.len())
	return rebuilt
}

// isCurrent reports whether ch still belongs to a loaded column. Chunks
// unloaded since they were queued are requeued on load.
func (w *World) isCurrent(ch *Chunk) bool {
	col, ok := w.store.Loaded(ch.Coord().Column())
	return ok && col.Chunks[ch.Y] == ch
}

// countRebuild records metrics for a rebuild and reports whether it counts
// against the budget.
func (w *World) countRebuild(ch *Chunk, mask meshing.PassMask) bool {
	if mask == 0 {
		return false
	}
	if mask&meshing.MaskSolid != 0 {
		w.metrics.MeshRebuilt(meshing.PassSolid.String())
	}
	if mask&meshing.MaskTransparent != 0 {
		w.metrics.MeshRebuilt(meshing.PassTransparent.String())
	}
	return !ch.IsEmpty()
}

// Stats returns current bookkeeping counters.
func (w *World) Stats() Stats {
	s := w.stats
	s.LoadedColumns = w.store.LoadedCount()
	s.CachedColumns = w.store.CachedCount()
	s.QueuedRebuilds = w.queue.len()
	return s
}
