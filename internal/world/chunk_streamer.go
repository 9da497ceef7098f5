package world

import (
	"blockworld/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

// RingKeys returns every column key within Chebyshev distance radius of
// center, ring by ring: the center first, then each square ring walked along
// its four edges.
func RingKeys(center ColumnKey, radius int) []ColumnKey {
	side := 2*radius + 1
	keys := make([]ColumnKey, 0, side*side)
	cx, cz := center.X, center.Z
	for r := 0; r <= radius; r++ {
		if r == 0 {
			keys = append(keys, center)
			continue
		}

		x0 := cx - r
		x1 := cx + r
		z0 := cz - r
		z1 := cz + r

		for xk := x0; xk <= x1; xk++ {
			keys = append(keys, ColumnKey{X: xk, Z: z0})
		}
		for zk := z0 + 1; zk <= z1-1; zk++ {
			keys = append(keys, ColumnKey{X: x1, Z: zk})
		}
		for xk := x1; xk >= x0; xk-- {
			keys = append(keys, ColumnKey{X: xk, Z: z1})
		}
		for zk := z1 - 1; zk >= z0+1; zk-- {
			keys = append(keys, ColumnKey{X: x0, Z: zk})
		}
	}
	return keys
}

// chebyshev returns the ring index of k around center.
func chebyshev(center, k ColumnKey) int {
	dx := k.X - center.X
	if dx < 0 {
		dx = -dx
	}
	dz := k.Z - center.Z
	if dz < 0 {
		dz = -dz
	}
	return max(dx, dz)
}

// Update runs the streaming policy for one frame. Columns that left the ring
// around the player move to the eviction cache; columns that entered it are
// restored from the cache or generated. Nothing happens while the player stays
// in the same column.
func (w *World) Update(playerPos mgl32.Vec3) {
	if !w.followPlayer {
		return
	}
	defer profiling.Track("world.Update")()

	center := WorldToColumnKey(playerPos)
	if w.streamed && center == w.center && w.radius == w.streamedRadius {
		return
	}
	w.streamAround(center)
}

// StreamAround loads the ring around a column regardless of FollowPlayer.
func (w *World) StreamAround(center ColumnKey) {
	defer profiling.Track("world.StreamAround")()
	w.streamAround(center)
}

func (w *World) streamAround(center ColumnKey) {
	var unloaded, restored, generated int

	for _, key := range append([]ColumnKey(nil), w.store.LoadedKeys()...) {
		if chebyshev(center, key) > w.radius {
			w.UnloadColumn(key)
			unloaded++
		}
	}

	for _, key := range RingKeys(center, w.radius) {
		if _, ok := w.store.Loaded(key); ok {
			continue
		}
		if w.store.Cached(key) {
			restored++
		} else {
			generated++
		}
		w.LoadColumn(key)
	}

	w.center = center
	w.streamedRadius = w.radius
	w.streamed = true
	w.metrics.SetColumns(w.store.LoadedCount(), w.store.CachedCount())
	if unloaded+restored+generated > 0 {
		w.log.Debugf("streamed around (%d,%d): -%d loaded, +%d restored, +%d generated, %d cached",
			center.X, center.Z, unloaded, restored, generated, w.store.CachedCount())
	}
}

// LoadColumn makes a column resident: restored from the eviction cache when
// present, generated otherwise. Neighboring loaded columns are marked dirty
// since their border faces may now be hidden.
func (w *World) LoadColumn(key ColumnKey) *Column {
	if col, ok := w.store.Loaded(key); ok {
		return col
	}
	col, ok := w.store.Restore(key)
	if ok {
		// border faces were meshed against neighbors that may have changed since
		col.MarkSidesDirty(horizontalSides[:]...)
		w.metrics.ColumnRestored()
		w.stats.Restored++
	} else {
		col = w.generateColumn(key)
		w.store.Install(col)
		w.metrics.ColumnGenerated()
		w.stats.Generated++
	}
	w.queueColumn(col)
	w.touchNeighbors(key)
	return col
}

// UnloadColumn moves a loaded column to the eviction cache.
func (w *World) UnloadColumn(key ColumnKey) {
	if _, ok := w.store.Loaded(key); !ok {
		return
	}
	for _, old := range w.store.Unload(key) {
		w.metrics.CacheDropped()
		w.log.Debugf("dropped cached column (%d,%d)", old.X, old.Z)
	}
	w.metrics.ColumnEvicted()
	w.touchNeighbors(key)
}

func (w *World) generateColumn(key ColumnKey) *Column {
	defer profiling.Track("world.generateColumn")()
	col := NewColumn(key.X, key.Z)
	if w.gen != nil {
		w.gen.PopulateColumn(col)
	}
	if w.decorator != nil && !col.decorated {
		w.decorator.Decorate(col)
	}
	col.decorated = true
	return col
}

var horizontalSides = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// touchNeighbors dirties the chunks of the adjacent loaded columns that have
// blocks on the face shared with key.
func (w *World) touchNeighbors(key ColumnKey) {
	for _, d := range horizontalSides {
		if nb, ok := w.store.Loaded(ColumnKey{X: key.X + d[0], Z: key.Z + d[1]}); ok {
			nb.MarkSidesDirty([2]int{-d[0], -d[1]})
			w.queueColumn(nb)
		}
	}
}
