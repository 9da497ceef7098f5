package physics

import (
	"math"

	"blockworld/internal/meshing"
	"blockworld/internal/profiling"
	"blockworld/internal/registry"
	"blockworld/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// ReachDistance is the interaction range in world units.
	ReachDistance = 5 * world.BlockWidth
	// RaySamples is the number of points Raycast tests along the ray.
	RaySamples = 100
)

// RaycastResult stores the result of a raycast operation.
type RaycastResult struct {
	HitPosition [3]int
	// AdjacentPosition is the cell across the hit face, where a new block goes.
	AdjacentPosition [3]int
	Face             registry.BlockFace
	Distance         float32
	Hit              bool
}

// RaycastFunc is the signature shared by Raycast and RaycastDDA.
type RaycastFunc func(start, direction mgl32.Vec3, maxDist float32, src BlockSource) RaycastResult

func hitResult(idx [3]int, face registry.BlockFace, dist float32) RaycastResult {
	off := face.Offset()
	return RaycastResult{
		HitPosition:      idx,
		AdjacentPosition: [3]int{idx[0] + off[0], idx[1] + off[1], idx[2] + off[2]},
		Face:             face,
		Distance:         dist,
		Hit:              true,
	}
}

// Raycast samples RaySamples evenly spaced points from start out to maxDist.
// The first point inside a solid block selects that block; the segment from
// the previous sample decides which face was crossed. Thin corner clips can
// fall between samples and be missed.
func Raycast(start, direction mgl32.Vec3, maxDist float32, src BlockSource) RaycastResult {
	defer profiling.Track("physics.Raycast")()
	if direction.Len() == 0 {
		return RaycastResult{}
	}
	dir := direction.Normalize()
	prev := start
	for i := 1; i <= RaySamples; i++ {
		dist := maxDist * float32(i) / RaySamples
		p := start.Add(dir.Mul(dist))
		xi, yi, zi := world.WorldToBlockIndex(p)
		if !src.IsSolid(xi, yi, zi) {
			prev = p
			continue
		}
		idx := [3]int{xi, yi, zi}
		face, entry, ok := crossedFace(prev, p, idx)
		if !ok {
			return hitResult(idx, facingFace(dir), dist)
		}
		return hitResult(idx, face, entry.Sub(start).Len())
	}
	return RaycastResult{}
}

// crossedFace finds the face of block idx that the segment a→b enters through.
func crossedFace(a, b mgl32.Vec3, idx [3]int) (registry.BlockFace, mgl32.Vec3, bool) {
	box := world.BlockAABB(idx[0], idx[1], idx[2])
	for _, face := range registry.Faces {
		n := meshing.FaceNormal(face)
		axis := normalAxis(n)
		plane := box.Min[axis]
		if n[axis] > 0 {
			plane = box.Max[axis]
		}
		// a on the outward side, b on the inward side
		if (a[axis]-plane)*n[axis] < 0 || (b[axis]-plane)*n[axis] > 0 {
			continue
		}
		t := float32(0)
		if d := b[axis] - a[axis]; d != 0 {
			t = (plane - a[axis]) / d
		}
		q := a.Add(b.Sub(a).Mul(t))
		if onFace(q, box, axis) {
			return face, q, true
		}
	}
	return 0, mgl32.Vec3{}, false
}

func normalAxis(n mgl32.Vec3) int {
	for i := range 3 {
		if n[i] != 0 {
			return i
		}
	}
	return 0
}

func onFace(q mgl32.Vec3, box world.AABB, skip int) bool {
	for i := range 3 {
		if i == skip {
			continue
		}
		if q[i] < box.Min[i]-contactEpsilon || q[i] > box.Max[i]+contactEpsilon {
			return false
		}
	}
	return true
}

// facingFace returns the face pointing most directly back along dir.
func facingFace(dir mgl32.Vec3) registry.BlockFace {
	best := registry.FaceFront
	bestDot := float32(math.MaxFloat32)
	for _, face := range registry.Faces {
		if d := meshing.FaceNormal(face).Dot(dir); d < bestDot {
			best, bestDot = face, d
		}
	}
	return best
}

// RaycastDDA walks the block grid cell by cell along the ray and returns the
// first solid block within maxDist. It never skips a cell the ray touches.
func RaycastDDA(start, direction mgl32.Vec3, maxDist float32, src BlockSource) RaycastResult {
	defer profiling.Track("physics.RaycastDDA")()
	if direction.Len() == 0 {
		return RaycastResult{}
	}
	dir := direction.Normalize()
	// block-index space: unit cells, Y flipped
	o := world.WorldToBlockCoords(start)
	d := mgl32.Vec3{dir.X(), -dir.Y(), dir.Z()}
	limit := maxDist / world.BlockWidth

	var cell, step [3]int
	var tMax, tDelta [3]float32
	for i := range 3 {
		cell[i] = int(math.Floor(float64(o[i])))
		switch {
		case d[i] > 0:
			step[i] = 1
			tDelta[i] = 1 / d[i]
			tMax[i] = (float32(cell[i]+1) - o[i]) / d[i]
		case d[i] < 0:
			step[i] = -1
			tDelta[i] = -1 / d[i]
			tMax[i] = (float32(cell[i]) - o[i]) / d[i]
		default:
			tDelta[i] = float32(math.Inf(1))
			tMax[i] = float32(math.Inf(1))
		}
	}

	if src.IsSolid(cell[0], cell[1], cell[2]) {
		return hitResult(cell, facingFace(dir), 0)
	}
	for {
		axis := 0
		if tMax[1] < tMax[axis] {
			axis = 1
		}
		if tMax[2] < tMax[axis] {
			axis = 2
		}
		t := tMax[axis]
		if t > limit {
			return RaycastResult{}
		}
		cell[axis] += step[axis]
		tMax[axis] += tDelta[axis]
		if src.IsSolid(cell[0], cell[1], cell[2]) {
			return hitResult(cell, enteredFace(axis, step[axis]), t*world.BlockWidth)
		}
	}
}

// enteredFace maps the last grid step to the face the ray came in through.
func enteredFace(axis, step int) registry.BlockFace {
	switch axis {
	case 0:
		if step > 0 {
			return registry.FaceLeft
		}
		return registry.FaceRight
	case 1:
		if step > 0 {
			return registry.FaceBottom
		}
		return registry.FaceTop
	}
	if step > 0 {
		return registry.FaceBack
	}
	return registry.FaceFront
}
