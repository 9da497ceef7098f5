package physics

import (
	"math"

	"blockworld/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// BlockSource answers whether a block blocks movement and rays.
type BlockSource interface {
	IsSolid(xi, yi, zi int) bool
}

// SweepStep is the distance between collision tests along a swept axis.
const SweepStep = 0.05

// overlap below this is treated as touching
const contactEpsilon = 1e-3

// BodyAABB returns the box of an upright body standing at feet. World Y points
// down, so the body extends toward -Y.
func BodyAABB(feet mgl32.Vec3, width, height float32) world.AABB {
	hw := width / 2
	return world.AABB{
		Min: mgl32.Vec3{feet.X() - hw, feet.Y() - height, feet.Z() - hw},
		Max: mgl32.Vec3{feet.X() + hw, feet.Y(), feet.Z() + hw},
	}
}

func overlaps(a, b world.AABB) bool {
	for i := range 3 {
		if a.Min[i] >= b.Max[i]-contactEpsilon || a.Max[i] <= b.Min[i]+contactEpsilon {
			return false
		}
	}
	return true
}

func floorIndex(v float32) int {
	return int(math.Floor(float64(v / world.BlockWidth)))
}

// eachBlock calls fn with every block index whose cell intersects box,
// stopping when fn returns false.
func eachBlock(box world.AABB, fn func(xi, yi, zi int) bool) {
	e := float32(contactEpsilon)
	x0, x1 := floorIndex(box.Min.X()+e), floorIndex(box.Max.X()-e)
	// block Y grows toward -Y
	y0, y1 := floorIndex(-box.Max.Y()+e), floorIndex(-box.Min.Y()-e)
	z0, z1 := floorIndex(box.Min.Z()+e), floorIndex(box.Max.Z()-e)
	for xi := x0; xi <= x1; xi++ {
		for yi := y0; yi <= y1; yi++ {
			for zi := z0; zi <= z1; zi++ {
				if !fn(xi, yi, zi) {
					return
				}
			}
		}
	}
}

// Collides reports whether box overlaps any solid block.
func Collides(box world.AABB, src BlockSource) bool {
	hit := false
	eachBlock(box, func(xi, yi, zi int) bool {
		if src.IsSolid(xi, yi, zi) && overlaps(box, world.BlockAABB(xi, yi, zi)) {
			hit = true
		}
		return !hit
	})
	return hit
}

// blockingPlane finds the nearest solid block face that box runs into while
// moving along axis in direction dir. Blocks the box already overlapped at the
// start of the move (lead) are ignored so an embedded body can move out.
func blockingPlane(box world.AABB, axis int, dir, lead float32, src BlockSource) (float32, bool) {
	var plane float32
	found := false
	eachBlock(box, func(xi, yi, zi int) bool {
		if !src.IsSolid(xi, yi, zi) {
			return true
		}
		b := world.BlockAABB(xi, yi, zi)
		if !overlaps(box, b) {
			return true
		}
		if dir > 0 {
			if b.Min[axis] < lead-contactEpsilon {
				return true
			}
			if !found || b.Min[axis] < plane {
				plane = b.Min[axis]
			}
		} else {
			if b.Max[axis] > lead+contactEpsilon {
				return true
			}
			if !found || b.Max[axis] > plane {
				plane = b.Max[axis]
			}
		}
		found = true
		return true
	})
	return plane, found
}

// Contact records which axes were blocked during a move.
type Contact struct {
	X, Y, Z bool
	// Landed is set when downward movement was stopped.
	Landed bool
}

// Blocked reports whether axis was stopped.
func (c Contact) Blocked(axis int) bool {
	switch axis {
	case 0:
		return c.X
	case 1:
		return c.Y
	}
	return c.Z
}

// Sweep moves a body from prev toward next one axis at a time (X, Y, then Z),
// testing every SweepStep along each axis. At the first step that overlaps a
// solid block, that coordinate is clamped to the block's boundary. Axes not yet
// resolved keep their previous value while an axis is swept.
func Sweep(prev, next mgl32.Vec3, width, height float32, src BlockSource) (mgl32.Vec3, Contact) {
	pos := prev
	var c Contact
	for axis := range 3 {
		v, blocked := sweepAxis(pos, axis, next[axis], width, height, src)
		pos[axis] = v
		if !blocked {
			continue
		}
		switch axis {
		case 0:
			c.X = true
		case 1:
			c.Y = true
			// world Y points down
			c.Landed = next.Y() > prev.Y()
		case 2:
			c.Z = true
		}
	}
	return pos, c
}

// leadingEdge returns the coordinate of the body's face moving along axis.
func leadingEdge(v float32, axis int, dir, width, height float32) float32 {
	if axis == 1 {
		if dir > 0 {
			return v
		}
		return v - height
	}
	if dir > 0 {
		return v + width/2
	}
	return v - width/2
}

func sweepAxis(pos mgl32.Vec3, axis int, to, width, height float32, src BlockSource) (float32, bool) {
	from := pos[axis]
	if from == to {
		return to, false
	}
	dir := float32(1)
	if to < from {
		dir = -1
	}
	lead := leadingEdge(from, axis, dir, width, height)
	dist := (to - from) * dir

	// steps are counted, not accumulated, so rounding far from the origin
	// cannot stall the sweep
	for i := 0; ; i++ {
		off := float32(i) * SweepStep
		last := dist-off <= SweepStep
		v := from + dir*off
		if last {
			v = to
		}
		p := pos
		p[axis] = v
		if plane, ok := blockingPlane(BodyAABB(p, width, height), axis, dir, lead, src); ok {
			return clampToPlane(plane, axis, dir, width, height), true
		}
		if last {
			return to, false
		}
	}
}

// clampToPlane places the body so its leading face touches plane.
func clampToPlane(plane float32, axis int, dir, width, height float32) float32 {
	if axis == 1 {
		if dir > 0 {
			return plane
		}
		return plane + height
	}
	if dir > 0 {
		return plane - width/2
	}
	return plane + width/2
}
