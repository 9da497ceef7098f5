package player

import (
	"math"

	"blockworld/internal/physics"
	"blockworld/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

// up in world space; world Y points down
var worldUp = mgl32.Vec3{0, -1, 0}

// WalkAxes returns the horizontal forward and right vectors for the current
// pan. Tilt is ignored so walking stays level.
func (p *Player) WalkAxes() (forward, right mgl32.Vec3) {
	s, c := math.Sincos(float64(p.Pan))
	forward = mgl32.Vec3{float32(c), 0, float32(s)}
	right = mgl32.Vec3{float32(s), 0, float32(-c)}
	return forward, right
}

// damping returns the velocity damping for a frame of dt seconds.
func damping(dt float32) float32 {
	return float32(math.Pow(DampingFactor, float64(dt)*60))
}

// Update advances the player by dt seconds: gravity, damping toward the
// requested walk or fly velocity, integration and swept collision against src.
func (p *Player) Update(dt float32, c Controls, src physics.BlockSource) {
	defer profiling.Track("player.Update")()
	if dt <= 0 {
		return
	}
	s := p.settings
	forward, right := p.WalkAxes()
	wish := forward.Mul(c.Forward).Add(right.Mul(c.Right))
	if p.Mode != ModeNormal {
		wish = wish.Add(worldUp.Mul(c.Up))
	}
	if l := wish.Len(); l > 1 {
		wish = wish.Mul(1 / l)
	}

	speed := s.WalkSpeed
	if p.Mode != ModeNormal {
		speed = s.FlySpeed
	}
	if c.Sprint {
		speed *= SprintFactor
	}

	k := damping(dt)
	target := wish.Mul(speed)
	if p.Mode == ModeNormal {
		if c.Jump {
			p.Jump()
		}
		if p.Falling {
			p.Velocity[1] += s.Gravity * dt
			p.Velocity[1] = mgl32.Clamp(p.Velocity[1], -s.TerminalVelocity, s.TerminalVelocity)
		}
		p.Velocity[0] = p.Velocity[0]*k + target[0]*(1-k)
		p.Velocity[2] = p.Velocity[2]*k + target[2]*(1-k)
	} else {
		p.Velocity = p.Velocity.Mul(k).Add(target.Mul(1 - k))
	}

	prev := p.Position
	next := prev.Add(p.Velocity.Mul(dt))
	if p.Mode == ModeNoClip {
		p.Position = next
		return
	}

	pos, contact := physics.Sweep(prev, next, Width, Height, src)
	p.Position = pos
	for axis := range 3 {
		if contact.Blocked(axis) {
			p.Velocity[axis] = 0
		}
	}
	p.Falling = !contact.Landed && !p.supported(src)
}

// supported reports whether the player stands on a solid block and is not
// moving up.
func (p *Player) supported(src physics.BlockSource) bool {
	if p.Velocity.Y() < 0 {
		return false
	}
	below := p.Position.Add(mgl32.Vec3{0, physics.SweepStep, 0})
	return physics.Collides(physics.BodyAABB(below, Width, Height), src)
}
