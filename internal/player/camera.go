package player

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// tilt stays just short of straight up or down
const maxTilt = math.Pi / 2.01

// PanBy turns the player around the vertical axis.
func (p *Player) PanBy(angle float32) {
	p.Pan = float32(math.Mod(float64(p.Pan+angle), 2*math.Pi))
}

// TiltBy pitches the view. Positive angles look down.
func (p *Player) TiltBy(angle float32) {
	p.Tilt = mgl32.Clamp(p.Tilt+angle, -maxTilt, maxTilt)
}

// Look applies a mouse movement in pixels.
func (p *Player) Look(dx, dy float64) {
	sens := float64(p.settings.MouseSensitivity)
	p.PanBy(float32(-dx * sens))
	p.TiltBy(float32(dy * sens))
}

// Forward returns the normalized camera direction including tilt.
func (p *Player) Forward() mgl32.Vec3 {
	s, c := math.Sincos(float64(p.Pan))
	return mgl32.Vec3{float32(c), float32(math.Tan(float64(p.Tilt))), float32(s)}.Normalize()
}

// ViewMatrix returns the camera matrix. The camera's up vector is world -Y,
// so the view needs no extra flip.
func (p *Player) ViewMatrix() mgl32.Mat4 {
	eye := p.EyePosition()
	return mgl32.LookAtV(eye, eye.Add(p.Forward()), worldUp)
}
