package player

import (
	"blockworld/internal/config"
	"blockworld/internal/physics"
	"blockworld/internal/registry"
	"blockworld/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// Width and Height of the player's box in world units.
	Width  = 0.75 * world.BlockWidth
	Height = 1.75 * world.BlockWidth

	// DampingFactor is the per-frame velocity damping at 60 frames per second.
	DampingFactor = 0.75
	SprintFactor  = 2
)

// ControlMode selects how the player moves.
type ControlMode int

const (
	// ModeNormal has gravity, jumping and collisions.
	ModeNormal ControlMode = iota
	// ModeFlying has no gravity but still collides.
	ModeFlying
	// ModeNoClip has no gravity and no collisions.
	ModeNoClip
	modeCount
)

func (m ControlMode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeFlying:
		return "flying"
	case ModeNoClip:
		return "noclip"
	}
	return "unknown"
}

// Controls is one frame of movement input. Axis values lie in [-1, 1].
type Controls struct {
	Forward float32
	Right   float32
	// Up is only used while flying.
	Up     float32
	Jump   bool
	Sprint bool
	// Break is held while mining; Place fires once per click.
	Break bool
	Place bool
}

// Settings holds the movement constants.
type Settings struct {
	Gravity          float32
	TerminalVelocity float32
	JumpVelocity     float32
	WalkSpeed        float32
	FlySpeed         float32
	MouseSensitivity float32
	Raycast          physics.RaycastFunc
}

// SettingsFromConfig converts the player section of the configuration.
func SettingsFromConfig(c config.PlayerSettings) Settings {
	s := Settings{
		Gravity:          c.Gravity,
		TerminalVelocity: c.TerminalVelocity,
		JumpVelocity:     c.JumpVelocity,
		WalkSpeed:        c.WalkSpeed,
		FlySpeed:         c.FlySpeed,
		MouseSensitivity: c.MouseSensitivity,
		Raycast:          physics.Raycast,
	}
	if c.Raycast == config.RaycastDDA {
		s.Raycast = physics.RaycastDDA
	}
	return s
}

// DefaultSettings returns the built-in movement constants.
func DefaultSettings() Settings {
	return SettingsFromConfig(config.Default().Player)
}

// Target is the block the player is looking at.
type Target struct {
	Block    [3]int
	Adjacent [3]int
	Face     registry.BlockFace
	Distance float32
}

// Player is the first-person body: position at the feet, velocity, view
// angles and the current block target.
type Player struct {
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	// Pan is the rotation around the vertical axis, Tilt the pitch. Positive
	// tilt looks down.
	Pan, Tilt float32
	Falling   bool
	Mode      ControlMode

	// Target is nil when no block is in reach.
	Target *Target
	Mining Mining

	settings Settings
}

// New creates a falling player at the origin.
func New(s Settings) *Player {
	if s.Raycast == nil {
		s.Raycast = physics.Raycast
	}
	return &Player{Falling: true, settings: s}
}

// Settings returns the movement constants.
func (p *Player) Settings() Settings { return p.settings }

// SetPosition teleports the player and stops it.
func (p *Player) SetPosition(pos mgl32.Vec3) {
	p.Position = pos
	p.Velocity = mgl32.Vec3{}
	p.Falling = true
}

// AABB returns the player's box at its current position.
func (p *Player) AABB() world.AABB {
	return physics.BodyAABB(p.Position, Width, Height)
}

// EyePosition returns the camera position at the top of the player's box.
func (p *Player) EyePosition() mgl32.Vec3 {
	return p.Position.Sub(mgl32.Vec3{0, Height, 0})
}

// Jump starts a jump when standing on the ground.
func (p *Player) Jump() {
	if p.Falling {
		return
	}
	// up is -Y
	p.Velocity[1] -= p.settings.JumpVelocity
	p.Falling = true
}

// CycleControlMode switches to the next control mode.
func (p *Player) CycleControlMode() ControlMode {
	p.Mode = (p.Mode + 1) % modeCount
	p.Falling = true
	return p.Mode
}
