package player

import (
	"blockworld/internal/physics"
	"blockworld/internal/world"
)

// UpdateTarget casts the view ray and stores the block in reach, if any.
func (p *Player) UpdateTarget(src physics.BlockSource) *Target {
	res := p.settings.Raycast(p.EyePosition(), p.Forward(), physics.ReachDistance, src)
	if !res.Hit {
		p.Target = nil
		return nil
	}
	p.Target = &Target{
		Block:    res.HitPosition,
		Adjacent: res.AdjacentPosition,
		Face:     res.Face,
		Distance: res.Distance,
	}
	return p.Target
}

// Occupies reports whether the player's box overlaps block (xi, yi, zi).
func (p *Player) Occupies(xi, yi, zi int) bool {
	return p.AABB().Intersects(world.BlockAABB(xi, yi, zi))
}
