package player

import "blockworld/internal/registry"

// Mining tracks progress on breaking the targeted block.
type Mining struct {
	Active   bool
	Block    [3]int
	Progress float32
}

// Reset stops mining.
func (m *Mining) Reset() {
	*m = Mining{}
}

// Fraction returns progress in [0, 1] for the given total duration.
func (m *Mining) Fraction(total float32) float32 {
	if !m.Active || total <= 0 {
		return 0
	}
	return min(m.Progress/total, 1)
}

// UpdateMining advances mining of the current target by dt seconds while held
// is in hand. It reports true once the block is broken; the caller removes it.
// Switching targets restarts progress.
func (p *Player) UpdateMining(dt float32, bt, held registry.BlockType, reg *registry.Registry) bool {
	if p.Target == nil || bt.IsMissing() || bt.IsAir() {
		p.Mining.Reset()
		return false
	}
	total := reg.MineTime(bt, held)
	if total < 0 {
		p.Mining.Reset()
		return false
	}
	if !p.Mining.Active || p.Mining.Block != p.Target.Block {
		p.Mining = Mining{Active: true, Block: p.Target.Block}
	}
	p.Mining.Progress += dt
	if p.Mining.Progress < total {
		return false
	}
	p.Mining.Reset()
	return true
}
