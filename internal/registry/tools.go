package registry

// ToolType classifies tool items and the tool a block prefers.
type ToolType int

const (
	ToolNone ToolType = iota
	ToolPickaxe
	ToolShovel
	ToolAxe
	ToolHoe
	ToolSword
)

func (t ToolType) String() string {
	switch t {
	case ToolPickaxe:
		return "pickaxe"
	case ToolShovel:
		return "shovel"
	case ToolAxe:
		return "axe"
	case ToolHoe:
		return "hoe"
	case ToolSword:
		return "sword"
	}
	return "none"
}

// MineTime returns how many seconds it takes to break block while holding
// held. Held may be air or any non-tool item. A negative result means the
// block cannot be mined.
func (r *Registry) MineTime(block, held BlockType) float32 {
	def := r.Get(block)
	if def.MineDuration <= 0 || !def.IsSolid() {
		return -1
	}
	d := def.MineDuration
	if held.IsMissing() || def.PreferredTool == ToolNone {
		return d
	}
	if r.Get(held).ToolType == def.PreferredTool && def.ToolEfficiency > 0 {
		d /= def.ToolEfficiency
	}
	return d
}
