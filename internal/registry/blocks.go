package registry

import (
	"fmt"
	"image/color"
)

// Texture atlas layout shared by the mesher and the renderer.
const (
	AtlasColumns = 8
	AtlasRows    = 2
)

// AtlasCell addresses one tile of the texture atlas.
type AtlasCell struct {
	X, Y int
}

// BlockDefinition holds the immutable per-type properties of a block or item.
type BlockDefinition struct {
	ID       BlockType
	Name     string
	Textures [3]AtlasCell // indexed by TextureGroup
	Fill     color.RGBA

	IsTransparent bool
	IsLiquid      bool
	IsPlaceable   bool
	StackMaxSize  int

	// Mining economics, seconds by hand.
	MineDuration   float32
	PreferredTool  ToolType
	ToolEfficiency float32

	// Set only for tool items.
	ToolType          ToolType
	ToolDurabilityMax int
}

// Texture returns the atlas cell used for the given face.
func (d *BlockDefinition) Texture(face BlockFace) AtlasCell {
	return d.Textures[face.Group()]
}

// IsSolid reports whether the block stops movement and ray casts.
func (d *BlockDefinition) IsSolid() bool {
	return d.ID != BlockTypeAir && d.IsPlaceable && !d.IsLiquid
}

// Registry is the fixed table of block definitions indexed by BlockType.
type Registry struct {
	defs       [BlockTypeCount]BlockDefinition
	registered [BlockTypeCount]bool
	byName     map[string]BlockType
}

// NewRegistry returns a registry populated with every built-in block and item.
func NewRegistry() *Registry {
	r := &Registry{byName: make(map[string]BlockType, BlockTypeCount)}
	for _, def := range builtinBlocks() {
		r.register(def)
	}
	for t := BlockTypeAir; t < BlockTypeCount; t++ {
		if !r.registered[t] {
			panic(fmt.Sprintf("registry: block type %v has no definition", t))
		}
	}
	return r
}

func (r *Registry) register(def BlockDefinition) {
	if def.ID >= BlockTypeCount {
		panic(fmt.Sprintf("registry: block type %d out of range", def.ID))
	}
	if r.registered[def.ID] {
		panic(fmt.Sprintf("registry: block type %v registered twice", def.ID))
	}
	if def.Name == "" {
		def.Name = def.ID.String()
	}
	r.defs[def.ID] = def
	r.registered[def.ID] = true
	r.byName[def.Name] = def.ID
}

// Get returns the definition for t. It panics for BlockTypeNone or any
// unregistered type.
func (r *Registry) Get(t BlockType) *BlockDefinition {
	if t >= BlockTypeCount || !r.registered[t] {
		panic(fmt.Sprintf("registry: no definition for block type %v", t))
	}
	return &r.defs[t]
}

// Lookup finds a block type by name.
func (r *Registry) Lookup(name string) (BlockType, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	return len(r.byName)
}

// IsTransparent reports whether t is drawn in the transparent pass.
func (r *Registry) IsTransparent(t BlockType) bool {
	return r.Get(t).IsTransparent
}

// IsLiquid reports whether t is a liquid.
func (r *Registry) IsLiquid(t BlockType) bool {
	return r.Get(t).IsLiquid
}

// IsSolid reports whether t collides. Missing and air are never solid.
func (r *Registry) IsSolid(t BlockType) bool {
	if t.IsMissing() {
		return false
	}
	return r.Get(t).IsSolid()
}

func opaque(c color.RGBA) color.RGBA {
	c.A = 0xFF
	return c
}

func same(c AtlasCell) [3]AtlasCell {
	return [3]AtlasCell{c, c, c}
}

func builtinBlocks() []BlockDefinition {
	return []BlockDefinition{
		{
			ID:            BlockTypeAir,
			Fill:          color.RGBA{100, 150, 255, 100},
			IsTransparent: true,
			StackMaxSize:  64,
		},
		{
			ID:             BlockTypeGrass,
			Textures:       [3]AtlasCell{{4, 0}, {3, 0}, {2, 0}},
			Fill:           opaque(color.RGBA{0, 255, 0, 0}),
			IsPlaceable:    true,
			StackMaxSize:   64,
			MineDuration:   0.9,
			PreferredTool:  ToolShovel,
			ToolEfficiency: 4,
		},
		{
			ID:             BlockTypeDirt,
			Textures:       same(AtlasCell{2, 0}),
			Fill:           opaque(color.RGBA{0x96, 0x4B, 0x00, 0}),
			IsPlaceable:    true,
			StackMaxSize:   64,
			MineDuration:   0.75,
			PreferredTool:  ToolShovel,
			ToolEfficiency: 4,
		},
		{
			ID:             BlockTypeStone,
			Textures:       same(AtlasCell{1, 0}),
			Fill:           opaque(color.RGBA{128, 128, 128, 0}),
			IsPlaceable:    true,
			StackMaxSize:   64,
			MineDuration:   7.5,
			PreferredTool:  ToolPickaxe,
			ToolEfficiency: 6.5,
		},
		{
			ID:            BlockTypeWater,
			Textures:      same(AtlasCell{6, 0}),
			Fill:          color.RGBA{50, 100, 255, 150},
			IsTransparent: true,
			IsLiquid:      true,
			IsPlaceable:   true,
			StackMaxSize:  64,
		},
		{
			ID:             BlockTypeSand,
			Textures:       same(AtlasCell{5, 0}),
			Fill:           opaque(color.RGBA{0xC2, 0xB2, 0x80, 0}),
			IsPlaceable:    true,
			StackMaxSize:   16,
			MineDuration:   0.75,
			PreferredTool:  ToolShovel,
			ToolEfficiency: 4,
		},
		{
			ID:             BlockTypeLog,
			Textures:       [3]AtlasCell{{0, 1}, {1, 1}, {0, 1}},
			Fill:           opaque(color.RGBA{0x6B, 0x51, 0x2E, 0}),
			IsPlaceable:    true,
			StackMaxSize:   64,
			MineDuration:   3,
			PreferredTool:  ToolAxe,
			ToolEfficiency: 4,
		},
		{
			ID:             BlockTypeLeaves,
			Textures:       same(AtlasCell{2, 1}),
			Fill:           color.RGBA{0x3A, 0x8C, 0x2F, 200},
			IsTransparent:  true,
			IsPlaceable:    true,
			StackMaxSize:   64,
			MineDuration:   0.35,
			PreferredTool:  ToolHoe,
			ToolEfficiency: 4,
		},
		{
			ID:            BlockTypeGlass,
			Textures:      same(AtlasCell{3, 1}),
			Fill:          color.RGBA{0xDD, 0xF1, 0xF8, 90},
			IsTransparent: true,
			IsPlaceable:   true,
			StackMaxSize:  64,
			MineDuration:  0.45,
		},
		{
			ID:             BlockTypePlanks,
			Textures:       same(AtlasCell{4, 1}),
			Fill:           opaque(color.RGBA{0xB8, 0x94, 0x5F, 0}),
			IsPlaceable:    true,
			StackMaxSize:   64,
			MineDuration:   3,
			PreferredTool:  ToolAxe,
			ToolEfficiency: 4,
		},
		{
			ID:             BlockTypeCobblestone,
			Textures:       same(AtlasCell{5, 1}),
			Fill:           opaque(color.RGBA{0x7A, 0x7A, 0x7A, 0}),
			IsPlaceable:    true,
			StackMaxSize:   64,
			MineDuration:   10,
			PreferredTool:  ToolPickaxe,
			ToolEfficiency: 6.5,
		},
		{ID: BlockTypeStick, StackMaxSize: 64},
		toolItem(BlockTypeStonePickaxe, ToolPickaxe),
		toolItem(BlockTypeStoneShovel, ToolShovel),
		toolItem(BlockTypeStoneAxe, ToolAxe),
		toolItem(BlockTypeStoneHoe, ToolHoe),
		toolItem(BlockTypeStoneSword, ToolSword),
	}
}

func toolItem(id BlockType, tool ToolType) BlockDefinition {
	return BlockDefinition{
		ID:                id,
		StackMaxSize:      1,
		ToolType:          tool,
		ToolDurabilityMax: 131,
	}
}
