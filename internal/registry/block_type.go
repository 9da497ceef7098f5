package registry

import "fmt"

// BlockType identifies a block or item kind. Values are stable and index the
// registry table directly.
type BlockType uint8

const (
	BlockTypeAir BlockType = iota
	BlockTypeGrass
	BlockTypeDirt
	BlockTypeStone
	BlockTypeWater
	BlockTypeSand
	BlockTypeLog
	BlockTypeLeaves
	BlockTypeGlass
	BlockTypePlanks
	BlockTypeCobblestone

	// Items below are never stored in a chunk.
	BlockTypeStick
	BlockTypeStonePickaxe
	BlockTypeStoneShovel
	BlockTypeStoneAxe
	BlockTypeStoneHoe
	BlockTypeStoneSword

	// BlockTypeCount is the size of the registry table.
	BlockTypeCount
)

// BlockTypeNone is returned by world lookups that fall outside loaded space.
// It has no definition and must never be passed to Registry.Get.
const BlockTypeNone BlockType = 0xFF

// IsMissing reports whether t is the out-of-world sentinel.
func (t BlockType) IsMissing() bool {
	return t == BlockTypeNone
}

// IsAir reports whether t is air. Missing is not air.
func (t BlockType) IsAir() bool {
	return t == BlockTypeAir
}

var blockTypeNames = [BlockTypeCount]string{
	BlockTypeAir:          "air",
	BlockTypeGrass:        "grass",
	BlockTypeDirt:         "dirt",
	BlockTypeStone:        "stone",
	BlockTypeWater:        "water",
	BlockTypeSand:         "sand",
	BlockTypeLog:          "log",
	BlockTypeLeaves:       "leaves",
	BlockTypeGlass:        "glass",
	BlockTypePlanks:       "planks",
	BlockTypeCobblestone:  "cobblestone",
	BlockTypeStick:        "stick",
	BlockTypeStonePickaxe: "stone_pickaxe",
	BlockTypeStoneShovel:  "stone_shovel",
	BlockTypeStoneAxe:     "stone_axe",
	BlockTypeStoneHoe:     "stone_hoe",
	BlockTypeStoneSword:   "stone_sword",
}

func (t BlockType) String() string {
	if t == BlockTypeNone {
		return "none"
	}
	if t < BlockTypeCount {
		return blockTypeNames[t]
	}
	return fmt.Sprintf("BlockType(%d)", uint8(t))
}
