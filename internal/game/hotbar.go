package game

import "blockworld/internal/registry"

// HotbarSize is the number of selectable slots.
const HotbarSize = 9

// Hotbar is the fixed row of items the player can hold.
type Hotbar struct {
	Slots    [HotbarSize]registry.BlockType
	Selected int
}

// NewHotbar returns the default creative loadout.
func NewHotbar() *Hotbar {
	return &Hotbar{Slots: [HotbarSize]registry.BlockType{
		registry.BlockTypeDirt,
		registry.BlockTypeGrass,
		registry.BlockTypeStone,
		registry.BlockTypeCobblestone,
		registry.BlockTypePlanks,
		registry.BlockTypeLog,
		registry.BlockTypeGlass,
		registry.BlockTypeWater,
		registry.BlockTypeStonePickaxe,
	}}
}

// Select makes slot the held one. Out of range slots are ignored.
func (h *Hotbar) Select(slot int) {
	if slot >= 0 && slot < HotbarSize {
		h.Selected = slot
	}
}

// Scroll moves the selection by delta slots, wrapping around.
func (h *Hotbar) Scroll(delta int) {
	h.Selected = ((h.Selected+delta)%HotbarSize + HotbarSize) % HotbarSize
}

// Held returns the selected item.
func (h *Hotbar) Held() registry.BlockType {
	return h.Slots[h.Selected]
}
