package input

import (
	"sync"

	"blockworld/internal/player"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action represents a logical game action, not a physical key
type Action int

// Action constants using iota
const (
	ActionMoveForward Action = iota
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionJump
	ActionDescend
	ActionSprint
	ActionPause
	ActionCycleMode
	ActionToggleOutlines
	ActionToggleFollow
	ActionToggleWireframe
	ActionToggleProfiling
	ActionRadiusUp
	ActionRadiusDown
	ActionHotbar1
	ActionHotbar2
	ActionHotbar3
	ActionHotbar4
	ActionHotbar5
	ActionHotbar6
	ActionHotbar7
	ActionHotbar8
	ActionHotbar9
	ActionBreak
	ActionPlace
	ActionCount // Sentinel value for array sizing
)

// InputManager manages keyboard and mouse input state and maps physical keys/buttons to logical actions
type InputManager struct {
	mu sync.RWMutex

	// Key to action mapping (one key can map to multiple actions)
	keyToActions map[glfw.Key][]Action

	// Mouse button to action mapping
	mouseButtonToActions map[glfw.MouseButton][]Action

	// Current frame state (indexed by Action)
	currentState [ActionCount]bool

	// Just pressed flags (reset each frame)
	justPressed [ActionCount]bool

	// cursor movement and scroll since the last PostUpdate
	lastX, lastY   float64
	haveCursor     bool
	lookDX, lookDY float64
	scroll         float64
}

// NewInputManager creates a new InputManager with default key bindings
func NewInputManager() *InputManager {
	im := &InputManager{
		keyToActions:         make(map[glfw.Key][]Action),
		mouseButtonToActions: make(map[glfw.MouseButton][]Action),
	}

	im.BindKey(glfw.KeyW, ActionMoveForward)
	im.BindKey(glfw.KeyS, ActionMoveBackward)
	im.BindKey(glfw.KeyA, ActionMoveLeft)
	im.BindKey(glfw.KeyD, ActionMoveRight)
	im.BindKey(glfw.KeyUp, ActionMoveForward)
	im.BindKey(glfw.KeyDown, ActionMoveBackward)
	im.BindKey(glfw.KeyLeft, ActionMoveLeft)
	im.BindKey(glfw.KeyRight, ActionMoveRight)
	im.BindKey(glfw.KeySpace, ActionJump)
	im.BindKey(glfw.KeyLeftShift, ActionDescend)
	im.BindKey(glfw.KeyLeftControl, ActionSprint)
	im.BindKey(glfw.KeyEscape, ActionPause)
	im.BindKey(glfw.KeyF, ActionCycleMode)
	im.BindKey(glfw.KeyB, ActionToggleOutlines)
	im.BindKey(glfw.KeyP, ActionToggleFollow)
	im.BindKey(glfw.KeyX, ActionToggleWireframe)
	im.BindKey(glfw.KeyV, ActionToggleProfiling)
	im.BindKey(glfw.KeyEqual, ActionRadiusUp)
	im.BindKey(glfw.KeyMinus, ActionRadiusDown)
	im.BindKey(glfw.Key1, ActionHotbar1)
	im.BindKey(glfw.Key2, ActionHotbar2)
	im.BindKey(glfw.Key3, ActionHotbar3)
	im.BindKey(glfw.Key4, ActionHotbar4)
	im.BindKey(glfw.Key5, ActionHotbar5)
	im.BindKey(glfw.Key6, ActionHotbar6)
	im.BindKey(glfw.Key7, ActionHotbar7)
	im.BindKey(glfw.Key8, ActionHotbar8)
	im.BindKey(glfw.Key9, ActionHotbar9)

	im.BindMouseButton(glfw.MouseButtonLeft, ActionBreak)
	im.BindMouseButton(glfw.MouseButtonRight, ActionPlace)

	return im
}

// BindKey binds a physical key to a logical action
// Multiple keys can be bound to the same action (e.g., WASD and arrow keys)
func (im *InputManager) BindKey(key glfw.Key, action Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if action < 0 || action >= ActionCount {
		return
	}

	im.keyToActions[key] = append(im.keyToActions[key], action)
}

// BindMouseButton binds a mouse button to a logical action
func (im *InputManager) BindMouseButton(button glfw.MouseButton, action Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if action < 0 || action >= ActionCount {
		return
	}

	im.mouseButtonToActions[button] = append(im.mouseButtonToActions[button], action)
}

// HandleKeyEvent processes a key event and updates internal state
func (im *InputManager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.apply(im.keyToActions[key], action == glfw.Press || action == glfw.Repeat)
}

// HandleMouseButtonEvent processes a mouse button event and updates internal state
func (im *InputManager) HandleMouseButtonEvent(button glfw.MouseButton, action glfw.Action) {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.apply(im.mouseButtonToActions[button], action == glfw.Press)
}

func (im *InputManager) apply(actions []Action, isPressed bool) {
	for _, act := range actions {
		// Detect edges immediately when event arrives
		if isPressed && !im.currentState[act] {
			im.justPressed[act] = true
		}
		im.currentState[act] = isPressed
	}
}

// HandleCursorPos accumulates cursor movement for mouse look. The first
// position after ResetCursor only sets the reference point.
func (im *InputManager) HandleCursorPos(x, y float64) {
	im.mu.Lock()
	defer im.mu.Unlock()
	if im.haveCursor {
		im.lookDX += x - im.lastX
		im.lookDY += y - im.lastY
	}
	im.lastX, im.lastY = x, y
	im.haveCursor = true
}

// ResetCursor forgets the last cursor position, e.g. after the cursor was
// released and captured again.
func (im *InputManager) ResetCursor() {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.haveCursor = false
	im.lookDX, im.lookDY = 0, 0
}

// HandleScroll accumulates vertical wheel movement.
func (im *InputManager) HandleScroll(yoff float64) {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.scroll += yoff
}

// Look returns the cursor movement since the last PostUpdate.
func (im *InputManager) Look() (dx, dy float64) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.lookDX, im.lookDY
}

// Scroll returns whole wheel steps since the last PostUpdate.
func (im *InputManager) Scroll() int {
	im.mu.RLock()
	defer im.mu.RUnlock()
	return int(im.scroll)
}

// PostUpdate must be called at the end of each frame to update edge detection states
func (im *InputManager) PostUpdate() {
	im.mu.Lock()
	defer im.mu.Unlock()

	im.justPressed = [ActionCount]bool{}
	im.lookDX, im.lookDY = 0, 0
	im.scroll -= float64(int(im.scroll))
}

// IsActive returns true if the action is currently being held down
func (im *InputManager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.currentState[action]
}

// JustPressed returns true only if the action was pressed in the current frame
func (im *InputManager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.justPressed[action]
}

// HotbarSlot returns the hotbar slot whose key was pressed this frame, or -1.
func (im *InputManager) HotbarSlot() int {
	for a := ActionHotbar1; a <= ActionHotbar9; a++ {
		if im.JustPressed(a) {
			return int(a - ActionHotbar1)
		}
	}
	return -1
}

// Controls maps the held movement actions to one frame of player controls.
// Break is held; Place fires once per click.
func (im *InputManager) Controls() player.Controls {
	axis := func(pos, neg Action) float32 {
		var v float32
		if im.IsActive(pos) {
			v++
		}
		if im.IsActive(neg) {
			v--
		}
		return v
	}
	return player.Controls{
		Forward: axis(ActionMoveForward, ActionMoveBackward),
		Right:   axis(ActionMoveRight, ActionMoveLeft),
		Up:      axis(ActionJump, ActionDescend),
		Jump:    im.IsActive(ActionJump),
		Sprint:  im.IsActive(ActionSprint),
		Break:   im.IsActive(ActionBreak),
		Place:   im.JustPressed(ActionPlace),
	}
}
