// Package input maps raw key and mouse events to logical actions. Events
// arrive on the window thread; the frame loop reads them on its own
// goroutine, so all state is guarded.
package input

import "sync"

// Action represents a logical action, not a physical key
type Action int

const (
	ActionOrbitLeft Action = iota
	ActionOrbitRight
	ActionOrbitUp
	ActionOrbitDown
	ActionZoomIn
	ActionZoomOut
	ActionDrag
	ActionToggleWireframe
	ActionToggleStats
	ActionRemesh
	ActionQuit
	ActionCount // Sentinel value for array sizing
)

// Key and Button are backend key and mouse button codes. glfw.Key and
// glfw.MouseButton convert directly.
type (
	Key    int
	Button int
)

// Event kinds, matching glfw.Release, glfw.Press and glfw.Repeat.
const (
	Release = 0
	Press   = 1
	Repeat  = 2
)

// InputManager tracks action state with per-frame edge detection, plus the
// cursor movement and scroll accumulated since the last frame.
type InputManager struct {
	mu sync.RWMutex

	keyToActions    map[Key][]Action
	buttonToActions map[Button][]Action

	currentState [ActionCount]bool
	justPressed  [ActionCount]bool
	justReleased [ActionCount]bool

	cursorX, cursorY float64
	haveCursor       bool
	dragX, dragY     float64
	scroll           float64
}

// NewInputManager creates a manager with no bindings.
func NewInputManager() *InputManager {
	return &InputManager{
		keyToActions:    make(map[Key][]Action),
		buttonToActions: make(map[Button][]Action),
	}
}

// BindKey binds a physical key to a logical action. Multiple keys can be
// bound to the same action.
func (im *InputManager) BindKey(key Key, action Action) {
	if action < 0 || action >= ActionCount {
		return
	}
	im.mu.Lock()
	defer im.mu.Unlock()
	im.keyToActions[key] = append(im.keyToActions[key], action)
}

// UnbindKey removes all action bindings for a key
func (im *InputManager) UnbindKey(key Key) {
	im.mu.Lock()
	defer im.mu.Unlock()
	delete(im.keyToActions, key)
}

func (im *InputManager) BindMouseButton(button Button, action Action) {
	if action < 0 || action >= ActionCount {
		return
	}
	im.mu.Lock()
	defer im.mu.Unlock()
	im.buttonToActions[button] = append(im.buttonToActions[button], action)
}

// HandleKeyEvent processes a key event. Repeat counts as held.
func (im *InputManager) HandleKeyEvent(key Key, event int) {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.apply(im.keyToActions[key], event == Press || event == Repeat)
}

func (im *InputManager) HandleMouseButtonEvent(button Button, event int) {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.apply(im.buttonToActions[button], event == Press)
}

// apply records edges as events arrive so a press and release within one
// frame is still seen. Callers hold mu.
func (im *InputManager) apply(actions []Action, pressed bool) {
	for _, act := range actions {
		if pressed && !im.currentState[act] {
			im.justPressed[act] = true
		}
		if !pressed && im.currentState[act] {
			im.justReleased[act] = true
		}
		im.currentState[act] = pressed
	}
}

// HandleCursor records the cursor position. Movement only accumulates while
// ActionDrag is held.
func (im *InputManager) HandleCursor(x, y float64) {
	im.mu.Lock()
	defer im.mu.Unlock()
	if im.haveCursor && im.currentState[ActionDrag] {
		im.dragX += x - im.cursorX
		im.dragY += y - im.cursorY
	}
	im.cursorX, im.cursorY = x, y
	im.haveCursor = true
}

func (im *InputManager) HandleScroll(yoff float64) {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.scroll += yoff
}

// PostUpdate must be called at the end of each frame. It resets edge flags
// and the accumulated cursor and scroll deltas.
func (im *InputManager) PostUpdate() {
	im.mu.Lock()
	defer im.mu.Unlock()
	clear(im.justPressed[:])
	clear(im.justReleased[:])
	im.dragX, im.dragY = 0, 0
	im.scroll = 0
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

// JustReleased returns true only if the action was released in the current frame
func (im *InputManager) JustReleased(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.justReleased[action]
}

// Drag returns the cursor movement while dragging in the current frame.
func (im *InputManager) Drag() (dx, dy float64) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.dragX, im.dragY
}

// Scroll returns the vertical scroll in the current frame.
func (im *InputManager) Scroll() float64 {
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.scroll
}
