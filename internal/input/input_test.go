package input

import "testing"

const (
	keyF Key    = 70
	keyR Key    = 82
	left Button = 0
)

func TestEdgeDetection(t *testing.T) {
	im := NewInputManager()
	im.BindKey(keyF, ActionToggleWireframe)

	im.HandleKeyEvent(keyF, Press)
	if !im.JustPressed(ActionToggleWireframe) || !im.IsActive(ActionToggleWireframe) {
		t.Fatalf("press not seen")
	}
	im.PostUpdate()
	if im.JustPressed(ActionToggleWireframe) {
		t.Fatalf("JustPressed survived PostUpdate")
	}

	// repeat keeps the key held without a new edge
	im.HandleKeyEvent(keyF, Repeat)
	if im.JustPressed(ActionToggleWireframe) || !im.IsActive(ActionToggleWireframe) {
		t.Fatalf("repeat: just=%v active=%v", im.JustPressed(ActionToggleWireframe), im.IsActive(ActionToggleWireframe))
	}

	im.HandleKeyEvent(keyF, Release)
	if !im.JustReleased(ActionToggleWireframe) || im.IsActive(ActionToggleWireframe) {
		t.Fatalf("release not seen")
	}
}

func TestTapWithinOneFrame(t *testing.T) {
	im := NewInputManager()
	im.BindKey(keyR, ActionRemesh)
	im.HandleKeyEvent(keyR, Press)
	im.HandleKeyEvent(keyR, Release)
	if !im.JustPressed(ActionRemesh) || !im.JustReleased(ActionRemesh) {
		t.Fatalf("tap lost: pressed=%v released=%v", im.JustPressed(ActionRemesh), im.JustReleased(ActionRemesh))
	}
}

func TestUnboundAndOutOfRange(t *testing.T) {
	im := NewInputManager()
	im.HandleKeyEvent(keyF, Press)
	for a := Action(0); a < ActionCount; a++ {
		if im.IsActive(a) {
			t.Fatalf("unbound key activated %d", a)
		}
	}
	im.BindKey(keyF, ActionCount)
	im.HandleKeyEvent(keyF, Press)
	if im.IsActive(ActionCount) || im.JustPressed(-1) {
		t.Fatalf("out-of-range action reported active")
	}

	im.BindKey(keyF, ActionQuit)
	im.UnbindKey(keyF)
	im.HandleKeyEvent(keyF, Press)
	if im.IsActive(ActionQuit) {
		t.Fatalf("UnbindKey kept the binding")
	}
}

func TestDragAccumulatesOnlyWhileHeld(t *testing.T) {
	im := NewInputManager()
	im.BindMouseButton(left, ActionDrag)

	im.HandleCursor(10, 10)
	im.HandleCursor(20, 30)
	if dx, dy := im.Drag(); dx != 0 || dy != 0 {
		t.Fatalf("drag without button: got %v,%v", dx, dy)
	}

	im.HandleMouseButtonEvent(left, Press)
	im.HandleCursor(25, 28)
	im.HandleCursor(30, 26)
	if dx, dy := im.Drag(); dx != 10 || dy != -4 {
		t.Fatalf("drag: got %v,%v, want 10,-4", dx, dy)
	}

	im.PostUpdate()
	if dx, dy := im.Drag(); dx != 0 || dy != 0 {
		t.Fatalf("drag after PostUpdate: got %v,%v", dx, dy)
	}
}

func TestScroll(t *testing.T) {
	im := NewInputManager()
	im.HandleScroll(1)
	im.HandleScroll(0.5)
	if s := im.Scroll(); s != 1.5 {
		t.Fatalf("scroll: got %v, want 1.5", s)
	}
	im.PostUpdate()
	if s := im.Scroll(); s != 0 {
		t.Fatalf("scroll after PostUpdate: got %v", s)
	}
}
