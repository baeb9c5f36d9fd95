package wm

import (
	"testing"

	"github.com/openwebdesk/deskwm/internal/geometry"
)

func TestDrag_FollowsPointerWithGrabOffset(t *testing.T) {
	m := newTestManager(t)
	mustOpen(t, m, "app", "a") // (300,250) 400x300

	// Grab the header 50 cells in from the left edge.
	if !m.StartDrag("a", geometry.Point{X: 350, Y: 250}) {
		t.Fatalf("drag refused")
	}
	m.PointerMove(geometry.Point{X: 500, Y: 400})
	w := find(t, m, "a")
	// Origin = pointer - grab offset (50,0).
	if w.Rect.X != 450 || w.Rect.Y != 400 {
		t.Fatalf("expected (450,400), got (%d,%d)", w.Rect.X, w.Rect.Y)
	}
	if w.Rect.Width != 400 || w.Rect.Height != 300 {
		t.Fatalf("drag must not resize, got %dx%d", w.Rect.Width, w.Rect.Height)
	}
	m.PointerUp(geometry.Point{X: 500, Y: 400})
	if m.GestureActive() {
		t.Fatalf("gesture must end on pointer up")
	}
}

func TestDrag_ClampedToViewport(t *testing.T) {
	m := newTestManager(t)
	mustOpen(t, m, "app", "a")

	m.StartDrag("a", geometry.Point{X: 300, Y: 250})
	// Pointer far past the left edge would put the origin at x=-100.
	m.PointerMove(geometry.Point{X: -100, Y: 250})
	w := find(t, m, "a")
	if w.Rect.X != 0 {
		t.Fatalf("expected clamp to x=0, got %d", w.Rect.X)
	}
	if w.Rect.Y != 250 {
		t.Fatalf("y must be unchanged, got %d", w.Rect.Y)
	}
	if w.Rect.Width != 400 || w.Rect.Height != 300 {
		t.Fatalf("clamp must not resize, got %dx%d", w.Rect.Width, w.Rect.Height)
	}
	m.PointerUp(geometry.Point{X: -100, Y: 250})
}

func TestDrag_BringsWindowToFront(t *testing.T) {
	m := newTestManager(t)
	mustOpen(t, m, "app", "a")
	mustOpen(t, m, "app", "b")

	m.StartDrag("a", geometry.Point{X: 300, Y: 250})
	if m.FocusedID() != "a" {
		t.Fatalf("drag start must focus the target, got %q", m.FocusedID())
	}
	m.PointerUp(geometry.Point{X: 300, Y: 250})
}

func TestDrag_RefusedOnMaximizedAndMinimized(t *testing.T) {
	m := newTestManager(t)
	mustOpen(t, m, "app", "a")
	m.Maximize("a")
	if m.StartDrag("a", geometry.Point{X: 10, Y: 0}) {
		t.Fatalf("drag on maximized window must be refused")
	}
	m.Restore("a")
	m.Minimize("a")
	if m.StartDrag("a", geometry.Point{X: 10, Y: 0}) {
		t.Fatalf("drag on minimized window must be refused")
	}
}

func TestResize_NorthWestPinsOppositeEdges(t *testing.T) {
	m := newTestManager(t)
	mustOpen(t, m, "app", "a")
	m.Move("a", 300, 250)
	m.Resize("a", 220, 300) // min width is 200

	m.StartResize("a", geometry.NorthWest, geometry.Point{X: 300, Y: 250})
	// Dragging inward by (+50,+30) would shrink width to 170, below the
	// 200 minimum: width stops at 200 and x pins so the right edge holds.
	m.PointerMove(geometry.Point{X: 350, Y: 280})
	w := find(t, m, "a")
	if w.Rect.Width != 200 {
		t.Fatalf("expected min width 200, got %d", w.Rect.Width)
	}
	if w.Rect.X != 320 {
		t.Fatalf("expected x=320 pinning the right edge, got %d", w.Rect.X)
	}
	if got, want := w.Rect.Right(), 520; got != want {
		t.Fatalf("right edge moved: %d != %d", got, want)
	}
	if w.Rect.Height != 270 || w.Rect.Y != 280 {
		t.Fatalf("expected y=280 h=270, got y=%d h=%d", w.Rect.Y, w.Rect.Height)
	}
	if got, want := w.Rect.Bottom(), 550; got != want {
		t.Fatalf("bottom edge moved: %d != %d", got, want)
	}
	m.PointerUp(geometry.Point{X: 350, Y: 280})
}

func TestResize_SouthEastGrowsFromAnchor(t *testing.T) {
	m := newTestManager(t)
	mustOpen(t, m, "app", "a") // (300,250) 400x300

	m.StartResize("a", geometry.SouthEast, geometry.Point{X: 700, Y: 550})
	m.PointerMove(geometry.Point{X: 750, Y: 600})
	w := find(t, m, "a")
	if w.Rect.X != 300 || w.Rect.Y != 250 {
		t.Fatalf("origin must not move, got (%d,%d)", w.Rect.X, w.Rect.Y)
	}
	if w.Rect.Width != 450 || w.Rect.Height != 350 {
		t.Fatalf("expected 450x350, got %dx%d", w.Rect.Width, w.Rect.Height)
	}
	m.PointerUp(geometry.Point{X: 750, Y: 600})
}

func TestResize_DeltasFromStartNotCumulative(t *testing.T) {
	m := newTestManager(t)
	mustOpen(t, m, "app", "a")

	m.StartResize("a", geometry.East, geometry.Point{X: 700, Y: 400})
	m.PointerMove(geometry.Point{X: 800, Y: 400})
	m.PointerMove(geometry.Point{X: 720, Y: 400})
	w := find(t, m, "a")
	// Each move resolves against the start rect, so the net is +20.
	if w.Rect.Width != 420 {
		t.Fatalf("expected width 420, got %d", w.Rect.Width)
	}
	m.PointerUp(geometry.Point{X: 720, Y: 400})
}

func TestResize_RefusedForNonResizable(t *testing.T) {
	m := newTestManager(t)
	mustOpen(t, m, "pinned", "p")
	if m.StartResize("p", geometry.SouthEast, geometry.Point{X: 0, Y: 0}) {
		t.Fatalf("resize on non-resizable window must be refused")
	}
}

func TestGesture_TargetClosedMidResize(t *testing.T) {
	m := newTestManager(t)
	mustOpen(t, m, "app", "a")
	mustOpen(t, m, "app", "b")

	m.StartResize("a", geometry.SouthEast, geometry.Point{X: 700, Y: 550})
	m.Close("a")

	// Further pointer traffic must be silent no-ops.
	m.PointerMove(geometry.Point{X: 900, Y: 700})
	if m.GestureActive() {
		t.Fatalf("gesture must end when its target vanishes")
	}
	m.PointerUp(geometry.Point{X: 900, Y: 700})
	if m.WindowCount() != 1 || m.FocusedID() != "b" {
		t.Fatalf("remaining window disturbed: count=%d focus=%q", m.WindowCount(), m.FocusedID())
	}
}

func TestGesture_NewGestureReplacesActiveOne(t *testing.T) {
	m := newTestManager(t)
	mustOpen(t, m, "app", "a")
	mustOpen(t, m, "app", "b") // (330,280)

	m.StartDrag("a", geometry.Point{X: 300, Y: 250})
	m.StartDrag("b", geometry.Point{X: 330, Y: 280})
	m.PointerMove(geometry.Point{X: 430, Y: 380})

	if got := find(t, m, "a").Rect.X; got != 300 {
		t.Fatalf("abandoned gesture moved its window: x=%d", got)
	}
	if got := find(t, m, "b").Rect.X; got != 430 {
		t.Fatalf("active gesture did not move: x=%d", got)
	}
	m.PointerUp(geometry.Point{X: 430, Y: 380})
}

func TestGesture_CancelLeavesGeometryAtLastApplied(t *testing.T) {
	m := newTestManager(t)
	mustOpen(t, m, "app", "a")

	m.StartDrag("a", geometry.Point{X: 300, Y: 250})
	m.PointerMove(geometry.Point{X: 400, Y: 300})
	m.CancelGesture()
	if m.GestureActive() {
		t.Fatalf("cancel must clear the gesture")
	}
	w := find(t, m, "a")
	if w.Rect.X != 400 || w.Rect.Y != 300 {
		t.Fatalf("expected last applied position (400,300), got (%d,%d)", w.Rect.X, w.Rect.Y)
	}
}

func TestPointerTraffic_WithoutGestureIsNoOp(t *testing.T) {
	m := newTestManager(t)
	mustOpen(t, m, "app", "a")
	before := find(t, m, "a").Rect

	m.PointerMove(geometry.Point{X: 500, Y: 500})
	m.PointerUp(geometry.Point{X: 500, Y: 500})
	if got := find(t, m, "a").Rect; got != before {
		t.Fatalf("pointer traffic without a gesture moved a window: %+v", got)
	}
}
