package wm

import (
	"testing"

	"github.com/openwebdesk/deskwm/internal/config"
	"github.com/openwebdesk/deskwm/internal/geometry"
)

func testConfig() *config.Config {
	no := false
	return &config.Config{
		Apps: map[string]config.AppConfig{
			"app": {
				Title:     "App",
				Width:     400,
				Height:    300,
				MinWidth:  200,
				MinHeight: 150,
				Content:   config.ContentText,
			},
			"pinned": {
				Title:     "Pinned",
				Width:     300,
				Height:    200,
				MinWidth:  300,
				MinHeight: 200,
				Resizable: &no,
				Content:   config.ContentText,
			},
		},
	}
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m := NewManager(testConfig())
	m.SetViewport(geometry.Viewport{Width: 1000, Height: 800})
	return m
}

func mustOpen(t *testing.T, m *Manager, app, id string) string {
	t.Helper()
	got, err := m.Open(app, id)
	if err != nil {
		t.Fatalf("open %s/%s: %v", app, id, err)
	}
	return got
}

func find(t *testing.T, m *Manager, id string) WindowInfo {
	t.Helper()
	for _, w := range m.Snapshot() {
		if w.ID == id {
			return w
		}
	}
	t.Fatalf("window %q not in snapshot", id)
	return WindowInfo{}
}

func TestOpen_FirstWindowCenteredAndFocused(t *testing.T) {
	m := newTestManager(t)
	mustOpen(t, m, "app", "a")

	w := find(t, m, "a")
	// Centered in 1000x800: (300,250), no cascade for the first window.
	if w.Rect.X != 300 || w.Rect.Y != 250 {
		t.Fatalf("expected (300,250), got (%d,%d)", w.Rect.X, w.Rect.Y)
	}
	if !w.Focused || w.State != StateNormal {
		t.Fatalf("expected focused normal window, got %+v", w)
	}
}

func TestOpen_SecondWindowCascades(t *testing.T) {
	m := newTestManager(t)
	mustOpen(t, m, "app", "a")
	mustOpen(t, m, "app", "b")

	b := find(t, m, "b")
	if b.Rect.X != 330 || b.Rect.Y != 280 {
		t.Fatalf("expected (330,280), got (%d,%d)", b.Rect.X, b.Rect.Y)
	}
	if !b.Focused {
		t.Fatalf("new window must take focus")
	}
	a := find(t, m, "a")
	if a.Focused {
		t.Fatalf("previous window must lose focus")
	}
}

func TestOpen_DuplicateIDRefocusesInsteadOfCreating(t *testing.T) {
	m := newTestManager(t)
	mustOpen(t, m, "app", "a")
	mustOpen(t, m, "app", "b")

	mustOpen(t, m, "app", "a")
	if m.WindowCount() != 2 {
		t.Fatalf("expected 2 windows, got %d", m.WindowCount())
	}
	if m.FocusedID() != "a" {
		t.Fatalf("expected refocus of a, got %q", m.FocusedID())
	}
	a := find(t, m, "a")
	if a.Rect.X != 300 || a.Rect.Y != 250 {
		t.Fatalf("re-open must not move the window, got (%d,%d)", a.Rect.X, a.Rect.Y)
	}
}

func TestOpen_UnknownAppErrors(t *testing.T) {
	m := newTestManager(t)
	if _, err := m.Open("nope", ""); err == nil {
		t.Fatalf("expected error for unknown app")
	}
}

func TestOpen_FailsWithoutViewport(t *testing.T) {
	m := NewManager(testConfig())
	if _, err := m.Open("app", ""); err == nil {
		t.Fatalf("expected error before viewport is set")
	}
}

func TestOpen_EmptyIDDefaultsToAppName(t *testing.T) {
	m := newTestManager(t)
	id := mustOpen(t, m, "app", "")
	if id != "app" {
		t.Fatalf("expected id %q, got %q", "app", id)
	}
	// A second bare open is a refocus, not a new instance.
	mustOpen(t, m, "app", "")
	if m.WindowCount() != 1 {
		t.Fatalf("expected 1 window, got %d", m.WindowCount())
	}
}

func TestOpenAuto_GeneratesFreshIDs(t *testing.T) {
	m := newTestManager(t)
	first, _ := m.OpenAuto("app")
	second, _ := m.OpenAuto("app")
	if first == second {
		t.Fatalf("expected distinct ids, got %q twice", first)
	}
	if m.WindowCount() != 2 {
		t.Fatalf("expected 2 windows, got %d", m.WindowCount())
	}
}

func TestClose_TransfersFocusToTopmostRemaining(t *testing.T) {
	m := newTestManager(t)
	mustOpen(t, m, "app", "a")
	mustOpen(t, m, "app", "b")
	mustOpen(t, m, "app", "c")

	m.Close("c")
	if m.FocusedID() != "b" {
		t.Fatalf("expected focus on b, got %q", m.FocusedID())
	}
	m.Close("b")
	m.Close("a")
	if m.FocusedID() != "" {
		t.Fatalf("expected no focus, got %q", m.FocusedID())
	}
	if m.WindowCount() != 0 {
		t.Fatalf("expected empty registry, got %d", m.WindowCount())
	}
}

func TestClose_SkipsMinimizedWhenTransferringFocus(t *testing.T) {
	m := newTestManager(t)
	mustOpen(t, m, "app", "a")
	mustOpen(t, m, "app", "b")
	mustOpen(t, m, "app", "c")

	m.Minimize("b")
	m.Close("c")
	if m.FocusedID() != "a" {
		t.Fatalf("focus must skip minimized b, got %q", m.FocusedID())
	}
}

func TestClose_UnknownIDIsIgnored(t *testing.T) {
	m := newTestManager(t)
	mustOpen(t, m, "app", "a")
	m.Close("ghost")
	if m.WindowCount() != 1 || m.FocusedID() != "a" {
		t.Fatalf("close of unknown id must not change state")
	}
}

func TestFocus_IdempotentNoStackBump(t *testing.T) {
	m := newTestManager(t)
	mustOpen(t, m, "app", "a")
	before := find(t, m, "a").StackOrder

	m.Focus("a")
	m.Focus("a")
	after := find(t, m, "a").StackOrder
	if after != before {
		t.Fatalf("focus on focused window must not bump stack order: %d -> %d", before, after)
	}
}

func TestFocus_MinimizedWindowIsNoOp(t *testing.T) {
	m := newTestManager(t)
	mustOpen(t, m, "app", "a")
	mustOpen(t, m, "app", "b")
	m.Minimize("a")

	m.Focus("a")
	if m.FocusedID() != "b" {
		t.Fatalf("minimized window must not take focus, got %q", m.FocusedID())
	}
	if find(t, m, "a").State != StateMinimized {
		t.Fatalf("focus must not restore a minimized window")
	}
}

func TestStackOrder_StrictlyIncreasingAndUnique(t *testing.T) {
	m := newTestManager(t)
	mustOpen(t, m, "app", "a")
	mustOpen(t, m, "app", "b")
	mustOpen(t, m, "app", "c")
	m.Focus("a")
	m.Focus("b")

	seen := map[uint64]string{}
	var max uint64
	for _, w := range m.Snapshot() {
		if other, dup := seen[w.StackOrder]; dup {
			t.Fatalf("stack order %d shared by %s and %s", w.StackOrder, other, w.ID)
		}
		seen[w.StackOrder] = w.ID
		if w.StackOrder > max {
			max = w.StackOrder
		}
	}
	// Snapshot is ordered back to front; the focused window is last.
	snap := m.Snapshot()
	top := snap[len(snap)-1]
	if top.ID != "b" || top.StackOrder != max {
		t.Fatalf("expected b on top with max order, got %s (%d)", top.ID, top.StackOrder)
	}
}

func TestMinimize_ReleasesFocusToNextTopmost(t *testing.T) {
	m := newTestManager(t)
	mustOpen(t, m, "app", "a")
	mustOpen(t, m, "app", "b")

	m.Minimize("b")
	if m.FocusedID() != "a" {
		t.Fatalf("expected focus on a, got %q", m.FocusedID())
	}
	m.Minimize("a")
	if m.FocusedID() != "" {
		t.Fatalf("expected no focus with all windows minimized, got %q", m.FocusedID())
	}
}

func TestMinimizeRestore_RoundTrip(t *testing.T) {
	m := newTestManager(t)
	mustOpen(t, m, "app", "a")
	before := find(t, m, "a").Rect

	m.Minimize("a")
	if st := find(t, m, "a").State; st != StateMinimized {
		t.Fatalf("expected minimized, got %v", st)
	}
	m.Restore("a")
	w := find(t, m, "a")
	if w.State != StateNormal || !w.Focused {
		t.Fatalf("restore must return to focused normal state, got %+v", w)
	}
	if w.Rect != before {
		t.Fatalf("restore must not move the window: %+v != %+v", w.Rect, before)
	}
}

func TestMaximizeRestore_GeometryRoundTripsExactly(t *testing.T) {
	m := newTestManager(t)
	mustOpen(t, m, "app", "a")
	m.Move("a", 123, 77)
	m.Resize("a", 417, 233)
	before := find(t, m, "a").Rect

	m.Maximize("a")
	w := find(t, m, "a")
	if w.State != StateMaximized {
		t.Fatalf("expected maximized, got %v", w.State)
	}
	if w.Rect != (geometry.Rect{X: 0, Y: 0, Width: 1000, Height: 800}) {
		t.Fatalf("maximized window must fill the usable viewport, got %+v", w.Rect)
	}

	m.Restore("a")
	w = find(t, m, "a")
	if w.State != StateNormal {
		t.Fatalf("expected normal, got %v", w.State)
	}
	if w.Rect != before {
		t.Fatalf("geometry must round-trip exactly: %+v != %+v", w.Rect, before)
	}
}

func TestMaximize_TogglesBackToNormal(t *testing.T) {
	m := newTestManager(t)
	mustOpen(t, m, "app", "a")
	before := find(t, m, "a").Rect

	m.Maximize("a")
	m.Maximize("a")
	w := find(t, m, "a")
	if w.State != StateNormal || w.Rect != before {
		t.Fatalf("double maximize must restore, got %+v", w)
	}
}

func TestMaximize_MinimizedWindowIsIgnored(t *testing.T) {
	m := newTestManager(t)
	mustOpen(t, m, "app", "a")
	m.Minimize("a")
	m.Maximize("a")
	if st := find(t, m, "a").State; st != StateMinimized {
		t.Fatalf("maximize from minimized must be ignored, got %v", st)
	}
}

func TestMinimizeWhileMaximized_RestoresSavedGeometry(t *testing.T) {
	m := newTestManager(t)
	mustOpen(t, m, "app", "a")
	before := find(t, m, "a").Rect

	m.Maximize("a")
	m.Minimize("a")
	m.Restore("a")
	w := find(t, m, "a")
	if w.State != StateNormal {
		t.Fatalf("expected normal, got %v", w.State)
	}
	if w.Rect != before {
		t.Fatalf("expected pre-maximize geometry %+v, got %+v", before, w.Rect)
	}
}

func TestResize_ClampsToMinimums(t *testing.T) {
	m := newTestManager(t)
	mustOpen(t, m, "app", "a")

	m.Resize("a", 10, 10)
	w := find(t, m, "a")
	if w.Rect.Width != 200 || w.Rect.Height != 150 {
		t.Fatalf("expected 200x150, got %dx%d", w.Rect.Width, w.Rect.Height)
	}
}

func TestResize_NonResizableIsIgnored(t *testing.T) {
	m := newTestManager(t)
	mustOpen(t, m, "pinned", "p")
	before := find(t, m, "p").Rect

	m.Resize("p", 500, 400)
	if got := find(t, m, "p").Rect; got != before {
		t.Fatalf("non-resizable window changed size: %+v", got)
	}
}

func TestSetViewport_MaximizedTracksUsableArea(t *testing.T) {
	m := newTestManager(t)
	mustOpen(t, m, "app", "a")
	m.Maximize("a")

	m.SetViewport(geometry.Viewport{Width: 640, Height: 480, TaskbarHeight: 30})
	w := find(t, m, "a")
	if w.Rect != (geometry.Rect{X: 0, Y: 0, Width: 640, Height: 450}) {
		t.Fatalf("maximized window must track the new usable viewport, got %+v", w.Rect)
	}
}

func TestSetViewport_NormalWindowKeepsSizeWhenItFits(t *testing.T) {
	m := newTestManager(t)
	mustOpen(t, m, "app", "a")
	m.Move("a", 580, 480)

	m.SetViewport(geometry.Viewport{Width: 800, Height: 600})
	w := find(t, m, "a")
	if w.Rect.Width != 400 || w.Rect.Height != 300 {
		t.Fatalf("size must be preserved, got %dx%d", w.Rect.Width, w.Rect.Height)
	}
	// Position re-clamped: x = 800-400, y = 600-300.
	if w.Rect.X != 400 || w.Rect.Y != 300 {
		t.Fatalf("expected (400,300), got (%d,%d)", w.Rect.X, w.Rect.Y)
	}
}

func TestSetViewport_ShrinksWindowOnlyWhenNothingWouldBeVisible(t *testing.T) {
	m := newTestManager(t)
	mustOpen(t, m, "app", "a")

	m.SetViewport(geometry.Viewport{Width: 320, Height: 240})
	w := find(t, m, "a")
	if w.Rect.Width != 320 || w.Rect.Height != 240 {
		t.Fatalf("expected shrink to 320x240, got %dx%d", w.Rect.Width, w.Rect.Height)
	}
	if w.Rect.Width < 200 || w.Rect.Height < 150 {
		t.Fatalf("minimums violated: %dx%d", w.Rect.Width, w.Rect.Height)
	}
}

func TestHooks_FireAfterCommittedMutations(t *testing.T) {
	m := newTestManager(t)

	var opened, closed []string
	var states []State
	var geoms int
	m.SetHooks(Hooks{
		OnWindowOpened: func(info WindowInfo) { opened = append(opened, info.ID) },
		OnWindowClosed: func(info WindowInfo) { closed = append(closed, info.ID) },
		OnGeometryChanged: func(id string, r geometry.Rect) {
			geoms++
			// Hooks run outside the manager lock; callbacks may read state.
			_ = m.Snapshot()
		},
		OnStateChanged: func(id string, st State) { states = append(states, st) },
	})

	mustOpen(t, m, "app", "a")
	m.Move("a", 10, 10)
	m.Maximize("a")
	m.Restore("a")
	m.Close("a")

	if len(opened) != 1 || opened[0] != "a" {
		t.Fatalf("unexpected opened hooks: %v", opened)
	}
	if len(closed) != 1 || closed[0] != "a" {
		t.Fatalf("unexpected closed hooks: %v", closed)
	}
	if geoms == 0 {
		t.Fatalf("expected geometry hooks")
	}
	if len(states) != 2 || states[0] != StateMaximized || states[1] != StateNormal {
		t.Fatalf("unexpected state hooks: %v", states)
	}
}

func TestInvariant_AtMostOneFocusedAndOnlyWhenVisible(t *testing.T) {
	m := newTestManager(t)
	mustOpen(t, m, "app", "a")
	mustOpen(t, m, "app", "b")
	mustOpen(t, m, "app", "c")

	check := func(context string) {
		t.Helper()
		focused := 0
		visible := 0
		for _, w := range m.Snapshot() {
			if w.Focused {
				focused++
			}
			if w.State != StateMinimized {
				visible++
			}
		}
		if focused > 1 {
			t.Fatalf("%s: %d focused windows", context, focused)
		}
		if visible > 0 && focused != 1 {
			t.Fatalf("%s: visible windows but no focus", context)
		}
		if visible == 0 && focused != 0 {
			t.Fatalf("%s: focus with no visible windows", context)
		}
	}

	check("after open")
	m.Minimize("c")
	check("after minimize c")
	m.Minimize("b")
	check("after minimize b")
	m.Minimize("a")
	check("after minimize a")
	m.Restore("b")
	check("after restore b")
	m.Close("b")
	check("after close b")
}
