package wm

import (
	"github.com/openwebdesk/deskwm/internal/diag"
	"github.com/openwebdesk/deskwm/internal/geometry"
)

type gestureKind int

const (
	gestureDrag gestureKind = iota
	gestureResize
)

// gesture is the transient state of the one active pointer gesture. The
// controller holds only the target id plus start-of-gesture snapshots; live
// geometry stays in the registry so the two can never diverge.
type gesture struct {
	kind   gestureKind
	id     string
	offset geometry.Point // drag: pointer offset from the window's top-left
	start  geometry.Rect  // resize: rect at pointer-down
	origin geometry.Point // resize: pointer at pointer-down
	dir    geometry.Direction
}

// StartDrag begins a drag gesture on the window's header, capturing the
// pointer offset from its top-left corner. Starting a gesture while another
// is active abandons the old one. Returns false when the drag is refused.
func (m *Manager) StartDrag(id string, pointer geometry.Point) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.reg.get(id)
	if !ok {
		m.invalidLocked(diag.ActionGesture, id, "drag target not found")
		return false
	}
	if w.State != StateNormal {
		m.invalidLocked(diag.ActionGesture, id, "drag on "+w.State.String()+" window")
		return false
	}

	m.stack.bringToFront(w)
	m.gesture = &gesture{
		kind:   gestureDrag,
		id:     id,
		offset: geometry.Point{X: pointer.X - w.Rect.X, Y: pointer.Y - w.Rect.Y},
	}
	if m.log != nil {
		m.log.Log(diag.ActionGesture, id, map[string]interface{}{"kind": "drag", "phase": "start"})
	}
	return true
}

// StartResize begins a resize gesture on one of the eight handles. Refused
// for non-resizable configs and for windows not in the normal state.
func (m *Manager) StartResize(id string, dir geometry.Direction, pointer geometry.Point) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.reg.get(id)
	if !ok {
		m.invalidLocked(diag.ActionGesture, id, "resize target not found")
		return false
	}
	if !w.Config.IsResizable() {
		m.invalidLocked(diag.ActionGesture, id, "window is not resizable")
		return false
	}
	if w.State != StateNormal {
		m.invalidLocked(diag.ActionGesture, id, "resize on "+w.State.String()+" window")
		return false
	}

	m.stack.bringToFront(w)
	m.gesture = &gesture{
		kind:   gestureResize,
		id:     id,
		start:  w.Rect,
		origin: pointer,
		dir:    dir,
	}
	if m.log != nil {
		m.log.Log(diag.ActionGesture, id, map[string]interface{}{"kind": "resize", "phase": "start", "dir": string(dir)})
	}
	return true
}

// PointerMove advances the active gesture. Moves are applied immediately
// with no debouncing; intermediate frames do not fire geometry hooks. When
// the target window has vanished the gesture ends silently.
func (m *Manager) PointerMove(pointer geometry.Point) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.applyGestureLocked(pointer)
}

// PointerUp applies the final pointer position, commits the geometry (firing
// the geometry hook) and ends the gesture.
func (m *Manager) PointerUp(pointer geometry.Point) {
	m.mu.Lock()
	g := m.gesture
	m.applyGestureLocked(pointer)
	m.gesture = nil

	var ns []notification
	if g != nil {
		if w, ok := m.reg.get(g.id); ok {
			if m.log != nil {
				m.log.Log(diag.ActionGesture, g.id, map[string]interface{}{"phase": "end"})
			}
			ns = m.geometryChangedLocked(w)
		}
	}
	m.mu.Unlock()
	runAll(ns)
}

// CancelGesture abandons the active gesture without further writes, e.g. on
// loss of pointer capture.
func (m *Manager) CancelGesture() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gesture = nil
}

// GestureActive reports whether a drag or resize is in progress.
func (m *Manager) GestureActive() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gesture != nil
}

func (m *Manager) applyGestureLocked(pointer geometry.Point) {
	g := m.gesture
	if g == nil {
		return
	}

	w, ok := m.reg.get(g.id)
	if !ok {
		// Target closed mid-gesture; stop without writing.
		m.gesture = nil
		return
	}

	switch g.kind {
	case gestureDrag:
		w.Rect.X = pointer.X - g.offset.X
		w.Rect.Y = pointer.Y - g.offset.Y
		w.Rect = geometry.Clamp(w.Rect, m.viewport)
	case gestureResize:
		dx := pointer.X - g.origin.X
		dy := pointer.Y - g.origin.Y
		r := geometry.ResizeRect(g.start, dx, dy, g.dir, w.Config.MinWidth, w.Config.MinHeight)
		w.Rect = geometry.Clamp(r, m.viewport)
	}
}
