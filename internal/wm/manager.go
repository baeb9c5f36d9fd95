package wm

import (
	"fmt"
	"sync"

	"github.com/openwebdesk/deskwm/internal/config"
	"github.com/openwebdesk/deskwm/internal/diag"
	"github.com/openwebdesk/deskwm/internal/geometry"
)

// Hooks are the collaborator callbacks fired after committed mutations.
// Hooks run outside the manager lock and may call back into the Manager.
type Hooks struct {
	OnWindowOpened    func(info WindowInfo)
	OnWindowClosed    func(info WindowInfo)
	OnGeometryChanged func(id string, r geometry.Rect)
	OnStateChanged    func(id string, st State)
}

// Manager is the window-manager facade. It owns the registry, the stacking
// counter and the active gesture; every mutation funnels through it.
//
// Focus policy: Focus on the already-focused window is a true no-op (no
// stack bump). Open, Restore and gesture start always bring the window to
// the front, so the most-recently-interacted window stays topmost.
type Manager struct {
	mu       sync.Mutex
	cfg      *config.Config
	reg      *registry
	stack    stacker
	viewport geometry.Viewport
	hooks    Hooks
	log      *diag.Logger
	gesture  *gesture
	nextAuto uint64
}

// NewManager creates a Manager. The viewport starts empty; Open fails until
// the host reports a usable viewport via SetViewport.
func NewManager(cfg *config.Config) *Manager {
	return &Manager{
		cfg: cfg,
		reg: newRegistry(),
	}
}

// SetHooks installs the collaborator callbacks.
func (m *Manager) SetHooks(h Hooks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks = h
}

// SetLogger installs the diagnostic logger for ignored operations.
func (m *Manager) SetLogger(l *diag.Logger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.log = l
}

type notification func()

func runAll(ns []notification) {
	for _, fn := range ns {
		fn()
	}
}

// Open creates a window for the named catalog app, or refocuses the existing
// window when the id is already open. An empty id defaults to the app name,
// so each app is single-instance unless the caller supplies fresh ids.
// Returns the window id.
func (m *Manager) Open(app, id string) (string, error) {
	m.mu.Lock()

	appCfg, ok := m.cfg.App(app)
	if !ok {
		m.mu.Unlock()
		return "", fmt.Errorf("unknown application %q", app)
	}
	if m.viewport.Empty() {
		m.mu.Unlock()
		return "", fmt.Errorf("viewport not initialized")
	}

	if id == "" {
		id = app
	}

	if _, exists := m.reg.get(id); exists {
		ns := m.focusLocked(id)
		m.mu.Unlock()
		runAll(ns)
		return id, nil
	}

	appCfg = appCfg.Normalized()
	size := geometry.Size{Width: appCfg.Width, Height: appCfg.Height}
	pos := geometry.InitialPlacement(size, m.reg.len(), m.viewport)

	w := &Window{
		ID:     id,
		App:    app,
		Config: appCfg,
		Rect:   geometry.Rect{X: pos.X, Y: pos.Y, Width: size.Width, Height: size.Height},
		State:  StateNormal,
	}
	m.reg.create(w)
	m.stack.bringToFront(w)

	if m.log != nil {
		m.log.Log(diag.ActionOpen, id, map[string]interface{}{"app": app})
	}

	info := m.infoLocked(w)
	var ns []notification
	if m.hooks.OnWindowOpened != nil {
		fn := m.hooks.OnWindowOpened
		ns = append(ns, func() { fn(info) })
	}
	m.mu.Unlock()
	runAll(ns)
	return id, nil
}

// OpenAuto opens a fresh instance of the app with a generated id.
func (m *Manager) OpenAuto(app string) (string, error) {
	m.mu.Lock()
	m.nextAuto++
	id := fmt.Sprintf("%s-%d", app, m.nextAuto)
	for {
		if _, exists := m.reg.get(id); !exists {
			break
		}
		m.nextAuto++
		id = fmt.Sprintf("%s-%d", app, m.nextAuto)
	}
	m.mu.Unlock()
	return m.Open(app, id)
}

// Close tears down the window and transfers focus to the topmost remaining
// visible window. Closing an unknown id is ignored.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	w, ok := m.reg.get(id)
	if !ok {
		m.invalidLocked(diag.ActionClose, id, "not found")
		m.mu.Unlock()
		return
	}

	info := m.infoLocked(w)
	m.reg.remove(id)
	m.stack.releaseFocus(id, m.reg.all())

	if m.log != nil {
		m.log.Log(diag.ActionClose, id, nil)
	}

	var ns []notification
	if m.hooks.OnWindowClosed != nil {
		fn := m.hooks.OnWindowClosed
		ns = append(ns, func() { fn(info) })
	}
	m.mu.Unlock()
	runAll(ns)
}

// Focus brings the window to the front. Minimized windows cannot be focused
// (restore them first) and focusing the focused window is a no-op.
func (m *Manager) Focus(id string) {
	m.mu.Lock()
	ns := m.focusLocked(id)
	m.mu.Unlock()
	runAll(ns)
}

func (m *Manager) focusLocked(id string) []notification {
	w, ok := m.reg.get(id)
	if !ok {
		m.invalidLocked(diag.ActionFocus, id, "not found")
		return nil
	}
	if w.State == StateMinimized {
		m.invalidLocked(diag.ActionFocus, id, "window is minimized")
		return nil
	}
	if m.stack.focused() == id {
		return nil
	}
	m.stack.bringToFront(w)
	if m.log != nil {
		m.log.Log(diag.ActionFocus, id, nil)
	}
	return nil
}

// Minimize hides the window, keeping its record. A maximized window drops
// back to its saved geometry first so the snapshot never outlives the
// maximized state.
func (m *Manager) Minimize(id string) {
	m.mu.Lock()
	w, ok := m.reg.get(id)
	if !ok {
		m.invalidLocked(diag.ActionMinimize, id, "not found")
		m.mu.Unlock()
		return
	}
	if w.State == StateMinimized {
		m.invalidLocked(diag.ActionMinimize, id, "already minimized")
		m.mu.Unlock()
		return
	}

	var ns []notification
	if w.State == StateMaximized && w.saved != nil {
		w.Rect = *w.saved
		w.saved = nil
		ns = append(ns, m.geometryChangedLocked(w)...)
	}
	w.State = StateMinimized
	m.stack.releaseFocus(id, m.reg.all())

	if m.log != nil {
		m.log.Log(diag.ActionMinimize, id, nil)
	}
	ns = append(ns, m.stateChangedLocked(w)...)
	m.mu.Unlock()
	runAll(ns)
}

// Maximize grows the window to the full usable viewport, saving its geometry
// for restore. Maximizing a maximized window toggles back to normal.
func (m *Manager) Maximize(id string) {
	m.mu.Lock()
	w, ok := m.reg.get(id)
	if !ok {
		m.invalidLocked(diag.ActionMaximize, id, "not found")
		m.mu.Unlock()
		return
	}

	var ns []notification
	switch w.State {
	case StateMaximized:
		ns = m.restoreLocked(w)
	case StateNormal:
		saved := w.Rect
		w.saved = &saved
		w.Rect = m.viewport.Usable()
		w.State = StateMaximized
		m.stack.bringToFront(w)
		if m.log != nil {
			m.log.Log(diag.ActionMaximize, id, nil)
		}
		ns = append(ns, m.geometryChangedLocked(w)...)
		ns = append(ns, m.stateChangedLocked(w)...)
	default:
		m.invalidLocked(diag.ActionMaximize, id, "window is minimized")
	}
	m.mu.Unlock()
	runAll(ns)
}

// Restore returns a minimized window to view, or a maximized window to its
// saved geometry.
func (m *Manager) Restore(id string) {
	m.mu.Lock()
	w, ok := m.reg.get(id)
	if !ok {
		m.invalidLocked(diag.ActionRestore, id, "not found")
		m.mu.Unlock()
		return
	}
	if w.State == StateNormal {
		m.invalidLocked(diag.ActionRestore, id, "window is not minimized or maximized")
		m.mu.Unlock()
		return
	}
	ns := m.restoreLocked(w)
	m.mu.Unlock()
	runAll(ns)
}

func (m *Manager) restoreLocked(w *Window) []notification {
	var ns []notification
	switch w.State {
	case StateMinimized:
		w.State = StateNormal
		m.stack.bringToFront(w)
		ns = append(ns, m.stateChangedLocked(w)...)
	case StateMaximized:
		if w.saved != nil {
			w.Rect = *w.saved
			w.saved = nil
			ns = append(ns, m.geometryChangedLocked(w)...)
		}
		w.State = StateNormal
		ns = append(ns, m.stateChangedLocked(w)...)
	}
	if m.log != nil {
		m.log.Log(diag.ActionRestore, w.ID, nil)
	}
	return ns
}

// Move repositions a normal-state window, clamped to the viewport.
func (m *Manager) Move(id string, x, y int) {
	m.mu.Lock()
	w, ok := m.reg.get(id)
	if !ok {
		m.invalidLocked(diag.ActionMove, id, "not found")
		m.mu.Unlock()
		return
	}
	if w.State != StateNormal {
		m.invalidLocked(diag.ActionMove, id, "window is "+w.State.String())
		m.mu.Unlock()
		return
	}

	w.Rect.X = x
	w.Rect.Y = y
	w.Rect = geometry.Clamp(w.Rect, m.viewport)
	if m.log != nil {
		m.log.Log(diag.ActionMove, id, map[string]interface{}{"x": w.Rect.X, "y": w.Rect.Y})
	}
	ns := m.geometryChangedLocked(w)
	m.mu.Unlock()
	runAll(ns)
}

// Resize sets a normal-state window's size, clamped to its minimums and
// fitted to the viewport. Ignored for non-resizable windows.
func (m *Manager) Resize(id string, width, height int) {
	m.mu.Lock()
	w, ok := m.reg.get(id)
	if !ok {
		m.invalidLocked(diag.ActionResize, id, "not found")
		m.mu.Unlock()
		return
	}
	if w.State != StateNormal {
		m.invalidLocked(diag.ActionResize, id, "window is "+w.State.String())
		m.mu.Unlock()
		return
	}
	if !w.Config.IsResizable() {
		m.invalidLocked(diag.ActionResize, id, "window is not resizable")
		m.mu.Unlock()
		return
	}

	if width < w.Config.MinWidth {
		width = w.Config.MinWidth
	}
	if height < w.Config.MinHeight {
		height = w.Config.MinHeight
	}
	w.Rect.Width = width
	w.Rect.Height = height
	w.Rect = geometry.Fit(w.Rect, w.Config.MinWidth, w.Config.MinHeight, m.viewport)
	if m.log != nil {
		m.log.Log(diag.ActionResize, id, map[string]interface{}{"width": w.Rect.Width, "height": w.Rect.Height})
	}
	ns := m.geometryChangedLocked(w)
	m.mu.Unlock()
	runAll(ns)
}

// SetViewport re-clamps every window against the new host surface.
// Maximized windows track the usable viewport exactly; normal windows keep
// their size unless it no longer fits at all.
func (m *Manager) SetViewport(vp geometry.Viewport) {
	m.mu.Lock()
	m.viewport = vp

	var ns []notification
	for _, w := range m.reg.all() {
		before := w.Rect
		switch w.State {
		case StateMaximized:
			w.Rect = vp.Usable()
		case StateNormal:
			w.Rect = geometry.Fit(w.Rect, w.Config.MinWidth, w.Config.MinHeight, vp)
		}
		if w.Rect != before {
			ns = append(ns, m.geometryChangedLocked(w)...)
		}
	}
	m.mu.Unlock()
	runAll(ns)
}

// Viewport returns the current host viewport.
func (m *Manager) Viewport() geometry.Viewport {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.viewport
}

// Exists reports whether a window with the id is open.
func (m *Manager) Exists(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.reg.get(id)
	return ok
}

// FocusedID returns the focused window id, or "" when no visible windows
// exist.
func (m *Manager) FocusedID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stack.focused()
}

// WindowCount returns the number of open windows, minimized included.
func (m *Manager) WindowCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reg.len()
}

// Snapshot returns read-only views of every window ordered back to front.
func (m *Manager) Snapshot() []WindowInfo {
	m.mu.Lock()
	defer m.mu.Unlock()

	windows := m.reg.all()
	out := make([]WindowInfo, 0, len(windows))
	for _, w := range windows {
		out = append(out, m.infoLocked(w))
	}
	return out
}

func (m *Manager) infoLocked(w *Window) WindowInfo {
	return WindowInfo{
		ID:         w.ID,
		App:        w.App,
		Title:      w.Config.Title,
		Content:    w.Config.Content,
		Rect:       w.Rect,
		State:      w.State,
		StackOrder: w.StackOrder,
		Focused:    m.stack.focused() == w.ID,
		Resizable:  w.Config.IsResizable(),
	}
}

func (m *Manager) geometryChangedLocked(w *Window) []notification {
	if m.hooks.OnGeometryChanged == nil {
		return nil
	}
	fn := m.hooks.OnGeometryChanged
	id := w.ID
	r := w.Rect
	return []notification{func() { fn(id, r) }}
}

func (m *Manager) stateChangedLocked(w *Window) []notification {
	if m.hooks.OnStateChanged == nil {
		return nil
	}
	fn := m.hooks.OnStateChanged
	id := w.ID
	st := w.State
	return []notification{func() { fn(id, st) }}
}

func (m *Manager) invalidLocked(op diag.Action, id, reason string) {
	if m.log != nil {
		m.log.Invalid(op, id, reason)
	}
}
