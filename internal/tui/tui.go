// Package tui is the interactive desktop host: a bubbletea program that
// paints the window stack into the terminal and translates key and mouse
// events into window manager operations.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/openwebdesk/deskwm/internal/config"
	"github.com/openwebdesk/deskwm/internal/geometry"
	"github.com/openwebdesk/deskwm/internal/session"
	"github.com/openwebdesk/deskwm/internal/taskbar"
	"github.com/openwebdesk/deskwm/internal/wm"
)

// refreshMsg asks the program to redraw after an out-of-band mutation, e.g.
// an IPC command from the CLI or an MCP client.
type refreshMsg struct{}

// Host wraps the running bubbletea program so other goroutines (the IPC
// server) can poke it for a redraw.
type Host struct {
	program *tea.Program
}

// NewHost creates the desktop host program. When restoreSession is set the
// previous layout is replayed once the terminal size is known.
func NewHost(manager *wm.Manager, cfg *config.Config, restoreSession bool) *Host {
	mdl := model{
		manager:        manager,
		cfg:            cfg,
		restoreSession: restoreSession,
	}
	return &Host{
		program: tea.NewProgram(mdl, tea.WithAltScreen(), tea.WithMouseAllMotion()),
	}
}

// Refresh schedules a redraw. Safe to call from any goroutine.
func (h *Host) Refresh() {
	h.program.Send(refreshMsg{})
}

// Run blocks until the user quits the desktop.
func (h *Host) Run() error {
	_, err := h.program.Run()
	return err
}

type model struct {
	manager *wm.Manager
	cfg     *config.Config

	width  int
	height int

	restoreSession bool
	sized          bool
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshMsg:
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.manager.SetViewport(geometry.Viewport{
			Width:         msg.Width,
			Height:        msg.Height,
			TaskbarHeight: m.cfg.TaskbarHeight(),
		})
		if !m.sized {
			m.sized = true
			if m.restoreSession {
				session.Restore(m.manager, session.Load())
			}
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "n":
		m.manager.OpenAuto("terminal")
	case "x":
		if id := m.manager.FocusedID(); id != "" {
			m.manager.Close(id)
		}
	case "m":
		if id := m.manager.FocusedID(); id != "" {
			m.manager.Minimize(id)
		}
	case "z":
		if id := m.manager.FocusedID(); id != "" {
			m.manager.Maximize(id)
		}
	case "tab":
		m.cycleFocus()
	case "esc":
		m.manager.CancelGesture()
	}
	return m, nil
}

// cycleFocus raises the bottom-most visible window, rotating through the
// stack on repeated presses.
func (m model) cycleFocus() {
	for _, w := range m.manager.Snapshot() {
		if w.State == wm.StateMinimized || w.Focused {
			continue
		}
		m.manager.Focus(w.ID)
		return
	}
}

func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.MouseLeft:
		m.handlePress(msg.X, msg.Y)
	case tea.MouseMotion:
		m.manager.PointerMove(geometry.Point{X: msg.X, Y: msg.Y})
	case tea.MouseRelease:
		m.manager.PointerUp(geometry.Point{X: msg.X, Y: msg.Y})
	}
	return m, nil
}

func (m model) handlePress(x, y int) {
	// Taskbar band.
	if th := m.cfg.TaskbarHeight(); m.height > 0 && y >= m.height-th {
		if y == m.height-th {
			_, spans := layoutTaskbar(taskbar.Project(m.manager.Snapshot()), m.width)
			for _, span := range spans {
				if x >= span.x0 && x < span.x1 {
					taskbar.Click(m.manager, span.id)
					return
				}
			}
		}
		return
	}

	h := hitTest(m.manager.Snapshot(), x, y)
	p := geometry.Point{X: x, Y: y}
	switch h.zone {
	case zoneButtonMinimize:
		m.manager.Minimize(h.id)
	case zoneButtonMaximize:
		m.manager.Maximize(h.id)
	case zoneButtonClose:
		m.manager.Close(h.id)
	case zoneTitle:
		m.manager.StartDrag(h.id, p)
	case zoneResize:
		m.manager.StartResize(h.id, h.dir, p)
	case zoneContent:
		m.manager.Focus(h.id)
	}
}

// View implements tea.Model. The whole desktop is re-derived from a fresh
// snapshot on every frame.
func (m model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	th := m.cfg.TaskbarHeight()
	deskHeight := m.height - th
	if deskHeight < 1 {
		deskHeight = 1
	}

	snapshot := m.manager.Snapshot()

	g := newGrid(m.width, deskHeight)
	for _, w := range snapshot {
		if w.State == wm.StateMinimized {
			continue
		}
		g.paintWindow(w)
	}

	rows := g.renderRows()
	bar, _ := layoutTaskbar(taskbar.Project(snapshot), m.width)
	rows = append(rows, bar)
	for i := 1; i < th; i++ {
		filler, _ := layoutTaskbar(nil, m.width)
		rows = append(rows, filler)
	}

	out := ""
	for i, row := range rows {
		if i > 0 {
			out += "\n"
		}
		out += row
	}
	return out
}
