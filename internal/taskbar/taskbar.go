// Package taskbar projects the window registry into one button per open
// window. The projection is re-derived from a fresh snapshot on every render
// so it can never go stale relative to the manager.
package taskbar

import (
	"sort"

	"github.com/openwebdesk/deskwm/internal/wm"
)

// Button is the taskbar view of one open window.
type Button struct {
	ID        string
	Label     string
	Focused   bool
	Minimized bool
}

// Project derives the button row from a manager snapshot. Buttons are ordered
// by window id so they keep a stable position while windows restack.
func Project(snapshot []wm.WindowInfo) []Button {
	buttons := make([]Button, 0, len(snapshot))
	for _, w := range snapshot {
		label := w.Title
		if label == "" {
			label = w.ID
		}
		buttons = append(buttons, Button{
			ID:        w.ID,
			Label:     label,
			Focused:   w.Focused && w.State != wm.StateMinimized,
			Minimized: w.State == wm.StateMinimized,
		})
	}
	sort.Slice(buttons, func(i, j int) bool {
		return buttons[i].ID < buttons[j].ID
	})
	return buttons
}

// Click dispatches a taskbar button press to the manager: a minimized window
// is restored, the focused window is minimized, anything else is focused.
func Click(m *wm.Manager, id string) {
	for _, w := range m.Snapshot() {
		if w.ID != id {
			continue
		}
		switch {
		case w.State == wm.StateMinimized:
			m.Restore(id)
		case w.Focused:
			m.Minimize(id)
		default:
			m.Focus(id)
		}
		return
	}
}
