// Package session persists the desktop layout across runs as a small JSON
// file in the runtime directory. The loader is deliberately forgiving: a
// missing, truncated or stale file means starting with an empty desktop, and
// entries that no longer resolve against the app catalog are skipped so one
// removed app cannot block the rest of the layout.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/openwebdesk/deskwm/internal/runtimepath"
	"github.com/openwebdesk/deskwm/internal/wm"
)

type savedWindow struct {
	ID     string `json:"id"`
	App    string `json:"app"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	State  string `json:"state"`
}

// Layout is the on-disk session document. Windows are stored back to front
// so replaying them in order rebuilds the stacking order.
type Layout struct {
	Windows []savedWindow `json:"windows"`
	Focused string        `json:"focused,omitempty"`
}

// Capture builds a Layout from the manager's current state.
func Capture(m *wm.Manager) Layout {
	var layout Layout
	for _, w := range m.Snapshot() {
		layout.Windows = append(layout.Windows, savedWindow{
			ID:     w.ID,
			App:    w.App,
			X:      w.Rect.X,
			Y:      w.Rect.Y,
			Width:  w.Rect.Width,
			Height: w.Rect.Height,
			State:  w.State.String(),
		})
		if w.Focused {
			layout.Focused = w.ID
		}
	}
	return layout
}

// Save writes the layout to the session file.
func Save(layout Layout) error {
	path, err := runtimepath.SessionPath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(layout, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Load reads the session file. A missing file returns an empty layout; a
// file that does not parse is treated the same way, so a corrupt session
// never blocks startup.
func Load() Layout {
	path, err := runtimepath.SessionPath()
	if err != nil {
		return Layout{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Warning: could not read session file: %v\n", err)
		}
		return Layout{}
	}
	var layout Layout
	if err := json.Unmarshal(data, &layout); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: ignoring malformed session file: %v\n", err)
		return Layout{}
	}
	return layout
}

// Clear removes the session file.
func Clear() error {
	path, err := runtimepath.SessionPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// Restore replays a layout through the manager. Each window is opened, moved
// and sized to its saved geometry, then pushed into its saved state. Windows
// whose app is gone from the catalog are skipped; windows with implausible
// geometry fall back to the manager's initial placement. The saved focus is
// applied last.
func Restore(m *wm.Manager, layout Layout) {
	for _, sw := range layout.Windows {
		if sw.App == "" {
			continue
		}
		id, err := m.Open(sw.App, sw.ID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: session window %q not restored: %v\n", sw.ID, err)
			continue
		}

		st, stateKnown := wm.ParseState(sw.State)
		if sw.Width > 0 && sw.Height > 0 {
			m.Resize(id, sw.Width, sw.Height)
			m.Move(id, sw.X, sw.Y)
		}
		if !stateKnown {
			continue
		}
		switch st {
		case wm.StateMaximized:
			m.Maximize(id)
		case wm.StateMinimized:
			m.Minimize(id)
		}
	}
	if layout.Focused != "" {
		m.Focus(layout.Focused)
	}
}
