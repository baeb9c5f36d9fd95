package wm

import (
	"github.com/openwebdesk/deskwm/internal/config"
	"github.com/openwebdesk/deskwm/internal/geometry"
)

// State is a window's lifecycle state. Exactly one holds at any time.
type State int

const (
	StateNormal State = iota
	StateMinimized
	StateMaximized
)

// String returns the wire/log name of the state.
func (s State) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateMinimized:
		return "minimized"
	case StateMaximized:
		return "maximized"
	}
	return "unknown"
}

// ParseState converts a wire name back into a State.
func ParseState(s string) (State, bool) {
	switch s {
	case "normal":
		return StateNormal, true
	case "minimized":
		return StateMinimized, true
	case "maximized":
		return StateMaximized, true
	}
	return StateNormal, false
}

// Window is the authoritative record for one open application window. All
// mutation funnels through the Manager; nothing outside this package holds a
// reference.
type Window struct {
	ID     string
	App    string
	Config config.AppConfig
	Rect   geometry.Rect
	State  State

	// StackOrder values are allocated strictly increasing and never
	// reused; the highest visible one is drawn on top.
	StackOrder uint64

	// saved holds the pre-maximize geometry. Set on the transition into
	// StateMaximized, cleared on the way out, never read otherwise.
	saved *geometry.Rect
}

func (w *Window) visible() bool {
	return w.State != StateMinimized
}

// WindowInfo is a read-only view of a window for taskbar and persistence
// consumers.
type WindowInfo struct {
	ID         string
	App        string
	Title      string
	Content    config.ContentKind
	Rect       geometry.Rect
	State      State
	StackOrder uint64
	Focused    bool
	Resizable  bool
}
