package tui

import (
	"github.com/openwebdesk/deskwm/internal/geometry"
	"github.com/openwebdesk/deskwm/internal/wm"
)

type zone int

const (
	zoneDesktop zone = iota
	zoneTitle
	zoneButtonMinimize
	zoneButtonMaximize
	zoneButtonClose
	zoneResize
	zoneContent
)

// hit is the result of resolving a pointer position against the window stack.
type hit struct {
	id   string
	zone zone
	dir  geometry.Direction
}

// hitTest resolves a desktop coordinate to the topmost visible window under
// it and the zone within that window. The snapshot is ordered back to front,
// so the scan runs from the end.
func hitTest(snapshot []wm.WindowInfo, x, y int) hit {
	for i := len(snapshot) - 1; i >= 0; i-- {
		w := snapshot[i]
		if w.State == wm.StateMinimized {
			continue
		}
		if !w.Rect.Contains(geometry.Point{X: x, Y: y}) {
			continue
		}
		return hit{id: w.ID, zone: windowZone(w, x, y), dir: resizeDir(w.Rect, x, y)}
	}
	return hit{zone: zoneDesktop}
}

func windowZone(w wm.WindowInfo, x, y int) zone {
	r := w.Rect
	onLeft := x == r.X
	onRight := x == r.Right()-1
	onTop := y == r.Y
	onBottom := y == r.Bottom()-1

	if onTop {
		if r.Width >= 8 && !onLeft && !onRight {
			switch x {
			case r.Right() - 4:
				return zoneButtonMinimize
			case r.Right() - 3:
				return zoneButtonMaximize
			case r.Right() - 2:
				return zoneButtonClose
			}
		}
		if onLeft || onRight {
			return zoneResize
		}
		return zoneTitle
	}
	if onBottom || onLeft || onRight {
		return zoneResize
	}
	return zoneContent
}

// resizeDir maps an edge or corner cell to its compass direction. Interior
// cells default to SouthEast; callers only use the result for resize zones.
func resizeDir(r geometry.Rect, x, y int) geometry.Direction {
	onLeft := x == r.X
	onRight := x == r.Right()-1
	onTop := y == r.Y
	onBottom := y == r.Bottom()-1

	switch {
	case onTop && onLeft:
		return geometry.NorthWest
	case onTop && onRight:
		return geometry.NorthEast
	case onBottom && onLeft:
		return geometry.SouthWest
	case onBottom && onRight:
		return geometry.SouthEast
	case onTop:
		return geometry.North
	case onBottom:
		return geometry.South
	case onLeft:
		return geometry.West
	case onRight:
		return geometry.East
	}
	return geometry.SouthEast
}
