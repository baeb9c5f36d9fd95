package geometry

// Direction identifies which window edge or corner a resize gesture grabs,
// named by compass point.
type Direction string

const (
	North     Direction = "n"
	NorthEast Direction = "ne"
	East      Direction = "e"
	SouthEast Direction = "se"
	South     Direction = "s"
	SouthWest Direction = "sw"
	West      Direction = "w"
	NorthWest Direction = "nw"
)

// ParseDirection converts a string into a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch Direction(s) {
	case North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest:
		return Direction(s), true
	}
	return "", false
}

func (d Direction) hasNorth() bool { return d == North || d == NorthEast || d == NorthWest }
func (d Direction) hasSouth() bool { return d == South || d == SouthEast || d == SouthWest }
func (d Direction) hasEast() bool  { return d == East || d == NorthEast || d == SouthEast }
func (d Direction) hasWest() bool  { return d == West || d == NorthWest || d == SouthWest }

// ResizeRect applies a pointer delta to a start rectangle for the given grab
// direction. Edges not named by the direction stay fixed. Northern and
// western grabs move the origin together with the dimension so the opposite
// edge stays put; when a dimension hits its minimum, the moving edge pins at
// far-edge minus minimum so the window does not jump once the pointer
// overshoots.
func ResizeRect(start Rect, dx, dy int, d Direction, minW, minH int) Rect {
	r := start

	if d.hasEast() {
		r.Width = start.Width + dx
		if r.Width < minW {
			r.Width = minW
		}
	}
	if d.hasWest() {
		r.X = start.X + dx
		r.Width = start.Width - dx
		if r.Width < minW {
			r.Width = minW
			r.X = start.Right() - minW
		}
	}
	if d.hasSouth() {
		r.Height = start.Height + dy
		if r.Height < minH {
			r.Height = minH
		}
	}
	if d.hasNorth() {
		r.Y = start.Y + dy
		r.Height = start.Height - dy
		if r.Height < minH {
			r.Height = minH
			r.Y = start.Bottom() - minH
		}
	}

	return r
}
