package geometry

// Point is a position in viewport coordinates.
type Point struct {
	X int
	Y int
}

// Size is a width/height pair.
type Size struct {
	Width  int
	Height int
}

// Rect represents a window position and size.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Right returns the x coordinate one past the right edge.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the y coordinate one past the bottom edge.
func (r Rect) Bottom() int { return r.Y + r.Height }

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Viewport describes the host drawing surface. TaskbarHeight is a reserved
// band at the bottom that windows never occupy.
type Viewport struct {
	Width         int
	Height        int
	TaskbarHeight int
}

// Usable returns the region available to windows.
func (v Viewport) Usable() Rect {
	h := v.Height - v.TaskbarHeight
	if h < 0 {
		h = 0
	}
	return Rect{X: 0, Y: 0, Width: v.Width, Height: h}
}

// Empty reports whether the viewport has no usable area.
func (v Viewport) Empty() bool {
	u := v.Usable()
	return u.Width <= 0 || u.Height <= 0
}

const (
	// CascadeStep is the per-window diagonal offset applied to new windows.
	CascadeStep = 30
	// CascadeBase is the fixed fallback position used once the cascade
	// would push a window outside the usable viewport.
	CascadeBase = 50
)

// InitialPlacement computes the top-left corner for a new window of the given
// size. The window is centered, then shifted by CascadeStep for every window
// already open so that successive windows do not stack exactly. When the
// cascade would leave the usable viewport the position falls back to
// CascadeBase instead of growing without bound.
func InitialPlacement(size Size, openCount int, vp Viewport) Point {
	usable := vp.Usable()

	cx := (usable.Width - size.Width) / 2
	cy := (usable.Height - size.Height) / 2

	offset := CascadeStep * openCount
	p := Point{X: cx + offset, Y: cy + offset}

	if p.X < 0 || p.Y < 0 ||
		p.X+size.Width > usable.Width || p.Y+size.Height > usable.Height {
		p = Point{X: CascadeBase, Y: CascadeBase}
	}

	return ClampPosition(Rect{X: p.X, Y: p.Y, Width: size.Width, Height: size.Height}, vp)
}

// ClampPosition returns the top-left corner of r adjusted so the rectangle
// lies inside the usable viewport. Size is never modified; when the window is
// larger than the viewport the top-left corner pins to the origin so the
// overflow hangs off the far edges.
func ClampPosition(r Rect, vp Viewport) Point {
	usable := vp.Usable()

	x := r.X
	y := r.Y
	if x+r.Width > usable.Width {
		x = usable.Width - r.Width
	}
	if y+r.Height > usable.Height {
		y = usable.Height - r.Height
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return Point{X: x, Y: y}
}

// Clamp adjusts position only, keeping size, so that r lies inside the
// usable viewport wherever possible.
func Clamp(r Rect, vp Viewport) Rect {
	p := ClampPosition(r, vp)
	r.X = p.X
	r.Y = p.Y
	return r
}

// Fit shrinks r to the usable viewport when it is too large to be fully
// visible, never below the given minimums, and then clamps its position.
// Used on viewport-resize events; interactive clamping uses Clamp, which
// leaves size alone.
func Fit(r Rect, minW, minH int, vp Viewport) Rect {
	usable := vp.Usable()

	if r.Width > usable.Width {
		r.Width = usable.Width
		if r.Width < minW {
			r.Width = minW
		}
	}
	if r.Height > usable.Height {
		r.Height = usable.Height
		if r.Height < minH {
			r.Height = minH
		}
	}
	return Clamp(r, vp)
}
