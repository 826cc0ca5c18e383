package glide

// Rect is an axis-aligned rectangle in viewport coordinates.
// Coordinates are float64 because the follower interpolates fractionally;
// callers round to cells only when drawing.
type Rect struct {
	Top    float64
	Left   float64
	Width  float64
	Height float64
}

// Right returns the right edge (Left + Width).
func (r Rect) Right() float64 {
	return r.Left + r.Width
}

// Bottom returns the bottom edge (Top + Height).
func (r Rect) Bottom() float64 {
	return r.Top + r.Height
}

// CenterY returns the vertical center of the rectangle.
func (r Rect) CenterY() float64 {
	return r.Top + r.Height/2
}

// IsZero returns true for the zero rectangle.
func (r Rect) IsZero() bool {
	return r.Top == 0 && r.Left == 0 && r.Width == 0 && r.Height == 0
}

// Union returns the minimal rectangle covering both r and other.
// The result is the exact min/max envelope - no padding is added.
func (r Rect) Union(other Rect) Rect {
	top := min(r.Top, other.Top)
	left := min(r.Left, other.Left)
	right := max(r.Right(), other.Right())
	bottom := max(r.Bottom(), other.Bottom())
	return Rect{
		Top:    top,
		Left:   left,
		Width:  right - left,
		Height: bottom - top,
	}
}

// Intersects returns true if r and other overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.Left < other.Right() && other.Left < r.Right() &&
		r.Top < other.Bottom() && other.Top < r.Bottom()
}

// Contains returns true if the point (x, y) lies within r.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x < r.Right() && y >= r.Top && y < r.Bottom()
}

// Translate returns r shifted by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{Top: r.Top + dy, Left: r.Left + dx, Width: r.Width, Height: r.Height}
}

// abs returns the absolute value of f.
func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
