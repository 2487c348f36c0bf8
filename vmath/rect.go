package vmath

// Rect is an axis-aligned rectangle in the XY plane
// Min <= Max on both axes; zero width or height is allowed
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// RectMinMax builds a rect from two corners in any order
func RectMinMax(x0, y0, x1, y1 float64) Rect {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return Rect{MinX: x0, MinY: y0, MaxX: x1, MaxY: y1}
}

// RectMinSize builds a rect from its bottom-left corner and size
// Negative sizes extend toward negative axes
func RectMinSize(x, y, w, h float64) Rect {
	return RectMinMax(x, y, x+w, y+h)
}

// RectCenterSize builds a rect centered on (cx, cy)
func RectCenterSize(cx, cy, w, h float64) Rect {
	return RectMinSize(cx-w/2, cy-h/2, w, h)
}

func (r Rect) Width() float64  { return r.MaxX - r.MinX }
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Center returns the midpoint at z=0
func (r Rect) Center() Vec3F {
	return Vec3F{X: (r.MinX + r.MaxX) / 2, Y: (r.MinY + r.MaxY) / 2}
}

// Contains tests x,y against the closed rectangle, edges included
func (r Rect) Contains(x, y float64) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// ContainsRect reports whether o lies entirely within r
func (r Rect) ContainsRect(o Rect) bool {
	return r.Contains(o.MinX, o.MinY) && r.Contains(o.MaxX, o.MaxY)
}

// Clamp moves p onto the closest point of r, leaving Z untouched
func (r Rect) Clamp(p Vec3F) Vec3F {
	return Vec3F{
		X: Clamp(p.X, r.MinX, r.MaxX),
		Y: Clamp(p.Y, r.MinY, r.MaxY),
		Z: p.Z,
	}
}

// Degenerate reports a zero-area rectangle
func (r Rect) Degenerate() bool {
	return r.MinX == r.MaxX || r.MinY == r.MaxY
}
