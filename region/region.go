// Package region models the named rectangles a camera can be confined to and
// the ordered set that decides which one owns a point
package region

import (
	"github.com/lixenwraith/regionconfiner/vmath"
)

// Region is a named axis-aligned rectangle
// Identity is the area; two regions with the same area are equal regardless of name
type Region struct {
	Name string
	Area vmath.Rect
}

// New creates a region with a normalized area
func New(name string, area vmath.Rect) *Region {
	return &Region{
		Name: name,
		Area: vmath.RectMinMax(area.MinX, area.MinY, area.MaxX, area.MaxY),
	}
}

// Contains tests the XY components of p against the area, edges included
func (r *Region) Contains(p vmath.Vec3F) bool {
	return r.Area.Contains(p.X, p.Y)
}

// ContainsRect reports whether both corners of o lie in the area
func (r *Region) ContainsRect(o vmath.Rect) bool {
	return r.Area.ContainsRect(o)
}

// ClosestPoint clamps X and Y into the area; Z passes through
// A degenerate area collapses the result onto its single line or point
func (r *Region) ClosestPoint(p vmath.Vec3F) vmath.Vec3F {
	return r.Area.Clamp(p)
}

// Distance is the planar-plus-depth distance from p to its closest point
func (r *Region) Distance(p vmath.Vec3F) float64 {
	return vmath.V3FDist(p, r.ClosestPoint(p))
}

// Equal compares areas only; nil regions are equal to each other
func (r *Region) Equal(o *Region) bool {
	if r == nil || o == nil {
		return r == o
	}
	return r.Area == o.Area
}

func (r *Region) String() string {
	if r == nil {
		return "<none>"
	}
	return r.Name
}

// Edges

func (r *Region) Left() float64   { return r.Area.MinX }
func (r *Region) Right() float64  { return r.Area.MaxX }
func (r *Region) Bottom() float64 { return r.Area.MinY }
func (r *Region) Top() float64    { return r.Area.MaxY }
func (r *Region) Width() float64  { return r.Area.Width() }
func (r *Region) Height() float64 { return r.Area.Height() }

// Anchors, Y up

func (r *Region) Center() vmath.Vec3F      { return r.Area.Center() }
func (r *Region) BottomLeft() vmath.Vec3F  { return vmath.V3F(r.Area.MinX, r.Area.MinY, 0) }
func (r *Region) BottomRight() vmath.Vec3F { return vmath.V3F(r.Area.MaxX, r.Area.MinY, 0) }
func (r *Region) TopLeft() vmath.Vec3F     { return vmath.V3F(r.Area.MinX, r.Area.MaxY, 0) }
func (r *Region) TopRight() vmath.Vec3F    { return vmath.V3F(r.Area.MaxX, r.Area.MaxY, 0) }
