package confiner

import (
	"math"

	"github.com/lixenwraith/regionconfiner/vmath"
)

// Lens describes the camera frustum at the confinement plane
type Lens struct {
	Orthographic bool

	// OrthographicSize is half the visible height, orthographic only
	OrthographicSize float64

	// FieldOfView is the vertical angle in degrees, perspective only
	FieldOfView float64

	// Distance from camera to the confinement plane, perspective only
	// Zero collapses the frame onto the camera position
	Distance float64

	// Aspect is width over height; non-positive values are treated as 1
	Aspect float64
}

// OrthographicLens builds an orthographic lens
func OrthographicLens(size, aspect float64) Lens {
	return Lens{Orthographic: true, OrthographicSize: size, Aspect: aspect}
}

// PerspectiveLens builds a perspective lens seen from distance
func PerspectiveLens(fov, aspect, distance float64) Lens {
	return Lens{FieldOfView: fov, Aspect: aspect, Distance: distance}
}

// HalfExtents returns half the visible width and height
func (l Lens) HalfExtents() (dx, dy float64) {
	if l.Orthographic {
		dy = math.Abs(l.OrthographicSize)
	} else {
		fov := vmath.Clamp(l.FieldOfView, 0, 179)
		dy = math.Abs(l.Distance) * math.Tan(vmath.DegToRad(fov)/2)
	}
	aspect := l.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	return dy * aspect, dy
}

// FrameRect returns the axis-aligned bounds of the unrotated frame centered at pos
func (l Lens) FrameRect(pos vmath.Vec3F) vmath.Rect {
	dx, dy := l.HalfExtents()
	return vmath.RectMinMax(pos.X-dx, pos.Y-dy, pos.X+dx, pos.Y+dy)
}
