package confiner

import (
	"github.com/lixenwraith/regionconfiner/parameter"
	"github.com/lixenwraith/regionconfiner/region"
	"github.com/lixenwraith/regionconfiner/vmath"
)

// ConfinePoint returns the planar correction moving p into r
// Zero when p is already inside or r is nil
func ConfinePoint(p vmath.Vec3F, r *region.Region) vmath.Vec3F {
	if r == nil || r.Contains(p) {
		return vmath.Zero3F
	}
	closest := r.ClosestPoint(p)
	closest.Z = p.Z
	return vmath.V3FSub(closest, p)
}

// ScreenEdgeConfiner pushes the four frame corners, not just the focal point, into a region
// Iterations and Oscillated describe the most recent Confine call
type ScreenEdgeConfiner struct {
	Iterations int
	Oscillated bool
}

// Confine returns the displacement that brings the camera frame inside r
//
// Each pass samples the corners in fixed order (-x-y, +x+y, +x-y, -x+y) and takes the
// first non-zero correction, moving the sampled camera by it. A correction that undoes
// the previous one means the region is smaller than the frame; half of it is applied to
// center the frame and the solver stops. Z of the result is always 0
func (c *ScreenEdgeConfiner) Confine(pos vmath.Vec3F, orientation vmath.Quat, lens Lens, r *region.Region) vmath.Vec3F {
	c.Iterations = 0
	c.Oscillated = false
	if r == nil {
		return vmath.Zero3F
	}

	dx, dy := lens.HalfExtents()
	vx := vmath.V3FScale(vmath.QuatRight(orientation), dx)
	vy := vmath.V3FScale(vmath.QuatUp(orientation), dy)

	displacement := vmath.Zero3F
	camPos := pos
	lastD := vmath.Zero3F

	for i := 0; i < parameter.ConfineMaxIterations; i++ {
		c.Iterations++

		d := ConfinePoint(vmath.V3FSub(vmath.V3FSub(camPos, vy), vx), r)
		if vmath.V3FAlmostZero(d) {
			d = ConfinePoint(vmath.V3FAdd(vmath.V3FAdd(camPos, vy), vx), r)
		}
		if vmath.V3FAlmostZero(d) {
			d = ConfinePoint(vmath.V3FAdd(vmath.V3FSub(camPos, vy), vx), r)
		}
		if vmath.V3FAlmostZero(d) {
			d = ConfinePoint(vmath.V3FSub(vmath.V3FAdd(camPos, vy), vx), r)
		}
		if vmath.V3FAlmostZero(d) {
			break
		}

		if vmath.V3FAlmostZero(vmath.V3FAdd(d, lastD)) {
			displacement = vmath.V3FAdd(displacement, vmath.V3FScale(d, parameter.ConfineOscillationScale))
			c.Oscillated = true
			break
		}

		displacement = vmath.V3FAdd(displacement, d)
		camPos = vmath.V3FAdd(camPos, d)
		lastD = d
	}

	return vmath.V3FFlat(displacement)
}
