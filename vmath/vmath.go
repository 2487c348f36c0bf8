// Package vmath holds the float geometry used by the confiner: vectors,
// rotations, axis-aligned rectangles and a frame-rate independent damper
package vmath

import "math"

// Epsilon is the length below which a correction counts as zero
const Epsilon = 1e-4

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// DegToRad converts degrees to radians
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// logNegligibleResidual is ln(0.01): after dampTime seconds only 1% of the input remains
const logNegligibleResidual = -4.605170185988091

// Damp returns the portion of initial to apply this frame so that the residual
// decays to 1% over dampTime seconds, independent of frame rate
func Damp(initial, dampTime, deltaTime float64) float64 {
	if dampTime < Epsilon || math.Abs(initial) < Epsilon {
		return initial
	}
	if deltaTime < Epsilon {
		return 0
	}
	k := -logNegligibleResidual / dampTime
	return initial * (1 - math.Exp(-k*deltaTime))
}

// V3FDamp applies Damp per component
func V3FDamp(initial Vec3F, dampTime, deltaTime float64) Vec3F {
	return Vec3F{
		X: Damp(initial.X, dampTime, deltaTime),
		Y: Damp(initial.Y, dampTime, deltaTime),
		Z: Damp(initial.Z, dampTime, deltaTime),
	}
}
