package vmath

import "math"

// Quat is a unit quaternion describing camera orientation
type Quat struct {
	X, Y, Z, W float64
}

// QuatIdentity is the camera looking down +Z with +Y up
var QuatIdentity = Quat{W: 1}

// QuatAxisAngle builds a rotation of angle radians around axis
func QuatAxisAngle(axis Vec3F, angle float64) Quat {
	n := V3FNormalize(axis)
	if n == (Vec3F{}) {
		return QuatIdentity
	}
	s, c := math.Sincos(angle / 2)
	return Quat{X: n.X * s, Y: n.Y * s, Z: n.Z * s, W: c}
}

// QuatRoll rotates around the view axis (Z), the only rotation that matters for a 2D frame
func QuatRoll(angle float64) Quat {
	return QuatAxisAngle(Vec3F{Z: 1}, angle)
}

func QuatMul(a, b Quat) Quat {
	return Quat{
		X: a.W*b.X + a.X*b.W + a.Y*b.Z - a.Z*b.Y,
		Y: a.W*b.Y - a.X*b.Z + a.Y*b.W + a.Z*b.X,
		Z: a.W*b.Z + a.X*b.Y - a.Y*b.X + a.Z*b.W,
		W: a.W*b.W - a.X*b.X - a.Y*b.Y - a.Z*b.Z,
	}
}

// QuatConjugate is the inverse for unit quaternions
func QuatConjugate(q Quat) Quat {
	return Quat{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

// QuatNormalize returns q scaled to unit length; a zero quaternion becomes identity
func QuatNormalize(q Quat) Quat {
	mag := math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if mag == 0 {
		return QuatIdentity
	}
	inv := 1 / mag
	return Quat{q.X * inv, q.Y * inv, q.Z * inv, q.W * inv}
}

// QuatRotate applies q to v: v' = v + 2w(u×v) + 2u×(u×v)
func QuatRotate(q Quat, v Vec3F) Vec3F {
	u := Vec3F{q.X, q.Y, q.Z}
	t := V3FScale(V3FCross(u, v), 2)
	return V3FAdd(V3FAdd(v, V3FScale(t, q.W)), V3FCross(u, t))
}

// QuatRight returns the camera's local +X axis in world space
func QuatRight(q Quat) Vec3F {
	return QuatRotate(q, Vec3F{X: 1})
}

// QuatUp returns the camera's local +Y axis in world space
func QuatUp(q Quat) Vec3F {
	return QuatRotate(q, Vec3F{Y: 1})
}
