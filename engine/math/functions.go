package math

import (
	m "math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	/** @brief Default tolerance used when comparing floating point results. */
	K_FLOAT_TOLERANCE float32 = 1e-5
	/** @brief Above this cosine two rotations are close enough to lerp instead of slerp. */
	K_SLERP_DOT_THRESHOLD float32 = 0.9995
)

func NewVec3Zero() mgl32.Vec3 {
	return mgl32.Vec3{0, 0, 0}
}

func NewVec3One() mgl32.Vec3 {
	return mgl32.Vec3{1, 1, 1}
}

// MulComponents multiplies two vectors element by element.
func MulComponents(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

// LerpVec3 mixes a and b as a*(1-t) + b*t, which returns a and b exactly
// at t=0 and t=1.
func LerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Mul(1 - t).Add(b.Mul(t))
}

// NewQuatFromAxisAngle builds a rotation of angle radians around axis.
// The axis is normalized first.
func NewQuatFromAxisAngle(axis mgl32.Vec3, angle float32) mgl32.Quat {
	if axis.Len() == 0 {
		return mgl32.QuatIdent()
	}
	return mgl32.QuatRotate(angle, axis.Normalize())
}

/**
 * @brief Calculates spherical linear interpolation of a given percentage
 * between two quaternions, following the shorter arc. The endpoints are
 * returned unchanged for percentages at or beyond 0 and 1.
 */
func Slerp(q0, q1 mgl32.Quat, percentage float32) mgl32.Quat {
	if percentage <= 0 {
		return q0
	}
	if percentage >= 1 {
		return q1
	}

	// Only unit quaternions are valid rotations.
	v0 := q0.Normalize()
	v1 := q1.Normalize()

	dot := v0.Dot(v1)

	// v1 and -v1 are the same rotation; flip to take the short way round.
	if dot < 0.0 {
		v1 = v1.Scale(-1)
		dot = -dot
	}

	if dot > K_SLERP_DOT_THRESHOLD {
		qt := v0.Add(v1.Sub(v0).Scale(percentage))
		return qt.Normalize()
	}

	theta0 := float32(m.Acos(float64(dot)))
	theta := theta0 * percentage
	sinTheta := float32(m.Sin(float64(theta)))
	sinTheta0 := float32(m.Sin(float64(theta0)))

	s0 := float32(m.Cos(float64(theta))) - dot*sinTheta/sinTheta0
	s1 := sinTheta / sinTheta0

	return v0.Scale(s0).Add(v1.Scale(s1))
}

// QuatEqual reports whether two quaternions describe the same rotation
// within tolerance, treating q and -q as equal.
func QuatEqual(a, b mgl32.Quat, tolerance float32) bool {
	return a.ApproxEqualThreshold(b, tolerance) || a.ApproxEqualThreshold(b.Scale(-1), tolerance)
}

func DegToRad(degrees float32) float32 {
	return mgl32.DegToRad(degrees)
}

func RadToDeg(radians float32) float32 {
	return mgl32.RadToDeg(radians)
}
