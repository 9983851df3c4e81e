package common

import (
	"cmp"

	"github.com/go-gl/mathgl/mgl64"
)

// Clamp restricts v to the closed interval [lo, hi].
//
// Parameters:
//   - v: the value to clamp
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - T: v limited to [lo, hi]
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return max(lo, min(hi, v))
}

// Damp moves current toward target by a fixed fraction of the remaining delta.
// Repeated calls decay the error geometrically by (1 - factor) per call.
//
// Parameters:
//   - current: the value being relaxed
//   - target: the value to relax toward
//   - factor: fraction of the remaining delta to cover, in [0, 1]
//
// Returns:
//   - float64: the relaxed value
func Damp(current, target, factor float64) float64 {
	return current + (target-current)*factor
}

// DampVec3 applies Damp component-wise, which is a linear interpolation
// of factor toward target.
//
// Parameters:
//   - current: the vector being relaxed
//   - target: the vector to relax toward
//   - factor: fraction of the remaining delta to cover, in [0, 1]
//
// Returns:
//   - mgl64.Vec3: the relaxed vector
func DampVec3(current, target mgl64.Vec3, factor float64) mgl64.Vec3 {
	return current.Add(target.Sub(current).Mul(factor))
}
