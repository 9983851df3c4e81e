// Package fractal contains the CPU-side distance estimate for the power-n bulb
// surface. The shader ray-marches the same family; this copy only needs to be
// close enough to scale interaction by proximity to visible detail.
package fractal

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// MaxIterations bounds the escape-time loop.
	MaxIterations = 15

	// EscapeRadius is the radius past which the orbit is considered escaped.
	EscapeRadius = 4.0

	// MinDistance is the floor SafeDistance applies to degenerate estimates.
	// It matches the smallest zoom the camera allows.
	MinDistance = 1e-5
)

// Estimate returns the analytic-derivative distance bound from point to the
// bulb surface of the given exponent centred at lookAt.
//
// The local point is re-added on every iteration, which translates the formula
// to the look-at target. The result is negative or non-finite when the orbit
// never escapes or starts at the centre; pass it through SafeDistance before
// using it as a step size.
//
// Parameters:
//   - point: world-space query point
//   - lookAt: the surface centre (the camera's look-at target)
//   - exponent: the bulb exponent (typically 2 to 16)
//
// Returns:
//   - float64: the raw distance estimate
func Estimate(point, lookAt mgl64.Vec3, exponent float64) float64 {
	local := point.Sub(lookAt)
	z := local
	dr := 1.0
	r := 0.0

	for range MaxIterations {
		r = z.Len()
		if r > EscapeRadius {
			break
		}

		theta := math.Acos(max(-1, min(1, z.Y()/r)))
		phi := math.Atan2(z.X(), z.Z())
		dr = math.Pow(r, exponent-1)*exponent*dr + 1

		zr := math.Pow(r, exponent)
		theta *= exponent
		phi *= exponent

		sinTheta := math.Sin(theta)
		z = mgl64.Vec3{
			zr * sinTheta * math.Sin(phi),
			zr * math.Cos(theta),
			zr * sinTheta * math.Cos(phi),
		}.Add(local)
	}

	return 0.5 * math.Log(r) * r / dr
}

// SafeDistance clamps a raw estimate to a finite value no smaller than MinDistance.
//
// Parameters:
//   - d: a raw estimate, possibly NaN, infinite or negative
//
// Returns:
//   - float64: d, or MinDistance when d is unusable
func SafeDistance(d float64) float64 {
	if math.IsNaN(d) || math.IsInf(d, 0) || d < MinDistance {
		return MinDistance
	}
	return d
}
