// Package utils contains small numeric helpers shared by the solver packages.
package utils

import (
	"math"
)

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// ClampFloat returns v clamped to [lower, upper].
func ClampFloat(v, lower, upper float64) float64 {
	return math.Min(math.Max(v, lower), upper)
}

// AcosClamped is math.Acos with its input clamped to [-1, 1], so that dot products of unit vectors that drifted
// slightly out of range still produce an angle instead of NaN.
func AcosClamped(x float64) float64 {
	return math.Acos(ClampFloat(x, -1, 1))
}
