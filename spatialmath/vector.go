package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"

	"go.viam.com/animsolvers/utils"
)

// degenerateNorm is the length below which a vector is treated as having no direction.
const degenerateNorm = 1e-9

// R3VectorAlmostEqual compares two r3.Vector objects and returns if the all elementwise differences are less than epsilon.
func R3VectorAlmostEqual(a, b r3.Vector, epsilon float64) bool {
	return math.Abs(a.X-b.X) < epsilon && math.Abs(a.Y-b.Y) < epsilon && math.Abs(a.Z-b.Z) < epsilon
}

// IsDegenerate reports whether v is too short to have a meaningful direction.
func IsDegenerate(v r3.Vector) bool {
	return v.Norm() < degenerateNorm
}

// SafeNormalize returns v scaled to unit length. If v has no usable direction, fallback is returned instead
// (normalized if it is itself non-degenerate), so callers never see NaN components.
func SafeNormalize(v, fallback r3.Vector) r3.Vector {
	if n := v.Norm(); n >= degenerateNorm {
		return v.Mul(1 / n)
	}
	if n := fallback.Norm(); n >= degenerateNorm {
		return fallback.Mul(1 / n)
	}
	return fallback
}

// AngleBetween returns the angle in radians between two directions. The dot product of the normalized vectors is clamped
// before taking the arc-cosine. Degenerate inputs yield zero.
func AngleBetween(a, b r3.Vector) float64 {
	if IsDegenerate(a) || IsDegenerate(b) {
		return 0
	}
	return utils.AcosClamped(a.Normalize().Dot(b.Normalize()))
}

// SignedAngle returns the angle in radians that rotates from onto to about axis, in (-pi, pi].
// Both vectors are expected to lie in the plane normal to axis.
func SignedAngle(from, to, axis r3.Vector) float64 {
	return math.Atan2(from.Cross(to).Dot(axis.Normalize()), from.Dot(to))
}

// PerpendicularVector returns some unit vector perpendicular to v.
func PerpendicularVector(v r3.Vector) r3.Vector {
	return v.Ortho()
}

// RotateAboutAxis rotates v by theta radians about axis using the right hand rule.
func RotateAboutAxis(v, axis r3.Vector, theta float64) r3.Vector {
	if IsDegenerate(axis) || theta == 0 {
		return v
	}
	return RotateVector(NewR4AAFromAxis(axis, theta), v)
}

// ProjectOntoPlane removes the component of v along normal, leaving its projection onto the plane normal to it.
func ProjectOntoPlane(v, normal r3.Vector) r3.Vector {
	if IsDegenerate(normal) {
		return v
	}
	n := normal.Normalize()
	return v.Sub(n.Mul(v.Dot(n)))
}

// RotationBetween returns the smallest rotation taking the direction from onto the direction to: the rotation about
// cross(from, to) by the angle between them. Parallel directions give no rotation; antiparallel directions rotate half a turn
// about an arbitrary perpendicular axis.
func RotationBetween(from, to r3.Vector) Orientation {
	if IsDegenerate(from) || IsDegenerate(to) {
		return NewZeroOrientation()
	}
	from, to = from.Normalize(), to.Normalize()
	angle := utils.AcosClamped(from.Dot(to))
	axis := from.Cross(to)
	if IsDegenerate(axis) {
		if angle < math.Pi/2 {
			return NewZeroOrientation()
		}
		axis = PerpendicularVector(from)
	}
	return NewR4AAFromAxis(axis, angle)
}
