package spatialmath

import (
	"gonum.org/v1/gonum/num/quat"
)

// Orientation is an interface used to express the different parameterizations of the orientation
// of a bone in 3D Euclidean space.
type Orientation interface {
	AxisAngles() *R4AA
	Quaternion() quat.Number
}

// NewZeroOrientation returns an orientatation which signifies no rotation.
func NewZeroOrientation() Orientation {
	return &Quaternion{1, 0, 0, 0}
}

// OrientationAlmostEqual will return a bool describing whether 2 poses have approximately the same orientation.
func OrientationAlmostEqual(o1, o2 Orientation) bool {
	return QuaternionAlmostEqual(o1.Quaternion(), o2.Quaternion(), 1e-5)
}

// Compose returns the orientation obtained by applying o2 and then o1, i.e. the quaternion product o1*o2.
// The result is normalized to keep drift from accumulating across ticks.
func Compose(o1, o2 Orientation) Orientation {
	q := Quaternion(Normalize(quat.Mul(o1.Quaternion(), o2.Quaternion())))
	return &q
}
