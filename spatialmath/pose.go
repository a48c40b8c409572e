// Package spatialmath defines the points, orientations and poses the solver moves bones with.
package spatialmath

import (
	"fmt"

	"github.com/golang/geo/r3"
)

// Pose represents a rigid transform: a 3D point plus an orientation.
// Poses are immutable; operations that move a bone return a new Pose.
type Pose interface {
	Point() r3.Vector
	Orientation() Orientation
}

type distalPose struct {
	point       r3.Vector
	orientation *Quaternion
}

// NewPose takes in a point and an orientation and returns a Pose.
func NewPose(p r3.Vector, o Orientation) Pose {
	if o == nil {
		return NewPoseFromPoint(p)
	}
	q := Quaternion(Normalize(o.Quaternion()))
	return &distalPose{point: p, orientation: &q}
}

// NewPoseFromPoint takes in a point and returns a Pose with no rotation.
func NewPoseFromPoint(p r3.Vector) Pose {
	return &distalPose{point: p, orientation: &Quaternion{Real: 1}}
}

// NewZeroPose returns a pose at the origin with no rotation.
func NewZeroPose() Pose {
	return NewPoseFromPoint(r3.Vector{})
}

// Point returns the position of the pose.
func (p *distalPose) Point() r3.Vector {
	return p.point
}

// Orientation returns the orientation of the pose.
func (p *distalPose) Orientation() Orientation {
	return p.orientation
}

func (p *distalPose) String() string {
	q := p.orientation.Quaternion()
	return fmt.Sprintf("{X:%.4f Y:%.4f Z:%.4f} {W:%.4f X:%.4f Y:%.4f Z:%.4f}",
		p.point.X, p.point.Y, p.point.Z, q.Real, q.Imag, q.Jmag, q.Kmag)
}

// PoseWithPoint returns a copy of p moved to pt, keeping its orientation.
func PoseWithPoint(p Pose, pt r3.Vector) Pose {
	return NewPose(pt, p.Orientation())
}

// PoseWithOrientation returns a copy of p with its orientation replaced by o.
func PoseWithOrientation(p Pose, o Orientation) Pose {
	return NewPose(p.Point(), o)
}

// PoseAlmostEqual will return a bool describing whether 2 poses are approximately the same.
func PoseAlmostEqual(a, b Pose) bool {
	return PoseAlmostEqualEps(a, b, 1e-8)
}

// PoseAlmostEqualEps will return a bool describing whether 2 poses are approximately the same within the given epsilon.
func PoseAlmostEqualEps(a, b Pose, epsilon float64) bool {
	return R3VectorAlmostEqual(a.Point(), b.Point(), epsilon) && OrientationAlmostEqual(a.Orientation(), b.Orientation())
}

