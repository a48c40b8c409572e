package ik

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/animsolvers/spatialmath"
	"go.viam.com/animsolvers/utils"
)

// Constraint corrects the position the solver chose for one bone of a chain.
//
// Apply is called with the index of a bone whose segment, from current[index-1] to current[index], was just changed, the
// chain as it was before solving, and the poses the solver is currently working on. It returns the pose current[index]
// should be replaced with, at the bone's original distance from current[index-1]. Implementations must not
// modify either slice. The root bone (index 0) has no parent segment, so constraints return it unchanged.
type Constraint interface {
	Apply(index int, original []BoneData, current []spatialmath.Pose) spatialmath.Pose
}

// NoOp is a Constraint that never changes anything.
type NoOp struct{}

// Apply returns current[index] unchanged.
func (NoOp) Apply(index int, original []BoneData, current []spatialmath.Pose) spatialmath.Pose {
	return current[index]
}

// AngularLimit keeps the direction of a bone's segment within a cone around its pre-solve direction.
type AngularLimit struct {
	// MaxAngle is the half-angle of the cone in degrees.
	MaxAngle float64 `json:"max_angle"`
}

// Validate ensures all parts of the limit are valid.
func (c *AngularLimit) Validate(path string) error {
	if c.MaxAngle < 0 || math.IsNaN(c.MaxAngle) {
		return utils.NewConfigValidationError(path, errors.Errorf("max_angle must be non-negative, got %v", c.MaxAngle))
	}
	return nil
}

// Apply swings a segment that deviates more than MaxAngle from its pre-solve direction back onto the edge of the cone,
// keeping the segment's original length.
func (c *AngularLimit) Apply(index int, original []BoneData, current []spatialmath.Pose) spatialmath.Pose {
	if index <= 0 {
		return current[index]
	}
	pre := originalDirection(original, index)
	if spatialmath.IsDegenerate(pre) {
		return current[index]
	}
	post := segmentDirection(current, index, pre)

	maxAngle := utils.DegToRad(c.MaxAngle)
	if spatialmath.AngleBetween(pre, post) <= maxAngle {
		return current[index]
	}
	axis := pre.Cross(post)
	if spatialmath.IsDegenerate(axis) {
		axis = spatialmath.PerpendicularVector(pre)
	}
	dir := spatialmath.RotateAboutAxis(pre, axis.Normalize(), maxAngle)
	return spatialmath.PoseWithPoint(current[index], current[index-1].Point().Add(dir.Mul(original[index].Length)))
}

// PlanarRotation keeps a bone's segment in the plane perpendicular to RotationAxis, like a hinge, and limits how far it
// may turn away from BaseDirection within that plane.
type PlanarRotation struct {
	// RotationAxis is the hinge axis.
	RotationAxis r3.Vector `json:"rotation_axis"`

	// BaseDirection is the zero-angle direction of the hinge. It is projected into the hinge plane. When it is zero the
	// segment's pre-solve direction is used.
	BaseDirection r3.Vector `json:"base_direction,omitempty"`

	// MaxAngle bounds the signed hinge angle, in degrees, in both directions.
	MaxAngle float64 `json:"max_angle"`
}

// Validate ensures all parts of the hinge are valid.
func (c *PlanarRotation) Validate(path string) error {
	if spatialmath.IsDegenerate(c.RotationAxis) {
		return utils.NewConfigValidationFieldRequiredError(path, "rotation_axis")
	}
	if c.MaxAngle < 0 || math.IsNaN(c.MaxAngle) {
		return utils.NewConfigValidationError(path, errors.Errorf("max_angle must be non-negative, got %v", c.MaxAngle))
	}
	return nil
}

// Apply projects the segment into the hinge plane, clamps its angle from the base direction to MaxAngle, and places the
// bone at its original distance from its parent along the result.
func (c *PlanarRotation) Apply(index int, original []BoneData, current []spatialmath.Pose) spatialmath.Pose {
	if index <= 0 || spatialmath.IsDegenerate(c.RotationAxis) {
		return current[index]
	}
	axis := c.RotationAxis.Normalize()

	base := c.BaseDirection
	if spatialmath.IsDegenerate(base) {
		base = originalDirection(original, index)
	}
	base = spatialmath.ProjectOntoPlane(base, axis)
	if spatialmath.IsDegenerate(base) {
		// no in-plane reference to measure from
		return current[index]
	}
	base = base.Normalize()

	post := spatialmath.ProjectOntoPlane(current[index].Point().Sub(current[index-1].Point()), axis)
	post = spatialmath.SafeNormalize(post, base)

	maxAngle := utils.DegToRad(c.MaxAngle)
	angle := utils.ClampFloat(spatialmath.SignedAngle(base, post, axis), -maxAngle, maxAngle)
	dir := spatialmath.RotateAboutAxis(base, axis, angle)
	return spatialmath.PoseWithPoint(current[index], current[index-1].Point().Add(dir.Mul(original[index].Length)))
}
