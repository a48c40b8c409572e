// Package ik implements FABRIK (Forward And Backward Reaching Inverse Kinematics) for chains of rigid bones, along with the
// per-joint constraints that limit how far each bone may swing during a solve.
package ik

import (
	"github.com/golang/geo/r3"

	"go.viam.com/animsolvers/spatialmath"
)

// BoneData is one entry of a chain being solved. Chains are ordered root first and effector last.
type BoneData struct {
	// Pose is the component-space pose of the bone before solving.
	Pose spatialmath.Pose

	// Length is the distance from the previous bone's pose to this one. It is zero for the root and does not change
	// during a solve.
	Length float64

	// Constraint limits where the solver may place this bone. Nil means the bone is unconstrained.
	Constraint Constraint
}

// Poses returns the pose of each bone in the chain.
func Poses(chain []BoneData) []spatialmath.Pose {
	out := make([]spatialmath.Pose, 0, len(chain))
	for _, bone := range chain {
		out = append(out, bone.Pose)
	}
	return out
}

// SegmentLengths returns the distance between each consecutive pair of poses, root first. The first entry is always zero.
func SegmentLengths(poses []spatialmath.Pose) []float64 {
	lengths := make([]float64, len(poses))
	for i := 1; i < len(poses); i++ {
		lengths[i] = poses[i].Point().Distance(poses[i-1].Point())
	}
	return lengths
}

// segmentDirection returns the unit direction from poses[i-1] to poses[i], or fallback if the two coincide.
func segmentDirection(poses []spatialmath.Pose, i int, fallback r3.Vector) r3.Vector {
	return spatialmath.SafeNormalize(poses[i].Point().Sub(poses[i-1].Point()), fallback)
}

// originalDirection returns the pre-solve direction of segment i, or the zero vector if it has none.
func originalDirection(chain []BoneData, i int) r3.Vector {
	if i <= 0 || i >= len(chain) {
		return r3.Vector{}
	}
	return spatialmath.SafeNormalize(chain[i].Pose.Point().Sub(chain[i-1].Pose.Point()), r3.Vector{})
}
