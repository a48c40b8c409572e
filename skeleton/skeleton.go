// Package skeleton defines the view of a host skeletal pose that the IK chain builder consumes:
// parent links between bones, component-space poses, and bone name lookup.
package skeleton

import (
	"go.viam.com/animsolvers/spatialmath"
)

// BoneIndex indexes a bone within a Skeleton.
type BoneIndex int

// NoBone is the parent index of the skeletal root.
const NoBone BoneIndex = -1

// IsRoot reports whether the bone has no parent in skel.
func IsRoot(skel Skeleton, bone BoneIndex) bool {
	return skel.ParentBoneIndex(bone) == NoBone
}

// Skeleton is supplied by the host animation system for every evaluation.
type Skeleton interface {
	// NumBones returns the number of bones in the skeleton.
	NumBones() int

	// BoneIndex resolves a bone name to its index.
	BoneIndex(name string) (BoneIndex, error)

	// BoneName returns the name of the bone at the given index, or "" if it is out of range.
	BoneName(bone BoneIndex) string

	// ParentBoneIndex returns the parent of bone, or NoBone for the skeletal root.
	ParentBoneIndex(bone BoneIndex) BoneIndex

	// ComponentSpacePose returns the pose of bone in the shared component space.
	ComponentSpacePose(bone BoneIndex) spatialmath.Pose
}
