package ik

import (
	"go.viam.com/animsolvers/skeleton"
)

// FillBoneIndices returns the bones on the path from `from` down to `to`, ordered root first. It walks parent links up
// from `to` and fails with ErrInvalidChain if the skeletal root is reached without passing through `from`.
func FillBoneIndices(skel skeleton.Skeleton, from, to skeleton.BoneIndex) ([]skeleton.BoneIndex, error) {
	numBones := skel.NumBones()
	if from < 0 || int(from) >= numBones || to < 0 || int(to) >= numBones {
		return nil, newInvalidChainError(from, to)
	}

	// walk up from the effector, then reverse; a path longer than numBones means the parent links loop
	indices := []skeleton.BoneIndex{to}
	for bone := to; bone != from; {
		if skeleton.IsRoot(skel, bone) || len(indices) >= numBones {
			return nil, newInvalidChainError(from, to)
		}
		bone = skel.ParentBoneIndex(bone)
		indices = append(indices, bone)
	}
	for i, j := 0, len(indices)-1; i < j; i, j = i+1, j-1 {
		indices[i], indices[j] = indices[j], indices[i]
	}
	return indices, nil
}

// BuildBoneData reads the current pose of every bone in indices from skel and pairs it with its segment length and its
// entry in constraints, if any.
func BuildBoneData(
	skel skeleton.Skeleton,
	indices []skeleton.BoneIndex,
	constraints map[skeleton.BoneIndex]Constraint,
) []BoneData {
	chain := make([]BoneData, len(indices))
	for i, bone := range indices {
		chain[i].Pose = skel.ComponentSpacePose(bone)
		if i > 0 {
			chain[i].Length = chain[i].Pose.Point().Distance(chain[i-1].Pose.Point())
		}
		if c, ok := constraints[bone]; ok {
			chain[i].Constraint = c
		}
	}
	return chain
}
