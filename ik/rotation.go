package ik

import (
	"go.viam.com/animsolvers/spatialmath"
)

// ReconstructRotations turns every joint except the effector by the smallest rotation that takes its original segment
// direction onto its solved one. solved must hold one pose per bone of original; the returned slice is new and the
// effector pose is copied through unchanged.
func ReconstructRotations(original []BoneData, solved []spatialmath.Pose) []spatialmath.Pose {
	out := make([]spatialmath.Pose, len(solved))
	copy(out, solved)
	for i := 0; i+1 < len(out) && i+1 < len(original); i++ {
		oldDir := original[i+1].Pose.Point().Sub(original[i].Pose.Point())
		newDir := solved[i+1].Point().Sub(solved[i].Point())
		delta := spatialmath.RotationBetween(oldDir, newDir)
		out[i] = spatialmath.PoseWithOrientation(solved[i], spatialmath.Compose(delta, solved[i].Orientation()))
	}
	return out
}
