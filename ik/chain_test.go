package ik

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.viam.com/animsolvers/skeleton"
	"go.viam.com/animsolvers/spatialmath"
)

func makeTestSkeleton(t *testing.T) *skeleton.Model {
	t.Helper()
	point := func(x, y, z float64) spatialmath.Pose {
		return spatialmath.NewPoseFromPoint(r3.Vector{X: x, Y: y, Z: z})
	}
	m, err := skeleton.NewModel([]skeleton.Bone{
		{Name: "pelvis", Pose: point(0, 0, 100)},
		{Name: "spine", Parent: "pelvis", Pose: point(0, 0, 120)},
		{Name: "neck", Parent: "spine", Pose: point(0, 0, 150)},
		{Name: "head", Parent: "neck", Pose: point(0, 0, 160)},
		{Name: "thigh", Parent: "pelvis", Pose: point(10, 0, 100)},
		{Name: "shin", Parent: "thigh", Pose: point(10, 0, 55)},
	})
	test.That(t, err, test.ShouldBeNil)
	return m
}

// loopSkeleton has parent links that never reach a root.
type loopSkeleton struct{ *skeleton.Model }

func (l loopSkeleton) ParentBoneIndex(bone skeleton.BoneIndex) skeleton.BoneIndex {
	return (bone + 1) % 3
}

func TestFillBoneIndices(t *testing.T) {
	skel := makeTestSkeleton(t)

	for _, tc := range []struct {
		name     string
		from, to skeleton.BoneIndex
		expected []skeleton.BoneIndex
	}{
		{"spine to head", 1, 3, []skeleton.BoneIndex{1, 2, 3}},
		{"root to foot", 0, 5, []skeleton.BoneIndex{0, 4, 5}},
		{"single bone", 3, 3, []skeleton.BoneIndex{3}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			indices, err := FillBoneIndices(skel, tc.from, tc.to)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, indices, test.ShouldResemble, tc.expected)
		})
	}

	for _, tc := range []struct {
		name     string
		from, to skeleton.BoneIndex
	}{
		{"different branch", 4, 3},
		{"reversed", 3, 1},
		{"out of range", 0, 9},
		{"no bone", skeleton.NoBone, 2},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FillBoneIndices(skel, tc.from, tc.to)
			test.That(t, errors.Is(err, ErrInvalidChain), test.ShouldBeTrue)
		})
	}

	t.Run("parent loop", func(t *testing.T) {
		_, err := FillBoneIndices(loopSkeleton{skel}, 4, 2)
		test.That(t, errors.Is(err, ErrInvalidChain), test.ShouldBeTrue)
	})
}

func TestBuildBoneData(t *testing.T) {
	skel := makeTestSkeleton(t)
	limit := &AngularLimit{MaxAngle: 20}

	chain := BuildBoneData(skel, []skeleton.BoneIndex{0, 1, 2, 3}, map[skeleton.BoneIndex]Constraint{2: limit, 5: NoOp{}})
	test.That(t, len(chain), test.ShouldEqual, 4)
	for i, expected := range []float64{0, 20, 30, 10} {
		test.That(t, chain[i].Length, test.ShouldAlmostEqual, expected)
		test.That(t, chain[i].Pose, test.ShouldEqual, skel.ComponentSpacePose(skeleton.BoneIndex(i)))
	}
	test.That(t, chain[0].Constraint, test.ShouldBeNil)
	test.That(t, chain[2].Constraint, test.ShouldEqual, limit)
	test.That(t, chain[3].Constraint, test.ShouldBeNil)

	test.That(t, BuildBoneData(skel, nil, nil), test.ShouldBeEmpty)
}
