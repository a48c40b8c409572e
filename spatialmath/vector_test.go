package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestSafeNormalize(t *testing.T) {
	n := SafeNormalize(r3.Vector{X: 0, Y: 3, Z: 4}, r3.Vector{X: 1})
	test.That(t, R3VectorAlmostEqual(n, r3.Vector{Y: 0.6, Z: 0.8}, 1e-12), test.ShouldBeTrue)

	t.Run("degenerate uses fallback", func(t *testing.T) {
		test.That(t, SafeNormalize(r3.Vector{}, r3.Vector{Z: 2}), test.ShouldResemble, r3.Vector{Z: 1})
		test.That(t, SafeNormalize(r3.Vector{X: 1e-12}, r3.Vector{Y: 1}), test.ShouldResemble, r3.Vector{Y: 1})
	})

	t.Run("degenerate fallback is not NaN", func(t *testing.T) {
		v := SafeNormalize(r3.Vector{}, r3.Vector{})
		test.That(t, math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z), test.ShouldBeFalse)
		test.That(t, v, test.ShouldResemble, r3.Vector{})
	})
}

func TestAngleBetween(t *testing.T) {
	test.That(t, AngleBetween(r3.Vector{X: 1}, r3.Vector{Y: 2}), test.ShouldAlmostEqual, math.Pi/2)
	test.That(t, AngleBetween(r3.Vector{X: 1}, r3.Vector{X: 1, Y: 1}), test.ShouldAlmostEqual, math.Pi/4)
	test.That(t, AngleBetween(r3.Vector{X: 1}, r3.Vector{X: -5}), test.ShouldAlmostEqual, math.Pi)
	test.That(t, AngleBetween(r3.Vector{X: 1}, r3.Vector{X: 1}), test.ShouldEqual, 0.)
	test.That(t, AngleBetween(r3.Vector{}, r3.Vector{X: 1}), test.ShouldEqual, 0.)
}

func TestSignedAngle(t *testing.T) {
	z := r3.Vector{Z: 1}
	test.That(t, SignedAngle(r3.Vector{X: 1}, r3.Vector{Y: 1}, z), test.ShouldAlmostEqual, math.Pi/2)
	test.That(t, SignedAngle(r3.Vector{X: 1}, r3.Vector{Y: -1}, z), test.ShouldAlmostEqual, -math.Pi/2)
	test.That(t, SignedAngle(r3.Vector{X: 1}, r3.Vector{Y: 1}, z.Mul(-3)), test.ShouldAlmostEqual, -math.Pi/2)
}

func TestRotateAboutAxis(t *testing.T) {
	rotated := RotateAboutAxis(r3.Vector{X: 1}, r3.Vector{Z: 1}, math.Pi/2)
	test.That(t, R3VectorAlmostEqual(rotated, r3.Vector{Y: 1}, 1e-9), test.ShouldBeTrue)

	rotated = RotateAboutAxis(r3.Vector{X: 2}, r3.Vector{Z: 5}, math.Pi)
	test.That(t, R3VectorAlmostEqual(rotated, r3.Vector{X: -2}, 1e-9), test.ShouldBeTrue)

	test.That(t, RotateAboutAxis(r3.Vector{X: 1}, r3.Vector{}, 1), test.ShouldResemble, r3.Vector{X: 1})
}

func TestProjectOntoPlane(t *testing.T) {
	test.That(t, ProjectOntoPlane(r3.Vector{X: 1, Y: 2, Z: 3}, r3.Vector{Z: 4}), test.ShouldResemble, r3.Vector{X: 1, Y: 2})
	test.That(t, ProjectOntoPlane(r3.Vector{X: 1, Y: 2, Z: 3}, r3.Vector{}), test.ShouldResemble, r3.Vector{X: 1, Y: 2, Z: 3})
}

func TestPerpendicularVector(t *testing.T) {
	for _, v := range []r3.Vector{{X: 1}, {Y: -2}, {X: 1, Y: 1, Z: 1}, {Z: 0.5}} {
		p := PerpendicularVector(v)
		test.That(t, p.Dot(v), test.ShouldAlmostEqual, 0)
		test.That(t, p.Norm(), test.ShouldAlmostEqual, 1)
	}
}

func TestRotationBetween(t *testing.T) {
	t.Run("quarter turn", func(t *testing.T) {
		o := RotationBetween(r3.Vector{X: 1}, r3.Vector{Y: 3})
		test.That(t, o.AxisAngles().Theta, test.ShouldAlmostEqual, math.Pi/2)
		test.That(t, o.AxisAngles().RZ, test.ShouldAlmostEqual, 1)
		test.That(t, R3VectorAlmostEqual(RotateVector(o, r3.Vector{X: 1}), r3.Vector{Y: 1}, 1e-9), test.ShouldBeTrue)
	})

	t.Run("parallel", func(t *testing.T) {
		o := RotationBetween(r3.Vector{X: 1}, r3.Vector{X: 2})
		test.That(t, OrientationAlmostEqual(o, NewZeroOrientation()), test.ShouldBeTrue)
	})

	t.Run("antiparallel", func(t *testing.T) {
		o := RotationBetween(r3.Vector{X: 1}, r3.Vector{X: -1})
		test.That(t, math.Abs(o.AxisAngles().Theta), test.ShouldAlmostEqual, math.Pi)
		test.That(t, R3VectorAlmostEqual(RotateVector(o, r3.Vector{X: 1}), r3.Vector{X: -1}, 1e-9), test.ShouldBeTrue)
	})

	t.Run("degenerate", func(t *testing.T) {
		o := RotationBetween(r3.Vector{}, r3.Vector{X: 1})
		test.That(t, OrientationAlmostEqual(o, NewZeroOrientation()), test.ShouldBeTrue)
	})
}
