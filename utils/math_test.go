package utils

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestAngleConversions(t *testing.T) {
	test.That(t, DegToRad(180), test.ShouldAlmostEqual, math.Pi)
	test.That(t, RadToDeg(math.Pi/2), test.ShouldAlmostEqual, 90)
	test.That(t, RadToDeg(DegToRad(37.5)), test.ShouldAlmostEqual, 37.5)
}

func TestClamp(t *testing.T) {
	test.That(t, ClampFloat(2, -1, 1), test.ShouldEqual, 1.)
	test.That(t, ClampFloat(-2, -1, 1), test.ShouldEqual, -1.)
	test.That(t, ClampFloat(0.25, -1, 1), test.ShouldEqual, 0.25)
}

func TestAcosClamped(t *testing.T) {
	// values just outside the domain of acos from floating point drift
	test.That(t, AcosClamped(1+1e-12), test.ShouldEqual, 0.)
	test.That(t, AcosClamped(-1-1e-12), test.ShouldAlmostEqual, math.Pi)
	test.That(t, math.IsNaN(math.Acos(1+1e-12)), test.ShouldBeTrue)
}
