package ik

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/animsolvers/utils"
)

func TestNewConstraint(t *testing.T) {
	test.That(t, RegisteredConstraints(), test.ShouldResemble, []string{AngularLimitType, NoOpType, PlanarRotationType})

	t.Run("noop", func(t *testing.T) {
		c, err := NewConstraint(NoOpType, nil)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, c, test.ShouldResemble, NoOp{})
	})

	t.Run("angular limit", func(t *testing.T) {
		c, err := NewConstraint(AngularLimitType, utils.AttributeMap{"max_angle": 15})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, c, test.ShouldResemble, &AngularLimit{MaxAngle: 15})

		_, err = NewConstraint(AngularLimitType, utils.AttributeMap{"max_angle": -15})
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "non-negative")

		_, err = NewConstraint(AngularLimitType, utils.AttributeMap{"max_angel": 15})
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "max_angel")
	})

	t.Run("planar rotation", func(t *testing.T) {
		c, err := NewConstraint(PlanarRotationType, utils.AttributeMap{
			"rotation_axis":  map[string]interface{}{"x": 0, "y": 0, "z": 1},
			"base_direction": map[string]interface{}{"x": 1},
			"max_angle":      45.0,
		})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, c, test.ShouldResemble, &PlanarRotation{
			RotationAxis:  r3.Vector{Z: 1},
			BaseDirection: r3.Vector{X: 1},
			MaxAngle:      45,
		})

		_, err = NewConstraint(PlanarRotationType, utils.AttributeMap{"max_angle": 45.0})
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "rotation_axis")
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := NewConstraint("ball_socket", nil)
		test.That(t, err, test.ShouldBeError, NewUnknownConstraintTypeError("ball_socket", RegisteredConstraints()))
	})
}

func TestRegisterConstraint(t *testing.T) {
	const name = "locked"
	RegisterConstraint(name, func(utils.AttributeMap) (Constraint, error) {
		return &AngularLimit{}, nil
	})
	defer DeregisterConstraint(name)

	c, err := NewConstraint(name, nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, c, test.ShouldResemble, &AngularLimit{})

	test.That(t, func() {
		RegisterConstraint(name, func(utils.AttributeMap) (Constraint, error) { return NoOp{}, nil })
	}, test.ShouldPanic)
}
