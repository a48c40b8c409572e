package animnode

import (
	"encoding/json"
	"testing"

	"go.uber.org/multierr"
	"go.viam.com/test"

	"go.viam.com/animsolvers/ik"
	"go.viam.com/animsolvers/utils"
)

func TestConfigValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		cfg := &Config{
			FromBone: "upperarm",
			ToBone:   "hand",
			Constraints: []ConstraintConfig{
				{Bone: "lowerarm", Type: ik.AngularLimitType, Attributes: utils.AttributeMap{"max_angle": 30}},
			},
		}
		test.That(t, cfg.Validate("ik"), test.ShouldBeNil)
	})

	t.Run("every problem is reported", func(t *testing.T) {
		cfg := &Config{
			Tolerance:     -1,
			MaxIterations: -2,
			Constraints: []ConstraintConfig{
				{Bone: "lowerarm", Type: "ball_socket"},
				{Type: ik.NoOpType},
				{Bone: "lowerarm", Type: ik.NoOpType},
			},
		}
		err := cfg.Validate("ik")
		test.That(t, err, test.ShouldNotBeNil)
		errs := multierr.Errors(err)
		test.That(t, len(errs), test.ShouldEqual, 7)
		test.That(t, errs[0].Error(), test.ShouldEqual, `error validating "ik": "from_bone" is required`)
		test.That(t, errs[1].Error(), test.ShouldEqual, `error validating "ik": "to_bone" is required`)
		test.That(t, errs[2].Error(), test.ShouldContainSubstring, `"ik.tolerance"`)
		test.That(t, errs[3].Error(), test.ShouldContainSubstring, `"ik.max_iterations"`)
		test.That(t, errs[4].Error(), test.ShouldContainSubstring, `unknown constraint type "ball_socket"`)
		test.That(t, errs[4].Error(), test.ShouldContainSubstring, `"ik.constraints.0"`)
		test.That(t, errs[5].Error(), test.ShouldEqual, `error validating "ik.constraints.1": "bone" is required`)
		test.That(t, errs[6].Error(), test.ShouldContainSubstring, `bone "lowerarm" already has a constraint`)
	})

	t.Run("log level", func(t *testing.T) {
		cfg := &Config{FromBone: "a", ToBone: "b", LogLevel: "warn"}
		test.That(t, cfg.Validate("ik"), test.ShouldBeNil)

		cfg.LogLevel = "loud"
		err := cfg.Validate("ik")
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, `"ik.log_level"`)
		test.That(t, err.Error(), test.ShouldContainSubstring, "loud")
	})

	t.Run("bad constraint attributes", func(t *testing.T) {
		cfg := &Config{
			FromBone: "a",
			ToBone:   "b",
			Constraints: []ConstraintConfig{
				{Bone: "a", Type: ik.PlanarRotationType, Attributes: utils.AttributeMap{"max_angle": 10}},
			},
		}
		err := cfg.Validate("ik")
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "rotation_axis")
	})
}

func TestNewConfigFromAttributes(t *testing.T) {
	cfg, err := NewConfigFromAttributes(utils.AttributeMap{
		"target":         map[string]interface{}{"x": 1, "y": 2, "z": 3},
		"from_bone":      "upperarm",
		"to_bone":        "hand",
		"tolerance":      0.5,
		"max_iterations": 10,
		"draw_debug":     true,
		"log_level":      "info",
		"constraints": []interface{}{
			map[string]interface{}{
				"bone":       "lowerarm",
				"type":       "angular_limit",
				"attributes": map[string]interface{}{"max_angle": 45},
			},
		},
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.Target, test.ShouldResemble, Vector{1, 2, 3})
	test.That(t, cfg.FromBone, test.ShouldEqual, "upperarm")
	test.That(t, cfg.ToBone, test.ShouldEqual, "hand")
	test.That(t, cfg.Tolerance, test.ShouldEqual, 0.5)
	test.That(t, cfg.MaxIterations, test.ShouldEqual, 10)
	test.That(t, cfg.DrawDebug, test.ShouldBeTrue)
	test.That(t, cfg.LogLevel, test.ShouldEqual, "info")
	test.That(t, len(cfg.Constraints), test.ShouldEqual, 1)
	test.That(t, cfg.Constraints[0].Bone, test.ShouldEqual, "lowerarm")
	test.That(t, cfg.Constraints[0].Attributes["max_angle"], test.ShouldEqual, 45)
	test.That(t, cfg.Validate("ik"), test.ShouldBeNil)

	_, err = NewConfigFromAttributes(utils.AttributeMap{"from_bone": "a", "too_bone": "b"})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "too_bone")
}

func TestConfigJSON(t *testing.T) {
	var cfg Config
	data := `{"target": {"x": 0, "y": 1, "z": 0}, "from_bone": "bone0", "to_bone": "bone2", "constraints": [{"bone": "bone1", "type": "noop"}]}`
	test.That(t, json.Unmarshal([]byte(data), &cfg), test.ShouldBeNil)
	test.That(t, cfg.Target.R3().Y, test.ShouldEqual, 1.0)
	test.That(t, cfg.Constraints[0].Type, test.ShouldEqual, ik.NoOpType)
	test.That(t, cfg.Validate("ik"), test.ShouldBeNil)
}

func TestConfigSchema(t *testing.T) {
	schema := ConfigSchema()
	test.That(t, schema, test.ShouldNotBeNil)
	out, err := json.Marshal(schema)
	test.That(t, err, test.ShouldBeNil)
	for _, field := range []string{"target", "from_bone", "to_bone", "tolerance", "max_iterations", "constraints", "draw_debug", "log_level"} {
		test.That(t, string(out), test.ShouldContainSubstring, `"`+field+`"`)
	}
}
