// Package animnode implements the animation graph node that bends a bone chain toward a target with FABRIK once per
// evaluation tick.
package animnode

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/animsolvers/ik"
	"go.viam.com/animsolvers/logging"
	"go.viam.com/animsolvers/utils"
)

// Vector is the configuration form of a point in component space.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// R3 returns v as an r3.Vector.
func (v Vector) R3() r3.Vector {
	return r3.Vector{X: v.X, Y: v.Y, Z: v.Z}
}

// NewVector returns the configuration form of pt.
func NewVector(pt r3.Vector) Vector {
	return Vector{X: pt.X, Y: pt.Y, Z: pt.Z}
}

// A ConstraintConfig attaches a registered constraint type to a bone of the chain.
type ConstraintConfig struct {
	Bone       string             `json:"bone"`
	Type       string             `json:"type"`
	Attributes utils.AttributeMap `json:"attributes,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (config *ConstraintConfig) Validate(path string) error {
	var errs error
	if config.Bone == "" {
		errs = multierr.Append(errs, utils.NewConfigValidationFieldRequiredError(path, "bone"))
	}
	if config.Type == "" {
		return multierr.Append(errs, utils.NewConfigValidationFieldRequiredError(path, "type"))
	}
	if _, err := config.Build(); err != nil {
		errs = multierr.Append(errs, utils.NewConfigValidationError(path, err))
	}
	return errs
}

// Build constructs the configured constraint.
func (config *ConstraintConfig) Build() (ik.Constraint, error) {
	return ik.NewConstraint(config.Type, config.Attributes)
}

// A Config describes an IK node: which chain to bend, where to, and how hard to try.
type Config struct {
	// Target is the component-space point the end of the chain should reach.
	Target Vector `json:"target"`

	// FromBone is the first bone of the chain and stays fixed. It must be an ancestor of ToBone.
	FromBone string `json:"from_bone"`

	// ToBone is the effector.
	ToBone string `json:"to_bone"`

	// Tolerance is how close the effector must get to the target. Defaults to 1.
	Tolerance float64 `json:"tolerance,omitempty"`

	// MaxIterations caps the number of solver iterations per tick. Defaults to 20.
	MaxIterations int `json:"max_iterations,omitempty"`

	Constraints []ConstraintConfig `json:"constraints,omitempty"`

	// DrawDebug logs the chain before and after solving.
	DrawDebug bool `json:"draw_debug,omitempty"`

	// LogLevel sets the level of the solver's logger: debug, info, warn or error. It inherits the node logger's level
	// when empty.
	LogLevel string `json:"log_level,omitempty"`
}

// Validate ensures all parts of the config are valid. Every problem found is reported.
func (config *Config) Validate(path string) error {
	var errs error
	if config.FromBone == "" {
		errs = multierr.Append(errs, utils.NewConfigValidationFieldRequiredError(path, "from_bone"))
	}
	if config.ToBone == "" {
		errs = multierr.Append(errs, utils.NewConfigValidationFieldRequiredError(path, "to_bone"))
	}
	if config.Tolerance < 0 || math.IsNaN(config.Tolerance) {
		errs = multierr.Append(errs, utils.NewConfigValidationError(
			fmt.Sprintf("%s.%s", path, "tolerance"),
			errors.Errorf("must be positive, got %v", config.Tolerance),
		))
	}
	if config.MaxIterations < 0 {
		errs = multierr.Append(errs, utils.NewConfigValidationError(
			fmt.Sprintf("%s.%s", path, "max_iterations"),
			errors.Errorf("must be at least 1, got %d", config.MaxIterations),
		))
	}
	if config.LogLevel != "" {
		if _, err := logging.LevelFromString(config.LogLevel); err != nil {
			errs = multierr.Append(errs, utils.NewConfigValidationError(fmt.Sprintf("%s.%s", path, "log_level"), err))
		}
	}
	seen := map[string]bool{}
	for idx, conf := range config.Constraints {
		confPath := fmt.Sprintf("%s.%s.%d", path, "constraints", idx)
		if err := conf.Validate(confPath); err != nil {
			errs = multierr.Append(errs, err)
		}
		if conf.Bone != "" && seen[conf.Bone] {
			errs = multierr.Append(errs, utils.NewConfigValidationError(
				confPath,
				errors.Errorf("bone %q already has a constraint", conf.Bone),
			))
		}
		seen[conf.Bone] = true
	}
	return errs
}

// NewConfigFromAttributes decodes a node config from an attribute map.
func NewConfigFromAttributes(attributes utils.AttributeMap) (*Config, error) {
	return utils.TransformAttributeMap[*Config](attributes)
}

// ConfigSchema returns the JSON schema of Config.
func ConfigSchema() *jsonschema.Schema {
	return jsonschema.Reflect(&Config{})
}
