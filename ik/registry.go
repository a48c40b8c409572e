package ik

import (
	"sort"
	"sync"

	"github.com/pkg/errors"

	"go.viam.com/animsolvers/utils"
)

// Registered constraint type names.
const (
	NoOpType           = "noop"
	AngularLimitType   = "angular_limit"
	PlanarRotationType = "planar_rotation"
)

// A ConstraintConstructor builds a Constraint from its configuration attributes.
type ConstraintConstructor func(attributes utils.AttributeMap) (Constraint, error)

var (
	registryMu   sync.RWMutex
	constructors = map[string]ConstraintConstructor{}
)

func init() {
	RegisterConstraint(NoOpType, func(utils.AttributeMap) (Constraint, error) {
		return NoOp{}, nil
	})
	RegisterConstraint(AngularLimitType, func(attributes utils.AttributeMap) (Constraint, error) {
		c, err := utils.TransformAttributeMap[*AngularLimit](attributes)
		if err != nil {
			return nil, err
		}
		if err := c.Validate(AngularLimitType); err != nil {
			return nil, err
		}
		return c, nil
	})
	RegisterConstraint(PlanarRotationType, func(attributes utils.AttributeMap) (Constraint, error) {
		c, err := utils.TransformAttributeMap[*PlanarRotation](attributes)
		if err != nil {
			return nil, err
		}
		if err := c.Validate(PlanarRotationType); err != nil {
			return nil, err
		}
		return c, nil
	})
}

// RegisterConstraint registers a constraint type under name. It panics if the name is already taken, since that can only
// happen through a programming error during package initialization.
func RegisterConstraint(name string, constructor ConstraintConstructor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, ok := constructors[name]; ok {
		panic(NewConstraintAlreadyRegisteredError(name))
	}
	constructors[name] = constructor
}

// DeregisterConstraint removes a previously registered constraint type. It is mostly useful in tests.
func DeregisterConstraint(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(constructors, name)
}

// RegisteredConstraints returns the names of all registered constraint types, sorted.
func RegisteredConstraints() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewConstraint builds a constraint of the named type from its attributes.
func NewConstraint(name string, attributes utils.AttributeMap) (Constraint, error) {
	registryMu.RLock()
	constructor, ok := constructors[name]
	registryMu.RUnlock()
	if !ok {
		return nil, NewUnknownConstraintTypeError(name, RegisteredConstraints())
	}
	c, err := constructor(attributes)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot build %q constraint", name)
	}
	return c, nil
}
