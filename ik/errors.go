package ik

import (
	"github.com/pkg/errors"

	"go.viam.com/animsolvers/skeleton"
)

// ErrInvalidChain is returned when the requested start bone is not an ancestor of the requested end bone.
var ErrInvalidChain = errors.New("start bone is not an ancestor of end bone")

func newInvalidChainError(from, to skeleton.BoneIndex) error {
	return errors.Wrapf(ErrInvalidChain, "from bone %d to bone %d", from, to)
}

// NewUnknownConstraintTypeError is used when a constraint type has not been registered.
func NewUnknownConstraintTypeError(name string, registered []string) error {
	return errors.Errorf("unknown constraint type %q, registered types are %q", name, registered)
}

// NewConstraintAlreadyRegisteredError is used when two constraint types are registered under the same name.
func NewConstraintAlreadyRegisteredError(name string) error {
	return errors.Errorf("constraint type %q is already registered", name)
}
