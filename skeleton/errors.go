package skeleton

import "github.com/pkg/errors"

// NewBoneNotFoundError is used when a bone name does not exist in a skeleton.
func NewBoneNotFoundError(name string) error {
	return errors.Errorf("bone with name %q not in skeleton", name)
}

// NewDuplicateBoneError is used when two bones share a name.
func NewDuplicateBoneError(name string) error {
	return errors.Errorf("cannot have more than one bone with name %q", name)
}

// NewParentBoneMissingError is used when a bone lists a parent that has not been defined before it.
func NewParentBoneMissingError(bone, parent string) error {
	return errors.Errorf("parent bone %q of bone %q must be defined before it", parent, bone)
}

// NewBoneIndexOutOfRangeError is used when a bone index does not address a bone in the skeleton.
func NewBoneIndexOutOfRangeError(bone BoneIndex, numBones int) error {
	return errors.Errorf("bone index %d out of range for skeleton with %d bones", bone, numBones)
}
