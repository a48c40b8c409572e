package skeleton

import (
	"fmt"
	"sync"

	"github.com/golang/geo/r3"
	"github.com/jedib0t/go-pretty/v6/table"
	"go.uber.org/multierr"

	"go.viam.com/animsolvers/spatialmath"
	"go.viam.com/animsolvers/utils"
)

// Bone describes one bone of a Model: its name, the name of its parent ("" for the root) and its component-space pose.
type Bone struct {
	Name   string
	Parent string
	Pose   spatialmath.Pose
}

// Model is an in-memory Skeleton. Bones are stored in definition order, so a parent always has a lower index than its
// children.
type Model struct {
	mu      sync.RWMutex
	names   []string
	parents []BoneIndex
	poses   []spatialmath.Pose
	indices map[string]BoneIndex
}

// NewModel builds a Model from bones listed parent-first. All problems with the bone list are reported together.
func NewModel(bones []Bone) (*Model, error) {
	m := &Model{
		names:   make([]string, 0, len(bones)),
		parents: make([]BoneIndex, 0, len(bones)),
		poses:   make([]spatialmath.Pose, 0, len(bones)),
		indices: make(map[string]BoneIndex, len(bones)),
	}
	var errs error
	for _, bone := range bones {
		if bone.Name == "" {
			errs = multierr.Append(errs, utils.NewConfigValidationFieldRequiredError("bones", "name"))
			continue
		}
		if _, ok := m.indices[bone.Name]; ok {
			errs = multierr.Append(errs, NewDuplicateBoneError(bone.Name))
			continue
		}
		parent := NoBone
		if bone.Parent != "" {
			idx, ok := m.indices[bone.Parent]
			if !ok {
				errs = multierr.Append(errs, NewParentBoneMissingError(bone.Name, bone.Parent))
				continue
			}
			parent = idx
		}
		pose := bone.Pose
		if pose == nil {
			pose = spatialmath.NewZeroPose()
		}
		m.indices[bone.Name] = BoneIndex(len(m.names))
		m.names = append(m.names, bone.Name)
		m.parents = append(m.parents, parent)
		m.poses = append(m.poses, pose)
	}
	if errs != nil {
		return nil, errs
	}
	return m, nil
}

// NewChainModel builds a single unbranched chain with one bone at each point, named bone0 through boneN with bone0 as the
// root. Every bone starts with identity orientation.
func NewChainModel(points []r3.Vector) (*Model, error) {
	bones := make([]Bone, 0, len(points))
	for i, pt := range points {
		bone := Bone{Name: ChainBoneName(i), Pose: spatialmath.NewPoseFromPoint(pt)}
		if i > 0 {
			bone.Parent = ChainBoneName(i - 1)
		}
		bones = append(bones, bone)
	}
	return NewModel(bones)
}

// ChainBoneName is the name NewChainModel gives the bone at position i.
func ChainBoneName(i int) string {
	return fmt.Sprintf("bone%d", i)
}

// NumBones returns the number of bones in the model.
func (m *Model) NumBones() int {
	return len(m.names)
}

// BoneIndex resolves a bone name to its index.
func (m *Model) BoneIndex(name string) (BoneIndex, error) {
	idx, ok := m.indices[name]
	if !ok {
		return NoBone, NewBoneNotFoundError(name)
	}
	return idx, nil
}

// BoneName returns the name of the bone at the given index.
func (m *Model) BoneName(bone BoneIndex) string {
	if !m.valid(bone) {
		return ""
	}
	return m.names[bone]
}

// ParentBoneIndex returns the parent of bone, or NoBone for the root and for indices outside the model.
func (m *Model) ParentBoneIndex(bone BoneIndex) BoneIndex {
	if !m.valid(bone) {
		return NoBone
	}
	return m.parents[bone]
}

// ComponentSpacePose returns the current pose of bone. Indices outside the model return a zero pose.
func (m *Model) ComponentSpacePose(bone BoneIndex) spatialmath.Pose {
	if !m.valid(bone) {
		return spatialmath.NewZeroPose()
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.poses[bone]
}

// SetComponentSpacePose replaces the pose of bone.
func (m *Model) SetComponentSpacePose(bone BoneIndex, pose spatialmath.Pose) error {
	if !m.valid(bone) {
		return NewBoneIndexOutOfRangeError(bone, m.NumBones())
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.poses[bone] = pose
	return nil
}

func (m *Model) valid(bone BoneIndex) bool {
	return bone >= 0 && int(bone) < len(m.names)
}

// String prints out a table of each bone in the model, with columns of name, parent, translation and orientation.
func (m *Model) String() string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Name", "Parent", "Translation", "Orientation"})
	for i, name := range m.names {
		parent := ""
		if m.parents[i] != NoBone {
			parent = m.names[m.parents[i]]
		}
		pose := m.ComponentSpacePose(BoneIndex(i))
		t.AppendRow([]interface{}{
			fmt.Sprintf("%d", i),
			name,
			parent,
			FormatPoint(pose.Point()),
			FormatOrientation(pose.Orientation()),
		})
	}
	return t.Render()
}

// FormatPoint renders a translation for table output.
func FormatPoint(pt r3.Vector) string {
	return fmt.Sprintf("X:%.3f, Y:%.3f, Z:%.3f", pt.X, pt.Y, pt.Z)
}

// FormatOrientation renders an orientation as an axis and an angle in degrees for table output.
func FormatOrientation(o spatialmath.Orientation) string {
	aa := o.AxisAngles()
	axis := aa.Axis()
	return fmt.Sprintf("Theta:%.2f, RX:%.2f, RY:%.2f, RZ:%.2f", utils.RadToDeg(aa.Theta), axis.X, axis.Y, axis.Z)
}
