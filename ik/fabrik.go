package ik

import (
	"github.com/golang/geo/r3"

	"go.viam.com/animsolvers/logging"
	"go.viam.com/animsolvers/spatialmath"
)

const (
	// DefaultTolerance is the effector-to-target distance used when a non-positive tolerance is requested.
	DefaultTolerance = 1.0

	// DefaultMaxIterations is the iteration cap used when fewer than one iteration is requested.
	DefaultMaxIterations = 20
)

// Solver runs FABRIK on bone chains. A Solver holds no per-solve state and may be shared between goroutines.
type Solver struct {
	tolerance     float64
	maxIterations int
	logger        logging.Logger
}

// Result is the outcome of a single solve.
type Result struct {
	// Poses holds one pose per bone of the input chain, in the same order.
	Poses []spatialmath.Pose

	// Iterations is the number of forward and backward pass pairs that ran.
	Iterations int

	// Converged is true when the effector ended within tolerance of the target.
	Converged bool

	// Distances holds the effector-to-target distance after each iteration.
	Distances []float64
}

// NewSolver creates a FABRIK solver. A tolerance that is not positive is set to DefaultTolerance, and an iteration count
// less than 1 is set to DefaultMaxIterations.
func NewSolver(logger logging.Logger, tolerance float64, maxIterations int) *Solver {
	if !(tolerance > 0) {
		tolerance = DefaultTolerance
	}
	if maxIterations < 1 {
		// default value
		maxIterations = DefaultMaxIterations
	}
	return &Solver{tolerance: tolerance, maxIterations: maxIterations, logger: logger}
}

// Tolerance returns the effector-to-target distance the solver accepts.
func (s *Solver) Tolerance() float64 {
	return s.tolerance
}

// MaxIterations returns the iteration cap of the solver.
func (s *Solver) MaxIterations() int {
	return s.maxIterations
}

// Solve bends chain so that its last bone reaches target, keeping every segment at its original length. The root is
// held at its original position. The input chain is not modified. Running out of iterations is not an error: the best
// pose found is returned with Converged set to false.
func (s *Solver) Solve(chain []BoneData, target r3.Vector) *Result {
	poses := Poses(chain)
	res := &Result{Poses: poses}

	numBones := len(poses)
	if numBones == 0 {
		return res
	}
	effector := numBones - 1
	if dist := target.Distance(poses[effector].Point()); dist < s.tolerance {
		res.Converged = true
		return res
	}
	if numBones == 1 {
		return res
	}

	// pre-solve segment directions, used when a pass collapses a segment to a point
	dirs := make([]r3.Vector, numBones)
	for i := 1; i < numBones; i++ {
		dirs[i] = originalDirection(chain, i)
	}
	root := chain[0].Pose.Point()

	for iter := 0; iter < s.maxIterations; iter++ {
		// forward pass: pin the effector to the target and pull every bone toward it. A bone's segment is constrained
		// as soon as its parent moves, with the bone itself held still.
		poses[effector] = spatialmath.PoseWithPoint(poses[effector], target)
		for i := effector - 1; i >= 0; i-- {
			poses[i] = OffsetPoint(poses[i], poses[i+1], chain[i+1].Length, dirs[i+1].Mul(-1))
			if c := chain[i+1].Constraint; c != nil {
				poses[i] = constrainParent(c, i+1, chain, poses)
			}
		}

		// backward pass: pin the root back where it started and push every bone out from it
		poses[0] = spatialmath.PoseWithPoint(poses[0], root)
		for i := 1; i < numBones; i++ {
			poses[i] = OffsetPoint(poses[i], poses[i-1], chain[i].Length, dirs[i])
			if c := chain[i].Constraint; c != nil {
				poses[i] = c.Apply(i, chain, poses)
			}
		}

		dist := target.Distance(poses[effector].Point())
		res.Distances = append(res.Distances, dist)
		res.Iterations = iter + 1
		if dist < s.tolerance {
			res.Converged = true
			break
		}
	}
	if !res.Converged {
		s.logger.Debugw("fabrik did not converge",
			"iterations", res.Iterations,
			"distance", res.Distances[len(res.Distances)-1],
			"tolerance", s.tolerance,
		)
	}
	return res
}

// Solve runs FABRIK on chain with the given tolerance and iteration cap and returns one pose per bone.
func Solve(chain []BoneData, target r3.Vector, tolerance float64, maxIterations int) []spatialmath.Pose {
	return NewSolver(logging.NewBlankLogger("fabrik"), tolerance, maxIterations).Solve(chain, target).Poses
}

// constrainParent applies the constraint of bone child to the segment joining it to its parent, then moves the parent
// so the corrected segment ends at the child's current position. The segment keeps its direction and length.
func constrainParent(c Constraint, child int, chain []BoneData, poses []spatialmath.Pose) spatialmath.Pose {
	corrected := c.Apply(child, chain, poses).Point()
	parent := poses[child-1]
	return spatialmath.PoseWithPoint(parent, parent.Point().Add(poses[child].Point().Sub(corrected)))
}

// OffsetPoint places moving at exactly length from reference, along the direction from reference to moving. If the two
// coincide, fallback is used as the direction instead. The orientation of moving is kept.
func OffsetPoint(moving, reference spatialmath.Pose, length float64, fallback r3.Vector) spatialmath.Pose {
	dir := spatialmath.SafeNormalize(moving.Point().Sub(reference.Point()), fallback)
	return spatialmath.PoseWithPoint(moving, reference.Point().Add(dir.Mul(length)))
}
