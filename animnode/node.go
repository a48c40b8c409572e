package animnode

import (
	"sync"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/animsolvers/ik"
	"go.viam.com/animsolvers/logging"
	"go.viam.com/animsolvers/skeleton"
	"go.viam.com/animsolvers/spatialmath"
)

var errNotInitialized = errors.New("ik node has not been initialized with a skeleton")

// BoneTransform is a corrected component-space pose for one bone of the skeleton.
type BoneTransform struct {
	Index skeleton.BoneIndex
	Pose  spatialmath.Pose
}

// Evaluation is the outcome of one tick of a Node.
type Evaluation struct {
	// Transforms holds one entry per bone of the chain, root first.
	Transforms []BoneTransform
	Iterations int
	Converged  bool
	// Distance is the final effector-to-target distance.
	Distance float64
}

// A Node bends the chain between two bones of a skeleton toward a target each time it is evaluated.
type Node struct {
	logger    logging.Logger
	solver    *ik.Solver
	drawDebug bool
	cfg       Config

	mu          sync.RWMutex
	target      r3.Vector
	from, to    skeleton.BoneIndex
	constraints map[skeleton.BoneIndex]ik.Constraint
	initialized bool
}

// NewNode validates cfg and returns a node for it. Initialize must be called before the node is evaluated.
func NewNode(cfg *Config, logger logging.Logger) (*Node, error) {
	if err := cfg.Validate("ik"); err != nil {
		return nil, err
	}
	solverLogger := logger.Sublogger("fabrik")
	if cfg.LogLevel != "" {
		level, err := logging.LevelFromString(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		solverLogger.SetLevel(level)
	}
	return &Node{
		logger:    logger,
		solver:    ik.NewSolver(solverLogger, cfg.Tolerance, cfg.MaxIterations),
		drawDebug: cfg.DrawDebug,
		cfg:       *cfg,
		target:    cfg.Target.R3(),
		from:      skeleton.NoBone,
		to:        skeleton.NoBone,
	}, nil
}

// Initialize resolves the configured bone names against skel and builds the constraint for each constrained bone. It
// may be called again when the host skeleton changes.
func (n *Node) Initialize(skel skeleton.Skeleton) error {
	var errs error
	from, err := skel.BoneIndex(n.cfg.FromBone)
	errs = multierr.Append(errs, err)
	to, err := skel.BoneIndex(n.cfg.ToBone)
	errs = multierr.Append(errs, err)

	constraints := make(map[skeleton.BoneIndex]ik.Constraint, len(n.cfg.Constraints))
	for _, conf := range n.cfg.Constraints {
		bone, err := skel.BoneIndex(conf.Bone)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		c, err := conf.Build()
		if err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "constraint on bone %q", conf.Bone))
			continue
		}
		constraints[bone] = c
	}
	if errs != nil {
		return errs
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	n.from, n.to = from, to
	n.constraints = constraints
	n.initialized = true
	n.logger.Debugw("ik node initialized",
		"from_bone", n.cfg.FromBone,
		"to_bone", n.cfg.ToBone,
		"constraints", len(constraints),
	)
	return nil
}

// SetTarget moves the point the chain reaches for. It takes effect on the next evaluation.
func (n *Node) SetTarget(target r3.Vector) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.target = target
}

// Target returns the point the chain reaches for.
func (n *Node) Target() r3.Vector {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.target
}

// Evaluate solves the chain for the current pose of skel and returns its corrected transforms, root first. If the
// configured bones do not form a chain in skel it returns an error wrapping ik.ErrInvalidChain and no transforms; the
// host should leave the pose untouched for this tick.
func (n *Node) Evaluate(skel skeleton.Skeleton) ([]BoneTransform, error) {
	eval, err := n.Solve(skel)
	if err != nil {
		return nil, err
	}
	return eval.Transforms, nil
}

// Solve is like Evaluate but also reports how the solver did.
func (n *Node) Solve(skel skeleton.Skeleton) (*Evaluation, error) {
	n.mu.RLock()
	initialized, from, to, target, constraints := n.initialized, n.from, n.to, n.target, n.constraints
	n.mu.RUnlock()
	if !initialized {
		return nil, errNotInitialized
	}

	indices, err := ik.FillBoneIndices(skel, from, to)
	if err != nil {
		n.logger.Warnw("skipping ik evaluation", "from_bone", n.cfg.FromBone, "to_bone", n.cfg.ToBone, "error", err)
		return nil, err
	}
	chain := ik.BuildBoneData(skel, indices, constraints)
	res := n.solver.Solve(chain, target)
	poses := ik.ReconstructRotations(chain, res.Poses)

	if n.drawDebug {
		n.drawChain(skel, indices, chain, poses, target)
	}

	eval := &Evaluation{
		Transforms: make([]BoneTransform, len(indices)),
		Iterations: res.Iterations,
		Converged:  res.Converged,
	}
	for i, bone := range indices {
		eval.Transforms[i] = BoneTransform{Index: bone, Pose: poses[i]}
	}
	if len(poses) > 0 {
		eval.Distance = target.Distance(poses[len(poses)-1].Point())
	}
	return eval, nil
}

// drawChain logs each segment of the chain before and after solving.
func (n *Node) drawChain(
	skel skeleton.Skeleton,
	indices []skeleton.BoneIndex,
	chain []ik.BoneData,
	solved []spatialmath.Pose,
	target r3.Vector,
) {
	n.logger.Debugw("ik target", "target", target)
	lengths := ik.SegmentLengths(solved)
	for i := 1; i < len(indices); i++ {
		n.logger.Debugw("ik segment",
			"bone", skel.BoneName(indices[i]),
			"parent", skel.BoneName(indices[i-1]),
			"before", []r3.Vector{chain[i-1].Pose.Point(), chain[i].Pose.Point()},
			"after", []r3.Vector{solved[i-1].Point(), solved[i].Point()},
			"length", lengths[i],
		)
	}
}
