// Package main is a command line front end to the FABRIK solver. It bends a straight chain of bones given on the command
// line toward a target and prints the solved pose of each bone.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/animsolvers/animnode"
	"go.viam.com/animsolvers/ik"
	"go.viam.com/animsolvers/logging"
	"go.viam.com/animsolvers/skeleton"
	"go.viam.com/animsolvers/utils"
)

const (
	// Flags.
	flagPoints        = "points"
	flagTarget        = "target"
	flagTolerance     = "tolerance"
	flagMaxIterations = "max-iterations"
	flagAngularLimit  = "angular-limit"
	flagHinge         = "hinge"
	flagConfig        = "config"
	flagLogFile       = "log-file"
	flagDebug         = "debug"
)

func newApp() *cli.App {
	return &cli.App{
		Name:            "fabrik",
		Usage:           "solve inverse kinematics for a chain of bones",
		HideHelpCommand: true,
		Commands: []*cli.Command{
			{
				Name:      "solve",
				Usage:     "bend a chain toward a target and print the result",
				UsageText: "fabrik solve --points \"0,0,0;1,0,0;2,0,0\" --target \"1,1,0\"",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     flagPoints,
						Usage:    "bone positions, root first, as `x,y,z;x,y,z;...`",
						Required: true,
					},
					&cli.StringFlag{
						Name:  flagTarget,
						Usage: "effector target as `x,y,z`; required unless a config sets it",
					},
					&cli.StringFlag{
						Name:    flagConfig,
						Aliases: []string{"c"},
						Usage:   "load the ik node configuration from `FILE`; other flags override it",
					},
					&cli.Float64Flag{
						Name:  flagTolerance,
						Usage: "distance from the target that counts as reached",
						Value: ik.DefaultTolerance,
					},
					&cli.IntFlag{
						Name:  flagMaxIterations,
						Usage: "maximum solver iterations",
						Value: ik.DefaultMaxIterations,
					},
					&cli.StringSliceFlag{
						Name:  flagAngularLimit,
						Usage: "cone limit on a bone as `bone:degrees`; bone is a chain position or name",
					},
					&cli.StringSliceFlag{
						Name:  flagHinge,
						Usage: "hinge limit on a bone as `bone:ax,ay,az:degrees`",
					},
					&cli.StringFlag{
						Name:  flagLogFile,
						Usage: "also write logs to `FILE`",
					},
					&cli.BoolFlag{
						Name:    flagDebug,
						Aliases: []string{"vvv"},
						Usage:   "enable debug logging",
					},
				},
				Action: solveAction,
			},
			{
				Name:   "schema",
				Usage:  "print the JSON schema of the ik node configuration",
				Action: schemaAction,
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// solveConfig builds the node configuration and chain model described by the solve flags.
func solveConfig(c *cli.Context) (*animnode.Config, *skeleton.Model, error) {
	points, err := parsePoints(c.String(flagPoints))
	if err != nil {
		return nil, nil, err
	}
	model, err := skeleton.NewChainModel(points)
	if err != nil {
		return nil, nil, err
	}

	cfg := &animnode.Config{
		FromBone: skeleton.ChainBoneName(0),
		ToBone:   skeleton.ChainBoneName(len(points) - 1),
	}
	if c.IsSet(flagConfig) {
		if cfg, err = animnode.ReadConfig(c.String(flagConfig)); err != nil {
			return nil, nil, err
		}
	} else if !c.IsSet(flagTarget) {
		return nil, nil, errors.Errorf("--%s is required without --%s", flagTarget, flagConfig)
	}

	if c.IsSet(flagTarget) {
		target, err := parseVector(c.String(flagTarget))
		if err != nil {
			return nil, nil, err
		}
		cfg.Target = animnode.NewVector(target)
	}
	if c.IsSet(flagTolerance) || !c.IsSet(flagConfig) {
		cfg.Tolerance = c.Float64(flagTolerance)
	}
	if c.IsSet(flagMaxIterations) || !c.IsSet(flagConfig) {
		cfg.MaxIterations = c.Int(flagMaxIterations)
	}
	if c.Bool(flagDebug) {
		cfg.DrawDebug = true
	}
	for _, s := range c.StringSlice(flagAngularLimit) {
		conf, err := parseAngularLimit(s)
		if err != nil {
			return nil, nil, err
		}
		cfg.Constraints = append(cfg.Constraints, conf)
	}
	for _, s := range c.StringSlice(flagHinge) {
		conf, err := parseHinge(s)
		if err != nil {
			return nil, nil, err
		}
		cfg.Constraints = append(cfg.Constraints, conf)
	}
	return cfg, model, nil
}

func solveAction(c *cli.Context) error {
	cfg, model, err := solveConfig(c)
	if err != nil {
		return err
	}

	logger := logging.NewLogger("fabrik")
	if cfg.DrawDebug {
		logger = logging.NewDebugLogger("fabrik")
	}
	logging.ReplaceGlobal(logger)
	if c.IsSet(flagLogFile) {
		file := logging.NewFileAppender(c.String(flagLogFile), 10, 3)
		logger.AddAppender(file)
		defer func() {
			utils.UncheckedError(logger.Sync())
			utils.UncheckedError(file.Close())
		}()
	}
	node, err := animnode.NewNode(cfg, logger)
	if err != nil {
		return err
	}
	if err := node.Initialize(model); err != nil {
		return err
	}
	eval, err := node.Solve(model)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, renderEvaluation(model, eval))
	return nil
}

// renderEvaluation prints out a table of the solved pose of each bone in the chain.
func renderEvaluation(skel skeleton.Skeleton, eval *animnode.Evaluation) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Bone", "Translation", "Orientation"})
	for i, tf := range eval.Transforms {
		t.AppendRow([]interface{}{
			fmt.Sprintf("%d", i),
			skel.BoneName(tf.Index),
			skeleton.FormatPoint(tf.Pose.Point()),
			skeleton.FormatOrientation(tf.Pose.Orientation()),
		})
	}
	t.AppendFooter(table.Row{
		"",
		fmt.Sprintf("iterations: %d", eval.Iterations),
		fmt.Sprintf("distance: %.4f", eval.Distance),
		fmt.Sprintf("converged: %t", eval.Converged),
	})
	return t.Render()
}

func schemaAction(c *cli.Context) error {
	out, err := json.MarshalIndent(animnode.ConfigSchema(), "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, string(out))
	return nil
}
