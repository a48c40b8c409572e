package main

import (
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/animsolvers/animnode"
	"go.viam.com/animsolvers/ik"
	"go.viam.com/animsolvers/skeleton"
	"go.viam.com/animsolvers/utils"
)

// parseVector parses "x,y,z".
func parseVector(s string) (r3.Vector, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return r3.Vector{}, errors.Errorf("expected x,y,z but got %q", s)
	}
	var coords [3]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return r3.Vector{}, errors.Wrapf(err, "bad coordinate in %q", s)
		}
		coords[i] = v
	}
	return r3.Vector{X: coords[0], Y: coords[1], Z: coords[2]}, nil
}

// parsePoints parses "x,y,z;x,y,z;...".
func parsePoints(s string) ([]r3.Vector, error) {
	var points []r3.Vector
	for _, part := range strings.Split(s, ";") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		pt, err := parseVector(part)
		if err != nil {
			return nil, err
		}
		points = append(points, pt)
	}
	if len(points) == 0 {
		return nil, errors.New("no points given")
	}
	return points, nil
}

// boneName accepts either a chain position or a bone name.
func boneName(s string) string {
	if idx, err := strconv.Atoi(s); err == nil {
		return skeleton.ChainBoneName(idx)
	}
	return s
}

// parseAngularLimit parses "bone:degrees".
func parseAngularLimit(s string) (animnode.ConstraintConfig, error) {
	bone, deg, ok := strings.Cut(s, ":")
	if !ok {
		return animnode.ConstraintConfig{}, errors.Errorf("expected bone:degrees but got %q", s)
	}
	maxAngle, err := strconv.ParseFloat(deg, 64)
	if err != nil {
		return animnode.ConstraintConfig{}, errors.Wrapf(err, "bad angle in %q", s)
	}
	return animnode.ConstraintConfig{
		Bone:       boneName(bone),
		Type:       ik.AngularLimitType,
		Attributes: utils.AttributeMap{"max_angle": maxAngle},
	}, nil
}

// parseHinge parses "bone:ax,ay,az:degrees".
func parseHinge(s string) (animnode.ConstraintConfig, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return animnode.ConstraintConfig{}, errors.Errorf("expected bone:ax,ay,az:degrees but got %q", s)
	}
	axis, err := parseVector(parts[1])
	if err != nil {
		return animnode.ConstraintConfig{}, err
	}
	maxAngle, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return animnode.ConstraintConfig{}, errors.Wrapf(err, "bad angle in %q", s)
	}
	return animnode.ConstraintConfig{
		Bone: boneName(parts[0]),
		Type: ik.PlanarRotationType,
		Attributes: utils.AttributeMap{
			"rotation_axis": map[string]interface{}{"x": axis.X, "y": axis.Y, "z": axis.Z},
			"max_angle":     maxAngle,
		},
	}, nil
}
