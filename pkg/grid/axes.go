package grid

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Axes identifies the coordinate space grid coordinates are defined with
// respect to.
type Axes int

const (
	// AxesGrid is oriented along grid axes with units corresponding to
	// voxel indices and origin at the grid point with zero indices.
	AxesGrid Axes = iota
	// AxesCube is the unit cube [-1, 1]^D centered at the grid center with
	// the extrema coinciding with the grid border (align corners false).
	AxesCube
	// AxesCubeCorners is the unit cube [-1, 1]^D centered at the grid
	// center with the extrema coinciding with the centers of the corner
	// grid points (align corners true).
	AxesCubeCorners
	// AxesWorld is oriented along world axes with units in physical
	// distances, e.g. millimeters.
	AxesWorld
)

// String returns the lowercase name of the coordinate space.
func (a Axes) String() string {
	switch a {
	case AxesGrid:
		return "grid"
	case AxesCube:
		return "cube"
	case AxesCubeCorners:
		return "cube_corners"
	case AxesWorld:
		return "world"
	}
	return fmt.Sprintf("Axes(%d)", int(a))
}

// AxesFromString parses a coordinate space name as produced by String.
func AxesFromString(s string) (Axes, error) {
	switch s {
	case "grid":
		return AxesGrid, nil
	case "cube":
		return AxesCube, nil
	case "cube_corners":
		return AxesCubeCorners, nil
	case "world":
		return AxesWorld, nil
	}
	return 0, fmt.Errorf("%w: unknown axes name %q", ErrInvalidArgument, s)
}

// AxesFromAlignCorners returns the normalized cube space matching a corner
// alignment policy.
func AxesFromAlignCorners(alignCorners bool) Axes {
	if alignCorners {
		return AxesCubeCorners
	}
	return AxesCube
}

// isCubeSpace reports whether a is one of the two normalized cube spaces.
func (a Axes) isCubeSpace() bool {
	return a == AxesCube || a == AxesCubeCorners
}

// MarshalYAML encodes the axes value as its string name.
func (a Axes) MarshalYAML() (interface{}, error) {
	return a.String(), nil
}

// UnmarshalYAML decodes an axes value from its string name.
func (a *Axes) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := AxesFromString(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
