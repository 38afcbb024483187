package grid

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Flatten packs the grid attributes into a single vector of length
// (D+3)*D: the unrounded size, followed by spacing, center and the
// direction cosines in row-major order.
func (g *Grid) Flatten() []float64 {
	d := g.Dim()
	out := make([]float64, 0, (d+3)*d)
	out = append(out, g.size...)
	out = append(out, g.spacing...)
	out = append(out, g.center...)
	out = append(out, g.FlatDirection()...)
	return out
}

// FromFlat reconstructs a grid from a vector produced by Flatten. Only
// two- and three-dimensional grids are supported, identified by vector
// lengths 10 and 18. When origin is true the third block is interpreted
// as the world position of the first grid point instead of the center.
func FromFlat(attrs []float64, origin bool, alignCorners bool) (*Grid, error) {
	var d int
	switch len(attrs) {
	case 10:
		d = 2
	case 18:
		d = 3
	default:
		return nil, fmt.Errorf("%w: 'attrs' must have length 10 (2D) or 18 (3D), got %d", ErrInvalidArgument, len(attrs))
	}
	// newFromAttrs takes ownership of the size slice, so it must not
	// alias the caller's attribute buffer.
	size := append([]float64(nil), attrs[:d]...)
	spacing := attrs[d : 2*d]
	point := attrs[2*d : 3*d]
	direction := attrs[3*d:]
	if origin {
		return newFromAttrs(size, spacing, nil, point, direction, alignCorners)
	}
	return newFromAttrs(size, spacing, point, nil, direction, alignCorners)
}

// gridYAML is the on-disk representation of a grid.
type gridYAML struct {
	Size         []int     `yaml:"size"`
	Spacing      []float64 `yaml:"spacing"`
	Center       []float64 `yaml:"center"`
	Direction    []float64 `yaml:"direction"`
	AlignCorners bool      `yaml:"align_corners"`
}

// MarshalYAML implements yaml.Marshaler.
func (g *Grid) MarshalYAML() (interface{}, error) {
	return gridYAML{
		Size:         g.Size(),
		Spacing:      g.Spacing(),
		Center:       g.Center(),
		Direction:    g.FlatDirection(),
		AlignCorners: g.alignCorners,
	}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (g *Grid) UnmarshalYAML(value *yaml.Node) error {
	var raw gridYAML
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if len(raw.Size) == 0 {
		return fmt.Errorf("%w: grid 'size' is required", ErrInvalidArgument)
	}
	size := make([]float64, len(raw.Size))
	for i, n := range raw.Size {
		if n < 0 {
			return fmt.Errorf("%w: 'size' must be all non-negative numbers", ErrInvalidArgument)
		}
		size[i] = float64(n)
	}
	spacing := raw.Spacing
	if len(spacing) == 0 {
		spacing = nil
	}
	center := raw.Center
	if len(center) == 0 {
		center = nil
	}
	direction := raw.Direction
	if len(direction) == 0 {
		direction = nil
	}
	parsed, err := newFromAttrs(size, spacing, center, nil, direction, raw.AlignCorners)
	if err != nil {
		return err
	}
	*g = *parsed
	return nil
}
