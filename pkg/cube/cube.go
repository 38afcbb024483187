// Package cube defines the oriented bounding box of a sampling grid domain.
// A Cube carries no sampling attributes, only the physical extent, center
// point, and orientation of the region a grid covers in world space.
package cube

import (
	"errors"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"

	"voxelgrid/pkg/linalg"
)

// Tolerances for attribute comparison and rotation validation.
const (
	rtol        = 1e-5
	atol        = 1e-8
	rotationTol = 1e-4
)

// ErrInvalidArgument indicates malformed cube attributes.
var ErrInvalidArgument = errors.New("cube: invalid argument")

// Cube is an oriented box in world space. Values are immutable after
// construction.
type Cube struct {
	extent    []float64
	center    []float64
	direction *mat.Dense
}

// New constructs a Cube from its physical extent, center point, and
// direction cosines. The direction matrix must be a valid rotation and all
// attribute lengths must agree; extent entries must be non-negative.
func New(extent, center []float64, direction *mat.Dense) (*Cube, error) {
	d := len(extent)
	if d == 0 {
		return nil, fmt.Errorf("%w: 'extent' must be non-empty", ErrInvalidArgument)
	}
	if len(center) != d {
		return nil, fmt.Errorf("%w: 'center' must have %d elements", ErrInvalidArgument, d)
	}
	for _, e := range extent {
		if e < 0 {
			return nil, fmt.Errorf("%w: 'extent' must be non-negative", ErrInvalidArgument)
		}
	}
	if direction == nil {
		direction = linalg.Identity(d)
	}
	r, c := direction.Dims()
	if r != d || c != d {
		return nil, fmt.Errorf("%w: 'direction' must be a %dx%d matrix", ErrInvalidArgument, d, d)
	}
	if err := linalg.CheckRotation(direction, rotationTol); err != nil {
		return nil, fmt.Errorf("%w: 'direction' %v", ErrInvalidArgument, err)
	}
	return &Cube{
		extent:    append([]float64(nil), extent...),
		center:    append([]float64(nil), center...),
		direction: mat.DenseCopyOf(direction),
	}, nil
}

// Dim returns the number of spatial dimensions.
func (c *Cube) Dim() int { return len(c.extent) }

// Extent returns a copy of the physical side lengths of the box.
func (c *Cube) Extent() []float64 { return append([]float64(nil), c.extent...) }

// Center returns a copy of the world coordinates of the box center.
func (c *Cube) Center() []float64 { return append([]float64(nil), c.center...) }

// Direction returns a copy of the direction cosines matrix.
func (c *Cube) Direction() *mat.Dense { return mat.DenseCopyOf(c.direction) }

// Equal reports whether two cubes describe the same oriented box within
// floating point tolerance.
func (c *Cube) Equal(other *Cube) bool {
	if c == other {
		return true
	}
	if other == nil || len(c.extent) != len(other.extent) {
		return false
	}
	return linalg.AllClose(c.extent, other.extent, rtol, atol) &&
		linalg.AllClose(c.center, other.center, rtol, atol) &&
		linalg.MatAllClose(c.direction, other.direction, rtol, atol)
}

// String returns a human readable description of the cube.
func (c *Cube) String() string {
	var b strings.Builder
	b.WriteString("Cube(extent=(")
	writeFloats(&b, c.extent)
	b.WriteString("), center=(")
	writeFloats(&b, c.center)
	b.WriteString("), direction=(")
	d := c.Dim()
	for i := 0; i < d; i++ {
		for j := 0; j < d; j++ {
			if i > 0 || j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%.5f", c.direction.At(i, j))
		}
	}
	b.WriteString("))")
	return b.String()
}

func writeFloats(b *strings.Builder, v []float64) {
	for i, x := range v {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(b, "%.5f", x)
	}
}
