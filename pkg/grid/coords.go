package grid

import (
	"fmt"

	"voxelgrid/pkg/linalg"
)

type coordsOptions struct {
	normalize    bool
	center       bool
	alignCorners *bool
	flip         bool
}

// CoordsOption configures Coords and AxisCoords.
type CoordsOption func(*coordsOptions)

// RawIndices selects plain integer-valued grid indices in [0, n) instead
// of normalized cube coordinates.
func RawIndices() CoordsOption {
	return func(o *coordsOptions) { o.normalize = false; o.center = false }
}

// CenteredIndices selects grid indices shifted so that zero corresponds to
// the grid center point.
func CenteredIndices() CoordsOption {
	return func(o *coordsOptions) { o.normalize = false; o.center = true }
}

// CoordsAligned overrides the alignment convention used for normalized
// coordinates: the extrema -1 and 1 refer to the corner sample centers
// when true and to the grid border otherwise.
func CoordsAligned(alignCorners bool) CoordsOption {
	return func(o *coordsOptions) { o.alignCorners = alignCorners2ptr(alignCorners) }
}

// Flipped returns coordinate channels in the order (..., X) instead of the
// default (X, ...).
func Flipped() CoordsOption {
	return func(o *coordsOptions) { o.flip = true }
}

func (g *Grid) gatherCoordsOptions(opts []CoordsOption) coordsOptions {
	o := coordsOptions{normalize: true}
	for _, opt := range opts {
		opt(&o)
	}
	if o.alignCorners == nil {
		o.alignCorners = alignCorners2ptr(g.alignCorners)
	}
	return o
}

// AxisCoords returns the 1-D coordinate values of the grid points along
// one axis. By default coordinates are normalized to the closed interval
// [-1, 1]; RawIndices and CenteredIndices select index-valued modes. An
// axis with a single point maps to coordinate zero in every mode and a
// negative dim counts from the last axis.
func (g *Grid) AxisCoords(dim int, opts ...CoordsOption) ([]float64, error) {
	o := g.gatherCoordsOptions(opts)
	d := g.Dim()
	if dim < 0 {
		dim += d
	}
	if dim < 0 || dim >= d {
		return nil, fmt.Errorf("%w: 'dim' must be in [-%d, %d)", ErrInvalidArgument, d, d)
	}
	return axisCoords(g.Size()[dim], o), nil
}

func axisCoords(n int, o coordsOptions) []float64 {
	switch {
	case n <= 0:
		return []float64{}
	case n == 1:
		return []float64{0}
	case o.normalize:
		if *o.alignCorners {
			return linalg.Linspace(-1, 1, n)
		}
		h := 2 / float64(n)
		return linalg.Linspace(-1+h/2, 1-h/2, n)
	case o.center:
		radius := float64(n-1) / 2
		return linalg.Linspace(-radius, radius, n)
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i)
	}
	return out
}

// Coords returns the full lattice of D-dimensional grid point coordinates.
// Points are ordered with the first grid axis varying fastest, matching a
// row-major traversal of the data buffer shape, and each point lists its
// coordinates in the order (X, ...) unless Flipped is given.
func (g *Grid) Coords(opts ...CoordsOption) ([][]float64, error) {
	o := g.gatherCoordsOptions(opts)
	d := g.Dim()
	size := g.Size()
	total := 1
	for _, n := range size {
		total *= n
	}
	if total == 0 {
		return [][]float64{}, nil
	}
	axes := make([][]float64, d)
	for a := 0; a < d; a++ {
		axes[a] = axisCoords(size[a], o)
	}
	out := make([][]float64, total)
	idx := make([]int, d)
	for f := 0; f < total; f++ {
		p := make([]float64, d)
		for a := 0; a < d; a++ {
			c := a
			if o.flip {
				c = d - 1 - a
			}
			p[c] = axes[a][idx[a]]
		}
		out[f] = p
		// Advance the multi-index with the first axis fastest.
		for a := 0; a < d; a++ {
			idx[a]++
			if idx[a] < size[a] {
				break
			}
			idx[a] = 0
		}
	}
	return out, nil
}

// Points returns the lattice of grid point coordinates with respect to the
// given coordinate space.
func (g *Grid) Points(axes Axes) ([][]float64, error) {
	var coords [][]float64
	var err error
	if axes == AxesCube {
		coords, err = g.Coords(CoordsAligned(false))
	} else {
		coords, err = g.Coords(RawIndices())
	}
	if err != nil {
		return nil, err
	}
	if axes == AxesCube || axes == AxesGrid {
		return coords, nil
	}
	return g.ApplyTransform(coords, AxesGrid, axes)
}
