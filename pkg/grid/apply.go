package grid

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"voxelgrid/pkg/linalg"
)

// ApplyTransform maps a batch of D-dimensional coordinates from one
// coordinate space to another. When source and destination space and grid
// are identical no matrix is built and a copy of the input is returned.
//
// Unless overridden with Decimals or NoRounding, transformed coordinates
// are rounded to 12 decimal digits when the destination is a cube space
// and to 6 digits when it is GRID, compensating for floating round-off
// that would otherwise make adjacent grid points compare unequal after a
// normalize/denormalize round trip. WORLD destinations are not rounded.
func (g *Grid) ApplyTransform(input [][]float64, axes, toAxes Axes, opts ...TransformOption) ([][]float64, error) {
	o := gatherTransformOptions(opts)
	if err := g.checkPoints(input); err != nil {
		return nil, err
	}
	var result [][]float64
	if (o.toGrid != nil && !g.Equal(o.toGrid)) || axes != toAxes {
		matrix, err := g.transform(axes, toAxes, o.toGrid, o.vectors)
		if err != nil {
			return nil, err
		}
		result = linalg.Apply(matrix, input)
	} else {
		result = clonePoints(input)
	}
	decimals := o.decimals
	if decimals == decimalsAuto {
		switch {
		case toAxes.isCubeSpace():
			decimals = 12
		case toAxes == AxesGrid:
			decimals = 6
		default:
			decimals = decimalsNone
		}
	}
	if decimals >= 0 {
		linalg.RoundPoints(result, decimals)
	}
	return result, nil
}

// TransformPoints maps point coordinates from one coordinate space to
// another, applying the default destination-dependent rounding.
func (g *Grid) TransformPoints(points [][]float64, axes, toAxes Axes, opts ...TransformOption) ([][]float64, error) {
	opts = append(append([]TransformOption(nil), opts...), func(o *transformOptions) { o.vectors = false })
	return g.ApplyTransform(points, axes, toAxes, opts...)
}

// TransformVectors rescales and reorients displacement vectors from one
// coordinate space to another. A world-to-world mapping returns the input
// unchanged. For same-grid mappings a pure diagonal rescale is applied
// whenever no reorientation is needed; the full linear map is used only
// when world space, and hence the grid rotation, is involved.
func (g *Grid) TransformVectors(vectors [][]float64, axes, toAxes Axes, opts ...TransformOption) ([][]float64, error) {
	o := gatherTransformOptions(opts)
	if err := g.checkPoints(vectors); err != nil {
		return nil, err
	}
	if axes == AxesWorld && toAxes == AxesWorld {
		return vectors, nil
	}
	if o.toGrid != nil && !g.Equal(o.toGrid) {
		matrix, err := g.transform(axes, toAxes, o.toGrid, true)
		if err != nil {
			return nil, err
		}
		return linalg.Apply(matrix, vectors), nil
	}
	if axes == toAxes {
		return clonePoints(vectors), nil
	}
	affine, scales, err := g.vectorMap(axes, toAxes)
	if err != nil {
		return nil, err
	}
	if affine == nil {
		out := clonePoints(vectors)
		for _, v := range out {
			for i := range v {
				v[i] *= scales[i]
			}
		}
		return out, nil
	}
	return linalg.Apply(affine, vectors), nil
}

// vectorMap derives either diagonal scale factors or a full linear map for
// a same-grid vector transform between two distinct spaces.
func (g *Grid) vectorMap(axes, toAxes Axes) (affine *mat.Dense, scales []float64, err error) {
	n := g.sizeTensor()
	d := len(n)
	switch axes {
	case AxesWorld:
		affine = g.InverseAffine()
	case AxesCube:
		scales = make([]float64, d)
		for i := range n {
			scales[i] = n[i] / 2
		}
	case AxesCubeCorners:
		scales = make([]float64, d)
		for i := range n {
			scales[i] = (n[i] - 1) / 2
		}
	case AxesGrid:
		// Source already in grid units.
	default:
		return nil, nil, fmt.Errorf("%w: transform of vectors for axes=%s and to_axes=%s",
			ErrNotImplemented, axes, toAxes)
	}
	switch toAxes {
	case AxesWorld:
		gridToWorld := g.Affine()
		if scales == nil {
			affine = gridToWorld
		} else {
			affine = compose(gridToWorld, linalg.Diag(scales), true)
			scales = nil
		}
	case AxesCube, AxesCubeCorners:
		gridToCube := make([]float64, d)
		for i := range n {
			num := n[i]
			if toAxes == AxesCubeCorners {
				num--
			}
			gridToCube[i] = 2 / num
		}
		if affine != nil {
			affine = compose(linalg.Diag(gridToCube), affine, true)
		} else if scales == nil {
			scales = gridToCube
		} else {
			for i := range scales {
				scales[i] *= gridToCube[i]
			}
		}
	case AxesGrid:
		// Destination already in grid units.
	default:
		return nil, nil, fmt.Errorf("%w: transform of vectors for axes=%s and to_axes=%s",
			ErrNotImplemented, axes, toAxes)
	}
	return affine, scales, nil
}

// IndexToCube maps grid indices to the grid-aligned cube with side length
// two. The CubeAligned option selects between the corner- and
// border-aligned cube; the grid's own policy is used by default.
func (g *Grid) IndexToCube(indices [][]float64, opts ...TransformOption) ([][]float64, error) {
	return g.TransformPoints(indices, AxesGrid, g.cubeAxesFor(opts), opts...)
}

// CubeToIndex maps normalized cube coordinates to grid indices.
func (g *Grid) CubeToIndex(coords [][]float64, opts ...TransformOption) ([][]float64, error) {
	return g.TransformPoints(coords, g.cubeAxesFor(opts), AxesGrid, opts...)
}

// IndexToWorld maps grid indices to world coordinates.
func (g *Grid) IndexToWorld(indices [][]float64, opts ...TransformOption) ([][]float64, error) {
	return g.TransformPoints(indices, AxesGrid, AxesWorld, opts...)
}

// WorldToIndex maps world coordinates to grid indices.
func (g *Grid) WorldToIndex(points [][]float64, opts ...TransformOption) ([][]float64, error) {
	return g.TransformPoints(points, AxesWorld, AxesGrid, opts...)
}

// CubeToWorld maps normalized cube coordinates to world coordinates.
func (g *Grid) CubeToWorld(coords [][]float64, opts ...TransformOption) ([][]float64, error) {
	return g.TransformPoints(coords, g.cubeAxesFor(opts), AxesWorld, opts...)
}

// WorldToCube maps world coordinates to the grid-aligned cube.
func (g *Grid) WorldToCube(points [][]float64, opts ...TransformOption) ([][]float64, error) {
	return g.TransformPoints(points, AxesWorld, g.cubeAxesFor(opts), opts...)
}

func (g *Grid) cubeAxesFor(opts []TransformOption) Axes {
	o := gatherTransformOptions(opts)
	if o.cubeAlign != nil {
		return AxesFromAlignCorners(*o.cubeAlign)
	}
	return g.Axes()
}

func (g *Grid) checkPoints(points [][]float64) error {
	d := g.Dim()
	for i, p := range points {
		if len(p) != d {
			return fmt.Errorf("%w: point %d must have %d coordinates, got %d",
				ErrInvalidArgument, i, d, len(p))
		}
	}
	return nil
}

func clonePoints(points [][]float64) [][]float64 {
	out := make([][]float64, len(points))
	for i, p := range points {
		out[i] = append([]float64(nil), p...)
	}
	return out
}

// indexToWorldPoint maps a single index-space point to world coordinates.
func (g *Grid) indexToWorldPoint(index []float64) []float64 {
	m, _ := g.transform(AxesGrid, AxesWorld, nil, false)
	return linalg.Apply(m, [][]float64{index})[0]
}
