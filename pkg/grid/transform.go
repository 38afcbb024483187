package grid

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"voxelgrid/pkg/linalg"
)

// Sentinel values for the decimals transform option. decimalsAuto selects
// the destination-dependent default rounding of transformed coordinates.
const (
	decimalsAuto = -1
	decimalsNone = -2
)

type transformOptions struct {
	toGrid    *Grid
	vectors   bool
	decimals  int
	cubeAlign *bool
}

// TransformOption configures Transform and the point/vector mapping
// methods.
type TransformOption func(*transformOptions)

// ToGrid maps coordinates into the domain of another grid. Both grids must
// have the same number of spatial dimensions.
func ToGrid(other *Grid) TransformOption {
	return func(o *transformOptions) { o.toGrid = other }
}

// Vectors selects the pure linear DxD form of a transform, suitable for
// displacement or direction vectors which have no translational component.
func Vectors() TransformOption {
	return func(o *transformOptions) { o.vectors = true }
}

// Decimals overrides the default rounding of transformed coordinates with
// an explicit number of decimal digits.
func Decimals(n int) TransformOption {
	return func(o *transformOptions) { o.decimals = n }
}

// NoRounding disables rounding of transformed coordinates entirely.
func NoRounding() TransformOption {
	return func(o *transformOptions) { o.decimals = decimalsNone }
}

// CubeAligned overrides the grid's own alignment policy in the IndexToCube,
// CubeToIndex, CubeToWorld, and WorldToCube convenience wrappers.
func CubeAligned(alignCorners bool) TransformOption {
	return func(o *transformOptions) { o.cubeAlign = alignCorners2ptr(alignCorners) }
}

func alignCorners2ptr(b bool) *bool { return &b }

func gatherTransformOptions(opts []TransformOption) transformOptions {
	o := transformOptions{decimals: decimalsAuto}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Transform returns the affine map from one coordinate space of this grid
// to another. The result is a D x (D+1) homogeneous matrix, or a DxD
// linear matrix when the Vectors option is given. With the ToGrid option
// the map targets the coordinate space of the other grid, composed through
// world space.
func (g *Grid) Transform(axes, toAxes Axes, opts ...TransformOption) (*mat.Dense, error) {
	o := gatherTransformOptions(opts)
	return g.transform(axes, toAxes, o.toGrid, o.vectors)
}

// SamplingTransform returns the default map from the grid's own normalized
// cube space to world space, the transform needed to feed normalized
// sampling coordinates into a data interpolation routine.
func (g *Grid) SamplingTransform(opts ...TransformOption) (*mat.Dense, error) {
	return g.Transform(g.Axes(), AxesWorld, opts...)
}

// InverseSamplingTransform returns the map from world space to the grid's
// own normalized cube space.
func (g *Grid) InverseSamplingTransform(opts ...TransformOption) (*mat.Dense, error) {
	return g.Transform(AxesWorld, g.Axes(), opts...)
}

func (g *Grid) transform(axes, toAxes Axes, toGrid *Grid, vectors bool) (*mat.Dense, error) {
	if toGrid != nil && !g.Equal(toGrid) {
		if toGrid.Dim() != g.Dim() {
			return nil, fmt.Errorf("%w: 'toGrid' must have %d spatial dimensions, got %d",
				ErrDimMismatch, g.Dim(), toGrid.Dim())
		}
		toWorld, err := g.transform(axes, AxesWorld, nil, vectors)
		if err != nil {
			return nil, err
		}
		fromWorld, err := toGrid.transform(AxesWorld, toAxes, nil, vectors)
		if err != nil {
			return nil, err
		}
		return compose(fromWorld, toWorld, vectors), nil
	}
	if axes == toAxes {
		m := linalg.Identity(g.Dim())
		if vectors {
			return m, nil
		}
		return linalg.Homogeneous(m, make([]float64, g.Dim())), nil
	}
	switch axes {
	case AxesGrid:
		return g.gridTo(toAxes, vectors)
	case AxesCube, AxesCubeCorners:
		return g.cubeTo(axes, toAxes, vectors)
	case AxesWorld:
		return g.worldTo(toAxes, vectors)
	}
	return nil, fmt.Errorf("%w: transform for axes=%s and to_axes=%s", ErrNotImplemented, axes, toAxes)
}

// gridTo builds the direct transforms with GRID as the source space.
func (g *Grid) gridTo(toAxes Axes, vectors bool) (*mat.Dense, error) {
	n := g.sizeTensor()
	d := len(n)
	switch toAxes {
	case AxesCube:
		scales := make([]float64, d)
		offset := make([]float64, d)
		for i := range n {
			scales[i] = 2 / n[i]
			offset[i] = 1/n[i] - 1
		}
		if vectors {
			return linalg.Diag(scales), nil
		}
		return linalg.Homogeneous(linalg.Diag(scales), offset), nil
	case AxesCubeCorners:
		scales := make([]float64, d)
		offset := make([]float64, d)
		for i := range n {
			scales[i] = 2 / (n[i] - 1)
			offset[i] = -1
		}
		if vectors {
			return linalg.Diag(scales), nil
		}
		return linalg.Homogeneous(linalg.Diag(scales), offset), nil
	case AxesWorld:
		m := g.Affine()
		if vectors {
			return m, nil
		}
		return linalg.Homogeneous(m, g.Origin()), nil
	}
	return nil, fmt.Errorf("%w: transform for axes=%s and to_axes=%s", ErrNotImplemented, AxesGrid, toAxes)
}

// cubeTo builds the transforms with one of the two normalized cube spaces
// as the source, composing through GRID when the destination is WORLD.
func (g *Grid) cubeTo(axes, toAxes Axes, vectors bool) (*mat.Dense, error) {
	n := g.sizeTensor()
	d := len(n)
	switch toAxes {
	case AxesCube, AxesCubeCorners:
		// Pure diagonal rescale; both cubes share the same center.
		scales := make([]float64, d)
		for i := range n {
			if axes == AxesCube {
				scales[i] = n[i] / (n[i] - 1)
			} else {
				scales[i] = (n[i] - 1) / n[i]
			}
		}
		return linalg.Diag(scales), nil
	case AxesGrid:
		scales := make([]float64, d)
		offset := make([]float64, d)
		for i := range n {
			if axes == AxesCube {
				scales[i] = n[i] / 2
				offset[i] = n[i]/2 - 0.5
			} else {
				scales[i] = (n[i] - 1) / 2
				offset[i] = scales[i]
			}
		}
		if vectors {
			return linalg.Diag(scales), nil
		}
		return linalg.Homogeneous(linalg.Diag(scales), offset), nil
	case AxesWorld:
		cubeToGrid, err := g.transform(axes, AxesGrid, nil, vectors)
		if err != nil {
			return nil, err
		}
		gridToWorld, err := g.transform(AxesGrid, AxesWorld, nil, vectors)
		if err != nil {
			return nil, err
		}
		return compose(gridToWorld, cubeToGrid, vectors), nil
	}
	return nil, fmt.Errorf("%w: transform for axes=%s and to_axes=%s", ErrNotImplemented, axes, toAxes)
}

// worldTo builds the transforms with WORLD as the source, composing
// through GRID when the destination is a cube space.
func (g *Grid) worldTo(toAxes Axes, vectors bool) (*mat.Dense, error) {
	switch toAxes {
	case AxesGrid:
		m := g.InverseAffine()
		if vectors {
			return m, nil
		}
		origin := g.Origin()
		neg := make([]float64, len(origin))
		for i, x := range origin {
			neg[i] = -x
		}
		return linalg.Translate(m, neg), nil
	case AxesCube, AxesCubeCorners:
		worldToGrid, err := g.transform(AxesWorld, AxesGrid, nil, vectors)
		if err != nil {
			return nil, err
		}
		gridToCube, err := g.transform(AxesGrid, toAxes, nil, vectors)
		if err != nil {
			return nil, err
		}
		return compose(gridToCube, worldToGrid, vectors), nil
	}
	return nil, fmt.Errorf("%w: transform for axes=%s and to_axes=%s", ErrNotImplemented, AxesWorld, toAxes)
}

// compose composes two transforms, a after b, in either the homogeneous or
// the plain linear form.
func compose(a, b *mat.Dense, vectors bool) *mat.Dense {
	if vectors {
		var m mat.Dense
		m.Mul(a, b)
		return &m
	}
	return linalg.Compose(a, b)
}
