package grid

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"

	"voxelgrid/pkg/cube"
	"voxelgrid/pkg/linalg"
)

// DefaultAlignCorners is the default corner alignment policy. When true,
// the grid corner points define the domain within which the data is
// defined, so that resizing keeps the boundary points fixed and only
// inserts or removes points between them.
const DefaultAlignCorners = true

// Comparison tolerances used for grid equality and internal consistency
// checks, and the tolerance for the rotation matrix determinant.
const (
	rtol        = 1e-5
	atol        = 1e-8
	rotationTol = 1e-4
)

// Grid is an oriented, regularly spaced sampling grid.
//
// The size is stored as floating point values and only rounded up to an
// integer point count on demand; this keeps Downsample followed by Upsample
// exactly invertible. The stored quantity for placement is the center point
// rather than the origin, so size-changing operations keep the center fixed
// and recompute the origin implicitly.
type Grid struct {
	size         []float64
	spacing      []float64
	center       []float64
	direction    *mat.Dense
	alignCorners bool
}

type options struct {
	size         []int
	shape        []int
	spacing      []float64
	center       []float64
	origin       []float64
	direction    []float64
	alignCorners bool
}

// Option configures grid construction with New.
type Option func(*options)

// WithSize sets the number of grid points per axis in the order (X, ...),
// i.e. fastest-varying axis first.
func WithSize(size ...int) Option {
	return func(o *options) { o.size = size }
}

// WithShape sets the grid size as a data buffer shape in the order
// (..., X), the reverse of WithSize.
func WithShape(shape ...int) Option {
	return func(o *options) { o.shape = shape }
}

// WithSpacing sets the physical distance between adjacent grid points per
// axis. A single value applies to all axes.
func WithSpacing(spacing ...float64) Option {
	return func(o *options) { o.spacing = spacing }
}

// WithCenter sets the world coordinates of the grid center point. A single
// value applies to all axes.
func WithCenter(center ...float64) Option {
	return func(o *options) { o.center = center }
}

// WithOrigin sets the world coordinates of the grid point with zero index
// along every axis. A single value applies to all axes. When both center
// and origin are given they must be mutually consistent.
func WithOrigin(origin ...float64) Option {
	return func(o *options) { o.origin = origin }
}

// WithDirection sets the direction cosines as a row-major flattened DxD
// rotation matrix whose columns are the world directions of the grid axes.
func WithDirection(direction ...float64) Option {
	return func(o *options) { o.direction = direction }
}

// WithAlignCorners sets the default alignment policy used by resize-family
// operations on the constructed grid.
func WithAlignCorners(alignCorners bool) Option {
	return func(o *options) { o.alignCorners = alignCorners }
}

// New constructs a sampling grid. At least one of WithSize or WithShape is
// required; when both are given they must be reverses of each other.
// Spacing defaults to one per axis, the direction to the identity rotation,
// and the center to the world origin. When WithOrigin is given instead of
// WithCenter, the center is derived from it using the final size, spacing,
// and direction.
func New(opts ...Option) (*Grid, error) {
	o := options{alignCorners: DefaultAlignCorners}
	for _, opt := range opts {
		opt(&o)
	}
	var size []float64
	switch {
	case o.size == nil && o.shape == nil:
		return nil, fmt.Errorf("%w: 'size' or 'shape' required", ErrInvalidArgument)
	case o.size == nil:
		if len(o.shape) == 0 {
			return nil, fmt.Errorf("%w: 'shape' must be non-empty", ErrInvalidArgument)
		}
		size = make([]float64, len(o.shape))
		for i, n := range o.shape {
			size[len(o.shape)-1-i] = float64(n)
		}
	default:
		if len(o.size) == 0 {
			return nil, fmt.Errorf("%w: 'size' must be non-empty", ErrInvalidArgument)
		}
		if o.shape != nil {
			if len(o.shape) != len(o.size) {
				return nil, fmt.Errorf("%w: 'size' and 'shape' are not compatible", ErrInvalidArgument)
			}
			for i, n := range o.shape {
				if o.size[len(o.size)-1-i] != n {
					return nil, fmt.Errorf("%w: 'size' and 'shape' are not compatible", ErrInvalidArgument)
				}
			}
		}
		size = make([]float64, len(o.size))
		for i, n := range o.size {
			size[i] = float64(n)
		}
	}
	return newFromAttrs(size, o.spacing, o.center, o.origin, o.direction, o.alignCorners)
}

// FromShape constructs a default grid with the given data buffer shape,
// unit spacing, identity direction, and center at the world origin.
func FromShape(shape ...int) (*Grid, error) {
	return New(WithShape(shape...))
}

// newFromAttrs builds and validates a grid from raw attribute values. The
// size slice is taken over by the new grid. Exactly one of center and
// origin should be non-nil; when both are given they are checked for
// mutual consistency.
func newFromAttrs(size, spacing, center, origin, direction []float64, alignCorners bool) (*Grid, error) {
	g := &Grid{alignCorners: alignCorners}
	g.size = size
	for i, n := range g.size {
		// Negative sizes are clamped rather than rejected so that arithmetic
		// on derived sizes cannot produce an invalid grid.
		if n < 0 {
			g.size[i] = 0
		}
	}
	if spacing == nil {
		spacing = []float64{1}
	}
	if err := g.SetSpacing(spacing...); err != nil {
		return nil, err
	}
	if direction == nil {
		g.direction = linalg.Identity(g.Dim())
	} else if err := g.SetDirection(direction...); err != nil {
		return nil, err
	}
	// The origin-to-center conversion below depends on size, spacing, and
	// direction, so it must run after all three are in place.
	switch {
	case origin == nil && center == nil:
		g.center = make([]float64, g.Dim())
	case origin == nil:
		if err := g.SetCenter(center...); err != nil {
			return nil, err
		}
	case center == nil:
		if err := g.SetOrigin(origin...); err != nil {
			return nil, err
		}
	default:
		if err := g.SetCenter(center...); err != nil {
			return nil, err
		}
		want, err := broadcast(origin, g.Dim(), "origin")
		if err != nil {
			return nil, err
		}
		if !linalg.AllClose(want, g.Origin(), rtol, atol) {
			return nil, fmt.Errorf("%w: 'center' and 'origin' are inconsistent", ErrInvalidArgument)
		}
	}
	return g, nil
}

// broadcast expands a single scalar to n elements and validates the length
// of explicit vectors.
func broadcast(v []float64, n int, name string) ([]float64, error) {
	switch len(v) {
	case n:
		return append([]float64(nil), v...), nil
	case 1:
		out := make([]float64, n)
		for i := range out {
			out[i] = v[0]
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: '%s' must have 1 or %d elements, got %d", ErrInvalidArgument, name, n, len(v))
}

func broadcastInts(v []int, n int, name string) ([]int, error) {
	switch len(v) {
	case n:
		return append([]int(nil), v...), nil
	case 1:
		out := make([]int, n)
		for i := range out {
			out[i] = v[0]
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: '%s' must have 1 or %d elements, got %d", ErrInvalidArgument, name, n, len(v))
}

// SetSpacing sets the spacing between grid points in place. All values
// must be strictly positive. A single value applies to all axes.
func (g *Grid) SetSpacing(spacing ...float64) error {
	s, err := broadcast(spacing, g.Dim(), "spacing")
	if err != nil {
		return err
	}
	for _, x := range s {
		if x <= 0 {
			return fmt.Errorf("%w: 'spacing' must be positive, got %v", ErrInvalidArgument, spacing)
		}
	}
	g.spacing = s
	return nil
}

// SetCenter sets the world coordinates of the grid center point in place.
func (g *Grid) SetCenter(center ...float64) error {
	c, err := broadcast(center, g.Dim(), "center")
	if err != nil {
		return err
	}
	g.center = c
	return nil
}

// SetOrigin sets the world coordinates of the zero-index grid point in
// place by shifting the stored center accordingly. Size, spacing, and
// direction must already be final.
func (g *Grid) SetOrigin(origin ...float64) error {
	p, err := broadcast(origin, g.Dim(), "origin")
	if err != nil {
		return err
	}
	offset := linalg.MatVec(g.Affine(), g.centerIndexOffset())
	c := make([]float64, g.Dim())
	for i := range c {
		c[i] = p[i] + offset[i]
	}
	g.center = c
	return nil
}

// SetDirection sets the direction cosines in place from a row-major
// flattened DxD matrix. The matrix must be a valid rotation, i.e. its
// determinant magnitude must not deviate from one by more than 1e-4.
func (g *Grid) SetDirection(direction ...float64) error {
	d := g.Dim()
	if len(direction) != d*d {
		return fmt.Errorf("%w: 'direction' must be a square matrix with %d elements, got %d",
			ErrInvalidArgument, d*d, len(direction))
	}
	m := mat.NewDense(d, d, append([]float64(nil), direction...))
	if err := linalg.CheckRotation(m, rotationTol); err != nil {
		return fmt.Errorf("%w: 'direction' %v", ErrInvalidArgument, err)
	}
	g.direction = m
	return nil
}

// SetAlignCorners sets the default alignment policy in place.
func (g *Grid) SetAlignCorners(alignCorners bool) {
	g.alignCorners = alignCorners
}

// Derive returns a copy of the grid with the given attribute options
// applied. Size-changing options are rejected; use Resize or Reshape.
func (g *Grid) Derive(opts ...Option) (*Grid, error) {
	var o options
	o.alignCorners = g.alignCorners
	for _, opt := range opts {
		opt(&o)
	}
	if o.size != nil || o.shape != nil {
		return nil, fmt.Errorf("%w: Derive() cannot change the grid size, use Resize or Reshape", ErrInvalidArgument)
	}
	n := g.Clone()
	n.alignCorners = o.alignCorners
	if o.spacing != nil {
		if err := n.SetSpacing(o.spacing...); err != nil {
			return nil, err
		}
	}
	if o.direction != nil {
		if err := n.SetDirection(o.direction...); err != nil {
			return nil, err
		}
	}
	switch {
	case o.center != nil && o.origin != nil:
		return nil, fmt.Errorf("%w: Derive() 'center' and 'origin' are mutually exclusive", ErrInvalidArgument)
	case o.center != nil:
		if err := n.SetCenter(o.center...); err != nil {
			return nil, err
		}
	case o.origin != nil:
		if err := n.SetOrigin(o.origin...); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// Clone returns a deep copy sharing no state with the receiver.
func (g *Grid) Clone() *Grid {
	return &Grid{
		size:         append([]float64(nil), g.size...),
		spacing:      append([]float64(nil), g.spacing...),
		center:       append([]float64(nil), g.center...),
		direction:    mat.DenseCopyOf(g.direction),
		alignCorners: g.alignCorners,
	}
}

// Dim returns the number of spatial grid dimensions.
func (g *Grid) Dim() int { return len(g.size) }

// AlignCorners reports the default alignment policy for resize-family
// operations.
func (g *Grid) AlignCorners() bool { return g.alignCorners }

// Axes returns the normalized cube space matching this grid's alignment
// policy.
func (g *Grid) Axes() Axes { return AxesFromAlignCorners(g.alignCorners) }

// roundSize maps a stored floating point size to an effective point count:
// zero stays zero, everything else is rounded up.
func roundSize(n float64) float64 {
	if n == 0 {
		return 0
	}
	return math.Ceil(n)
}

// sizeTensor returns the effective per-axis point counts as floats.
func (g *Grid) sizeTensor() []float64 {
	out := make([]float64, len(g.size))
	for i, n := range g.size {
		out[i] = roundSize(n)
	}
	return out
}

// Size returns the effective number of grid points per axis in the order
// (X, ...).
func (g *Grid) Size() []int {
	out := make([]int, len(g.size))
	for i, n := range g.size {
		out[i] = int(roundSize(n))
	}
	return out
}

// Shape returns the grid size as a data buffer shape in the order (..., X).
func (g *Grid) Shape() []int {
	size := g.Size()
	out := make([]int, len(size))
	for i, n := range size {
		out[len(size)-1-i] = n
	}
	return out
}

// Numel returns the total number of grid points.
func (g *Grid) Numel() int {
	n := 1
	for _, s := range g.Size() {
		n *= s
	}
	return n
}

// Spacing returns a copy of the spacing between grid points per axis.
func (g *Grid) Spacing() []float64 { return append([]float64(nil), g.spacing...) }

// Center returns a copy of the world coordinates of the grid center.
func (g *Grid) Center() []float64 { return append([]float64(nil), g.center...) }

// Direction returns a copy of the direction cosines matrix.
func (g *Grid) Direction() *mat.Dense { return mat.DenseCopyOf(g.direction) }

// FlatDirection returns the direction cosines as a row-major flattened
// slice, the form consumed by WithDirection and image file headers.
func (g *Grid) FlatDirection() []float64 {
	d := g.Dim()
	out := make([]float64, 0, d*d)
	for i := 0; i < d; i++ {
		for j := 0; j < d; j++ {
			out = append(out, g.direction.At(i, j))
		}
	}
	return out
}

// centerIndexOffset is the index-space offset from the zero-index point to
// the grid center, (n-1)/2 per axis with zero-size axes left at zero.
func (g *Grid) centerIndexOffset() []float64 {
	out := make([]float64, len(g.size))
	for i, n := range g.sizeTensor() {
		if n > 0 {
			out[i] = (n - 1) / 2
		}
	}
	return out
}

// Origin returns the world coordinates of the grid point with zero index
// along every axis.
func (g *Grid) Origin() []float64 {
	offset := linalg.MatVec(g.Affine(), g.centerIndexOffset())
	out := make([]float64, g.Dim())
	for i := range out {
		out[i] = g.center[i] - offset[i]
	}
	return out
}

// Extent returns the physical size spanned by the grid per axis, i.e.
// spacing times point count.
func (g *Grid) Extent() []float64 {
	out := g.sizeTensor()
	for i := range out {
		out[i] *= g.spacing[i]
	}
	return out
}

// CubeExtent returns the physical extent of the normalized cube: measured
// between the outermost sample centers when corners are aligned, and
// between the outer half-cell boundaries otherwise.
func (g *Grid) CubeExtent() []float64 {
	out := g.sizeTensor()
	for i := range out {
		if g.alignCorners {
			out[i]--
		}
		out[i] *= g.spacing[i]
	}
	return out
}

// Affine returns the linear part of the grid-to-world transform,
// direction times the diagonal spacing matrix, excluding the translation.
func (g *Grid) Affine() *mat.Dense {
	var m mat.Dense
	m.Mul(g.direction, linalg.Diag(g.spacing))
	return &m
}

// InverseAffine returns the linear part of the world-to-grid transform,
// excluding the translation.
func (g *Grid) InverseAffine() *mat.Dense {
	inv := make([]float64, len(g.spacing))
	for i, s := range g.spacing {
		inv[i] = 1 / s
	}
	var m mat.Dense
	m.Mul(linalg.Diag(inv), g.direction.T())
	return &m
}

// Cube returns the oriented bounding box of the grid domain under the
// current alignment policy.
func (g *Grid) Cube() (*cube.Cube, error) {
	return cube.New(g.CubeExtent(), g.Center(), g.direction)
}

// Domain returns the oriented bounding box of the grid domain; it is an
// alias for Cube.
func (g *Grid) Domain() (*cube.Cube, error) {
	return g.Cube()
}

// SameDomainAs reports whether this grid and another cover the same cube
// domain in world space.
func (g *Grid) SameDomainAs(other *Grid) bool {
	if g == other {
		return true
	}
	if other == nil {
		return false
	}
	a, err := g.Domain()
	if err != nil {
		return false
	}
	b, err := other.Domain()
	if err != nil {
		return false
	}
	return a.Equal(b)
}

// Equal reports structural equality of size, spacing, center, and
// direction within floating point tolerance. The alignment policy does not
// participate in equality.
func (g *Grid) Equal(other *Grid) bool {
	if g == other {
		return true
	}
	if other == nil || len(g.size) != len(other.size) {
		return false
	}
	return linalg.AllClose(g.size, other.size, rtol, atol) &&
		linalg.AllClose(g.spacing, other.spacing, rtol, atol) &&
		linalg.AllClose(g.center, other.center, rtol, atol) &&
		linalg.MatAllClose(g.direction, other.direction, rtol, atol)
}

// String returns a human readable description of all grid attributes.
func (g *Grid) String() string {
	var b strings.Builder
	b.WriteString("Grid(size=(")
	for i, n := range g.size {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%.2f", n)
	}
	b.WriteString("), origin=(")
	writeFloats(&b, g.Origin())
	b.WriteString("), center=(")
	writeFloats(&b, g.center)
	b.WriteString("), spacing=(")
	writeFloats(&b, g.spacing)
	b.WriteString("), direction=(")
	writeFloats(&b, g.FlatDirection())
	fmt.Fprintf(&b, "), align_corners=%v)", g.alignCorners)
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
