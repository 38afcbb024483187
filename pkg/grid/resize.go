package grid

import (
	"fmt"
	"math"

	"voxelgrid/pkg/linalg"
)

type resizeOptions struct {
	alignCorners *bool
	dims         []int
	minSize      *int
}

// ResizeOption configures the resize-family operations.
type ResizeOption func(*resizeOptions)

// Aligned overrides the grid's default alignment policy for one resize
// operation: corner points are preserved when true, the total extent when
// false.
func Aligned(alignCorners bool) ResizeOption {
	return func(o *resizeOptions) { o.alignCorners = alignCorners2ptr(alignCorners) }
}

// Dims restricts Downsample, Upsample, or Pyramid to the given spatial
// dimensions. All dimensions are considered by default.
func Dims(dims ...int) ResizeOption {
	return func(o *resizeOptions) { o.dims = dims }
}

// MinSize sets the minimum grid size per axis for Resample, Downsample,
// and Pyramid. Axes that would shrink below it are left at their previous
// size without affecting the other axes.
func MinSize(n int) ResizeOption {
	return func(o *resizeOptions) { o.minSize = &n }
}

func (g *Grid) gatherResizeOptions(opts []ResizeOption, defaultMinSize int) (resizeOptions, error) {
	o := resizeOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.alignCorners == nil {
		o.alignCorners = alignCorners2ptr(g.alignCorners)
	}
	if o.minSize == nil {
		o.minSize = &defaultMinSize
	}
	if o.dims == nil {
		o.dims = make([]int, g.Dim())
		for i := range o.dims {
			o.dims[i] = i
		}
	} else {
		dims := make([]int, len(o.dims))
		for i, dim := range o.dims {
			if dim < 0 {
				dim += g.Dim()
			}
			if dim < 0 || dim >= g.Dim() {
				return o, fmt.Errorf("%w: 'dims' entry out of range for %d dimensions", ErrInvalidArgument, g.Dim())
			}
			dims[i] = dim
		}
		o.dims = dims
	}
	return o, nil
}

// resize is the single size-mutation primitive every resize-family
// operation funnels through. It preserves the floating point values of the
// requested size so that sequences of downsampling and upsampling steps
// reproduce the original grid exactly. Dimensions whose original size is
// zero keep their spacing. The resulting grid is verified to preserve the
// origin (corner alignment) or the total extent (border alignment).
func (g *Grid) resize(size []float64, alignCorners bool) (*Grid, error) {
	same := true
	for i, n := range size {
		if n != g.size[i] {
			same = false
			break
		}
	}
	if same {
		return g, nil
	}
	n := g.Clone()
	n.size = append([]float64(nil), size...)
	extent := g.Extent()
	rounded := n.sizeTensor()
	for i := range n.spacing {
		if g.size[i] <= 0 {
			continue
		}
		if alignCorners {
			n.spacing[i] = (extent[i] - g.spacing[i]) / (rounded[i] - 1)
		} else {
			n.spacing[i] = extent[i] / rounded[i]
		}
	}
	if alignCorners {
		if !allCloseWhere(n.Origin(), g.Origin(), g.size) {
			return nil, fmt.Errorf("%w: resize to size %v does not preserve the grid origin", ErrInvalidArgument, size)
		}
	} else {
		if !allCloseWhere(n.Extent(), g.Extent(), g.size) {
			return nil, fmt.Errorf("%w: resize to size %v does not preserve the grid extent", ErrInvalidArgument, size)
		}
	}
	return n, nil
}

// allCloseWhere compares a and b within the package tolerances, ignoring
// axes whose original size is zero.
func allCloseWhere(a, b, origSize []float64) bool {
	for i := range a {
		if origSize[i] <= 0 {
			continue
		}
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			return false
		}
		if math.Abs(a[i]-b[i]) > atol+rtol*math.Abs(b[i]) {
			return false
		}
	}
	return true
}

// Resize returns a new grid with the given point counts per axis in the
// order (X, ...) and spacing adjusted per the alignment policy.
func (g *Grid) Resize(size []int, opts ...ResizeOption) (*Grid, error) {
	o, err := g.gatherResizeOptions(opts, 1)
	if err != nil {
		return nil, err
	}
	n, err := broadcastInts(size, g.Dim(), "size")
	if err != nil {
		return nil, err
	}
	f := make([]float64, len(n))
	for i, v := range n {
		if v < 0 {
			return nil, fmt.Errorf("%w: 'size' must be all non-negative numbers", ErrInvalidArgument)
		}
		f[i] = float64(v)
	}
	return g.resize(f, *o.alignCorners)
}

// Reshape returns a new grid with the given data buffer shape in the order
// (..., X), the reverse-order equivalent of Resize.
func (g *Grid) Reshape(shape []int, opts ...ResizeOption) (*Grid, error) {
	n, err := broadcastInts(shape, g.Dim(), "shape")
	if err != nil {
		return nil, err
	}
	size := make([]int, len(n))
	for i, v := range n {
		size[len(n)-1-i] = v
	}
	return g.Resize(size, opts...)
}

// Resample returns a new grid covering the same extent with the given
// spacing. The derived size is the extent divided by the spacing, clamped
// to the minimum size for axes with a nonzero original size. The extent of
// the result may exceed the original when it is not divisible by the
// desired spacing.
func (g *Grid) Resample(spacing []float64, opts ...ResizeOption) (*Grid, error) {
	o, err := g.gatherResizeOptions(opts, 1)
	if err != nil {
		return nil, err
	}
	s, err := broadcast(spacing, g.Dim(), "spacing")
	if err != nil {
		return nil, err
	}
	return g.resample(s, *o.minSize)
}

// ResampleMin resamples isotropically to the smallest axis spacing.
func (g *Grid) ResampleMin(opts ...ResizeOption) (*Grid, error) {
	s := g.spacing[0]
	for _, x := range g.spacing[1:] {
		s = math.Min(s, x)
	}
	return g.Resample([]float64{s}, opts...)
}

// ResampleMax resamples isotropically to the largest axis spacing.
func (g *Grid) ResampleMax(opts ...ResizeOption) (*Grid, error) {
	s := g.spacing[0]
	for _, x := range g.spacing[1:] {
		s = math.Max(s, x)
	}
	return g.Resample([]float64{s}, opts...)
}

func (g *Grid) resample(spacing []float64, minSize int) (*Grid, error) {
	if linalg.AllClose(spacing, g.spacing, rtol, atol) {
		return g, nil
	}
	for _, s := range spacing {
		if s <= 0 {
			return nil, fmt.Errorf("%w: 'spacing' must be all positive numbers", ErrInvalidArgument)
		}
	}
	extent := g.Extent()
	n := g.Clone()
	for i := range spacing {
		size := extent[i] / spacing[i]
		if g.size[i] > 0 && size < float64(minSize) {
			size = float64(minSize)
		}
		n.size[i] = size
		n.spacing[i] = spacing[i]
	}
	return n, nil
}

// Downsample returns a new grid with the size along the selected axes
// divided by two the given number of times; negative levels double
// instead. Axes whose size would fall below the minimum size are left
// unchanged without affecting the other axes.
func (g *Grid) Downsample(levels int, opts ...ResizeOption) (*Grid, error) {
	o, err := g.gatherResizeOptions(opts, 1)
	if err != nil {
		return nil, err
	}
	scale := math.Pow(2, float64(levels))
	size := append([]float64(nil), g.size...)
	for _, dim := range o.dims {
		reduced := g.size[dim] / scale
		if reduced >= float64(*o.minSize) {
			size[dim] = reduced
		}
	}
	return g.resize(size, *o.alignCorners)
}

// Upsample returns a new grid with the size along the selected axes
// doubled the given number of times; negative levels halve instead.
func (g *Grid) Upsample(levels int, opts ...ResizeOption) (*Grid, error) {
	o, err := g.gatherResizeOptions(opts, 1)
	if err != nil {
		return nil, err
	}
	scale := math.Pow(2, float64(levels))
	size := append([]float64(nil), g.size...)
	for _, dim := range o.dims {
		size[dim] *= scale
	}
	return g.resize(size, *o.alignCorners)
}

// Pyramid returns the sampling grids of a multi-resolution pyramid with
// the given number of levels. Level zero is the finest resolution. Sizes
// are chosen so that every level covers the same cube extent: the coarsest
// size is derived first, intermediate sizes are back-filled upward by
// doubling minus one and refined downward by halving, and any level that
// would fall below the minimum size keeps the previous level's size. The
// Aligned option overrides the grid's own policy for the whole derivation.
// Note that for border-aligned grids the finest level size itself may
// differ from the original grid size.
func (g *Grid) Pyramid(levels int, opts ...ResizeOption) (map[int]*Grid, error) {
	o, err := g.gatherResizeOptions(opts, 0)
	if err != nil {
		return nil, err
	}
	if levels < 0 {
		return nil, fmt.Errorf("%w: 'levels' must be non-negative", ErrInvalidArgument)
	}
	minSize := *o.minSize
	align := *o.alignCorners
	m := 0
	if align {
		for i := 0; i < levels; i++ {
			m += 1 << i
		}
	}
	sizes := make(map[int][]int, levels+1)
	for level := 0; level <= levels; level++ {
		sizes[level] = g.Size()
	}
	for _, dim := range o.dims {
		sizes[levels][dim] = int(0.5 + float64(sizes[levels][dim]+m)/float64(int(1)<<levels))
		for level := levels - 1; level >= 0; level-- {
			sizes[level][dim] = 2*sizes[level+1][dim] - 1
		}
		for level := 1; level <= levels; level++ {
			sizes[level][dim] = (sizes[level-1][dim] + 1) / 2
			if sizes[level][dim] < minSize {
				sizes[level][dim] = sizes[level-1][dim]
			}
		}
	}
	pyramid := make(map[int]*Grid, levels+1)
	for level, size := range sizes {
		resized, err := g.Resize(size, Aligned(align))
		if err != nil {
			return nil, err
		}
		pyramid[level] = resized
	}
	return pyramid, nil
}

type poolOptions struct {
	stride   []int
	padding  []int
	dilation []int
	ceilMode bool
}

// PoolOption configures Pool and AvgPool.
type PoolOption func(*poolOptions)

// Stride sets the stride of the pooling operation. Only the default
// stride equal to the kernel size is supported.
func Stride(stride ...int) PoolOption {
	return func(o *poolOptions) { o.stride = stride }
}

// Padding sets implicit zero padding on both sides of the input. Only zero
// padding is supported.
func Padding(padding ...int) PoolOption {
	return func(o *poolOptions) { o.padding = padding }
}

// Dilation sets the spacing between pooling kernel elements. Only a
// dilation of one is supported.
func Dilation(dilation ...int) PoolOption {
	return func(o *poolOptions) { o.dilation = dilation }
}

// CeilMode rounds the pooled output size up instead of down.
func CeilMode() PoolOption {
	return func(o *poolOptions) { o.ceilMode = true }
}

// Pool returns the grid describing the output of a pooling operation with
// the given per-axis kernel size. A single kernel value applies to all
// axes. The pooled grid has its origin at the world position of index
// (kernel-1)/2 and its spacing multiplied by the kernel size.
func (g *Grid) Pool(kernelSize []int, opts ...PoolOption) (*Grid, error) {
	var o poolOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.stride != nil {
		return nil, fmt.Errorf("%w: Pool() 'stride' currently not supported", ErrNotImplemented)
	}
	for _, p := range o.padding {
		if p != 0 {
			return nil, fmt.Errorf("%w: Pool() 'padding' currently not supported", ErrNotImplemented)
		}
	}
	for _, d := range o.dilation {
		if d != 1 {
			return nil, fmt.Errorf("%w: Pool() 'dilation' currently not supported", ErrNotImplemented)
		}
	}
	kernel, err := broadcastInts(kernelSize, g.Dim(), "kernelSize")
	if err != nil {
		return nil, err
	}
	d := g.Dim()
	size := make([]float64, d)
	spacing := make([]float64, d)
	halfIndex := make([]float64, d)
	rounded := g.sizeTensor()
	for i, k := range kernel {
		if k < 1 {
			return nil, fmt.Errorf("%w: 'kernelSize' must be positive", ErrInvalidArgument)
		}
		n := rounded[i] / float64(k)
		if o.ceilMode {
			n = math.Ceil(n)
		} else {
			n = math.Floor(n)
		}
		size[i] = n
		spacing[i] = float64(k) * g.spacing[i]
		halfIndex[i] = float64(k-1) / 2
	}
	origin := g.indexToWorldPoint(halfIndex)
	return newFromAttrs(size, spacing, nil, origin, g.FlatDirection(), g.alignCorners)
}

// AvgPool returns the grid describing the output of an average pooling
// operation; it is an alias for Pool.
func (g *Grid) AvgPool(kernelSize []int, opts ...PoolOption) (*Grid, error) {
	return g.Pool(kernelSize, opts...)
}
