package grid

import (
	"fmt"
)

// Crop returns a new grid with the given symmetric margin of points
// removed at both borders of each axis; negative margins add points. A
// single margin applies to all axes. Spacing is unchanged, so the extent
// of the result differs from the original, and the size never drops below
// one.
func (g *Grid) Crop(margin ...int) (*Grid, error) {
	m, err := broadcastInts(margin, g.Dim(), "margin")
	if err != nil {
		return nil, err
	}
	num := make([]int, 0, 2*len(m))
	for _, n := range m {
		num = append(num, n, n)
	}
	return g.cropBorders(num)
}

// CropBorders removes points at individual grid borders. The counts are
// ordered fastest axis first with two entries per axis, (x_low, x_high,
// y_low, y_high, ...); a single value applies to every border and a
// shorter even-length list leaves the remaining borders untouched.
// Negative counts add points.
func (g *Grid) CropBorders(num ...int) (*Grid, error) {
	n, err := g.borderCounts(num)
	if err != nil {
		return nil, err
	}
	return g.cropBorders(n)
}

// Pad returns a new grid with the given symmetric margin of points added
// at both borders of each axis; negative margins remove points.
func (g *Grid) Pad(margin ...int) (*Grid, error) {
	m, err := broadcastInts(margin, g.Dim(), "margin")
	if err != nil {
		return nil, err
	}
	num := make([]int, 0, 2*len(m))
	for _, n := range m {
		num = append(num, n, n)
	}
	return g.padBorders(num)
}

// PadBorders adds points at individual grid borders, with the same count
// ordering as CropBorders. Negative counts remove points.
func (g *Grid) PadBorders(num ...int) (*Grid, error) {
	n, err := g.borderCounts(num)
	if err != nil {
		return nil, err
	}
	return g.padBorders(n)
}

// borderCounts normalizes a per-border count list: a single value is
// broadcast to every border, an even-length list is zero-padded to 2*D.
func (g *Grid) borderCounts(num []int) ([]int, error) {
	d := g.Dim()
	if len(num) == 1 {
		out := make([]int, 2*d)
		for i := range out {
			out[i] = num[0]
		}
		return out, nil
	}
	if len(num)%2 != 0 || len(num) > 2*d {
		return nil, fmt.Errorf("%w: 'num' must be a single value or have even length up to %d", ErrInvalidArgument, 2*d)
	}
	out := make([]int, 2*d)
	copy(out, num)
	return out, nil
}

// padBorders is Crop with negated counts; the two operations are exact
// inverses of each other up to the size floor of one.
func (g *Grid) padBorders(num []int) (*Grid, error) {
	neg := make([]int, len(num))
	for i, n := range num {
		neg[i] = -n
	}
	return g.cropBorders(neg)
}

func (g *Grid) cropBorders(num []int) (*Grid, error) {
	all0 := true
	for _, n := range num {
		if n != 0 {
			all0 = false
			break
		}
	}
	if all0 {
		return g, nil
	}
	d := g.Dim()
	size := make([]float64, d)
	lower := make([]float64, d)
	for i := 0; i < d; i++ {
		low, high := num[2*i], num[2*i+1]
		n := g.size[i] - float64(low) - float64(high)
		if n < 1 {
			n = 1
		}
		if g.size[i] <= 0 {
			n = g.size[i]
		}
		size[i] = n
		lower[i] = float64(low)
	}
	origin := g.indexToWorldPoint(lower)
	return newFromAttrs(size, g.Spacing(), nil, origin, g.FlatDirection(), g.alignCorners)
}

// CenterCrop shrinks each axis to at most the given size, keeping the grid
// centered. A single value applies to all axes.
func (g *Grid) CenterCrop(size ...int) (*Grid, error) {
	want, err := broadcastInts(size, g.Dim(), "size")
	if err != nil {
		return nil, err
	}
	cur := g.Size()
	newSize := make([]float64, g.Dim())
	start := make([]float64, g.Dim())
	for i, n := range want {
		if n < 0 {
			return nil, fmt.Errorf("%w: 'size' must be all non-negative numbers", ErrInvalidArgument)
		}
		if n > cur[i] {
			n = cur[i]
		}
		newSize[i] = float64(n)
		start[i] = float64((cur[i] - n) / 2)
	}
	origin := g.indexToWorldPoint(start)
	return newFromAttrs(newSize, g.Spacing(), nil, origin, g.FlatDirection(), g.alignCorners)
}

// CenterPad grows each axis to at least the given size, keeping the grid
// centered. A single value applies to all axes.
func (g *Grid) CenterPad(size ...int) (*Grid, error) {
	want, err := broadcastInts(size, g.Dim(), "size")
	if err != nil {
		return nil, err
	}
	cur := g.Size()
	newSize := make([]float64, g.Dim())
	start := make([]float64, g.Dim())
	for i, n := range want {
		if n < 0 {
			return nil, fmt.Errorf("%w: 'size' must be all non-negative numbers", ErrInvalidArgument)
		}
		if n < cur[i] {
			n = cur[i]
		}
		newSize[i] = float64(n)
		start[i] = -float64((n - cur[i]) / 2)
	}
	origin := g.indexToWorldPoint(start)
	return newFromAttrs(newSize, g.Spacing(), nil, origin, g.FlatDirection(), g.alignCorners)
}

// Narrow returns a new grid restricted to length points along one axis,
// starting at the given index. The other axes are unchanged.
func (g *Grid) Narrow(dim, start, length int) (*Grid, error) {
	d := g.Dim()
	if dim < 0 || dim >= d {
		return nil, fmt.Errorf("%w: 'dim' must be in [0, %d)", ErrInvalidArgument, d)
	}
	if length < 0 {
		return nil, fmt.Errorf("%w: 'length' must be non-negative", ErrInvalidArgument)
	}
	size := append([]float64(nil), g.size...)
	size[dim] = float64(length)
	offset := make([]float64, d)
	offset[dim] = float64(start)
	origin := g.indexToWorldPoint(offset)
	return newFromAttrs(size, g.Spacing(), nil, origin, g.FlatDirection(), g.alignCorners)
}

// RegionOfInterest returns the sub-grid starting at the given index with
// the given size per axis, as a crop with per-border counts derived from
// the start offsets and the remainder beyond start+size.
func (g *Grid) RegionOfInterest(start, size []int) (*Grid, error) {
	d := g.Dim()
	s, err := broadcastInts(start, d, "start")
	if err != nil {
		return nil, err
	}
	n, err := broadcastInts(size, d, "size")
	if err != nil {
		return nil, err
	}
	cur := g.Size()
	num := make([]int, 0, 2*d)
	for i := 0; i < d; i++ {
		num = append(num, s[i], cur[i]-(s[i]+n[i]))
	}
	return g.CropBorders(num...)
}
