package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCrop verifies symmetric margin removal
func TestCrop(t *testing.T) {
	g := mustGrid(t, WithSize(4, 4))

	c, err := g.Crop(1)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, c.Size())
	assert.Equal(t, []float64{-0.5, -0.5}, c.Origin())
	assert.Equal(t, g.Center(), c.Center())
	assert.Equal(t, g.Spacing(), c.Spacing())

	// A zero margin returns the grid itself
	c, err = g.Crop(0)
	require.NoError(t, err)
	assert.Same(t, g, c)

	// A negative margin pads instead
	c, err = g.Crop(-1)
	require.NoError(t, err)
	assert.Equal(t, []int{6, 6}, c.Size())
	assert.Equal(t, []float64{-2.5, -2.5}, c.Origin())
}

// TestCropFloor verifies that the size never drops below one
func TestCropFloor(t *testing.T) {
	g := mustGrid(t, WithSize(4, 4))

	c, err := g.Crop(3)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1}, c.Size())
}

// TestCropBorders verifies per-border counts in (x_low, x_high, ...) order
func TestCropBorders(t *testing.T) {
	g := mustGrid(t, WithSize(4, 4))

	c, err := g.CropBorders(1, 0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, c.Size())
	assert.Equal(t, []float64{-0.5, -1.5}, c.Origin())

	// A single count applies to every border
	c, err = g.CropBorders(1)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, c.Size())

	// A shorter even-length list leaves the remaining borders untouched
	c, err = g.CropBorders(1, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, c.Size())

	// Odd-length and oversized lists are rejected
	_, err = g.CropBorders(1, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = g.CropBorders(1, 0, 0, 0, 1, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

// TestPadInverse verifies that Pad undoes Crop and vice versa
func TestPadInverse(t *testing.T) {
	g := mustGrid(t, WithSize(8, 6), WithSpacing(2, 3), WithCenter(1, -1))

	c, err := g.Crop(2)
	require.NoError(t, err)
	p, err := c.Pad(2)
	require.NoError(t, err)
	assert.True(t, g.Equal(p))

	b, err := g.PadBorders(1, 2, 3, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{11, 13}, b.Size())
	back, err := b.CropBorders(1, 2, 3, 4)
	require.NoError(t, err)
	assert.True(t, g.Equal(back))
}

// TestCropZeroSizeAxis verifies that empty axes stay empty
func TestCropZeroSizeAxis(t *testing.T) {
	g := mustGrid(t, WithSize(4, 0))

	c, err := g.Crop(1)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0}, c.Size())
}

// TestCenterCrop verifies centered shrinking
func TestCenterCrop(t *testing.T) {
	g := mustGrid(t, WithSize(4, 4))

	c, err := g.CenterCrop(2)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, c.Size())
	assert.Equal(t, []float64{-0.5, -0.5}, c.Origin())

	// Requests beyond the current size are clamped
	c, err = g.CenterCrop(2, 8)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, c.Size())

	_, err = g.CenterCrop(-1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

// TestCenterPad verifies centered growing
func TestCenterPad(t *testing.T) {
	g := mustGrid(t, WithSize(4, 4))

	p, err := g.CenterPad(6)
	require.NoError(t, err)
	assert.Equal(t, []int{6, 6}, p.Size())
	assert.Equal(t, []float64{-2.5, -2.5}, p.Origin())
	assert.Equal(t, g.Center(), p.Center())

	// Requests below the current size are clamped
	p, err = g.CenterPad(2, 6)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 6}, p.Size())
}

// TestNarrow verifies single-axis restriction
func TestNarrow(t *testing.T) {
	g := mustGrid(t, WithSize(4, 4))

	n, err := g.Narrow(0, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, n.Size())
	assert.Equal(t, []float64{-0.5, -1.5}, n.Origin())

	_, err = g.Narrow(2, 0, 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = g.Narrow(0, 0, -1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

// TestRegionOfInterest verifies the start/size sub-grid selection
func TestRegionOfInterest(t *testing.T) {
	g := mustGrid(t, WithSize(4, 4))

	r, err := g.RegionOfInterest([]int{1, 1}, []int{2, 2})
	require.NoError(t, err)
	c, err := g.Crop(1)
	require.NoError(t, err)
	assert.True(t, r.Equal(c))

	r, err = g.RegionOfInterest([]int{0, 2}, []int{4, 2})
	require.NoError(t, err)
	assert.Equal(t, []int{4, 2}, r.Size())
	assert.Equal(t, []float64{-1.5, 0.5}, r.Origin())
}
