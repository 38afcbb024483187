package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// TestNewDefaults verifies the default spacing, center, and direction
func TestNewDefaults(t *testing.T) {
	g, err := New(WithSize(4, 4))
	require.NoError(t, err)

	assert.Equal(t, 2, g.Dim())
	assert.Equal(t, []int{4, 4}, g.Size())
	assert.Equal(t, []int{4, 4}, g.Shape())
	assert.Equal(t, 16, g.Numel())
	assert.Equal(t, []float64{1, 1}, g.Spacing())
	assert.Equal(t, []float64{0, 0}, g.Center())
	assert.True(t, g.AlignCorners())

	dir := g.Direction()
	assert.Equal(t, 1.0, dir.At(0, 0))
	assert.Equal(t, 0.0, dir.At(0, 1))
	assert.Equal(t, []float64{1, 0, 0, 1}, g.FlatDirection())
}

// TestNewOriginPlacement verifies the origin and center derivations
func TestNewOriginPlacement(t *testing.T) {
	// Centered at zero, the first point of a 4x4 unit grid is at -1.5
	g, err := New(WithSize(4, 4))
	require.NoError(t, err)
	assert.Equal(t, []float64{-1.5, -1.5}, g.Origin())

	// Constructing from the origin recovers the center
	g, err = New(WithSize(4, 4), WithOrigin(-1.5, -1.5))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, g.Center())

	// Consistent center and origin are accepted together
	_, err = New(WithSize(4, 4), WithCenter(0, 0), WithOrigin(-1.5, -1.5))
	assert.NoError(t, err)

	// Inconsistent center and origin are rejected
	_, err = New(WithSize(4, 4), WithCenter(0, 0), WithOrigin(0, 0))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

// TestNewSizeShape verifies the reverse-order relationship of size and shape
func TestNewSizeShape(t *testing.T) {
	g, err := New(WithShape(2, 3))
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, g.Size())
	assert.Equal(t, []int{2, 3}, g.Shape())

	g, err = FromShape(2, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, g.Size())

	// Matching size and shape are accepted together
	_, err = New(WithSize(3, 2), WithShape(2, 3))
	assert.NoError(t, err)

	// Mismatched size and shape are rejected
	_, err = New(WithSize(3, 2), WithShape(3, 2))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// One of size or shape is required
	_, err = New()
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

// TestScalarBroadcast verifies that single attribute values apply to all axes
func TestScalarBroadcast(t *testing.T) {
	g, err := New(WithSize(4, 4, 4), WithSpacing(2), WithCenter(5))
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 2, 2}, g.Spacing())
	assert.Equal(t, []float64{5, 5, 5}, g.Center())

	_, err = New(WithSize(4, 4, 4), WithSpacing(1, 2))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

// TestSetters verifies the in-place attribute mutators and their validation
func TestSetters(t *testing.T) {
	g, err := New(WithSize(4, 4))
	require.NoError(t, err)

	require.NoError(t, g.SetSpacing(2))
	assert.Equal(t, []float64{2, 2}, g.Spacing())
	assert.ErrorIs(t, g.SetSpacing(0), ErrInvalidArgument)
	assert.ErrorIs(t, g.SetSpacing(-1), ErrInvalidArgument)

	require.NoError(t, g.SetCenter(1, 2))
	assert.Equal(t, []float64{1, 2}, g.Center())

	require.NoError(t, g.SetOrigin(0, 0))
	assert.Equal(t, []float64{0, 0}, g.Origin())
	assert.Equal(t, []float64{3, 3}, g.Center())

	// A 90 degree rotation is a valid direction
	require.NoError(t, g.SetDirection(0, -1, 1, 0))
	// A scaling matrix is not
	assert.ErrorIs(t, g.SetDirection(2, 0, 0, 2), ErrInvalidArgument)
	// Wrong element count
	assert.ErrorIs(t, g.SetDirection(1, 0, 0), ErrInvalidArgument)
}

// TestExtent verifies the physical extent computations for both alignments
func TestExtent(t *testing.T) {
	g, err := New(WithSize(4, 4))
	require.NoError(t, err)

	assert.Equal(t, []float64{4, 4}, g.Extent())
	assert.Equal(t, []float64{3, 3}, g.CubeExtent())

	g.SetAlignCorners(false)
	assert.Equal(t, []float64{4, 4}, g.CubeExtent())

	require.NoError(t, g.SetSpacing(2, 3))
	assert.Equal(t, []float64{8, 12}, g.Extent())
}

// TestAffine verifies that the forward and inverse linear maps cancel
func TestAffine(t *testing.T) {
	g, err := New(WithSize(4, 4), WithSpacing(2, 3), WithDirection(0, -1, 1, 0))
	require.NoError(t, err)

	var prod mat.Dense
	prod.Mul(g.Affine(), g.InverseAffine())
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			assert.InDelta(t, want, prod.At(i, j), 1e-12)
		}
	}
}

// TestDerive verifies copy-with-changes semantics
func TestDerive(t *testing.T) {
	g, err := New(WithSize(4, 4))
	require.NoError(t, err)

	d, err := g.Derive(WithSpacing(2), WithCenter(1, 1))
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 2}, d.Spacing())
	assert.Equal(t, []float64{1, 1}, d.Center())
	// The receiver is untouched
	assert.Equal(t, []float64{1, 1}, g.Spacing())

	// Size-changing options are rejected
	_, err = g.Derive(WithSize(8, 8))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// Center and origin cannot both be given
	_, err = g.Derive(WithCenter(0, 0), WithOrigin(0, 0))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// Deriving with an origin resolves it against the new spacing
	d, err = g.Derive(WithSpacing(2), WithOrigin(0, 0))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, d.Origin())
	assert.Equal(t, []float64{3, 3}, d.Center())
}

// TestClone verifies that clones share no state with the receiver
func TestClone(t *testing.T) {
	g, err := New(WithSize(4, 4), WithSpacing(2), WithCenter(1, 1))
	require.NoError(t, err)

	c := g.Clone()
	assert.True(t, g.Equal(c))

	require.NoError(t, c.SetSpacing(3))
	require.NoError(t, c.SetDirection(0, -1, 1, 0))
	assert.Equal(t, []float64{2, 2}, g.Spacing())
	assert.Equal(t, 1.0, g.Direction().At(0, 0))
}

// TestEqual verifies approximate equality and that the alignment policy
// does not participate in it
func TestEqual(t *testing.T) {
	a, err := New(WithSize(4, 4), WithSpacing(2))
	require.NoError(t, err)
	b, err := New(WithSize(4, 4), WithSpacing(2.0000001), WithAlignCorners(false))
	require.NoError(t, err)
	c, err := New(WithSize(4, 4), WithSpacing(3))
	require.NoError(t, err)
	d, err := New(WithSize(4, 4, 4), WithSpacing(2))
	require.NoError(t, err)

	assert.True(t, a.Equal(a))
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(d))
	assert.False(t, a.Equal(nil))
}

// TestDomain verifies the cube domain of a grid and SameDomainAs
func TestDomain(t *testing.T) {
	g, err := New(WithSize(4, 4))
	require.NoError(t, err)

	c, err := g.Domain()
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 3}, c.Extent())
	assert.Equal(t, []float64{0, 0}, c.Center())

	// A resized grid covers the same domain
	r, err := g.Resize([]int{7, 7})
	require.NoError(t, err)
	assert.True(t, g.SameDomainAs(r))

	// A shifted grid does not
	s, err := g.Derive(WithCenter(1, 0))
	require.NoError(t, err)
	assert.False(t, g.SameDomainAs(s))
}

// TestZeroSizeAxis verifies the handling of empty dimensions
func TestZeroSizeAxis(t *testing.T) {
	g, err := New(WithSize(4, 0))
	require.NoError(t, err)

	assert.Equal(t, []int{4, 0}, g.Size())
	assert.Equal(t, 0, g.Numel())
	assert.Equal(t, []float64{4, 0}, g.Extent())
	// The center offset of an empty axis is zero, so origin equals center
	assert.Equal(t, []float64{-1.5, 0}, g.Origin())
}

// TestString verifies the human readable form mentions all attributes
func TestString(t *testing.T) {
	g, err := New(WithSize(4, 4))
	require.NoError(t, err)

	s := g.String()
	assert.Contains(t, s, "Grid(size=(4.00, 4.00)")
	assert.Contains(t, s, "origin=(-1.50000, -1.50000)")
	assert.Contains(t, s, "spacing=(1.00000, 1.00000)")
	assert.Contains(t, s, "align_corners=true")
}
