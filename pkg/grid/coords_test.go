package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAxisCoordsNormalized verifies the normalized coordinate ladders
// under both alignment conventions
func TestAxisCoordsNormalized(t *testing.T) {
	g := mustGrid(t, WithSize(5, 4))

	// Corner alignment spans the closed interval [-1, 1]
	got, err := g.AxisCoords(0)
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, -0.5, 0, 0.5, 1}, got)

	// Border alignment keeps half a cell of margin at either end
	got, err = g.AxisCoords(1, CoordsAligned(false))
	require.NoError(t, err)
	assert.Equal(t, []float64{-0.75, -0.25, 0.25, 0.75}, got)
}

// TestAxisCoordsIndices verifies the raw and centered index modes
func TestAxisCoordsIndices(t *testing.T) {
	g := mustGrid(t, WithSize(5, 5))

	got, err := g.AxisCoords(0, RawIndices())
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2, 3, 4}, got)

	got, err = g.AxisCoords(0, CenteredIndices())
	require.NoError(t, err)
	assert.Equal(t, []float64{-2, -1, 0, 1, 2}, got)
}

// TestAxisCoordsEdgeCases verifies single-point axes, negative dims, and
// the bounds check
func TestAxisCoordsEdgeCases(t *testing.T) {
	g := mustGrid(t, WithSize(1, 4))

	// A single point maps to coordinate zero in every mode
	got, err := g.AxisCoords(0)
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, got)
	got, err = g.AxisCoords(0, RawIndices())
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, got)

	// Negative dims count from the last axis
	last, err := g.AxisCoords(-1, RawIndices())
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2, 3}, last)

	_, err = g.AxisCoords(2)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = g.AxisCoords(-3)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

// TestCoordsOrder verifies the lattice traversal order and channel layout
func TestCoordsOrder(t *testing.T) {
	g := mustGrid(t, WithSize(2, 2))

	// The first axis varies fastest and channels are ordered (X, ...)
	got, err := g.Coords(RawIndices())
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, []float64{0, 0}, got[0])
	assert.Equal(t, []float64{1, 0}, got[1])
	assert.Equal(t, []float64{0, 1}, got[2])
	assert.Equal(t, []float64{1, 1}, got[3])

	// Flipped reverses the channel order, not the traversal
	got, err = g.Coords(RawIndices(), Flipped())
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, got[0])
	assert.Equal(t, []float64{0, 1}, got[1])
	assert.Equal(t, []float64{1, 0}, got[2])
}

// TestCoordsEmpty verifies that an empty axis yields an empty lattice
func TestCoordsEmpty(t *testing.T) {
	g := mustGrid(t, WithSize(4, 0))
	got, err := g.Coords()
	require.NoError(t, err)
	assert.Empty(t, got)
}

// TestPoints verifies the lattice positions in each coordinate space
func TestPoints(t *testing.T) {
	g := mustGrid(t, WithSize(2, 2))

	// Grid points are the raw indices
	pts, err := g.Points(AxesGrid)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, pts[0])
	assert.Equal(t, []float64{1, 1}, pts[3])

	// Cube points use the border-aligned convention
	pts, err = g.Points(AxesCube)
	require.NoError(t, err)
	assert.Equal(t, []float64{-0.5, -0.5}, pts[0])
	assert.Equal(t, []float64{0.5, 0.5}, pts[3])

	// World points honor spacing and center
	pts, err = g.Points(AxesWorld)
	require.NoError(t, err)
	assert.Equal(t, []float64{-0.5, -0.5}, pts[0])
	assert.Equal(t, []float64{0.5, -0.5}, pts[1])
	assert.Equal(t, []float64{-0.5, 0.5}, pts[2])
	assert.Equal(t, []float64{0.5, 0.5}, pts[3])
}

// TestPointsMatchIndexToWorld verifies that Points agrees with the
// transform of the raw index lattice
func TestPointsMatchIndexToWorld(t *testing.T) {
	g := mustGrid(t, WithSize(3, 2), WithSpacing(2, 3), WithCenter(1, -1))

	idx, err := g.Coords(RawIndices())
	require.NoError(t, err)
	want, err := g.IndexToWorld(idx)
	require.NoError(t, err)
	got, err := g.Points(AxesWorld)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
