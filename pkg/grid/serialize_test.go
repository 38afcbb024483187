package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// TestFlattenRoundTrip verifies the attribute vector form in two and
// three dimensions
func TestFlattenRoundTrip(t *testing.T) {
	g := mustGrid(t, WithSize(4, 4), WithSpacing(2, 3), WithCenter(1, -1))

	attrs := g.Flatten()
	require.Len(t, attrs, 10)
	assert.Equal(t, []float64{4, 4, 2, 3, 1, -1, 1, 0, 0, 1}, attrs)

	back, err := FromFlat(attrs, false, g.AlignCorners())
	require.NoError(t, err)
	assert.True(t, g.Equal(back))

	g3 := mustGrid(t, WithSize(4, 5, 6), WithSpacing(1, 2, 3))
	attrs = g3.Flatten()
	require.Len(t, attrs, 18)
	back, err = FromFlat(attrs, false, g3.AlignCorners())
	require.NoError(t, err)
	assert.True(t, g3.Equal(back))
}

// TestFromFlatOrigin verifies the origin interpretation of the position
// block
func TestFromFlatOrigin(t *testing.T) {
	attrs := []float64{4, 4, 1, 1, 0, 0, 1, 0, 0, 1}

	g, err := FromFlat(attrs, true, true)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, g.Origin())
	assert.Equal(t, []float64{1.5, 1.5}, g.Center())

	g, err = FromFlat(attrs, false, true)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, g.Center())
}

// TestFromFlatDoesNotAlias verifies that the grid shares no state with
// the caller's attribute buffer
func TestFromFlatDoesNotAlias(t *testing.T) {
	attrs := []float64{4, 4, 1, 1, 0, 0, 1, 0, 0, 1}
	g, err := FromFlat(attrs, false, true)
	require.NoError(t, err)

	// Mutating the buffer after construction must not change the grid
	attrs[0] = 999
	assert.Equal(t, []int{4, 4}, g.Size())

	// Clamping a negative size must not write back into the buffer
	attrs = []float64{-3, 4, 1, 1, 0, 0, 1, 0, 0, 1}
	g, err = FromFlat(attrs, false, true)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 4}, g.Size())
	assert.Equal(t, -3.0, attrs[0])
}

// TestFromFlatValidation verifies the supported vector lengths
func TestFromFlatValidation(t *testing.T) {
	_, err := FromFlat(make([]float64, 9), false, true)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = FromFlat(nil, false, true)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

// TestFlattenPreservesRawSize verifies that the unrounded size survives a
// round trip through the vector form
func TestFlattenPreservesRawSize(t *testing.T) {
	g := mustGrid(t, WithSize(7, 7))
	d, err := g.Downsample(1)
	require.NoError(t, err)
	// The effective size rounds 3.5 up, the stored value stays fractional
	assert.Equal(t, []int{4, 4}, d.Size())

	back, err := FromFlat(d.Flatten(), false, d.AlignCorners())
	require.NoError(t, err)
	u, err := back.Upsample(1)
	require.NoError(t, err)
	assert.True(t, g.Equal(u))
}

// TestGridYAML verifies the YAML representation round trip
func TestGridYAML(t *testing.T) {
	g := mustGrid(t, WithSize(4, 4), WithSpacing(2, 3), WithCenter(1, -1),
		WithAlignCorners(false))

	data, err := yaml.Marshal(g)
	require.NoError(t, err)
	assert.Contains(t, string(data), "size:")
	assert.Contains(t, string(data), "align_corners: false")

	var back Grid
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.True(t, g.Equal(&back))
	assert.False(t, back.AlignCorners())
}

// TestGridYAMLDefaults verifies that omitted attributes take their
// defaults and a missing size is rejected
func TestGridYAMLDefaults(t *testing.T) {
	var g Grid
	require.NoError(t, yaml.Unmarshal([]byte("size: [4, 4]\n"), &g))
	assert.Equal(t, []int{4, 4}, g.Size())
	assert.Equal(t, []float64{1, 1}, g.Spacing())
	assert.Equal(t, []float64{0, 0}, g.Center())

	var bad Grid
	err := yaml.Unmarshal([]byte("spacing: [1, 1]\n"), &bad)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
