package grid

// Header describes the sampling geometry stored alongside a volumetric
// image, as found in most medical image file formats. Spacing and
// direction may return nil when the format does not record them.
type Header interface {
	GridSize() []int
	GridOrigin() []float64
	GridSpacing() []float64
	GridDirection() []float64
}

// FromHeader constructs a grid from an image header. Headers store their
// placement as the origin, so a missing origin defaults to zero; missing
// spacing defaults to one and a missing direction to the identity.
func FromHeader(h Header, alignCorners bool) (*Grid, error) {
	hs := h.GridSize()
	size := make([]float64, len(hs))
	for i, n := range hs {
		size[i] = float64(n)
	}
	origin := h.GridOrigin()
	if len(origin) == 0 {
		origin = []float64{0}
	}
	return newFromAttrs(size, h.GridSpacing(), nil, origin, h.GridDirection(), alignCorners)
}
