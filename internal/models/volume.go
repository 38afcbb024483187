package models

// VolumeHeader carries the sampling geometry of a volumetric image as
// read from or written to an image file header. Spacing and direction
// are optional; readers leave them nil when the source format does not
// record them.
type VolumeHeader struct {
	// Size is the number of samples per axis, fastest axis first
	Size []int `yaml:"size"`

	// Origin is the world position of the first grid point
	Origin []float64 `yaml:"origin,omitempty"`

	// Spacing is the physical distance between adjacent samples
	Spacing []float64 `yaml:"spacing,omitempty"`

	// Direction is the row-major matrix of axis direction cosines
	Direction []float64 `yaml:"direction,omitempty"`
}

// GridSize returns the number of samples per axis.
func (h VolumeHeader) GridSize() []int { return h.Size }

// GridOrigin returns the world position of the first sample.
func (h VolumeHeader) GridOrigin() []float64 { return h.Origin }

// GridSpacing returns the distance between adjacent samples.
func (h VolumeHeader) GridSpacing() []float64 { return h.Spacing }

// GridDirection returns the row-major direction cosine matrix.
func (h VolumeHeader) GridDirection() []float64 { return h.Direction }
