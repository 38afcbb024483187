// Package grid implements an oriented, regularly spaced N-dimensional
// sampling grid for volumetric image data, together with the affine
// transform algebra relating its four coordinate spaces: continuous grid
// indices, the normalized unit cube (border- or corner-aligned), and
// physical world coordinates.
//
// A Grid stores its size, spacing, center point, and direction cosines, and
// derives the origin, extent, and the affine maps between coordinate
// spaces. Storing the center point instead of the origin keeps resizing and
// resampling operations simple: they hold the center fixed and recompute
// spacing so that either the grid origin (corner alignment) or the total
// extent (border alignment) is preserved.
//
// Grids are immutable by convention: derivation methods such as Resize,
// Crop, or Downsample return new instances and never mutate their receiver.
// The grid size is stored as floating point values so that repeated
// Downsample/Upsample round trips reproduce the original grid exactly even
// when sizes are not powers of two.
package grid
