package grid

import "errors"

// Sentinel errors for grid operations. All failures returned by this
// package wrap one of these so callers can classify them with errors.Is.
var (
	// ErrInvalidArgument indicates a malformed or inconsistent argument,
	// such as a non-positive spacing or a direction matrix that is not a
	// valid rotation.
	ErrInvalidArgument = errors.New("grid: invalid argument")
	// ErrNotImplemented indicates an unsupported operation, such as an axes
	// pair not covered by the transform algebra or a pooling stride.
	ErrNotImplemented = errors.New("grid: not implemented")
	// ErrDimMismatch indicates two grids with different numbers of spatial
	// dimensions were combined in a cross-grid transform.
	ErrDimMismatch = errors.New("grid: dimension mismatch")
)
