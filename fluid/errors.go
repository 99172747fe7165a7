package fluid

import "errors"

var (
	//ErrInvalidDimensions - lattice extents too small for a distribution field
	ErrInvalidDimensions = errors.New("fluid: lattice must be at least 2x1 cells")
	//ErrUnstable - non-finite or non-positive macroscopic quantities detected
	ErrUnstable = errors.New("fluid: numerical instability (non-finite velocity or non-positive density)")
	//ErrIndexRange - cell outside the field
	ErrIndexRange = errors.New("fluid: index out of range")
)
