package geometry

import "errors"

var (
	//ErrEmptyLattice - lattice must have at least one column and one row
	ErrEmptyLattice = errors.New("geometry: lattice dimensions must be positive")
	//ErrBadRadius - obstacle radius must be positive
	ErrBadRadius = errors.New("geometry: radius must be positive")
	//ErrUnknownShape - shape name not recognised
	ErrUnknownShape = errors.New("geometry: unknown obstacle shape")
)
