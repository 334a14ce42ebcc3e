package world

import "errors"

var (
	// ErrIncompatibleCells indicates two cells that are not mutual potential neighbors.
	ErrIncompatibleCells = errors.New("world: connecting two incompatible cells")
	// ErrInvalidDirection indicates a slot index outside the topology's arity.
	ErrInvalidDirection = errors.New("world: direction out of range")
)
