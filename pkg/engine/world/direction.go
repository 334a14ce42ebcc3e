package world

import "fmt"

// Direction is an index into a cell's neighbor slots. The meaning of each
// index is defined by the topology that wired the cell; every topology pairs
// slots so that 0/1, 2/3 and 4/5 are opposites.
type Direction int

// NoDirection is returned where no slot applies
const NoDirection Direction = -1

// Directions is a small ordered list of slots tried in turn, e.g. "up"
// meaning either vertical direction in a layered maze.
type Directions []Direction

// Dirs builds a Directions list
func Dirs(d ...Direction) Directions {
	return Directions(d)
}

// Opposite returns the slot pointing back the way d came
func (d Direction) Opposite() Direction {
	if d < 0 {
		return d
	}
	return d ^ 1
}

// IsValid returns true if d addresses one of arity slots
func (d Direction) IsValid(arity int) bool {
	return d >= 0 && int(d) < arity
}

// String returns the string representation of a direction
func (d Direction) String() string {
	if d < 0 {
		return "None"
	}
	return fmt.Sprintf("Slot%d", int(d))
}

// Validate returns ErrInvalidDirection if any entry is out of range for arity
func (ds Directions) Validate(arity int) error {
	for _, d := range ds {
		if !d.IsValid(arity) {
			return fmt.Errorf("%w: %d (arity %d)", ErrInvalidDirection, int(d), arity)
		}
	}
	return nil
}
