// Package world provides the maze graph primitives: cells, their neighbor
// slots and carved passages, and the grid that owns one generation of cells.
package world

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// Coord identifies a cell. Layer is 0 for flat topologies.
type Coord struct {
	Row   int
	Col   int
	Layer int
}

// String returns "row:col" or "row:col:layer"
func (c Coord) String() string {
	if c.Layer == 0 {
		return fmt.Sprintf("%d:%d", c.Row, c.Col)
	}
	return fmt.Sprintf("%d:%d:%d", c.Row, c.Col, c.Layer)
}

// Position is where a renderer should draw a cell. Units are cells.
type Position struct {
	X     float64
	Y     float64
	Layer int
}

// CellSet is a set of cells
type CellSet = mapset.Set[*Cell]

// Cell is a single maze vertex.
type Cell struct {
	// ID is unique within a grid
	ID Coord
	// Index is the position of the cell in generation order
	Index int
	// Pos is the display position
	Pos Position

	neighbors   []*Cell
	connections CellSet
}

// NewCell creates a cell with no neighbors
func NewCell(id Coord, pos Position) *Cell {
	return &Cell{
		ID:          id,
		Pos:         pos,
		connections: mapset.New[*Cell](),
	}
}

// SetNeighbors wires the cell's potential neighbor slots. A nil entry means
// there is no cell in that direction. Any existing connections are dropped.
func (c *Cell) SetNeighbors(neighbors []*Cell) {
	c.neighbors = make([]*Cell, len(neighbors))
	copy(c.neighbors, neighbors)
	c.connections = mapset.New[*Cell]()
}

// Arity returns the number of neighbor slots
func (c *Cell) Arity() int {
	return len(c.neighbors)
}

// Neighbor returns the potential neighbor in slot d, or nil at a boundary.
// Panics if d is out of range.
func (c *Cell) Neighbor(d Direction) *Cell {
	if !d.IsValid(len(c.neighbors)) {
		panic(fmt.Sprintf("world: direction %d out of range for cell %v (arity %d)", int(d), c.ID, len(c.neighbors)))
	}
	return c.neighbors[d]
}

// NeighborAt is Neighbor with an error instead of a panic
func (c *Cell) NeighborAt(d Direction) (*Cell, error) {
	if !d.IsValid(len(c.neighbors)) {
		return nil, fmt.Errorf("%w: %d (arity %d)", ErrInvalidDirection, int(d), len(c.neighbors))
	}
	return c.neighbors[d], nil
}

// DirectionTo returns the slot holding other, or NoDirection
func (c *Cell) DirectionTo(other *Cell) Direction {
	if other == nil {
		return NoDirection
	}
	for i, n := range c.neighbors {
		if n == other {
			return Direction(i)
		}
	}
	return NoDirection
}

// HasNeighbor returns true if other occupies one of this cell's slots
func (c *Cell) HasNeighbor(other *Cell) bool {
	return c.DirectionTo(other) != NoDirection
}

// ConnectTo opens a passage between c and other. Both cells must list each
// other as potential neighbors. Connecting an already connected pair is a no-op.
func (c *Cell) ConnectTo(other *Cell) error {
	if other == nil || !c.HasNeighbor(other) || !other.HasNeighbor(c) {
		return fmt.Errorf("%w: %v and %v", ErrIncompatibleCells, c, other)
	}
	c.connections.Put(other)
	other.connections.Put(c)
	return nil
}

// IsConnectedTo returns true if there is an open passage to other
func (c *Cell) IsConnectedTo(other *Cell) bool {
	if other == nil {
		return false
	}
	return c.connections.Has(other)
}

// IsConnectedIn returns true if the passage in slot d is open.
// Panics if d is out of range.
func (c *Cell) IsConnectedIn(d Direction) bool {
	return c.IsConnectedTo(c.Neighbor(d))
}

// IsConnectedAt is IsConnectedIn with an error instead of a panic
func (c *Cell) IsConnectedAt(d Direction) (bool, error) {
	n, err := c.NeighborAt(d)
	if err != nil {
		return false, err
	}
	return c.IsConnectedTo(n), nil
}

// ConnectionCount returns the number of open passages
func (c *Cell) ConnectionCount() int {
	return c.connections.Size()
}

// LiveNeighbors returns all non-nil potential neighbors in slot order
func (c *Cell) LiveNeighbors() []*Cell {
	var neighbors []*Cell
	for _, n := range c.neighbors {
		if n != nil {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}

// ConnectedNeighbors returns the live neighbors with an open passage, in slot order
func (c *Cell) ConnectedNeighbors() []*Cell {
	var neighbors []*Cell
	for _, n := range c.neighbors {
		if n != nil && c.connections.Has(n) {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}

// DisconnectedNeighbors returns the live neighbors still walled off, in slot order
func (c *Cell) DisconnectedNeighbors() []*Cell {
	var neighbors []*Cell
	for _, n := range c.neighbors {
		if n != nil && !c.connections.Has(n) {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}

// ConnectionVector reports, per slot, whether the passage is open. Renderers
// feed this to the topology's tile selector.
func (c *Cell) ConnectionVector() []bool {
	vec := make([]bool, len(c.neighbors))
	for i, n := range c.neighbors {
		vec[i] = n != nil && c.connections.Has(n)
	}
	return vec
}

// String returns a short description for debugging
func (c *Cell) String() string {
	if c == nil {
		return "Cell{nil}"
	}
	return fmt.Sprintf("Cell{%v}", c.ID)
}
