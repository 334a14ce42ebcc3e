// Package topology builds the cell sets that mazes are carved from. Each
// topology decides how many neighbor slots a cell has, which cells exist, how
// they are laid out for display and which keys move along which slots.
package topology

import (
	"errors"
	"fmt"
	"strings"

	"mazerunner/pkg/engine/world"
)

var (
	// ErrUnknownTopology indicates a topology name that is not registered.
	ErrUnknownTopology = errors.New("topology: unknown topology")
	// ErrInvalidDimensions indicates a non-positive size parameter.
	ErrInvalidDimensions = errors.New("topology: dimensions must be positive")
)

// Topology produces fully-wired grids and describes them to renderers and
// input handling.
type Topology interface {
	// Name returns the registered name of this topology
	Name() string
	// Arity returns the number of neighbor slots per cell
	Arity() int
	// Generate builds a fresh, independent, fully-wired grid
	Generate() *world.Grid
	// DisplayWidth and DisplayHeight bound the layout, in cells
	DisplayWidth() float64
	DisplayHeight() float64
	// Is3D reports whether cells have a layer axis
	Is3D() bool
	// Layers returns the layer count, 1 for flat topologies
	Layers() int
	// DirectionForKey maps a key name to the slots it moves along, nil if unbound
	DirectionForKey(key string) world.Directions
	// TileKey selects a renderer tile from a cell's connection vector
	TileKey(connected []bool) int
	// DirectionName returns a human-friendly slot name
	DirectionName(d world.Direction) string
}

// Params selects and sizes a topology. Only the fields the chosen topology
// uses are read.
type Params struct {
	Name   string
	Rows   int
	Cols   int
	Layers int
	Size   int
}

// Available topology names
const (
	NameSquare     = "square"
	NameCubical    = "cubical"
	NameHexagonal  = "hexagonal"
	NameTriangular = "triangular"
)

// Names returns every registered topology name
func Names() []string {
	return []string{NameSquare, NameCubical, NameHexagonal, NameTriangular}
}

// New builds the topology described by p
func New(p Params) (Topology, error) {
	switch strings.ToLower(p.Name) {
	case NameSquare, "":
		if p.Rows <= 0 || p.Cols <= 0 {
			return nil, fmt.Errorf("%w: square %dx%d", ErrInvalidDimensions, p.Rows, p.Cols)
		}
		return NewSquare(p.Rows, p.Cols), nil
	case NameCubical, "cube", "3d":
		if p.Rows <= 0 || p.Cols <= 0 || p.Layers <= 0 {
			return nil, fmt.Errorf("%w: cubical %dx%dx%d", ErrInvalidDimensions, p.Rows, p.Cols, p.Layers)
		}
		return NewCubical(p.Rows, p.Cols, p.Layers), nil
	case NameHexagonal, "hex":
		if p.Size <= 0 {
			return nil, fmt.Errorf("%w: hexagonal size %d", ErrInvalidDimensions, p.Size)
		}
		return NewHexagonal(p.Size), nil
	case NameTriangular, "triangle", "tri":
		if p.Size <= 0 {
			return nil, fmt.Errorf("%w: triangular size %d", ErrInvalidDimensions, p.Size)
		}
		return NewTriangular(p.Size), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTopology, p.Name)
	}
}

// bit converts a flag into 0 or 1 for tile masks
func bit(b bool) int {
	if b {
		return 1
	}
	return 0
}

// slot returns v[i], or false if v is too short
func slot(v []bool, i int) bool {
	return i < len(v) && v[i]
}
