package topology

import (
	"strings"

	"mazerunner/pkg/engine/world"
)

// Square grid slots. The row axis runs along the display X axis.
const (
	SquareLeft world.Direction = iota
	SquareRight
	SquareUp
	SquareDown
)

// planarOffsets are shared by square and cubical grids
var planarOffsets = []world.Coord{
	{Row: -1},
	{Row: 1},
	{Col: -1},
	{Col: 1},
}

var squareNames = []string{"Left", "Right", "Up", "Down"}

// Square is a rows × cols grid with four slots per cell
type Square struct {
	rows int
	cols int
}

// NewSquare creates a square topology
func NewSquare(rows, cols int) *Square {
	return &Square{rows: rows, cols: cols}
}

// Rows returns the number of rows
func (s *Square) Rows() int { return s.rows }

// Cols returns the number of columns
func (s *Square) Cols() int { return s.cols }

func (s *Square) Name() string { return NameSquare }

func (s *Square) Arity() int { return 4 }

// Generate builds the grid in row-major order
func (s *Square) Generate() *world.Grid {
	g := world.NewGrid(s.Arity())
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			g.Add(world.Coord{Row: row, Col: col}, world.Position{X: float64(row), Y: float64(col)})
		}
	}
	g.Wire(planarOffsets, nil)
	return g
}

func (s *Square) DisplayWidth() float64 { return float64(s.rows) }

func (s *Square) DisplayHeight() float64 { return float64(s.cols) }

func (s *Square) Is3D() bool { return false }

func (s *Square) Layers() int { return 1 }

func (s *Square) DirectionForKey(key string) world.Directions {
	return planarDirectionForKey(key)
}

// TileKey packs the four slots into a 4-bit mask: left, right, up, down
func (s *Square) TileKey(connected []bool) int {
	return planarMask(connected)
}

func (s *Square) DirectionName(d world.Direction) string {
	if !d.IsValid(s.Arity()) {
		return d.String()
	}
	return squareNames[d]
}

func planarDirectionForKey(key string) world.Directions {
	switch strings.ToLower(key) {
	case "a":
		return world.Dirs(SquareLeft)
	case "d":
		return world.Dirs(SquareRight)
	case "w":
		return world.Dirs(SquareUp)
	case "s":
		return world.Dirs(SquareDown)
	}
	return nil
}

func planarMask(connected []bool) int {
	return bit(slot(connected, 0)) |
		bit(slot(connected, 1))<<1 |
		bit(slot(connected, 2))<<2 |
		bit(slot(connected, 3))<<3
}
