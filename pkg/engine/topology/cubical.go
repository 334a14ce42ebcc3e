package topology

import (
	"mazerunner/pkg/engine/world"
)

// Vertical slots of a cubical grid, after the four planar ones
const (
	CubicalAscend  world.Direction = 4 // towards layer-1
	CubicalDescend world.Direction = 5 // towards layer+1
)

var cubicalOffsets = append(append([]world.Coord{}, planarOffsets...),
	world.Coord{Layer: -1},
	world.Coord{Layer: 1},
)

var cubicalNames = []string{"Left", "Right", "Up", "Down", "Ascend", "Descend"}

// Tile bits set on top of the planar mask when a cell has open stairs
const (
	TileStairsUp   = 1 << 4
	TileStairsDown = 1 << 5
)

// Cubical stacks square grids into layers. Not every cell links to the layers
// around it: a cell only has its layer-1 slot when (row^col^layer) is even,
// and only its layer+1 slot when it is odd. That checkerboard halves vertical
// connectivity so mazes can't be solved by tunnelling straight down.
type Cubical struct {
	rows   int
	cols   int
	layers int
}

// NewCubical creates a layered topology
func NewCubical(rows, cols, layers int) *Cubical {
	return &Cubical{rows: rows, cols: cols, layers: layers}
}

func (c *Cubical) Name() string { return NameCubical }

func (c *Cubical) Arity() int { return 6 }

// Generate builds the grid with layer as the innermost loop
func (c *Cubical) Generate() *world.Grid {
	g := world.NewGrid(c.Arity())
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			for layer := 0; layer < c.layers; layer++ {
				g.Add(world.Coord{Row: row, Col: col, Layer: layer},
					world.Position{X: float64(row), Y: float64(col), Layer: layer})
			}
		}
	}
	g.Wire(cubicalOffsets, func(cell *world.Cell, d world.Direction) bool {
		switch d {
		case CubicalAscend:
			return evenParity(cell.ID)
		case CubicalDescend:
			return !evenParity(cell.ID)
		}
		return true
	})
	return g
}

func evenParity(id world.Coord) bool {
	return (id.Row&1)^(id.Col&1)^(id.Layer&1) == 0
}

func (c *Cubical) DisplayWidth() float64 { return float64(c.rows) }

func (c *Cubical) DisplayHeight() float64 { return float64(c.cols) }

func (c *Cubical) Is3D() bool { return true }

func (c *Cubical) Layers() int { return c.layers }

// DirectionForKey maps space to both vertical slots; at most one is live per cell
func (c *Cubical) DirectionForKey(key string) world.Directions {
	if key == " " || key == "space" {
		return world.Dirs(CubicalAscend, CubicalDescend)
	}
	return planarDirectionForKey(key)
}

// TileKey is the planar mask plus a stairs bit; ascending wins if both are set
func (c *Cubical) TileKey(connected []bool) int {
	key := planarMask(connected)
	switch {
	case slot(connected, int(CubicalAscend)):
		key |= TileStairsUp
	case slot(connected, int(CubicalDescend)):
		key |= TileStairsDown
	}
	return key
}

func (c *Cubical) DirectionName(d world.Direction) string {
	if !d.IsValid(c.Arity()) {
		return d.String()
	}
	return cubicalNames[d]
}
