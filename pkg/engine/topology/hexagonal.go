package topology

import (
	"math"
	"strings"

	"mazerunner/pkg/engine/world"
)

// Axial slots shared by the hexagonal and triangular grids
const (
	AxialLeft world.Direction = iota
	AxialRight
	AxialLowerRight // (+1, +1)
	AxialUpperLeft  // (-1, -1)
	AxialLowerLeft  // (0, +1)
	AxialUpperRight // (0, -1)
)

var axialOffsets = []world.Coord{
	{Row: -1},
	{Row: 1},
	{Row: 1, Col: 1},
	{Row: -1, Col: -1},
	{Col: 1},
	{Col: -1},
}

var axialNames = []string{"Left", "Right", "Lower Right", "Upper Left", "Lower Left", "Upper Right"}

// axialGrid materializes the cells of an index square that pass include and
// wires them with the axial offset table.
func axialGrid(span int, include func(i, j int) bool, pos func(i, j int) world.Position) *world.Grid {
	g := world.NewGrid(len(axialOffsets))
	for i := 0; i < span; i++ {
		for j := 0; j < span; j++ {
			if include(i, j) {
				g.Add(world.Coord{Row: i, Col: j}, pos(i, j))
			}
		}
	}
	g.Wire(axialOffsets, nil)
	return g
}

// axialTileKey packs a six-slot connection vector into an 8×8 atlas index
func axialTileKey(connected []bool) int {
	l := slot(connected, int(AxialLeft))
	r := slot(connected, int(AxialRight))
	br := slot(connected, int(AxialLowerRight))
	tl := slot(connected, int(AxialUpperLeft))
	bl := slot(connected, int(AxialLowerLeft))
	tr := slot(connected, int(AxialUpperRight))

	row := bit(br) + bit(tr)<<1 + bit(bl)<<2
	col := bit(l) + bit(r)<<1 + bit(tl)<<2
	return row*8 + col
}

func axialDirectionName(d world.Direction) string {
	if !d.IsValid(len(axialNames)) {
		return d.String()
	}
	return axialNames[d]
}

// Hexagonal is a hexagon-shaped board of hexagonal cells with the given
// side length. Cells are addressed on a (2·size-1)² index square and only
// those with |i-j| < size exist.
type Hexagonal struct {
	size int
}

// NewHexagonal creates a hexagonal topology
func NewHexagonal(size int) *Hexagonal {
	return &Hexagonal{size: size}
}

// Size returns the side length
func (h *Hexagonal) Size() int { return h.size }

func (h *Hexagonal) Name() string { return NameHexagonal }

func (h *Hexagonal) Arity() int { return len(axialOffsets) }

func (h *Hexagonal) Generate() *world.Grid {
	size := h.size
	return axialGrid(2*size-1,
		func(i, j int) bool {
			d := i - j
			if d < 0 {
				d = -d
			}
			return d < size
		},
		func(i, j int) world.Position {
			return world.Position{
				X: float64(i) + float64(size-j)/2,
				Y: (float64(j) + 0.5) * math.Sqrt(3) / 2,
			}
		})
}

func (h *Hexagonal) DisplayWidth() float64 { return float64(h.size*2 - 1) }

func (h *Hexagonal) DisplayHeight() float64 { return (float64(h.size) - 1.0/3) * math.Sqrt(3) }

func (h *Hexagonal) Is3D() bool { return false }

func (h *Hexagonal) Layers() int { return 1 }

func (h *Hexagonal) DirectionForKey(key string) world.Directions {
	switch strings.ToLower(key) {
	case "a":
		return world.Dirs(AxialLeft)
	case "d":
		return world.Dirs(AxialRight)
	case "x":
		return world.Dirs(AxialLowerRight)
	case "w":
		return world.Dirs(AxialUpperLeft)
	case "z":
		return world.Dirs(AxialLowerLeft)
	case "e":
		return world.Dirs(AxialUpperRight)
	}
	return nil
}

func (h *Hexagonal) TileKey(connected []bool) int { return axialTileKey(connected) }

func (h *Hexagonal) DirectionName(d world.Direction) string { return axialDirectionName(d) }
