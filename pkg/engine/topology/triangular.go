package topology

import (
	"math"
	"strings"

	"mazerunner/pkg/engine/world"
)

// Triangular is a triangle-shaped board of triangular cells. It reuses the
// axial lattice of the hexagonal grid but drops one cell in three, which
// leaves each remaining cell with three live slots whose orientation
// (pointing up or down) alternates. A board of side size has size² cells.
type Triangular struct {
	size int
}

// NewTriangular creates a triangular topology
func NewTriangular(size int) *Triangular {
	return &Triangular{size: size}
}

// Size returns the side length
func (t *Triangular) Size() int { return t.size }

func (t *Triangular) Name() string { return NameTriangular }

func (t *Triangular) Arity() int { return len(axialOffsets) }

func (t *Triangular) Generate() *world.Grid {
	size := t.size
	span := 2*size - 1
	return axialGrid(span,
		func(i, j int) bool {
			return 2-(i+span-1)%3 != j%3 &&
				2*i-j < span+1 &&
				2*(i+j) > span-2 &&
				2*j-i < span+1
		},
		func(i, j int) world.Position {
			return world.Position{
				X: float64(i) + float64(size-j)/2,
				Y: float64(j)*math.Sqrt(3)/2 + 0.5,
			}
		})
}

func (t *Triangular) DisplayWidth() float64 { return float64(t.size*3+1) / 2 }

func (t *Triangular) DisplayHeight() float64 { return float64(t.size*3+1) / math.Sqrt(3) }

func (t *Triangular) Is3D() bool { return false }

func (t *Triangular) Layers() int { return 1 }

// DirectionForKey maps w and s to both diagonal pairs since only one of each
// pair is live on a given triangle
func (t *Triangular) DirectionForKey(key string) world.Directions {
	switch strings.ToLower(key) {
	case "w":
		return world.Dirs(AxialUpperLeft, AxialUpperRight)
	case "a":
		return world.Dirs(AxialLeft)
	case "s":
		return world.Dirs(AxialLowerRight, AxialLowerLeft)
	case "d":
		return world.Dirs(AxialRight)
	}
	return nil
}

func (t *Triangular) TileKey(connected []bool) int { return axialTileKey(connected) }

func (t *Triangular) DirectionName(d world.Direction) string { return axialDirectionName(d) }
