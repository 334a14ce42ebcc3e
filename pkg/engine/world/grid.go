package world

// Grid owns the cells of one maze generation. The cell set is fixed once
// built; only the cells' connections change while carving.
type Grid struct {
	cells []*Cell
	byID  map[Coord]*Cell
	arity int
}

// NewGrid creates an empty grid whose cells will have arity neighbor slots
func NewGrid(arity int) *Grid {
	if arity <= 0 {
		panic("Grid arity must be positive")
	}
	return &Grid{
		byID:  make(map[Coord]*Cell),
		arity: arity,
	}
}

// Arity returns the number of neighbor slots every cell has
func (g *Grid) Arity() int {
	return g.arity
}

// Len returns the number of cells
func (g *Grid) Len() int {
	return len(g.cells)
}

// Cells returns the cells in generation order
func (g *Grid) Cells() []*Cell {
	return g.cells
}

// Add allocates a cell. Adding the same coordinate twice returns the existing cell.
func (g *Grid) Add(id Coord, pos Position) *Cell {
	if c, ok := g.byID[id]; ok {
		return c
	}
	c := NewCell(id, pos)
	c.Index = len(g.cells)
	g.cells = append(g.cells, c)
	g.byID[id] = c
	return c
}

// GetCell returns the cell with the given coordinate, or nil if it doesn't exist
func (g *Grid) GetCell(id Coord) *Cell {
	return g.byID[id]
}

// Wire sets every cell's neighbor slots. offsets[d] is the coordinate delta for
// slot d; slots whose target does not exist stay nil. keep, if non-nil, can
// veto individual slots (used by layered grids to thin vertical links).
func (g *Grid) Wire(offsets []Coord, keep func(c *Cell, d Direction) bool) {
	if len(offsets) != g.arity {
		panic("Grid offsets must match arity")
	}
	for _, c := range g.cells {
		neighbors := make([]*Cell, g.arity)
		for d, off := range offsets {
			if keep != nil && !keep(c, Direction(d)) {
				continue
			}
			neighbors[d] = g.GetCell(Coord{
				Row:   c.ID.Row + off.Row,
				Col:   c.ID.Col + off.Col,
				Layer: c.ID.Layer + off.Layer,
			})
		}
		c.SetNeighbors(neighbors)
	}
}

// ForEachCell iterates over all cells in generation order
func (g *Grid) ForEachCell(fn func(cell *Cell)) {
	for _, c := range g.cells {
		fn(c)
	}
}

// EdgeCount returns the number of open passages in the grid
func (g *Grid) EdgeCount() int {
	total := 0
	for _, c := range g.cells {
		total += c.ConnectionCount()
	}
	return total / 2
}

// Validate checks that every cell has the grid's arity and that neighbor
// slots are mirrored at the opposite slot. Returns an error description or
// empty string if valid.
func (g *Grid) Validate() string {
	for _, c := range g.cells {
		if c.Arity() != g.arity {
			return "Cell " + c.ID.String() + " has wrong arity"
		}
		for d := Direction(0); int(d) < g.arity; d++ {
			n := c.Neighbor(d)
			if n == nil {
				continue
			}
			if g.GetCell(n.ID) != n {
				return "Cell " + c.ID.String() + " links outside the grid"
			}
			if n.Neighbor(d.Opposite()) != c {
				return "Cell " + c.ID.String() + " is not mirrored by " + n.ID.String()
			}
		}
	}
	return ""
}
