// Package maze ties one generation of cells to its carver and, once carving
// is done, to the start/end pair and the solution tree.
package maze

import (
	"iter"
	"math/rand"

	"github.com/zyedidia/generic/queue"

	"mazerunner/pkg/engine/carver"
	"mazerunner/pkg/engine/topology"
	"mazerunner/pkg/engine/world"
)

// Maze is a single generation. Regenerating means building a new Maze.
type Maze struct {
	topo   topology.Topology
	grid   *world.Grid
	carver carver.Carver

	start *world.Cell
	end   *world.Cell
	// toStart and toEnd are BFS parent trees rooted at start and end
	toStart map[*world.Cell]*world.Cell
	toEnd   map[*world.Cell]*world.Cell
}

// New generates a fresh grid from topo and prepares a carver for it
func New(topo topology.Topology, factory carver.Factory, rng *rand.Rand) *Maze {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	grid := topo.Generate()
	return &Maze{
		topo:   topo,
		grid:   grid,
		carver: factory(grid.Cells(), rng),
	}
}

// Topology returns the topology this maze was generated from
func (m *Maze) Topology() topology.Topology { return m.topo }

// Grid returns the cell set
func (m *Maze) Grid() *world.Grid { return m.grid }

// Cells returns the cells in generation order
func (m *Maze) Cells() []*world.Cell { return m.grid.Cells() }

// CarveStep opens at most one passage
func (m *Maze) CarveStep() {
	m.carver.Step()
}

// Carve runs the carver to completion
func (m *Maze) Carve() {
	carver.Carve(m.carver)
}

// IsFinishedCarving reports whether the carver is done
func (m *Maze) IsFinishedCarving() bool {
	return m.carver.IsFinished()
}

// LastChangedCell returns the carving cursor, or nil once carving is done
func (m *Maze) LastChangedCell() *world.Cell {
	return m.carver.LastChanged()
}

// EdgeCount returns the number of carved passages
func (m *Maze) EdgeCount() int {
	return m.grid.EdgeCount()
}

// CalculatePath finds the two ends of the longest path through the maze.
// It does nothing until carving has finished, and only runs once.
func (m *Maze) CalculatePath() {
	if m.start != nil || !m.IsFinishedCarving() || m.grid.Len() == 0 {
		return
	}
	end, _ := bfs(m.grid.Cells()[0])
	start, toEnd := bfs(end)
	_, toStart := bfs(start)
	m.end = end
	m.start = start
	m.toEnd = toEnd
	m.toStart = toStart
}

// HasPath reports whether CalculatePath has run
func (m *Maze) HasPath() bool {
	return m.start != nil
}

// Start returns the start cell, or nil before CalculatePath
func (m *Maze) Start() *world.Cell { return m.start }

// End returns the end cell, or nil before CalculatePath
func (m *Maze) End() *world.Cell { return m.end }

// SolutionFrom walks from cell back to the start. The sequence is empty if
// the path has not been calculated or cell is not part of this maze.
func (m *Maze) SolutionFrom(cell *world.Cell) iter.Seq[*world.Cell] {
	return walk(m.toStart, cell)
}

// PathToEnd walks from cell to the end, the direction a player heading for
// the goal needs. Empty under the same conditions as SolutionFrom.
func (m *Maze) PathToEnd(cell *world.Cell) iter.Seq[*world.Cell] {
	return walk(m.toEnd, cell)
}

// walk follows parent links from cell up to the root of the tree
func walk(parents map[*world.Cell]*world.Cell, cell *world.Cell) iter.Seq[*world.Cell] {
	return func(yield func(*world.Cell) bool) {
		if parents == nil || cell == nil {
			return
		}
		if _, ok := parents[cell]; !ok {
			return
		}
		for c := cell; c != nil; c = parents[c] {
			if !yield(c) {
				return
			}
		}
	}
}

// SolutionLength returns the number of cells from cell to the start, inclusive
func (m *Maze) SolutionLength(cell *world.Cell) int {
	n := 0
	for range m.SolutionFrom(cell) {
		n++
	}
	return n
}

// Distance returns the number of passages between a and b, or -1 if b cannot
// be reached from a
func (m *Maze) Distance(a, b *world.Cell) int {
	if a == nil || b == nil {
		return -1
	}
	dist := map[*world.Cell]int{a: 0}
	q := queue.New[*world.Cell]()
	q.Enqueue(a)
	for !q.Empty() {
		c := q.Dequeue()
		if c == b {
			return dist[c]
		}
		for _, n := range c.ConnectedNeighbors() {
			if _, seen := dist[n]; !seen {
				dist[n] = dist[c] + 1
				q.Enqueue(n)
			}
		}
	}
	return -1
}

// bfs walks the carved passages from root and returns the last cell dequeued
// along with the parent of every reached cell (root maps to nil)
func bfs(root *world.Cell) (*world.Cell, map[*world.Cell]*world.Cell) {
	parents := map[*world.Cell]*world.Cell{root: nil}
	q := queue.New[*world.Cell]()
	q.Enqueue(root)

	last := root
	for !q.Empty() {
		last = q.Dequeue()
		for _, n := range last.ConnectedNeighbors() {
			if _, seen := parents[n]; !seen {
				parents[n] = last
				q.Enqueue(n)
			}
		}
	}
	return last, parents
}
