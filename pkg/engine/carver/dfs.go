package carver

import (
	"math/rand"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/stack"

	"mazerunner/pkg/engine/world"
)

// verticalSlot is the first layer-changing slot in a cubical grid
const verticalSlot world.Direction = 4

// DFS is an iterative depth-first backtracker. The stack holds the current
// path from a random root; the top is the carving cursor.
type DFS struct {
	visited world.CellSet
	stack   *stack.Stack[*world.Cell]
	rng     *rand.Rand
	opts    Options
}

// NewDFS creates a backtracker rooted at a random cell
func NewDFS(cells []*world.Cell, rng *rand.Rand, opts Options) *DFS {
	d := &DFS{
		visited: mapset.New[*world.Cell](),
		stack:   stack.New[*world.Cell](),
		rng:     rng,
		opts:    opts,
	}
	if len(cells) > 0 {
		d.stack.Push(cells[rng.Intn(len(cells))])
	}
	return d
}

// Step opens one passage, unwinding the stack past exhausted frames first.
// A frame is popped as soon as it has fewer than two unvisited candidates, so
// the chosen neighbor always gets a frame of its own and corridors are
// re-examined on the way back. This keeps mazes twisty.
func (d *DFS) Step() {
	for !d.IsFinished() {
		p := d.stack.Peek()
		d.visited.Put(p)

		var candidates []*world.Cell
		for _, n := range p.DisconnectedNeighbors() {
			if !d.visited.Has(n) {
				candidates = append(candidates, n)
			}
		}

		if len(candidates) < 2 {
			d.stack.Pop()
		}
		if len(candidates) == 0 {
			continue
		}

		candidates = d.applyVerticalBias(p, candidates)
		next := candidates[d.rng.Intn(len(candidates))]
		mustConnect(p, next)
		d.stack.Push(next)
		return
	}
}

// applyVerticalBias drops layer-changing candidates with probability
// VerticalBias, as long as at least one planar candidate remains
func (d *DFS) applyVerticalBias(p *world.Cell, candidates []*world.Cell) []*world.Cell {
	if d.opts.VerticalBias <= 0 || p.Arity() <= int(verticalSlot) {
		return candidates
	}
	var planar, vertical []*world.Cell
	for _, c := range candidates {
		if p.DirectionTo(c) >= verticalSlot {
			vertical = append(vertical, c)
		} else {
			planar = append(planar, c)
		}
	}
	if len(planar) == 0 || len(vertical) == 0 {
		return candidates
	}
	kept := planar
	for _, c := range vertical {
		if d.rng.Float64() >= d.opts.VerticalBias {
			kept = append(kept, c)
		}
	}
	return kept
}

// IsFinished reports whether the stack is empty
func (d *DFS) IsFinished() bool {
	return d.stack.Size() == 0
}

// LastChanged returns the carving cursor
func (d *DFS) LastChanged() *world.Cell {
	if d.IsFinished() {
		return nil
	}
	return d.stack.Peek()
}

// Visited returns the number of cells visited so far
func (d *DFS) Visited() int {
	return d.visited.Size()
}

// Depth returns the current stack depth
func (d *DFS) Depth() int {
	return d.stack.Size()
}
