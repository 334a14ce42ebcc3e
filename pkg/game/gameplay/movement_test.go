package gameplay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mazerunner/pkg/engine/topology"
	"mazerunner/pkg/engine/world"
)

// corridorGrid builds a 5×2 square grid with a straight corridor down column
// 0 and a side passage at row 2:
//
//	(0,0)-(1,0)-(2,0)-(3,0)-(4,0)
//	             |
//	           (2,1)
func corridorGrid(t *testing.T) *world.Grid {
	t.Helper()
	g := topology.NewSquare(5, 2).Generate()
	link := func(r1, c1, r2, c2 int) {
		a := g.GetCell(world.Coord{Row: r1, Col: c1})
		b := g.GetCell(world.Coord{Row: r2, Col: c2})
		require.NoError(t, a.ConnectTo(b))
	}
	for r := 0; r < 4; r++ {
		link(r, 0, r+1, 0)
	}
	link(2, 0, 2, 1)
	return g
}

func at(g *world.Grid, row, col int) *world.Cell {
	return g.GetCell(world.Coord{Row: row, Col: col})
}

func TestAdvance_StopsAtBranch(t *testing.T) {
	g := corridorGrid(t)

	next, moved, err := Advance(at(g, 0, 0), world.Dirs(topology.SquareRight))
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Same(t, at(g, 2, 0), next, "run should stop at the junction")
}

func TestAdvance_RunsToDeadEnd(t *testing.T) {
	g := corridorGrid(t)

	next, moved, err := Advance(at(g, 2, 0), world.Dirs(topology.SquareRight))
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Same(t, at(g, 4, 0), next)

	next, moved, err = Advance(at(g, 4, 0), world.Dirs(topology.SquareLeft))
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Same(t, at(g, 2, 0), next)
}

func TestAdvance_SingleStepIntoSidePassage(t *testing.T) {
	g := corridorGrid(t)

	next, moved, err := Advance(at(g, 2, 0), world.Dirs(topology.SquareDown))
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Same(t, at(g, 2, 1), next)
}

func TestAdvance_ClosedDirectionDoesNotMove(t *testing.T) {
	g := corridorGrid(t)
	start := at(g, 0, 0)

	next, moved, err := Advance(start, world.Dirs(topology.SquareDown))
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Same(t, start, next)

	// off the edge of the grid
	next, moved, err = Advance(start, world.Dirs(topology.SquareLeft))
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Same(t, start, next)
}

func TestAdvance_FirstOpenDirectionWins(t *testing.T) {
	g := corridorGrid(t)

	next, moved, err := Advance(at(g, 0, 0), world.Dirs(topology.SquareUp, topology.SquareLeft, topology.SquareRight))
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Same(t, at(g, 2, 0), next)

	_, moved, err = Advance(at(g, 0, 0), world.Dirs(topology.SquareUp, topology.SquareDown))
	require.NoError(t, err)
	assert.False(t, moved)
}

func TestAdvance_InvalidDirection(t *testing.T) {
	g := corridorGrid(t)

	_, moved, err := Advance(at(g, 0, 0), world.Dirs(topology.SquareRight, 7))
	assert.ErrorIs(t, err, world.ErrInvalidDirection)
	assert.False(t, moved)

	_, _, err = Advance(at(g, 0, 0), world.Dirs(world.NoDirection))
	assert.ErrorIs(t, err, world.ErrInvalidDirection)
}

func TestAdvance_NilCell(t *testing.T) {
	next, moved, err := Advance(nil, world.Dirs(topology.SquareRight))
	assert.NoError(t, err)
	assert.False(t, moved)
	assert.Nil(t, next)
}

func TestAdvance_IsDeterministic(t *testing.T) {
	g := corridorGrid(t)
	first, _, _ := Advance(at(g, 4, 0), world.Dirs(topology.SquareLeft))
	for range 10 {
		again, _, _ := Advance(at(g, 4, 0), world.Dirs(topology.SquareLeft))
		assert.Same(t, first, again)
	}
}

func TestIsBranch(t *testing.T) {
	g := corridorGrid(t)

	assert.True(t, IsBranch(at(g, 2, 0), topology.SquareRight))
	assert.False(t, IsBranch(at(g, 1, 0), topology.SquareRight))
	assert.False(t, IsBranch(at(g, 1, 0), topology.SquareLeft))
	// straight through the side passage, the corridor itself is the turn
	assert.True(t, IsBranch(at(g, 2, 0), topology.SquareDown))
}
