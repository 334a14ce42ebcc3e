package maze

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mazerunner/pkg/engine/carver"
	"mazerunner/pkg/engine/topology"
	"mazerunner/pkg/engine/world"
)

func newCarved(t *testing.T, topo topology.Topology, seed int64) *Maze {
	t.Helper()
	factory, err := carver.NewFactory(carver.NameDFS, carver.Options{})
	require.NoError(t, err)
	m := New(topo, factory, rand.New(rand.NewSource(seed)))
	m.Carve()
	require.True(t, m.IsFinishedCarving())
	return m
}

func TestMaze_SingleCell(t *testing.T) {
	m := newCarved(t, topology.NewSquare(1, 1), 1)
	m.CalculatePath()

	cell := m.Cells()[0]
	assert.Same(t, cell, m.Start())
	assert.Same(t, cell, m.End())
	assert.Equal(t, []*world.Cell{cell}, slices.Collect(m.SolutionFrom(cell)))
}

func TestMaze_TwoCells(t *testing.T) {
	m := newCarved(t, topology.NewSquare(2, 1), 3)
	m.CalculatePath()

	require.NotNil(t, m.Start())
	require.NotNil(t, m.End())
	assert.NotSame(t, m.Start(), m.End())
	assert.Equal(t, 1, m.Distance(m.Start(), m.End()))
	assert.Equal(t, 1, m.EdgeCount())
}

func TestMaze_PrematureQueriesAreEmpty(t *testing.T) {
	factory, err := carver.NewFactory(carver.NameDFS, carver.Options{})
	require.NoError(t, err)
	m := New(topology.NewSquare(5, 5), factory, rand.New(rand.NewSource(1)))

	m.CalculatePath()
	assert.False(t, m.HasPath())
	assert.Nil(t, m.Start())
	assert.Nil(t, m.End())
	assert.Empty(t, slices.Collect(m.SolutionFrom(m.Cells()[0])))

	m.CarveStep()
	assert.NotNil(t, m.LastChangedCell())
	assert.Equal(t, 1, m.EdgeCount())
}

func TestMaze_CalculatePathIsIdempotent(t *testing.T) {
	m := newCarved(t, topology.NewHexagonal(4), 5)
	m.CalculatePath()
	start, end := m.Start(), m.End()
	m.CalculatePath()
	assert.Same(t, start, m.Start())
	assert.Same(t, end, m.End())
}

func TestMaze_StartAndEndAreDiameter(t *testing.T) {
	topos := []topology.Topology{
		topology.NewSquare(9, 7),
		topology.NewCubical(4, 4, 3),
		topology.NewHexagonal(5),
		topology.NewTriangular(7),
	}
	for _, topo := range topos {
		for seed := int64(1); seed <= 3; seed++ {
			m := newCarved(t, topo, seed)
			m.CalculatePath()
			diameter := m.Distance(m.Start(), m.End())
			require.Greater(t, diameter, 0, topo.Name())
			for _, c := range m.Cells() {
				assert.LessOrEqual(t, m.Distance(m.Start(), c), diameter, "%s: %v", topo.Name(), c.ID)
				assert.LessOrEqual(t, m.Distance(m.End(), c), diameter, "%s: %v", topo.Name(), c.ID)
			}
		}
	}
}

func TestMaze_SolutionFrom(t *testing.T) {
	m := newCarved(t, topology.NewSquare(10, 10), 8)
	m.CalculatePath()

	fromStart := slices.Collect(m.SolutionFrom(m.Start()))
	assert.Equal(t, []*world.Cell{m.Start()}, fromStart)

	fromEnd := slices.Collect(m.SolutionFrom(m.End()))
	require.Len(t, fromEnd, m.Distance(m.Start(), m.End())+1)
	assert.Same(t, m.End(), fromEnd[0])
	assert.Same(t, m.Start(), fromEnd[len(fromEnd)-1])
	for i := 1; i < len(fromEnd); i++ {
		assert.True(t, fromEnd[i-1].IsConnectedTo(fromEnd[i]), "step %d is not a passage", i)
	}

	// restartable
	assert.Equal(t, fromEnd, slices.Collect(m.SolutionFrom(m.End())))
	assert.Equal(t, len(fromEnd), m.SolutionLength(m.End()))

	// early stop
	n := 0
	for range m.SolutionFrom(m.End()) {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestMaze_PathToEnd(t *testing.T) {
	m := newCarved(t, topology.NewTriangular(6), 4)
	assert.Empty(t, slices.Collect(m.PathToEnd(m.Cells()[0])))
	m.CalculatePath()

	assert.Equal(t, []*world.Cell{m.End()}, slices.Collect(m.PathToEnd(m.End())))

	toEnd := slices.Collect(m.PathToEnd(m.Start()))
	toStart := slices.Collect(m.SolutionFrom(m.End()))
	slices.Reverse(toStart)
	assert.Equal(t, toStart, toEnd, "a tree has exactly one path between two cells")
}

func TestMaze_SolutionFromForeignCellIsEmpty(t *testing.T) {
	m := newCarved(t, topology.NewSquare(3, 3), 1)
	m.CalculatePath()
	other := topology.NewSquare(3, 3).Generate().Cells()[0]
	assert.Empty(t, slices.Collect(m.SolutionFrom(other)))
	assert.Empty(t, slices.Collect(m.SolutionFrom(nil)))
	assert.Equal(t, -1, m.Distance(m.Start(), other))
}

func TestMaze_RegenerationIsIndependent(t *testing.T) {
	topo := topology.NewSquare(4, 4)
	a := newCarved(t, topo, 1)
	b := newCarved(t, topo, 2)
	for _, c := range a.Cells() {
		twin := b.Grid().GetCell(c.ID)
		require.NotNil(t, twin)
		assert.NotSame(t, c, twin)
		for _, n := range c.ConnectedNeighbors() {
			assert.False(t, twin.IsConnectedTo(n), "maze b linked to a cell of maze a")
		}
	}
}
