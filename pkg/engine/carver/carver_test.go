package carver

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mazerunner/pkg/engine/topology"
	"mazerunner/pkg/engine/world"
)

func testTopologies() []topology.Topology {
	return []topology.Topology{
		topology.NewSquare(1, 1),
		topology.NewSquare(2, 1),
		topology.NewSquare(8, 5),
		topology.NewCubical(4, 3, 3),
		topology.NewHexagonal(4),
		topology.NewTriangular(6),
	}
}

// connectedCount counts the cells reachable from the first cell via open passages
func connectedCount(g *world.Grid) int {
	if g.Len() == 0 {
		return 0
	}
	start := g.Cells()[0]
	seen := map[*world.Cell]bool{start: true}
	todo := []*world.Cell{start}
	for len(todo) > 0 {
		c := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		for _, n := range c.ConnectedNeighbors() {
			if !seen[n] {
				seen[n] = true
				todo = append(todo, n)
			}
		}
	}
	return len(seen)
}

func assertPerfect(t *testing.T, name string, g *world.Grid) {
	t.Helper()
	assert.Equal(t, g.Len()-1, g.EdgeCount(), "%s: edge count", name)
	assert.Equal(t, g.Len(), connectedCount(g), "%s: not spanning", name)
	for _, c := range g.Cells() {
		for _, n := range c.ConnectedNeighbors() {
			assert.True(t, n.IsConnectedTo(c), "%s: %v -> %v not symmetric", name, c.ID, n.ID)
		}
	}
}

func TestCarvers_ProducePerfectMazes(t *testing.T) {
	for _, name := range Names() {
		factory, err := NewFactory(name, Options{})
		require.NoError(t, err)
		for seed := int64(1); seed <= 3; seed++ {
			for _, topo := range testTopologies() {
				g := topo.Generate()
				c := factory(g.Cells(), rand.New(rand.NewSource(seed)))
				Carve(c)
				assert.True(t, c.IsFinished())
				assertPerfect(t, name+"/"+topo.Name(), g)
			}
		}
	}
}

func TestCarvers_SingleCellFinishesImmediately(t *testing.T) {
	for _, name := range Names() {
		factory, err := NewFactory(name, Options{})
		require.NoError(t, err)
		g := topology.NewSquare(1, 1).Generate()
		c := factory(g.Cells(), rand.New(rand.NewSource(1)))
		Carve(c)
		assert.True(t, c.IsFinished(), name)
		assert.Nil(t, c.LastChanged(), name)
		assert.Equal(t, 0, g.EdgeCount(), name)
	}
}

func TestCarvers_TwoCellsGetConnected(t *testing.T) {
	for _, name := range Names() {
		factory, err := NewFactory(name, Options{})
		require.NoError(t, err)
		g := topology.NewSquare(2, 1).Generate()
		Carve(factory(g.Cells(), rand.New(rand.NewSource(7))))
		a, b := g.Cells()[0], g.Cells()[1]
		assert.True(t, a.IsConnectedTo(b), name)
		assert.True(t, b.IsConnectedTo(a), name)
	}
}

func TestCarvers_StepAfterFinishIsNoop(t *testing.T) {
	for _, name := range Names() {
		factory, err := NewFactory(name, Options{})
		require.NoError(t, err)
		g := topology.NewSquare(4, 4).Generate()
		c := factory(g.Cells(), rand.New(rand.NewSource(3)))
		Carve(c)
		edges := g.EdgeCount()
		c.Step()
		c.Step()
		assert.True(t, c.IsFinished())
		assert.Equal(t, edges, g.EdgeCount())
	}
}

func TestCarvers_EmptyCellSet(t *testing.T) {
	for _, name := range Names() {
		factory, err := NewFactory(name, Options{})
		require.NoError(t, err)
		c := factory(nil, rand.New(rand.NewSource(1)))
		assert.True(t, c.IsFinished(), name)
		c.Step()
		assert.Nil(t, c.LastChanged(), name)
	}
}

func TestCarvers_AreDeterministicPerSeed(t *testing.T) {
	carve := func(name string) []int {
		factory, err := NewFactory(name, Options{})
		require.NoError(t, err)
		g := topology.NewHexagonal(3).Generate()
		Carve(factory(g.Cells(), rand.New(rand.NewSource(42))))
		var masks []int
		for _, c := range g.Cells() {
			masks = append(masks, topology.NewHexagonal(3).TileKey(c.ConnectionVector()))
		}
		return masks
	}
	for _, name := range Names() {
		assert.Equal(t, carve(name), carve(name), name)
	}
}

func TestNewFactory(t *testing.T) {
	for _, name := range []string{"", "dfs", "DFS", "backtracker", "kruskal"} {
		f, err := NewFactory(name, Options{})
		assert.NoError(t, err, name)
		assert.NotNil(t, f, name)
	}
	_, err := NewFactory("prim", Options{})
	assert.ErrorIs(t, err, ErrUnknownCarver)
}
