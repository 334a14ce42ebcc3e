package renderer

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mazerunner/pkg/engine/carver"
	"mazerunner/pkg/engine/topology"
	"mazerunner/pkg/game/state"
)

func newGame(t *testing.T, topo topology.Topology) *state.Game {
	t.Helper()
	factory, err := carver.NewFactory(carver.NameDFS, carver.Options{})
	require.NoError(t, err)
	g := state.NewGame(topo, factory, rand.New(rand.NewSource(3)), nil)
	g.CarverName = carver.NameDFS
	return g
}

func TestParseMarkup(t *testing.T) {
	spans := ParseMarkup("Solved in ACTION{%s} on ROOM{%s}!", "01:02:003", "hexagonal")
	assert.Equal(t, []Span{
		{Text: "Solved in "},
		{Text: "0", Style: StyleActionShort},
		{Text: "1:02:003", Style: StyleAction},
		{Text: " on "},
		{Text: "hexagonal", Style: StyleRoom},
		{Text: "!"},
	}, spans)
}

func TestParseMarkup_UnknownFunctionIsKept(t *testing.T) {
	assert.Equal(t, "BOGUS{x} y", PlainText("BOGUS{x} y"))
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "Find the exit!", PlainText("Find the EXIT{exit}!"))
	assert.Equal(t, "no markup", PlainText("no markup"))
	assert.Equal(t, "/: toggle", PlainText("SUBTLE{/}: toggle"))
}

func TestFormatText_WithoutRenderer(t *testing.T) {
	prev := Current
	SetRenderer(nil)
	defer SetRenderer(prev)

	assert.Equal(t, "out of time 3", FormatText("DENIED{out of time} %d", 3))
	assert.Equal(t, "x", StyleText("x", StyleDenied))
}

func TestVisibleCells(t *testing.T) {
	g := newGame(t, topology.NewSquare(20, 20))
	g.Maze.Carve()
	g.CurrentCell = g.Maze.Cells()[0]

	view := VisibleCells(g, 2)
	require.Same(t, g.CurrentCell, view.Focus)
	// a corner sees a 3×3 block
	assert.Len(t, view.Cells, 9)
	for _, c := range view.Cells {
		assert.LessOrEqual(t, c.ID.Row, 2)
		assert.LessOrEqual(t, c.ID.Col, 2)
	}
}

func TestVisibleCells_StaysOnFocusLayer(t *testing.T) {
	g := newGame(t, topology.NewCubical(3, 3, 3))
	g.Maze.Carve()

	view := VisibleCells(g, 5)
	assert.Len(t, view.Cells, 9)
	for _, c := range view.Cells {
		assert.Equal(t, view.Focus.Pos.Layer, c.Pos.Layer)
	}
}

func TestStairsGlyph(t *testing.T) {
	topo := topology.NewCubical(1, 1, 2)
	grid := topo.Generate()
	lower, upper := grid.Cells()[0], grid.Cells()[1]
	require.NoError(t, lower.ConnectTo(upper))

	assert.Equal(t, "▲", StairsGlyph(topo, lower))
	assert.Equal(t, "▼", StairsGlyph(topo, upper))
	assert.Empty(t, StairsGlyph(topology.NewSquare(1, 2), topology.NewSquare(1, 2).Generate().Cells()[0]))
}

func TestStatusLine(t *testing.T) {
	g := newGame(t, topology.NewSquare(4, 4))
	line := PlainText("%s", StatusLine(g))
	assert.Contains(t, line, "square/dfs")
	assert.Contains(t, line, "CARVING")

	g.Maze.Carve()
	g.Maze.CalculatePath()
	line = PlainText("%s", StatusLine(g))
	assert.Contains(t, line, "TIME 00:00:000")
}

func TestHelpLine(t *testing.T) {
	help := PlainText("%s", HelpLine())
	for _, want := range []string{"/: toggle solution", "r: new maze", "q: quit", "t: next topology"} {
		assert.True(t, strings.Contains(help, want), "help %q is missing %q", help, want)
	}
}
