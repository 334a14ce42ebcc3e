package ebiten

import (
	"image/color"
	"io"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mazerunner/pkg/engine/carver"
	engineinput "mazerunner/pkg/engine/input"
	"mazerunner/pkg/engine/logger"
	"mazerunner/pkg/engine/topology"
	"mazerunner/pkg/game/config"
	"mazerunner/pkg/game/renderer"
	"mazerunner/pkg/game/state"
)

func useTempConfig(t *testing.T) *config.Config {
	t.Helper()
	logger.InitializeWriter(io.Discard, "ERROR")
	cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "mazerunner.yaml"))
	require.NoError(t, err)
	prev := config.Current()
	config.SetCurrent(cfg)
	t.Cleanup(func() { config.SetCurrent(prev) })
	return cfg
}

func newPlayableRenderer(t *testing.T) *EbitenRenderer {
	t.Helper()
	factory, err := carver.NewFactory(carver.NameDFS, carver.Options{})
	require.NoError(t, err)
	g := state.NewGame(topology.NewSquare(6, 6), factory, rand.New(rand.NewSource(9)), nil)
	g.Maze.Carve()
	g.Maze.CalculatePath()
	g.CurrentCell = g.Maze.Start()

	e := New()
	e.game = g
	return e
}

func TestEase(t *testing.T) {
	assert.InDelta(t, 2.5, ease(0, 10, 0.25), 1e-9)
	assert.Equal(t, 10.0, ease(9.995, 10, 0.25))
	assert.Equal(t, -3.0, ease(-3, -3, 0.5))
}

func TestApplyAlpha(t *testing.T) {
	assert.Equal(t, color.RGBA{100, 50, 0, 127}, applyAlpha(color.RGBA{200, 100, 0, 255}, 0.5))
	assert.Equal(t, color.RGBA{}, applyAlpha(colorText, -1))
	assert.Equal(t, colorText, applyAlpha(colorText, 2))
}

func TestParseMarkup_Colors(t *testing.T) {
	segments := parseMarkup("Find the EXIT{exit} in ROOM{%s}", "hexagonal")
	require.Len(t, segments, 4)
	assert.Equal(t, textSegment{text: "Find the ", color: colorText}, segments[0])
	assert.Equal(t, textSegment{text: "exit", color: colorGoal}, segments[1])
	assert.Equal(t, textSegment{text: "hexagonal", color: colorRoom}, segments[3])
}

func TestStyleColor(t *testing.T) {
	assert.Equal(t, color.Color(colorDenied), styleColor(renderer.StyleDenied))
	assert.Equal(t, color.Color(colorAction), styleColor(renderer.StyleActionShort))
	assert.Equal(t, color.Color(colorText), styleColor(renderer.StyleNormal))
}

func TestFormatText_StripsMarkup(t *testing.T) {
	e := New()
	assert.Equal(t, "Solved in 00:01:000", e.FormatText("Solved in ACTION{%s}", "00:01:000"))
	assert.Equal(t, "x", e.StyleText("x", renderer.StyleGoal))
}

func TestKeyCodes_AreBound(t *testing.T) {
	for key, code := range keyCodes {
		intent := engineinput.MapToIntent(engineinput.NewDebouncedInput(engineinput.RawInput{
			Device:    engineinput.DeviceKeyboard,
			Code:      code,
			Timestamp: time.Now(),
		}))
		assert.False(t, intent.IsNone(), "key %v (%q) has no binding", key, code)
	}
}

func TestHandleIntent_ZoomChangesTileSize(t *testing.T) {
	cfg := useTempConfig(t)
	e := newPlayableRenderer(t)

	e.handleIntent(engineinput.Intent{Action: engineinput.ActionZoomIn})
	assert.Equal(t, config.DefaultTileSize+tileSizeStep, e.tileSize)
	assert.Equal(t, e.tileSize, cfg.Display.TileSize)

	for range 100 {
		e.handleIntent(engineinput.Intent{Action: engineinput.ActionZoomOut})
	}
	assert.Equal(t, config.MinTileSize, e.tileSize)
}

func TestHandleIntent_QueuesMoves(t *testing.T) {
	useTempConfig(t)
	e := newPlayableRenderer(t)
	start := e.game.CurrentCell

	e.handleIntent(engineinput.Intent{Action: engineinput.ActionMove, Key: "d"})
	assert.False(t, e.moves.Empty())
	assert.Same(t, start, e.game.CurrentCell)

	e.handleIntent(engineinput.Intent{Action: engineinput.ActionToggleSolution})
	assert.True(t, e.game.ShowSolution)

	e.clearMoves()
	assert.True(t, e.moves.Empty())
}

func TestUpdateView_SnapsOnNewMaze(t *testing.T) {
	e := newPlayableRenderer(t)
	e.updateView()

	start := e.game.CurrentCell
	assert.Equal(t, start.Pos.X, e.cameraX)
	assert.Equal(t, start.Pos.Y, e.playerY)
	assert.True(t, e.playerSettled())

	// Move the player by hand and let the sprite catch up
	next := start.ConnectedNeighbors()[0]
	e.game.CurrentCell = next
	e.updateView()
	assert.False(t, e.playerSettled())
	for range 100 {
		e.updateView()
	}
	assert.True(t, e.playerSettled())
	assert.Equal(t, next.Pos.X, e.playerX)
}

func TestViewRadius(t *testing.T) {
	e := New()
	e.tileSize = 32
	assert.Equal(t, 17, e.viewRadius(1024, 600))
}
