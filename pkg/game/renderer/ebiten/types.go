package ebiten

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/zyedidia/generic/queue"

	engineinput "mazerunner/pkg/engine/input"
	"mazerunner/pkg/game/state"
)

// EbitenRenderer is the Ebiten-based graphical renderer
type EbitenRenderer struct {
	// Window dimensions, updated by Layout
	windowWidth  int
	windowHeight int

	// Tile size in pixels for one cell (adjustable with +/-)
	tileSize int

	// Font sources for text rendering
	monoFontSource *text.GoTextFaceSource // Monospace font for map glyphs
	sansFontSource *text.GoTextFaceSource // Sans-serif font for UI text

	// Cached font faces (recreated when tile size changes)
	cachedTileFontSize float64
	cachedUIFontSize   float64
	cachedMonoFace     *text.GoTextFace
	cachedSansFace     *text.GoTextFace

	// Game driven by Update; set by Run
	game *state.Game
	ctx  context.Context

	// Moves wait here until the player sprite has finished sliding
	moves *queue.Queue[engineinput.Intent]

	// Eased positions in cell units
	cameraX, cameraY float64
	playerX, playerY float64

	// Generation the eased positions belong to; a new maze snaps them
	viewGeneration int

	// Flag to track if we've logged window opening
	windowOpenedLogged bool
}

