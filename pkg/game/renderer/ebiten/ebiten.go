package ebiten

import (
	"context"
	"errors"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/zyedidia/generic/queue"

	engineinput "mazerunner/pkg/engine/input"
	"mazerunner/pkg/engine/logger"
	"mazerunner/pkg/game/config"
	"mazerunner/pkg/game/renderer"
	"mazerunner/pkg/game/state"
)

// New creates a new Ebiten renderer
func New() *EbitenRenderer {
	return &EbitenRenderer{
		windowWidth:    defaultWindowWidth,
		windowHeight:   defaultWindowHeight,
		tileSize:       config.DefaultTileSize,
		moves:          queue.New[engineinput.Intent](),
		viewGeneration: -1,
	}
}

// Init loads fonts and sets up the window
func (e *EbitenRenderer) Init() error {
	if err := e.loadFonts(); err != nil {
		return err
	}
	if size := config.Current().Display.TileSize; size > 0 {
		e.tileSize = max(config.MinTileSize, min(config.MaxTileSize, size))
	}

	ebiten.SetWindowSize(e.windowWidth, e.windowHeight)
	ebiten.SetWindowTitle("Mazerunner")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return nil
}

// StyleText returns text unchanged; colors are applied when the markup is drawn
func (e *EbitenRenderer) StyleText(text string, style renderer.TextStyle) string {
	return text
}

// FormatText formats a message and strips the markup
func (e *EbitenRenderer) FormatText(msg string, args ...any) string {
	var b strings.Builder
	for _, seg := range parseMarkup(msg, args...) {
		b.WriteString(seg.text)
	}
	return b.String()
}

// Run opens the window and drives g from Ebiten's update loop until the
// player quits, the window closes or ctx is cancelled
func (e *EbitenRenderer) Run(ctx context.Context, g *state.Game) error {
	e.game = g
	e.ctx = ctx

	err := ebiten.RunGame(e)
	if errors.Is(err, ebiten.Termination) {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return nil
	}
	return err
}

// Layout tracks the window size (Ebiten interface)
func (e *EbitenRenderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != e.windowWidth || outsideHeight != e.windowHeight {
		e.windowWidth = outsideWidth
		e.windowHeight = outsideHeight
		logger.Debug("Window resized", "width", outsideWidth, "height", outsideHeight)
	}
	return outsideWidth, outsideHeight
}
