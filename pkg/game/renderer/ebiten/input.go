package ebiten

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	engineinput "mazerunner/pkg/engine/input"
	"mazerunner/pkg/engine/logger"
	"mazerunner/pkg/game/config"
	"mazerunner/pkg/game/gameplay"
)

// keyCodes maps Ebiten keys to the raw codes the bindings use
var keyCodes = map[ebiten.Key]string{
	ebiten.KeyW:              "w",
	ebiten.KeyA:              "a",
	ebiten.KeyS:              "s",
	ebiten.KeyD:              "d",
	ebiten.KeyX:              "x",
	ebiten.KeyZ:              "z",
	ebiten.KeyE:              "e",
	ebiten.KeySpace:          "space",
	ebiten.KeyArrowUp:        "arrow_up",
	ebiten.KeyArrowDown:      "arrow_down",
	ebiten.KeyArrowLeft:      "arrow_left",
	ebiten.KeyArrowRight:     "arrow_right",
	ebiten.KeySlash:          "/",
	ebiten.KeyG:              "g",
	ebiten.KeyR:              "r",
	ebiten.KeyT:              "t",
	ebiten.KeyC:              "c",
	ebiten.KeyEqual:          "=",
	ebiten.KeyNumpadAdd:      "numpad_add",
	ebiten.KeyMinus:          "-",
	ebiten.KeyNumpadSubtract: "numpad_subtract",
	ebiten.KeyQ:              "q",
	ebiten.KeyEscape:         "escape",
}

// Update handles input and advances the game one frame (Ebiten interface)
func (e *EbitenRenderer) Update() error {
	// Log window opening on first update (confirms window is actually running)
	if !e.windowOpenedLogged {
		e.windowOpenedLogged = true
		w, h := ebiten.WindowSize()
		logger.Info("Main window opened", "width", w, "height", h)
	}

	if e.ctx != nil && e.ctx.Err() != nil {
		return ebiten.Termination
	}
	g := e.game
	if g == nil {
		return nil
	}

	// 0 resets the zoom; it has no binding of its own
	if inpututil.IsKeyJustPressed(ebiten.Key0) || inpututil.IsKeyJustPressed(ebiten.KeyNumpad0) {
		e.setTileSize(config.DefaultTileSize)
	}
	for _, intent := range e.checkInput() {
		e.handleIntent(intent)
	}

	gameplay.Tick(g)
	e.updateView()

	// One queued move per settled slide so runs are drawn one at a time
	if !e.moves.Empty() && e.playerSettled() {
		gameplay.ProcessIntent(g, e.moves.Dequeue())
	}
	if g.IsTransitioning() || g.IsCarving() {
		e.clearMoves()
	}

	if g.Quit {
		return ebiten.Termination
	}
	return nil
}

// checkInput converts this frame's key presses into intents
func (e *EbitenRenderer) checkInput() []engineinput.Intent {
	var intents []engineinput.Intent
	for _, key := range inpututil.AppendJustPressedKeys(nil) {
		code, ok := keyCodes[key]
		if !ok {
			continue
		}
		raw := engineinput.RawInput{Device: engineinput.DeviceKeyboard, Code: code, Timestamp: time.Now()}
		intent := engineinput.MapToIntent(engineinput.NewDebouncedInput(raw))
		if !intent.IsNone() {
			intents = append(intents, intent)
		}
	}
	return intents
}

// handleIntent queues moves and applies everything else at once. Zooming
// changes the tile size here instead of the terminal's view radius.
func (e *EbitenRenderer) handleIntent(intent engineinput.Intent) {
	switch intent.Action {
	case engineinput.ActionMove:
		e.moves.Enqueue(intent)
	case engineinput.ActionZoomIn:
		e.setTileSize(e.tileSize + tileSizeStep)
	case engineinput.ActionZoomOut:
		e.setTileSize(e.tileSize - tileSizeStep)
	default:
		gameplay.ProcessIntent(e.game, intent)
	}
}

// clearMoves drops queued moves
func (e *EbitenRenderer) clearMoves() {
	for !e.moves.Empty() {
		e.moves.Dequeue()
	}
}

// setTileSize clamps and applies size, then saves it as a preference
func (e *EbitenRenderer) setTileSize(size int) {
	size = max(config.MinTileSize, min(config.MaxTileSize, size))
	if size == e.tileSize {
		return
	}
	e.tileSize = size
	e.invalidateFontCache()
	if err := config.Current().SetTileSize(size); err != nil {
		// Not critical, the window keeps the new size
		logger.Warning("Could not save preferences", "error", err)
	}
}

// updateView eases the camera toward the focus cell and the player sprite
// toward the player's cell. A new maze snaps both.
func (e *EbitenRenderer) updateView() {
	g := e.game
	focus := g.Focus()
	if focus == nil {
		return
	}

	if e.viewGeneration != g.Generation {
		e.viewGeneration = g.Generation
		e.cameraX, e.cameraY = focus.Pos.X, focus.Pos.Y
		e.playerX, e.playerY = focus.Pos.X, focus.Pos.Y
	}

	e.cameraX = ease(e.cameraX, focus.Pos.X, cameraEase)
	e.cameraY = ease(e.cameraY, focus.Pos.Y, cameraEase)

	if g.CurrentCell == nil || g.IsCarving() {
		e.playerX, e.playerY = focus.Pos.X, focus.Pos.Y
		return
	}
	e.playerX = ease(e.playerX, g.CurrentCell.Pos.X, playerEase)
	e.playerY = ease(e.playerY, g.CurrentCell.Pos.Y, playerEase)
}

// playerSettled reports whether the player sprite has reached its cell
func (e *EbitenRenderer) playerSettled() bool {
	c := e.game.CurrentCell
	if c == nil {
		return true
	}
	return math.Hypot(c.Pos.X-e.playerX, c.Pos.Y-e.playerY) < settleDistance
}

// ease moves from toward to by rate of the remaining distance, snapping
// once close enough
func ease(from, to, rate float64) float64 {
	if math.Abs(to-from) < settleDistance {
		return to
	}
	return from + (to-from)*rate
}
