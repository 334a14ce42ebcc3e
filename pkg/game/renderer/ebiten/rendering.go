package ebiten

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"mazerunner/pkg/engine/world"
	"mazerunner/pkg/game/renderer"
	"mazerunner/pkg/game/state"
)

// Draw renders the game screen (Ebiten interface)
func (e *EbitenRenderer) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	g := e.game
	if g == nil || e.monoFontSource == nil || e.sansFontSource == nil {
		return
	}

	w, h := e.windowWidth, e.windowHeight
	mapH := max(0, h-headerHeight-footerHeight)
	vector.DrawFilledRect(screen, 0, headerHeight, float32(w), float32(mapH), colorMapBackground, false)

	e.drawMaze(screen, g, 0, headerHeight, w, mapH)

	// Fade covers the map only so the status stays readable
	if alpha := g.TransitionAlpha(); alpha > 0 {
		vector.DrawFilledRect(screen, 0, headerHeight, float32(w), float32(mapH), applyAlpha(colorMapBackground, alpha), false)
	}

	e.drawHeader(screen, g, w)
	e.drawFooter(screen, g, w, h)
}

// viewRadius returns how many cells fit between the map centre and its edge
func (e *EbitenRenderer) viewRadius(mapW, mapH int) int {
	return int(math.Ceil(float64(max(mapW, mapH))/float64(e.tileSize)/2)) + 1
}

// toScreen converts a position in cell units to pixels on a map whose
// centre is cx, cy
func (e *EbitenRenderer) toScreen(x, y, cx, cy float64) (float32, float32) {
	ts := float64(e.tileSize)
	return float32(cx + (x-e.cameraX)*ts), float32(cy + (y-e.cameraY)*ts)
}

// drawMaze draws the visible cells, their passages and the markers
func (e *EbitenRenderer) drawMaze(screen *ebiten.Image, g *state.Game, mapX, mapY, mapW, mapH int) {
	view := renderer.VisibleCells(g, e.viewRadius(mapW, mapH))
	if view.Focus == nil {
		return
	}

	cx := float64(mapX) + float64(mapW)/2
	cy := float64(mapY) + float64(mapH)/2
	ts := float32(e.tileSize)
	topo := g.Maze.Topology()
	rect := renderer.IsRectilinear(topo)

	var path []*world.Cell
	if g.ShowSolution {
		path = g.Solution()
	}

	// Passages first so the cells cover the joins
	for _, c := range view.Cells {
		x0, y0 := e.toScreen(c.Pos.X, c.Pos.Y, cx, cy)
		for _, n := range c.ConnectedNeighbors() {
			if n.Pos.Layer != c.Pos.Layer {
				continue
			}
			mx, my := e.toScreen((c.Pos.X+n.Pos.X)/2, (c.Pos.Y+n.Pos.Y)/2, cx, cy)
			vector.StrokeLine(screen, x0, y0, mx, my, ts*passageWidth, colorPassage, true)
		}
	}

	for _, c := range view.Cells {
		x, y := e.toScreen(c.Pos.X, c.Pos.Y, cx, cy)
		clr := color.Color(colorPassage)
		if c.ConnectionCount() == 0 {
			clr = colorUncarved
		}
		if rect {
			half := ts * passageWidth / 2
			vector.DrawFilledRect(screen, x-half, y-half, half*2, half*2, clr, false)
		} else {
			vector.DrawFilledCircle(screen, x, y, ts*nodeRadius, clr, true)
		}
		if s := renderer.StairsGlyph(topo, c); s != "" {
			e.drawColoredCharF(screen, s, float64(x), float64(y), colorStairs)
		}
	}

	if len(path) > 1 {
		e.drawTrail(screen, path, view.Focus.Pos.Layer, cx, cy)
	}

	if g.IsCarving() {
		if c := g.Maze.LastChangedCell(); c != nil {
			x, y := e.toScreen(c.Pos.X, c.Pos.Y, cx, cy)
			vector.DrawFilledCircle(screen, x, y, ts*markerRadius, colorCursor, true)
		}
		return
	}

	if goal := g.Goal(); goal != nil && goal.Pos.Layer == view.Focus.Pos.Layer {
		x, y := e.toScreen(goal.Pos.X, goal.Pos.Y, cx, cy)
		e.drawColoredCharF(screen, IconGoal, float64(x), float64(y), colorGoal)
	}

	px, py := e.toScreen(e.playerX, e.playerY, cx, cy)
	vector.DrawFilledCircle(screen, px, py, ts*markerRadius, colorPlayer, true)
	e.drawColoredCharF(screen, PlayerIcon, float64(px), float64(py), colorMapBackground)
}

// drawTrail strokes the solution from the player to the goal on one layer
func (e *EbitenRenderer) drawTrail(screen *ebiten.Image, path []*world.Cell, layer int, cx, cy float64) {
	ts := float32(e.tileSize)
	for i := 1; i < len(path); i++ {
		a, b := path[i-1], path[i]
		if a.Pos.Layer != layer || b.Pos.Layer != layer {
			continue
		}
		x0, y0 := e.toScreen(a.Pos.X, a.Pos.Y, cx, cy)
		x1, y1 := e.toScreen(b.Pos.X, b.Pos.Y, cx, cy)
		vector.StrokeLine(screen, x0, y0, x1, y1, ts*trailWidth, colorSolution, true)
	}
}

// drawHeader draws the title and status line
func (e *EbitenRenderer) drawHeader(screen *ebiten.Image, g *state.Game, width int) {
	vector.DrawFilledRect(screen, 0, 0, float32(width), headerHeight, colorPanel, false)

	const pad = 12
	e.drawColoredTextSegments(screen, []textSegment{{text: "Mazerunner", color: colorAction}}, pad, pad)

	status := renderer.StatusLine(g)
	x := width - pad - int(e.getTextWidth(renderer.PlainText("%s", status)))
	e.drawMarkup(screen, status, max(pad, x), pad)
}

// drawFooter draws the message log with the newest message last, then the
// key help
func (e *EbitenRenderer) drawFooter(screen *ebiten.Image, g *state.Game, width, height int) {
	top := height - footerHeight
	vector.DrawFilledRect(screen, 0, float32(top), float32(width), footerHeight, colorPanel, false)

	const pad = 8
	lineHeight := int(e.getUIFontSize()) + 4
	y := top + pad
	for i, msg := range g.Messages {
		// Older messages fade
		alpha := 0.4 + 0.6*float64(i+1)/float64(len(g.Messages))
		segments := parseMarkup("%s", msg)
		for j := range segments {
			segments[j].color = applyAlpha(segments[j].color, alpha)
		}
		e.drawColoredTextSegments(screen, segments, pad, y)
		y += lineHeight
	}

	e.drawMarkup(screen, renderer.HelpLine(), pad, height-pad-lineHeight)
}
