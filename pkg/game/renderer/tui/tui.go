package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gookit/color"
	"github.com/zyedidia/generic/mapset"

	"mazerunner/pkg/engine/input"
	"mazerunner/pkg/engine/terminal"
	"mazerunner/pkg/engine/topology"
	"mazerunner/pkg/engine/world"
	"mazerunner/pkg/game/gameplay"
	"mazerunner/pkg/game/renderer"
	"mazerunner/pkg/game/state"
)

// Icon constants
const (
	PlayerIcon    = "@"
	IconGoal      = "★"
	IconCursor    = "▒"
	IconWall      = "█"
	IconFloor     = " "
	IconUncarved  = "░"
	IconNode      = "○"
	IconSolution  = "·"
	IconVoid      = " "
	IconFadedVoid = "·"
)

// FramesPerSecond is how often the game is ticked and redrawn
const FramesPerSecond = 30

// Rows kept free for the header, messages and help
const reservedRows = 11

// TUIRenderer is the terminal-based renderer implementation
type TUIRenderer struct {
	out io.Writer

	colorWall        color.Style
	colorPassage     color.Style
	colorUncarved    color.Style
	colorSolution    color.Style
	colorPlayer      color.Style
	colorGoal        color.Style
	colorCursor      color.Style
	colorAction      color.Style
	colorActionShort color.Style
	colorDenied      color.Style
	colorRoom        color.Style
	colorSubtle      color.Style
}

// New creates a new TUI renderer
func New() *TUIRenderer {
	return &TUIRenderer{out: os.Stdout}
}

// Init initializes the TUI renderer (colors, etc.)
func (t *TUIRenderer) Init() error {
	t.colorWall = color.Style{color.FgWhite}
	t.colorPassage = color.Style{color.FgWhite}
	t.colorUncarved = color.Style{color.FgGray}
	t.colorSolution = color.Style{color.FgYellow, color.OpBold}
	t.colorPlayer = color.Style{color.FgGreen, color.BgBlack, color.OpBold}
	t.colorGoal = color.Style{color.FgGreen}
	t.colorCursor = color.Style{color.FgCyan, color.OpBold}
	t.colorAction = color.Style{color.FgMagenta}
	t.colorActionShort = color.Style{color.FgMagenta, color.OpBold}
	t.colorDenied = color.Style{color.FgRed, color.OpBold}
	t.colorRoom = color.Style{color.FgBlue}
	t.colorSubtle = color.Style{color.FgGray, color.OpBold}
	return nil
}

// StyleText applies a style to text
func (t *TUIRenderer) StyleText(text string, style renderer.TextStyle) string {
	switch style {
	case renderer.StyleWall:
		return t.colorWall.Sprint(text)
	case renderer.StylePassage:
		return t.colorPassage.Sprint(text)
	case renderer.StyleUncarved:
		return t.colorUncarved.Sprint(text)
	case renderer.StyleSolution:
		return t.colorSolution.Sprint(text)
	case renderer.StylePlayer:
		return t.colorPlayer.Sprint(text)
	case renderer.StyleGoal:
		return t.colorGoal.Sprint(text)
	case renderer.StyleCursor:
		return t.colorCursor.Sprint(text)
	case renderer.StyleAction:
		return t.colorAction.Sprint(text)
	case renderer.StyleActionShort:
		return t.colorActionShort.Sprint(text)
	case renderer.StyleDenied:
		return t.colorDenied.Sprint(text)
	case renderer.StyleRoom:
		return t.colorRoom.Sprint(text)
	case renderer.StyleSubtle:
		return t.colorSubtle.Sprint(text)
	default:
		return text
	}
}

// FormatText formats a message with the markup system
func (t *TUIRenderer) FormatText(msg string, args ...any) string {
	var b strings.Builder
	for _, span := range renderer.ParseMarkup(msg, args...) {
		b.WriteString(t.StyleText(span.Text, span.Style))
	}
	return b.String()
}

// Run puts the terminal in raw mode and drives g at FramesPerSecond until the
// player quits, stdin closes or ctx is cancelled
func (t *TUIRenderer) Run(ctx context.Context, g *state.Game) error {
	reader := input.NewKeyReader()
	restore, err := reader.EnterRaw()
	if err != nil {
		return err
	}
	defer restore()

	terminal.HideCursor(t.out)
	defer terminal.ShowCursor(t.out)

	intents := make(chan input.Intent, 16)
	readErr := make(chan error, 1)
	go func() {
		for {
			intent, err := reader.ReadIntent()
			if err != nil {
				readErr <- err
				return
			}
			if intent.IsNone() {
				continue
			}
			select {
			case intents <- intent:
			default:
				// Channel full, drop input
			}
		}
	}()

	ticker := time.NewTicker(time.Second / FramesPerSecond)
	defer ticker.Stop()

	for !g.Quit {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-readErr:
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("tui: reading input: %w", err)
		case intent := <-intents:
			gameplay.ProcessIntent(g, intent)
		case <-ticker.C:
			gameplay.Tick(g)
			width, height := terminal.GetSize()
			t.draw(g, width, height)
		}
	}
	return nil
}

// draw writes one full frame
func (t *TUIRenderer) draw(g *state.Game, width, height int) {
	var buf bytes.Buffer
	terminal.Clear(&buf)
	buf.WriteString(strings.Join(t.Frame(g, width, height), "\r\n"))
	t.out.Write(buf.Bytes())
}

// Frame renders g into lines for a width × height terminal
func (t *TUIRenderer) Frame(g *state.Game, width, height int) []string {
	sx, sy := charScale(g.Maze.Topology())
	radius := min(g.ViewRadius, terminal.FitRadius(width, height, int(sx), int(sy), reservedRows))

	lines := []string{
		t.colorAction.Sprint("Mazerunner"),
		t.FormatText("%s", renderer.StatusLine(g)),
		"",
	}

	maze := t.renderMaze(g, radius)
	if g.TransitionAlpha() >= 0.5 {
		for i := range maze {
			maze[i] = t.colorSubtle.Sprint(strings.Repeat(IconFadedVoid, utf8.RuneCountInString(color.ClearCode(maze[i]))))
		}
	}
	lines = append(lines, maze...)
	lines = append(lines, "")

	for _, msg := range g.Messages {
		lines = append(lines, "  "+t.FormatText("%s", msg))
	}
	lines = append(lines, t.FormatText("%s", renderer.HelpLine()))
	return lines
}

// point is a character position relative to the focus cell
type point struct {
	x, y int
}

// glyph is one styled character on the canvas
type glyph struct {
	text  string
	style renderer.TextStyle
}

// charScale returns how many characters one display unit spans. Square
// lattices use two so walls fit between cells; the axial lattices use more
// columns so diagonal passages do not collide with cells.
func charScale(topo topology.Topology) (sx, sy float64) {
	if renderer.IsRectilinear(topo) {
		return 2, 2
	}
	return 4, 2 / (math.Sqrt(3) / 2)
}

// rectOffsets are the wall positions of the four planar slots, in slot order
var rectOffsets = []point{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// renderMaze draws the cells within radius of the focus
func (t *TUIRenderer) renderMaze(g *state.Game, radius int) []string {
	view := renderer.VisibleCells(g, radius)
	if view.Focus == nil {
		return nil
	}

	topo := g.Maze.Topology()
	sx, sy := charScale(topo)
	fp := view.Focus.Pos
	toScreen := func(x, y float64) point {
		return point{
			x: int(math.Round((x - fp.X) * sx)),
			y: int(math.Round((y - fp.Y) * sy)),
		}
	}

	onPath := mapset.New[*world.Cell]()
	if g.ShowSolution {
		for _, c := range g.Solution() {
			onPath.Put(c)
		}
	}

	canvas := make(map[point]glyph)
	rect := renderer.IsRectilinear(topo)
	for _, c := range view.Cells {
		p := toScreen(c.Pos.X, c.Pos.Y)
		canvas[p] = t.cellGlyph(g, c, onPath.Has(c))

		if rect {
			for _, dx := range []int{-1, 1} {
				for _, dy := range []int{-1, 1} {
					canvas[point{p.x + dx, p.y + dy}] = glyph{IconWall, renderer.StyleWall}
				}
			}
			for d, off := range rectOffsets {
				q := point{p.x + off.x, p.y + off.y}
				if !c.IsConnectedIn(world.Direction(d)) {
					canvas[q] = glyph{IconWall, renderer.StyleWall}
					continue
				}
				canvas[q] = glyph{IconFloor, renderer.StylePassage}
				if onPath.Has(c) && onPath.Has(c.Neighbor(world.Direction(d))) {
					canvas[q] = glyph{IconSolution, renderer.StyleSolution}
				}
			}
			continue
		}

		for _, n := range c.ConnectedNeighbors() {
			q := toScreen((c.Pos.X+n.Pos.X)/2, (c.Pos.Y+n.Pos.Y)/2)
			np := toScreen(n.Pos.X, n.Pos.Y)
			style := renderer.StylePassage
			if onPath.Has(c) && onPath.Has(n) {
				style = renderer.StyleSolution
			}
			canvas[q] = glyph{passageGlyph(np.x-p.x, np.y-p.y), style}
		}
	}

	return t.rasterize(canvas)
}

// cellGlyph picks the icon for a cell, most important first
func (t *TUIRenderer) cellGlyph(g *state.Game, c *world.Cell, onPath bool) glyph {
	switch {
	case c == g.CurrentCell && !g.IsCarving():
		return glyph{PlayerIcon, renderer.StylePlayer}
	case c == g.Goal():
		return glyph{IconGoal, renderer.StyleGoal}
	case g.IsCarving() && c == g.Maze.LastChangedCell():
		return glyph{IconCursor, renderer.StyleCursor}
	}
	if s := renderer.StairsGlyph(g.Maze.Topology(), c); s != "" {
		if onPath {
			return glyph{s, renderer.StyleSolution}
		}
		return glyph{s, renderer.StylePassage}
	}
	switch {
	case onPath:
		return glyph{IconSolution, renderer.StyleSolution}
	case c.ConnectionCount() == 0:
		return glyph{IconUncarved, renderer.StyleUncarved}
	case renderer.IsRectilinear(g.Maze.Topology()):
		return glyph{IconFloor, renderer.StylePassage}
	default:
		return glyph{IconNode, renderer.StylePassage}
	}
}

// passageGlyph draws a passage between two cells dx, dy characters apart
func passageGlyph(dx, dy int) string {
	switch {
	case dy == 0:
		return "─"
	case dx == 0:
		return "│"
	case (dx > 0) == (dy > 0):
		return "╲"
	default:
		return "╱"
	}
}

// rasterize turns the sparse canvas into lines
func (t *TUIRenderer) rasterize(canvas map[point]glyph) []string {
	if len(canvas) == 0 {
		return nil
	}
	minX, minY := math.MaxInt, math.MaxInt
	maxX, maxY := math.MinInt, math.MinInt
	for p := range canvas {
		minX, maxX = min(minX, p.x), max(maxX, p.x)
		minY, maxY = min(minY, p.y), max(maxY, p.y)
	}

	lines := make([]string, 0, maxY-minY+1)
	for y := minY; y <= maxY; y++ {
		var b strings.Builder
		for x := minX; x <= maxX; x++ {
			gl, ok := canvas[point{x, y}]
			if !ok {
				b.WriteString(IconVoid)
				continue
			}
			b.WriteString(t.StyleText(gl.text, gl.style))
		}
		lines = append(lines, b.String())
	}
	return lines
}
