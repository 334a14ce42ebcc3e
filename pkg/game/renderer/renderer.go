// Package renderer holds what the display backends share: the markup used in
// game messages, the view window around the focus cell and the status text.
package renderer

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/leonelquinteros/gotext"

	"mazerunner/pkg/engine/input"
	"mazerunner/pkg/engine/topology"
	"mazerunner/pkg/engine/world"
	"mazerunner/pkg/game/state"
	"mazerunner/pkg/game/stats"
)

// markupPattern matches FUNCTION{operand} spans in messages
var markupPattern = regexp.MustCompile(`([a-zA-Z_]*){([a-z A-Z0-9_,:/+=-]+)}`)

// dynamicGet is used for runtime translation key lookups.
// We use a function variable to avoid go vet's non-constant format string check,
// since we intentionally look up translation keys dynamically from markup.
var dynamicGet = gotext.Get

// Span is a run of message text drawn in one style
type Span struct {
	Text  string
	Style TextStyle
}

// ParseMarkup formats msg and splits it into styled spans. GT{key} is
// replaced with its translation.
func ParseMarkup(msg string, args ...any) []Span {
	ret := fmt.Sprintf(msg, args...)

	var spans []Span
	last := 0
	for _, m := range markupPattern.FindAllStringSubmatchIndex(ret, -1) {
		if m[0] > last {
			spans = append(spans, Span{Text: ret[last:m[0]]})
		}
		function := ret[m[2]:m[3]]
		operand := ret[m[4]:m[5]]

		switch function {
		case "GT":
			spans = append(spans, Span{Text: dynamicGet(operand)})
		case "ROOM":
			spans = append(spans, Span{Text: operand, Style: StyleRoom})
		case "ACTION":
			spans = append(spans,
				Span{Text: operand[0:1], Style: StyleActionShort},
				Span{Text: operand[1:], Style: StyleAction})
		case "DENIED":
			spans = append(spans, Span{Text: operand, Style: StyleDenied})
		case "EXIT":
			spans = append(spans, Span{Text: operand, Style: StyleGoal})
		case "SUBTLE":
			spans = append(spans, Span{Text: operand, Style: StyleSubtle})
		default:
			spans = append(spans, Span{Text: ret[m[0]:m[1]]})
		}
		last = m[1]
	}
	if last < len(ret) {
		spans = append(spans, Span{Text: ret[last:]})
	}
	return spans
}

// PlainText formats msg and strips the markup
func PlainText(msg string, args ...any) string {
	var b strings.Builder
	for _, s := range ParseMarkup(msg, args...) {
		b.WriteString(s.Text)
	}
	return b.String()
}

// View is the window of cells around the focus that a frame shows
type View struct {
	Focus  *world.Cell
	Radius int
	Cells  []*world.Cell
}

// VisibleCells returns the cells of g's maze within radius of the focus, in
// display units, on the focus layer
func VisibleCells(g *state.Game, radius int) View {
	v := View{Focus: g.Focus(), Radius: radius}
	if v.Focus == nil || g.Maze == nil {
		return v
	}
	fp := v.Focus.Pos
	r := float64(radius) + 0.5
	for _, c := range g.Maze.Cells() {
		if c.Pos.Layer != fp.Layer {
			continue
		}
		if math.Abs(c.Pos.X-fp.X) <= r && math.Abs(c.Pos.Y-fp.Y) <= r {
			v.Cells = append(v.Cells, c)
		}
	}
	return v
}

// IsRectilinear reports whether topo lays cells out on a square lattice
func IsRectilinear(topo topology.Topology) bool {
	switch topo.Name() {
	case topology.NameSquare, topology.NameCubical:
		return true
	}
	return false
}

// StairsGlyph returns the marker for a cell with an open vertical passage
func StairsGlyph(topo topology.Topology, c *world.Cell) string {
	if !topo.Is3D() {
		return ""
	}
	key := topo.TileKey(c.ConnectionVector())
	switch {
	case key&topology.TileStairsUp != 0:
		return "▲"
	case key&topology.TileStairsDown != 0:
		return "▼"
	}
	return ""
}

// StatusLine describes the current maze and timer, with markup
func StatusLine(g *state.Game) string {
	parts := []string{
		fmt.Sprintf("GT{MAZE} ACTION{%d}", g.Generation),
		fmt.Sprintf("ROOM{%s}/ROOM{%s}", g.Maze.Topology().Name(), g.CarverName),
	}
	if g.Focus() != nil && g.Maze.Topology().Is3D() {
		parts = append(parts, fmt.Sprintf("GT{LAYER} ACTION{%d}", g.Focus().Pos.Layer+1))
	}
	switch {
	case g.IsCarving():
		parts = append(parts, fmt.Sprintf("GT{CARVING} %d/%d", g.Maze.EdgeCount(), len(g.Maze.Cells())-1))
	default:
		parts = append(parts, fmt.Sprintf("GT{TIME} ACTION{%s}", stats.FormatDuration(g.Stats.Elapsed())))
	}
	if avg, ok := g.Stats.Average(); ok {
		parts = append(parts, fmt.Sprintf("GT{AVERAGE} %s", stats.FormatDuration(avg)))
	}
	return strings.Join(parts, "  ")
}

// HelpLine lists the key bindings, with markup
func HelpLine() string {
	byAction := input.GetBindingsByAction()
	actions := make([]input.Action, 0, len(byAction))
	for a := range byAction {
		if a == input.ActionMove || a == input.ActionNone {
			continue
		}
		actions = append(actions, a)
	}
	sort.Slice(actions, func(i, j int) bool { return actions[i] < actions[j] })

	parts := []string{"SUBTLE{wasd xze space}: move"}
	for _, a := range actions {
		parts = append(parts, fmt.Sprintf("SUBTLE{%s}: %s", shortest(byAction[a]), strings.ToLower(input.ActionName(a))))
	}
	return strings.Join(parts, "  ")
}

// shortest returns the shortest code, the first in sort order on ties
func shortest(codes []string) string {
	best := codes[0]
	for _, c := range codes[1:] {
		if len(c) < len(best) {
			best = c
		}
	}
	return best
}
