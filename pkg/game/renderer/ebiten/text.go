package ebiten

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"mazerunner/pkg/game/renderer"
)

// textSegment represents a segment of text with a specific color
type textSegment struct {
	text  string
	color color.Color
}

// styleColor maps a text style to the palette
func styleColor(style renderer.TextStyle) color.Color {
	switch style {
	case renderer.StyleWall, renderer.StylePassage:
		return colorPassage
	case renderer.StyleUncarved:
		return colorUncarved
	case renderer.StyleSolution:
		return colorSolution
	case renderer.StylePlayer:
		return colorPlayer
	case renderer.StyleGoal:
		return colorGoal
	case renderer.StyleCursor:
		return colorCursor
	case renderer.StyleAction, renderer.StyleActionShort:
		return colorAction
	case renderer.StyleDenied:
		return colorDenied
	case renderer.StyleRoom:
		return colorRoom
	case renderer.StyleSubtle:
		return colorSubtle
	default:
		return colorText
	}
}

// parseMarkup formats a message with markup (ROOM{}, ACTION{}, GT{}, ...) and returns colored segments
func parseMarkup(msg string, args ...any) []textSegment {
	spans := renderer.ParseMarkup(msg, args...)
	segments := make([]textSegment, 0, len(spans))
	for _, s := range spans {
		if s.Text == "" {
			continue
		}
		segments = append(segments, textSegment{text: s.Text, color: styleColor(s.Style)})
	}
	return segments
}

// applyAlpha applies an alpha value to a color
func applyAlpha(c color.Color, alpha float64) color.Color {
	alpha = max(0, min(1, alpha))

	r, g, b, a := c.RGBA()
	// RGBA returns values in 0-65535 range, convert to 0-255.
	// RGB is scaled too so colors fade to transparent black.
	return color.RGBA{
		uint8(float64(r>>8) * alpha),
		uint8(float64(g>>8) * alpha),
		uint8(float64(b>>8) * alpha),
		uint8(float64(a>>8) * alpha),
	}
}

// drawColoredCharF draws a glyph centred on x, y using the mono font
func (e *EbitenRenderer) drawColoredCharF(screen *ebiten.Image, char string, x, y float64, col color.Color) {
	face := e.getMonoFontFace()

	// text/v2 Draw uses top-left as the origin point
	w, h := text.Measure(char, face, 0)

	op := &text.DrawOptions{}
	op.GeoM.Translate(x-w/2, y-h/2)
	op.ColorScale.ScaleWithColor(col)

	text.Draw(screen, char, face, op)
}

// drawColoredTextSegments draws segments left to right starting at x, y
func (e *EbitenRenderer) drawColoredTextSegments(screen *ebiten.Image, segments []textSegment, x, y int) {
	face := e.getSansFontFace()
	currentX := float64(x)

	for _, seg := range segments {
		op := &text.DrawOptions{}
		op.GeoM.Translate(currentX, float64(y))
		op.ColorScale.ScaleWithColor(seg.color)

		text.Draw(screen, seg.text, face, op)

		w, _ := text.Measure(seg.text, face, 0)
		currentX += w
	}
}

// drawMarkup formats and draws a marked-up message
func (e *EbitenRenderer) drawMarkup(screen *ebiten.Image, msg string, x, y int) {
	e.drawColoredTextSegments(screen, parseMarkup("%s", msg), x, y)
}

// getTextWidth returns the width of a string in pixels at UI font size
func (e *EbitenRenderer) getTextWidth(str string) float64 {
	w, _ := text.Measure(str, e.getSansFontFace(), 0)
	return w
}
