package renderer

import (
	"context"

	"mazerunner/pkg/game/state"
)

// TextStyle represents different text styling options
type TextStyle int

const (
	StyleNormal TextStyle = iota
	StyleWall
	StylePassage
	StyleUncarved
	StyleSolution
	StylePlayer
	StyleGoal
	StyleCursor
	StyleAction
	StyleActionShort
	StyleDenied
	StyleRoom
	StyleSubtle
)

// Renderer defines the interface for game rendering backends.
// A backend owns the frame loop: it ticks the game once per frame and feeds
// it the player's intents until the game quits.
type Renderer interface {
	// Init initializes the renderer (colors, fonts, window, etc.)
	Init() error

	// Run drives g until the player quits or ctx is cancelled
	Run(ctx context.Context, g *state.Game) error

	// StyleText applies a style to text and returns the styled string
	// For TUI this applies ANSI colors, for GUI it may return markup
	StyleText(text string, style TextStyle) string

	// FormatText formats a message with the renderer's markup system
	FormatText(msg string, args ...any) string
}

// Current holds the active renderer instance
var Current Renderer

// SetRenderer sets the active renderer
func SetRenderer(r Renderer) {
	Current = r
}

// StyleText applies a style to text
func StyleText(text string, style TextStyle) string {
	if Current != nil {
		return Current.StyleText(text, style)
	}
	return text
}

// FormatText formats a message with markup
func FormatText(msg string, args ...any) string {
	if Current != nil {
		return Current.FormatText(msg, args...)
	}
	return PlainText(msg, args...)
}
