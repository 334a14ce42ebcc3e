package terminal

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// ANSI control sequences
const (
	clearScreen = "\x1b[2J\x1b[H"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
)

// GetSize returns the current terminal width and height.
// Falls back to defaults if the size cannot be determined.
func GetSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// IsInteractive reports whether both stdin and stdout are terminals
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// Clear moves the cursor home and clears the screen
func Clear(w io.Writer) {
	fmt.Fprint(w, clearScreen)
}

// HideCursor hides the cursor until ShowCursor is called
func HideCursor(w io.Writer) {
	fmt.Fprint(w, hideCursor)
}

// ShowCursor makes the cursor visible again
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, showCursor)
}

// FitRadius returns the largest view radius, in cells, whose square window
// fits in a width × height character area when each cell takes cellW × cellH
// characters and reserved rows are kept free. Never returns less than 1.
func FitRadius(width, height, cellW, cellH, reserved int) int {
	if cellW <= 0 || cellH <= 0 {
		return 1
	}
	byWidth := (width/cellW - 1) / 2
	byHeight := ((height-reserved)/cellH - 1) / 2
	return max(1, min(byWidth, byHeight))
}
