// Package ebiten provides an Ebiten-based 2D graphical renderer for Mazerunner.
package ebiten

import "image/color"

// Color palette for the game
var (
	colorBackground    = color.RGBA{26, 26, 46, 255}    // Dark blue-gray
	colorMapBackground = color.RGBA{15, 15, 26, 255}    // Darker for map area
	colorPlayer        = color.RGBA{0, 255, 0, 255}     // Bright green
	colorPassage       = color.RGBA{160, 160, 180, 255} // Light gray for carved cells
	colorUncarved      = color.RGBA{45, 45, 65, 255}    // Barely visible until carved
	colorSolution      = color.RGBA{255, 200, 100, 255} // Orange trail
	colorGoal          = color.RGBA{100, 255, 100, 255} // Bright green
	colorCursor        = color.RGBA{100, 150, 255, 255} // Bright blue
	colorStairs        = color.RGBA{220, 170, 255, 255} // Bright purple
	colorSubtle        = color.RGBA{120, 130, 180, 255} // Soft blue-purple-gray
	colorText          = color.RGBA{200, 210, 245, 255} // Soft off-white with blue-purple tint
	colorAction        = color.RGBA{180, 150, 250, 255} // Blue-purple
	colorDenied        = color.RGBA{255, 100, 100, 255} // Bright red
	colorRoom          = color.RGBA{100, 150, 255, 255} // Bright blue
	colorPanel         = color.RGBA{30, 30, 50, 220}    // Semi-transparent dark
)

// Glyphs drawn with the monospace face
const (
	PlayerIcon = "@"
	IconGoal   = "★"
)

const (
	defaultWindowWidth  = 1024
	defaultWindowHeight = 768

	tileSizeStep = 4
	baseFontSize = 16.0 // Base font size at the default tile size

	// Pixel heights of the header and footer panels
	headerHeight = 56
	footerHeight = 152
)

// Fractions of the remaining distance covered per frame
const (
	cameraEase = 0.15
	playerEase = 0.25

	// Below this distance, in cells, a slide counts as finished
	settleDistance = 0.01
)

// Fractions of the tile size
const (
	passageWidth = 0.6
	nodeRadius   = 0.3
	markerRadius = 0.35
	trailWidth   = 0.15
)
