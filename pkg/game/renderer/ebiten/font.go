package ebiten

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// loadFonts parses the bundled Go fonts
func (e *EbitenRenderer) loadFonts() error {
	mono, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return fmt.Errorf("ebiten: loading mono font: %w", err)
	}
	sans, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return fmt.Errorf("ebiten: loading sans font: %w", err)
	}
	e.monoFontSource = mono
	e.sansFontSource = sans
	return nil
}

// getTileFontSize returns the font size for map glyphs, scaled to the current tile size
func (e *EbitenRenderer) getTileFontSize() float64 {
	// Scale font size based on tile size (default tile size is 32)
	return baseFontSize * float64(e.tileSize) / 32.0
}

// getUIFontSize returns the font size for UI text. It does not follow zoom.
func (e *EbitenRenderer) getUIFontSize() float64 {
	return baseFontSize
}

// getMonoFontFace returns a cached monospace font face for map glyphs
func (e *EbitenRenderer) getMonoFontFace() *text.GoTextFace {
	size := e.getTileFontSize()
	if e.cachedMonoFace == nil || e.cachedTileFontSize != size {
		e.cachedTileFontSize = size
		e.cachedMonoFace = &text.GoTextFace{
			Source: e.monoFontSource,
			Size:   size,
		}
	}
	return e.cachedMonoFace
}

// getSansFontFace returns a cached sans-serif font face for UI text
func (e *EbitenRenderer) getSansFontFace() *text.GoTextFace {
	size := e.getUIFontSize()
	if e.cachedSansFace == nil || e.cachedUIFontSize != size {
		e.cachedUIFontSize = size
		e.cachedSansFace = &text.GoTextFace{
			Source: e.sansFontSource,
			Size:   size,
		}
	}
	return e.cachedSansFace
}

// invalidateFontCache clears cached font faces (call when tile size changes)
func (e *EbitenRenderer) invalidateFontCache() {
	e.cachedMonoFace = nil
	e.cachedSansFace = nil
}
