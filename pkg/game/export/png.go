package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/yalue/image_utils"

	"mazerunner/pkg/engine/maze"
	"mazerunner/pkg/engine/world"
)

const arrowLength = 16

// DefaultCellSize is the PNG cell size in pixels
const DefaultCellSize = 24

var (
	colorWall     = color.RGBA{20, 20, 30, 255}
	colorPassage  = color.RGBA{235, 235, 240, 255}
	colorSolution = color.RGBA{255, 170, 60, 255}
	colorStart    = color.RGBA{40, 180, 70, 255}
	colorEnd      = color.RGBA{100, 120, 255, 255}
)

// ImageOptions control how a maze is rasterized
type ImageOptions struct {
	CellSize     int
	ShowSolution bool
}

// layout places the layers of a maze side by side
type layout struct {
	minX, minY float64
	layerWidth float64
	cellSize   float64
	margin     float64
	width      int
	height     int
}

func newLayout(cells []*world.Cell, cellSize int) layout {
	l := layout{
		minX:     math.Inf(1),
		minY:     math.Inf(1),
		cellSize: float64(cellSize),
		margin:   float64(arrowLength + cellSize/2),
	}
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	layers := 1
	for _, c := range cells {
		l.minX, maxX = min(l.minX, c.Pos.X), max(maxX, c.Pos.X)
		l.minY, maxY = min(l.minY, c.Pos.Y), max(maxY, c.Pos.Y)
		layers = max(layers, c.Pos.Layer+1)
	}
	// One spare cell between layers
	l.layerWidth = (maxX - l.minX + 2) * l.cellSize
	l.width = int(math.Ceil(float64(layers)*l.layerWidth - l.cellSize + 2*l.margin))
	l.height = int(math.Ceil((maxY-l.minY)*l.cellSize + 2*l.margin))
	return l
}

// point returns the pixel centre of a cell
func (l layout) point(c *world.Cell) (float64, float64) {
	x := l.margin + float64(c.Pos.Layer)*l.layerWidth + (c.Pos.X-l.minX)*l.cellSize
	y := l.margin + (c.Pos.Y-l.minY)*l.cellSize
	return x, y
}

// RenderImage rasterizes a solved maze and marks the start and end with arrows
func RenderImage(m *maze.Maze, opts ImageOptions) (*image.RGBA, error) {
	if !m.HasPath() {
		return nil, ErrNotSolved
	}
	if opts.CellSize <= 0 {
		opts.CellSize = DefaultCellSize
	}
	cells := m.Cells()
	l := newLayout(cells, opts.CellSize)

	pic := image.NewRGBA(image.Rect(0, 0, l.width, l.height))
	draw.Draw(pic, pic.Bounds(), image.NewUniform(colorWall), image.Point{}, draw.Src)

	passage := l.cellSize * 0.6
	for _, c := range cells {
		x, y := l.point(c)
		fillSquare(pic, x, y, passage, colorPassage)
		for _, n := range c.ConnectedNeighbors() {
			if n.Pos.Layer != c.Pos.Layer {
				continue
			}
			nx, ny := l.point(n)
			fillSegment(pic, x, y, (x+nx)/2, (y+ny)/2, passage, colorPassage)
		}
	}

	if opts.ShowSolution {
		var prev *world.Cell
		for c := range m.SolutionFrom(m.End()) {
			if prev != nil && prev.Pos.Layer == c.Pos.Layer {
				x0, y0 := l.point(prev)
				x1, y1 := l.point(c)
				fillSegment(pic, x0, y0, x1, y1, l.cellSize*0.15, colorSolution)
			}
			prev = c
		}
	}

	return decorate(pic, l, m.Start(), m.End())
}

// decorate adds the start and end arrows above their cells
func decorate(pic *image.RGBA, l layout, start, end *world.Cell) (*image.RGBA, error) {
	decorated := image_utils.NewCompositeImage()
	if err := decorated.AddImage(pic, image.Pt(0, 0)); err != nil {
		return nil, fmt.Errorf("export: setting base maze image: %w", err)
	}
	for _, mark := range []struct {
		cell *world.Cell
		clr  color.Color
	}{{start, colorStart}, {end, colorEnd}} {
		x, y := l.point(mark.cell)
		tip := image.Pt(int(x), int(y-l.cellSize*0.3))
		pos := image.Pt(tip.X-arrowLength/2, tip.Y-arrowLength-1)
		if err := decorated.AddImage(getOutlinedArrow(mark.clr), pos); err != nil {
			return nil, fmt.Errorf("export: adding arrow: %w", err)
		}
	}
	return image_utils.ToRGBA(decorated), nil
}

// getOutlinedArrow returns a downward arrow with a white centre
func getOutlinedArrow(arrowColor color.Color) image.Image {
	outerArrow := image_utils.ResizeImage(image_utils.DownArrow(arrowColor),
		arrowLength, arrowLength)
	innerArrow := image_utils.ResizeImage(image_utils.DownArrow(color.White),
		arrowLength/2, arrowLength/2)
	toReturn := image_utils.NewCompositeImage()
	toReturn.AddImage(outerArrow, image.Pt(0, 0))
	toReturn.AddImage(innerArrow, image.Pt(arrowLength/4, arrowLength/4))
	return image_utils.ToRGBA(toReturn)
}

// fillSquare fills a size × size square centred on x, y
func fillSquare(pic *image.RGBA, x, y, size float64, clr color.Color) {
	half := size / 2
	r := image.Rect(int(math.Round(x-half)), int(math.Round(y-half)), int(math.Round(x+half)), int(math.Round(y+half)))
	draw.Draw(pic, r, image.NewUniform(clr), image.Point{}, draw.Src)
}

// fillSegment paints every pixel within width/2 of the segment
func fillSegment(pic *image.RGBA, x0, y0, x1, y1, width float64, clr color.Color) {
	half := width / 2
	bounds := image.Rect(
		int(math.Floor(min(x0, x1)-half)), int(math.Floor(min(y0, y1)-half)),
		int(math.Ceil(max(x0, x1)+half))+1, int(math.Ceil(max(y0, y1)+half))+1,
	).Intersect(pic.Bounds())

	dx, dy := x1-x0, y1-y0
	lenSq := dx*dx + dy*dy
	for py := bounds.Min.Y; py < bounds.Max.Y; py++ {
		for px := bounds.Min.X; px < bounds.Max.X; px++ {
			cx, cy := float64(px)+0.5, float64(py)+0.5
			t := 0.0
			if lenSq > 0 {
				t = max(0, min(1, ((cx-x0)*dx+(cy-y0)*dy)/lenSq))
			}
			if math.Hypot(cx-(x0+t*dx), cy-(y0+t*dy)) <= half {
				pic.Set(px, py, clr)
			}
		}
	}
}

// WritePNGFile renders the maze and writes it to path
func WritePNGFile(path string, m *maze.Maze, opts ImageOptions) error {
	pic, err := RenderImage(m, opts)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: creating %s: %w", path, err)
	}
	return writeAndClose(f, path, func(w io.Writer) error {
		if err := png.Encode(w, pic); err != nil {
			return fmt.Errorf("export: writing image to %s: %w", path, err)
		}
		return nil
	})
}
