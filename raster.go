package img2ascii

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

var (
	// CanvasBackground fills the rendered canvas.
	CanvasBackground = color.Gray{Y: 255}
	// CanvasInk is the glyph color.
	CanvasInk = color.Gray{Y: 0}
)

// CanvasSize returns the pixel size of a canvas holding a glyph grid.
func CanvasSize(gridWidth, gridHeight int, m GlyphMetrics) (int, int) {
	return int(math.Round(float64(gridWidth) * m.Advance)),
		int(math.Round(float64(gridHeight) * float64(m.LineHeight)))
}

// RenderImage draws glyph text onto a blank canvas. Every glyph occupies a
// fixed cell: column c, row r is drawn with its top-left corner at
// (c*advance, r*lineHeight). The text must have gridHeight rows of
// gridWidth glyphs each.
func RenderImage(text string, gridWidth, gridHeight int, f *Font) (*image.Gray, error) {
	rows := SplitRows(text)
	if len(rows) != gridHeight {
		return nil, fmt.Errorf("%w: %d rows, want %d", ErrMalformedText, len(rows), gridHeight)
	}
	for i, row := range rows {
		if n := utf8.RuneCountInString(row); n != gridWidth {
			return nil, fmt.Errorf("%w: row %d has %d glyphs, want %d", ErrMalformedText, i, n, gridWidth)
		}
	}

	m := f.Metrics()
	width, height := CanvasSize(gridWidth, gridHeight, m)
	canvas := image.NewGray(image.Rect(0, 0, width, height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(CanvasBackground), image.Point{}, draw.Src)

	drawer := font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(CanvasInk),
		Face: f.face,
	}
	for r, row := range rows {
		// The drawer positions glyphs by their baseline.
		baseline := fixed.I(r*m.LineHeight + m.Ascent)
		c := 0
		for _, glyph := range row {
			if glyph != ' ' {
				drawer.Dot = fixed.Point26_6{
					X: fixed.Int26_6(math.Round(float64(c) * m.Advance * 64)),
					Y: baseline,
				}
				drawer.DrawString(string(glyph))
			}
			c++
		}
	}

	return canvas, nil
}
