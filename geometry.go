package img2ascii

import (
	"fmt"
	"math"
)

// ComputeGrid returns the glyph grid size for a source image.
//
// The width is scaled by aspectRatio. The height is additionally scaled by
// glyphAspect (advance width / line height of the rendering glyph), which
// squashes the grid vertically so that tall glyphs do not stretch the
// picture. Both results are floored.
func ComputeGrid(srcWidth, srcHeight int, aspectRatio, glyphAspect float64) (int, int, error) {
	if srcWidth <= 0 || srcHeight <= 0 {
		return 0, 0, fmt.Errorf("%w: source is %dx%d", ErrDegenerateGeometry, srcWidth, srcHeight)
	}

	width := int(math.Floor(float64(srcWidth) * aspectRatio))
	height := int(math.Floor(float64(srcHeight) * glyphAspect * aspectRatio))

	if width < 1 || height < 1 {
		return 0, 0, fmt.Errorf("%w: %dx%d source gives %dx%d grid (aspect %.3g, glyph aspect %.3g)",
			ErrDegenerateGeometry, srcWidth, srcHeight, width, height, aspectRatio, glyphAspect)
	}
	return width, height, nil
}
