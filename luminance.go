package img2ascii

import (
	"fmt"
	"image"

	"github.com/wbrown/img2ascii/imageutil"
)

// LuminanceGrid is a row-major buffer of 8-bit luminance samples.
// Stages never modify a grid they receive; they return a new one.
type LuminanceGrid struct {
	Width   int
	Height  int
	Samples []uint8
}

// NewLuminanceGrid copies samples into a new grid after checking that the
// buffer holds exactly width*height values.
func NewLuminanceGrid(width, height int, samples []uint8) (*LuminanceGrid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: grid is %dx%d", ErrDegenerateGeometry, width, height)
	}
	if len(samples) != width*height {
		return nil, fmt.Errorf("grid %dx%d needs %d samples, got %d",
			width, height, width*height, len(samples))
	}
	return &LuminanceGrid{
		Width:   width,
		Height:  height,
		Samples: append([]uint8(nil), samples...),
	}, nil
}

// LuminanceFromImage converts an image to grayscale and samples it.
func LuminanceFromImage(img image.Image) (*LuminanceGrid, error) {
	gray := imageutil.ToGrayscale(img)
	return NewLuminanceGrid(gray.Width(), gray.Height(), gray.Samples())
}

// At returns the sample at column x, row y.
func (g *LuminanceGrid) At(x, y int) uint8 {
	return g.Samples[y*g.Width+x]
}

// Image returns the grid as a grayscale image sharing no memory with g.
func (g *LuminanceGrid) Image() *imageutil.GrayImage {
	return imageutil.NewGrayImageFromPix(g.Width, g.Height, append([]uint8(nil), g.Samples...))
}

// withSamples returns a grid of the same size holding samples.
func (g *LuminanceGrid) withSamples(samples []uint8) *LuminanceGrid {
	return &LuminanceGrid{Width: g.Width, Height: g.Height, Samples: samples}
}
