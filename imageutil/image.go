// Package imageutil provides the pure Go image plumbing used by img2ascii:
// decoding, grayscale conversion, resampling, convolution and encoding.
package imageutil

import (
	"image"
	"image/color"
)

// GrayImage wraps image.Gray with convenience methods for pixel access.
type GrayImage struct {
	*image.Gray
}

// NewGrayImage creates a new GrayImage with the specified dimensions.
func NewGrayImage(width, height int) *GrayImage {
	return &GrayImage{
		Gray: image.NewGray(image.Rect(0, 0, width, height)),
	}
}

// NewGrayImageFromPix wraps a row-major sample buffer without copying it.
// The buffer must hold exactly width*height samples.
func NewGrayImageFromPix(width, height int, pix []uint8) *GrayImage {
	return &GrayImage{
		Gray: &image.Gray{
			Pix:    pix,
			Stride: width,
			Rect:   image.Rect(0, 0, width, height),
		},
	}
}

// Width returns the image width.
func (img *GrayImage) Width() int {
	return img.Bounds().Dx()
}

// Height returns the image height.
func (img *GrayImage) Height() int {
	return img.Bounds().Dy()
}

// GetGray returns the grayscale value at (x, y).
func (img *GrayImage) GetGray(x, y int) uint8 {
	return img.GrayAt(x, y).Y
}

// SetGrayValue sets the grayscale value at (x, y).
func (img *GrayImage) SetGrayValue(x, y int, v uint8) {
	img.Gray.SetGray(x, y, color.Gray{Y: v})
}

// Samples returns a row-major copy of the pixel values with the stride
// padding removed.
func (img *GrayImage) Samples() []uint8 {
	width, height := img.Width(), img.Height()
	out := make([]uint8, 0, width*height)
	for y := 0; y < height; y++ {
		start := y * img.Stride
		out = append(out, img.Pix[start:start+width]...)
	}
	return out
}

// Clone creates a deep copy of the image, rebased to the origin.
func (img *GrayImage) Clone() *GrayImage {
	return NewGrayImageFromPix(img.Width(), img.Height(), img.Samples())
}

// clampInt clamps an integer to the given range.
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
