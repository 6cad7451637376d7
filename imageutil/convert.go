package imageutil

import (
	"image"
	"image/color"
)

// ToGrayscale converts any image to grayscale using the ITU-R 601-2 luma
// transform: L = R*299/1000 + G*587/1000 + B*114/1000. Alpha is ignored,
// so transparent pixels keep their underlying color.
//
// Images that are already *image.Gray or *GrayImage are copied without
// conversion.
func ToGrayscale(img image.Image) *GrayImage {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	gray := NewGrayImage(width, height)

	if wrapped, ok := img.(*GrayImage); ok {
		img = wrapped.Gray
	}
	if src, ok := img.(*image.Gray); ok {
		for y := 0; y < height; y++ {
			si := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(gray.Pix[y*gray.Stride:y*gray.Stride+width], src.Pix[si:si+width])
		}
		return gray
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			gray.Pix[y*gray.Stride+x] = Luma(c.R, c.G, c.B)
		}
	}

	return gray
}

// Luma returns the BT.601 luminance of an 8-bit RGB triple, rounded to the
// nearest integer.
func Luma(r, g, b uint8) uint8 {
	lum := (299*int(r) + 587*int(g) + 114*int(b) + 500) / 1000
	return uint8(clampInt(lum, 0, 255))
}
