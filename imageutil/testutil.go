package imageutil

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"math"
	"os"
)

// CreateGradientImage creates a horizontal black-to-white gradient.
func CreateGradientImage(width, height int) *GrayImage {
	img := NewGrayImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetGrayValue(x, y, uint8(255*x/max(width-1, 1)))
		}
	}
	return img
}

// CreateSolidImage creates a uniform grayscale image.
func CreateSolidImage(width, height int, v uint8) *GrayImage {
	img := NewGrayImage(width, height)
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

// CreateCheckerboardImage creates a black and white checkerboard.
func CreateCheckerboardImage(width, height, squareSize int) *GrayImage {
	img := NewGrayImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if ((x/squareSize)+(y/squareSize))%2 == 0 {
				img.SetGrayValue(x, y, 255)
			}
		}
	}
	return img
}

// CreateColorBarsImage creates an RGBA color bars test pattern.
func CreateColorBarsImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	colors := []color.RGBA{
		{255, 255, 255, 255}, // White
		{255, 255, 0, 255},   // Yellow
		{0, 255, 255, 255},   // Cyan
		{0, 255, 0, 255},     // Green
		{255, 0, 255, 255},   // Magenta
		{255, 0, 0, 255},     // Red
		{0, 0, 255, 255},     // Blue
		{0, 0, 0, 255},       // Black
	}

	barWidth := max(width/len(colors), 1)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := min(x/barWidth, len(colors)-1)
			img.SetRGBA(x, y, colors[idx])
		}
	}
	return img
}

// CalculateMSE calculates the Mean Squared Error between two grayscale images.
func CalculateMSE(img1, img2 *GrayImage) float64 {
	if img1.Width() != img2.Width() || img1.Height() != img2.Height() {
		return math.MaxFloat64
	}

	width, height := img1.Width(), img1.Height()
	var sumSq float64
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			d := float64(img1.GrayAt(x, y).Y) - float64(img2.GrayAt(x, y).Y)
			sumSq += d * d
		}
	}

	return sumSq / float64(width*height)
}

// WriteBilevelPNG writes img as a grayscale PNG with a bit depth of 1,
// thresholding at mid-gray. image/png never emits this layout itself.
func WriteBilevelPNG(path string, img *GrayImage) error {
	width, height := img.Width(), img.Height()
	rowBytes := (width + 7) / 8

	var raw bytes.Buffer
	zw := zlib.NewWriter(&raw)
	row := make([]byte, 1+rowBytes) // leading filter byte stays 0
	for y := 0; y < height; y++ {
		clear(row)
		for x := 0; x < width; x++ {
			if img.GetGray(x, y) >= 128 {
				row[1+x/8] |= 0x80 >> (x % 8)
			}
		}
		if _, err := zw.Write(row); err != nil {
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return err
	}

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], uint32(width))
	binary.BigEndian.PutUint32(ihdr[4:8], uint32(height))
	ihdr[8] = 1 // bit depth
	ihdr[9] = 0 // grayscale

	var out bytes.Buffer
	out.WriteString("\x89PNG\r\n\x1a\n")
	writePNGChunk(&out, "IHDR", ihdr)
	writePNGChunk(&out, "IDAT", raw.Bytes())
	writePNGChunk(&out, "IEND", nil)
	return os.WriteFile(path, out.Bytes(), 0644)
}

func writePNGChunk(buf *bytes.Buffer, kind string, data []byte) {
	var n [4]byte
	binary.BigEndian.PutUint32(n[:], uint32(len(data)))
	buf.Write(n[:])

	crc := crc32.NewIEEE()
	crc.Write([]byte(kind))
	crc.Write(data)
	buf.WriteString(kind)
	buf.Write(data)
	binary.BigEndian.PutUint32(n[:], crc.Sum32())
	buf.Write(n[:])
}
