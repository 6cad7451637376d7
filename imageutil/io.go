package imageutil

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	_ "image/gif" // Register GIF decoder
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // Register BMP decoder
	_ "golang.org/x/image/tiff" // Register TIFF decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// BilevelPalette is the two-entry palette of decoded 1-bit grayscale images.
var BilevelPalette = color.Palette{color.Black, color.White}

// LoadImage loads an image from the specified path without converting it,
// so callers can inspect the decoded color model.
// Supports PNG, JPEG, GIF, BMP, TIFF and WebP formats.
//
// Go's decoders widen 1-bit grayscale to *image.Gray. Such images are
// returned as *image.Paletted over BilevelPalette so the declared bit depth
// survives decoding.
func LoadImage(path string) (image.Image, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open image: %w", err)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}

	if gray, ok := img.(*image.Gray); ok && declaresBilevel(format, data, gray) {
		return ToBilevel(gray), format, nil
	}
	return img, format, nil
}

// declaresBilevel reports whether a decoded grayscale image was stored with
// one bit per sample. PNG carries the depth in its IHDR chunk. The TIFF
// decoder does not expose BitsPerSample, so a TIFF counts as bilevel when
// every sample is pure black or white.
func declaresBilevel(format string, data []byte, gray *image.Gray) bool {
	switch format {
	case "png":
		depth, colorType, ok := pngHeader(data)
		return ok && colorType == 0 && depth == 1
	case "tiff":
		for _, v := range gray.Pix {
			if v != 0 && v != 255 {
				return false
			}
		}
		return true
	}
	return false
}

// pngHeader reads bit depth and color type from the IHDR chunk, which the
// PNG format requires to follow the 8 byte signature.
func pngHeader(data []byte) (depth, colorType byte, ok bool) {
	const ihdrEnd = 8 + 8 + 13
	if len(data) < ihdrEnd || string(data[12:16]) != "IHDR" {
		return 0, 0, false
	}
	if binary.BigEndian.Uint32(data[8:12]) != 13 {
		return 0, 0, false
	}
	return data[24], data[25], true
}

// ToBilevel thresholds a grayscale image at mid-gray onto BilevelPalette.
func ToBilevel(gray *image.Gray) *image.Paletted {
	bounds := gray.Bounds()
	out := image.NewPaletted(bounds, BilevelPalette)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if gray.GrayAt(x, y).Y >= 128 {
				out.Pix[out.PixOffset(x, y)] = 1
			}
		}
	}
	return out
}

// SaveImage saves an image to the specified path.
// Format is determined by file extension (png, jpg/jpeg); anything else
// is written as PNG.
func SaveImage(img image.Image, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", cerr)
		}
	}()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}
