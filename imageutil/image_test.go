package imageutil

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestNewGrayImage(t *testing.T) {
	img := NewGrayImage(100, 50)
	if img.Width() != 100 {
		t.Errorf("Expected width 100, got %d", img.Width())
	}
	if img.Height() != 50 {
		t.Errorf("Expected height 50, got %d", img.Height())
	}
}

func TestGrayImageGetSetGray(t *testing.T) {
	img := NewGrayImage(10, 10)
	img.SetGrayValue(5, 5, 128)

	if got := img.GetGray(5, 5); got != 128 {
		t.Errorf("Expected 128, got %d", got)
	}
}

func TestGrayImageClone(t *testing.T) {
	img := NewGrayImage(10, 10)
	img.SetGrayValue(5, 5, 200)

	clone := img.Clone()
	clone.SetGrayValue(5, 5, 10)
	if img.GetGray(5, 5) != 200 {
		t.Error("Modifying clone should not affect original")
	}
}

func TestGrayImageCloneSubImage(t *testing.T) {
	parent := CreateGradientImage(20, 4)
	sub := &GrayImage{Gray: parent.SubImage(image.Rect(5, 1, 9, 3)).(*image.Gray)}

	clone := sub.Clone()
	if clone.Width() != 4 || clone.Height() != 2 {
		t.Fatalf("Expected 4x2 clone, got %dx%d", clone.Width(), clone.Height())
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			if got, want := clone.GetGray(x, y), parent.GetGray(5+x, 1+y); got != want {
				t.Errorf("Clone(%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestSamplesDropsStride(t *testing.T) {
	parent := CreateGradientImage(20, 4)
	sub := &GrayImage{Gray: parent.SubImage(image.Rect(5, 1, 9, 3)).(*image.Gray)}

	samples := sub.Samples()
	if len(samples) != 8 {
		t.Fatalf("Expected 8 samples, got %d", len(samples))
	}
	if samples[0] != parent.GetGray(5, 1) || samples[7] != parent.GetGray(8, 2) {
		t.Errorf("Samples not row-major over the sub-image: %v", samples)
	}
}

func TestToGrayscale(t *testing.T) {
	tests := []struct {
		name string
		c    color.RGBA
		lo   uint8
		hi   uint8
	}{
		{"white", color.RGBA{255, 255, 255, 255}, 255, 255},
		{"black", color.RGBA{0, 0, 0, 255}, 0, 0},
		{"red", color.RGBA{255, 0, 0, 255}, 75, 77}, // 0.299 * 255 = 76.245
		{"green", color.RGBA{0, 255, 0, 255}, 149, 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewRGBA(image.Rect(0, 0, 1, 1))
			img.SetRGBA(0, 0, tt.c)
			v := ToGrayscale(img).GetGray(0, 0)
			if v < tt.lo || v > tt.hi {
				t.Errorf("Expected %d..%d, got %d", tt.lo, tt.hi, v)
			}
		})
	}
}

func TestToGrayscaleCopiesGray(t *testing.T) {
	src := CreateGradientImage(16, 4)
	gray := ToGrayscale(src.Gray)
	if CalculateMSE(src, gray) != 0 {
		t.Error("Gray input should be copied unchanged")
	}
	gray.SetGrayValue(0, 0, 99)
	if src.GetGray(0, 0) == 99 {
		t.Error("ToGrayscale should not alias the source buffer")
	}
}

func TestToGrayscaleUnwrapsGrayImage(t *testing.T) {
	src := NewGrayImage(3, 1)
	src.SetGrayValue(0, 0, 1)
	src.SetGrayValue(1, 0, 127)
	src.SetGrayValue(2, 0, 254)

	gray := ToGrayscale(src)
	if CalculateMSE(src, gray) != 0 {
		t.Errorf("Wrapped gray input should be copied unchanged, got %v", gray.Pix)
	}
}

func TestResizeGray(t *testing.T) {
	img := CreateGradientImage(100, 100)

	for _, interp := range []Interpolation{
		InterpolationArea, InterpolationLinear,
		InterpolationNearest, InterpolationLanczos,
	} {
		t.Run(interp.String(), func(t *testing.T) {
			down := ResizeGray(img, 50, 25, interp)
			if down.Width() != 50 || down.Height() != 25 {
				t.Errorf("Expected 50x25, got %dx%d", down.Width(), down.Height())
			}
			up := ResizeGray(img, 200, 150, interp)
			if up.Width() != 200 || up.Height() != 150 {
				t.Errorf("Expected 200x150, got %dx%d", up.Width(), up.Height())
			}
		})
	}
}

func TestResizeSolidStaysSolid(t *testing.T) {
	img := CreateSolidImage(40, 40, 0)
	resized := ResizeGray(img, 7, 3, InterpolationArea)
	for i, v := range resized.Pix {
		if v != 0 {
			t.Fatalf("Pixel %d should stay black, got %d", i, v)
		}
	}
}

func TestParseInterpolation(t *testing.T) {
	for _, name := range []string{"area", "linear", "nearest", "lanczos"} {
		interp, err := ParseInterpolation(name)
		if err != nil {
			t.Fatalf("ParseInterpolation(%q): %v", name, err)
		}
		if interp.String() != name {
			t.Errorf("Round trip of %q gave %q", name, interp.String())
		}
	}
	if _, err := ParseInterpolation("cubic-spline"); err == nil {
		t.Error("Unknown interpolation should fail")
	}
}

func TestNewKernelValidation(t *testing.T) {
	if _, err := NewKernel([][]float64{{1, 2}, {3, 4}}); err == nil {
		t.Error("Even kernel should be rejected")
	}
	if _, err := NewKernel([][]float64{{1, 2, 3}, {1}, {1, 2, 3}}); err == nil {
		t.Error("Ragged kernel should be rejected")
	}
	if DetailKernel().Sum() != 6 {
		t.Errorf("Detail kernel sum should be 6, got %f", DetailKernel().Sum())
	}
	if SharpeningKernel().Sum() != 16 {
		t.Errorf("Sharpening kernel sum should be 16, got %f", SharpeningKernel().Sum())
	}
}

func TestConvolveFlatIsIdentity(t *testing.T) {
	img := CreateSolidImage(12, 9, 128)
	for name, out := range map[string]*GrayImage{
		"detail":  Detail(img),
		"sharpen": Sharpen(img),
	} {
		if out.Width() != 12 || out.Height() != 9 {
			t.Errorf("%s: dimensions changed to %dx%d", name, out.Width(), out.Height())
		}
		if CalculateMSE(img, out) != 0 {
			t.Errorf("%s: flat image should be unchanged", name)
		}
	}
}

func TestSharpenIncreasesEdgeContrast(t *testing.T) {
	img := CreateCheckerboardImage(16, 16, 8)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			v := img.GetGray(x, y)
			img.SetGrayValue(x, y, 64+v/2) // 64 or 191
		}
	}
	sharpened := Sharpen(img)
	// Pixel just inside the bright square next to a dark edge.
	if sharpened.GetGray(7, 3) <= img.GetGray(7, 3) {
		t.Errorf("Bright edge pixel should brighten: %d -> %d",
			img.GetGray(7, 3), sharpened.GetGray(7, 3))
	}
	if sharpened.GetGray(8, 3) >= img.GetGray(8, 3) {
		t.Errorf("Dark edge pixel should darken: %d -> %d",
			img.GetGray(8, 3), sharpened.GetGray(8, 3))
	}
}

func TestLoadSaveImage(t *testing.T) {
	tmpDir := t.TempDir()
	bars := CreateColorBarsImage(64, 64)

	pngPath := filepath.Join(tmpDir, "test.png")
	if err := SaveImage(bars, pngPath); err != nil {
		t.Fatalf("Failed to save PNG: %v", err)
	}

	loaded, format, err := LoadImage(pngPath)
	if err != nil {
		t.Fatalf("Failed to load PNG: %v", err)
	}
	if format != "png" {
		t.Errorf("Expected png format, got %q", format)
	}

	// PNG should be lossless
	if mse := CalculateMSE(ToGrayscale(bars), ToGrayscale(loaded)); mse > 0.01 {
		t.Errorf("PNG should be lossless, MSE=%f", mse)
	}
}

func TestLoadImageErrors(t *testing.T) {
	tmpDir := t.TempDir()

	if _, _, err := LoadImage(filepath.Join(tmpDir, "missing.png")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Missing file should wrap os.ErrNotExist, got %v", err)
	}

	bogus := filepath.Join(tmpDir, "bogus.png")
	if err := os.WriteFile(bogus, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := LoadImage(bogus); !errors.Is(err, image.ErrFormat) {
		t.Errorf("Garbage file should wrap image.ErrFormat, got %v", err)
	}
}

func TestLoadImageBilevelPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bilevel.png")
	checker := CreateCheckerboardImage(13, 16, 4)
	if err := WriteBilevelPNG(path, checker); err != nil {
		t.Fatal(err)
	}

	img, format, err := LoadImage(path)
	if err != nil {
		t.Fatalf("Failed to load 1-bit PNG: %v", err)
	}
	if format != "png" {
		t.Errorf("Expected png format, got %q", format)
	}
	paletted, ok := img.(*image.Paletted)
	if !ok {
		t.Fatalf("1-bit grayscale PNG should load as *image.Paletted, got %T", img)
	}
	if len(paletted.Palette) != 2 {
		t.Errorf("Expected 2 palette entries, got %d", len(paletted.Palette))
	}
	if mse := CalculateMSE(checker, ToGrayscale(paletted)); mse != 0 {
		t.Errorf("Pixels changed through the 1-bit round trip, MSE=%f", mse)
	}
}

func TestLoadImageEightBitGrayStaysGray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gray.png")
	// Pure black and white, but stored with 8 bits per sample.
	if err := SaveImage(CreateCheckerboardImage(16, 16, 4), path); err != nil {
		t.Fatal(err)
	}
	img, _, err := LoadImage(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := img.(*image.Gray); !ok {
		t.Errorf("8-bit grayscale PNG should stay *image.Gray, got %T", img)
	}
}

func TestCalculateMSE(t *testing.T) {
	img1 := CreateSolidImage(10, 10, 0)
	img2 := CreateSolidImage(10, 10, 0)

	if mse := CalculateMSE(img1, img2); mse != 0 {
		t.Errorf("Identical images should have MSE=0, got %f", mse)
	}

	img2 = CreateSolidImage(10, 10, 10)
	if mse := CalculateMSE(img1, img2); mse != 100 {
		t.Errorf("Expected MSE=100, got %f", mse)
	}
}
