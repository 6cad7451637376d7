package imageutil

import (
	"fmt"

	"github.com/disintegration/gift"
)

// Kernel represents a square convolution kernel.
type Kernel struct {
	Values [][]float64
	Size   int
}

// NewKernel creates a new kernel from a 2D slice. The kernel must be
// square with an odd side length.
func NewKernel(values [][]float64) (*Kernel, error) {
	size := len(values)
	if size == 0 || size%2 == 0 {
		return nil, fmt.Errorf("kernel must have an odd, non-zero size, got %d", size)
	}
	for i, row := range values {
		if len(row) != size {
			return nil, fmt.Errorf("kernel row %d has %d values, want %d", i, len(row), size)
		}
	}
	return &Kernel{Values: values, Size: size}, nil
}

// mustKernel is NewKernel for the fixed kernels declared in this package.
func mustKernel(values [][]float64) *Kernel {
	k, err := NewKernel(values)
	if err != nil {
		panic(err)
	}
	return k
}

// DetailKernel returns the 3x3 edge-emphasis kernel (sum 6) that boosts
// local contrast without changing flat regions.
func DetailKernel() *Kernel {
	return mustKernel([][]float64{
		{0, -1, 0},
		{-1, 10, -1},
		{0, -1, 0},
	})
}

// SharpeningKernel returns the 3x3 sharpening kernel (sum 16).
func SharpeningKernel() *Kernel {
	return mustKernel([][]float64{
		{-2, -2, -2},
		{-2, 32, -2},
		{-2, -2, -2},
	})
}

// Sum returns the sum of all kernel weights.
func (k *Kernel) Sum() float64 {
	var sum float64
	for _, row := range k.Values {
		for _, v := range row {
			sum += v
		}
	}
	return sum
}

func (k *Kernel) flatten() []float32 {
	flat := make([]float32, 0, k.Size*k.Size)
	for _, row := range k.Values {
		for _, v := range row {
			flat = append(flat, float32(v))
		}
	}
	return flat
}

// Convolve applies a kernel to a grayscale image. The kernel is normalized
// by its weight sum, so flat regions keep their value. Border pixels are
// handled by replicating edge values and results are clamped to [0, 255].
func Convolve(img *GrayImage, kernel *Kernel) *GrayImage {
	g := gift.New(gift.Convolution(kernel.flatten(), true, false, false, 0))
	dst := NewGrayImage(img.Width(), img.Height())
	g.Draw(dst.Gray, img.Gray)
	return dst
}

// Detail applies the edge-emphasis kernel.
func Detail(img *GrayImage) *GrayImage {
	return Convolve(img, DetailKernel())
}

// Sharpen applies the sharpening kernel.
func Sharpen(img *GrayImage) *GrayImage {
	return Convolve(img, SharpeningKernel())
}
