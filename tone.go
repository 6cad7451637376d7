package img2ascii

import (
	"fmt"
	"math"

	"github.com/wbrown/img2ascii/imageutil"
)

// Exposure classifies the overall brightness of a luminance grid.
type Exposure int

const (
	Normal Exposure = iota
	Underexposed
	Overexposed
)

func (e Exposure) String() string {
	switch e {
	case Normal:
		return "normal"
	case Underexposed:
		return "underexposed"
	case Overexposed:
		return "overexposed"
	}
	return fmt.Sprintf("Exposure(%d)", int(e))
}

// Exposure thresholds on the histogram's weighted mean. Both comparisons are
// strict, so a mean of exactly 60 or 190 is Normal.
const (
	UnderexposedBelow = 60
	OverexposedAbove  = 190
)

// Tone correction factors.
const (
	UnderexposedBrightness = 4.0
	OverexposedBrightness  = 0.7
	NormalBrightness       = 1.4
	FinalContrast          = 1.8
	ContrastPivot          = 128
)

// Histogram counts the samples of each luminance value.
func Histogram(g *LuminanceGrid) [256]int {
	var hist [256]int
	for _, v := range g.Samples {
		hist[v]++
	}
	return hist
}

// WeightedMean returns the floor of the intensity-weighted mean of a
// histogram, or 0 for an empty histogram.
func WeightedMean(hist [256]int) int {
	var total, weighted int
	for i, count := range hist {
		total += count
		weighted += count * i
	}
	if total == 0 {
		return 0
	}
	return weighted / total
}

// Classify maps a weighted mean to an exposure class.
func Classify(mean int) Exposure {
	switch {
	case mean < UnderexposedBelow:
		return Underexposed
	case mean > OverexposedAbove:
		return Overexposed
	default:
		return Normal
	}
}

// ToneStep is one named transform in the tone correction chain. Apply
// returns a new grid and leaves its argument untouched.
type ToneStep struct {
	Name  string
	Apply func(g *LuminanceGrid) *LuminanceGrid
}

// ToneChain returns the ordered correction steps for an exposure class:
// auto-contrast, the exposure specific branch, then the final contrast
// expansion.
func ToneChain(e Exposure) []ToneStep {
	chain := []ToneStep{{Name: "autocontrast", Apply: AutoContrast}}

	switch e {
	case Underexposed:
		chain = append(chain, brightnessStep(UnderexposedBrightness))
	case Overexposed:
		chain = append(chain, brightnessStep(OverexposedBrightness))
	default:
		chain = append(chain,
			ToneStep{Name: "detail", Apply: Detail},
			ToneStep{Name: "sharpen", Apply: Sharpen},
			brightnessStep(NormalBrightness),
		)
	}

	return append(chain, ToneStep{
		Name:  fmt.Sprintf("contrast(%.1f)", FinalContrast),
		Apply: func(g *LuminanceGrid) *LuminanceGrid { return Contrast(g, FinalContrast) },
	})
}

func brightnessStep(factor float64) ToneStep {
	return ToneStep{
		Name:  fmt.Sprintf("brightness(%.1f)", factor),
		Apply: func(g *LuminanceGrid) *LuminanceGrid { return Brightness(g, factor) },
	}
}

// Normalize classifies the grid's exposure and runs the matching tone
// chain. The input grid is not modified.
func Normalize(g *LuminanceGrid) (*LuminanceGrid, Exposure) {
	exposure := Classify(WeightedMean(Histogram(g)))

	out := g.withSamples(append([]uint8(nil), g.Samples...))
	for _, step := range ToneChain(exposure) {
		out = step.Apply(out)
	}
	return out, exposure
}

// AutoContrast stretches the observed range [darkest, lightest] to
// [0, 255]. A flat grid is returned unchanged.
func AutoContrast(g *LuminanceGrid) *LuminanceGrid {
	if len(g.Samples) == 0 {
		return g
	}
	lo, hi := g.Samples[0], g.Samples[0]
	for _, v := range g.Samples {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if lo == hi {
		return g
	}

	span := float64(hi - lo)
	return mapSamples(g, func(v uint8) float64 {
		return (float64(v) - float64(lo)) * 255 / span
	})
}

// Brightness multiplies every sample by factor.
func Brightness(g *LuminanceGrid, factor float64) *LuminanceGrid {
	return mapSamples(g, func(v uint8) float64 {
		return float64(v) * factor
	})
}

// Contrast scales each sample's distance from mid-gray by factor.
func Contrast(g *LuminanceGrid, factor float64) *LuminanceGrid {
	return mapSamples(g, func(v uint8) float64 {
		return ContrastPivot + factor*(float64(v)-ContrastPivot)
	})
}

// Detail applies the local-contrast (edge emphasis) filter.
func Detail(g *LuminanceGrid) *LuminanceGrid {
	return g.withSamples(imageutil.Detail(g.Image()).Samples())
}

// Sharpen applies the sharpening filter.
func Sharpen(g *LuminanceGrid) *LuminanceGrid {
	return g.withSamples(imageutil.Sharpen(g.Image()).Samples())
}

// mapSamples applies f to every sample through a 256 entry lookup table,
// rounding and clamping to [0, 255].
func mapSamples(g *LuminanceGrid, f func(uint8) float64) *LuminanceGrid {
	var lut [256]uint8
	for i := range lut {
		lut[i] = clampSample(f(uint8(i)))
	}
	out := make([]uint8, len(g.Samples))
	for i, v := range g.Samples {
		out[i] = lut[v]
	}
	return g.withSamples(out)
}

func clampSample(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}
