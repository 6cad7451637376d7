package img2ascii

import (
	"fmt"
	"image"
	"image/color"
)

// Built-in glyph ramps, darkest first.
const (
	ShortGlyphs = "@%#*+=-:. "
	LongGlyphs  = "$@B%8&WM#*oahkbdpqwmZO0QLCJUYXzcvunxrjft/\\|()1{}[]?-_+~<>i!lI;:,^`'."
)

// ColorMode is the declared color layout of a decoded image.
type ColorMode int

const (
	Unknown ColorMode = iota
	Bilevel
	Grayscale
	FullColor
)

func (m ColorMode) String() string {
	switch m {
	case Bilevel:
		return "bilevel"
	case Grayscale:
		return "grayscale"
	case FullColor:
		return "full-color"
	}
	return "unknown"
}

// ColorModeOf reports the color mode declared by a decoded image.
// Paletted images are bilevel when their palette holds at most two pure
// black or white entries; other paletted and alpha-only images are Unknown.
func ColorModeOf(img image.Image) ColorMode {
	switch m := img.(type) {
	case *image.Gray, *image.Gray16:
		return Grayscale
	case *image.RGBA, *image.RGBA64, *image.NRGBA, *image.NRGBA64,
		*image.YCbCr, *image.NYCbCrA, *image.CMYK:
		return FullColor
	case *image.Paletted:
		if isBilevelPalette(m.Palette) {
			return Bilevel
		}
		return Unknown
	}

	switch img.ColorModel() {
	case color.GrayModel, color.Gray16Model:
		return Grayscale
	case color.RGBAModel, color.RGBA64Model, color.NRGBAModel,
		color.NRGBA64Model, color.YCbCrModel, color.CMYKModel:
		return FullColor
	}
	return Unknown
}

func isBilevelPalette(p color.Palette) bool {
	if len(p) == 0 || len(p) > 2 {
		return false
	}
	for _, c := range p {
		r, g, b, _ := c.RGBA()
		if r != g || g != b || (r != 0 && r != 0xffff) {
			return false
		}
	}
	return true
}

// Palette is an ordered set of glyphs from darkest (index 0) to lightest.
type Palette []rune

// NewPalette validates a glyph ramp. It needs between 2 and 256 glyphs and
// distinct first and last glyphs.
func NewPalette(glyphs string) (Palette, error) {
	p := Palette(glyphs)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate reports ErrInvalidPalette for ramps Index cannot quantize to.
func (p Palette) Validate() error {
	switch {
	case len(p) < 2:
		return fmt.Errorf("%w: need at least 2 glyphs, got %d", ErrInvalidPalette, len(p))
	case len(p) > 256:
		return fmt.Errorf("%w: at most 256 glyphs, got %d", ErrInvalidPalette, len(p))
	case p[0] == p[len(p)-1]:
		return fmt.Errorf("%w: darkest and lightest glyph are both %q", ErrInvalidPalette, p[0])
	}
	return nil
}

func mustPalette(glyphs string) Palette {
	p, err := NewPalette(glyphs)
	if err != nil {
		panic(err)
	}
	return p
}

// Index quantizes a sample to a glyph index. Darker samples map to lower
// indices and the result is always in [0, len(p)-1].
func (p Palette) Index(v uint8) int {
	last := len(p) - 1
	return min(int(v)/(255/last), last)
}

// Glyph returns the glyph used for a sample.
func (p Palette) Glyph(v uint8) rune {
	return p[p.Index(v)]
}

func (p Palette) String() string {
	return string(p)
}

// PaletteSet maps color modes to palettes. Modes without an entry,
// including Unknown, use the Grayscale palette.
type PaletteSet map[ColorMode]Palette

// DefaultPalettes returns the short ramp for bilevel images and the long
// ramp for grayscale and full-color images.
func DefaultPalettes() PaletteSet {
	long := mustPalette(LongGlyphs)
	return PaletteSet{
		Bilevel:   mustPalette(ShortGlyphs),
		Grayscale: long,
		FullColor: long,
	}
}

// For returns the palette for a color mode.
func (s PaletteSet) For(mode ColorMode) Palette {
	if p, ok := s[mode]; ok {
		return p
	}
	return s[Grayscale]
}

// MapGlyphs quantizes every sample of a grid to a palette index.
func MapGlyphs(g *LuminanceGrid, p Palette) []int {
	indices := make([]int, len(g.Samples))
	for i, v := range g.Samples {
		indices[i] = p.Index(v)
	}
	return indices
}
