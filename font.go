package img2ascii

import (
	"fmt"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

const (
	// DefaultFontSize is the point size of the bundled font at 72 DPI.
	DefaultFontSize = 10.0

	// metricsGlyph is measured for the fixed advance width.
	metricsGlyph = 'W'
)

// GlyphMetrics are the fixed cell dimensions used to lay out glyphs, in
// pixels.
type GlyphMetrics struct {
	Advance    float64
	LineHeight int
	Ascent     int
}

// Aspect returns advance width divided by line height.
func (m GlyphMetrics) Aspect() float64 {
	return m.Advance / float64(m.LineHeight)
}

// Font is a monospace face used to rasterize glyph text. Close releases
// the face.
type Font struct {
	name    string
	face    font.Face
	metrics GlyphMetrics
}

// DefaultFont returns the bundled Go Mono face at DefaultFontSize.
func DefaultFont() (*Font, error) {
	return BundledFont(DefaultFontSize)
}

// BundledFont returns the bundled Go Mono face at the given size.
func BundledFont(size float64) (*Font, error) {
	return LoadFont("Go Mono", gomono.TTF, size)
}

// LoadFontFile loads a TrueType font from disk.
func LoadFontFile(path string, size float64) (*Font, error) {
	ttf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	return LoadFont(path, ttf, size)
}

// LoadFont parses TrueType data and builds a face of the given point size.
func LoadFont(name string, ttf []byte, size float64) (*Font, error) {
	if size <= 0 {
		return nil, fmt.Errorf("font size must be positive, got %g", size)
	}
	parsed, err := freetype.ParseFont(ttf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", name, err)
	}

	face := truetype.NewFace(parsed, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})

	advance, ok := face.GlyphAdvance(metricsGlyph)
	if !ok || advance <= 0 {
		face.Close()
		return nil, fmt.Errorf("font %s has no advance for %q", name, metricsGlyph)
	}

	// Ascent and descent are both positive in 26.6 fixed point.
	m := face.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
	if ascent+descent <= 0 {
		face.Close()
		return nil, fmt.Errorf("font %s reports zero line height", name)
	}

	return &Font{
		name: name,
		face: face,
		metrics: GlyphMetrics{
			Advance:    float64(advance) / 64,
			LineHeight: ascent + descent,
			Ascent:     ascent,
		},
	}, nil
}

// Name returns the font's name or source path.
func (f *Font) Name() string {
	return f.name
}

// Metrics returns the font's cell metrics.
func (f *Font) Metrics() GlyphMetrics {
	return f.metrics
}

// Close releases the underlying face.
func (f *Font) Close() error {
	return f.face.Close()
}
