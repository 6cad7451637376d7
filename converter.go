package img2ascii

import (
	"fmt"
	"image"
	"io"
	"log"

	"github.com/wbrown/img2ascii/imageutil"
)

// DefaultAspectRatio halves the source width, which suits the bundled
// font's roughly 1:2 glyph cells.
const DefaultAspectRatio = 0.5

// Converter holds the immutable configuration shared by every pipeline
// stage. A Converter is not safe for concurrent use because its font face
// keeps rasterization state.
type Converter struct {
	AspectRatio float64
	Palettes    PaletteSet
	Resample    imageutil.Interpolation

	font   *Font
	logger *log.Logger
}

// ConverterOption is a functional option for configuring a Converter.
type ConverterOption func(*Converter)

// NewConverter creates a Converter with the given options.
// Default values: AspectRatio=0.5, DefaultPalettes(), Resample=area,
// the bundled Go Mono font and a discarding logger.
func NewConverter(opts ...ConverterOption) (*Converter, error) {
	c := &Converter{
		AspectRatio: DefaultAspectRatio,
		Palettes:    DefaultPalettes(),
		Resample:    imageutil.InterpolationArea,
		logger:      log.New(io.Discard, "", 0),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.AspectRatio <= 0 {
		return nil, fmt.Errorf("aspect ratio must be positive, got %g", c.AspectRatio)
	}
	if _, ok := c.Palettes[Grayscale]; !ok {
		return nil, fmt.Errorf("%w: palette set has no grayscale entry", ErrInvalidPalette)
	}
	for mode, p := range c.Palettes {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("%s palette: %w", mode, err)
		}
	}
	if c.font == nil {
		f, err := DefaultFont()
		if err != nil {
			return nil, err
		}
		c.font = f
	}
	return c, nil
}

// WithAspectRatio sets the horizontal scale applied to the source width.
func WithAspectRatio(ratio float64) ConverterOption {
	return func(c *Converter) {
		c.AspectRatio = ratio
	}
}

// WithPalettes replaces the color mode to palette mapping. The set must
// contain a Grayscale entry, which serves as the default.
func WithPalettes(set PaletteSet) ConverterOption {
	return func(c *Converter) {
		c.Palettes = set
	}
}

// WithFont sets the rendering font. The Converter takes ownership and
// closes it in Close.
func WithFont(f *Font) ConverterOption {
	return func(c *Converter) {
		c.font = f
	}
}

// WithResample sets the interpolation used to shrink the source image.
func WithResample(interp imageutil.Interpolation) ConverterOption {
	return func(c *Converter) {
		c.Resample = interp
	}
}

// WithLogger sets the logger used for pipeline diagnostics.
func WithLogger(l *log.Logger) ConverterOption {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// Font returns the rendering font.
func (c *Converter) Font() *Font {
	return c.font
}

// Close releases the font face.
func (c *Converter) Close() error {
	return c.font.Close()
}

// Result is the output of one conversion.
type Result struct {
	Mode       ColorMode
	Exposure   Exposure
	Mean       int
	GridWidth  int
	GridHeight int
	Palette    Palette

	// Resized is the grayscale source shrunk to the grid, before tone
	// correction.
	Resized *LuminanceGrid
	// Corrected is the tone-corrected grid the glyphs were mapped from.
	Corrected *LuminanceGrid
	Indices   []int
	Text      string
	Canvas    *image.Gray
}

// GlyphCount returns the number of glyphs in the text, excluding row
// separators.
func (r *Result) GlyphCount() int {
	return len(r.Indices)
}

// ConvertFile decodes the image at path and converts it. Open and decode
// failures are returned as *DecodeError.
func (c *Converter) ConvertFile(path string) (*Result, error) {
	img, format, err := imageutil.LoadImage(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	c.logger.Printf("decoded %s (%s, %dx%d)", path, format, img.Bounds().Dx(), img.Bounds().Dy())
	return c.Convert(img)
}

// Convert runs the full pipeline on a decoded image.
func (c *Converter) Convert(img image.Image) (*Result, error) {
	mode := ColorModeOf(img)
	palette := c.Palettes.For(mode)
	m := c.font.Metrics()

	bounds := img.Bounds()
	gridWidth, gridHeight, err := ComputeGrid(bounds.Dx(), bounds.Dy(), c.AspectRatio, m.Aspect())
	if err != nil {
		return nil, err
	}
	c.logger.Printf("color mode %s, %d glyph palette, grid %dx%d", mode, len(palette), gridWidth, gridHeight)

	gray := imageutil.ToGrayscale(img)
	resized := imageutil.ResizeGray(gray, gridWidth, gridHeight, c.Resample)
	grid, err := LuminanceFromImage(resized.Gray)
	if err != nil {
		return nil, err
	}

	mean := WeightedMean(Histogram(grid))
	corrected, exposure := Normalize(grid)
	c.logger.Printf("histogram mean %d, %s", mean, exposure)
	for _, step := range ToneChain(exposure) {
		c.logger.Printf("  tone step %s", step.Name)
	}

	indices := MapGlyphs(corrected, palette)
	text := RenderText(indices, gridWidth, palette)

	canvas, err := RenderImage(text, gridWidth, gridHeight, c.font)
	if err != nil {
		return nil, err
	}
	c.logger.Printf("canvas %dx%d, font %s", canvas.Bounds().Dx(), canvas.Bounds().Dy(), c.font.Name())

	return &Result{
		Mode:       mode,
		Exposure:   exposure,
		Mean:       mean,
		GridWidth:  gridWidth,
		GridHeight: gridHeight,
		Palette:    palette,
		Resized:    grid,
		Corrected:  corrected,
		Indices:    indices,
		Text:       text,
		Canvas:     canvas,
	}, nil
}
