package img2ascii

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgumentCount is reported by the command line layer when
	// it does not receive exactly one image path.
	ErrInvalidArgumentCount = errors.New("expected exactly one image path")

	// ErrDecode marks failures to open or decode the source image.
	ErrDecode = errors.New("could not decode image")

	// ErrDegenerateGeometry is returned when a source dimension is zero or
	// the computed glyph grid would have a side shorter than one glyph.
	ErrDegenerateGeometry = errors.New("degenerate grid geometry")

	// ErrInvalidPalette is returned for palettes that cannot be used for
	// quantization.
	ErrInvalidPalette = errors.New("invalid palette")

	// ErrMalformedText is returned when glyph text does not match the grid
	// it is being rendered into.
	ErrMalformedText = errors.New("glyph text does not match grid")
)

// DecodeError records the path that failed to decode and the cause.
// It matches both ErrDecode and the underlying error with errors.Is.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() []error {
	return []error{ErrDecode, e.Err}
}
