package img2ascii

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wbrown/img2ascii/imageutil"
)

// OutputPaths are the artifact locations derived from an input path.
type OutputPaths struct {
	Text  string
	Image string
	Stats string
}

// OutputPathsFor derives artifact paths from the input path with its final
// extension removed: photo.jpg gives photo-ascii.txt, photo-ascii.png and
// photo-ascii-stats.png next to the input.
func OutputPathsFor(input string) OutputPaths {
	stem := strings.TrimSuffix(input, filepath.Ext(input))
	return OutputPaths{
		Text:  stem + "-ascii.txt",
		Image: stem + "-ascii.png",
		Stats: stem + "-ascii-stats.png",
	}
}

// WriteText writes the glyph text as UTF-8.
func (r *Result) WriteText(path string) error {
	if err := os.WriteFile(path, []byte(r.Text), 0644); err != nil {
		return fmt.Errorf("failed to write text: %w", err)
	}
	return nil
}

// WritePNG encodes the rendered canvas.
func (r *Result) WritePNG(path string) error {
	if err := imageutil.SaveImage(r.Canvas, path); err != nil {
		return fmt.Errorf("failed to write canvas: %w", err)
	}
	return nil
}

// WriteArtifacts writes the text file, then the canvas. A failure writing
// the canvas leaves the text file in place.
func (r *Result) WriteArtifacts(paths OutputPaths) error {
	if err := r.WriteText(paths.Text); err != nil {
		return err
	}
	return r.WritePNG(paths.Image)
}
