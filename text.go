package img2ascii

import (
	"strings"
)

// RowSeparator separates glyph rows in rendered text.
const RowSeparator = "\n"

// RenderText joins palette glyphs row by row, width glyphs per row. A
// separator follows every row except the last, so the text has exactly
// len(indices)/width rows when split.
func RenderText(indices []int, width int, p Palette) string {
	if width < 1 || len(indices) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.Grow(len(indices) + len(indices)/width)
	for i, idx := range indices {
		if i > 0 && i%width == 0 {
			sb.WriteString(RowSeparator)
		}
		sb.WriteRune(p[idx])
	}
	return sb.String()
}

// SplitRows splits rendered text back into its rows.
func SplitRows(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, RowSeparator)
}
