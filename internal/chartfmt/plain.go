package chartfmt

import (
	"io"
	"strings"

	"knitchart/internal/pattern"
)

// Plain writes one line of glyphs per row in pattern order, no borders and
// no reversal.
func Plain(w io.Writer, g *pattern.Grid) error {
	var b strings.Builder
	for r, rows := 0, g.Rows(); r < rows; r++ {
		for c, cols := 0, g.Cols(); c < cols; c++ {
			b.WriteString(g.At(r, c).Glyph)
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Expanded writes token rows as the pipeline produced them, joined with the
// pattern separator.
func Expanded(w io.Writer, rows [][]string) error {
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(strings.Join(row, pattern.Separator))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}
