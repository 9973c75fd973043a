package pattern

import (
	"fmt"

	"knitchart/internal/stitch"
)

// Grid is a rectangular chart of resolved stitches indexed [row][column].
// Row 0 is the first line of the written pattern.
type Grid struct {
	cols  int
	cells [][]stitch.Definition
}

// NewGrid builds a grid from cells, copying them. Every row must have the
// same, non-zero length and no cell may be the zero Definition.
func NewGrid(cells [][]stitch.Definition) (*Grid, error) {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return nil, ErrEmptyPattern
	}
	g := &Grid{cols: len(cells[0]), cells: make([][]stitch.Definition, len(cells))}
	for r, row := range cells {
		if len(row) != g.cols {
			return nil, &Error{
				Kind: KindUnevenRowLengths, Row: r, Column: -1, Offset: -1,
				Want: g.cols, Got: len(row),
			}
		}
		for c, d := range row {
			if d.IsZero() {
				return nil, fmt.Errorf("grid cell %d:%d is unresolved", r, c)
			}
		}
		g.cells[r] = append([]stitch.Definition(nil), row...)
	}
	return g, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	if g == nil {
		return 0
	}
	return len(g.cells)
}

// Cols returns the number of stitches per row.
func (g *Grid) Cols() int {
	if g == nil {
		return 0
	}
	return g.cols
}

// At returns the stitch at row r, column c. It panics when out of range,
// like a slice index.
func (g *Grid) At(r, c int) stitch.Definition {
	return g.cells[r][c]
}

// Row returns a copy of row r.
func (g *Grid) Row(r int) []stitch.Definition {
	return append([]stitch.Definition(nil), g.cells[r]...)
}

// Cells returns a deep copy of the grid contents.
func (g *Grid) Cells() [][]stitch.Definition {
	out := make([][]stitch.Definition, g.Rows())
	for r := range out {
		out[r] = g.Row(r)
	}
	return out
}

// Used returns the distinct stitches in the grid in order of first
// appearance, scanning rows top to bottom.
func (g *Grid) Used() []stitch.Definition {
	seen := make(map[string]struct{})
	var out []stitch.Definition
	for _, row := range g.cells {
		for _, d := range row {
			if _, ok := seen[d.Abbreviation]; ok {
				continue
			}
			seen[d.Abbreviation] = struct{}{}
			out = append(out, d)
		}
	}
	return out
}
