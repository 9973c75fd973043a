// Package testkit holds invariant checks shared by tests and fuzz harnesses.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"knitchart/internal/diag"
	"knitchart/internal/pattern"
	"knitchart/internal/source"
	"knitchart/internal/stitch"
)

// CheckGridInvariants verifies a resolved chart:
// 1) the grid is non-empty and rectangular
// 2) every cell is a definition known to vocab
// 3) when rows is given, it matches the grid cell by cell
func CheckGridInvariants(g *pattern.Grid, rows [][]string, vocab *stitch.Vocabulary) error {
	if g == nil {
		return fmt.Errorf("nil grid")
	}
	if g.Rows() == 0 || g.Cols() == 0 {
		return fmt.Errorf("empty grid %dx%d", g.Rows(), g.Cols())
	}
	if rows != nil && len(rows) != g.Rows() {
		return fmt.Errorf("grid has %d rows, expansion has %d", g.Rows(), len(rows))
	}
	for r, nRows := 0, g.Rows(); r < nRows; r++ {
		row := g.Row(r)
		if len(row) != g.Cols() {
			return fmt.Errorf("row %d has %d cells, want %d", r, len(row), g.Cols())
		}
		if rows != nil && len(rows[r]) != g.Cols() {
			return fmt.Errorf("expanded row %d has %d tokens, want %d", r, len(rows[r]), g.Cols())
		}
		for c, cell := range row {
			want, ok := vocab.Lookup(cell.Abbreviation)
			if !ok || want != cell {
				return fmt.Errorf("cell %d:%d = %+v is not in the vocabulary", r, c, cell)
			}
			if rows == nil {
				continue
			}
			if got, ok := vocab.Lookup(rows[r][c]); !ok || got != cell {
				return fmt.Errorf("cell %d:%d = %s, token %q", r, c, cell.Abbreviation, rows[r][c])
			}
		}
	}
	return nil
}

// CheckDiagnosticSpans verifies that every primary and note span of bag
// points into a file of fs and stays within its content.
func CheckDiagnosticSpans(bag *diag.Bag, fs *source.FileSet) error {
	for i, d := range bag.Items() {
		if err := checkSpan(fs, d.Primary); err != nil {
			return fmt.Errorf("diagnostic %d (%s): %w", i, d.Code.ID(), err)
		}
		for j, n := range d.Notes {
			if err := checkSpan(fs, n.Span); err != nil {
				return fmt.Errorf("diagnostic %d (%s) note %d: %w", i, d.Code.ID(), j, err)
			}
		}
	}
	return nil
}

func checkSpan(fs *source.FileSet, sp source.Span) error {
	if int(sp.File) >= fs.Len() {
		return fmt.Errorf("span %v refers to unknown file", sp)
	}
	if sp.End < sp.Start {
		return fmt.Errorf("span %v is inverted", sp)
	}
	f := fs.Get(sp.File)
	lenContent, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if sp.End > lenContent {
		return fmt.Errorf("span end beyond content: %d > %d", sp.End, lenContent)
	}
	return nil
}
