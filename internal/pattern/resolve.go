package pattern

import "knitchart/internal/stitch"

// Resolve looks every token up in vocab and builds the grid. The first
// unknown token aborts resolution; no partial grid is returned.
func Resolve(rows [][]string, vocab *stitch.Vocabulary) (*Grid, error) {
	if vocab == nil {
		vocab = stitch.Default()
	}
	if len(rows) == 0 {
		return nil, &Error{Kind: KindEmptyPattern, Column: -1, Offset: -1}
	}
	if err := CheckRowLengths(rows); err != nil {
		return nil, err
	}
	cols := len(rows[0])
	if cols == 0 {
		return nil, &Error{Kind: KindEmptyPattern, Row: 0, Column: -1, Offset: -1, Detail: "no stitches"}
	}

	g := &Grid{cols: cols, cells: make([][]stitch.Definition, len(rows))}
	for r, row := range rows {
		cells := make([]stitch.Definition, cols)
		for c, tok := range row {
			d, ok := vocab.Lookup(tok)
			if !ok {
				return nil, &Error{
					Kind: KindUnrecognizedAbbreviation, Row: r, Column: c, Offset: -1,
					Token: tok,
				}
			}
			cells[c] = d
		}
		g.cells[r] = cells
	}
	return g, nil
}
