package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"knitchart/internal/stitch"
)

func TestNewGridRejectsRagged(t *testing.T) {
	k := stitch.Definition{Abbreviation: "K", Glyph: " ", Name: "knit"}
	_, err := NewGrid([][]stitch.Definition{{k, k}, {k}})
	assert.ErrorIs(t, err, ErrUnevenRowLengths)

	_, err = NewGrid(nil)
	assert.ErrorIs(t, err, ErrEmptyPattern)

	_, err = NewGrid([][]stitch.Definition{{k, {}}})
	assert.Error(t, err)
}

func TestGridCopies(t *testing.T) {
	k := stitch.Definition{Abbreviation: "K", Glyph: " ", Name: "knit"}
	p := stitch.Definition{Abbreviation: "P", Glyph: "*", Name: "purl"}
	cells := [][]stitch.Definition{{k, p}}
	g, err := NewGrid(cells)
	require.NoError(t, err)

	cells[0][0] = p
	assert.Equal(t, k, g.At(0, 0))

	row := g.Row(0)
	row[1] = k
	assert.Equal(t, p, g.At(0, 1))

	assert.Equal(t, [][]stitch.Definition{{k, p}}, g.Cells())
	assert.Equal(t, []stitch.Definition{k, p}, g.Used())
}

func TestNilGridDimensions(t *testing.T) {
	var g *Grid
	assert.Zero(t, g.Rows())
	assert.Zero(t, g.Cols())
}
