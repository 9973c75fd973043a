package chartfmt

import (
	"encoding/json"
	"io"

	"knitchart/internal/pattern"
	"knitchart/internal/stitch"
)

// ChartJSON is the JSON form of a grid, rows in pattern order.
type ChartJSON struct {
	Rows  int                   `json:"rows"`
	Cols  int                   `json:"cols"`
	Cells [][]stitch.Definition `json:"cells"`
}

// BuildChartOutput converts g without serialising it.
func BuildChartOutput(g *pattern.Grid) ChartJSON {
	return ChartJSON{Rows: g.Rows(), Cols: g.Cols(), Cells: g.Cells()}
}

func JSON(w io.Writer, g *pattern.Grid) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildChartOutput(g))
}
