package chartfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"knitchart/internal/pattern"
	"knitchart/internal/stitch"
)

// PrettyOpts configures the chart drawing.
type PrettyOpts struct {
	Color      bool
	RowNumbers bool
	Legend     bool
	Title      string
}

type styles struct {
	title, number, border, legendKey lipgloss.Style
}

func newStyles(enabled bool) styles {
	if !enabled {
		plain := lipgloss.NewStyle()
		return styles{title: plain, number: plain, border: plain, legendKey: plain}
	}
	return styles{
		title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		number:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		border:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		legendKey: lipgloss.NewStyle().Bold(true),
	}
}

// Pretty writes g as a knitting chart.
func Pretty(w io.Writer, g *pattern.Grid, opts PrettyOpts) error {
	if g == nil || g.Rows() == 0 {
		return nil
	}
	st := newStyles(opts.Color)
	cell := cellWidth(g.Used())
	numWidth := len(strconv.Itoa(g.Rows()))

	var b strings.Builder
	if opts.Title != "" {
		b.WriteString(st.title.Render(opts.Title))
		b.WriteByte('\n')
	}
	for r := g.Rows() - 1; r >= 0; r-- {
		writeRow(&b, g, r, cell, numWidth, opts.RowNumbers, st)
	}
	if opts.Legend {
		b.WriteByte('\n')
		writeLegend(&b, g.Used(), cell, st)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// RightToLeft reports whether the 0-based row r is read right to left.
// Row 0 is row 1 of the pattern, a right-side row.
func RightToLeft(r int) bool {
	return r%2 == 0
}

func writeRow(b *strings.Builder, g *pattern.Grid, r, cell, numWidth int, numbers bool, st styles) {
	label := strconv.Itoa(r + 1)
	rtl := RightToLeft(r)

	if numbers {
		if rtl {
			b.WriteString(strings.Repeat(" ", numWidth))
		} else {
			b.WriteString(st.number.Render(fmt.Sprintf("%*s", numWidth, label)))
		}
		b.WriteByte(' ')
	}

	b.WriteString(st.border.Render("|"))
	cols := g.Cols()
	for i := 0; i < cols; i++ {
		c := i
		if rtl {
			c = cols - 1 - i
		}
		b.WriteByte(' ')
		b.WriteString(center(g.At(r, c).Glyph, cell))
		b.WriteByte(' ')
		b.WriteString(st.border.Render("|"))
	}

	if numbers && rtl {
		b.WriteByte(' ')
		b.WriteString(st.number.Render(label))
	}
	b.WriteByte('\n')
}

func writeLegend(b *strings.Builder, used []stitch.Definition, cell int, st styles) {
	abbrWidth := 0
	for _, d := range used {
		abbrWidth = max(abbrWidth, runewidth.StringWidth(d.Abbreviation))
	}
	b.WriteString(st.title.Render("Legend"))
	b.WriteByte('\n')
	for _, d := range used {
		fmt.Fprintf(b, "  [%s]  %s  %s\n",
			center(d.Glyph, cell),
			st.legendKey.Render(runewidth.FillRight(d.Abbreviation, abbrWidth)),
			d.Name)
	}
}

func cellWidth(defs []stitch.Definition) int {
	width := 1
	for _, d := range defs {
		width = max(width, runewidth.StringWidth(d.Glyph))
	}
	return width
}

// center pads s to width display columns, extra space going right.
func center(s string, width int) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	left := gap / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
}
