package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"knitchart/internal/stitch"
)

func newStitchesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stitches",
		Short: "List the known stitch abbreviations",
		Long: `List the stitch abbreviations a pattern may use: the built-in set plus any
[[stitch]] entries from knitchart.toml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := cmd.Flags().GetString("format")
			if err != nil {
				return fmt.Errorf("failed to get format flag: %w", err)
			}
			st, err := loadSettings(cmd, "")
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			defs := st.opts.Vocabulary.Definitions()
			switch format {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(defs)
			case "pretty":
				renderStitchTable(out, defs, st.colorFor(out))
				return nil
			default:
				return fmt.Errorf("unknown format: %s", format)
			}
		},
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	return cmd
}

func renderStitchTable(out io.Writer, defs []stitch.Definition, colored bool) {
	header := lipgloss.NewStyle()
	glyph := lipgloss.NewStyle()
	if colored {
		header = header.Bold(true).Underline(true)
		glyph = glyph.Reverse(true)
	}
	title := cases.Title(language.English)

	abbrWidth := runewidth.StringWidth("ABBR")
	glyphWidth := runewidth.StringWidth("GLYPH")
	for _, d := range defs {
		abbrWidth = max(abbrWidth, runewidth.StringWidth(d.Abbreviation))
		glyphWidth = max(glyphWidth, runewidth.StringWidth(d.Glyph)+2)
	}

	var b strings.Builder
	b.WriteString(header.Render(runewidth.FillRight("ABBR", abbrWidth)))
	b.WriteString("  ")
	b.WriteString(header.Render(runewidth.FillRight("GLYPH", glyphWidth)))
	b.WriteString("  ")
	b.WriteString(header.Render("NAME"))
	b.WriteByte('\n')
	for _, d := range defs {
		b.WriteString(runewidth.FillRight(d.Abbreviation, abbrWidth))
		b.WriteString("  ")
		// глиф в скобках, иначе пробел для K не виден
		cell := "[" + glyph.Render(d.Glyph) + "]"
		b.WriteString(cell)
		b.WriteString(strings.Repeat(" ", glyphWidth-runewidth.StringWidth(d.Glyph)-2))
		b.WriteString("  ")
		b.WriteString(title.String(d.Name))
		b.WriteByte('\n')
	}
	fmt.Fprint(out, b.String())
}
