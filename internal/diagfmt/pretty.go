package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"knitchart/internal/diag"
	"knitchart/internal/source"
)

type palette struct {
	err, warn, info, note *color.Color
	code, gutter, caret   *color.Color
	path                  *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		code:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		path:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.code, p.gutter, p.caret, p.path} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// затем строку узора с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	hadError := false
	for _, d := range bag.Items() {
		writeDiagnostic(w, d, fs, opts, pal)
		if d.Severity == diag.SevError {
			hadError = true
		}
	}
	if hadError && opts.Hint != "" {
		fmt.Fprintf(w, "%s %s\n", pal.note.Sprint("hint:"), opts.Hint)
	}
}

func writeDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	sev := pal.severity(d.Severity).Sprint(d.Severity.String())
	code := pal.code.Sprint(d.Code.ID())
	if !validSpan(fs, d.Primary) {
		fmt.Fprintf(w, "%s %s: %s\n", sev, code, d.Message)
		return
	}

	f := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)
	path := formatPath(f, fs, opts.PathMode)
	fmt.Fprintf(w, "%s %s %s: %s\n",
		pal.path.Sprintf("%s:%d:%d:", path, start.Line, start.Col), sev, code, d.Message)
	writeSnippet(w, f, start, end, int(opts.Context), pal)

	if !opts.ShowNotes && d.Code != diag.ObsTimings {
		return
	}
	for _, n := range d.Notes {
		if !validSpan(fs, n.Span) {
			fmt.Fprintf(w, "  %s %s\n", pal.note.Sprint("note:"), n.Msg)
			continue
		}
		nf := fs.Get(n.Span.File)
		ns, _ := fs.Resolve(n.Span)
		fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", pal.note.Sprint("note:"), formatPath(nf, fs, opts.PathMode), ns.Line, ns.Col, n.Msg)
	}
}

func writeSnippet(w io.Writer, f *source.File, start, end source.LineCol, context int, pal palette) {
	if context < 0 {
		return
	}
	lastLine := uint32(len(f.LineIdx) + 1)
	first := int(start.Line) - context
	if first < 1 {
		first = 1
	}
	last := int(start.Line) + context
	if last > int(lastLine) {
		last = int(lastLine)
	}
	gutterWidth := len(strconv.Itoa(last))

	for ln := first; ln <= last; ln++ {
		text := f.GetLine(uint32(ln))
		if ln != int(start.Line) && strings.TrimSpace(text) == "" {
			continue
		}
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", gutterWidth, ln), text)
		if ln != int(start.Line) {
			continue
		}
		lead, width := caretGeometry(text, start, end)
		marker := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(w, "%s %s%s\n", pal.gutter.Sprintf("%*s |", gutterWidth, ""), strings.Repeat(" ", lead), pal.caret.Sprint(marker))
	}
}

// caretGeometry returns the display offset of the span start inside text and
// the display width of the underlined part, at least 1.
func caretGeometry(text string, start, end source.LineCol) (lead, width int) {
	from := clampIndex(int(start.Col)-1, len(text))
	to := len(text)
	if end.Line == start.Line {
		to = clampIndex(int(end.Col)-1, len(text))
	}
	if to < from {
		to = from
	}
	lead = runewidth.StringWidth(text[:from])
	width = runewidth.StringWidth(text[from:to])
	if width < 1 {
		width = 1
	}
	return lead, width
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
