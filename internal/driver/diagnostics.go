package driver

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"knitchart/internal/diag"
	"knitchart/internal/pattern"
	"knitchart/internal/source"
)

// reportPatternError maps e onto a diagnostic anchored in file. Rows are
// reported 1-based, the way a knitter counts them.
func reportPatternError(r diag.Reporter, file *source.File, e *pattern.Error) {
	row := rowSpan(file, e.Row)
	rowNo := e.Row + 1

	switch e.Kind {
	case pattern.KindEmptyPattern:
		msg := "pattern has no rows"
		if e.Detail != "" {
			msg = "pattern has no stitches"
		}
		diag.ReportError(r, diag.PatEmpty, source.Span{File: file.ID}, msg).Emit()

	case pattern.KindUnterminatedRepeatGroup:
		diag.ReportError(r, diag.SynUnterminatedRepeat, offsetSpan(row, e.Offset),
			fmt.Sprintf("repeat group in row %d is never closed", rowNo)).
			WithNote(row, detailOr(e.Detail, "close the group with the matching delimiter")).
			Emit()

	case pattern.KindMissingRepeatCount:
		diag.ReportError(r, diag.SynMissingRepeatCount, offsetSpan(row, e.Offset),
			fmt.Sprintf("repeat group in row %d has no usable count", rowNo)).
			WithNote(row, detailOr(e.Detail, `write the count after the group, e.g. "3 times"`)).
			Emit()

	case pattern.KindUnevenRowLengths:
		diag.ReportError(r, diag.PatUnevenRows, row,
			fmt.Sprintf("row %d has %s, expected %d", rowNo, stitches(e.Got), e.Want)).
			WithNote(rowSpan(file, 0), fmt.Sprintf("row 1 has %s", stitches(e.Want))).
			Emit()

	case pattern.KindUnrecognizedAbbreviation:
		diag.ReportError(r, diag.PatUnknownStitch, tokenSpan(file, row, e.Token),
			fmt.Sprintf("unrecognized abbreviation %q in row %d", e.Token, rowNo)).
			WithNote(row, fmt.Sprintf("stitch %d of the expanded row", e.Column+1)).
			Emit()

	case pattern.KindResourceExhausted:
		b := diag.ReportError(r, diag.PatTooLarge, row,
			fmt.Sprintf("row %d expands beyond the limit of %s", rowNo, stitches(e.Want)))
		if e.Detail != "" {
			b.WithNote(offsetSpan(row, e.Offset), e.Detail)
		}
		b.Emit()

	default:
		diag.ReportError(r, diag.UnknownCode, row, e.Error()).Emit()
	}
}

func stitches(n int) string {
	if n == 1 {
		return "1 stitch"
	}
	return fmt.Sprintf("%d stitches", n)
}

func detailOr(detail, fallback string) string {
	if detail != "" {
		return detail
	}
	return fallback
}

func rowSpan(file *source.File, row int) source.Span {
	if row < 0 {
		row = 0
	}
	return file.LineSpan(row)
}

func offsetSpan(row source.Span, offset int) source.Span {
	if offset < 0 {
		return row
	}
	off, err := safecast.Conv[uint32](offset)
	if err != nil {
		return row
	}
	return row.Sub(off, 1)
}

// tokenSpan narrows row to the first case-insensitive occurrence of token.
// Tokens produced by a repeat or multiple expansion may not appear verbatim;
// the whole row is used then.
func tokenSpan(file *source.File, row source.Span, token string) source.Span {
	if strings.TrimSpace(token) == "" {
		return row
	}
	line := strings.ToLower(string(file.Content[row.Start:row.End]))
	idx := strings.Index(line, strings.ToLower(token))
	if idx < 0 {
		return row
	}
	off, err := safecast.Conv[uint32](idx)
	if err != nil {
		return row
	}
	n, err := safecast.Conv[uint32](len(token))
	if err != nil {
		return row
	}
	return row.Sub(off, n)
}
