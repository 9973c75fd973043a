// Package pattern turns written knitting instructions into a stitch grid.
//
// Each input line is one chart row made of abbreviations separated by ", ".
// Two shorthands are expanded before lookup:
//
//   - repeat groups: a run wrapped in (), [] or ** followed by a count,
//     e.g. "(k, yo) 3 times" or "*p, k2tog* 4 times";
//   - multiples: a knit or purl letter with a count, e.g. "k3" or "P12".
//
// The pipeline is ExpandRepeats → SplitRow → ExpandMultiples →
// CheckRowLengths → Resolve. Every stage fails fast with a *Error whose
// Kind says what went wrong and whose Row/Column/Offset/Token say where.
// Parse never returns a ragged or partially resolved grid.
//
//	grid, err := pattern.Parse([]string{"k2, (yo, k2tog) 2 times, k2"}, pattern.Options{})
//	if errors.Is(err, pattern.ErrUnrecognizedAbbreviation) { ... }
package pattern
