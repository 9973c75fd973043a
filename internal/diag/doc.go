// Package diag defines the diagnostic model shared by the charting pipeline.
//
// A Diagnostic carries a Severity, a stable Code (see codes.go), a short
// message, the primary source.Span inside a pattern file and optional notes
// pointing at related rows. Producers emit through a Reporter; BagReporter
// collects into a Bag that supports sorting, deduplication and merging.
//
// Package diag does no formatting or IO. Rendering lives in internal/diagfmt,
// and the mapping from pattern errors to diagnostics lives in internal/driver.
// FormatShortDiagnostics is the one exception: a compact one-line-per-item
// form used by golden tests and the "short" output format.
package diag
