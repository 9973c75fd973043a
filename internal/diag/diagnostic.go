package diag

import "knitchart/internal/source"

// Note points at secondary context, e.g. the row a mismatch is measured against.
type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}
