package pattern

import (
	"fmt"
	"strings"
)

// Kind classifies a parse failure.
type Kind uint8

const (
	KindEmptyPattern Kind = iota + 1
	KindUnterminatedRepeatGroup
	KindMissingRepeatCount
	KindUnevenRowLengths
	KindUnrecognizedAbbreviation
	KindResourceExhausted
)

func (k Kind) String() string {
	switch k {
	case KindEmptyPattern:
		return "empty pattern"
	case KindUnterminatedRepeatGroup:
		return "unterminated repeat group"
	case KindMissingRepeatCount:
		return "missing repeat count"
	case KindUnevenRowLengths:
		return "uneven row lengths"
	case KindUnrecognizedAbbreviation:
		return "unrecognized abbreviation"
	case KindResourceExhausted:
		return "resource exhausted"
	}
	return "unknown"
}

// Sentinels for errors.Is; a *Error matches the sentinel of its Kind.
var (
	ErrEmptyPattern             = &Error{Kind: KindEmptyPattern}
	ErrUnterminatedRepeatGroup  = &Error{Kind: KindUnterminatedRepeatGroup}
	ErrMissingRepeatCount       = &Error{Kind: KindMissingRepeatCount}
	ErrUnevenRowLengths         = &Error{Kind: KindUnevenRowLengths}
	ErrUnrecognizedAbbreviation = &Error{Kind: KindUnrecognizedAbbreviation}
	ErrResourceExhausted        = &Error{Kind: KindResourceExhausted}
)

// Error is the single error type returned by the pattern pipeline.
//
// Row and Column are 0-based; Column is -1 when the failure is not tied to
// an expanded token. Offset is a byte offset into the caller's original line
// (a position inside text produced by an earlier expansion maps to the start
// of that group), -1 when unknown.
type Error struct {
	Kind   Kind
	Row    int
	Column int
	Offset int
	Token  string
	Want   int // expected token count (uneven rows) or limit (resource)
	Got    int // actual token count (uneven rows) or requested amount (resource)
	Detail string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	switch e.Kind {
	case KindEmptyPattern:
		// nothing positional to add
	case KindUnevenRowLengths:
		fmt.Fprintf(&b, ": row %d has %d stitches, row 0 has %d", e.Row, e.Got, e.Want)
	case KindUnrecognizedAbbreviation:
		fmt.Fprintf(&b, " %q at row %d, column %d", e.Token, e.Row, e.Column)
	case KindResourceExhausted:
		fmt.Fprintf(&b, " in row %d: %d tokens exceeds limit of %d", e.Row, e.Got, e.Want)
	default:
		fmt.Fprintf(&b, " in row %d", e.Row)
		if e.Offset >= 0 {
			fmt.Fprintf(&b, " at offset %d", e.Offset)
		}
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.isSentinel()
}

func (e *Error) isSentinel() bool {
	return e.Row == 0 && e.Column == 0 && e.Offset == 0 && e.Token == "" &&
		e.Want == 0 && e.Got == 0 && e.Detail == ""
}

func newRowError(kind Kind, row, offset int, detail string) *Error {
	return &Error{Kind: kind, Row: row, Column: -1, Offset: offset, Detail: detail}
}
