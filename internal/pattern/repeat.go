package pattern

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Separator joins abbreviations inside a row.
const Separator = ", "

type delimiterPair struct {
	open, close byte
}

// Checked in this order: a row containing any '(' is expanded on
// parentheses first, then asterisks, then brackets.
var repeatDelimiters = [...]delimiterPair{
	{open: '(', close: ')'},
	{open: '*', close: '*'},
	{open: '[', close: ']'},
}

// edit records one group replacement in the coordinates of the row text it
// was applied to.
type edit struct {
	at     int
	oldLen int
	newLen int
}

// ExpandRepeats rewrites every repeat group in row, e.g.
// "k, (yo, k2tog) 2 times, p" becomes "k, yo, k2tog, yo, k2tog, p".
// Groups are expanded one at a time and the row is rescanned from the
// start after each one, until no opening delimiter is left. maxTokens bounds
// the number of tokens the row may grow to.
func ExpandRepeats(row string, rowIdx, maxTokens int) (string, error) {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	var edits []edit
	for passes := 0; ; passes++ {
		d, ok := pickDelimiter(row)
		if !ok {
			return row, nil
		}
		if passes >= maxTokens {
			return "", &Error{
				Kind: KindResourceExhausted, Row: rowIdx, Column: -1, Offset: -1,
				Want: maxTokens, Got: passes,
				Detail: "too many repeat groups",
			}
		}
		next, e, err := expandFirstGroup(row, d, rowIdx, maxTokens)
		if err != nil {
			if err.Offset >= 0 {
				err.Offset = originalOffset(edits, err.Offset)
			}
			return "", err
		}
		edits = append(edits, e)
		row = next
	}
}

func pickDelimiter(row string) (delimiterPair, bool) {
	for _, d := range repeatDelimiters {
		if strings.IndexByte(row, d.open) >= 0 {
			return d, true
		}
	}
	return delimiterPair{}, false
}

func expandFirstGroup(row string, d delimiterPair, rowIdx, maxTokens int) (string, edit, *Error) {
	start := strings.IndexByte(row, d.open)
	rel := strings.IndexByte(row[start+1:], d.close)
	if rel < 0 {
		err := newRowError(KindUnterminatedRepeatGroup, rowIdx, start,
			fmt.Sprintf("no closing %q for %q", d.close, d.open))
		err.Token = string(d.open)
		return "", edit{}, err
	}
	end := start + 1 + rel
	unit := row[start+1 : end]

	// The count clause runs from the closing delimiter to the next comma.
	clauseEnd := len(row)
	comma := strings.IndexByte(row[end+1:], ',')
	if comma >= 0 {
		clauseEnd = end + 1 + comma
	}
	clause := row[end+1 : clauseEnd]

	times, err := firstInteger(clause)
	if err != nil {
		return "", edit{}, &Error{
			Kind: KindResourceExhausted, Row: rowIdx, Column: -1, Offset: end + 1,
			Want: maxTokens, Got: math.MaxInt,
			Detail: "repeat count " + strings.TrimSpace(clause) + " is out of range",
		}
	}
	switch {
	case times < 0:
		return "", edit{}, newRowError(KindMissingRepeatCount, rowIdx, end+1,
			fmt.Sprintf("no repeat count after %q", string(d.close)))
	case times == 0:
		return "", edit{}, newRowError(KindMissingRepeatCount, rowIdx, end+1,
			"repeat count must be at least 1")
	}

	unitTokens := strings.Count(unit, Separator) + 1
	if times > maxTokens/unitTokens {
		return "", edit{}, &Error{
			Kind: KindResourceExhausted, Row: rowIdx, Column: -1, Offset: start,
			Want: maxTokens, Got: saturatingMul(times, unitTokens),
			Detail: fmt.Sprintf("repeat group %q times %d", unit, times),
		}
	}

	expanded := strings.Repeat(unit+Separator, times)
	var b strings.Builder
	b.Grow(start + len(expanded) + len(row) - clauseEnd)
	b.WriteString(row[:start])
	replaceEnd := len(row)
	if comma >= 0 {
		b.WriteString(expanded)
		// Skip the comma and the single space of the separator after it.
		replaceEnd = clauseEnd + 1
		if replaceEnd < len(row) && row[replaceEnd] == ' ' {
			replaceEnd++
		}
		b.WriteString(row[replaceEnd:])
	} else {
		b.WriteString(strings.TrimSuffix(expanded, Separator))
	}
	next := b.String()

	if n := strings.Count(next, Separator) + 1; n > maxTokens {
		return "", edit{}, &Error{
			Kind: KindResourceExhausted, Row: rowIdx, Column: -1, Offset: start,
			Want: maxTokens, Got: n,
		}
	}
	newLen := len(next) - start - (len(row) - replaceEnd)
	return next, edit{at: start, oldLen: replaceEnd - start, newLen: newLen}, nil
}

// firstInteger returns the first run of ASCII digits in s, -1 when s has
// none. A run too large for int is an error.
func firstInteger(s string) (int, error) {
	i := strings.IndexFunc(s, isDigit)
	if i < 0 {
		return -1, nil
	}
	j := i
	for j < len(s) && isDigit(rune(s[j])) {
		j++
	}
	return strconv.Atoi(s[i:j])
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// originalOffset maps an offset in the current row text back through the
// recorded edits to the caller's original line.
func originalOffset(edits []edit, off int) int {
	for i := len(edits) - 1; i >= 0; i-- {
		e := edits[i]
		switch {
		case off < e.at:
		case off < e.at+e.newLen:
			off = e.at
		default:
			off = off - e.newLen + e.oldLen
		}
	}
	return off
}

func saturatingMul(a, b int) int {
	if a != 0 && b > math.MaxInt/a {
		return math.MaxInt
	}
	return a * b
}
