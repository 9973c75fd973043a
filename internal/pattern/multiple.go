package pattern

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// multiplePattern matches shorthand like "k3" or "P12": a knit or purl
// letter followed by a count that does not start with zero.
var multiplePattern = regexp.MustCompile(`^[KkPp][1-9][0-9]*$`)

// SplitRow cuts an expanded row into tokens on Separator. Surrounding blanks
// are trimmed from each token and trailing empty tokens are dropped, so a
// row ending in ", " is accepted. Interior empty tokens are kept and later
// fail resolution.
func SplitRow(row string) []string {
	parts := strings.Split(row, Separator)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

// ExpandMultiples replaces each multiple token ("k3") with that many copies
// of its letter ("k", "k", "k"), keeping every other token in place. budget
// is the largest number of tokens the result may hold.
func ExpandMultiples(tokens []string, rowIdx, budget int) ([]string, error) {
	out := make([]string, 0, len(tokens))
	for col, tok := range tokens {
		if !multiplePattern.MatchString(tok) {
			if len(out) >= budget {
				return nil, exhausted(rowIdx, col, tok, budget, len(out)+1)
			}
			out = append(out, tok)
			continue
		}
		n, err := strconv.Atoi(tok[1:])
		if err != nil {
			return nil, exhausted(rowIdx, col, tok, budget, math.MaxInt)
		}
		if n > budget-len(out) {
			return nil, exhausted(rowIdx, col, tok, budget, saturatingAdd(len(out), n))
		}
		letter := tok[:1]
		for i := 0; i < n; i++ {
			out = append(out, letter)
		}
	}
	return out, nil
}

func exhausted(row, col int, tok string, limit, got int) *Error {
	return &Error{
		Kind: KindResourceExhausted, Row: row, Column: col, Offset: -1,
		Token: tok, Want: limit, Got: got,
	}
}

func saturatingAdd(a, b int) int {
	if s := a + b; s >= a {
		return s
	}
	return math.MaxInt
}
