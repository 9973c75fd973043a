package pattern

import "knitchart/internal/stitch"

// DefaultMaxTokens bounds the number of tokens a whole pattern may expand to.
const DefaultMaxTokens = 100_000

// Options tunes Parse and Expand. The zero value uses the default
// vocabulary and DefaultMaxTokens.
type Options struct {
	Vocabulary *stitch.Vocabulary
	MaxTokens  int
}

func (o Options) withDefaults() Options {
	if o.Vocabulary == nil {
		o.Vocabulary = stitch.Default()
	}
	if o.MaxTokens <= 0 {
		o.MaxTokens = DefaultMaxTokens
	}
	return o
}

// Expand turns each line into its fully expanded token row: repeat groups
// first, then the split on Separator, then multiples.
func Expand(lines []string, opts Options) ([][]string, error) {
	opts = opts.withDefaults()
	if len(lines) == 0 {
		return nil, &Error{Kind: KindEmptyPattern, Column: -1, Offset: -1}
	}
	rows := make([][]string, len(lines))
	budget := opts.MaxTokens
	for i, line := range lines {
		expanded, err := ExpandRepeats(line, i, opts.MaxTokens)
		if err != nil {
			return nil, err
		}
		tokens, err := ExpandMultiples(SplitRow(expanded), i, budget)
		if err != nil {
			return nil, err
		}
		budget -= len(tokens)
		rows[i] = tokens
	}
	return rows, nil
}

// Parse converts pattern lines into a stitch grid. It either returns a
// complete rectangular grid or a *Error describing the first failure.
// Parse keeps no state between calls and is safe for concurrent use.
func Parse(lines []string, opts Options) (*Grid, error) {
	opts = opts.withDefaults()
	rows, err := Expand(lines, opts)
	if err != nil {
		return nil, err
	}
	if err := CheckRowLengths(rows); err != nil {
		return nil, err
	}
	return Resolve(rows, opts.Vocabulary)
}
