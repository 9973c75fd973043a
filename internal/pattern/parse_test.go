package pattern

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"knitchart/internal/stitch"
)

func lookup(t *testing.T, abbr string) stitch.Definition {
	t.Helper()
	d, ok := stitch.Default().Lookup(abbr)
	require.True(t, ok, abbr)
	return d
}

func TestParsePlainRows(t *testing.T) {
	grid, err := Parse([]string{"k, p, yo", "P, K, SKP"}, Options{})
	require.NoError(t, err)
	require.Equal(t, 2, grid.Rows())
	require.Equal(t, 3, grid.Cols())

	want := [][]string{{"K", "P", "YO"}, {"P", "K", "SKP"}}
	for r := range want {
		for c, abbr := range want[r] {
			assert.Equal(t, lookup(t, abbr), grid.At(r, c), "cell %d:%d", r, c)
		}
	}
}

func TestParseExpandsShorthand(t *testing.T) {
	grid, err := Parse([]string{
		"k2, (yo, k2tog) 2 times, k2",
		"p8",
		"*k, skp* 4 times",
	}, Options{})
	require.NoError(t, err)
	assert.Equal(t, 3, grid.Rows())
	assert.Equal(t, 8, grid.Cols())
	assert.Equal(t, lookup(t, "k2tog"), grid.At(0, 3))
	assert.Equal(t, lookup(t, "p"), grid.At(1, 7))
	assert.Equal(t, lookup(t, "skp"), grid.At(2, 7))
}

func TestParseUnevenRows(t *testing.T) {
	_, err := Parse([]string{"k, p", "k, p, k"}, Options{})
	require.ErrorIs(t, err, ErrUnevenRowLengths)

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 1, perr.Row)
	assert.Equal(t, 2, perr.Want)
	assert.Equal(t, 3, perr.Got)
}

func TestParseUnrecognizedAbbreviation(t *testing.T) {
	_, err := Parse([]string{"k, xyz"}, Options{})
	require.ErrorIs(t, err, ErrUnrecognizedAbbreviation)

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 0, perr.Row)
	assert.Equal(t, 1, perr.Column)
	assert.Equal(t, "xyz", perr.Token)
	assert.Equal(t, `unrecognized abbreviation "xyz" at row 0, column 1`, err.Error())
}

func TestParseZeroMultipleIsUnrecognized(t *testing.T) {
	_, err := Parse([]string{"k0"}, Options{})
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, KindUnrecognizedAbbreviation, perr.Kind)
	assert.Equal(t, "k0", perr.Token)
}

func TestExpandThenValidateMismatch(t *testing.T) {
	lines := []string{"k2, (yo, k2tog) 2 times, k2", "k6"}

	rows, err := Expand(lines, Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"k", "k", "yo", "k2tog", "yo", "k2tog", "k", "k"}, rows[0])
	assert.Equal(t, []string{"k", "k", "k", "k", "k", "k"}, rows[1])

	_, err = Parse(lines, Options{})
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, KindUnevenRowLengths, perr.Kind)
	assert.Equal(t, 8, perr.Want)
	assert.Equal(t, 6, perr.Got)
}

func TestParseCaseInsensitive(t *testing.T) {
	grid, err := Parse([]string{"K, k, K1"}, Options{})
	require.NoError(t, err)
	knit := lookup(t, "k")
	for c := 0; c < grid.Cols(); c++ {
		assert.Equal(t, knit, grid.At(0, c))
	}
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse(nil, Options{})
	assert.ErrorIs(t, err, ErrEmptyPattern)

	_, err = Parse([]string{"", ""}, Options{})
	assert.ErrorIs(t, err, ErrEmptyPattern)
}

func TestParseStopsAtFirstFailingStage(t *testing.T) {
	// Row 0 has an unknown token, row 1 an unterminated group: the
	// expansion failure is reported because it happens first.
	_, err := Parse([]string{"k, xyz", "(k, p"}, Options{})
	assert.ErrorIs(t, err, ErrUnterminatedRepeatGroup)
}

func TestParseTokenLimitSpansRows(t *testing.T) {
	_, err := Parse([]string{"k3", "k3"}, Options{MaxTokens: 5})
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, KindResourceExhausted, perr.Kind)
	assert.Equal(t, 1, perr.Row)

	grid, err := Parse([]string{"k3", "k3"}, Options{MaxTokens: 6})
	require.NoError(t, err)
	assert.Equal(t, 3, grid.Cols())
}

func TestParseCustomVocabulary(t *testing.T) {
	vocab, err := stitch.Default().Extend(stitch.Definition{Abbreviation: "M1", Glyph: "M", Name: "make one"})
	require.NoError(t, err)

	_, err = Parse([]string{"k, m1"}, Options{})
	require.ErrorIs(t, err, ErrUnrecognizedAbbreviation)

	grid, err := Parse([]string{"k, m1"}, Options{Vocabulary: vocab})
	require.NoError(t, err)
	assert.Equal(t, "M", grid.At(0, 1).Glyph)
}

func TestParseConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	errs := make([]error, 16)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			line := fmt.Sprintf("(k, p) %d times", i+1)
			grid, err := Parse([]string{line, line}, Options{})
			if err == nil && grid.Cols() != 2*(i+1) {
				err = fmt.Errorf("got %d cols", grid.Cols())
			}
			errs[i] = err
		}(i)
	}
	wg.Wait()
	assert.NoError(t, errors.Join(errs...))
}
