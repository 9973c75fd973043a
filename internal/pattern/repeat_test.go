package pattern

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandRepeats(t *testing.T) {
	tests := []struct {
		name string
		row  string
		want string
	}{
		{"no groups", "k, p, yo", "k, p, yo"},
		{"parentheses to end of row", "(k, yo) 3 times", "k, yo, k, yo, k, yo"},
		{"count of one", "(k, p) 1 time", "k, p"},
		{"brackets mid row", "k, [p, yo] 2 times, k", "k, p, yo, p, yo, k"},
		{"asterisks", "*k2tog* 2, p", "k2tog, k2tog, p"},
		{"several groups", "(k) 2 times, p, (yo) 3 times", "k, k, p, yo, yo, yo"},
		{"count found anywhere in clause", "(k) repeat 4x, p", "k, k, k, k, p"},
		{"trailing comma", "(k) 2 times,", "k, k, "},
		{"mixed styles use fixed priority", "[k] 2, (p) 2", "k, k, p, p"},
		{"multi-stitch unit stays a block", "(k, p, yo) 2", "k, p, yo, k, p, yo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandRepeats(tt.row, 0, DefaultMaxTokens)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpandRepeatsIsFixedPoint(t *testing.T) {
	once, err := ExpandRepeats("(k, yo) 3 times", 0, DefaultMaxTokens)
	require.NoError(t, err)
	assert.Equal(t, []string{"k", "yo", "k", "yo", "k", "yo"}, SplitRow(once))

	twice, err := ExpandRepeats(once, 0, DefaultMaxTokens)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestExpandRepeatsUnterminated(t *testing.T) {
	_, err := ExpandRepeats("k, (p, yo 2 times", 4, DefaultMaxTokens)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnterminatedRepeatGroup))

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 4, perr.Row)
	assert.Equal(t, 3, perr.Offset)
	assert.Equal(t, "(", perr.Token)
	assert.Equal(t, -1, perr.Column)
}

func TestExpandRepeatsUnterminatedAsterisk(t *testing.T) {
	_, err := ExpandRepeats("*k, p 2 times", 0, DefaultMaxTokens)
	assert.ErrorIs(t, err, ErrUnterminatedRepeatGroup)
}

func TestExpandRepeatsMissingCount(t *testing.T) {
	_, err := ExpandRepeats("(k, p) times, k", 2, DefaultMaxTokens)
	require.ErrorIs(t, err, ErrMissingRepeatCount)

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Row)
	assert.Equal(t, 6, perr.Offset)
}

func TestExpandRepeatsZeroCount(t *testing.T) {
	_, err := ExpandRepeats("(k) 0 times", 0, DefaultMaxTokens)
	require.ErrorIs(t, err, ErrMissingRepeatCount)
	assert.Contains(t, err.Error(), "at least 1")
}

func TestExpandRepeatsOffsetMapsToOriginalLine(t *testing.T) {
	// The second group's '(' sits at byte 13 of the line as written.
	_, err := ExpandRepeats("(k) 2 times, (p", 0, DefaultMaxTokens)
	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, KindUnterminatedRepeatGroup, perr.Kind)
	assert.Equal(t, 13, perr.Offset)
}

func TestExpandRepeatsLimit(t *testing.T) {
	_, err := ExpandRepeats("(k) 1000 times", 0, 10)
	assert.ErrorIs(t, err, ErrResourceExhausted)

	_, err = ExpandRepeats("(k, p) 6 times", 0, 10)
	assert.ErrorIs(t, err, ErrResourceExhausted)

	_, err = ExpandRepeats("(k) 99999999999999999999999 times", 0, DefaultMaxTokens)
	assert.ErrorIs(t, err, ErrResourceExhausted)
}

func TestOriginalOffset(t *testing.T) {
	edits := []edit{{at: 0, oldLen: 13, newLen: 6}}
	assert.Equal(t, 13, originalOffset(edits, 6))
	assert.Equal(t, 0, originalOffset(edits, 3), "inside expanded text maps to group start")
	assert.Equal(t, 15, originalOffset(edits, 8))
	assert.Equal(t, 4, originalOffset(nil, 4))
}
