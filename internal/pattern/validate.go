package pattern

// CheckRowLengths verifies that every row holds as many tokens as the
// first one. It reports the first row that differs.
func CheckRowLengths(rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	want := len(rows[0])
	for i := 1; i < len(rows); i++ {
		if got := len(rows[i]); got != want {
			return &Error{
				Kind: KindUnevenRowLengths, Row: i, Column: -1, Offset: -1,
				Want: want, Got: got,
			}
		}
	}
	return nil
}
