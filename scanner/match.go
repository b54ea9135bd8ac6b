package scanner

// Match is one token found in the input.
//
// Start and End are byte offsets into the scanned input; End is exclusive.
// Pattern is the token type number of the winning pattern, which in the
// default scanner mode equals the pattern's index in the compiled list.
type Match struct {
	Pattern int
	Start   int
	End     int
}

// Len returns the length of the matched text in bytes.
func (m Match) Len() int {
	return m.End - m.Start
}
