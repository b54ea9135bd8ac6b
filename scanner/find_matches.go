package scanner

import "unicode/utf8"

// FindMatches iterates over all non-overlapping matches of a scanner in an
// input text.
//
// At every scan position all DFAs of the current mode are seeded fresh and
// stepped over the input one rune at a time in lockstep. A DFA drops out
// once it can no longer change its candidate. The winning candidate is the
// longest match, with ties broken by the lowest pattern index. After a
// match is emitted the next scan starts at its end; positions where no
// pattern can start are skipped one rune at a time, or in one jump when a
// literal prefilter is attached.
//
// The iterator is not safe for concurrent use and cannot be restarted.
type FindMatches struct {
	scanner *Scanner
	input   string
	raw     []byte // only set when a prefilter is attached
	pos     int
	mode    int
	dfas    []runtimeDFA
	active  []int
}

func newFindMatches(s *Scanner, input string) *FindMatches {
	f := &FindMatches{
		scanner: s,
		input:   input,
		dfas:    make([]runtimeDFA, len(s.tables)),
		active:  make([]int, 0, len(s.tables)),
	}
	for i := range f.dfas {
		f.dfas[i].table = &s.tables[i]
	}
	if s.prefilter != nil {
		f.raw = []byte(input)
	}
	return f
}

// Next returns the next match. The second result is false when the input
// is exhausted.
func (f *FindMatches) Next() (Match, bool) {
	m, pos, ok := f.next(f.pos, f.mode)
	f.pos = pos
	if ok {
		if target, switched := f.scanner.modes[f.mode].NextMode(m.Pattern); switched {
			f.mode = target
		}
	}
	return m, ok
}

// SetMode sets the current scanner mode. A parser can switch the scanner
// to a different pattern set explicitly; usually the mode changes through
// the transitions defined on the modes themselves.
func (f *FindMatches) SetMode(mode int) {
	if mode < 0 || mode >= len(f.scanner.modes) {
		return
	}
	f.mode = mode
}

// CurrentMode returns the index of the current scanner mode.
func (f *FindMatches) CurrentMode() int {
	return f.mode
}

// PeekN returns the n-th upcoming match without advancing the iterator and
// without committing any mode switches. PeekN(1) is the match the next
// call to Next would return.
func (f *FindMatches) PeekN(n int) (Match, bool) {
	pos, mode := f.pos, f.mode
	var m Match
	var ok bool
	for i := 0; i < n; i++ {
		m, pos, ok = f.next(pos, mode)
		if !ok {
			return Match{}, false
		}
	}
	return m, true
}

// next scans forward from pos and returns the first match, the cursor
// position to resume from, and whether a match was found.
func (f *FindMatches) next(pos, mode int) (Match, int, bool) {
	for pos < len(f.input) {
		m, ok := f.findAt(pos, mode)
		if ok && m.End > m.Start {
			return m, m.End, true
		}
		// No candidate here (a zero-length winner is discarded the same
		// way to guarantee progress). Advance one rune, or jump to the
		// next possible token start.
		_, width := utf8.DecodeRuneInString(f.input[pos:])
		pos += width
		if pf := f.scanner.prefilter; pf != nil {
			if jump := pf.Find(f.raw, pos); jump >= 0 {
				pos = jump
			} else {
				pos = len(f.input)
			}
		}
	}
	return Match{}, pos, false
}

// findAt runs all DFAs of the mode in lockstep against input[pos:] and
// selects the winning candidate anchored at pos.
func (f *FindMatches) findAt(pos, mode int) (Match, bool) {
	entries := f.scanner.modes[mode].Entries
	f.active = f.active[:0]
	for i, entry := range entries {
		f.dfas[entry.DFA].reset()
		f.active = append(f.active, i)
	}

	offset := pos
	for offset < len(f.input) && len(f.active) > 0 {
		c, width := utf8.DecodeRuneInString(f.input[offset:])
		retained := f.active[:0]
		for _, i := range f.active {
			d := &f.dfas[entries[i].DFA]
			d.advance(offset, c, width, f.scanner.matcher)
			if d.active() {
				retained = append(retained, i)
			}
		}
		f.active = retained
		offset += width
	}

	// All DFAs are frozen or the input is exhausted; exhaustion acts like
	// a missing transition, so a recorded candidate is already final.
	var best Match
	found := false
	for _, entry := range entries {
		start, end, ok := f.dfas[entry.DFA].currentMatch()
		if !ok {
			continue
		}
		if !found || end-start > best.Len() {
			best = Match{Pattern: entry.Token, Start: start, End: end}
			found = true
		}
	}
	return best, found
}
