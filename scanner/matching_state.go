package scanner

// matchKind is the per-DFA matching state during a scan.
type matchKind uint8

const (
	// matchNone: no active candidate. A transition to a non-accepting
	// state records the match start; a transition to an accepting state
	// records a complete one-rune match.
	matchNone matchKind = iota

	// matchStart: candidate in progress, no accepting position seen yet.
	// Losing the transition invalidates the candidate.
	matchStart

	// matchAccepting: candidate with a recorded end position. Further
	// transitions may extend it; losing the transition freezes it.
	matchAccepting

	// matchLongest: terminal. The recorded end is final, no further
	// extension is possible. This state cannot be left.
	matchLongest
)

// matchingState tracks one DFA's progress through the four-state matching
// machine, together with the current DFA state and the candidate span.
// The zero value is the fresh state: matchNone in DFA state 0.
type matchingState struct {
	kind    matchKind
	current int // current DFA state
	start   int // candidate start, valid from matchStart on
	end     int // candidate end (exclusive), valid from matchAccepting on
}

// noTransition drives the "no transition found" column of the state table.
// The current rune did not move the DFA.
func (m *matchingState) noTransition() {
	switch m.kind {
	case matchNone:
		// Still searching.
	case matchStart:
		// The candidate cannot be completed, drop it.
		*m = matchingState{}
	case matchAccepting:
		// The recorded match is final now.
		m.kind = matchLongest
	case matchLongest:
	}
}

// toNonAccepting drives the "transition to a non-accepting state" column.
// pos is the byte offset of the consumed rune.
func (m *matchingState) toNonAccepting(pos int) {
	if m.kind == matchNone {
		m.kind = matchStart
		m.start = pos
	}
}

// toAccepting drives the "transition to an accepting state" column.
// The candidate end becomes the exclusive offset just past the rune, where
// width is the encoded length of the consumed rune.
func (m *matchingState) toAccepting(pos, width int) {
	switch m.kind {
	case matchNone:
		m.kind = matchAccepting
		m.start = pos
		m.end = pos + width
	case matchStart, matchAccepting:
		m.kind = matchAccepting
		m.end = pos + width
	case matchLongest:
	}
}

// lastMatch returns the recorded candidate span, if any.
func (m *matchingState) lastMatch() (start, end int, ok bool) {
	if m.kind == matchAccepting || m.kind == matchLongest {
		return m.start, m.end, true
	}
	return 0, 0, false
}
