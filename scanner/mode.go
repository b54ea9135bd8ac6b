package scanner

import "sort"

// ModeEntry binds one compiled table into a scanner mode and assigns the
// token type its matches report.
type ModeEntry struct {
	// DFA is the index of the table in the scanner.
	DFA int
	// Token is the token type number reported for this pattern's matches.
	Token int
}

// ModeTransition switches the scanner to another mode after a token of the
// given type has been emitted.
type ModeTransition struct {
	Token int
	Mode  int
}

// Mode is a named set of active patterns, the feature known from Flex as
// start conditions. A scanner built without explicit modes has the single
// default mode "INITIAL" containing every pattern with token type equal to
// its index.
type Mode struct {
	Name        string
	Entries     []ModeEntry
	Transitions []ModeTransition // sorted by Token
}

// NextMode returns the mode to switch to after emitting a token of the
// given type.
func (m *Mode) NextMode(token int) (int, bool) {
	i := sort.Search(len(m.Transitions), func(i int) bool {
		return m.Transitions[i].Token >= token
	})
	if i < len(m.Transitions) && m.Transitions[i].Token == token {
		return m.Transitions[i].Mode, true
	}
	return 0, false
}

// defaultMode builds the INITIAL mode over all n tables.
func defaultMode(n int) Mode {
	entries := make([]ModeEntry, n)
	for i := range entries {
		entries[i] = ModeEntry{DFA: i, Token: i}
	}
	return Mode{Name: "INITIAL", Entries: entries}
}
