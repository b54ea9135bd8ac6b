package scanner

import "testing"

func TestMatchingStateFromNone(t *testing.T) {
	var m matchingState

	m.noTransition()
	if m.kind != matchNone {
		t.Errorf("None + no-trans = %v, want None", m.kind)
	}

	m = matchingState{}
	m.toNonAccepting(3)
	if m.kind != matchStart || m.start != 3 {
		t.Errorf("None + non-acc = %+v, want Start at 3", m)
	}

	m = matchingState{}
	m.toAccepting(3, 1)
	if m.kind != matchAccepting || m.start != 3 || m.end != 4 {
		t.Errorf("None + acc = %+v, want Accepting [3, 4)", m)
	}
}

func TestMatchingStateFromStart(t *testing.T) {
	m := matchingState{kind: matchStart, start: 2}

	m.toNonAccepting(3)
	if m.kind != matchStart || m.start != 2 {
		t.Errorf("Start + non-acc = %+v, want unchanged Start at 2", m)
	}

	m.toAccepting(3, 1)
	if m.kind != matchAccepting || m.start != 2 || m.end != 4 {
		t.Errorf("Start + acc = %+v, want Accepting [2, 4)", m)
	}

	// A Start that loses its transition is invalidated completely.
	m = matchingState{kind: matchStart, start: 2}
	m.noTransition()
	if m.kind != matchNone {
		t.Errorf("Start + no-trans = %v, want None", m.kind)
	}
	if _, _, ok := m.lastMatch(); ok {
		t.Error("invalidated Start still reports a match")
	}
}

func TestMatchingStateFromAccepting(t *testing.T) {
	m := matchingState{kind: matchAccepting, start: 1, end: 3}

	m.toNonAccepting(3)
	if m.kind != matchAccepting || m.end != 3 {
		t.Errorf("Accepting + non-acc = %+v, want end unchanged", m)
	}

	m.toAccepting(3, 2)
	if m.kind != matchAccepting || m.end != 5 {
		t.Errorf("Accepting + acc = %+v, want end 5", m)
	}

	m.noTransition()
	if m.kind != matchLongest {
		t.Errorf("Accepting + no-trans = %v, want Longest", m.kind)
	}
	if start, end, ok := m.lastMatch(); !ok || start != 1 || end != 5 {
		t.Errorf("Longest lost the span: [%d, %d) ok=%v", start, end, ok)
	}
}

func TestMatchingStateLongestIsTerminal(t *testing.T) {
	m := matchingState{kind: matchLongest, start: 0, end: 2}
	m.noTransition()
	m.toNonAccepting(5)
	m.toAccepting(5, 1)
	if m.kind != matchLongest || m.start != 0 || m.end != 2 {
		t.Errorf("Longest left its state: %+v", m)
	}
}
