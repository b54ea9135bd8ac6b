package dfa

import (
	"strings"
	"testing"

	"github.com/coregx/scangen/ast"
	"github.com/coregx/scangen/charclass"
	"github.com/coregx/scangen/nfa"
)

func build(t *testing.T, pattern string, reg *charclass.Registry) *DFA {
	t.Helper()
	node, err := ast.Parse(pattern)
	if err != nil {
		t.Fatalf("parse %q: %v", pattern, err)
	}
	n, err := nfa.Compile(node, reg)
	if err != nil {
		t.Fatalf("nfa %q: %v", pattern, err)
	}
	d, err := FromNFA(pattern, n)
	if err != nil {
		t.Fatalf("dfa %q: %v", pattern, err)
	}
	return d
}

// accepts simulates the DFA over input using the registry's predicates.
func accepts(d *DFA, reg *charclass.Registry, input string) bool {
	state := StateID(0)
	for _, c := range input {
		next := StateID(-1)
		for _, e := range d.States[state].Edges {
			if reg.Matches(c, e.Class) {
				next = e.Target
				break
			}
		}
		if next < 0 {
			return false
		}
		state = next
	}
	return d.States[state].Accepting
}

func TestSubsetConstructionAndMinimize(t *testing.T) {
	tests := []struct {
		name         string
		pattern      string
		states       int
		accepting    int
		classes      int
		minStates    int
		minAccepting int
	}{
		{
			name:         "dragon",
			pattern:      "(a|b)*abb",
			states:       5,
			accepting:    1,
			classes:      2,
			minStates:    4,
			minAccepting: 1,
		},
		{
			name:         "keyword_in",
			pattern:      "in",
			states:       3,
			accepting:    1,
			classes:      2,
			minStates:    3,
			minAccepting: 1,
		},
		{
			name:         "keyword_int",
			pattern:      "int",
			states:       4,
			accepting:    1,
			classes:      3,
			minStates:    4,
			minAccepting: 1,
		},
		{
			name:         "bounds",
			pattern:      "a{1,2}b{2,}c{3}",
			states:       9,
			accepting:    1,
			classes:      3,
			minStates:    8,
			minAccepting: 1,
		},
		{
			name:         "city_and_state",
			pattern:      "[A-Z][a-z]*([ ][A-Z][a-z]*)*[ ][A-Z][A-Z]",
			states:       7,
			accepting:    1,
			classes:      3,
			minStates:    5,
			minAccepting: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := charclass.NewRegistry()
			d := build(t, tt.pattern, reg)
			if len(d.States) != tt.states {
				t.Errorf("states = %d, want %d", len(d.States), tt.states)
			}
			if d.AcceptingCount() != tt.accepting {
				t.Errorf("accepting = %d, want %d", d.AcceptingCount(), tt.accepting)
			}
			if reg.Count() != tt.classes {
				t.Errorf("classes = %d, want %d", reg.Count(), tt.classes)
			}

			min, err := d.Minimize()
			if err != nil {
				t.Fatalf("Minimize: %v", err)
			}
			if len(min.States) != tt.minStates {
				t.Errorf("min states = %d, want %d", len(min.States), tt.minStates)
			}
			if min.AcceptingCount() != tt.minAccepting {
				t.Errorf("min accepting = %d, want %d", min.AcceptingCount(), tt.minAccepting)
			}
			if min.Pattern != tt.pattern {
				t.Errorf("pattern lost in minimization")
			}

			// Minimization is a fixpoint.
			again, err := min.Minimize()
			if err != nil {
				t.Fatalf("second Minimize: %v", err)
			}
			if len(again.States) != len(min.States) {
				t.Errorf("minimize not idempotent: %d -> %d states", len(min.States), len(again.States))
			}
		})
	}
}

func TestMinimizePreservesLanguage(t *testing.T) {
	reg := charclass.NewRegistry()
	d := build(t, "(a|b)*abb", reg)
	min, err := d.Minimize()
	if err != nil {
		t.Fatal(err)
	}

	// Exhaust all strings over {a, b} up to length 6.
	var inputs []string
	var grow func(prefix string, depth int)
	grow = func(prefix string, depth int) {
		inputs = append(inputs, prefix)
		if depth == 0 {
			return
		}
		grow(prefix+"a", depth-1)
		grow(prefix+"b", depth-1)
	}
	grow("", 6)

	for _, input := range inputs {
		want := strings.HasSuffix(input, "abb")
		if got := accepts(d, reg, input); got != want {
			t.Errorf("DFA accepts(%q) = %v, want %v", input, got, want)
		}
		if got := accepts(min, reg, input); got != want {
			t.Errorf("MinDFA accepts(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestMinimizeKeepsEntryAtZero(t *testing.T) {
	reg := charclass.NewRegistry()
	d := build(t, "(a|b)*abb", reg)
	min, err := d.Minimize()
	if err != nil {
		t.Fatal(err)
	}
	// State 0 must still reject the empty string and accept after reading "abb".
	if accepts(min, reg, "") {
		t.Error("entry state accepts the empty string")
	}
	if !accepts(min, reg, "abb") {
		t.Error("entry state lost the language")
	}
}

func TestOverlappingClassesKeepPatternOrder(t *testing.T) {
	// In a block comment the '*' literal overlaps the '.' class. The state
	// inside the comment must try '*' first, in the order the pattern
	// introduced the classes, or the comment never closes.
	reg := charclass.NewRegistry()
	d := build(t, `(/\*.*?\*/)`, reg)

	starClass := charclass.ID(1) // interning order: '/', '*', '.'
	dotClass := charclass.ID(2)

	found := false
	for i := range d.States {
		edges := d.States[i].Edges
		if len(edges) != 2 {
			continue
		}
		found = true
		if edges[0].Class != starClass || edges[1].Class != dotClass {
			t.Errorf("inside-comment state orders edges %v, %v; want star before dot",
				edges[0].Class, edges[1].Class)
		}
	}
	if !found {
		t.Fatal("no state with both star and dot edges")
	}
}

func TestTargetLookup(t *testing.T) {
	reg := charclass.NewRegistry()
	d := build(t, "ab", reg)
	if got := d.Target(0, charclass.ID(0)); got != 1 {
		t.Errorf("Target(0, a) = %d, want 1", got)
	}
	if got := d.Target(0, charclass.ID(1)); got != -1 {
		t.Errorf("Target(0, b) = %d, want -1", got)
	}
}

func TestFlatten(t *testing.T) {
	reg := charclass.NewRegistry()
	d := build(t, "ab", reg)
	min, err := d.Minimize()
	if err != nil {
		t.Fatal(err)
	}
	accepting, ranges, edges := min.Flatten()

	if len(ranges) != len(min.States) {
		t.Fatalf("ranges = %d entries, want %d", len(ranges), len(min.States))
	}
	if len(accepting) != 1 {
		t.Fatalf("accepting = %v, want one state", accepting)
	}

	// Ranges tile the edge list without gaps.
	next := 0
	for i, r := range ranges {
		if r[0] != next {
			t.Errorf("range %d starts at %d, want %d", i, r[0], next)
		}
		if r[1] < r[0] {
			t.Errorf("range %d inverted", i)
		}
		next = r[1]
	}
	if next != len(edges) {
		t.Errorf("ranges cover %d edges, want %d", next, len(edges))
	}

	// The accepting chain end has no outgoing transitions.
	final := accepting[0]
	if ranges[final][0] != ranges[final][1] {
		t.Errorf("final state has outgoing edges")
	}
}
