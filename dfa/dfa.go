// Package dfa builds deterministic automata from pattern NFAs.
//
// FromNFA runs the classical subset construction keyed by character class
// ID, Minimize applies partition refinement, and Flatten produces the
// compact transition tables consumed by the runtime scanner and the code
// emitter.
package dfa

import (
	"fmt"
	"sort"
	"strings"

	"github.com/coregx/scangen/charclass"
	"github.com/coregx/scangen/nfa"
)

// StateID identifies a state within one DFA.
type StateID int

// Edge is a deterministic transition: consuming one rune of Class moves to
// Target. Per state there is at most one edge per class ID.
type Edge struct {
	Class  charclass.ID
	Target StateID
}

// State is a DFA state. Edges keep the insertion order from the pattern
// AST; the runtime takes the first edge whose class matches, which makes
// the choice a total order even for overlapping classes.
type State struct {
	ID        StateID
	Accepting bool
	Edges     []Edge

	// nfaStates is the sorted NFA state set this DFA state stands for.
	// Only populated during subset construction.
	nfaStates []nfa.StateID
}

// DFA is a deterministic automaton for a single token pattern.
// State 0 is the entry. Totality is not required: a missing edge means no
// transition.
type DFA struct {
	// Pattern is the surface text of the token pattern, carried through
	// to the emitted tables.
	Pattern string

	States []State
}

// FromNFA converts an epsilon-NFA into a DFA using subset construction.
// Every resulting state is reachable from the entry by construction.
// Classes are probed in the pattern's first-use order, so each DFA state
// stores its edges in the insertion order from the AST.
func FromNFA(pattern string, n *nfa.NFA) (*DFA, error) {
	d := &DFA{Pattern: pattern}
	classes := n.ClassOrder()

	index := make(map[string]StateID)
	addState := func(set []nfa.StateID) (StateID, bool) {
		key := setKey(set)
		if id, ok := index[key]; ok {
			return id, false
		}
		id := StateID(len(d.States))
		accepting := false
		for _, s := range set {
			if s == n.Accept() {
				accepting = true
				break
			}
		}
		d.States = append(d.States, State{ID: id, Accepting: accepting, nfaStates: set})
		index[key] = id
		return id, true
	}

	start, _ := addState(n.EpsilonClosure(n.Start()))
	work := []StateID{start}
	for len(work) > 0 {
		id := work[len(work)-1]
		work = work[:len(work)-1]
		set := d.States[id].nfaStates
		for _, class := range classes {
			moved := n.Move(set, class)
			if len(moved) == 0 {
				continue
			}
			target, fresh := addState(n.EpsilonClosure(moved...))
			d.States[id].Edges = append(d.States[id].Edges, Edge{Class: class, Target: target})
			if fresh {
				work = append(work, target)
			}
		}
	}

	if err := d.validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// AcceptingCount returns the number of accepting states.
func (d *DFA) AcceptingCount() int {
	count := 0
	for i := range d.States {
		if d.States[i].Accepting {
			count++
		}
	}
	return count
}

// Target returns the transition target for (state, class), or -1 when the
// edge is absent.
func (d *DFA) Target(state StateID, class charclass.ID) StateID {
	for _, e := range d.States[state].Edges {
		if e.Class == class {
			return e.Target
		}
	}
	return -1
}

// validate checks determinism and edge target ranges.
func (d *DFA) validate() error {
	for i := range d.States {
		seen := make(map[charclass.ID]bool)
		for _, e := range d.States[i].Edges {
			if seen[e.Class] {
				return fmt.Errorf("dfa: state %d has duplicate edge for class %s", i, e.Class)
			}
			seen[e.Class] = true
			if e.Target < 0 || int(e.Target) >= len(d.States) {
				return fmt.Errorf("dfa: state %d has edge to invalid state %d", i, e.Target)
			}
		}
	}
	return nil
}

// String returns a human-readable dump for diagnostics.
func (d *DFA) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "DFA %q: %d states\n", d.Pattern, len(d.States))
	for i := range d.States {
		s := &d.States[i]
		marker := ""
		if s.Accepting {
			marker = " (accepting)"
		}
		fmt.Fprintf(&b, "  %d%s:", s.ID, marker)
		for _, e := range s.Edges {
			fmt.Fprintf(&b, " %s->%d", e.Class, e.Target)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func setKey(set []nfa.StateID) string {
	var b strings.Builder
	for _, s := range set {
		fmt.Fprintf(&b, "%d,", s)
	}
	return b.String()
}

// Flatten returns the serialized form of the DFA: the sorted accepting
// state list, per-state half-open ranges into the edge list, and the edge
// list itself as (class ID, target state) pairs. An empty range (k, k)
// means the state has no outgoing transitions.
func (d *DFA) Flatten() (accepting []int, stateRanges [][2]int, edges [][2]int) {
	accepting = make([]int, 0, len(d.States))
	stateRanges = make([][2]int, len(d.States))
	for i := range d.States {
		s := &d.States[i]
		if s.Accepting {
			accepting = append(accepting, int(s.ID))
		}
		first := len(edges)
		for _, e := range s.Edges {
			edges = append(edges, [2]int{int(e.Class), int(e.Target)})
		}
		stateRanges[i] = [2]int{first, len(edges)}
	}
	sort.Ints(accepting)
	return accepting, stateRanges, edges
}
