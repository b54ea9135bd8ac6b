// Package nfa provides the Thompson epsilon-NFA built from token pattern
// ASTs.
//
// States live in an arena slice and reference each other by integer ID, so
// the cyclic structure produced by repetition needs no pointer cycles. Edges
// come in two kinds: epsilon edges and class edges labeled with an interned
// character class ID. Every NFA has exactly one entry state and one
// accepting state; composition glues fragments together with epsilon edges.
package nfa

import (
	"fmt"
	"sort"
	"strings"

	"github.com/coregx/scangen/charclass"
	"github.com/coregx/scangen/internal/sparse"
)

// StateID identifies a state within one NFA.
type StateID int

// ClassEdge is a transition consuming one rune of the labeled class.
type ClassEdge struct {
	Class  charclass.ID
	Target StateID
}

// State is a single NFA state with its outgoing edges.
type State struct {
	id       StateID
	epsilons []StateID
	edges    []ClassEdge
}

// ID returns the state's identifier.
func (s *State) ID() StateID {
	return s.id
}

// Epsilons returns the epsilon targets in insertion order.
func (s *State) Epsilons() []StateID {
	return s.epsilons
}

// Edges returns the class edges in insertion order.
func (s *State) Edges() []ClassEdge {
	return s.edges
}

// NFA is an epsilon-NFA over character class IDs.
type NFA struct {
	states []State
	start  StateID
	accept StateID

	// classes records the class IDs in first-use order. The subset
	// constructor iterates them in this order, which makes a DFA state's
	// edge order the insertion order from the pattern AST. The matching
	// engine relies on that order when overlapping classes compete for
	// the same rune: the class mentioned earlier in the pattern wins.
	classes []charclass.ID
}

// New creates an NFA with a single state that is both entry and accepting.
// Such an NFA matches exactly the empty string.
func New() *NFA {
	return &NFA{
		states: []State{{id: 0}},
	}
}

// Start returns the entry state.
func (n *NFA) Start() StateID {
	return n.start
}

// Accept returns the single accepting state.
func (n *NFA) Accept() StateID {
	return n.accept
}

// StateCount returns the number of states.
func (n *NFA) StateCount() int {
	return len(n.states)
}

// State returns the state with the given ID, or nil if out of range.
func (n *NFA) State(id StateID) *State {
	if id < 0 || int(id) >= len(n.states) {
		return nil
	}
	return &n.states[id]
}

// isEmpty reports whether no transitions have been added yet.
func (n *NFA) isEmpty() bool {
	return n.start == 0 && n.accept == 0 && len(n.states) == 1 &&
		len(n.states[0].epsilons) == 0 && len(n.states[0].edges) == 0
}

func (n *NFA) newState() StateID {
	id := StateID(len(n.states))
	n.states = append(n.states, State{id: id})
	return id
}

func (n *NFA) addEdge(from StateID, class charclass.ID, to StateID) {
	n.states[from].edges = append(n.states[from].edges, ClassEdge{Class: class, Target: to})
	n.noteClass(class)
}

func (n *NFA) noteClass(class charclass.ID) {
	for _, c := range n.classes {
		if c == class {
			return
		}
	}
	n.classes = append(n.classes, class)
}

func (n *NFA) addEpsilon(from, to StateID) {
	n.states[from].epsilons = append(n.states[from].epsilons, to)
}

// offset shifts all state IDs by delta, preparing the NFA to be appended
// into another arena.
func (n *NFA) offset(delta StateID) {
	for i := range n.states {
		s := &n.states[i]
		s.id += delta
		for j := range s.epsilons {
			s.epsilons[j] += delta
		}
		for j := range s.edges {
			s.edges[j].Target += delta
		}
	}
	n.start += delta
	n.accept += delta
}

// Clone returns a deep copy.
func (n *NFA) Clone() *NFA {
	states := make([]State, len(n.states))
	for i, s := range n.states {
		states[i] = State{
			id:       s.id,
			epsilons: append([]StateID(nil), s.epsilons...),
			edges:    append([]ClassEdge(nil), s.edges...),
		}
	}
	return &NFA{
		states:  states,
		start:   n.start,
		accept:  n.accept,
		classes: append([]charclass.ID(nil), n.classes...),
	}
}

// Concat appends other so that it must match right after the receiver.
func (n *NFA) Concat(other *NFA) {
	if n.isEmpty() {
		*n = *other
		return
	}
	other.offset(StateID(len(n.states)))
	n.states = append(n.states, other.states...)
	for _, c := range other.classes {
		n.noteClass(c)
	}
	n.addEpsilon(n.accept, other.start)
	n.accept = other.accept
}

// Alternate extends the receiver to match either itself or other.
func (n *NFA) Alternate(other *NFA) {
	if n.isEmpty() {
		*n = *other
		return
	}
	other.offset(StateID(len(n.states)))
	n.states = append(n.states, other.states...)
	for _, c := range other.classes {
		n.noteClass(c)
	}

	start := n.newState()
	n.addEpsilon(start, n.start)
	n.addEpsilon(start, other.start)

	accept := n.newState()
	n.addEpsilon(n.accept, accept)
	n.addEpsilon(other.accept, accept)

	n.start = start
	n.accept = accept
}

// ZeroOrOne makes the whole NFA optional with an epsilon bypass.
func (n *NFA) ZeroOrOne() {
	start := n.newState()
	n.addEpsilon(start, n.start)
	n.addEpsilon(start, n.accept)
	n.start = start
}

// OneOrMore allows the whole NFA to repeat at least once.
func (n *NFA) OneOrMore() {
	start := n.newState()
	n.addEpsilon(start, n.start)

	accept := n.newState()
	n.addEpsilon(n.accept, accept)
	n.addEpsilon(n.accept, n.start)

	n.start = start
	n.accept = accept
}

// ZeroOrMore allows the whole NFA to repeat any number of times,
// including zero.
func (n *NFA) ZeroOrMore() {
	start := n.newState()
	n.addEpsilon(start, n.start)
	n.addEpsilon(start, n.accept)

	accept := n.newState()
	n.addEpsilon(n.accept, accept)
	n.addEpsilon(n.accept, n.start)

	n.start = start
	n.accept = accept
}

// EpsilonClosure returns the set of states reachable from the given states
// through epsilon edges alone, sorted ascending.
func (n *NFA) EpsilonClosure(states ...StateID) []StateID {
	seen := sparse.NewSet(len(n.states))
	stack := make([]StateID, 0, len(states))
	for _, s := range states {
		if !seen.Contains(int(s)) {
			seen.Insert(int(s))
			stack = append(stack, s)
		}
	}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, t := range n.states[s].epsilons {
			if !seen.Contains(int(t)) {
				seen.Insert(int(t))
				stack = append(stack, t)
			}
		}
	}
	out := make([]StateID, 0, seen.Len())
	for _, v := range seen.Values() {
		out = append(out, StateID(v))
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Move returns the targets reachable from the given states by consuming one
// rune of the given class, sorted ascending.
func (n *NFA) Move(states []StateID, class charclass.ID) []StateID {
	seen := sparse.NewSet(len(n.states))
	for _, s := range states {
		for _, e := range n.states[s].edges {
			if e.Class == class && !seen.Contains(int(e.Target)) {
				seen.Insert(int(e.Target))
			}
		}
	}
	out := make([]StateID, 0, seen.Len())
	for _, v := range seen.Values() {
		out = append(out, StateID(v))
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ClassOrder returns the class IDs referenced by the NFA in first-use
// order, i.e. the order the pattern AST introduced them.
func (n *NFA) ClassOrder() []charclass.ID {
	return n.classes
}

// ClassIDs returns the sorted set of class IDs referenced by any edge.
func (n *NFA) ClassIDs() []charclass.ID {
	out := append([]charclass.ID(nil), n.classes...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// MatchesEmpty reports whether the accepting state is reachable from the
// entry by epsilon edges alone, i.e. the language contains the empty string.
func (n *NFA) MatchesEmpty() bool {
	for _, s := range n.EpsilonClosure(n.start) {
		if s == n.accept {
			return true
		}
	}
	return false
}

// Validate checks the structural invariants: all edge targets must be in
// range and the entry and accepting states must exist.
func (n *NFA) Validate() error {
	if n.State(n.start) == nil {
		return fmt.Errorf("nfa: start state %d out of range", n.start)
	}
	if n.State(n.accept) == nil {
		return fmt.Errorf("nfa: accepting state %d out of range", n.accept)
	}
	for i := range n.states {
		for _, t := range n.states[i].epsilons {
			if n.State(t) == nil {
				return fmt.Errorf("nfa: state %d has epsilon edge to invalid state %d", i, t)
			}
		}
		for _, e := range n.states[i].edges {
			if n.State(e.Target) == nil {
				return fmt.Errorf("nfa: state %d has class edge to invalid state %d", i, e.Target)
			}
		}
	}
	return nil
}

// String returns a human-readable summary for diagnostics.
func (n *NFA) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "NFA{states: %d, start: %d, accept: %d}\n", len(n.states), n.start, n.accept)
	for i := range n.states {
		s := &n.states[i]
		for _, t := range s.epsilons {
			fmt.Fprintf(&b, "  %d -ε-> %d\n", s.id, t)
		}
		for _, e := range s.edges {
			fmt.Fprintf(&b, "  %d -%s-> %d\n", s.id, e.Class, e.Target)
		}
	}
	return b.String()
}
