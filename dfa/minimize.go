package dfa

import (
	"fmt"
	"sort"
	"strings"
)

// Minimize returns an equivalent DFA in which no two states are
// distinguishable. It uses partition refinement: starting from the
// {accepting, non-accepting} split, groups are divided by their
// transition-to-group signatures until a fixpoint is reached. Blocks are
// renumbered so that the block containing the old entry becomes state 0.
//
// The recognized language is preserved exactly, and the accepting set is
// preserved modulo renumbering.
func (d *DFA) Minimize() (*DFA, error) {
	// Subset construction only emits reachable states, so no reachability
	// pass is needed before partitioning.
	group := make([]int, len(d.States))
	groups := 0
	hasAccepting := false
	hasOther := false
	for i := range d.States {
		if d.States[i].Accepting {
			hasAccepting = true
		} else {
			hasOther = true
		}
	}
	if hasAccepting {
		groups++
	}
	if hasOther {
		groups++
	}
	for i := range d.States {
		if d.States[i].Accepting {
			group[i] = 0
		} else if hasAccepting {
			group[i] = 1
		} else {
			group[i] = 0
		}
	}

	for {
		next := make([]int, len(d.States))
		nextGroups := 0
		// Split every group by the signature of its members.
		index := make(map[string]int)
		for i := range d.States {
			sig := d.signature(StateID(i), group)
			key := fmt.Sprintf("%d|%s", group[i], sig)
			id, ok := index[key]
			if !ok {
				id = nextGroups
				nextGroups++
				index[key] = id
			}
			next[i] = id
		}
		if nextGroups == groups {
			group = next
			break
		}
		group, groups = next, nextGroups
	}

	return d.fromPartition(group, groups)
}

// signature serializes a state's transitions as (class, target group)
// pairs. Two states in the same group with equal signatures are
// indistinguishable with respect to the current partition.
func (d *DFA) signature(state StateID, group []int) string {
	var b strings.Builder
	for _, e := range d.States[state].Edges {
		fmt.Fprintf(&b, "%d:%d;", e.Class, group[e.Target])
	}
	return b.String()
}

// fromPartition collapses each group into one state. The representative is
// the lowest-numbered member; determinism guarantees all members agree on
// their signatures, so any member's edges serve.
func (d *DFA) fromPartition(group []int, groups int) (*DFA, error) {
	representative := make([]StateID, groups)
	for i := range representative {
		representative[i] = -1
	}
	for i := range d.States {
		g := group[i]
		if representative[g] == -1 || StateID(i) < representative[g] {
			representative[g] = StateID(i)
		}
	}

	// Renumber groups: entry group first, the rest ordered by their
	// representative, which keeps the numbering deterministic.
	order := make([]int, 0, groups)
	for g := 0; g < groups; g++ {
		order = append(order, g)
	}
	entry := group[0]
	sort.Slice(order, func(i, j int) bool {
		if order[i] == entry {
			return true
		}
		if order[j] == entry {
			return false
		}
		return representative[order[i]] < representative[order[j]]
	})
	renumber := make([]StateID, groups)
	for newID, g := range order {
		renumber[g] = StateID(newID)
	}

	min := &DFA{
		Pattern: d.Pattern,
		States:  make([]State, groups),
	}
	for g := 0; g < groups; g++ {
		rep := d.States[representative[g]]
		id := renumber[g]
		edges := make([]Edge, 0, len(rep.Edges))
		for _, e := range rep.Edges {
			edges = append(edges, Edge{Class: e.Class, Target: renumber[group[e.Target]]})
		}
		min.States[id] = State{ID: id, Accepting: rep.Accepting, Edges: edges}
	}

	if err := min.validate(); err != nil {
		return nil, err
	}
	return min, nil
}
