// Package dot renders pattern automata as Graphviz digraphs.
//
// The renderings are a debugging aid for inspecting the compile pipeline:
// epsilon edges are drawn dashed, class edges carry the class ID and its
// canonical range set, accepting states are double circles.
package dot

import (
	"fmt"
	"io"

	"github.com/coregx/scangen/charclass"
	"github.com/coregx/scangen/dfa"
	"github.com/coregx/scangen/nfa"
)

// RenderNFA writes the Graphviz rendering of an NFA to w.
func RenderNFA(w io.Writer, name string, n *nfa.NFA, reg *charclass.Registry) error {
	if _, err := fmt.Fprintf(w, "digraph %q {\n\trankdir=LR;\n", name); err != nil {
		return err
	}
	fmt.Fprintf(w, "\tnode [shape=circle];\n")
	fmt.Fprintf(w, "\t%d [shape=doublecircle];\n", n.Accept())
	fmt.Fprintf(w, "\tstart [shape=none, label=\"\"];\n\tstart -> %d;\n", n.Start())
	for id := nfa.StateID(0); int(id) < n.StateCount(); id++ {
		s := n.State(id)
		for _, t := range s.Epsilons() {
			fmt.Fprintf(w, "\t%d -> %d [style=dashed, label=\"ε\"];\n", id, t)
		}
		for _, e := range s.Edges() {
			fmt.Fprintf(w, "\t%d -> %d [label=%q];\n", id, e.Target, edgeLabel(e.Class, reg))
		}
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}

// RenderDFA writes the Graphviz rendering of a DFA to w.
func RenderDFA(w io.Writer, name string, d *dfa.DFA, reg *charclass.Registry) error {
	if _, err := fmt.Fprintf(w, "digraph %q {\n\trankdir=LR;\n", name); err != nil {
		return err
	}
	fmt.Fprintf(w, "\tnode [shape=circle];\n")
	for i := range d.States {
		if d.States[i].Accepting {
			fmt.Fprintf(w, "\t%d [shape=doublecircle];\n", i)
		}
	}
	fmt.Fprintf(w, "\tstart [shape=none, label=\"\"];\n\tstart -> 0;\n")
	for i := range d.States {
		for _, e := range d.States[i].Edges {
			fmt.Fprintf(w, "\t%d -> %d [label=%q];\n", i, e.Target, edgeLabel(e.Class, reg))
		}
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}

func edgeLabel(class charclass.ID, reg *charclass.Registry) string {
	if reg == nil {
		return class.String()
	}
	return fmt.Sprintf("%s %s", class, reg.Set(class))
}
