// Package ast defines the regex AST consumed by the scanner compiler, along
// with the surface-syntax parser that produces it.
//
// The node set is deliberately small: token definitions need literals,
// character classes, concatenation, alternation, repetition and grouping.
// Anchors, captures, back-references, inline flags and lookaround are not
// part of the language; the parser reports them as unsupported constructs.
package ast

import (
	"fmt"
	"strings"

	"github.com/coregx/scangen/charclass"
)

// Node is a node of the regex AST.
type Node interface {
	fmt.Stringer
	node()
}

// Literal matches exactly one rune.
type Literal struct {
	Ch rune
}

func (*Literal) node() {}

func (l *Literal) String() string {
	return fmt.Sprintf("%q", l.Ch)
}

// Class matches one rune that is a member of a character class.
// The canonical membership is (Set − Diff), complemented when Negated.
type Class struct {
	Set     charclass.RangeSet
	Negated bool
	Diff    charclass.RangeSet
}

func (*Class) node() {}

// RangeSet materializes negation and difference into a canonical range set.
func (c *Class) RangeSet() charclass.RangeSet {
	set := c.Set
	if !c.Diff.IsEmpty() {
		set = set.Difference(c.Diff)
	}
	if c.Negated {
		set = set.Negate()
	}
	return set
}

func (c *Class) String() string {
	var b strings.Builder
	b.WriteByte('[')
	if c.Negated {
		b.WriteByte('^')
	}
	b.WriteString(strings.Trim(c.Set.String(), "[]"))
	if !c.Diff.IsEmpty() {
		b.WriteString("--")
		b.WriteString(strings.Trim(c.Diff.String(), "[]"))
	}
	b.WriteByte(']')
	return b.String()
}

// Concat matches its nodes in sequence. An empty Concat matches the empty
// string; compilation rejects patterns whose whole language contains it.
type Concat struct {
	Nodes []Node
}

func (*Concat) node() {}

func (c *Concat) String() string {
	var b strings.Builder
	for _, n := range c.Nodes {
		b.WriteString(n.String())
	}
	return b.String()
}

// Alt matches any one of its alternatives.
type Alt struct {
	Nodes []Node
}

func (*Alt) node() {}

func (a *Alt) String() string {
	parts := make([]string, len(a.Nodes))
	for i, n := range a.Nodes {
		parts[i] = n.String()
	}
	return "(" + strings.Join(parts, "|") + ")"
}

// Unbounded marks a Repeat with no upper bound.
const Unbounded = -1

// Repeat matches its node between Min and Max times. Max == Unbounded means
// no upper bound. Greedy is recorded from the surface syntax but has no
// effect on matching: the engine's longest-match policy makes greedy and
// lazy quantifiers equivalent for token scanning.
type Repeat struct {
	Node   Node
	Min    int
	Max    int
	Greedy bool
}

func (*Repeat) node() {}

func (r *Repeat) String() string {
	suffix := ""
	switch {
	case r.Min == 0 && r.Max == Unbounded:
		suffix = "*"
	case r.Min == 1 && r.Max == Unbounded:
		suffix = "+"
	case r.Min == 0 && r.Max == 1:
		suffix = "?"
	case r.Max == Unbounded:
		suffix = fmt.Sprintf("{%d,}", r.Min)
	case r.Min == r.Max:
		suffix = fmt.Sprintf("{%d}", r.Min)
	default:
		suffix = fmt.Sprintf("{%d,%d}", r.Min, r.Max)
	}
	if !r.Greedy {
		suffix += "?"
	}
	return r.Node.String() + suffix
}

// Group wraps a parenthesized subexpression. Grouping has non-capturing
// semantics only.
type Group struct {
	Node Node
}

func (*Group) node() {}

func (g *Group) String() string {
	return "(" + g.Node.String() + ")"
}
