package nfa

import (
	"fmt"

	"github.com/coregx/scangen/ast"
	"github.com/coregx/scangen/charclass"
)

// Compile translates a pattern AST into an epsilon-NFA, interning every
// character class it references into reg. The registry must therefore be
// shared across all patterns of one scanner so the class ID space stays
// global.
func Compile(node ast.Node, reg *charclass.Registry) (*NFA, error) {
	n, err := compile(node, reg)
	if err != nil {
		return nil, err
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	return n, nil
}

func compile(node ast.Node, reg *charclass.Registry) (*NFA, error) {
	switch t := node.(type) {
	case *ast.Literal:
		return leaf(reg.Intern(charclass.Single(t.Ch))), nil

	case *ast.Class:
		return leaf(reg.Intern(t.RangeSet())), nil

	case *ast.Group:
		return compile(t.Node, reg)

	case *ast.Concat:
		n := New()
		for _, child := range t.Nodes {
			frag, err := compile(child, reg)
			if err != nil {
				return nil, err
			}
			n.Concat(frag)
		}
		return n, nil

	case *ast.Alt:
		n := New()
		for _, child := range t.Nodes {
			frag, err := compile(child, reg)
			if err != nil {
				return nil, err
			}
			n.Alternate(frag)
		}
		return n, nil

	case *ast.Repeat:
		return compileRepeat(t, reg)

	default:
		return nil, fmt.Errorf("nfa: cannot compile ast node %T", node)
	}
}

// leaf builds the two-state fragment consuming one rune of the given class.
func leaf(class charclass.ID) *NFA {
	n := New()
	end := n.newState()
	n.addEdge(n.start, class, end)
	n.accept = end
	return n
}

// compileRepeat lowers the quantifiers. The unbounded forms use the classic
// epsilon loops; bounded repetition {m,n} is unrolled into m mandatory
// copies followed by optional copies with epsilon bypasses. The greedy flag
// is ignored: longest-match scanning makes greedy and lazy equivalent.
func compileRepeat(rep *ast.Repeat, reg *charclass.Registry) (*NFA, error) {
	template, err := compile(rep.Node, reg)
	if err != nil {
		return nil, err
	}

	switch {
	case rep.Min == 0 && rep.Max == 1:
		template.ZeroOrOne()
		return template, nil
	case rep.Min == 0 && rep.Max == ast.Unbounded:
		template.ZeroOrMore()
		return template, nil
	case rep.Min == 1 && rep.Max == ast.Unbounded:
		template.OneOrMore()
		return template, nil
	}

	n := New()
	for i := 0; i < rep.Min; i++ {
		n.Concat(template.Clone())
	}
	if rep.Max == ast.Unbounded {
		tail := template.Clone()
		tail.ZeroOrMore()
		n.Concat(tail)
		return n, nil
	}
	for i := rep.Min; i < rep.Max; i++ {
		opt := template.Clone()
		opt.ZeroOrOne()
		n.Concat(opt)
	}
	return n, nil
}
