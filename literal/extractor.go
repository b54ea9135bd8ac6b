// Package literal extracts literal first-prefixes from pattern ASTs.
//
// A prefix set is complete when every string of the pattern's language
// starts with one of the returned literals. Complete sets from all patterns
// of a scanner feed the Aho-Corasick prefilter that skips input regions
// where no token can start. An incomplete set (a pattern starting with a
// large or negated class, for example the usual '.' fallback) disables the
// prefilter for the whole scanner.
package literal

import (
	"github.com/coregx/scangen/ast"
)

// maxPrefixes bounds the size of a prefix set. Classes and alternations
// that would exceed it make the set incomplete instead: a prefilter over a
// wide class filters almost nothing and costs an automaton scan per gap.
const maxPrefixes = 16

// Prefixes returns the literal first-prefixes of a pattern and whether the
// set is complete.
func Prefixes(node ast.Node) ([]string, bool) {
	if nullable(node) {
		// A pattern that can match the empty string mandates no prefix.
		// Compilation rejects such patterns anyway.
		return nil, false
	}
	set, complete := prefixes(node)
	if !complete || len(set) == 0 {
		return nil, false
	}
	return set, true
}

func prefixes(node ast.Node) ([]string, bool) {
	switch t := node.(type) {
	case *ast.Literal:
		return []string{string(t.Ch)}, true

	case *ast.Class:
		set := t.RangeSet()
		var out []string
		for _, r := range set.Ranges() {
			for ch := r.Lo; ch <= r.Hi; ch++ {
				if len(out) >= maxPrefixes {
					return nil, false
				}
				out = append(out, string(ch))
			}
		}
		return out, len(out) > 0

	case *ast.Group:
		return prefixes(t.Node)

	case *ast.Concat:
		// The first-prefixes come from the leading children: as long as a
		// child can match the empty string, the next child can also open
		// the token.
		var out []string
		for _, child := range t.Nodes {
			sub, ok := prefixes(child)
			if !ok {
				return nil, false
			}
			out = union(out, sub)
			if len(out) > maxPrefixes {
				return nil, false
			}
			if !nullable(child) {
				return out, true
			}
		}
		// Every child is nullable, so the whole concat can match the
		// empty string and no prefix is mandatory.
		return nil, false

	case *ast.Alt:
		var out []string
		for _, child := range t.Nodes {
			sub, ok := prefixes(child)
			if !ok {
				return nil, false
			}
			out = union(out, sub)
			if len(out) > maxPrefixes {
				return nil, false
			}
		}
		return out, true

	case *ast.Repeat:
		// A repetition opens with its body's prefixes whenever it
		// consumes anything at all; callers account for nullability.
		return prefixes(t.Node)

	default:
		return nil, false
	}
}

// nullable reports whether the node can match the empty string.
func nullable(node ast.Node) bool {
	switch t := node.(type) {
	case *ast.Literal, *ast.Class:
		return false
	case *ast.Group:
		return nullable(t.Node)
	case *ast.Concat:
		for _, child := range t.Nodes {
			if !nullable(child) {
				return false
			}
		}
		return true
	case *ast.Alt:
		for _, child := range t.Nodes {
			if nullable(child) {
				return true
			}
		}
		return false
	case *ast.Repeat:
		return t.Min == 0 || nullable(t.Node)
	default:
		return false
	}
}

func union(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, s := range a {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, s := range b {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
