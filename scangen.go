// Package scangen generates scanners (lexers) from lists of token patterns
// and runs them.
//
// A pattern list is an ordered set of token definitions in regular
// expression surface syntax. Compile translates every pattern into a
// minimized DFA over a shared character class table; the resulting scanner
// yields the token stream of an input under the leftmost, longest-match,
// lowest-index-wins policy:
//
//	sc, err := scangen.Compile([]string{`\d+`, `[a-z]+`, `.`})
//	if err != nil {
//		log.Fatal(err)
//	}
//	iter := sc.FindIter("abc12")
//	for m, ok := iter.Next(); ok; m, ok = iter.Next() {
//		fmt.Println(m.Pattern, m.Start, m.End)
//	}
//
// Patterns are token definitions, not submatch engines: there are no
// capture groups, no anchors and no inline flags. A pattern's position in
// the list is its precedence; on equal match lengths the lower index wins.
// The conventional fall-through pattern "." as the last entry turns
// unmatched input into an error token instead of being skipped.
//
// The generate subpackage emits a compiled scanner as a standalone Go
// source file consuming only the scanner runtime package.
package scangen

import (
	"fmt"

	"github.com/coregx/scangen/ast"
	"github.com/coregx/scangen/charclass"
	"github.com/coregx/scangen/dfa"
	"github.com/coregx/scangen/literal"
	"github.com/coregx/scangen/nfa"
	"github.com/coregx/scangen/scanner"
)

// Compile translates the pattern list into a runtime scanner.
//
// All patterns share one character class table; the pattern index doubles
// as its match precedence. When every pattern starts with a small set of
// literal prefixes, a prefilter is attached that lets the scan skip input
// regions where no token can start.
func Compile(patterns []string) (*scanner.Scanner, error) {
	tables, reg, asts, err := compile(patterns)
	if err != nil {
		return nil, err
	}

	b := scanner.NewBuilder().
		AddTables(tables...).
		Matcher(MatcherFor(reg))

	if lits, ok := prefixLiterals(asts); ok {
		pf, err := scanner.NewPrefilter(lits)
		if err == nil {
			b.Prefilter(pf)
		}
		// A prefilter is an optimization; scanning works without one.
	}

	return b.Build()
}

// MustCompile is like Compile but panics on error. It simplifies safe
// initialization of package-level scanners.
func MustCompile(patterns []string) *scanner.Scanner {
	sc, err := Compile(patterns)
	if err != nil {
		panic(`scangen: Compile: ` + err.Error())
	}
	return sc
}

// CompileTables runs the compile pipeline and returns the serialized
// per-pattern tables together with the shared class registry. This is the
// form consumed by the code emitter.
func CompileTables(patterns []string) ([]scanner.Table, *charclass.Registry, error) {
	tables, reg, _, err := compile(patterns)
	return tables, reg, err
}

// MatcherFor adapts a class registry to the runtime's matcher contract.
func MatcherFor(reg *charclass.Registry) scanner.ClassMatcher {
	return func(c rune, class int) bool {
		return reg.Matches(c, charclass.ID(class))
	}
}

// compile is the shared pipeline: parse, build the NFA while interning
// classes, reject empty-matchable patterns, determinize, minimize and
// flatten. The first failing pattern aborts compilation.
func compile(patterns []string) ([]scanner.Table, *charclass.Registry, []ast.Node, error) {
	reg := charclass.NewRegistry()
	tables := make([]scanner.Table, 0, len(patterns))
	asts := make([]ast.Node, 0, len(patterns))

	for i, pattern := range patterns {
		node, err := ast.Parse(pattern)
		if err != nil {
			return nil, nil, nil, &CompileError{PatternIndex: i, Pattern: pattern, Err: err}
		}
		asts = append(asts, node)

		n, err := nfa.Compile(node, reg)
		if err != nil {
			return nil, nil, nil, &CompileError{PatternIndex: i, Pattern: pattern, Err: fmt.Errorf("%w: %v", ErrInternal, err)}
		}
		if n.MatchesEmpty() {
			return nil, nil, nil, &CompileError{PatternIndex: i, Pattern: pattern, Err: ErrEmptyPattern}
		}

		d, err := dfa.FromNFA(pattern, n)
		if err != nil {
			return nil, nil, nil, &CompileError{PatternIndex: i, Pattern: pattern, Err: fmt.Errorf("%w: %v", ErrInternal, err)}
		}
		min, err := d.Minimize()
		if err != nil {
			return nil, nil, nil, &CompileError{PatternIndex: i, Pattern: pattern, Err: fmt.Errorf("%w: %v", ErrInternal, err)}
		}

		accepting, ranges, edges := min.Flatten()
		tables = append(tables, scanner.Table{
			Pattern:     pattern,
			Accepting:   accepting,
			StateRanges: ranges,
			Edges:       edges,
		})
	}

	return tables, reg, asts, nil
}

// prefixLiterals collects the union of literal first-prefixes of all
// patterns. The result is only usable when every pattern contributed a
// complete set.
func prefixLiterals(asts []ast.Node) ([]string, bool) {
	var all []string
	seen := make(map[string]bool)
	for _, node := range asts {
		lits, ok := literal.Prefixes(node)
		if !ok {
			return nil, false
		}
		for _, lit := range lits {
			if !seen[lit] {
				seen[lit] = true
				all = append(all, lit)
			}
		}
	}
	return all, len(all) > 0
}
