// Package generate emits a compiled scanner as Go source code.
//
// The emitted file is self-contained apart from the scanner runtime
// package: it holds the per-pattern transition tables, the character class
// matcher and a constructor for the runtime scanner. Offline generation
// and in-process compilation produce bit-identical tables, which is the
// contract that keeps the two interchangeable.
package generate

import (
	"fmt"
	"go/format"
	"io"
	"strings"

	"github.com/coregx/scangen"
	"github.com/coregx/scangen/charclass"
	"github.com/coregx/scangen/scanner"
)

// Options configure the emitted source file.
type Options struct {
	// Package is the package name of the generated file.
	// Defaults to "tables".
	Package string
}

// Generate compiles the pattern list and writes the generated source to w.
// The output is gofmt-formatted.
func Generate(w io.Writer, patterns []string, opts Options) error {
	if opts.Package == "" {
		opts.Package = "tables"
	}

	tables, reg, err := scangen.CompileTables(patterns)
	if err != nil {
		return err
	}

	var b strings.Builder
	writeHeader(&b, opts.Package)
	writeTables(&b, tables)
	writeMatcher(&b, reg)
	writeConstructor(&b)

	src, err := format.Source([]byte(b.String()))
	if err != nil {
		return fmt.Errorf("%w: generated source does not format: %v", scangen.ErrInternal, err)
	}
	_, err = w.Write(src)
	return err
}

func writeHeader(b *strings.Builder, pkg string) {
	b.WriteString("// Code generated by scangen. DO NOT EDIT.\n\n")
	fmt.Fprintf(b, "package %s\n\n", pkg)
	b.WriteString("import \"github.com/coregx/scangen/scanner\"\n\n")
}

func writeTables(b *strings.Builder, tables []scanner.Table) {
	b.WriteString("// Tables hold one transition table per token pattern, in priority order.\n")
	b.WriteString("var Tables = []scanner.Table{\n")
	for i, t := range tables {
		fmt.Fprintf(b, "\t/* %d */ {\n", i)
		fmt.Fprintf(b, "\t\tPattern: %q,\n", t.Pattern)
		fmt.Fprintf(b, "\t\tAccepting: %s,\n", intSlice(t.Accepting))
		fmt.Fprintf(b, "\t\tStateRanges: %s,\n", pairSlice(t.StateRanges))
		fmt.Fprintf(b, "\t\tEdges: %s,\n", pairSlice(t.Edges))
		b.WriteString("\t},\n")
	}
	b.WriteString("}\n\n")
}

func writeMatcher(b *strings.Builder, reg *charclass.Registry) {
	b.WriteString("// MatchesClass reports membership of c in the character class with the\n")
	b.WriteString("// given ID. The class ID space is shared by all tables.\n")
	b.WriteString("func MatchesClass(c rune, class int) bool {\n")
	b.WriteString("\tswitch class {\n")
	for id := 0; id < reg.Count(); id++ {
		set := reg.Set(charclass.ID(id))
		fmt.Fprintf(b, "\tcase %d: // %s\n", id, set.String())
		fmt.Fprintf(b, "\t\treturn %s\n", classExpr(set))
	}
	b.WriteString("\t}\n")
	b.WriteString("\treturn false\n")
	b.WriteString("}\n\n")
}

func writeConstructor(b *strings.Builder) {
	b.WriteString("// NewScanner returns a runtime scanner over the generated tables.\n")
	b.WriteString("func NewScanner() (*scanner.Scanner, error) {\n")
	b.WriteString("\treturn scanner.NewBuilder().\n")
	b.WriteString("\t\tAddTables(Tables...).\n")
	b.WriteString("\t\tMatcher(MatchesClass).\n")
	b.WriteString("\t\tBuild()\n")
	b.WriteString("}\n")
}

// classExpr renders a range set as a boolean expression over c.
func classExpr(set charclass.RangeSet) string {
	ranges := set.Ranges()
	if len(ranges) == 0 {
		return "false"
	}
	terms := make([]string, len(ranges))
	for i, r := range ranges {
		if r.Lo == r.Hi {
			terms[i] = fmt.Sprintf("c == %q", r.Lo)
		} else {
			terms[i] = fmt.Sprintf("(%q <= c && c <= %q)", r.Lo, r.Hi)
		}
	}
	return strings.Join(terms, " ||\n\t\t\t")
}

func intSlice(values []int) string {
	var b strings.Builder
	b.WriteString("[]int{")
	for i, v := range values {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d", v)
	}
	b.WriteString("}")
	return b.String()
}

func pairSlice(pairs [][2]int) string {
	var b strings.Builder
	b.WriteString("[][2]int{")
	for i, p := range pairs {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "{%d, %d}", p[0], p[1])
	}
	b.WriteString("}")
	return b.String()
}
