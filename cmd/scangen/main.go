// Command scangen compiles a list of token patterns into scanner tables.
//
// The pattern file holds one pattern per line; blank lines and lines
// starting with '#' are skipped. Line order is match precedence. The
// compiled scanner can be emitted as Go source, rendered as Graphviz
// digraphs, or run directly against an input file.
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/coregx/scangen"
	"github.com/coregx/scangen/ast"
	"github.com/coregx/scangen/charclass"
	"github.com/coregx/scangen/dfa"
	"github.com/coregx/scangen/dot"
	"github.com/coregx/scangen/generate"
	"github.com/coregx/scangen/nfa"
)

type cli struct {
	Patterns string `arg:"" help:"File with one token pattern per line." type:"existingfile"`
	Output   string `help:"Write the generated Go source to this file." short:"o" placeholder:"FILE"`
	Package  string `help:"Package name of the generated source." default:"tables"`
	Dot      string `help:"Write Graphviz renderings of the automata to this directory." placeholder:"DIR"`
	Scan     string `help:"Scan this input file and print the match stream." placeholder:"FILE"`
}

func main() {
	var params cli
	ctx := kong.Parse(&params,
		kong.Name("scangen"),
		kong.Description("Generate scanners from token pattern lists."))

	patterns, err := readPatterns(params.Patterns)
	ctx.FatalIfErrorf(err)
	if len(patterns) == 0 {
		ctx.Fatalf("no patterns in %s", params.Patterns)
	}

	if params.Output != "" {
		ctx.FatalIfErrorf(emitSource(params.Output, params.Package, patterns))
	}
	if params.Dot != "" {
		ctx.FatalIfErrorf(renderAutomata(params.Dot, patterns))
	}
	if params.Scan != "" {
		ctx.FatalIfErrorf(scanFile(params.Scan, patterns))
	}
	if params.Output == "" && params.Dot == "" && params.Scan == "" {
		// Compile only, as a syntax and supportedness check.
		_, err := scangen.Compile(patterns)
		ctx.FatalIfErrorf(err)
		fmt.Printf("%d patterns compile\n", len(patterns))
	}
}

func readPatterns(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var patterns []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns, sc.Err()
}

func emitSource(path, pkg string, patterns []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return generate.Generate(f, patterns, generate.Options{Package: pkg})
}

func renderAutomata(dir string, patterns []string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	reg := charclass.NewRegistry()
	for i, pattern := range patterns {
		node, err := ast.Parse(pattern)
		if err != nil {
			return err
		}
		n, err := nfa.Compile(node, reg)
		if err != nil {
			return err
		}
		d, err := dfa.FromNFA(pattern, n)
		if err != nil {
			return err
		}
		min, err := d.Minimize()
		if err != nil {
			return err
		}
		if err := writeDot(filepath.Join(dir, fmt.Sprintf("pattern_%d_nfa.dot", i)), func(f *os.File) error {
			return dot.RenderNFA(f, fmt.Sprintf("nfa_%d", i), n, reg)
		}); err != nil {
			return err
		}
		if err := writeDot(filepath.Join(dir, fmt.Sprintf("pattern_%d_dfa.dot", i)), func(f *os.File) error {
			return dot.RenderDFA(f, fmt.Sprintf("dfa_%d", i), min, reg)
		}); err != nil {
			return err
		}
	}
	return nil
}

func writeDot(path string, render func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return render(f)
}

func scanFile(path string, patterns []string) error {
	input, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	sc, err := scangen.Compile(patterns)
	if err != nil {
		return err
	}
	iter := sc.FindIter(string(input))
	for m, ok := iter.Next(); ok; m, ok = iter.Next() {
		fmt.Printf("%d\t%d..%d\t%q\n", m.Pattern, m.Start, m.End, input[m.Start:m.End])
	}
	return nil
}
