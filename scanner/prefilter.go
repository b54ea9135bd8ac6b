package scanner

import (
	"github.com/coregx/ahocorasick"
)

// Prefilter finds the next input position where a token can possibly start.
//
// It holds an Aho-Corasick automaton over the literal first-prefixes of all
// patterns. The engine consults it only when a scan position produced no
// candidate: instead of re-seeding every DFA one rune at a time through
// dead input, the cursor jumps to the next prefix occurrence. This is only
// sound when every pattern contributed a complete prefix set, which the
// compiler verifies before attaching a prefilter.
type Prefilter struct {
	automaton *ahocorasick.Automaton
}

// NewPrefilter builds a prefilter over the given literals.
func NewPrefilter(literals []string) (*Prefilter, error) {
	builder := ahocorasick.NewBuilder()
	for _, lit := range literals {
		builder.AddPattern([]byte(lit))
	}
	automaton, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &Prefilter{automaton: automaton}, nil
}

// Find returns the position of the next prefix occurrence at or after
// 'at', or -1 when no token can start anywhere in the rest of the input.
func (p *Prefilter) Find(input []byte, at int) int {
	if at >= len(input) {
		return -1
	}
	m := p.automaton.Find(input, at)
	if m == nil {
		return -1
	}
	return m.Start
}
