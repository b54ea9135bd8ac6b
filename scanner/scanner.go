package scanner

import (
	"errors"
	"fmt"
)

// Common scanner construction errors.
var (
	// ErrNoTables indicates a scanner was built without any pattern table.
	ErrNoTables = errors.New("scanner: no pattern tables")

	// ErrNoMatcher indicates a scanner was built without a class matcher.
	ErrNoMatcher = errors.New("scanner: no class matcher")
)

// Scanner is a compiled multi-DFA scanner.
//
// It is immutable once built and may be shared freely across goroutines;
// every scan owns its own FindMatches iterator with all mutable state.
type Scanner struct {
	tables    []Table
	matcher   ClassMatcher
	modes     []Mode
	prefilter *Prefilter
}

// Tables returns the per-pattern transition tables.
func (s *Scanner) Tables() []Table {
	return s.tables
}

// Modes returns the scanner modes. Index 0 is the initial mode.
func (s *Scanner) Modes() []Mode {
	return s.modes
}

// FindIter returns an iterator over all non-overlapping matches in input,
// in strictly increasing start order. The sequence is lazy, finite and not
// restartable.
func (s *Scanner) FindIter(input string) *FindMatches {
	return newFindMatches(s, input)
}

// Builder assembles a Scanner from tables, a class matcher and optional
// modes and prefilter.
type Builder struct {
	tables    []Table
	matcher   ClassMatcher
	modes     []Mode
	prefilter *Prefilter
}

// NewBuilder creates an empty scanner builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddTables appends pattern tables in priority order: the table added
// first has the highest precedence on equal-length matches.
func (b *Builder) AddTables(tables ...Table) *Builder {
	b.tables = append(b.tables, tables...)
	return b
}

// Matcher sets the class membership function, indexed by class ID.
func (b *Builder) Matcher(m ClassMatcher) *Builder {
	b.matcher = m
	return b
}

// AddMode appends a scanner mode. When no mode is added, Build creates the
// default INITIAL mode containing every pattern with token type equal to
// its index.
func (b *Builder) AddMode(mode Mode) *Builder {
	b.modes = append(b.modes, mode)
	return b
}

// Prefilter attaches a literal prefilter. The caller guarantees that every
// pattern starts with one of the prefilter's literals.
func (b *Builder) Prefilter(p *Prefilter) *Builder {
	b.prefilter = p
	return b
}

// Build validates the configuration and returns the immutable scanner.
func (b *Builder) Build() (*Scanner, error) {
	if len(b.tables) == 0 {
		return nil, ErrNoTables
	}
	if b.matcher == nil {
		return nil, ErrNoMatcher
	}
	for i := range b.tables {
		if err := b.tables[i].Validate(); err != nil {
			return nil, err
		}
	}
	modes := b.modes
	if len(modes) == 0 {
		modes = []Mode{defaultMode(len(b.tables))}
	}
	for mi := range modes {
		for _, entry := range modes[mi].Entries {
			if entry.DFA < 0 || entry.DFA >= len(b.tables) {
				return nil, fmt.Errorf("scanner: mode %q references invalid table %d", modes[mi].Name, entry.DFA)
			}
		}
		for _, tr := range modes[mi].Transitions {
			if tr.Mode < 0 || tr.Mode >= len(modes) {
				return nil, fmt.Errorf("scanner: mode %q has transition to invalid mode %d", modes[mi].Name, tr.Mode)
			}
		}
	}
	return &Scanner{
		tables:    b.tables,
		matcher:   b.matcher,
		modes:     modes,
		prefilter: b.prefilter,
	}, nil
}
