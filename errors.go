package scangen

import (
	"errors"
	"fmt"

	"github.com/coregx/scangen/ast"
)

// Error kinds reported by compilation. Matching is by errors.Is through
// the CompileError wrapper.
var (
	// ErrParse indicates a pattern could not be parsed.
	ErrParse = ast.ErrSyntax

	// ErrUnsupported indicates a pattern uses a construct outside the
	// token-definition language.
	ErrUnsupported = ast.ErrUnsupported

	// ErrEmptyPattern indicates a pattern whose language contains the
	// empty string. Such patterns would produce zero-length winners and
	// break the scan progress guarantee, so compilation rejects them.
	ErrEmptyPattern = errors.New("pattern matches the empty string")

	// ErrInternal indicates a violated invariant of the compile pipeline.
	ErrInternal = errors.New("internal invariant violated")
)

// CompileError wraps any compilation failure with the index and text of
// the offending pattern. Compilation is fail-fast: the first error
// terminates it.
type CompileError struct {
	PatternIndex int
	Pattern      string
	Err          error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	return fmt.Sprintf("pattern %d (%q): %v", e.PatternIndex, e.Pattern, e.Err)
}

// Unwrap returns the underlying error.
func (e *CompileError) Unwrap() error {
	return e.Err
}
