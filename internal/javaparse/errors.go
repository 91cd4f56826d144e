package javaparse

import (
	"errors"
	"fmt"

	"conform/internal/source"
)

// ErrSyntax is matched by every SyntaxError.
var ErrSyntax = errors.New("syntax error")

// SyntaxError points at the first erroneous or missing node of the CST.
type SyntaxError struct {
	Span    source.Span
	Missing string // expected token when tree-sitter inserted a missing node
}

func (e *SyntaxError) Error() string {
	if e.Missing != "" {
		return fmt.Sprintf("syntax error at offset %d: missing %q", e.Span.Start, e.Missing)
	}
	return fmt.Sprintf("syntax error at offset %d", e.Span.Start)
}

func (e *SyntaxError) Is(target error) bool { return target == ErrSyntax }
