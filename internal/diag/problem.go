package diag

import (
	"conform/internal/ast"
	"conform/internal/source"
)

// Problem is one conformance violation.
type Problem struct {
	Node    ast.NodeID  `json:"node" yaml:"node"`
	Span    source.Span `json:"-" yaml:"-"`
	Rule    string      `json:"rule" yaml:"rule"`
	Message string      `json:"message" yaml:"message"`
}
