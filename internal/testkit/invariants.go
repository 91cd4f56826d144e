package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"conform/internal/ast"
	"conform/internal/source"
)

// CheckTreeInvariants runs a minimal set of structural invariants on a parsed tree:
// 1) the root exists, has no parent and its span lies within the file content
// 2) every reachable child points back at its parent and is reached once
// 3) every child span belongs to the same file and is covered by its parent span
// 4) siblings appear in source order
func CheckTreeInvariants(t *ast.Tree, sf *source.File) error {
	if t == nil || sf == nil {
		return fmt.Errorf("nil tree or file")
	}
	root := t.Get(t.Root)
	if root == nil {
		return fmt.Errorf("root node not found")
	}
	if root.Parent.IsValid() {
		return fmt.Errorf("root has parent %d", root.Parent)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if root.Span.End > lenContent {
		return fmt.Errorf("root span end beyond content: %d > %d", root.Span.End, lenContent)
	}

	seen := make(map[ast.NodeID]bool, t.Len())
	var failure error
	ast.Walk(t.RootRef(), func(n ast.NodeRef) bool {
		if failure != nil {
			return false
		}
		if seen[n.ID()] {
			failure = fmt.Errorf("node %s reached twice", n)
			return false
		}
		seen[n.ID()] = true

		sp := n.Span()
		if sp.File != sf.ID {
			failure = fmt.Errorf("node %s span file mismatch: got=%d want=%d", n, sp.File, sf.ID)
			return false
		}
		var prev source.Span
		for i, c := range n.Children() {
			if c.Parent().ID() != n.ID() {
				failure = fmt.Errorf("child %s of %s points at parent %d", c, n, c.Parent().ID())
				return false
			}
			csp := c.Span()
			if !sp.Contains(csp) {
				failure = fmt.Errorf("child %s span %v is outside parent %s span %v", c, csp, n, sp)
				return false
			}
			if i > 0 && csp.Start < prev.Start {
				failure = fmt.Errorf("child %s starts before its previous sibling", c)
				return false
			}
			prev = csp
		}
		return true
	})
	return failure
}
