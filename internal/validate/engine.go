package validate

import (
	"conform/internal/ast"
	"conform/internal/diag"
)

// stamp adapts a diag.Reporter for rule actions, tagging each problem with
// the rule currently firing.
type stamp struct {
	sink diag.Reporter
	rule string
}

func (s *stamp) Report(n ast.NodeRef, msg string) {
	s.sink.Report(diag.Problem{
		Node:    n.ID(),
		Span:    n.Span(),
		Rule:    s.rule,
		Message: msg,
	})
}

// Validate applies every rule to every node under root in a single pre-order
// pass. An invalid root validates nothing.
func (v *Validator) Validate(root ast.NodeRef, r diag.Reporter) {
	if !root.Valid() {
		return
	}
	s := &stamp{sink: r}
	ast.Walk(root, func(n ast.NodeRef) bool {
		for _, rule := range v.byKind[n.Kind()] {
			if !rule.Matches(n) {
				continue
			}
			s.rule = rule.name
			rule.Apply(n, s)
		}
		for _, rule := range v.treeWide {
			s.rule = rule.name
			rule.Apply(n, s)
		}
		return true
	})
}

// Check validates root with a fresh reporter and returns it.
func (v *Validator) Check(root ast.NodeRef) *diag.ProblemReporter {
	r := &diag.ProblemReporter{}
	v.Validate(root, r)
	return r
}
