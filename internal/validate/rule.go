package validate

import (
	"conform/internal/ast"
)

// Reporter receives problems from a rule action. The engine attaches the
// rule name and the node span.
type Reporter interface {
	Report(n ast.NodeRef, msg string)
}

// Predicate decides whether a type-scoped rule fires on a node. It must be pure.
type Predicate func(n ast.NodeRef) bool

// Action inspects a node and reports zero or more problems.
// Actions must not retain n beyond the call.
type Action func(n ast.NodeRef, r Reporter)

// Rule is a single conformance check. The only implementations are
// *TypeScoped and *TreeWide.
type Rule interface {
	// Name is the stable identity used for removal.
	Name() string
	// Apply runs the rule against n unconditionally; kind and predicate
	// filtering is the engine's job for type-scoped rules.
	Apply(n ast.NodeRef, r Reporter)

	sealed()
}

// TypeScoped fires only on nodes of one kind.
type TypeScoped struct {
	name      string
	kind      ast.Kind
	predicate Predicate
	action    Action
}

// Simple builds a type-scoped rule that fires when pred holds.
func Simple(name string, kind ast.Kind, pred Predicate, action Action) *TypeScoped {
	return &TypeScoped{name: name, kind: kind, predicate: pred, action: action}
}

// ForKind builds a type-scoped rule that fires on every node of kind.
func ForKind(name string, kind ast.Kind, action Action) *TypeScoped {
	return &TypeScoped{name: name, kind: kind, action: action}
}

func (r *TypeScoped) Name() string { return r.name }

// Kind returns the node kind the rule is registered for.
func (r *TypeScoped) Kind() ast.Kind { return r.kind }

// Matches reports whether the rule fires on n.
func (r *TypeScoped) Matches(n ast.NodeRef) bool {
	if n.Kind() != r.kind {
		return false
	}
	return r.predicate == nil || r.predicate(n)
}

func (r *TypeScoped) Apply(n ast.NodeRef, rep Reporter) {
	if r.action != nil {
		r.action(n, rep)
	}
}

func (r *TypeScoped) sealed() {}

// TreeWide sees every node and filters internally.
type TreeWide struct {
	name   string
	action Action
}

// Tree builds a tree-wide rule.
func Tree(name string, action Action) *TreeWide {
	return &TreeWide{name: name, action: action}
}

func (r *TreeWide) Name() string { return r.name }

func (r *TreeWide) Apply(n ast.NodeRef, rep Reporter) {
	if r.action != nil {
		r.action(n, rep)
	}
}

func (r *TreeWide) sealed() {}
