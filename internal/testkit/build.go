package testkit

import (
	"fmt"

	"conform/internal/ast"
	"conform/internal/source"
)

// N declares a node for BuildTree. Tag names a node so tests can look it up.
type N struct {
	Kind  ast.Kind
	Role  ast.Role
	Flags ast.Flags
	Text  string
	Tag   string
	Kids  []N
}

// Unit is a shorthand for a compilation-unit root.
func Unit(kids ...N) N {
	return N{Kind: ast.KindCompilationUnit, Kids: kids}
}

// Built is a tree produced by BuildTree together with its tagged nodes.
type Built struct {
	Tree *ast.Tree
	Tags map[string]ast.NodeRef
}

// Root returns the root handle.
func (b Built) Root() ast.NodeRef { return b.Tree.RootRef() }

// Tag returns the node tagged name; it panics on unknown tags so typos fail loudly.
func (b Built) Tag(name string) ast.NodeRef {
	ref, ok := b.Tags[name]
	if !ok {
		panic(fmt.Sprintf("testkit: unknown tag %q", name))
	}
	return ref
}

// BuildTree materialises spec into a tree. Spans are synthetic: a node's
// span starts at its pre-order index and ends after its last descendant,
// so spans nest and follow document order like parsed spans do.
func BuildTree(spec N) Built {
	t := ast.NewTree(0, 0)
	tags := make(map[string]ast.NodeRef)
	next := uint32(0)

	var build func(n N) ast.NodeID
	build = func(n N) ast.NodeID {
		start := next
		next++
		id := t.New(n.Kind, source.Span{}, n.Text)
		t.AddFlags(id, n.Flags)
		for _, kid := range n.Kids {
			child := build(kid)
			t.Append(id, child, kid.Role)
		}
		t.Get(id).Span = source.Span{Start: start, End: next}
		if n.Tag != "" {
			tags[n.Tag] = t.Ref(id)
		}
		return id
	}

	t.SetRoot(build(spec))
	return Built{Tree: t, Tags: tags}
}
