package ast

import (
	"fmt"

	"conform/internal/source"
)

// NodeRef is a read-only view of a node. The zero value is an invalid ref
// whose accessors return zero values, so callers can chain lookups.
type NodeRef struct {
	tree *Tree
	id   NodeID
}

func (n NodeRef) node() *Node {
	if n.tree == nil {
		return nil
	}
	return n.tree.Get(n.id)
}

// Valid reports whether n points at an existing node.
func (n NodeRef) Valid() bool { return n.node() != nil }

func (n NodeRef) ID() NodeID { return n.id }

func (n NodeRef) Kind() Kind {
	if nd := n.node(); nd != nil {
		return nd.Kind
	}
	return KindInvalid
}

func (n NodeRef) Role() Role {
	if nd := n.node(); nd != nil {
		return nd.Role
	}
	return RoleNone
}

func (n NodeRef) Text() string {
	if nd := n.node(); nd != nil {
		return nd.Text
	}
	return ""
}

func (n NodeRef) Span() source.Span {
	if nd := n.node(); nd != nil {
		return nd.Span
	}
	return source.Span{}
}

func (n NodeRef) Flags() Flags {
	if nd := n.node(); nd != nil {
		return nd.Flags
	}
	return 0
}

// Has reports whether all of flags are set.
func (n NodeRef) Has(flags Flags) bool {
	nd := n.node()
	return nd != nil && nd.Flags&flags == flags
}

func (n NodeRef) Parent() NodeRef {
	if nd := n.node(); nd != nil && nd.Parent.IsValid() {
		return NodeRef{tree: n.tree, id: nd.Parent}
	}
	return NodeRef{}
}

func (n NodeRef) NumChildren() int {
	if nd := n.node(); nd != nil {
		return len(nd.Children)
	}
	return 0
}

func (n NodeRef) Child(i int) NodeRef {
	nd := n.node()
	if nd == nil || i < 0 || i >= len(nd.Children) {
		return NodeRef{}
	}
	return NodeRef{tree: n.tree, id: nd.Children[i]}
}

// Children returns fresh handles for all children in source order.
func (n NodeRef) Children() []NodeRef {
	nd := n.node()
	if nd == nil || len(nd.Children) == 0 {
		return nil
	}
	out := make([]NodeRef, len(nd.Children))
	for i, id := range nd.Children {
		out[i] = NodeRef{tree: n.tree, id: id}
	}
	return out
}

// ChildrenByRole returns the children attached with role, in source order.
func (n NodeRef) ChildrenByRole(role Role) []NodeRef {
	nd := n.node()
	if nd == nil {
		return nil
	}
	var out []NodeRef
	for _, id := range nd.Children {
		if c := n.tree.Get(id); c != nil && c.Role == role {
			out = append(out, NodeRef{tree: n.tree, id: id})
		}
	}
	return out
}

// FirstByRole returns the first child with role or an invalid ref.
func (n NodeRef) FirstByRole(role Role) NodeRef {
	nd := n.node()
	if nd == nil {
		return NodeRef{}
	}
	for _, id := range nd.Children {
		if c := n.tree.Get(id); c != nil && c.Role == role {
			return NodeRef{tree: n.tree, id: id}
		}
	}
	return NodeRef{}
}

// CountRole counts the children attached with role.
func (n NodeRef) CountRole(role Role) int {
	nd := n.node()
	if nd == nil {
		return 0
	}
	count := 0
	for _, id := range nd.Children {
		if c := n.tree.Get(id); c != nil && c.Role == role {
			count++
		}
	}
	return count
}

// HasTypeArgs reports whether the node carries a type-argument list,
// including the empty diamond form.
func (n NodeRef) HasTypeArgs() bool {
	return n.Has(FlagDiamond) || n.CountRole(RoleTypeArg) > 0
}

// TypeParams returns declared type parameters.
func (n NodeRef) TypeParams() []NodeRef {
	return n.ChildrenByRole(RoleTypeParam)
}

// IsTopLevelType reports whether n is a type declaration directly inside a
// compilation unit, or a detached root.
func (n NodeRef) IsTopLevelType() bool {
	if !n.Kind().IsTypeDecl() {
		return false
	}
	parent := n.Parent()
	return !parent.Valid() || parent.Kind() == KindCompilationUnit
}

// Modifiers returns the keyword modifiers of a declaration.
func (n NodeRef) Modifiers() []NodeRef {
	var out []NodeRef
	for _, c := range n.ChildrenByRole(RoleModifier) {
		if c.Kind() == KindModifier {
			out = append(out, c)
		}
	}
	return out
}

func (n NodeRef) String() string {
	if !n.Valid() {
		return "<invalid>"
	}
	if t := n.Text(); t != "" {
		return fmt.Sprintf("%s#%d(%s)", n.Kind(), n.id, t)
	}
	return fmt.Sprintf("%s#%d", n.Kind(), n.id)
}
