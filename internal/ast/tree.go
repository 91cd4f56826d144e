package ast

import (
	"fmt"

	"conform/internal/source"
)

// Node is one element of a syntax tree. Nodes are owned by their Tree and
// addressed by NodeID; Children are kept in source order.
type Node struct {
	Kind     Kind        `msgpack:"k"`
	Role     Role        `msgpack:"r,omitempty"`
	Flags    Flags       `msgpack:"f,omitempty"`
	Span     source.Span `msgpack:"s"`
	Parent   NodeID      `msgpack:"p,omitempty"`
	Children []NodeID    `msgpack:"c,omitempty"`
	Text     string      `msgpack:"t,omitempty"`
}

// Tree is an arena of nodes for a single source file.
type Tree struct {
	File  source.FileID
	Root  NodeID
	nodes *Arena[Node]
}

// NewTree creates an empty tree for file.
func NewTree(file source.FileID, capHint uint) *Tree {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Tree{
		File:  file,
		nodes: NewArena[Node](capHint),
	}
}

// New allocates a detached node.
func (t *Tree) New(kind Kind, span source.Span, text string) NodeID {
	return NodeID(t.nodes.Allocate(Node{
		Kind: kind,
		Span: span,
		Text: text,
	}))
}

// Get returns the node for id, or nil. The pointer is for front ends that
// build the tree; validators use NodeRef instead.
func (t *Tree) Get(id NodeID) *Node {
	if t == nil {
		return nil
	}
	return t.nodes.Get(uint32(id))
}

// Len returns the number of allocated nodes.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return int(t.nodes.Len())
}

// SetRoot marks id as the tree root. The root must not have a parent.
func (t *Tree) SetRoot(id NodeID) {
	n := t.Get(id)
	if n == nil {
		panic(fmt.Sprintf("ast: SetRoot on unknown node %d", id))
	}
	if n.Parent.IsValid() {
		panic(fmt.Sprintf("ast: root %d already has parent %d", id, n.Parent))
	}
	t.Root = id
}

// Append attaches child as the last child of parent with the given role.
// It panics when the link would give child a second parent or close a cycle.
func (t *Tree) Append(parent, child NodeID, role Role) {
	p, c := t.Get(parent), t.Get(child)
	if p == nil || c == nil {
		panic(fmt.Sprintf("ast: Append with unknown node (%d <- %d)", parent, child))
	}
	if c.Parent.IsValid() {
		panic(fmt.Sprintf("ast: node %d already has parent %d", child, c.Parent))
	}
	if child == t.Root {
		panic(fmt.Sprintf("ast: cannot attach root %d", child))
	}
	for up := parent; up.IsValid(); up = t.Get(up).Parent {
		if up == child {
			panic(fmt.Sprintf("ast: attaching %d under %d creates a cycle", child, parent))
		}
	}
	c.Parent = parent
	c.Role = role
	p.Children = append(p.Children, child)
}

// AddFlags sets flags on id.
func (t *Tree) AddFlags(id NodeID, flags Flags) {
	if n := t.Get(id); n != nil {
		n.Flags |= flags
	}
}

// Ref returns a read-only handle for id.
func (t *Tree) Ref(id NodeID) NodeRef {
	return NodeRef{tree: t, id: id}
}

// RootRef returns a handle for the tree root.
func (t *Tree) RootRef() NodeRef {
	if t == nil {
		return NodeRef{}
	}
	return t.Ref(t.Root)
}
