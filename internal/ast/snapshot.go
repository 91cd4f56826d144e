package ast

import (
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"conform/internal/source"
)

// SnapshotSchema must be bumped whenever the encoded layout changes.
const SnapshotSchema uint16 = 1

var (
	ErrSnapshotSchema  = errors.New("unsupported snapshot schema")
	ErrSnapshotCorrupt = errors.New("corrupt snapshot")
)

// Snapshot is the on-disk form of a parsed file: the source bytes plus the
// node arena, so a tree produced by another process can be validated and
// its problems rendered against the original text.
type Snapshot struct {
	Schema uint16 `msgpack:"schema"`
	Path   string `msgpack:"path"`
	Source []byte `msgpack:"source"`
	Root   NodeID `msgpack:"root"`
	Nodes  []Node `msgpack:"nodes"`
}

// NewSnapshot captures t together with its source text.
func NewSnapshot(path string, src []byte, t *Tree) *Snapshot {
	nodes := t.nodes.Slice()
	copied := make([]Node, len(nodes))
	for i, n := range nodes {
		n.Children = append([]NodeID(nil), n.Children...)
		copied[i] = n
	}
	return &Snapshot{
		Schema: SnapshotSchema,
		Path:   path,
		Source: src,
		Root:   t.Root,
		Nodes:  copied,
	}
}

// EncodeSnapshot writes s as msgpack.
func EncodeSnapshot(w io.Writer, s *Snapshot) error {
	if s == nil {
		return fmt.Errorf("%w: nil snapshot", ErrSnapshotCorrupt)
	}
	return msgpack.NewEncoder(w).Encode(s)
}

// DecodeSnapshot reads a msgpack snapshot and checks its schema.
func DecodeSnapshot(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	if err := msgpack.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSnapshotCorrupt, err)
	}
	if s.Schema != SnapshotSchema {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSnapshotSchema, s.Schema, SnapshotSchema)
	}
	return &s, nil
}

// Tree rebuilds the tree, rebinding every span to file. The structure is
// checked so that validators can rely on the usual tree invariants.
func (s *Snapshot) Tree(file source.FileID) (*Tree, error) {
	count := len(s.Nodes)
	t := NewTree(file, uint(count))
	for _, n := range s.Nodes {
		n.Span.File = file
		n.Children = append([]NodeID(nil), n.Children...)
		t.nodes.Allocate(n)
	}
	if count == 0 {
		return t, nil
	}

	inRange := func(id NodeID) bool { return id.IsValid() && int(id) <= count }
	if !inRange(s.Root) {
		return nil, fmt.Errorf("%w: root %d out of range", ErrSnapshotCorrupt, s.Root)
	}
	if t.Get(s.Root).Parent.IsValid() {
		return nil, fmt.Errorf("%w: root %d has a parent", ErrSnapshotCorrupt, s.Root)
	}
	links, parented := 0, 0
	for i := range s.Nodes {
		id := NodeID(i + 1)
		n := t.Get(id)
		if n.Parent.IsValid() {
			if !inRange(n.Parent) {
				return nil, fmt.Errorf("%w: node %d has parent %d out of range", ErrSnapshotCorrupt, id, n.Parent)
			}
			parented++
		}
		links += len(n.Children)
		if n.Kind == KindInvalid || n.Kind >= KindCount {
			return nil, fmt.Errorf("%w: node %d has unknown kind %d", ErrSnapshotCorrupt, id, n.Kind)
		}
		for _, c := range n.Children {
			if !inRange(c) || t.Get(c).Parent != id {
				return nil, fmt.Errorf("%w: node %d has inconsistent child %d", ErrSnapshotCorrupt, id, c)
			}
		}
	}

	if links != parented {
		return nil, fmt.Errorf("%w: %d child links for %d parented nodes", ErrSnapshotCorrupt, links, parented)
	}

	// каждый узел достижим из корня не более одного раза
	seen := make([]bool, count+1)
	stack := []NodeID{s.Root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[id] {
			return nil, fmt.Errorf("%w: node %d reachable twice", ErrSnapshotCorrupt, id)
		}
		seen[id] = true
		stack = append(stack, t.Get(id).Children...)
	}
	t.Root = s.Root
	return t, nil
}
