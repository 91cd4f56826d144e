package ast

import (
	"bytes"
	"errors"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"conform/internal/source"
)

func TestSnapshotRoundTripRebindsFile(t *testing.T) {
	tree, ids := buildSample(t)
	src := []byte("class Outer { class Inner {} void run(String... args) {} }")

	var buf bytes.Buffer
	if err := EncodeSnapshot(&buf, NewSnapshot("Outer.java", src, tree)); err != nil {
		t.Fatalf("encode: %v", err)
	}
	snap, err := DecodeSnapshot(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.Path != "Outer.java" || !bytes.Equal(snap.Source, src) {
		t.Fatalf("unexpected snapshot header: %q %q", snap.Path, snap.Source)
	}

	restored, err := snap.Tree(source.FileID(7))
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	if restored.Len() != tree.Len() || restored.Root != tree.Root {
		t.Fatalf("restored shape differs: len %d root %d", restored.Len(), restored.Root)
	}
	param := restored.Ref(ids["param"])
	if !param.Has(FlagVarArgs) || param.Role() != RoleParam || param.Span().File != 7 {
		t.Fatalf("param not restored: %+v", *restored.Get(ids["param"]))
	}
	if param.Span().Start != 50 || param.Parent().Text() != "run" {
		t.Fatalf("param position/parent lost")
	}
}

func TestSnapshotRejectsSchema(t *testing.T) {
	var buf bytes.Buffer
	if err := msgpack.NewEncoder(&buf).Encode(&Snapshot{Schema: SnapshotSchema + 1}); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := DecodeSnapshot(&buf); !errors.Is(err, ErrSnapshotSchema) {
		t.Fatalf("expected ErrSnapshotSchema, got %v", err)
	}
}

func TestSnapshotTreeRejectsCorruption(t *testing.T) {
	base := func() *Snapshot {
		tree, _ := buildSample(t)
		return NewSnapshot("x.java", nil, tree)
	}
	tests := []struct {
		name   string
		mutate func(s *Snapshot)
	}{
		{"root out of range", func(s *Snapshot) { s.Root = 99 }},
		{"root with parent", func(s *Snapshot) { s.Root = 2 }},
		{"child out of range", func(s *Snapshot) { s.Nodes[0].Children = append(s.Nodes[0].Children, 42) }},
		{"child parent mismatch", func(s *Snapshot) { s.Nodes[4].Parent = 1 }},
		{"unknown kind", func(s *Snapshot) { s.Nodes[2].Kind = KindCount }},
		{"orphan claims parent", func(s *Snapshot) {
			s.Nodes = append(s.Nodes, Node{Kind: KindOther, Parent: 1})
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base()
			tt.mutate(s)
			if _, err := s.Tree(0); !errors.Is(err, ErrSnapshotCorrupt) {
				t.Fatalf("expected ErrSnapshotCorrupt, got %v", err)
			}
		})
	}
}
