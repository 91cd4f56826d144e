package driver

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"conform/internal/ast"
	"conform/internal/javaparse"
	"conform/internal/source"
)

// unit is one input file after the sequential load phase.
type unit struct {
	path string
	id   source.FileID
	snap *ast.Snapshot // non-nil for .jtree inputs
	err  error
}

// loadUnit reads path into fileSet. Snapshots are decoded here so that the
// file set holds the Java text the tree was built from, registered under the
// path recorded in the snapshot.
func loadUnit(fileSet *source.FileSet, path string) unit {
	u := unit{path: path}
	if !IsSnapshot(path) {
		u.id, u.err = fileSet.Load(path)
		return u
	}

	// #nosec G304 -- path is provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		u.err = err
		return u
	}
	snap, err := ast.DecodeSnapshot(bytes.NewReader(data))
	if err != nil {
		u.err = err
		return u
	}
	name := snap.Path
	if name == "" {
		name = path
	}
	u.snap = snap
	u.id = fileSet.Add(name, snap.Source, source.FileVirtual)
	return u
}

// parseUnit builds the tree of a loaded unit. p may be nil for snapshots.
func parseUnit(ctx context.Context, p *javaparse.Parser, fileSet *source.FileSet, u unit) (*ast.Tree, error) {
	if u.snap != nil {
		return u.snap.Tree(u.id)
	}
	if p == nil {
		return nil, fmt.Errorf("%s: no parser", u.path)
	}
	file := fileSet.Get(u.id)
	if file == nil {
		return nil, fmt.Errorf("%s: file not loaded", u.path)
	}
	return p.Parse(ctx, u.id, file.Content)
}

// LoadTree loads a single .java or .jtree file into fileSet and returns its tree.
func LoadTree(ctx context.Context, fileSet *source.FileSet, path string) (source.FileID, *ast.Tree, error) {
	u := loadUnit(fileSet, path)
	if u.err != nil {
		return 0, nil, u.err
	}
	var p *javaparse.Parser
	if u.snap == nil {
		p = javaparse.NewParser()
		defer p.Close()
	}
	tree, err := parseUnit(ctx, p, fileSet, u)
	if err != nil {
		return u.id, nil, err
	}
	return u.id, tree, nil
}
