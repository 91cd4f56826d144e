package javaparse

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	"conform/internal/ast"
	"conform/internal/source"
)

// Parser turns Java source into ast trees.
type Parser struct {
	ts *sitter.Parser
}

// NewParser creates a parser for Java.
func NewParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(java.GetLanguage())
	return &Parser{ts: p}
}

// Close releases the underlying tree-sitter parser.
func (p *Parser) Close() {
	if p.ts != nil {
		p.ts.Close()
		p.ts = nil
	}
}

// Parse parses content as a compilation unit of file. A CST containing
// error or missing nodes yields a *SyntaxError and no tree.
func (p *Parser) Parse(ctx context.Context, file source.FileID, content []byte) (*ast.Tree, error) {
	if p.ts == nil {
		return nil, fmt.Errorf("javaparse: parser is closed")
	}
	cst, err := p.ts.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	defer cst.Close()

	root := cst.RootNode()
	if root.HasError() {
		return nil, firstError(root, file)
	}

	l := newLowerer(file, content, root)
	return l.run(root), nil
}

// firstError finds the leftmost ERROR or MISSING node in document order.
func firstError(n *sitter.Node, file source.FileID) *SyntaxError {
	stack := []*sitter.Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if cur.IsMissing() {
			return &SyntaxError{Span: spanOf(file, cur), Missing: cur.Type()}
		}
		if cur.Type() == "ERROR" {
			return &SyntaxError{Span: spanOf(file, cur)}
		}
		if !cur.HasError() {
			continue
		}
		for i := childCount(cur) - 1; i >= 0; i-- {
			stack = append(stack, cur.Child(i))
		}
	}
	return &SyntaxError{Span: spanOf(file, n)}
}

func spanOf(file source.FileID, n *sitter.Node) source.Span {
	return source.Span{File: file, Start: n.StartByte(), End: n.EndByte()}
}
