// Package javaparse lowers tree-sitter Java syntax trees into ast.Tree.
//
// The lowering keeps only what conformance rules look at: declaration and
// statement structure, modifiers, type arguments and parameters, literals.
// Wrapper nodes such as modifier lists, class bodies or resource
// specifications are flattened into role-tagged children of their owner.
// Comments and punctuation are dropped. Anything else becomes KindOther and
// keeps its children, so a walk still reaches every nested construct.
//
// A Parser wraps one tree-sitter parser and must not be shared between
// goroutines.
package javaparse
