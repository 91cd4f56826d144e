// Package validate composes conformance rules into dialect validators and
// applies them to syntax trees.
//
// A Rule is either type-scoped (fires only on nodes of one kind that satisfy
// a predicate) or tree-wide (sees every node). A Validator is an immutable,
// ordered rule sequence; dialects are derived from one another with Derive,
// which appends a layer's additions and deletes its removals.
//
// Validate walks the tree exactly once in pre-order. At each node the
// type-scoped rules registered for the node's kind run first, in configured
// order, followed by every tree-wide rule. Problems reach the reporter in
// that firing order, so output is reproducible for identical input.
//
// Validators hold no per-call state and may be shared between goroutines;
// reporters may not.
package validate
