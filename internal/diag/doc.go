// Package diag defines the problem model shared by validators and formatters.
//
// # Purpose
//
//   - Provide a deterministic, serialisable record (Problem) for a single
//     conformance violation: the offending node, its span, the rule that fired
//     and the user-facing message.
//   - Offer a Reporter contract and an append-only ProblemReporter that keeps
//     problems exactly in the order they were reported.
//
// # Scope
//
// Package diag does not perform any formatting beyond the single-line short
// form used by golden tests and the `--format short` CLI output. Rendering
// (pretty/json/yaml) lives in internal/diagfmt. There is no severity model: a
// rule either fired or it did not.
//
// # Ordering
//
// ProblemReporter never sorts, deduplicates or filters. The validator emits
// problems in document order (and rule order within a node), and downstream
// tooling relies on that order being reproducible. A reporter belongs to one
// validation run; concurrent runs each use their own.
package diag
