package validate

import "errors"

var (
	// ErrUnknownRule is returned when a layer removes a rule that is not in
	// the inherited or added sequence.
	ErrUnknownRule = errors.New("unknown rule")
	// ErrDuplicateRule is returned when two rules in a sequence share a name.
	ErrDuplicateRule = errors.New("duplicate rule")
	// ErrInvalidRule is returned for nil rules, empty names, out-of-range
	// kinds and nil parents.
	ErrInvalidRule = errors.New("invalid rule")
)
