package validate

import (
	"fmt"

	"go.uber.org/multierr"

	"conform/internal/ast"
)

// Validator is an immutable, ordered rule sequence with a kind index.
type Validator struct {
	rules    []Rule
	byKind   [ast.KindCount][]*TypeScoped
	treeWide []*TreeWide
	index    map[string]int
}

// Layer describes how a derived validator differs from its parent.
type Layer struct {
	Add    []Rule
	Remove []string
}

// New builds a leaf validator from rules in the given order.
func New(rules ...Rule) (*Validator, error) {
	return compose(nil, Layer{Add: rules})
}

// Derive builds a validator from parent's sequence followed by layer.Add,
// with every rule named in layer.Remove deleted wherever it occurs.
// The parent is left untouched.
func Derive(parent *Validator, layer Layer) (*Validator, error) {
	if parent == nil {
		return nil, fmt.Errorf("%w: nil parent validator", ErrInvalidRule)
	}
	return compose(parent.rules, layer)
}

// MustNew is New for package-level definitions; it panics on error.
func MustNew(rules ...Rule) *Validator {
	v, err := New(rules...)
	if err != nil {
		panic(fmt.Sprintf("validate: %v", err))
	}
	return v
}

// MustDerive is Derive for package-level definitions; it panics on error.
func MustDerive(parent *Validator, layer Layer) *Validator {
	v, err := Derive(parent, layer)
	if err != nil {
		panic(fmt.Sprintf("validate: %v", err))
	}
	return v
}

func compose(inherited []Rule, layer Layer) (*Validator, error) {
	var errs error

	seq := make([]Rule, 0, len(inherited)+len(layer.Add))
	seq = append(seq, inherited...)
	for i, r := range layer.Add {
		if err := checkRule(r); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("add[%d]: %w", i, err))
			continue
		}
		seq = append(seq, r)
	}

	present := make(map[string]bool, len(seq))
	for _, r := range seq {
		present[r.Name()] = true
	}
	removed := make(map[string]bool, len(layer.Remove))
	for _, name := range layer.Remove {
		if !present[name] {
			errs = multierr.Append(errs, fmt.Errorf("%w: cannot remove %q", ErrUnknownRule, name))
			continue
		}
		removed[name] = true
	}

	out := make([]Rule, 0, len(seq))
	for _, r := range seq {
		if !removed[r.Name()] {
			out = append(out, r)
		}
	}

	v := &Validator{rules: out, index: make(map[string]int, len(out))}
	for i, r := range out {
		if _, dup := v.index[r.Name()]; dup {
			errs = multierr.Append(errs, fmt.Errorf("%w: %q", ErrDuplicateRule, r.Name()))
			continue
		}
		v.index[r.Name()] = i
		switch rule := r.(type) {
		case *TypeScoped:
			v.byKind[rule.kind] = append(v.byKind[rule.kind], rule)
		case *TreeWide:
			v.treeWide = append(v.treeWide, rule)
		}
	}
	if errs != nil {
		return nil, errs
	}
	return v, nil
}

func checkRule(r Rule) error {
	if r == nil {
		return fmt.Errorf("%w: nil rule", ErrInvalidRule)
	}
	switch rule := r.(type) {
	case *TypeScoped:
		if rule == nil {
			return fmt.Errorf("%w: nil rule", ErrInvalidRule)
		}
		if rule.kind == ast.KindInvalid || rule.kind >= ast.KindCount {
			return fmt.Errorf("%w: rule %q has kind %s", ErrInvalidRule, rule.name, rule.kind)
		}
	case *TreeWide:
		if rule == nil {
			return fmt.Errorf("%w: nil rule", ErrInvalidRule)
		}
	}
	if r.Name() == "" {
		return fmt.Errorf("%w: empty rule name", ErrInvalidRule)
	}
	return nil
}

// Rules returns the composed sequence.
func (v *Validator) Rules() []Rule {
	out := make([]Rule, len(v.rules))
	copy(out, v.rules)
	return out
}

// Names returns rule names in composed order.
func (v *Validator) Names() []string {
	out := make([]string, len(v.rules))
	for i, r := range v.rules {
		out[i] = r.Name()
	}
	return out
}

func (v *Validator) Len() int { return len(v.rules) }

// Has reports whether a rule named name is part of the sequence.
func (v *Validator) Has(name string) bool {
	_, ok := v.index[name]
	return ok
}
