package dialect

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/multierr"

	"conform/internal/rules"
	"conform/internal/validate"
)

var (
	ErrUnknownDialect = errors.New("unknown dialect")
	ErrDialectExists  = errors.New("dialect already defined")
)

// Registry resolves built-in levels plus dialects defined at runtime,
// typically from the project configuration.
type Registry struct {
	mu     sync.RWMutex
	custom map[string]*validate.Validator
	order  []string
}

func NewRegistry() *Registry {
	return &Registry{custom: make(map[string]*validate.Validator)}
}

// Define derives a custom dialect from base (built-in or previously defined).
// Every unknown rule in add and every invalid removal is reported in one error.
func (r *Registry) Define(name, base string, add, remove []string) error {
	if name == "" {
		return fmt.Errorf("%w: empty dialect name", ErrUnknownDialect)
	}
	if _, ok := ParseKind(name); ok {
		return fmt.Errorf("%w: %q is a built-in dialect", ErrDialectExists, name)
	}

	parent, err := r.Resolve(base)
	if err != nil {
		return fmt.Errorf("dialect %q: base: %w", name, err)
	}

	var errs error
	added := make([]validate.Rule, 0, len(add))
	for _, ruleName := range add {
		rule, ok := rules.Lookup(ruleName)
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf("%w: %q is not in the catalogue", validate.ErrUnknownRule, ruleName))
			continue
		}
		added = append(added, rule)
	}
	if errs != nil {
		return fmt.Errorf("dialect %q: %w", name, errs)
	}

	v, err := validate.Derive(parent, validate.Layer{Add: added, Remove: remove})
	if err != nil {
		return fmt.Errorf("dialect %q: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.custom[name]; exists {
		return fmt.Errorf("%w: %q", ErrDialectExists, name)
	}
	r.custom[name] = v
	r.order = append(r.order, name)
	return nil
}

// Resolve returns the validator registered under name. Built-in names and
// their aliases are checked first.
func (r *Registry) Resolve(name string) (*validate.Validator, error) {
	if k, ok := ParseKind(name); ok {
		return Validator(k), nil
	}
	r.mu.RLock()
	v, ok := r.custom[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDialect, name)
	}
	return v, nil
}

// Names lists built-in dialects oldest first, followed by custom dialects in
// name order.
func (r *Registry) Names() []string {
	out := make([]string, 0, int(kindCount)+len(r.order))
	for _, k := range Kinds() {
		out = append(out, k.String())
	}
	r.mu.RLock()
	custom := append([]string(nil), r.order...)
	r.mu.RUnlock()
	sort.Strings(custom)
	return append(out, custom...)
}
