package config

import (
	"fmt"

	"go.uber.org/multierr"

	"conform/internal/dialect"
)

// Registry builds a dialect registry holding the built-in levels plus every
// [dialects.NAME] table. Custom dialects may derive from one another in any
// declaration order; cycles and all definition errors are reported together.
func (c Config) Registry() (*dialect.Registry, error) {
	reg := dialect.NewRegistry()

	const (
		pending = iota
		visiting
		done
	)
	state := make(map[string]int, len(c.Dialects))
	var errs error

	var define func(name string, chain []string) bool
	define = func(name string, chain []string) bool {
		switch state[name] {
		case done:
			return true
		case visiting:
			errs = multierr.Append(errs, fmt.Errorf("dialect %q: inheritance cycle %v", name, append(chain, name)))
			return false
		}
		state[name] = visiting
		def := c.Dialects[name]
		if _, custom := c.Dialects[def.Base]; custom {
			if !define(def.Base, append(chain, name)) {
				state[name] = done
				return false
			}
		}
		state[name] = done
		if err := reg.Define(name, def.Base, def.Add, def.Remove); err != nil {
			errs = multierr.Append(errs, err)
			return false
		}
		return true
	}

	for _, name := range c.DialectNames() {
		define(name, nil)
	}
	if errs != nil {
		return nil, errs
	}
	return reg, nil
}
