package dialect

import (
	"sync"

	"conform/internal/rules"
	"conform/internal/validate"
)

type layer struct {
	base   Kind
	add    []string
	remove []string
}

// KindUnknown as a base means the common validator.
var family = [kindCount]layer{
	Java1_0: {
		base: KindUnknown,
		add: []string{
			rules.NameModifiers,
			rules.NameNoAssert,
			rules.NameNoInnerTypes,
			rules.NameNoReflection,
			rules.NameNoGenerics,
			rules.NameTryShape,
			rules.NameTryResources,
			rules.NameNoAnnotations,
			rules.NameNoEnums,
			rules.NameNoVarargs,
			rules.NameNoForEach,
			rules.NameNoStaticImport,
			rules.NameNoStringSwitch,
			rules.NameNoBinaryIntLiterals,
			rules.NameNoUnderscores,
			rules.NameNoMultiCatch,
			rules.NameNoLambdas,
			rules.NameNoMethodRefs,
		},
	},
	Java1_1: {
		base:   Java1_0,
		remove: []string{rules.NameNoInnerTypes, rules.NameNoReflection},
	},
	Java1_2: {
		base:   Java1_1,
		add:    []string{rules.NameModifiersStrictfp},
		remove: []string{rules.NameModifiers},
	},
	Java1_3: {base: Java1_2},
	Java1_4: {
		base:   Java1_3,
		remove: []string{rules.NameNoAssert},
	},
	Java5: {
		base: Java1_4,
		add:  []string{rules.NameNoDiamond},
		remove: []string{
			rules.NameNoGenerics,
			rules.NameNoAnnotations,
			rules.NameNoEnums,
			rules.NameNoVarargs,
			rules.NameNoForEach,
			rules.NameNoStaticImport,
		},
	},
	Java6: {base: Java5},
	Java7: {
		base: Java6,
		add:  []string{rules.NameTryShapeResources},
		remove: []string{
			rules.NameNoStringSwitch,
			rules.NameNoBinaryIntLiterals,
			rules.NameNoUnderscores,
			rules.NameNoMultiCatch,
			rules.NameTryShape,
			rules.NameTryResources,
			rules.NameNoDiamond,
		},
	},
	Java8: {
		base:   Java7,
		add:    []string{rules.NameModifiersStrictfpDefault},
		remove: []string{rules.NameModifiersStrictfp, rules.NameNoLambdas, rules.NameNoMethodRefs},
	},
}

var (
	commonOnce sync.Once
	common     *validate.Validator

	builtins [kindCount]struct {
		once sync.Once
		v    *validate.Validator
	}
)

// Common returns the rules every Java level shares.
func Common() *validate.Validator {
	commonOnce.Do(func() {
		common = validate.MustNew(
			rules.ClassSingleExtends,
			rules.InterfaceNoImplements,
			rules.InterfaceNoInitializers,
		)
	})
	return common
}

// Validator returns the shared validator for k, building it on first use.
// It returns nil for KindUnknown and out-of-range kinds.
func Validator(k Kind) *validate.Validator {
	if k == KindUnknown || k >= kindCount {
		return nil
	}
	slot := &builtins[k]
	slot.once.Do(func() {
		l := family[k]
		parent := Common()
		if l.base != KindUnknown {
			parent = Validator(l.base)
		}
		slot.v = validate.MustDerive(parent, validate.Layer{
			Add:    lookupAll(l.add),
			Remove: l.remove,
		})
	})
	return slot.v
}

func lookupAll(names []string) []validate.Rule {
	out := make([]validate.Rule, 0, len(names))
	for _, name := range names {
		out = append(out, rules.MustLookup(name))
	}
	return out
}
