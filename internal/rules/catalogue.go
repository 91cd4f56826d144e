package rules

import (
	"conform/internal/validate"
)

// Revision changes whenever any catalogue rule changes what it reports.
// Cached results computed under another revision are not reused.
const Revision = 2

// Entry describes a catalogue rule for listings.
type Entry struct {
	Name    string
	Summary string
	Rule    validate.Rule
}

var catalogue = []Entry{
	{NameClassSingleExtends, MsgClassSingleExtends, ClassSingleExtends},
	{NameInterfaceNoImplements, MsgInterfaceNoImplements, InterfaceNoImplements},
	{NameInterfaceNoInitializers, MsgInterfaceNoInitializers, InterfaceNoInitializers},
	{NameModifiers, "Modifiers must be legal for the declaration (no strictfp, no default methods).", Modifiers(false, false)},
	{NameModifiersStrictfp, "Modifiers must be legal for the declaration (strictfp allowed).", Modifiers(true, false)},
	{NameModifiersStrictfpDefault, "Modifiers must be legal for the declaration (strictfp, static and default interface methods allowed).", Modifiers(true, true)},
	{NameNoAssert, MsgNoAssert, NoAssert},
	{NameNoInnerTypes, MsgNoInnerTypes, NoInnerTypes},
	{NameNoReflection, MsgNoReflection, NoReflection},
	{NameNoGenerics, MsgNoGenerics, NoGenerics},
	{NameTryShape, MsgTryShape, TryShape},
	{NameTryResources, MsgTryResources, TryResources},
	{NameNoAnnotations, MsgNoAnnotations, NoAnnotations},
	{NameNoEnums, MsgNoEnums, NoEnums},
	{NameNoVarargs, MsgNoVarargs, NoVarargs},
	{NameNoForEach, MsgNoForEach, NoForEach},
	{NameNoStaticImport, MsgNoStaticImport, NoStaticImport},
	{NameNoStringSwitch, MsgNoStringSwitch, NoStringSwitch},
	{NameNoBinaryIntLiterals, MsgNoBinaryIntLiterals, NoBinaryIntLiterals},
	{NameNoUnderscores, MsgNoUnderscores, NoUnderscores},
	{NameNoMultiCatch, MsgNoMultiCatch, NoMultiCatch},
	{NameNoLambdas, MsgNoLambdas, NoLambdas},
	{NameNoMethodRefs, MsgNoMethodRefs, NoMethodRefs},
	{NameTryShapeResources, MsgTryShapeResources, TryShapeResources},
	{NameNoDiamond, MsgNoDiamond, NoDiamond},
}

var byName = func() map[string]int {
	m := make(map[string]int, len(catalogue))
	for i, e := range catalogue {
		m[e.Name] = i
	}
	return m
}()

// All returns the catalogue in stable order.
func All() []Entry {
	out := make([]Entry, len(catalogue))
	copy(out, catalogue)
	return out
}

// Lookup returns the rule registered under name.
func Lookup(name string) (validate.Rule, bool) {
	i, ok := byName[name]
	if !ok {
		return nil, false
	}
	return catalogue[i].Rule, true
}

// Describe returns the catalogue entry registered under name.
func Describe(name string) (Entry, bool) {
	i, ok := byName[name]
	if !ok {
		return Entry{}, false
	}
	return catalogue[i], true
}

// MustLookup is Lookup for static dialect tables; it panics on unknown names.
func MustLookup(name string) validate.Rule {
	r, ok := Lookup(name)
	if !ok {
		panic("rules: unknown rule " + name)
	}
	return r
}
