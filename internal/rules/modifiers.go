package rules

import (
	"fmt"
	"strings"

	"conform/internal/ast"
	"conform/internal/validate"
)

type modifier uint16

const (
	modPublic modifier = 1 << iota
	modProtected
	modPrivate
	modAbstract
	modStatic
	modFinal
	modTransient
	modVolatile
	modSynchronized
	modNative
	modStrictfp
	modDefault
)

var modifierKeywords = [...]struct {
	keyword string
	mod     modifier
}{
	{"public", modPublic},
	{"protected", modProtected},
	{"private", modPrivate},
	{"abstract", modAbstract},
	{"static", modStatic},
	{"final", modFinal},
	{"transient", modTransient},
	{"volatile", modVolatile},
	{"synchronized", modSynchronized},
	{"native", modNative},
	{"strictfp", modStrictfp},
	{"default", modDefault},
}

// lookupModifier returns 0 for keywords no declaration accepts (sealed, non-sealed, ...).
func lookupModifier(keyword string) modifier {
	for _, k := range modifierKeywords {
		if k.keyword == keyword {
			return k.mod
		}
	}
	return 0
}

func keywordsOf(set modifier) []string {
	var out []string
	for _, k := range modifierKeywords {
		if set&k.mod != 0 {
			out = append(out, k.keyword)
		}
	}
	return out
}

const access = modPublic | modProtected | modPrivate

// Allowed modifier sets per declaration context, strictfp and default included;
// the rule masks them out according to its language level.
const (
	topLevelClass     = modPublic | modAbstract | modFinal | modStrictfp
	nestedClass       = access | modAbstract | modStatic | modFinal | modStrictfp
	localClass        = modAbstract | modFinal | modStrictfp
	topLevelInterface = modPublic | modAbstract | modStrictfp
	nestedInterface   = access | modAbstract | modStatic | modStrictfp
	topLevelEnum      = modPublic | modStrictfp
	nestedEnum        = access | modStatic | modStrictfp
	annotationDecl    = access | modAbstract | modStatic | modStrictfp
	annotationMember  = modPublic | modAbstract
	constructorDecl   = access
	fieldDecl         = access | modStatic | modFinal | modTransient | modVolatile
	interfaceField    = modPublic | modStatic | modFinal
	classMethod       = access | modAbstract | modStatic | modFinal | modSynchronized | modNative | modStrictfp
	interfaceMethod   = modPublic | modAbstract
	interfaceMethodV8 = interfaceMethod | modStatic | modStrictfp | modDefault
	finalOnly         = modFinal
)

// abstractConflicts are the modifiers an abstract method cannot carry.
const abstractConflicts = modPrivate | modStatic | modFinal | modNative | modStrictfp | modSynchronized

var (
	MsgOnlyOneAccess        = onlyOneOf(access)
	MsgOnlyOneFinalAbstract = onlyOneOf(modFinal | modAbstract)
)

func onlyOneOf(set modifier) string {
	return "Can have only one of '" + strings.Join(keywordsOf(set), "', '") + "'."
}

func abstractAndAlso(keyword string) string {
	return "Cannot be 'abstract' and also '" + keyword + "'."
}

// Modifiers returns the rule checking modifier keywords on every declaration.
// strictfp is only accepted when allowStrictfp; static and default interface
// methods only when allowDefault.
func Modifiers(allowStrictfp, allowDefault bool) *validate.TreeWide {
	c := modifierChecker{strictfp: allowStrictfp, defaults: allowDefault}
	return validate.Tree(c.name(), c.check)
}

type modifierChecker struct {
	strictfp bool
	defaults bool
}

func (c modifierChecker) name() string {
	switch {
	case c.strictfp && c.defaults:
		return NameModifiersStrictfpDefault
	case c.strictfp:
		return NameModifiersStrictfp
	case c.defaults:
		return NameModifiers + "-default"
	default:
		return NameModifiers
	}
}

func (c modifierChecker) check(n ast.NodeRef, r validate.Reporter) {
	switch n.Kind() {
	case ast.KindClassOrInterfaceDecl:
		c.validate(n, r, classContext(n))
	case ast.KindEnumDecl:
		if n.IsTopLevelType() {
			c.validate(n, r, topLevelEnum)
		} else {
			c.validate(n, r, nestedEnum)
		}
	case ast.KindAnnotationDecl:
		c.validate(n, r, annotationDecl)
	case ast.KindAnnotationMember:
		c.validate(n, r, annotationMember)
	case ast.KindConstructorDecl:
		c.validate(n, r, constructorDecl)
	case ast.KindFieldDecl:
		if isInterface(n.Parent()) {
			c.validate(n, r, interfaceField)
		} else {
			c.validate(n, r, fieldDecl)
		}
	case ast.KindMethodDecl:
		c.checkMethod(n, r)
	case ast.KindParameter, ast.KindCatchClause, ast.KindLocalVarDecl:
		c.validate(n, r, finalOnly)
	}
}

func classContext(n ast.NodeRef) modifier {
	iface := isInterface(n)
	switch {
	case n.IsTopLevelType():
		if iface {
			return topLevelInterface
		}
		return topLevelClass
	case isMemberContainer(n.Parent()):
		if iface {
			return nestedInterface
		}
		return nestedClass
	default:
		// локальные интерфейсы невозможны до Java 16
		return localClass
	}
}

// isMemberContainer reports whether declarations under n are members
// rather than local declarations.
func isMemberContainer(n ast.NodeRef) bool {
	switch n.Kind() {
	case ast.KindClassOrInterfaceDecl, ast.KindEnumDecl, ast.KindAnnotationDecl,
		ast.KindRecordDecl, ast.KindEnumConstant, ast.KindObjectCreation:
		return true
	default:
		return false
	}
}

func (c modifierChecker) checkMethod(n ast.NodeRef, r validate.Reporter) {
	present := modifier(0)
	for _, m := range n.Modifiers() {
		present |= lookupModifier(m.Text())
	}
	if present&modAbstract != 0 {
		for _, kw := range keywordsOf(present & abstractConflicts) {
			r.Report(n, abstractAndAlso(kw))
		}
	}

	switch {
	case !isInterface(n.Parent()):
		c.validate(n, r, classMethod)
	case c.defaults:
		c.validate(n, r, interfaceMethodV8)
	default:
		c.validate(n, r, interfaceMethod)
	}
}

func (c modifierChecker) validate(n ast.NodeRef, r validate.Reporter, allowed modifier) {
	mods := n.Modifiers()
	if len(mods) == 0 {
		return
	}
	if !c.strictfp {
		allowed &^= modStrictfp
	}
	if !c.defaults {
		allowed &^= modDefault
	}

	var present modifier
	distinct := make([]string, 0, len(mods))
	for _, m := range mods {
		kw := m.Text()
		if containsString(distinct, kw) {
			r.Report(n, fmt.Sprintf(MsgModifierDuplicated, kw))
			continue
		}
		distinct = append(distinct, kw)
		present |= lookupModifier(kw)
	}

	if countBits(present&access) > 1 {
		r.Report(n, MsgOnlyOneAccess)
	}
	if countBits(present&(modFinal|modAbstract)) > 1 {
		r.Report(n, MsgOnlyOneFinalAbstract)
	}
	for _, kw := range distinct {
		if mod := lookupModifier(kw); mod == 0 || allowed&mod == 0 {
			r.Report(n, fmt.Sprintf(MsgModifierNotAllowed, kw))
		}
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func countBits(m modifier) int {
	n := 0
	for ; m != 0; m &= m - 1 {
		n++
	}
	return n
}
