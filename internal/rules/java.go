package rules

import (
	"strings"

	"conform/internal/ast"
	"conform/internal/validate"
)

func always(msg string) validate.Action {
	return func(n ast.NodeRef, r validate.Reporter) { r.Report(n, msg) }
}

func isInterface(n ast.NodeRef) bool { return n.Has(ast.FlagInterface) }

var (
	ClassSingleExtends = validate.Simple(NameClassSingleExtends, ast.KindClassOrInterfaceDecl,
		func(n ast.NodeRef) bool { return !isInterface(n) && n.CountRole(ast.RoleExtends) > 1 },
		always(MsgClassSingleExtends))

	InterfaceNoImplements = validate.Simple(NameInterfaceNoImplements, ast.KindClassOrInterfaceDecl,
		func(n ast.NodeRef) bool { return isInterface(n) && n.CountRole(ast.RoleImplements) > 0 },
		always(MsgInterfaceNoImplements))

	// InterfaceNoInitializers reports every initializer block of an interface.
	InterfaceNoInitializers = validate.Simple(NameInterfaceNoInitializers, ast.KindClassOrInterfaceDecl,
		isInterface,
		func(n ast.NodeRef, r validate.Reporter) {
			for _, m := range n.ChildrenByRole(ast.RoleMember) {
				if m.Kind() == ast.KindInitializer {
					r.Report(m, MsgInterfaceNoInitializers)
				}
			}
		})
)

var (
	NoAssert = validate.ForKind(NameNoAssert, ast.KindAssertStmt, always(MsgNoAssert))

	NoInnerTypes = validate.Simple(NameNoInnerTypes, ast.KindClassOrInterfaceDecl,
		func(n ast.NodeRef) bool { return !n.IsTopLevelType() },
		always(MsgNoInnerTypes))

	NoReflection = validate.ForKind(NameNoReflection, ast.KindClassExpr, always(MsgNoReflection))

	// NoGenerics reports a node once for type arguments (the diamond counts)
	// and once more for declared type parameters.
	NoGenerics = validate.Tree(NameNoGenerics, func(n ast.NodeRef, r validate.Reporter) {
		if n.HasTypeArgs() {
			r.Report(n, MsgNoGenerics)
		}
		if len(n.TypeParams()) > 0 {
			r.Report(n, MsgNoGenerics)
		}
	})

	TryShape = validate.Simple(NameTryShape, ast.KindTryStmt,
		func(n ast.NodeRef) bool {
			return n.CountRole(ast.RoleCatch) == 0 && !n.FirstByRole(ast.RoleFinally).Valid()
		},
		always(MsgTryShape))

	TryResources = validate.Simple(NameTryResources, ast.KindTryStmt,
		func(n ast.NodeRef) bool { return n.CountRole(ast.RoleResource) > 0 },
		always(MsgTryResources))

	NoAnnotations = validate.Tree(NameNoAnnotations, func(n ast.NodeRef, r validate.Reporter) {
		switch n.Kind() {
		case ast.KindAnnotationExpr, ast.KindAnnotationDecl:
			r.Report(n, MsgNoAnnotations)
		}
	})

	NoEnums = validate.ForKind(NameNoEnums, ast.KindEnumDecl, always(MsgNoEnums))

	NoVarargs = validate.Simple(NameNoVarargs, ast.KindParameter,
		func(n ast.NodeRef) bool { return n.Has(ast.FlagVarArgs) },
		always(MsgNoVarargs))

	NoForEach = validate.ForKind(NameNoForEach, ast.KindForEachStmt, always(MsgNoForEach))

	NoStaticImport = validate.Simple(NameNoStaticImport, ast.KindImportDecl,
		func(n ast.NodeRef) bool { return n.Has(ast.FlagStatic) },
		always(MsgNoStaticImport))

	// NoStringSwitch reports on the offending label, not on the entry.
	NoStringSwitch = validate.Simple(NameNoStringSwitch, ast.KindSwitchEntry,
		func(n ast.NodeRef) bool {
			for _, l := range n.ChildrenByRole(ast.RoleLabel) {
				if l.Kind() == ast.KindStringLiteral {
					return true
				}
			}
			return false
		},
		func(n ast.NodeRef, r validate.Reporter) {
			for _, l := range n.ChildrenByRole(ast.RoleLabel) {
				if l.Kind() == ast.KindStringLiteral {
					r.Report(l, MsgNoStringSwitch)
				}
			}
		})

	NoBinaryIntLiterals = validate.Simple(NameNoBinaryIntLiterals, ast.KindIntegerLiteral,
		func(n ast.NodeRef) bool {
			t := n.Text()
			return strings.HasPrefix(t, "0b") || strings.HasPrefix(t, "0B")
		},
		always(MsgNoBinaryIntLiterals))

	NoUnderscores = validate.Simple(NameNoUnderscores, ast.KindIntegerLiteral,
		func(n ast.NodeRef) bool { return strings.Contains(n.Text(), "_") },
		always(MsgNoUnderscores))

	NoMultiCatch = validate.Simple(NameNoMultiCatch, ast.KindCatchClause,
		func(n ast.NodeRef) bool { return n.CountRole(ast.RoleCatchType) > 1 },
		always(MsgNoMultiCatch))

	NoLambdas = validate.ForKind(NameNoLambdas, ast.KindLambdaExpr, always(MsgNoLambdas))

	NoMethodRefs = validate.ForKind(NameNoMethodRefs, ast.KindMethodRef, always(MsgNoMethodRefs))

	TryShapeResources = validate.Simple(NameTryShapeResources, ast.KindTryStmt,
		func(n ast.NodeRef) bool {
			return n.CountRole(ast.RoleCatch) == 0 &&
				!n.FirstByRole(ast.RoleFinally).Valid() &&
				n.CountRole(ast.RoleResource) == 0
		},
		always(MsgTryShapeResources))

	// NoDiamond keeps rejecting `<>` once generics are otherwise allowed.
	NoDiamond = validate.Tree(NameNoDiamond, func(n ast.NodeRef, r validate.Reporter) {
		if n.Has(ast.FlagDiamond) {
			r.Report(n, MsgNoDiamond)
		}
	})
)
