package javaparse

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conform/internal/ast"
	"conform/internal/source"
	"conform/internal/testkit"
)

func parse(t *testing.T, code string) *ast.Tree {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("Test.java", []byte(code))

	p := NewParser()
	defer p.Close()

	tree, err := p.Parse(context.Background(), id, fs.Get(id).Content)
	require.NoError(t, err)
	require.NoError(t, testkit.CheckTreeInvariants(tree, fs.Get(id)))
	return tree
}

func collect(tree *ast.Tree, kind ast.Kind) []ast.NodeRef {
	var out []ast.NodeRef
	ast.Walk(tree.RootRef(), func(n ast.NodeRef) bool {
		if n.Kind() == kind {
			out = append(out, n)
		}
		return true
	})
	return out
}

func texts(refs []ast.NodeRef) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, r.Text())
	}
	return out
}

func TestParseClassSkeleton(t *testing.T) {
	tree := parse(t, `package com.example;

import java.util.List;
import static java.lang.Math.*;

/** doc */
public final class Calculator extends Base implements Runnable, Cloneable {
    private static int count;

    static { count = 0; }
    { count++; }

    public Calculator(int start) { }

    public int add(final int a, int b) {
        return a + b;
    }

    class Inner { }
}
`)
	root := tree.RootRef()
	assert.Equal(t, ast.KindCompilationUnit, root.Kind())

	assert.Equal(t, []string{"com.example"}, texts(collect(tree, ast.KindPackageDecl)))

	imports := collect(tree, ast.KindImportDecl)
	require.Len(t, imports, 2)
	assert.Equal(t, "java.util.List", imports[0].Text())
	assert.False(t, imports[0].Has(ast.FlagStatic))
	assert.Equal(t, "java.lang.Math", imports[1].Text())
	assert.True(t, imports[1].Has(ast.FlagStatic|ast.FlagAsterisk))

	classes := collect(tree, ast.KindClassOrInterfaceDecl)
	require.Len(t, classes, 2)
	calc := classes[0]
	assert.Equal(t, "Calculator", calc.Text())
	assert.True(t, calc.IsTopLevelType())
	assert.False(t, calc.Has(ast.FlagInterface))
	assert.Equal(t, []string{"public", "final"}, texts(calc.Modifiers()))
	assert.Equal(t, []string{"Base"}, texts(calc.ChildrenByRole(ast.RoleExtends)))
	assert.Equal(t, []string{"Runnable", "Cloneable"}, texts(calc.ChildrenByRole(ast.RoleImplements)))

	inner := classes[1]
	assert.Equal(t, "Inner", inner.Text())
	assert.False(t, inner.IsTopLevelType())
	assert.Equal(t, ast.RoleMember, inner.Role())

	members := calc.ChildrenByRole(ast.RoleMember)
	kinds := make([]ast.Kind, 0, len(members))
	for _, m := range members {
		kinds = append(kinds, m.Kind())
	}
	assert.Equal(t, []ast.Kind{
		ast.KindFieldDecl,
		ast.KindInitializer,
		ast.KindInitializer,
		ast.KindConstructorDecl,
		ast.KindMethodDecl,
		ast.KindClassOrInterfaceDecl,
	}, kinds)
	assert.True(t, members[1].Has(ast.FlagStatic))
	assert.False(t, members[2].Has(ast.FlagStatic))
	assert.Equal(t, ast.KindBlockStmt, members[2].FirstByRole(ast.RoleBody).Kind())

	method := members[4]
	assert.Equal(t, "add", method.Text())
	params := method.ChildrenByRole(ast.RoleParam)
	require.Len(t, params, 2)
	assert.Equal(t, "a", params[0].Text())
	assert.Equal(t, []string{"final"}, texts(params[0].Modifiers()))
}

func TestParseGenerics(t *testing.T) {
	tree := parse(t, `class Box<T extends Comparable<T>> {
    java.util.List<String> names = new java.util.ArrayList<>();
    <U> U pick(U u) { return u; }
}`)

	box := collect(tree, ast.KindClassOrInterfaceDecl)[0]
	assert.Equal(t, []string{"T"}, texts(box.TypeParams()))

	var withArgs, diamonds []string
	for _, ct := range collect(tree, ast.KindClassType) {
		if ct.Has(ast.FlagDiamond) {
			diamonds = append(diamonds, ct.Text())
		} else if ct.HasTypeArgs() {
			withArgs = append(withArgs, ct.Text())
		}
	}
	assert.Equal(t, []string{"Comparable", "java.util.List"}, withArgs)
	assert.Equal(t, []string{"java.util.ArrayList"}, diamonds)

	methods := collect(tree, ast.KindMethodDecl)
	require.Len(t, methods, 1)
	assert.Equal(t, []string{"U"}, texts(methods[0].TypeParams()))
}

func TestParseInterfaceAndEnum(t *testing.T) {
	tree := parse(t, `interface Shape extends Comparable, Cloneable {
    double PI = 3.14;
    double area();
}
enum Color { RED, GREEN { void paint() {} } }
@interface Marker { int value() default 1; }
`)

	shape := collect(tree, ast.KindClassOrInterfaceDecl)[0]
	assert.True(t, shape.Has(ast.FlagInterface))
	assert.Equal(t, []string{"Comparable", "Cloneable"}, texts(shape.ChildrenByRole(ast.RoleExtends)))
	assert.Len(t, collect(tree, ast.KindFieldDecl), 1)

	assert.Equal(t, []string{"Color"}, texts(collect(tree, ast.KindEnumDecl)))
	assert.Equal(t, []string{"RED", "GREEN"}, texts(collect(tree, ast.KindEnumConstant)))
	assert.Equal(t, []string{"Marker"}, texts(collect(tree, ast.KindAnnotationDecl)))
	assert.Equal(t, []string{"value"}, texts(collect(tree, ast.KindAnnotationMember)))
}

func TestParseStatements(t *testing.T) {
	tree := parse(t, `class A {
    @Deprecated
    void run(String s, int... rest) throws Exception {
        assert s != null : "s";
        for (String x : list) { }
        for (int i = 0; i < 1_000; i++) { }
        try (java.io.Reader r = open()) { }
        try { } catch (IllegalStateException | IllegalArgumentException e) { } finally { }
        switch (s) {
        case "a":
            break;
        case "b": case "c":
            break;
        default:
        }
        Runnable f = () -> {};
        Object o = String.class;
        java.util.function.Function<String, Integer> g = Integer::parseInt;
        int b = 0b1010;
    }
}`)

	assert.Len(t, collect(tree, ast.KindAssertStmt), 1)
	assert.Len(t, collect(tree, ast.KindForEachStmt), 1)
	assert.Len(t, collect(tree, ast.KindForStmt), 1)
	assert.Len(t, collect(tree, ast.KindLambdaExpr), 1)
	assert.Len(t, collect(tree, ast.KindMethodRef), 1)
	assert.Equal(t, []string{"String.class"}, texts(collect(tree, ast.KindClassExpr)))

	annotations := collect(tree, ast.KindAnnotationExpr)
	require.Len(t, annotations, 1)
	assert.Equal(t, "Deprecated", annotations[0].Text())
	assert.Equal(t, ast.RoleAnnotation, annotations[0].Role())

	params := collect(tree, ast.KindParameter)
	require.Len(t, params, 2)
	assert.False(t, params[0].Has(ast.FlagVarArgs))
	assert.True(t, params[1].Has(ast.FlagVarArgs))

	tries := collect(tree, ast.KindTryStmt)
	require.Len(t, tries, 2)
	assert.Equal(t, 1, tries[0].CountRole(ast.RoleResource))
	assert.Equal(t, 0, tries[0].CountRole(ast.RoleCatch))
	assert.False(t, tries[0].FirstByRole(ast.RoleFinally).Valid())
	assert.Equal(t, 0, tries[1].CountRole(ast.RoleResource))
	assert.True(t, tries[1].FirstByRole(ast.RoleFinally).Valid())

	catches := tries[1].ChildrenByRole(ast.RoleCatch)
	require.Len(t, catches, 1)
	assert.Equal(t, []string{"IllegalStateException", "IllegalArgumentException"},
		texts(catches[0].ChildrenByRole(ast.RoleCatchType)))

	entries := collect(tree, ast.KindSwitchEntry)
	require.Len(t, entries, 3)
	assert.Equal(t, []string{`"a"`}, texts(entries[0].ChildrenByRole(ast.RoleLabel)))
	assert.Equal(t, []string{`"b"`, `"c"`}, texts(entries[1].ChildrenByRole(ast.RoleLabel)))
	assert.Empty(t, entries[2].ChildrenByRole(ast.RoleLabel))
	assert.Equal(t, ast.KindStringLiteral, entries[0].FirstByRole(ast.RoleLabel).Kind())

	assert.Equal(t, []string{"0", "1_000", "0b1010"}, texts(collect(tree, ast.KindIntegerLiteral)))
}

func TestParseSyntaxError(t *testing.T) {
	p := NewParser()
	defer p.Close()

	_, err := p.Parse(context.Background(), 0, []byte("class A { void m( }"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSyntax))

	var se *SyntaxError
	require.True(t, errors.As(err, &se))
	assert.LessOrEqual(t, se.Span.Start, uint32(len("class A { void m( }")))
}

func TestParseEmptyFile(t *testing.T) {
	tree := parse(t, "")
	assert.Equal(t, ast.KindCompilationUnit, tree.RootRef().Kind())
	assert.Equal(t, 0, tree.RootRef().NumChildren())
}

func TestParserReuse(t *testing.T) {
	p := NewParser()
	defer p.Close()
	for i := 0; i < 3; i++ {
		tree, err := p.Parse(context.Background(), 0, []byte("class A {}"))
		require.NoError(t, err)
		assert.Len(t, collect(tree, ast.KindClassOrInterfaceDecl), 1)
	}
}
