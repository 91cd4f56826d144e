package dialect

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"conform/internal/ast"
	"conform/internal/diag"
	"conform/internal/rules"
	"conform/internal/testkit"
	"conform/internal/validate"
)

type N = testkit.N

func role(r ast.Role, n N) N {
	n.Role = r
	return n
}

func messages(problems []diag.Problem) []string {
	out := make([]string, 0, len(problems))
	for _, p := range problems {
		out = append(out, p.Message)
	}
	return out
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{"java1.0", Java1_0, true},
		{"1.0", Java1_0, true},
		{" JAVA1.4 ", Java1_4, true},
		{"1.5", Java5, true},
		{"5", Java5, true},
		{"java8", Java8, true},
		{"1.8", Java8, true},
		{"java9", KindUnknown, false},
		{"", KindUnknown, false},
	}
	for _, tt := range tests {
		got, ok := ParseKind(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("ParseKind(%q): want (%v, %v), got (%v, %v)", tt.in, tt.want, tt.ok, got, ok)
		}
	}
	for _, k := range Kinds() {
		if got, ok := ParseKind(k.String()); !ok || got != k {
			t.Fatalf("canonical name %q does not round-trip", k)
		}
	}
}

func TestJava10Order(t *testing.T) {
	want := []string{
		rules.NameClassSingleExtends,
		rules.NameInterfaceNoImplements,
		rules.NameInterfaceNoInitializers,
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
	}
	if diff := cmp.Diff(want, Validator(Java1_0).Names()); diff != "" {
		t.Fatalf("java1.0 rule order (-want +got):\n%s", diff)
	}
}

func TestFamilyMembership(t *testing.T) {
	tests := []struct {
		kind    Kind
		has     []string
		missing []string
	}{
		{Java1_1, []string{rules.NameModifiers, rules.NameNoAssert}, []string{rules.NameNoInnerTypes, rules.NameNoReflection}},
		{Java1_2, []string{rules.NameModifiersStrictfp}, []string{rules.NameModifiers}},
		{Java1_4, []string{rules.NameNoGenerics}, []string{rules.NameNoAssert}},
		{Java5, []string{rules.NameNoStringSwitch, rules.NameTryShape, rules.NameNoDiamond}, []string{rules.NameNoVarargs, rules.NameNoForEach, rules.NameNoGenerics}},
		{Java1_4, []string{rules.NameNoGenerics}, []string{rules.NameNoDiamond}},
		{Java7, []string{rules.NameTryShapeResources, rules.NameNoLambdas}, []string{rules.NameNoStringSwitch, rules.NameTryShape, rules.NameTryResources, rules.NameNoMultiCatch, rules.NameNoDiamond}},
		{Java8, []string{rules.NameModifiersStrictfpDefault, rules.NameClassSingleExtends}, []string{rules.NameModifiersStrictfp, rules.NameNoLambdas, rules.NameNoMethodRefs}},
	}
	for _, tt := range tests {
		v := Validator(tt.kind)
		for _, name := range tt.has {
			if !v.Has(name) {
				t.Fatalf("%s: expected rule %q", tt.kind, name)
			}
		}
		for _, name := range tt.missing {
			if v.Has(name) {
				t.Fatalf("%s: unexpected rule %q", tt.kind, name)
			}
		}
	}
	if diff := cmp.Diff(Validator(Java1_2).Names(), Validator(Java1_3).Names()); diff != "" {
		t.Fatalf("java1.3 should equal java1.2 (-1.2 +1.3):\n%s", diff)
	}
	if Validator(Java5) != Validator(Java5) {
		t.Fatalf("built-in validators must be shared")
	}
	if Validator(KindUnknown) != nil {
		t.Fatalf("unknown kind must not resolve")
	}
}

func TestRootOnlyConformsEverywhere(t *testing.T) {
	root := testkit.BuildTree(testkit.Unit()).Root()
	for _, k := range Kinds() {
		if r := Validator(k).Check(root); !r.Empty() {
			t.Fatalf("%s: root-only tree produced %v", k, messages(r.Problems()))
		}
	}
}

func TestScenarios(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		tree N
		want []string
	}{
		{
			name: "string switch label",
			kind: Java1_0,
			tree: testkit.Unit(N{Kind: ast.KindSwitchStmt, Kids: []N{
				{Kind: ast.KindSwitchEntry, Kids: []N{role(ast.RoleLabel, N{Kind: ast.KindStringLiteral, Text: `"a"`})}},
			}}),
			want: []string{rules.MsgNoStringSwitch},
		},
		{
			name: "string switch allowed in java7",
			kind: Java7,
			tree: testkit.Unit(N{Kind: ast.KindSwitchStmt, Kids: []N{
				{Kind: ast.KindSwitchEntry, Kids: []N{role(ast.RoleLabel, N{Kind: ast.KindStringLiteral, Text: `"a"`})}},
			}}),
		},
		{
			name: "for-each",
			kind: Java1_4,
			tree: testkit.Unit(N{Kind: ast.KindForEachStmt}),
			want: []string{rules.MsgNoForEach},
		},
		{
			name: "try with a resource and nothing else",
			kind: Java1_0,
			tree: testkit.Unit(N{Kind: ast.KindTryStmt, Kids: []N{
				role(ast.RoleResource, N{Kind: ast.KindLocalVarDecl}),
				role(ast.RoleBody, N{Kind: ast.KindBlockStmt}),
			}}),
			want: []string{rules.MsgTryShape, rules.MsgTryResources},
		},
		{
			name: "nested type",
			kind: Java1_0,
			tree: testkit.Unit(N{Kind: ast.KindClassOrInterfaceDecl, Kids: []N{
				role(ast.RoleMember, N{Kind: ast.KindClassOrInterfaceDecl}),
			}}),
			want: []string{rules.MsgNoInnerTypes},
		},
		{
			name: "nested type allowed in java1.1",
			kind: Java1_1,
			tree: testkit.Unit(N{Kind: ast.KindClassOrInterfaceDecl, Kids: []N{
				role(ast.RoleMember, N{Kind: ast.KindClassOrInterfaceDecl}),
			}}),
		},
		{
			name: "varargs without the varargs rule",
			kind: Java5,
			tree: testkit.Unit(N{Kind: ast.KindClassOrInterfaceDecl, Kids: []N{
				role(ast.RoleMember, N{Kind: ast.KindMethodDecl, Kids: []N{
					role(ast.RoleParam, N{Kind: ast.KindParameter, Flags: ast.FlagVarArgs}),
				}}),
			}}),
		},
		{
			name: "diamond is generics before java5",
			kind: Java1_4,
			tree: diamondTree(),
			want: []string{rules.MsgNoGenerics},
		},
		{
			name: "diamond rejected in java5",
			kind: Java5,
			tree: diamondTree(),
			want: []string{rules.MsgNoDiamond},
		},
		{
			name: "diamond rejected in java6",
			kind: Java6,
			tree: diamondTree(),
			want: []string{rules.MsgNoDiamond},
		},
		{
			name: "diamond accepted in java7",
			kind: Java7,
			tree: diamondTree(),
		},
		{
			name: "explicit type arguments in java6",
			kind: Java6,
			tree: testkit.Unit(N{Kind: ast.KindObjectCreation, Kids: []N{
				role(ast.RoleType, N{Kind: ast.KindClassType, Kids: []N{
					role(ast.RoleTypeArg, N{Kind: ast.KindClassType}),
				}}),
			}}),
		},
		{
			name: "lambda rejected in java7 accepted in java8",
			kind: Java7,
			tree: testkit.Unit(N{Kind: ast.KindLambdaExpr}),
			want: []string{rules.MsgNoLambdas},
		},
		{
			name: "bare try in java7",
			kind: Java7,
			tree: testkit.Unit(N{Kind: ast.KindTryStmt}),
			want: []string{rules.MsgTryShapeResources},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := testkit.BuildTree(tt.tree)
			got := messages(Validator(tt.kind).Check(b.Root()).Problems())
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("problems mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRegistryDefine(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Define("embedded", "java5", []string{rules.NameNoForEach}, []string{rules.NameNoLambdas}); err != nil {
		t.Fatalf("Define: %v", err)
	}
	v, err := reg.Resolve("embedded")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !v.Has(rules.NameNoForEach) || v.Has(rules.NameNoLambdas) {
		t.Fatalf("unexpected rule set %v", v.Names())
	}
	if Validator(Java5).Has(rules.NameNoForEach) {
		t.Fatalf("custom dialect mutated its base")
	}

	if err := reg.Define("strict", "embedded", nil, nil); err != nil {
		t.Fatalf("Define on custom base: %v", err)
	}
	if diff := cmp.Diff(append(namesOf(Kinds()), "embedded", "strict"), reg.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	tests := []struct {
		name   string
		dname  string
		base   string
		add    []string
		remove []string
		want   error
	}{
		{"redefine custom", "embedded", "java5", nil, nil, ErrDialectExists},
		{"redefine built-in", "1.4", "java5", nil, nil, ErrDialectExists},
		{"unknown base", "x", "java42", nil, nil, ErrUnknownDialect},
		{"unknown rule", "x", "java5", []string{"no-such-rule"}, nil, validate.ErrUnknownRule},
		{"absent removal", "x", "java8", nil, []string{rules.NameNoVarargs}, validate.ErrUnknownRule},
		{"duplicate add", "x", "java1.0", []string{rules.NameNoAssert}, nil, validate.ErrDuplicateRule},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := reg.Define(tt.dname, tt.base, tt.add, tt.remove)
			if !errors.Is(err, tt.want) {
				t.Fatalf("want %v, got %v", tt.want, err)
			}
		})
	}
	if _, err := reg.Resolve("x"); !errors.Is(err, ErrUnknownDialect) {
		t.Fatalf("failed definitions must not register, got %v", err)
	}
}

func namesOf(kinds []Kind) []string {
	out := make([]string, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, k.String())
	}
	return out
}

func diamondTree() N {
	return testkit.Unit(N{Kind: ast.KindObjectCreation, Kids: []N{
		role(ast.RoleType, N{Kind: ast.KindClassType, Flags: ast.FlagDiamond}),
	}})
}
