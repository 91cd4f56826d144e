package validate

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"conform/internal/ast"
	"conform/internal/testkit"
)

func report(msg string) Action {
	return func(n ast.NodeRef, r Reporter) { r.Report(n, msg) }
}

func scoped(name string, kind ast.Kind) *TypeScoped {
	return ForKind(name, kind, report(name))
}

func TestNewKeepsOrder(t *testing.T) {
	v, err := New(scoped("a", ast.KindTryStmt), Tree("b", nil), scoped("c", ast.KindAssertStmt))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, v.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if !v.Has("b") || v.Has("z") {
		t.Fatalf("Has: unexpected membership")
	}
	if v.Len() != 3 {
		t.Fatalf("Len: want 3, got %d", v.Len())
	}
}

func TestDeriveAppendsAndRemoves(t *testing.T) {
	base := MustNew(scoped("a", ast.KindTryStmt), scoped("b", ast.KindTryStmt), scoped("c", ast.KindTryStmt))

	derived, err := Derive(base, Layer{
		Add:    []Rule{scoped("d", ast.KindTryStmt), scoped("e", ast.KindTryStmt)},
		Remove: []string{"b", "d"},
	})
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "c", "e"}, derived.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, base.Names()); diff != "" {
		t.Fatalf("parent mutated (-want +got):\n%s", diff)
	}
}

func TestDeriveEmptyLayerCopiesParent(t *testing.T) {
	base := MustNew(scoped("a", ast.KindTryStmt))
	derived := MustDerive(base, Layer{})
	if diff := cmp.Diff(base.Names(), derived.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestConstructionErrors(t *testing.T) {
	base := MustNew(scoped("a", ast.KindTryStmt))

	tests := []struct {
		name  string
		build func() (*Validator, error)
		want  []error
	}{
		{
			name: "unknown removal",
			build: func() (*Validator, error) {
				return Derive(base, Layer{Remove: []string{"missing"}})
			},
			want: []error{ErrUnknownRule},
		},
		{
			name: "duplicate with parent",
			build: func() (*Validator, error) {
				return Derive(base, Layer{Add: []Rule{scoped("a", ast.KindAssertStmt)}})
			},
			want: []error{ErrDuplicateRule},
		},
		{
			name: "duplicate in leaf",
			build: func() (*Validator, error) {
				return New(Tree("x", nil), Tree("x", nil))
			},
			want: []error{ErrDuplicateRule},
		},
		{
			name: "nil rule",
			build: func() (*Validator, error) {
				return New(nil)
			},
			want: []error{ErrInvalidRule},
		},
		{
			name: "typed nil rule",
			build: func() (*Validator, error) {
				var r *TypeScoped
				return New(r)
			},
			want: []error{ErrInvalidRule},
		},
		{
			name: "empty name",
			build: func() (*Validator, error) {
				return New(Tree("", nil))
			},
			want: []error{ErrInvalidRule},
		},
		{
			name: "invalid kind",
			build: func() (*Validator, error) {
				return New(ForKind("k", ast.KindCount, nil))
			},
			want: []error{ErrInvalidRule},
		},
		{
			name: "nil parent",
			build: func() (*Validator, error) {
				return Derive(nil, Layer{})
			},
			want: []error{ErrInvalidRule},
		},
		{
			name: "all mistakes at once",
			build: func() (*Validator, error) {
				return Derive(base, Layer{
					Add:    []Rule{nil, scoped("a", ast.KindTryStmt)},
					Remove: []string{"ghost"},
				})
			},
			want: []error{ErrInvalidRule, ErrUnknownRule, ErrDuplicateRule},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := tt.build()
			if err == nil {
				t.Fatalf("expected error, got validator %v", v.Names())
			}
			if v != nil {
				t.Fatalf("expected nil validator on error")
			}
			for _, want := range tt.want {
				if !errors.Is(err, want) {
					t.Fatalf("expected %v in %v", want, err)
				}
			}
		})
	}
}

func TestMustDerivePanicsOnUnknownRemoval(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	MustDerive(MustNew(), Layer{Remove: []string{"missing"}})
}

func TestRulesReturnsCopy(t *testing.T) {
	v := MustNew(scoped("a", ast.KindTryStmt))
	rules := v.Rules()
	rules[0] = scoped("b", ast.KindTryStmt)
	if v.Names()[0] != "a" {
		t.Fatalf("Rules must return a copy")
	}
}

// Derive(B, Add A, Remove R) behaves like New((B − R) ++ A) for disjoint A and R.
func TestLayeringLaw(t *testing.T) {
	a := scoped("a", ast.KindTryStmt)
	b := Tree("b", func(n ast.NodeRef, r Reporter) {
		if n.Kind() == ast.KindForEachStmt {
			r.Report(n, "b")
		}
	})
	c := scoped("c", ast.KindForEachStmt)
	d := scoped("d", ast.KindTryStmt)
	e := Tree("e", func(n ast.NodeRef, r Reporter) {
		if n.Kind() == ast.KindCompilationUnit {
			r.Report(n, "e")
		}
	})

	derived := MustDerive(MustNew(a, b, c), Layer{Add: []Rule{d, e}, Remove: []string{"a"}})
	flat := MustNew(b, c, d, e)

	trees := []testkit.N{
		testkit.Unit(),
		testkit.Unit(testkit.N{Kind: ast.KindTryStmt}),
		testkit.Unit(
			testkit.N{Kind: ast.KindForEachStmt, Kids: []testkit.N{{Kind: ast.KindTryStmt}}},
			testkit.N{Kind: ast.KindTryStmt},
		),
	}
	for i, spec := range trees {
		root := testkit.BuildTree(spec).Root()
		want := flat.Check(root).Problems()
		got := derived.Check(root).Problems()
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("tree %d: derived differs from flat (-flat +derived):\n%s", i, diff)
		}
	}
}
