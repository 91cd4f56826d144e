package ast

import (
	"strings"
	"testing"

	"conform/internal/source"
)

// buildSample builds:
//
//	CompilationUnit
//	  ClassOrInterfaceDecl(Outer)
//	    ClassOrInterfaceDecl(Inner) [member]
//	    MethodDecl(run) [member]
//	      Parameter(args) [param, varargs]
func buildSample(t *testing.T) (*Tree, map[string]NodeID) {
	t.Helper()
	tree := NewTree(3, 0)
	ids := map[string]NodeID{
		"unit":   tree.New(KindCompilationUnit, source.Span{File: 3, Start: 0, End: 100}, ""),
		"outer":  tree.New(KindClassOrInterfaceDecl, source.Span{File: 3, Start: 0, End: 90}, "Outer"),
		"inner":  tree.New(KindClassOrInterfaceDecl, source.Span{File: 3, Start: 10, End: 30}, "Inner"),
		"method": tree.New(KindMethodDecl, source.Span{File: 3, Start: 40, End: 80}, "run"),
		"param":  tree.New(KindParameter, source.Span{File: 3, Start: 50, End: 60}, "args"),
	}
	tree.SetRoot(ids["unit"])
	tree.Append(ids["unit"], ids["outer"], RoleMember)
	tree.Append(ids["outer"], ids["inner"], RoleMember)
	tree.Append(ids["outer"], ids["method"], RoleMember)
	tree.Append(ids["method"], ids["param"], RoleParam)
	tree.AddFlags(ids["param"], FlagVarArgs)
	return tree, ids
}

func TestWalkIsPreOrder(t *testing.T) {
	tree, _ := buildSample(t)

	var got []string
	Walk(tree.RootRef(), func(n NodeRef) bool {
		got = append(got, n.Kind().String()+":"+n.Text())
		return true
	})

	want := "CompilationUnit:,ClassOrInterfaceDecl:Outer,ClassOrInterfaceDecl:Inner,MethodDecl:run,Parameter:args"
	if strings.Join(got, ",") != want {
		t.Fatalf("walk order:\nwant %s\ngot  %s", want, strings.Join(got, ","))
	}
}

func TestWalkSkipsSubtree(t *testing.T) {
	tree, ids := buildSample(t)

	visited := 0
	Walk(tree.RootRef(), func(n NodeRef) bool {
		visited++
		return n.ID() != ids["method"]
	})
	if visited != 4 {
		t.Fatalf("expected 4 visited nodes, got %d", visited)
	}
}

func TestWalkInvalidRootVisitsNothing(t *testing.T) {
	Walk(NodeRef{}, func(NodeRef) bool {
		t.Fatalf("visit called for invalid root")
		return true
	})
}

func TestNodeRefAccessors(t *testing.T) {
	tree, ids := buildSample(t)

	outer := tree.Ref(ids["outer"])
	inner := tree.Ref(ids["inner"])
	param := tree.Ref(ids["param"])

	if !outer.IsTopLevelType() {
		t.Errorf("outer should be top-level")
	}
	if inner.IsTopLevelType() {
		t.Errorf("inner should not be top-level")
	}
	if tree.Ref(ids["method"]).IsTopLevelType() {
		t.Errorf("methods are not type declarations")
	}
	if !param.Has(FlagVarArgs) || param.Has(FlagStatic) {
		t.Errorf("unexpected flags on param: %s", tree.Get(ids["param"]).Flags)
	}
	if got := len(outer.ChildrenByRole(RoleMember)); got != 2 {
		t.Errorf("outer members = %d, want 2", got)
	}
	if got := param.Parent().Parent().Text(); got != "Outer" {
		t.Errorf("grandparent of param = %q", got)
	}
	if tree.Ref(ids["unit"]).Parent().Valid() {
		t.Errorf("root parent must be invalid")
	}
	if outer.FirstByRole(RoleLabel).Valid() {
		t.Errorf("FirstByRole with no match must be invalid")
	}
	var zero NodeRef
	if zero.Kind() != KindInvalid || zero.NumChildren() != 0 || zero.Child(0).Valid() {
		t.Errorf("zero NodeRef must behave as empty")
	}
}

func TestHasTypeArgs(t *testing.T) {
	tree := NewTree(0, 0)
	ty := tree.New(KindClassType, source.Span{}, "List")
	tree.SetRoot(ty)
	if tree.Ref(ty).HasTypeArgs() {
		t.Fatalf("no type args expected")
	}
	tree.AddFlags(ty, FlagDiamond)
	if !tree.Ref(ty).HasTypeArgs() {
		t.Fatalf("diamond counts as a type-argument list")
	}
}

func TestAppendRejectsSecondParentAndCycles(t *testing.T) {
	tests := []struct {
		name string
		run  func(tree *Tree, ids map[string]NodeID)
	}{
		{"second parent", func(tree *Tree, ids map[string]NodeID) {
			tree.Append(ids["method"], ids["inner"], RoleMember)
		}},
		{"reparent", func(tree *Tree, ids map[string]NodeID) {
			other := tree.New(KindBlockStmt, source.Span{}, "")
			tree.Append(other, ids["param"], RoleBody)
		}},
		{"root", func(tree *Tree, ids map[string]NodeID) {
			tree.Append(ids["param"], ids["unit"], RoleBody)
		}},
		{"unknown", func(tree *Tree, ids map[string]NodeID) {
			tree.Append(ids["unit"], NodeID(999), RoleBody)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, ids := buildSample(t)
			defer func() {
				if recover() == nil {
					t.Fatalf("expected panic")
				}
			}()
			tt.run(tree, ids)
		})
	}
}

func TestAppendRejectsAncestorCycle(t *testing.T) {
	tree := NewTree(0, 0)
	a := tree.New(KindBlockStmt, source.Span{}, "a")
	b := tree.New(KindBlockStmt, source.Span{}, "b")
	tree.Append(a, b, RoleBody)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on cycle")
		}
	}()
	tree.Append(b, a, RoleBody)
}
