package javaparse

import (
	"fortio.org/safecast"
	sitter "github.com/smacker/go-tree-sitter"

	"conform/internal/ast"
	"conform/internal/source"
)

type lowerer struct {
	file source.FileID
	src  []byte
	tree *ast.Tree
}

func newLowerer(file source.FileID, src []byte, root *sitter.Node) *lowerer {
	capHint, err := safecast.Conv[uint](root.EndByte() / 8)
	if err != nil {
		capHint = 0
	}
	return &lowerer{
		file: file,
		src:  src,
		tree: ast.NewTree(file, capHint+16),
	}
}

func (l *lowerer) run(root *sitter.Node) *ast.Tree {
	id := l.tree.New(ast.KindCompilationUnit, spanOf(l.file, root), "")
	l.tree.SetRoot(id)
	l.children(id, root, ast.RoleNone)
	return l.tree
}

func childCount(n *sitter.Node) int {
	c, err := safecast.Conv[int](n.ChildCount())
	if err != nil {
		return 0
	}
	return c
}

func (l *lowerer) content(n *sitter.Node) string {
	return string(l.src[n.StartByte():n.EndByte()])
}

// children lowers every child of n under parent. A non-zero role overrides
// the role derived from field names.
func (l *lowerer) children(parent ast.NodeID, n *sitter.Node, role ast.Role) {
	owner := n.Type()
	for i := 0; i < childCount(n); i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		if !c.IsNamed() {
			if owner == "import_declaration" && c.Type() == "static" {
				l.tree.AddFlags(parent, ast.FlagStatic)
			}
			continue
		}
		l.child(parent, owner, n.FieldNameForChild(i), c, role)
	}
}

func (l *lowerer) child(parent ast.NodeID, owner, field string, c *sitter.Node, role ast.Role) {
	typ := c.Type()
	switch typ {
	case "line_comment", "block_comment", "comment":
		return
	case "asterisk":
		l.tree.AddFlags(parent, ast.FlagAsterisk)
		return
	case "modifiers":
		l.modifiers(parent, c)
		return
	case "type_arguments":
		l.typeArgs(parent, c)
		return
	case "type_parameters":
		l.children(parent, c, ast.RoleTypeParam)
		return
	case "superclass", "extends_interfaces":
		l.children(parent, c, ast.RoleExtends)
		return
	case "super_interfaces":
		l.children(parent, c, ast.RoleImplements)
		return
	case "type_list", "catch_formal_parameter":
		l.children(parent, c, role)
		return
	case "class_body", "interface_body", "enum_body", "enum_body_declarations", "annotation_type_body":
		l.body(parent, c)
		return
	case "formal_parameters":
		l.children(parent, c, ast.RoleParam)
		return
	case "resource_specification":
		l.children(parent, c, ast.RoleResource)
		return
	case "finally_clause":
		l.children(parent, c, ast.RoleFinally)
		return
	case "catch_type":
		l.children(parent, c, ast.RoleCatchType)
		return
	case "switch_block":
		l.children(parent, c, ast.RoleBody)
		return
	case "switch_label":
		l.children(parent, c, ast.RoleLabel)
		return
	case "type_identifier", "scoped_type_identifier":
		// the generic type node already carries the name
		if owner == "generic_type" {
			return
		}
	}

	if role == ast.RoleNone {
		role = roleForField(field)
	}
	if role == ast.RoleNone {
		role = roleForType(typ)
	}
	l.tree.Append(parent, l.lower(c), role)
}

func (l *lowerer) lower(c *sitter.Node) ast.NodeID {
	m := kindOf(c.Type())
	id := l.tree.New(m.kind, spanOf(l.file, c), l.text(c, m.kind))

	switch c.Type() {
	case "interface_declaration":
		l.tree.AddFlags(id, ast.FlagInterface)
	case "spread_parameter":
		l.tree.AddFlags(id, ast.FlagVarArgs)
	case "static_initializer":
		l.tree.AddFlags(id, ast.FlagStatic)
	}

	if !m.leaf {
		l.children(id, c, ast.RoleNone)
	}
	return id
}

// modifiers splits a modifier list into keyword nodes and annotations.
func (l *lowerer) modifiers(parent ast.NodeID, n *sitter.Node) {
	for i := 0; i < childCount(n); i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		if c.IsNamed() {
			l.child(parent, "modifiers", "", c, ast.RoleNone)
			continue
		}
		kw := l.tree.New(ast.KindModifier, spanOf(l.file, c), l.content(c))
		l.tree.Append(parent, kw, ast.RoleModifier)
	}
}

// typeArgs attaches type arguments to parent; an empty list is the diamond.
func (l *lowerer) typeArgs(parent ast.NodeID, n *sitter.Node) {
	if n.NamedChildCount() == 0 {
		l.tree.AddFlags(parent, ast.FlagDiamond)
		return
	}
	l.children(parent, n, ast.RoleTypeArg)
}

// body lowers class-like bodies; a bare block there is an instance initializer.
func (l *lowerer) body(parent ast.NodeID, n *sitter.Node) {
	for i := 0; i < childCount(n); i++ {
		c := n.Child(i)
		if c == nil || !c.IsNamed() {
			continue
		}
		if c.Type() == "block" {
			init := l.tree.New(ast.KindInitializer, spanOf(l.file, c), "")
			l.tree.Append(init, l.lower(c), ast.RoleBody)
			l.tree.Append(parent, init, ast.RoleMember)
			continue
		}
		l.child(parent, n.Type(), n.FieldNameForChild(i), c, ast.RoleMember)
	}
}

func (l *lowerer) text(c *sitter.Node, kind ast.Kind) string {
	switch kind {
	case ast.KindOther:
		return c.Type()
	case ast.KindName, ast.KindStringLiteral, ast.KindIntegerLiteral, ast.KindLiteral:
		return l.content(c)
	case ast.KindClassType:
		if c.Type() == "generic_type" && c.NamedChildCount() > 0 {
			return l.content(c.NamedChild(0))
		}
		return l.content(c)
	case ast.KindImportDecl, ast.KindPackageDecl:
		return l.firstNamed(c, "scoped_identifier", "identifier")
	case ast.KindTypeParameter:
		return l.firstNamed(c, "type_identifier", "identifier")
	case ast.KindClassExpr:
		return l.content(c)
	}
	if name := c.ChildByFieldName("name"); name != nil {
		return l.content(name)
	}
	return ""
}

func (l *lowerer) firstNamed(c *sitter.Node, types ...string) string {
	for i := 0; i < childCount(c); i++ {
		n := c.Child(i)
		if n == nil {
			continue
		}
		for _, typ := range types {
			if n.Type() == typ {
				return l.content(n)
			}
		}
	}
	return ""
}
