package ast

import "fmt"

// Kind is the closed set of node kinds the front ends produce.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindCompilationUnit
	KindPackageDecl
	KindImportDecl

	// объявления
	KindClassOrInterfaceDecl
	KindEnumDecl
	KindEnumConstant
	KindAnnotationDecl
	KindAnnotationMember
	KindRecordDecl
	KindMethodDecl
	KindConstructorDecl
	KindFieldDecl
	KindInitializer
	KindParameter
	KindTypeParameter
	KindModifier
	KindAnnotationExpr

	// операторы
	KindBlockStmt
	KindExprStmt
	KindAssertStmt
	KindTryStmt
	KindCatchClause
	KindIfStmt
	KindForStmt
	KindForEachStmt
	KindWhileStmt
	KindDoStmt
	KindSwitchStmt
	KindSwitchEntry
	KindReturnStmt
	KindThrowStmt
	KindLocalVarDecl
	KindVarDeclarator

	// выражения
	KindClassExpr
	KindStringLiteral
	KindIntegerLiteral
	KindLiteral
	KindLambdaExpr
	KindMethodRef
	KindMethodCall
	KindObjectCreation
	KindClassType
	KindName

	// KindOther covers syntax the validators have no opinion about.
	// Such nodes still carry children so traversal stays complete.
	KindOther

	KindCount
)

var kindNames = [KindCount]string{
	KindInvalid:              "Invalid",
	KindCompilationUnit:      "CompilationUnit",
	KindPackageDecl:          "PackageDecl",
	KindImportDecl:           "ImportDecl",
	KindClassOrInterfaceDecl: "ClassOrInterfaceDecl",
	KindEnumDecl:             "EnumDecl",
	KindEnumConstant:         "EnumConstant",
	KindAnnotationDecl:       "AnnotationDecl",
	KindAnnotationMember:     "AnnotationMember",
	KindRecordDecl:           "RecordDecl",
	KindMethodDecl:           "MethodDecl",
	KindConstructorDecl:      "ConstructorDecl",
	KindFieldDecl:            "FieldDecl",
	KindInitializer:          "Initializer",
	KindParameter:            "Parameter",
	KindTypeParameter:        "TypeParameter",
	KindModifier:             "Modifier",
	KindAnnotationExpr:       "AnnotationExpr",
	KindBlockStmt:            "BlockStmt",
	KindExprStmt:             "ExprStmt",
	KindAssertStmt:           "AssertStmt",
	KindTryStmt:              "TryStmt",
	KindCatchClause:          "CatchClause",
	KindIfStmt:               "IfStmt",
	KindForStmt:              "ForStmt",
	KindForEachStmt:          "ForEachStmt",
	KindWhileStmt:            "WhileStmt",
	KindDoStmt:               "DoStmt",
	KindSwitchStmt:           "SwitchStmt",
	KindSwitchEntry:          "SwitchEntry",
	KindReturnStmt:           "ReturnStmt",
	KindThrowStmt:            "ThrowStmt",
	KindLocalVarDecl:         "LocalVarDecl",
	KindVarDeclarator:        "VarDeclarator",
	KindClassExpr:            "ClassExpr",
	KindStringLiteral:        "StringLiteral",
	KindIntegerLiteral:       "IntegerLiteral",
	KindLiteral:              "Literal",
	KindLambdaExpr:           "LambdaExpr",
	KindMethodRef:            "MethodRef",
	KindMethodCall:           "MethodCall",
	KindObjectCreation:       "ObjectCreation",
	KindClassType:            "ClassType",
	KindName:                 "Name",
	KindOther:                "Other",
}

func (k Kind) String() string {
	if k < KindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// IsTypeDecl reports whether k declares a type.
func (k Kind) IsTypeDecl() bool {
	switch k {
	case KindClassOrInterfaceDecl, KindEnumDecl, KindAnnotationDecl, KindRecordDecl:
		return true
	default:
		return false
	}
}

// Role describes how a child relates to its parent.
type Role uint8

const (
	RoleNone Role = iota
	RoleName
	RoleModifier
	RoleAnnotation
	RoleTypeParam
	RoleTypeArg
	RoleExtends
	RoleImplements
	RoleParam
	RoleMember
	RoleBody
	RoleLabel
	RoleResource
	RoleCatch
	RoleCatchType
	RoleFinally
	RoleCondition
	RoleType
	RoleValue

	roleCount
)

var roleNames = [roleCount]string{
	RoleNone:       "",
	RoleName:       "name",
	RoleModifier:   "modifier",
	RoleAnnotation: "annotation",
	RoleTypeParam:  "type-param",
	RoleTypeArg:    "type-arg",
	RoleExtends:    "extends",
	RoleImplements: "implements",
	RoleParam:      "param",
	RoleMember:     "member",
	RoleBody:       "body",
	RoleLabel:      "label",
	RoleResource:   "resource",
	RoleCatch:      "catch",
	RoleCatchType:  "catch-type",
	RoleFinally:    "finally",
	RoleCondition:  "condition",
	RoleType:       "type",
	RoleValue:      "value",
}

func (r Role) String() string {
	if r < roleCount {
		return roleNames[r]
	}
	return fmt.Sprintf("Role(%d)", uint8(r))
}

// Flags are boolean attributes validators inspect.
type Flags uint16

const (
	// FlagStatic marks a static import.
	FlagStatic Flags = 1 << iota
	// FlagAsterisk marks an on-demand import (`.*`).
	FlagAsterisk
	// FlagVarArgs marks a variadic parameter.
	FlagVarArgs
	// FlagInterface marks a ClassOrInterfaceDecl that declares an interface.
	FlagInterface
	// FlagDiamond marks a node whose type-argument list is present but empty (`<>`).
	FlagDiamond
)

func (f Flags) String() string {
	if f == 0 {
		return ""
	}
	names := [...]string{"static", "asterisk", "varargs", "interface", "diamond"}
	out := ""
	for i, name := range names {
		if f&(1<<i) == 0 {
			continue
		}
		if out != "" {
			out += ","
		}
		out += name
	}
	return out
}
