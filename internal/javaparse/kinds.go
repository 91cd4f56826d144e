package javaparse

import "conform/internal/ast"

type mapping struct {
	kind ast.Kind
	leaf bool // children are not lowered
}

var nodeKinds = map[string]mapping{
	"package_declaration":                 {kind: ast.KindPackageDecl},
	"import_declaration":                  {kind: ast.KindImportDecl},
	"class_declaration":                   {kind: ast.KindClassOrInterfaceDecl},
	"interface_declaration":               {kind: ast.KindClassOrInterfaceDecl},
	"enum_declaration":                    {kind: ast.KindEnumDecl},
	"enum_constant":                       {kind: ast.KindEnumConstant},
	"annotation_type_declaration":         {kind: ast.KindAnnotationDecl},
	"annotation_type_element_declaration": {kind: ast.KindAnnotationMember},
	"record_declaration":                  {kind: ast.KindRecordDecl},
	"method_declaration":                  {kind: ast.KindMethodDecl},
	"constructor_declaration":             {kind: ast.KindConstructorDecl},
	"compact_constructor_declaration":     {kind: ast.KindConstructorDecl},
	"field_declaration":                   {kind: ast.KindFieldDecl},
	"constant_declaration":                {kind: ast.KindFieldDecl},
	"static_initializer":                  {kind: ast.KindInitializer},
	"formal_parameter":                    {kind: ast.KindParameter},
	"spread_parameter":                    {kind: ast.KindParameter},
	"type_parameter":                      {kind: ast.KindTypeParameter},
	"annotation":                          {kind: ast.KindAnnotationExpr},
	"marker_annotation":                   {kind: ast.KindAnnotationExpr},
	"block":                               {kind: ast.KindBlockStmt},
	"constructor_body":                    {kind: ast.KindBlockStmt},
	"expression_statement":                {kind: ast.KindExprStmt},
	"assert_statement":                    {kind: ast.KindAssertStmt},
	"try_statement":                       {kind: ast.KindTryStmt},
	"try_with_resources_statement":        {kind: ast.KindTryStmt},
	"catch_clause":                        {kind: ast.KindCatchClause},
	"if_statement":                        {kind: ast.KindIfStmt},
	"for_statement":                       {kind: ast.KindForStmt},
	"enhanced_for_statement":              {kind: ast.KindForEachStmt},
	"while_statement":                     {kind: ast.KindWhileStmt},
	"do_statement":                        {kind: ast.KindDoStmt},
	"switch_expression":                   {kind: ast.KindSwitchStmt},
	"switch_statement":                    {kind: ast.KindSwitchStmt},
	"switch_block_statement_group":        {kind: ast.KindSwitchEntry},
	"switch_rule":                         {kind: ast.KindSwitchEntry},
	"return_statement":                    {kind: ast.KindReturnStmt},
	"throw_statement":                     {kind: ast.KindThrowStmt},
	"local_variable_declaration":          {kind: ast.KindLocalVarDecl},
	"resource":                            {kind: ast.KindLocalVarDecl},
	"variable_declarator":                 {kind: ast.KindVarDeclarator},
	"class_literal":                       {kind: ast.KindClassExpr},
	"lambda_expression":                   {kind: ast.KindLambdaExpr},
	"method_reference":                    {kind: ast.KindMethodRef},
	"method_invocation":                   {kind: ast.KindMethodCall},
	"explicit_constructor_invocation":     {kind: ast.KindMethodCall},
	"object_creation_expression":          {kind: ast.KindObjectCreation},
	"generic_type":                        {kind: ast.KindClassType},
	"scoped_type_identifier":              {kind: ast.KindClassType},
	"type_identifier":                     {kind: ast.KindClassType, leaf: true},
	"identifier":                          {kind: ast.KindName, leaf: true},
	"scoped_identifier":                   {kind: ast.KindName, leaf: true},
	"string_literal":                      {kind: ast.KindStringLiteral, leaf: true},
	"text_block":                          {kind: ast.KindStringLiteral, leaf: true},
	"decimal_integer_literal":             {kind: ast.KindIntegerLiteral, leaf: true},
	"hex_integer_literal":                 {kind: ast.KindIntegerLiteral, leaf: true},
	"octal_integer_literal":               {kind: ast.KindIntegerLiteral, leaf: true},
	"binary_integer_literal":              {kind: ast.KindIntegerLiteral, leaf: true},
	"decimal_floating_point_literal":      {kind: ast.KindLiteral, leaf: true},
	"hex_floating_point_literal":          {kind: ast.KindLiteral, leaf: true},
	"character_literal":                   {kind: ast.KindLiteral, leaf: true},
	"true":                                {kind: ast.KindLiteral, leaf: true},
	"false":                               {kind: ast.KindLiteral, leaf: true},
	"null_literal":                        {kind: ast.KindLiteral, leaf: true},
}

func kindOf(typ string) mapping {
	if m, ok := nodeKinds[typ]; ok {
		return m
	}
	return mapping{kind: ast.KindOther}
}

func roleForField(field string) ast.Role {
	switch field {
	case "name":
		return ast.RoleName
	case "body":
		return ast.RoleBody
	case "condition":
		return ast.RoleCondition
	case "type":
		return ast.RoleType
	case "value":
		return ast.RoleValue
	default:
		return ast.RoleNone
	}
}

func roleForType(typ string) ast.Role {
	switch typ {
	case "catch_clause":
		return ast.RoleCatch
	case "annotation", "marker_annotation":
		return ast.RoleAnnotation
	default:
		return ast.RoleNone
	}
}
