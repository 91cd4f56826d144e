package rules

// Rule names.
const (
	NameClassSingleExtends      = "class-single-extends"
	NameInterfaceNoImplements   = "interface-no-implements"
	NameInterfaceNoInitializers = "interface-no-initializers"

	NameModifiers                = "modifiers"
	NameModifiersStrictfp        = "modifiers-strictfp"
	NameModifiersStrictfpDefault = "modifiers-strictfp-default"

	NameNoAssert            = "no-assert"
	NameNoInnerTypes        = "no-inner-types"
	NameNoReflection        = "no-reflection"
	NameNoGenerics          = "no-generics"
	NameTryShape            = "try-shape"
	NameTryResources        = "try-resources"
	NameNoAnnotations       = "no-annotations"
	NameNoEnums             = "no-enums"
	NameNoVarargs           = "no-varargs"
	NameNoForEach           = "no-foreach"
	NameNoStaticImport      = "no-static-import"
	NameNoStringSwitch      = "no-string-switch"
	NameNoBinaryIntLiterals = "no-binary-int-literals"
	NameNoUnderscores       = "no-underscore-literals"
	NameNoMultiCatch        = "no-multi-catch"
	NameNoLambdas           = "no-lambdas"
	NameNoMethodRefs        = "no-method-refs"
	NameTryShapeResources   = "try-shape-with-resources"
	NameNoDiamond           = "no-diamond"
)

// Messages reported by the catalogue. They are part of the tool's output
// contract and must stay byte-for-byte stable.
const (
	MsgClassSingleExtends      = "A class cannot extend more than one other class."
	MsgInterfaceNoImplements   = "An interface cannot implement other interfaces."
	MsgInterfaceNoInitializers = "An interface cannot have initializers."

	MsgNoAssert            = "'assert' keyword is not supported."
	MsgNoInnerTypes        = "inner classes or interfaces are not supported."
	MsgNoReflection        = "Reflection is not supported."
	MsgNoGenerics          = "Generics are not supported."
	MsgTryShape            = "Try has no finally and no catch."
	MsgTryResources        = "Catch with resource is not supported."
	MsgNoAnnotations       = "Annotations are not supported."
	MsgNoEnums             = "Enumerations are not supported."
	MsgNoVarargs           = "Varargs are not supported."
	MsgNoForEach           = "For-each loops are not supported."
	MsgNoStaticImport      = "Static imports are not supported."
	MsgNoStringSwitch      = "Strings in switch statements are not supported."
	MsgNoBinaryIntLiterals = "Binary literal values are not supported."
	MsgNoUnderscores       = "Underscores in literal values are not supported."
	MsgNoMultiCatch        = "Multi-catch is not supported."
	MsgNoLambdas           = "Lambdas are not supported."
	MsgNoMethodRefs        = "Method references are not supported."
	MsgTryShapeResources   = "Try has no finally, no catch, and no resources."
	MsgNoDiamond           = "The diamond operator is not supported."

	MsgModifierNotAllowed = "'%s' is not allowed here."
	MsgModifierDuplicated = "Duplicated modifier '%s'."
)
