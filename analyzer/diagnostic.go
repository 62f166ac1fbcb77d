// Package analyzer extracts native module schemas from parsed spec files.
// It walks a file's top-level declarations, recognizes the module marker
// interface and the registry by import identity, normalizes every declared
// type into the closed descriptor set, resolves references, and assembles one
// finalized schema per registered module.
package analyzer

import (
	"fmt"

	"github.com/l2hyunwoo/craby/syntax"
)

// Diagnostic is a recoverable analysis problem anchored to a source span.
// Diagnostics accumulate across one analysis pass; any diagnostic prevents
// the unit from producing schemas, but never stops the pass early.
type Diagnostic struct {
	Message string
	Loc     syntax.Span
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Loc.Start, d.Message)
}

const (
	reactNativePkg       = "react-native"
	markerInterfaceName  = "TurboModule"
	registryName         = "TurboModuleRegistry"
	registryGet          = "get"
	registryGetEnforcing = "getEnforcing"

	reservedTypePromise    = "Promise"
	reservedNullablePrefix = "Nullable"
)

const (
	msgInvalidSpec          = "Invalid specification"
	msgInvalidTypeReference = "Invalid type reference"
	msgOptionalSig          = "Optional signature is not supported"
	msgNoSpecGeneric        = "NativeModule specification generic argument is required"
	msgTypeLiteral          = "Type literal is not supported. Use defined type reference instead"
	msgUnionType            = "Union types only allow nullable type (eg. `T | null`)"
	msgMixedEnumMember      = "Enum member type must be single type (eg. only `number` or `string`)"
	msgFuncParam            = "Function parameter is not supported"
	msgRegistryMethod       = "Invalid TurboModuleRegistry method"
	msgPropertySig          = "Property signature is not allowed. Use method signature instead"
	msgDuplicateModuleName  = "Duplicate module name"
	msgFloatEnumMember      = "Float number is not supported in enum"
	msgTypeParameters       = "Type parameters are not supported"
	msgNullablePromise      = "Promise type cannot be nullable"
	msgInvalidPromise       = "Invalid promise type"
)
