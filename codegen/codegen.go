// Package codegen transforms compiled module schemas into Rust host code and
// C++ JSI binding code. Generation is a pure function of the schema: the same
// schema always produces the same source text, and no I/O happens here.
package codegen

import (
	"fmt"

	"github.com/l2hyunwoo/craby/internal/strcase"
	"github.com/l2hyunwoo/craby/ir"
)

// Result bundles everything generated for a single module schema. The project
// layer assembles Results from all modules into concrete output files.
type Result struct {
	// ModuleName is the registered module name, e.g. "Calculator".
	ModuleName string

	// FFIMod is the Rust bridge module name, e.g. "calculator".
	FFIMod string

	// ImplMod is the Rust implementation module name, e.g. "calculator_impl".
	ImplMod string

	// SpecCode is the Rust trait declaring the module's method signatures.
	SpecCode string

	// ImplCode is the unimplemented Rust stub module. It is written once and
	// never overwritten, so user edits survive regeneration.
	ImplCode string

	// Bridge holds the Rust side of the cxx bridge.
	Bridge RustBridge

	// CxxMethods holds one JSI trampoline per module method.
	CxxMethods []CxxMethod

	// CxxBridgingTemplates holds the JSI bridging template specializations
	// for the module's record and enum types.
	CxxBridgingTemplates []string
}

// RustBridge holds the pieces of the generated cxx bridge module.
type RustBridge struct {
	// ExternFunc contains the extern "Rust" declarations, one per method.
	ExternFunc string

	// ImplFunc contains the trampoline functions backing the extern
	// declarations.
	ImplFunc string

	// StructDef contains the shared struct definitions.
	StructDef string

	// EnumDef contains the shared enum definitions.
	EnumDef string
}

// CxxMethod is one generated JSI method trampoline.
type CxxMethod struct {
	// Name is the method name as exposed to JavaScript.
	Name string

	// Metadata is the method map entry value, e.g.
	// "MethodMetadata{2, &CxxCalculator::add}".
	Metadata string

	// ImplFunc is the full C++ trampoline implementation.
	ImplFunc string
}

// Generator produces a Result from a schema.
type Generator struct{}

// NewGenerator returns a ready-to-use Generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate produces all Rust and C++ artifacts for the schema.
func (g *Generator) Generate(schema *ir.Schema) (*Result, error) {
	if errs := schema.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid schema %s: %w", schema.ModuleName, errs[0])
	}

	specCode, err := specTrait(schema)
	if err != nil {
		return nil, fmt.Errorf("generate spec for %s: %w", schema.ModuleName, err)
	}

	implCode, err := implStub(schema)
	if err != nil {
		return nil, fmt.Errorf("generate impl stub for %s: %w", schema.ModuleName, err)
	}

	bridge, err := rustBridge(schema)
	if err != nil {
		return nil, fmt.Errorf("generate bridge for %s: %w", schema.ModuleName, err)
	}

	methods := make([]CxxMethod, 0, len(schema.Methods))
	for _, m := range schema.Methods {
		cm, err := cxxMethod(schema.ModuleName, m)
		if err != nil {
			return nil, fmt.Errorf("generate trampoline for %s.%s: %w", schema.ModuleName, m.Name, err)
		}
		methods = append(methods, cm)
	}

	templates, err := bridgingTemplates(schema)
	if err != nil {
		return nil, fmt.Errorf("generate bridging templates for %s: %w", schema.ModuleName, err)
	}

	return &Result{
		ModuleName:           schema.ModuleName,
		FFIMod:               strcase.SnakeCase(schema.ModuleName),
		ImplMod:              ImplModName(schema.ModuleName),
		SpecCode:             specCode,
		ImplCode:             implCode,
		Bridge:               bridge,
		CxxMethods:           methods,
		CxxBridgingTemplates: templates,
	}, nil
}

// ImplModName returns the Rust module name of the user implementation file,
// e.g. "calculator_impl" for module "Calculator".
func ImplModName(moduleName string) string {
	return strcase.SnakeCase(moduleName) + "_impl"
}

// ClassName returns the C++ TurboModule class name, e.g. "CxxCalculator".
func ClassName(moduleName string) string {
	return "Cxx" + strcase.PascalCase(moduleName)
}

func bridgingTemplates(schema *ir.Schema) ([]string, error) {
	var templates []string

	for _, alias := range schema.AliasTypes {
		t, err := structBridgingTemplate(schema.ModuleName, alias)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}

	for _, enum := range schema.EnumTypes {
		t, err := enumBridgingTemplate(schema.ModuleName, enum)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}

	return templates, nil
}
