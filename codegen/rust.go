package codegen

import (
	"fmt"
	"strings"

	"github.com/l2hyunwoo/craby/internal/strcase"
	"github.com/l2hyunwoo/craby/ir"
)

// rustType maps a type descriptor to its Rust spelling as seen by user
// implementation code.
func rustType(td ir.TypeDescriptor) (string, error) {
	switch d := td.(type) {
	case *ir.PrimitiveDescriptor:
		switch d.Kind() {
		case ir.KindVoid:
			return "()", nil
		case ir.KindBoolean:
			return "bool", nil
		case ir.KindNumber:
			return "f64", nil
		case ir.KindString:
			return "String", nil
		}
	case *ir.ArrayDescriptor:
		elem, err := rustType(d.Element)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Vec<%s>", elem), nil
	case *ir.ObjectDescriptor:
		if d.Name == "" {
			return "", fmt.Errorf("object literal types are not supported; declare a named type alias")
		}
		return d.Name, nil
	case *ir.EnumDescriptor:
		return d.Name, nil
	case *ir.PromiseDescriptor:
		resolved, err := rustType(d.Resolved)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Result<%s, anyhow::Error>", resolved), nil
	case *ir.NullableDescriptor:
		base, err := rustType(d.Base)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Option<%s>", base), nil
	case *ir.RefDescriptor:
		return "", fmt.Errorf("unresolved type reference %s", d.Name)
	}
	return "", fmt.Errorf("unsupported type %s", td.Kind())
}

// rustExternType maps a descriptor to its spelling inside the cxx bridge.
// The bridge macro supplies its own error type, so Result carries only the
// success type there.
func rustExternType(td ir.TypeDescriptor) (string, error) {
	if p, ok := td.(*ir.PromiseDescriptor); ok {
		resolved, err := rustType(p.Resolved)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Result<%s>", resolved), nil
	}
	return rustType(td)
}

// rustParams renders "name: Type" pairs joined by ", ".
func rustParams(params []ir.Param) (string, error) {
	sigs := make([]string, 0, len(params))
	for _, p := range params {
		t, err := rustType(p.Type)
		if err != nil {
			return "", fmt.Errorf("parameter %s: %w", p.Name, err)
		}
		sigs = append(sigs, fmt.Sprintf("%s: %s", p.Name, t))
	}
	return strings.Join(sigs, ", "), nil
}

// rustReturn renders the return annotation, empty for unit returns.
func rustReturn(ret ir.TypeDescriptor, mapper func(ir.TypeDescriptor) (string, error)) (string, error) {
	t, err := mapper(ret)
	if err != nil {
		return "", err
	}
	if t == "()" {
		return "", nil
	}
	return " -> " + t, nil
}

// methodSig renders the Rust signature of a module method, e.g.
// "fn add(a: f64, b: f64) -> f64".
func methodSig(m ir.Method) (string, error) {
	params, err := rustParams(m.Params)
	if err != nil {
		return "", fmt.Errorf("method %s: %w", m.Name, err)
	}
	ret, err := rustReturn(m.Return, rustType)
	if err != nil {
		return "", fmt.Errorf("method %s return type: %w", m.Name, err)
	}
	return fmt.Sprintf("fn %s(%s)%s", strcase.SnakeCase(m.Name), params, ret), nil
}

// specTrait renders the trait declaring the module's method signatures.
//
//	pub trait CalculatorSpec {
//	    fn add(a: f64, b: f64) -> f64;
//	}
func specTrait(schema *ir.Schema) (string, error) {
	traitName := strcase.PascalCase(schema.ModuleName) + "Spec"

	sigs := make([]string, 0, len(schema.Methods))
	for _, m := range schema.Methods {
		sig, err := methodSig(m)
		if err != nil {
			return "", err
		}
		sigs = append(sigs, sig+";")
	}

	return fmt.Sprintf("pub trait %s {\n%s\n}", traitName, indent(strings.Join(sigs, "\n"), 4)), nil
}

// implStub renders the unimplemented module skeleton the user fills in.
//
//	use crate::{ffi::calculator::*, generated::*};
//
//	pub struct Calculator;
//
//	impl CalculatorSpec for Calculator {
//	    fn add(a: f64, b: f64) -> f64 {
//	        unimplemented!();
//	    }
//	}
func implStub(schema *ir.Schema) (string, error) {
	modName := strcase.PascalCase(schema.ModuleName)
	snakeName := strcase.SnakeCase(schema.ModuleName)
	traitName := modName + "Spec"

	bodies := make([]string, 0, len(schema.Methods))
	for _, m := range schema.Methods {
		sig, err := methodSig(m)
		if err != nil {
			return "", err
		}
		bodies = append(bodies, fmt.Sprintf("%s {\n    unimplemented!();\n}", sig))
	}

	return fmt.Sprintf(
		"use crate::{ffi::%s::*, generated::*};\n\npub struct %s;\n\nimpl %s for %s {\n%s\n}",
		snakeName, modName, traitName, modName,
		indent(strings.Join(bodies, "\n\n"), 4),
	), nil
}

// rustBridge renders the Rust side of the cxx bridge: extern declarations,
// their trampoline implementations, and shared struct/enum definitions.
func rustBridge(schema *ir.Schema) (RustBridge, error) {
	modName := strcase.PascalCase(schema.ModuleName)
	snakeMod := strcase.SnakeCase(schema.ModuleName)

	var externFuncs, implFuncs []string
	for _, m := range schema.Methods {
		params, err := rustParams(m.Params)
		if err != nil {
			return RustBridge{}, fmt.Errorf("method %s: %w", m.Name, err)
		}
		externRet, err := rustReturn(m.Return, rustExternType)
		if err != nil {
			return RustBridge{}, fmt.Errorf("method %s return type: %w", m.Name, err)
		}
		implRet, err := rustReturn(m.Return, rustType)
		if err != nil {
			return RustBridge{}, fmt.Errorf("method %s return type: %w", m.Name, err)
		}

		snakeFn := strcase.SnakeCase(m.Name)
		prefixed := fmt.Sprintf("%s_%s", snakeMod, snakeFn)

		args := make([]string, 0, len(m.Params))
		for _, p := range m.Params {
			args = append(args, p.Name)
		}

		externFuncs = append(externFuncs, fmt.Sprintf(
			"#[cxx_name = \"%s\"]\nfn %s(%s)%s;",
			m.Name, prefixed, params, externRet,
		))
		implFuncs = append(implFuncs, fmt.Sprintf(
			"fn %s(%s)%s {\n    %s::%s(%s)\n}",
			prefixed, params, implRet, modName, snakeFn, strings.Join(args, ", "),
		))
	}

	var structDefs []string
	for _, alias := range schema.AliasTypes {
		def, err := structDef(alias)
		if err != nil {
			return RustBridge{}, err
		}
		structDefs = append(structDefs, def)
	}

	enumDefs := make([]string, 0, len(schema.EnumTypes))
	for _, enum := range schema.EnumTypes {
		members := make([]string, 0, len(enum.Members))
		for _, member := range enum.Members {
			members = append(members, member.Name+",")
		}
		enumDefs = append(enumDefs, fmt.Sprintf(
			"enum %s {\n%s\n}", enum.Name, indent(strings.Join(members, "\n"), 4),
		))
	}

	return RustBridge{
		ExternFunc: strings.Join(externFuncs, "\n\n"),
		ImplFunc:   strings.Join(implFuncs, "\n\n"),
		StructDef:  strings.Join(structDefs, "\n\n"),
		EnumDef:    strings.Join(enumDefs, "\n\n"),
	}, nil
}

// structDef renders a shared struct definition for a record type.
func structDef(alias *ir.ObjectDescriptor) (string, error) {
	props := make([]string, 0, len(alias.Props))
	for _, p := range alias.Props {
		t, err := rustExternType(p.Type)
		if err != nil {
			return "", fmt.Errorf("record %s field %s: %w", alias.Name, p.Name, err)
		}
		props = append(props, fmt.Sprintf("%s: %s,", p.Name, t))
	}
	return fmt.Sprintf("struct %s {\n%s\n}", alias.Name, indent(strings.Join(props, "\n"), 4)), nil
}

// bridgeModule renders one module's #[cxx::bridge] block.
func bridgeModule(res *Result) string {
	flatName := strcase.FlatCase(res.ModuleName)
	return fmt.Sprintf(`#[cxx::bridge(namespace = "craby::%s")]
pub mod %s {
    // Type definitions
%s

%s

    extern "Rust" {
%s
    }
}`,
		flatName, res.FFIMod,
		indent(res.Bridge.StructDef, 4),
		indent(res.Bridge.EnumDef, 4),
		indent(res.Bridge.ExternFunc, 8),
	)
}

// LibRS renders src/lib.rs for the generated crate.
func LibRS(results []*Result) string {
	var b strings.Builder
	b.WriteString("pub(crate) mod ffi;\npub(crate) mod generated;\n")
	for _, res := range results {
		fmt.Fprintf(&b, "pub(crate) mod %s;\n", res.ImplMod)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// FFIRS renders src/ffi.rs: every module's bridge block plus the trampolines
// backing the extern declarations.
func FFIRS(results []*Result) string {
	var ffiMods, implMods, bridges, impls []string
	for _, res := range results {
		ffiMods = append(ffiMods, fmt.Sprintf("use %s::*;", res.FFIMod))
		implMods = append(implMods, fmt.Sprintf("use crate::%s::*;", res.ImplMod))
		bridges = append(bridges, bridgeModule(res))
		impls = append(impls, res.Bridge.ImplFunc)
	}

	return fmt.Sprintf("%s\n%s\nuse crate::generated::*;\n\n%s\n\n%s",
		strings.Join(ffiMods, "\n"),
		strings.Join(implMods, "\n"),
		strings.Join(bridges, "\n\n"),
		strings.Join(impls, "\n\n"),
	)
}

// GeneratedRS renders src/generated.rs: the spec traits for every module.
func GeneratedRS(results []*Result) string {
	var useMods, specs []string
	for _, res := range results {
		useMods = append(useMods, fmt.Sprintf("use crate::ffi::%s::*;", res.FFIMod))
		specs = append(specs, res.SpecCode)
	}
	return fmt.Sprintf("%s\n\n%s", strings.Join(useMods, "\n"), strings.Join(specs, "\n\n"))
}
