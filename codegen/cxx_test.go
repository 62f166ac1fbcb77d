package codegen

import (
	"strings"
	"testing"

	"github.com/l2hyunwoo/craby/ir"
)

func TestCxxType(t *testing.T) {
	tests := []struct {
		name string
		td   ir.TypeDescriptor
		want string
	}{
		{"boolean", ir.Boolean(), "bool"},
		{"number", ir.Number(), "double"},
		{"string", ir.String(), "std::string"},
		{"array", ir.Array(ir.Number()), "rust::Vec<double>"},
		{"object", ir.Object("User"), "craby::calculator::User"},
		{"enum", ir.Enum("Status"), "craby::calculator::Status"},
		{"nullable", ir.Nullable(ir.String()), "std::optional<std::string>"},
		{"array of object", ir.Array(ir.Object("User")), "rust::Vec<craby::calculator::User>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cxxType("Calculator", tt.td)
			if err != nil {
				t.Fatalf("cxxType() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("cxxType() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCxxTypeErrors(t *testing.T) {
	tests := []struct {
		name string
		td   ir.TypeDescriptor
	}{
		{"void", ir.Void()},
		{"anonymous object", ir.Object("")},
		{"unresolved ref", ir.Ref(1, "Missing")},
		{"bare promise", ir.Promise(ir.Number())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := cxxType("Calculator", tt.td); err == nil {
				t.Errorf("cxxType() expected error for %s", tt.name)
			}
		})
	}
}

func TestCxxMethodSync(t *testing.T) {
	m := ir.Method{
		Name: "add",
		Params: []ir.Param{
			{Name: "a", Type: ir.Number()},
			{Name: "b", Type: ir.Number()},
		},
		Return: ir.Number(),
	}

	got, err := cxxMethod("Calculator", m)
	if err != nil {
		t.Fatalf("cxxMethod() error = %v", err)
	}

	if got.Name != "add" {
		t.Errorf("Name = %q, want %q", got.Name, "add")
	}
	if got.Metadata != "MethodMetadata{2, &CxxCalculator::add}" {
		t.Errorf("Metadata = %q", got.Metadata)
	}

	for _, want := range []string{
		"jsi::Value CxxCalculator::add(jsi::Runtime &rt,",
		"auto &thisModule = static_cast<CxxCalculator &>(turboModule);",
		"if (2 != count) {",
		`throw jsi::JSError(rt, "Expected 2 arguments");`,
		"auto arg0 = react::bridging::fromJs<double>(rt, args[0], callInvoker);",
		"auto arg1 = react::bridging::fromJs<double>(rt, args[1], callInvoker);",
		"auto ret = craby::calculator::add(arg0, arg1);",
		"return react::bridging::toJs(rt, ret);",
		"} catch (const jsi::JSError &err) {",
		"throw jsi::JSError(rt, errorMessage(err));",
	} {
		if !strings.Contains(got.ImplFunc, want) {
			t.Errorf("ImplFunc missing %q in:\n%s", want, got.ImplFunc)
		}
	}
}

func TestCxxMethodStringReturn(t *testing.T) {
	m := ir.Method{
		Name:   "describe",
		Params: []ir.Param{{Name: "id", Type: ir.Number()}},
		Return: ir.String(),
	}

	got, err := cxxMethod("Calculator", m)
	if err != nil {
		t.Fatalf("cxxMethod() error = %v", err)
	}

	// Strings come back as rust::String and pass through std::string.
	if !strings.Contains(got.ImplFunc, "return react::bridging::toJs(rt, std::string(ret));") {
		t.Errorf("ImplFunc missing std::string wrap:\n%s", got.ImplFunc)
	}
	if !strings.Contains(got.ImplFunc, `throw jsi::JSError(rt, "Expected 1 argument");`) {
		t.Errorf("ImplFunc should use singular argument message:\n%s", got.ImplFunc)
	}
}

func TestCxxMethodVoidReturn(t *testing.T) {
	m := ir.Method{
		Name:   "reset",
		Params: nil,
		Return: ir.Void(),
	}

	got, err := cxxMethod("Calculator", m)
	if err != nil {
		t.Fatalf("cxxMethod() error = %v", err)
	}

	for _, want := range []string{
		"craby::calculator::reset();",
		"return jsi::Value::undefined();",
		"if (0 != count) {",
	} {
		if !strings.Contains(got.ImplFunc, want) {
			t.Errorf("ImplFunc missing %q in:\n%s", want, got.ImplFunc)
		}
	}
	if strings.Contains(got.ImplFunc, "auto ret =") {
		t.Errorf("void method should not bind a result:\n%s", got.ImplFunc)
	}
}

func TestCxxMethodPromise(t *testing.T) {
	m := ir.Method{
		Name:   "fetchUser",
		Params: []ir.Param{{Name: "id", Type: ir.Number()}},
		Return: ir.Promise(ir.Object("User")),
	}

	got, err := cxxMethod("Calculator", m)
	if err != nil {
		t.Fatalf("cxxMethod() error = %v", err)
	}

	for _, want := range []string{
		"react::AsyncPromise<craby::calculator::User> promise(rt, callInvoker);",
		"std::thread([promise, arg0]() mutable {",
		"auto ret = craby::calculator::fetchUser(arg0);",
		"promise.resolve(ret);",
		"promise.reject(err.getMessage());",
		"promise.reject(errorMessage(err));",
		"}).detach();",
		"return react::bridging::toJs(rt, promise);",
	} {
		if !strings.Contains(got.ImplFunc, want) {
			t.Errorf("ImplFunc missing %q in:\n%s", want, got.ImplFunc)
		}
	}
}

func TestCxxMethodPromiseOfVoidRejected(t *testing.T) {
	m := ir.Method{
		Name:   "flush",
		Return: ir.Promise(ir.Void()),
	}

	if _, err := cxxMethod("Calculator", m); err == nil {
		t.Errorf("cxxMethod() expected error for promise of void")
	}
}

func TestStructBridgingTemplate(t *testing.T) {
	user := ir.Object("User",
		ir.Prop{Name: "name", Type: ir.String()},
		ir.Prop{Name: "age", Type: ir.Number()},
	)

	got, err := structBridgingTemplate("Calculator", user)
	if err != nil {
		t.Fatalf("structBridgingTemplate() error = %v", err)
	}

	for _, want := range []string{
		"struct Bridging<craby::calculator::User> {",
		`auto obj$name = obj.getProperty(rt, "name");`,
		`auto obj$age = obj.getProperty(rt, "age");`,
		"auto _obj$name = react::bridging::fromJs<std::string>(rt, obj$name, callInvoker);",
		"auto _obj$age = react::bridging::fromJs<double>(rt, obj$age, callInvoker);",
		"craby::calculator::User ret = {",
		"auto _obj$name = react::bridging::toJs(rt, std::string(value.name));",
		`obj.setProperty(rt, "name", _obj$name);`,
		"return jsi::Value(rt, obj);",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("template missing %q in:\n%s", want, got)
		}
	}

	// Fields convert in declaration order.
	if strings.Index(got, "obj$name") > strings.Index(got, "obj$age") {
		t.Errorf("fields out of declaration order:\n%s", got)
	}
}

func TestEnumBridgingTemplateString(t *testing.T) {
	status := ir.Enum("Status",
		ir.StringMember("Active", "active"),
		ir.StringMember("Inactive", "inactive"),
	)

	got, err := enumBridgingTemplate("Calculator", status)
	if err != nil {
		t.Fatalf("enumBridgingTemplate() error = %v", err)
	}

	for _, want := range []string{
		"struct Bridging<craby::calculator::Status> {",
		"auto raw = value.asString(rt).utf8(rt);",
		`if (raw == "active") {`,
		"return craby::calculator::Status::Active;",
		`} else if (raw == "inactive") {`,
		"case craby::calculator::Status::Active:",
		`return react::bridging::toJs(rt, "active");`,
		`throw jsi::JSError(rt, "Invalid enum value (Status)");`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("template missing %q in:\n%s", want, got)
		}
	}
}

func TestEnumBridgingTemplateNumber(t *testing.T) {
	level := ir.Enum("Level",
		ir.NumberMember("Low", 0),
		ir.NumberMember("High", 10),
	)

	got, err := enumBridgingTemplate("Calculator", level)
	if err != nil {
		t.Fatalf("enumBridgingTemplate() error = %v", err)
	}

	for _, want := range []string{
		"auto raw = value.asNumber();",
		"if (raw == 0) {",
		"} else if (raw == 10) {",
		"return react::bridging::toJs(rt, 10);",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("template missing %q in:\n%s", want, got)
		}
	}
}

func TestModuleHpp(t *testing.T) {
	gen := NewGenerator()
	res, err := gen.Generate(calculatorSchema())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	got := ModuleHpp(res)
	for _, want := range []string{
		"#pragma once",
		"namespace calculator {",
		"class JSI_EXPORT CxxCalculator : public facebook::react::TurboModule {",
		`static constexpr const char *kModuleName = "Calculator";`,
		"CxxCalculator(std::shared_ptr<facebook::react::CallInvoker> jsInvoker);",
		"add(facebook::jsi::Runtime &rt,",
		"std::shared_ptr<facebook::react::CallInvoker> callInvoker_;",
		"} // namespace craby",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("ModuleHpp() missing %q in:\n%s", want, got)
		}
	}
}

func TestModuleCpp(t *testing.T) {
	gen := NewGenerator()
	res, err := gen.Generate(calculatorSchema())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	got := ModuleCpp([]*Result{res})
	for _, want := range []string{
		`#include "CxxCalculator.hpp"`,
		"#include <thread>",
		`#include "bridging-generated.hpp"`,
		"namespace calculator {",
		"CxxCalculator::CxxCalculator(",
		": TurboModule(CxxCalculator::kModuleName, jsInvoker) {",
		"callInvoker_ = std::move(jsInvoker);",
		`methodMap_["add"] = MethodMetadata{2, &CxxCalculator::add};`,
		`methodMap_["greet"] = MethodMetadata{1, &CxxCalculator::greet};`,
		"jsi::Value CxxCalculator::add(jsi::Runtime &rt,",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("ModuleCpp() missing %q in:\n%s", want, got)
		}
	}
}

func TestBridgingHpp(t *testing.T) {
	gen := NewGenerator()
	res, err := gen.Generate(calculatorSchema())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	got := BridgingHpp([]*Result{res})
	for _, want := range []string{
		"#pragma once",
		"struct Bridging<rust::Vec<T>> {",
		"struct Bridging<craby::calculator::User> {",
		"struct Bridging<craby::calculator::Status> {",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("BridgingHpp() missing %q in:\n%s", want, got)
		}
	}
}

func TestBridgingHppNoTemplates(t *testing.T) {
	schema := &ir.Schema{
		ModuleName: "Empty",
		Methods: []ir.Method{
			{Name: "ping", Return: ir.Void()},
		},
	}

	gen := NewGenerator()
	res, err := gen.Generate(schema)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	got := BridgingHpp([]*Result{res})
	if !strings.Contains(got, "struct Bridging<rust::Vec<T>> {") {
		t.Errorf("BridgingHpp() should always carry the rust::Vec template:\n%s", got)
	}
	if strings.Contains(got, "template <>") {
		t.Errorf("BridgingHpp() should have no specializations for an empty schema:\n%s", got)
	}
}
