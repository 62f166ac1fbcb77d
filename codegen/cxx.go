package codegen

import (
	"fmt"
	"strings"

	"github.com/l2hyunwoo/craby/internal/strcase"
	"github.com/l2hyunwoo/craby/ir"
)

// cxxType maps a type descriptor to its C++ spelling at the bridge boundary.
// Module-scoped types are qualified with the module's bridge namespace.
func cxxType(moduleName string, td ir.TypeDescriptor) (string, error) {
	switch d := td.(type) {
	case *ir.PrimitiveDescriptor:
		switch d.Kind() {
		case ir.KindBoolean:
			return "bool", nil
		case ir.KindNumber:
			return "double", nil
		case ir.KindString:
			return "std::string", nil
		}
	case *ir.ArrayDescriptor:
		elem, err := cxxType(moduleName, d.Element)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("rust::Vec<%s>", elem), nil
	case *ir.ObjectDescriptor:
		if d.Name == "" {
			return "", fmt.Errorf("object literal types are not supported; declare a named type alias")
		}
		return fmt.Sprintf("craby::%s::%s", strcase.FlatCase(moduleName), d.Name), nil
	case *ir.EnumDescriptor:
		return fmt.Sprintf("craby::%s::%s", strcase.FlatCase(moduleName), d.Name), nil
	case *ir.NullableDescriptor:
		base, err := cxxType(moduleName, d.Base)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("std::optional<%s>", base), nil
	case *ir.RefDescriptor:
		return "", fmt.Errorf("unresolved type reference %s", d.Name)
	}
	return "", fmt.Errorf("type %s is not representable at the bridge boundary", td.Kind())
}

// fromJsExpr renders the conversion of a JSI value into its bridge type.
func fromJsExpr(moduleName string, td ir.TypeDescriptor, ident string) (string, error) {
	t, err := cxxType(moduleName, td)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("react::bridging::fromJs<%s>(rt, %s, callInvoker)", t, ident), nil
}

// toJsExpr renders the conversion of a bridge value back into a JSI value.
// Strings cross the bridge as rust::String and need an std::string wrap
// before the bridging overload applies.
func toJsExpr(td ir.TypeDescriptor, ident string) string {
	if td.Kind() == ir.KindString {
		return fmt.Sprintf("react::bridging::toJs(rt, std::string(%s))", ident)
	}
	return fmt.Sprintf("react::bridging::toJs(rt, %s)", ident)
}

// cxxMethod renders the JSI trampoline for one module method: argument count
// check, per-argument conversion, native invocation, result conversion.
// Promise-returning methods run the native call on a detached thread and
// settle an async promise exactly once.
func cxxMethod(moduleName string, m ir.Method) (CxxMethod, error) {
	flatName := strcase.FlatCase(moduleName)
	clsName := ClassName(moduleName)

	argVars := make([]string, 0, len(m.Params))
	argDecls := make([]string, 0, len(m.Params))
	for i, p := range m.Params {
		fromJs, err := fromJsExpr(moduleName, p.Type, fmt.Sprintf("args[%d]", i))
		if err != nil {
			return CxxMethod{}, fmt.Errorf("parameter %s: %w", p.Name, err)
		}
		argVar := fmt.Sprintf("arg%d", i)
		argVars = append(argVars, argVar)
		argDecls = append(argDecls, fmt.Sprintf("auto %s = %s;", argVar, fromJs))
	}

	call := fmt.Sprintf("craby::%s::%s(%s)", flatName, m.Name, strings.Join(argVars, ", "))

	var invoke string
	switch ret := m.Return.(type) {
	case *ir.PromiseDescriptor:
		resolvedType, err := cxxType(moduleName, ret.Resolved)
		if err != nil {
			return CxxMethod{}, fmt.Errorf("promise resolution type: %w", err)
		}
		bindArgs := append([]string{"promise"}, argVars...)
		invoke = fmt.Sprintf(`react::AsyncPromise<%s> promise(rt, callInvoker);

std::thread([%s]() mutable {
  try {
    auto ret = %s;
    promise.resolve(ret);
  } catch (const jsi::JSError &err) {
    promise.reject(err.getMessage());
  } catch (const std::exception &err) {
    promise.reject(errorMessage(err));
  }
}).detach();

return %s;`,
			resolvedType,
			strings.Join(bindArgs, ", "),
			call,
			toJsExpr(ret, "promise"),
		)
	default:
		if m.Return.Kind() == ir.KindVoid {
			invoke = fmt.Sprintf("%s;\n\nreturn jsi::Value::undefined();", call)
		} else {
			invoke = fmt.Sprintf("auto ret = %s;\n\nreturn %s;", call, toJsExpr(m.Return, "ret"))
		}
	}

	plural := "s"
	if len(m.Params) == 1 {
		plural = ""
	}

	implFunc := fmt.Sprintf(`jsi::Value %s::%s(jsi::Runtime &rt,
                                react::TurboModule &turboModule,
                                const jsi::Value args[],
                                size_t count) {
  auto &thisModule = static_cast<%s &>(turboModule);
  auto callInvoker = thisModule.callInvoker_;

  try {
    if (%d != count) {
      throw jsi::JSError(rt, "Expected %d argument%s");
    }

%s
%s
  } catch (const jsi::JSError &err) {
    throw err;
  } catch (const std::exception &err) {
    throw jsi::JSError(rt, errorMessage(err));
  }
}`,
		clsName, m.Name,
		clsName,
		len(m.Params), len(m.Params), plural,
		indent(strings.Join(argDecls, "\n"), 4),
		indent(invoke, 4),
	)

	return CxxMethod{
		Name:     m.Name,
		Metadata: fmt.Sprintf("MethodMetadata{%d, &%s::%s}", len(m.Params), clsName, m.Name),
		ImplFunc: implFunc,
	}, nil
}

// cxxMethodDef renders the static method declaration for the class header.
func cxxMethodDef(name string) string {
	return fmt.Sprintf(`static facebook::jsi::Value
%s(facebook::jsi::Runtime &rt,
    facebook::react::TurboModule &turboModule,
    const facebook::jsi::Value args[], size_t count);`, name)
}

// structBridgingTemplate renders the Bridging specialization for a record
// type. Decoding reads each property into a temporary in declaration order
// before constructing the bridge struct; encoding does the reverse.
func structBridgingTemplate(moduleName string, alias *ir.ObjectDescriptor) (string, error) {
	structType := fmt.Sprintf("craby::%s::%s", strcase.FlatCase(moduleName), alias.Name)

	var getProps, setProps, fromJsStmts, fromJsIdents, toJsStmts []string
	for _, prop := range alias.Props {
		ident := "obj$" + prop.Name
		converted := "_" + ident

		fromJs, err := fromJsExpr(moduleName, prop.Type, ident)
		if err != nil {
			return "", fmt.Errorf("record %s field %s: %w", alias.Name, prop.Name, err)
		}

		getProps = append(getProps, fmt.Sprintf("auto %s = obj.getProperty(rt, \"%s\");", ident, prop.Name))
		fromJsStmts = append(fromJsStmts, fmt.Sprintf("auto %s = %s;", converted, fromJs))
		fromJsIdents = append(fromJsIdents, converted)
		setProps = append(setProps, fmt.Sprintf("obj.setProperty(rt, \"%s\", %s);", prop.Name, converted))
		toJsStmts = append(toJsStmts, fmt.Sprintf("auto %s = %s;", converted, toJsExpr(prop.Type, "value."+prop.Name)))
	}

	fromJsImpl := fmt.Sprintf(`auto obj = value.asObject(rt);
%s

%s

%s ret = {
%s
};

return ret;`,
		strings.Join(getProps, "\n"),
		strings.Join(fromJsStmts, "\n"),
		structType,
		indent(strings.Join(fromJsIdents, ",\n"), 2),
	)

	toJsImpl := fmt.Sprintf(`jsi::Object obj = jsi::Object(rt);
%s

%s

return jsi::Value(rt, obj);`,
		strings.Join(toJsStmts, "\n"),
		strings.Join(setProps, "\n"),
	)

	return bridgingTemplate(structType, fromJsImpl, toJsImpl), nil
}

// enumBridgingTemplate renders the Bridging specialization for an enum.
// Decoding tests the raw value against each member in declaration order;
// no match throws a conversion error naming the enum, and so does an
// unmapped tag when encoding.
func enumBridgingTemplate(moduleName string, enum *ir.EnumDescriptor) (string, error) {
	enumType := fmt.Sprintf("craby::%s::%s", strcase.FlatCase(moduleName), enum.Name)

	var asRaw string
	switch enum.MemberKind() {
	case ir.KindString:
		asRaw = "value.asString(rt).utf8(rt)"
	case ir.KindNumber:
		asRaw = "value.asNumber()"
	}

	var fromJsConds, toJsConds []string
	for i, member := range enum.Members {
		raw, err := rawMemberValue(enum, member)
		if err != nil {
			return "", err
		}
		memberRef := fmt.Sprintf("%s::%s", enumType, member.Name)

		keyword := "if"
		if i > 0 {
			keyword = "else if"
		}
		fromJsConds = append(fromJsConds, fmt.Sprintf("%s (raw == %s) {\n  return %s;\n}", keyword, raw, memberRef))
		toJsConds = append(toJsConds, fmt.Sprintf("case %s:\n  return react::bridging::toJs(rt, %s);", memberRef, raw))
	}

	fromJsConds = append(fromJsConds, fmt.Sprintf("else {\n  throw jsi::JSError(rt, \"Invalid enum value (%s)\");\n}", enum.Name))
	toJsConds = append(toJsConds, fmt.Sprintf("default:\n  throw jsi::JSError(rt, \"Invalid enum value (%s)\");", enum.Name))

	fromJsImpl := fmt.Sprintf("auto raw = %s;\n%s", asRaw, strings.Join(fromJsConds, " "))
	toJsImpl := fmt.Sprintf("switch (value) {\n%s\n}", indent(strings.Join(toJsConds, "\n"), 2))

	return bridgingTemplate(enumType, fromJsImpl, toJsImpl), nil
}

// rawMemberValue renders an enum member's raw value as a C++ literal.
func rawMemberValue(enum *ir.EnumDescriptor, member ir.EnumMember) (string, error) {
	switch v := member.Value.(type) {
	case string:
		return fmt.Sprintf("%q", v), nil
	case int64:
		return fmt.Sprintf("%d", v), nil
	}
	return "", fmt.Errorf("enum %s member %s has no raw value", enum.Name, member.Name)
}

// bridgingTemplate renders a Bridging<T> specialization with the given
// conversion bodies.
func bridgingTemplate(targetType, fromJsImpl, toJsImpl string) string {
	return fmt.Sprintf(`template <>
struct Bridging<%s> {
  static %s fromJs(jsi::Runtime &rt, const jsi::Value& value, std::shared_ptr<CallInvoker> callInvoker) {
%s
  }

  static jsi::Value toJs(jsi::Runtime &rt, %s value) {
%s
  }
};`,
		targetType,
		targetType,
		indent(fromJsImpl, 4),
		targetType,
		indent(toJsImpl, 4),
	)
}

// ModuleCpp renders the TurboModule implementation source file covering every
// generated module.
func ModuleCpp(results []*Result) string {
	var headers, namespaces []string
	for _, res := range results {
		flatName := strcase.FlatCase(res.ModuleName)
		clsName := ClassName(res.ModuleName)

		methodMaps := make([]string, 0, len(res.CxxMethods))
		methodImpls := make([]string, 0, len(res.CxxMethods))
		for _, method := range res.CxxMethods {
			methodMaps = append(methodMaps, fmt.Sprintf("methodMap_[\"%s\"] = %s;", method.Name, method.Metadata))
			methodImpls = append(methodImpls, method.ImplFunc)
		}

		headers = append(headers, fmt.Sprintf("#include \"%s.hpp\"", clsName))
		namespaces = append(namespaces, fmt.Sprintf(`namespace %s {

%s::%s(
    std::shared_ptr<react::CallInvoker> jsInvoker)
    : TurboModule(%s::kModuleName, jsInvoker) {
  callInvoker_ = std::move(jsInvoker);

%s
}

%s

} // namespace %s`,
			flatName,
			clsName, clsName,
			clsName,
			indent(strings.Join(methodMaps, "\n"), 2),
			strings.Join(methodImpls, "\n\n"),
			flatName,
		))
	}

	return fmt.Sprintf(`%s

#include <thread>
#include <react/bridging/Bridging.h>

#include "cxx.h"
#include "ffi.rs.h"
#include "bridging-generated.hpp"
#include "utils.hpp"

using namespace facebook;

namespace craby {
%s
} // namespace craby`,
		strings.Join(headers, "\n"),
		strings.Join(namespaces, "\n"),
	)
}

// ModuleHpp renders the TurboModule class declaration header for one module.
func ModuleHpp(res *Result) string {
	flatName := strcase.FlatCase(res.ModuleName)
	clsName := ClassName(res.ModuleName)

	methodDefs := make([]string, 0, len(res.CxxMethods))
	for _, method := range res.CxxMethods {
		methodDefs = append(methodDefs, cxxMethodDef(method.Name))
	}

	return fmt.Sprintf(`#pragma once

#include <memory>
#include <ReactCommon/TurboModule.h>
#include <jsi/jsi.h>

namespace craby {
namespace %s {

class JSI_EXPORT %s : public facebook::react::TurboModule {
public:
  static constexpr const char *kModuleName = "%s";

  %s(std::shared_ptr<facebook::react::CallInvoker> jsInvoker);

%s

protected:
  std::shared_ptr<facebook::react::CallInvoker> callInvoker_;
};

} // namespace %s
} // namespace craby`,
		flatName,
		clsName,
		res.ModuleName,
		clsName,
		indent(strings.Join(methodDefs, "\n\n"), 2),
		flatName,
	)
}

// BridgingHpp renders the JSI bridging header: the generic rust::Vec
// specialization plus every module's record and enum templates.
func BridgingHpp(results []*Result) string {
	var templates []string
	for _, res := range results {
		templates = append(templates, res.CxxBridgingTemplates...)
	}

	section := ""
	if len(templates) > 0 {
		section = "\n" + strings.Join(templates, "\n\n") + "\n"
	}

	return fmt.Sprintf(`#pragma once

#include <react/bridging/Bridging.h>
#include "cxx.h"
#include "ffi.rs.h"

using namespace facebook;

namespace facebook {
namespace react {

template <typename T>
struct Bridging<rust::Vec<T>> {
  static rust::Vec<T> fromJs(jsi::Runtime& rt, const jsi::Value &value, std::shared_ptr<CallInvoker> callInvoker) {
    auto arr = value.asObject(rt).asArray(rt);
    size_t len = arr.length(rt);
    rust::Vec<T> vec;
    vec.reserve(len);

    for (size_t i = 0; i < len; i++) {
      auto element = arr.getValueAtIndex(rt, i);
      vec.push_back(react::bridging::fromJs<T>(rt, element, callInvoker));
    }

    return vec;
  }

  static jsi::Array toJs(jsi::Runtime& rt, const rust::Vec<T>& vec) {
    auto arr = jsi::Array(rt, vec.size());

    for (size_t i = 0; i < vec.size(); i++) {
      auto jsElement = react::bridging::toJs(rt, vec[i]);
      arr.setValueAtIndex(rt, i, jsElement);
    }

    return arr;
  }
};
%s
} // namespace react
} // namespace facebook`, section)
}
