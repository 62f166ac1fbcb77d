package analyzer

import (
	"strings"
	"testing"

	"github.com/l2hyunwoo/craby/ir"
)

func analyzeOK(t *testing.T, src string) []*ir.Schema {
	t.Helper()
	schemas, diags, err := AnalyzeSource("NativeTest.ts", src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(diags) > 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	return schemas
}

// analyzeFail asserts the unit produced no schemas and returns whatever
// diagnostics it reported.
func analyzeFail(t *testing.T, src string) []Diagnostic {
	t.Helper()
	schemas, diags, err := AnalyzeSource("NativeTest.ts", src)
	if err != nil {
		return nil
	}
	if len(diags) == 0 {
		t.Fatalf("expected diagnostics, got schemas: %v", schemas)
	}
	if schemas != nil {
		t.Fatalf("diagnostics and schemas returned together: %v / %v", diags, schemas)
	}
	return diags
}

func hasDiagnostic(diags []Diagnostic, substr string) bool {
	for _, d := range diags {
		if strings.Contains(d.Message, substr) {
			return true
		}
	}
	return false
}

func TestCommonSpec(t *testing.T) {
	schemas := analyzeOK(t, `
	import type { TurboModule } from 'react-native';
	import { TurboModuleRegistry } from 'react-native';

	export interface TestObject {
		foo: string;
		bar: number;
		baz: boolean;
		sub: SubObject | null;
	}

	export type SubObject = {
		a: string | null;
		b: number;
		c: boolean;
	};

	export type MaybeNumber = number | null;

	export enum MyEnum {
		Foo = 'foo',
		Bar = 'bar',
		Baz = 'baz',
	}

	export enum SwitchState {
		Off = 0,
		On = 1,
	}

	export interface Spec extends TurboModule {
		numericMethod(arg: number): number;
		booleanMethod(arg: boolean): boolean;
		stringMethod(arg: string): string;
		objectMethod(arg: TestObject): TestObject;
		arrayMethod(arg: number[]): number[];
		enumMethod(arg0: MyEnum, arg1: SwitchState): string;
		nullableMethod(arg: number | null): MaybeNumber;
		promiseMethod(arg: number): Promise<number>;
	}

	export default TurboModuleRegistry.getEnforcing<Spec>('CrabyTest');
	`)
	if len(schemas) != 1 {
		t.Fatalf("got %d schemas, want 1", len(schemas))
	}
	s := schemas[0]
	if s.ModuleName != "CrabyTest" {
		t.Errorf("module name = %q, want CrabyTest", s.ModuleName)
	}
	if len(s.Methods) != 8 {
		t.Fatalf("got %d methods, want 8", len(s.Methods))
	}

	// Reachable object types, sorted by name.
	wantAliases := []string{"SubObject", "TestObject"}
	if len(s.AliasTypes) != len(wantAliases) {
		t.Fatalf("alias types = %v, want %v", names(s.AliasTypes), wantAliases)
	}
	for i, want := range wantAliases {
		if s.AliasTypes[i].Name != want {
			t.Errorf("AliasTypes[%d] = %q, want %q", i, s.AliasTypes[i].Name, want)
		}
	}
	wantEnums := []string{"MyEnum", "SwitchState"}
	for i, want := range wantEnums {
		if s.EnumTypes[i].Name != want {
			t.Errorf("EnumTypes[%d] = %q, want %q", i, s.EnumTypes[i].Name, want)
		}
	}

	// objectMethod's parameter resolved transitively: TestObject.sub is a
	// nullable SubObject, not a Ref.
	objArg := s.Methods[3].Params[0].Type
	obj, ok := objArg.(*ir.ObjectDescriptor)
	if !ok {
		t.Fatalf("objectMethod arg = %T, want *ir.ObjectDescriptor", objArg)
	}
	sub, ok := obj.Props[3].Type.(*ir.NullableDescriptor)
	if !ok {
		t.Fatalf("TestObject.sub = %T, want *ir.NullableDescriptor", obj.Props[3].Type)
	}
	if inner, ok := sub.Base.(*ir.ObjectDescriptor); !ok || inner.Name != "SubObject" {
		t.Errorf("TestObject.sub base = %#v, want SubObject object", sub.Base)
	}
	if ir.ContainsRef(objArg) {
		t.Error("resolved method signature still contains Ref nodes")
	}

	// nullableMethod's return resolves the MaybeNumber alias.
	ret := s.Methods[6].Return
	nd, ok := ret.(*ir.NullableDescriptor)
	if !ok || nd.Base.Kind() != ir.KindNumber {
		t.Errorf("nullableMethod return = %#v, want Nullable(Number)", ret)
	}

	// promiseMethod keeps its promise shape.
	if pd, ok := s.Methods[7].Return.(*ir.PromiseDescriptor); !ok || pd.Resolved.Kind() != ir.KindNumber {
		t.Errorf("promiseMethod return = %#v, want Promise(Number)", s.Methods[7].Return)
	}
}

func names(objs []*ir.ObjectDescriptor) []string {
	out := make([]string, len(objs))
	for i, o := range objs {
		out[i] = o.Name
	}
	return out
}

func TestMinimalSpec(t *testing.T) {
	schemas := analyzeOK(t, `
	import { TurboModuleRegistry } from 'react-native';
	import type { TurboModule } from 'react-native';

	export interface Spec extends TurboModule {
		myMethod(): void;
	}

	export default TurboModuleRegistry.getEnforcing<Spec>('MyModule');
	`)
	if len(schemas) != 1 {
		t.Fatalf("got %d schemas, want 1", len(schemas))
	}
	if schemas[0].ModuleName != "MyModule" {
		t.Errorf("module name = %q", schemas[0].ModuleName)
	}
	m := schemas[0].Methods[0]
	if m.Name != "myMethod" || len(m.Params) != 0 || m.Return.Kind() != ir.KindVoid {
		t.Errorf("method = %+v", m)
	}
}

func TestSpecInterfaceWithNamespace(t *testing.T) {
	schemas := analyzeOK(t, `
	import type * as ReactNative from 'react-native';

	export interface Spec extends ReactNative.TurboModule {
		myMethod(): void;
	}

	export default ReactNative.TurboModuleRegistry.getEnforcing<Spec>('MyModule');
	`)
	if len(schemas) != 1 {
		t.Fatalf("got %d schemas, want 1", len(schemas))
	}
	if schemas[0].ModuleName != "MyModule" {
		t.Errorf("module name = %q, want MyModule", schemas[0].ModuleName)
	}
}

func TestMultipleSpecs(t *testing.T) {
	schemas := analyzeOK(t, `
	import { TurboModuleRegistry } from 'react-native';
	import type { TurboModule } from 'react-native';

	type Common = { value: number };

	export interface Spec1 extends TurboModule {
		foo(arg: Common): void;
	}

	export interface Spec2 extends TurboModule {
		bar(arg: Common): void;
	}

	export const Foo = TurboModuleRegistry.getEnforcing<Spec1>('FooModule');
	export const Bar = TurboModuleRegistry.getEnforcing<Spec2>('BarModule');
	`)
	if len(schemas) != 2 {
		t.Fatalf("got %d schemas, want 2", len(schemas))
	}
	// Sorted by module name.
	if schemas[0].ModuleName != "BarModule" || schemas[1].ModuleName != "FooModule" {
		t.Errorf("schema order = [%q %q], want [BarModule FooModule]",
			schemas[0].ModuleName, schemas[1].ModuleName)
	}
	for _, s := range schemas {
		if len(s.AliasTypes) != 1 || s.AliasTypes[0].Name != "Common" {
			t.Errorf("%s alias types = %v, want [Common]", s.ModuleName, names(s.AliasTypes))
		}
	}
}

func TestInterfaceExtendingUnknownMarker(t *testing.T) {
	diags := analyzeFail(t, `
	import { TurboModuleRegistry } from 'react-native';
	import type { Unknown } from 'react-native';

	export interface Spec extends Unknown {
		myMethod(): void;
	}

	export default TurboModuleRegistry.getEnforcing<Spec>('MyModule');
	`)
	if !hasDiagnostic(diags, "Invalid specification") {
		t.Errorf("diags = %v", diags)
	}
}

func TestInterfaceWithoutMarker(t *testing.T) {
	diags := analyzeFail(t, `
	import { TurboModuleRegistry } from 'react-native';

	export interface Spec {
		myMethod(): void;
	}

	export default TurboModuleRegistry.getEnforcing<Spec>('MyModule');
	`)
	if !hasDiagnostic(diags, "Invalid specification") {
		t.Errorf("diags = %v", diags)
	}
}

func TestRegistrationGenericMissingDecl(t *testing.T) {
	diags := analyzeFail(t, `
	import { TurboModuleRegistry } from 'react-native';
	import type { TurboModule } from 'react-native';

	export interface Spec extends TurboModule {
		myMethod(): void;
	}

	export default TurboModuleRegistry.getEnforcing<Unknown>('MyModule');
	`)
	if !hasDiagnostic(diags, "Invalid specification type reference") {
		t.Errorf("diags = %v", diags)
	}
}

func TestRegistrationGenericCount(t *testing.T) {
	diags := analyzeFail(t, `
	import { TurboModuleRegistry } from 'react-native';
	import type { TurboModule } from 'react-native';

	export interface Spec extends TurboModule {
		myMethod(): void;
	}

	export default TurboModuleRegistry.getEnforcing<Spec, Spec>('MyModule');
	`)
	if !hasDiagnostic(diags, "must be exactly one") {
		t.Errorf("diags = %v", diags)
	}
}

func TestRegistrationWithoutGeneric(t *testing.T) {
	diags := analyzeFail(t, `
	import { TurboModuleRegistry } from 'react-native';
	import type { TurboModule } from 'react-native';

	export interface Spec extends TurboModule {
		myMethod(): void;
	}

	export default TurboModuleRegistry.getEnforcing('MyModule');
	`)
	if !hasDiagnostic(diags, "generic argument is required") {
		t.Errorf("diags = %v", diags)
	}
}

func TestNonRegistryObject(t *testing.T) {
	// Something is not the registry symbol, so the call is not a
	// registration and the spec interface is never registered.
	_, diags, err := AnalyzeSource("NativeTest.ts", `
	import { Something } from 'react-native';
	import type { TurboModule } from 'react-native';

	export interface Spec extends TurboModule {
		myMethod(): void;
	}

	export default Something.getEnforcing<Spec>('MyModule');
	`)
	if err == nil && len(diags) == 0 {
		t.Fatal("expected a failure for an unregistered spec interface")
	}
}

func TestInvalidRegistryMethod(t *testing.T) {
	diags := analyzeFail(t, `
	import { TurboModuleRegistry } from 'react-native';
	import type { TurboModule } from 'react-native';

	export interface Spec extends TurboModule {
		myMethod(): void;
	}

	export default TurboModuleRegistry.foo<Spec>('MyModule');
	`)
	if !hasDiagnostic(diags, "Invalid TurboModuleRegistry method") {
		t.Errorf("diags = %v", diags)
	}
}

func TestDuplicateModuleName(t *testing.T) {
	diags := analyzeFail(t, `
	import { TurboModuleRegistry } from 'react-native';
	import type { TurboModule } from 'react-native';

	export interface Spec extends TurboModule {
		myMethod(): void;
	}

	export const Foo = TurboModuleRegistry.getEnforcing<Spec>('MyModule');
	export const Bar = TurboModuleRegistry.getEnforcing<Spec>('MyModule');
	`)
	if !hasDiagnostic(diags, "Duplicate module name") {
		t.Errorf("diags = %v", diags)
	}
}

func TestMixedEnumMembers(t *testing.T) {
	diags := analyzeFail(t, `
	import { TurboModuleRegistry } from 'react-native';
	import type { TurboModule } from 'react-native';

	enum MyEnum {
		Foo = 'foo',
		Bar = 1
	}

	export interface Spec extends TurboModule {
		myMethod(arg: MyEnum): void;
	}

	export default TurboModuleRegistry.getEnforcing<Spec>('MyModule');
	`)
	if !hasDiagnostic(diags, "Enum member type must be single type") {
		t.Errorf("diags = %v", diags)
	}
}

func TestFloatEnumMember(t *testing.T) {
	diags := analyzeFail(t, `
	import { TurboModuleRegistry } from 'react-native';
	import type { TurboModule } from 'react-native';

	enum MyEnum {
		Foo = 1,
		Bar = 3.14
	}

	export interface Spec extends TurboModule {
		myMethod(arg: MyEnum): void;
	}

	export default TurboModuleRegistry.getEnforcing<Spec>('MyModule');
	`)
	if !hasDiagnostic(diags, "Float number is not supported in enum") {
		t.Errorf("diags = %v", diags)
	}
}

func TestSequentialEnumNumbering(t *testing.T) {
	schemas := analyzeOK(t, `
	import { TurboModuleRegistry } from 'react-native';
	import type { TurboModule } from 'react-native';

	enum Level {
		Zero,
		One,
		Five = 5,
		Six,
		Seven,
	}

	export interface Spec extends TurboModule {
		myMethod(arg: Level): void;
	}

	export default TurboModuleRegistry.getEnforcing<Spec>('MyModule');
	`)
	want := []struct {
		name  string
		value int64
	}{
		{"Zero", 0}, {"One", 1}, {"Five", 5}, {"Six", 6}, {"Seven", 7},
	}
	e := schemas[0].EnumTypes[0]
	if len(e.Members) != len(want) {
		t.Fatalf("got %d members, want %d", len(e.Members), len(want))
	}
	for i, w := range want {
		m := e.Members[i]
		if m.Name != w.name || m.Value != w.value {
			t.Errorf("member %d = %s=%v, want %s=%d", i, m.Name, m.Value, w.name, w.value)
		}
	}
}

func TestReservedTypeNames(t *testing.T) {
	tests := []struct {
		name string
		decl string
		want string
	}{
		{"promise alias", "type Promise = { value: number };", "Cannot use reserved type: Promise"},
		{"nullable prefix alias", "type NullableValue = { value: number };", "Nullable prefix is not allowed: NullableValue"},
		{"nullable prefix interface", "interface NullableBox { value: number }", "Nullable prefix is not allowed: NullableBox"},
		{"nullable prefix enum", "enum NullableKind { A = 1 }", "Nullable prefix is not allowed: NullableKind"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := analyzeFail(t, `
			import { TurboModuleRegistry } from 'react-native';
			import type { TurboModule } from 'react-native';

			`+tt.decl+`

			export interface Spec extends TurboModule {
				myMethod(): void;
			}

			export default TurboModuleRegistry.getEnforcing<Spec>('MyModule');
			`)
			if !hasDiagnostic(diags, tt.want) {
				t.Errorf("diags = %v, want one containing %q", diags, tt.want)
			}
		})
	}
}

func TestPropertySignatureInSpec(t *testing.T) {
	diags := analyzeFail(t, `
	import { TurboModuleRegistry } from 'react-native';
	import type { TurboModule } from 'react-native';

	export interface Spec extends TurboModule {
		myMethod: () => void;
	}

	export default TurboModuleRegistry.getEnforcing<Spec>('MyModule');
	`)
	if !hasDiagnostic(diags, "Property signature is not allowed") {
		t.Errorf("diags = %v", diags)
	}
}

func TestSpecMemberErrorsAccumulate(t *testing.T) {
	// One bad member does not stop the others from being checked.
	diags := analyzeFail(t, `
	import { TurboModuleRegistry } from 'react-native';
	import type { TurboModule } from 'react-native';

	export interface Spec extends TurboModule {
		first: () => void;
		second(): void;
		third: number;
	}

	export default TurboModuleRegistry.getEnforcing<Spec>('MyModule');
	`)
	count := 0
	for _, d := range diags {
		if strings.Contains(d.Message, "Property signature is not allowed") {
			count++
		}
	}
	if count != 2 {
		t.Errorf("got %d property diagnostics (%v), want 2", count, diags)
	}
}

func TestAliasRestrictions(t *testing.T) {
	tests := []struct {
		name string
		decl string
		wantInMethodArg string
		want string
	}{
		{"generic alias", "type Boxed<T> = { value: T };", "number", "Type parameters are not supported"},
		{"primitive alias", "type MyNum = number;", "number", "Invalid specification"},
		{"wide union alias", "type Multi = string | number | boolean;", "number", "Union types only allow nullable type"},
		{"nullable promise alias", "type BadPromise = Promise<number> | null;", "number", "Promise type cannot be nullable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := analyzeFail(t, `
			import { TurboModuleRegistry } from 'react-native';
			import type { TurboModule } from 'react-native';

			`+tt.decl+`

			export interface Spec extends TurboModule {
				myMethod(arg: `+tt.wantInMethodArg+`): void;
			}

			export default TurboModuleRegistry.getEnforcing<Spec>('MyModule');
			`)
			if !hasDiagnostic(diags, tt.want) {
				t.Errorf("diags = %v, want one containing %q", diags, tt.want)
			}
		})
	}
}

func TestInlineTypeLiteralRejected(t *testing.T) {
	diags := analyzeFail(t, `
	import { TurboModuleRegistry } from 'react-native';
	import type { TurboModule } from 'react-native';

	export interface Spec extends TurboModule {
		myMethod(arg: { x: number }): void;
	}

	export default TurboModuleRegistry.getEnforcing<Spec>('MyModule');
	`)
	if !hasDiagnostic(diags, "Type literal is not supported") {
		t.Errorf("diags = %v", diags)
	}
}

func TestFunctionParamRejected(t *testing.T) {
	diags := analyzeFail(t, `
	import { TurboModuleRegistry } from 'react-native';
	import type { TurboModule } from 'react-native';

	export interface Spec extends TurboModule {
		myMethod(cb: (value: number) => void): void;
	}

	export default TurboModuleRegistry.getEnforcing<Spec>('MyModule');
	`)
	if !hasDiagnostic(diags, "Function parameter is not supported") {
		t.Errorf("diags = %v", diags)
	}
}

func TestCyclicTypeReference(t *testing.T) {
	diags := analyzeFail(t, `
	import { TurboModuleRegistry } from 'react-native';
	import type { TurboModule } from 'react-native';

	type Node = { next: Node | null };

	export interface Spec extends TurboModule {
		myMethod(arg: Node): void;
	}

	export default TurboModuleRegistry.getEnforcing<Spec>('MyModule');
	`)
	if !hasDiagnostic(diags, "Cyclic type reference") {
		t.Errorf("diags = %v", diags)
	}
}

func TestMutuallyRecursiveTypes(t *testing.T) {
	diags := analyzeFail(t, `
	import { TurboModuleRegistry } from 'react-native';
	import type { TurboModule } from 'react-native';

	type A = { b: B | null };
	type B = { a: A | null };

	export interface Spec extends TurboModule {
		myMethod(arg: A): void;
	}

	export default TurboModuleRegistry.getEnforcing<Spec>('MyModule');
	`)
	if !hasDiagnostic(diags, "Cyclic type reference") {
		t.Errorf("diags = %v", diags)
	}
}

func TestTransitiveAliasResolution(t *testing.T) {
	schemas := analyzeOK(t, `
	import { TurboModuleRegistry } from 'react-native';
	import type { TurboModule } from 'react-native';

	type Inner = { value: number };
	type Outer = { inner: Inner };

	export interface Spec extends TurboModule {
		myMethod(arg: Outer): void;
	}

	export default TurboModuleRegistry.getEnforcing<Spec>('MyModule');
	`)
	s := schemas[0]
	want := []string{"Inner", "Outer"}
	got := names(s.AliasTypes)
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("alias types = %v, want %v", got, want)
	}
	outer := s.Methods[0].Params[0].Type.(*ir.ObjectDescriptor)
	inner, ok := outer.Props[0].Type.(*ir.ObjectDescriptor)
	if !ok || inner.Name != "Inner" {
		t.Errorf("Outer.inner = %#v, want resolved Inner object", outer.Props[0].Type)
	}
}

func TestStringLiteralUnion(t *testing.T) {
	schemas := analyzeOK(t, `
	import { TurboModuleRegistry } from 'react-native';
	import type { TurboModule } from 'react-native';

	export interface Spec extends TurboModule {
		setState(state: 'on' | 'off'): void;
	}

	export default TurboModuleRegistry.getEnforcing<Spec>('MyModule');
	`)
	arg := schemas[0].Methods[0].Params[0].Type
	if arg.Kind() != ir.KindString {
		t.Errorf("literal union arg = %#v, want String", arg)
	}
}

func TestUnitWithoutSpecs(t *testing.T) {
	schemas := analyzeOK(t, `
	type Point = { x: number; y: number };
	`)
	if len(schemas) != 0 {
		t.Errorf("got %d schemas, want 0", len(schemas))
	}
}

func TestDiagnosticsCarrySpans(t *testing.T) {
	diags := analyzeFail(t, `import { TurboModuleRegistry } from 'react-native';
import type { TurboModule } from 'react-native';

export interface Spec extends TurboModule {
	bad: number;
}

export default TurboModuleRegistry.getEnforcing<Spec>('MyModule');
`)
	found := false
	for _, d := range diags {
		if strings.Contains(d.Message, "Property signature") && d.Loc.Start.Line == 5 {
			found = true
		}
	}
	if !found {
		t.Errorf("no property diagnostic anchored to line 5: %v", diags)
	}
}
