package analyzer

import (
	"fmt"
	"strings"

	"github.com/l2hyunwoo/craby/ir"
	"github.com/l2hyunwoo/craby/syntax"
)

// collector performs the single left-to-right pass over a file's top-level
// declarations. It fills three tables keyed by binder symbol: decls for
// user-defined types, specs for module spec interfaces, and mods for
// registered module names. Problems become diagnostics; the pass always runs
// to the end of the file.
type collector struct {
	scope *syntax.Scope
	diags []Diagnostic

	// Symbols bound to the marker interface, the registry, and the package
	// namespace. Zero when the file never imports them.
	markerSym   syntax.SymbolID
	registrySym syntax.SymbolID
	nsSym       syntax.SymbolID

	decls     map[syntax.SymbolID]ir.TypeDescriptor
	declSpans map[syntax.SymbolID]syntax.Span
	specs     map[syntax.SymbolID][]ir.Method
	specOrder []syntax.SymbolID
	mods      map[syntax.SymbolID]string
}

func newCollector(scope *syntax.Scope) *collector {
	return &collector{
		scope:     scope,
		decls:     make(map[syntax.SymbolID]ir.TypeDescriptor),
		declSpans: make(map[syntax.SymbolID]syntax.Span),
		specs:     make(map[syntax.SymbolID][]ir.Method),
		mods:      make(map[syntax.SymbolID]string),
	}
}

func (c *collector) errorAt(msg string, loc syntax.Span) {
	c.diags = append(c.diags, Diagnostic{Message: msg, Loc: loc})
}

func (c *collector) collectFile(file *syntax.File) {
	// Imports first so marker recognition does not depend on import order
	// relative to interface declarations.
	for _, d := range file.Decls {
		if imp, ok := d.(*syntax.ImportDecl); ok {
			c.collectImport(imp)
		}
	}
	for _, d := range file.Decls {
		switch decl := d.(type) {
		case *syntax.InterfaceDecl:
			if c.isSpec(decl) {
				c.collectSpec(decl)
			} else {
				c.collectInterfaceType(decl)
			}
		case *syntax.TypeAliasDecl:
			c.collectAliasType(decl)
		case *syntax.EnumDecl:
			c.collectEnumType(decl)
		case *syntax.ExportDefaultDecl:
			c.collectExpr(decl.Expr)
		case *syntax.VarDecl:
			c.collectExpr(decl.Init)
		case *syntax.ExprStmt:
			c.collectExpr(decl.Expr)
		}
	}
}

func (c *collector) collectImport(decl *syntax.ImportDecl) {
	if decl.Source != reactNativePkg {
		return
	}
	if decl.Namespace != "" {
		if sym, ok := c.scope.Lookup(decl.Namespace); ok {
			c.nsSym = sym
		}
	}
	for _, spec := range decl.Named {
		sym, ok := c.scope.Lookup(spec.Local)
		if !ok {
			continue
		}
		switch spec.Imported {
		case markerInterfaceName:
			c.markerSym = sym
		case registryName:
			c.registrySym = sym
		}
	}
}

// isSpec reports whether the interface extends the marker interface, either
// directly or through the package namespace.
func (c *collector) isSpec(decl *syntax.InterfaceDecl) bool {
	for _, ext := range decl.Extends {
		ref, ok := ext.(*syntax.TypeRef)
		if !ok {
			continue
		}
		if ref.Qualifier == nil {
			if c.markerSym == 0 {
				continue
			}
			if sym, ok := c.scope.Lookup(ref.Name.Name); ok && sym == c.markerSym {
				return true
			}
			continue
		}
		if c.nsSym == 0 || ref.Name.Name != markerInterfaceName {
			continue
		}
		if sym, ok := c.scope.Lookup(ref.Qualifier.Name); ok && sym == c.nsSym {
			return true
		}
	}
	return false
}

// collectSpec gathers a spec interface's methods. A member that is not a
// valid method signature invalidates only itself; every other member is
// still processed so one pass reports every problem.
func (c *collector) collectSpec(decl *syntax.InterfaceDecl) {
	sym, ok := c.scope.Lookup(decl.Name.Name)
	if !ok {
		return
	}

	var methods []ir.Method
	for _, member := range decl.Members {
		switch m := member.(type) {
		case *syntax.MethodSig:
			method, ok := c.intoMethod(m)
			if ok {
				methods = append(methods, method)
			}
		case *syntax.PropertySig:
			c.errorAt(msgPropertySig, m.Loc)
		default:
			c.errorAt(msgInvalidSpec, member.Span())
		}
	}

	c.specs[sym] = methods
	c.specOrder = append(c.specOrder, sym)
	c.declSpans[sym] = decl.Loc
}

// collectInterfaceType records a non-spec interface as an object type. Unlike
// spec interfaces, any invalid member drops the whole declaration.
func (c *collector) collectInterfaceType(decl *syntax.InterfaceDecl) {
	if msg, bad := reservedName(decl.Name.Name); bad {
		c.errorAt(msg, decl.Loc)
		return
	}
	if len(decl.Extends) > 0 {
		c.errorAt(msgInvalidSpec, decl.Loc)
		return
	}
	sym, ok := c.scope.Lookup(decl.Name.Name)
	if !ok {
		return
	}

	props, ok := c.intoProps(decl.Members)
	if !ok {
		return
	}
	c.decls[sym] = ir.Object(decl.Name.Name, props...)
	c.declSpans[sym] = decl.Loc
}

func (c *collector) intoProps(members []syntax.Member) ([]ir.Prop, bool) {
	var props []ir.Prop
	for _, member := range members {
		prop, ok := member.(*syntax.PropertySig)
		if !ok {
			c.errorAt(msgInvalidSpec, member.Span())
			return nil, false
		}
		td, err := c.intoDescriptor(prop.Type)
		if err != nil {
			c.errorAt(err.Error(), prop.Loc)
			return nil, false
		}
		props = append(props, ir.Prop{Name: prop.Name.Name, Type: td})
	}
	return props, true
}

func (c *collector) collectAliasType(decl *syntax.TypeAliasDecl) {
	if msg, bad := reservedName(decl.Name.Name); bad {
		c.errorAt(msg, decl.Loc)
		return
	}
	if len(decl.TypeParams) > 0 {
		c.errorAt(msgTypeParameters, decl.Loc)
		return
	}
	sym, ok := c.scope.Lookup(decl.Name.Name)
	if !ok {
		return
	}

	switch t := decl.Type.(type) {
	case *syntax.TypeLiteral:
		props, ok := c.intoProps(t.Members)
		if !ok {
			return
		}
		c.decls[sym] = ir.Object(decl.Name.Name, props...)
	case *syntax.UnionType:
		td, err := c.intoUnion(t)
		if err != nil {
			c.errorAt(err.Error(), decl.Loc)
			return
		}
		c.decls[sym] = td
	default:
		c.errorAt(msgInvalidSpec, decl.Loc)
		return
	}
	c.declSpans[sym] = decl.Loc
}

// collectEnumType validates homogeneity and assigns implicit numeric values
// sequentially: a member without an initializer takes the previous numeric
// value plus one, starting from zero.
func (c *collector) collectEnumType(decl *syntax.EnumDecl) {
	if msg, bad := reservedName(decl.Name.Name); bad {
		c.errorAt(msg, decl.Loc)
		return
	}
	sym, ok := c.scope.Lookup(decl.Name.Name)
	if !ok {
		return
	}

	var members []ir.EnumMember
	var memberKind ir.DescriptorKind
	seen := false
	prev := int64(-1)

	for _, member := range decl.Members {
		switch init := member.Init.(type) {
		case *syntax.NumberLit:
			if seen && memberKind != ir.KindNumber {
				c.errorAt(msgMixedEnumMember, decl.Loc)
				return
			}
			memberKind, seen = ir.KindNumber, true
			if strings.Contains(init.Raw, ".") {
				c.errorAt(msgFloatEnumMember, decl.Loc)
				continue
			}
			prev = int64(init.Value)
			members = append(members, ir.NumberMember(member.Name.Name, prev))
		case *syntax.StringLit:
			if seen && memberKind != ir.KindString {
				c.errorAt(msgMixedEnumMember, decl.Loc)
				return
			}
			memberKind, seen = ir.KindString, true
			members = append(members, ir.StringMember(member.Name.Name, init.Value))
		case nil:
			if seen && memberKind != ir.KindNumber {
				c.errorAt(msgMixedEnumMember, decl.Loc)
				return
			}
			memberKind, seen = ir.KindNumber, true
			prev++
			members = append(members, ir.NumberMember(member.Name.Name, prev))
		default:
			c.errorAt(msgInvalidSpec, decl.Loc)
		}
	}

	c.decls[sym] = ir.Enum(decl.Name.Name, members...)
	c.declSpans[sym] = decl.Loc
}

// collectExpr searches an expression tree for registration calls.
func (c *collector) collectExpr(expr syntax.Expr) {
	call, ok := expr.(*syntax.CallExpr)
	if !ok {
		return
	}
	c.collectMod(call)
	for _, arg := range call.Args {
		c.collectExpr(arg)
	}
}

// collectMod records a Registry.get / Registry.getEnforcing call as a module
// registration.
func (c *collector) collectMod(call *syntax.CallExpr) {
	if !c.isRegCall(call) {
		return
	}
	specSym, ok := c.specSymbol(call)
	if !ok {
		return
	}
	name, ok := c.moduleName(call)
	if !ok {
		return
	}
	c.mods[specSym] = name
}

// isRegCall checks that the callee resolves, by symbol identity, to the
// registry's get or getEnforcing member. Both the direct import and the
// namespace form are recognized.
func (c *collector) isRegCall(call *syntax.CallExpr) bool {
	member, ok := call.Callee.(*syntax.MemberExpr)
	if !ok {
		return false
	}

	isRegistry := false
	switch obj := member.Obj.(type) {
	case *syntax.Ident:
		if c.registrySym == 0 {
			return false
		}
		sym, ok := c.scope.Lookup(obj.Name)
		isRegistry = ok && sym == c.registrySym
	case *syntax.MemberExpr:
		// Namespace form: NS.TurboModuleRegistry.getEnforcing(...).
		if c.nsSym == 0 || obj.Prop.Name != registryName {
			return false
		}
		nsIdent, ok := obj.Obj.(*syntax.Ident)
		if !ok {
			return false
		}
		sym, ok := c.scope.Lookup(nsIdent.Name)
		isRegistry = ok && sym == c.nsSym
	default:
		return false
	}

	if !isRegistry {
		return false
	}
	if member.Prop.Name != registryGet && member.Prop.Name != registryGetEnforcing {
		c.errorAt(msgRegistryMethod, member.Prop.Loc)
		return false
	}
	return true
}

// specSymbol extracts the spec interface symbol from the registration's type
// argument.
func (c *collector) specSymbol(call *syntax.CallExpr) (syntax.SymbolID, bool) {
	switch len(call.TypeArgs) {
	case 0:
		c.errorAt(msgNoSpecGeneric, call.Loc)
		return 0, false
	case 1:
	default:
		c.errorAt("TurboModule specification generic argument must be exactly one", call.Loc)
		return 0, false
	}

	ref, ok := call.TypeArgs[0].(*syntax.TypeRef)
	if !ok {
		c.errorAt("Specification generic argument must be a type reference", call.Loc)
		return 0, false
	}
	if ref.Qualifier != nil {
		c.errorAt("Invalid specification type reference", call.Loc)
		return 0, false
	}
	sym, ok := c.scope.Lookup(ref.Name.Name)
	if !ok {
		c.errorAt("Invalid specification type reference", call.Loc)
		return 0, false
	}
	return sym, true
}

func (c *collector) moduleName(call *syntax.CallExpr) (string, bool) {
	if len(call.Args) == 0 {
		c.errorAt("TurboModule name is required", call.Loc)
		return "", false
	}
	lit, ok := call.Args[0].(*syntax.StringLit)
	if !ok {
		c.errorAt("TurboModule name must be a string literal", call.Loc)
		return "", false
	}
	for _, existing := range c.mods {
		if existing == lit.Value {
			c.errorAt(msgDuplicateModuleName, lit.Loc)
			return "", false
		}
	}
	return lit.Value, true
}

func (c *collector) intoMethod(sig *syntax.MethodSig) (ir.Method, bool) {
	method := ir.Method{Name: sig.Name.Name}
	for _, param := range sig.Params {
		if param.Optional {
			c.errorAt(msgOptionalSig, param.Loc)
			return ir.Method{}, false
		}
		td, err := c.intoDescriptor(param.Type)
		if err != nil {
			c.errorAt(err.Error(), param.Loc)
			return ir.Method{}, false
		}
		method.Params = append(method.Params, ir.Param{Name: param.Name.Name, Type: td})
	}

	ret, err := c.intoDescriptor(sig.Return)
	if err != nil {
		c.errorAt(err.Error(), sig.Loc)
		return ir.Method{}, false
	}
	method.Return = ret
	return method, true
}

// intoDescriptor normalizes a source type annotation into the closed
// descriptor set. Named references become transient Ref nodes for the
// resolver; only the reserved promise wrapper is interpreted here.
func (c *collector) intoDescriptor(t syntax.TypeNode) (ir.TypeDescriptor, error) {
	switch tn := t.(type) {
	case *syntax.KeywordType:
		switch tn.Name {
		case "void":
			return ir.Void(), nil
		case "boolean":
			return ir.Boolean(), nil
		case "number":
			return ir.Number(), nil
		case "string":
			return ir.String(), nil
		default:
			return nil, fmt.Errorf("%s", msgInvalidSpec)
		}

	case *syntax.ArrayType:
		elem, err := c.intoDescriptor(tn.Elem)
		if err != nil {
			return nil, err
		}
		return ir.Array(elem), nil

	case *syntax.TypeRef:
		if tn.Qualifier != nil {
			return nil, fmt.Errorf("%s", msgInvalidTypeReference)
		}
		if tn.Name.Name == reservedTypePromise {
			if len(tn.Args) != 1 {
				return nil, fmt.Errorf("%s", msgInvalidPromise)
			}
			resolved, err := c.intoDescriptor(tn.Args[0])
			if err != nil {
				return nil, err
			}
			return ir.Promise(resolved), nil
		}
		sym, ok := c.scope.Lookup(tn.Name.Name)
		if !ok {
			return nil, fmt.Errorf("%s: %s", msgInvalidTypeReference, tn.Name.Name)
		}
		return ir.Ref(ir.Symbol(sym), tn.Name.Name), nil

	case *syntax.UnionType:
		return c.intoUnion(tn)

	case *syntax.LiteralType:
		switch tn.Value.(type) {
		case string:
			return ir.String(), nil
		case float64:
			return ir.Number(), nil
		}
		return nil, fmt.Errorf("%s", msgInvalidSpec)

	case *syntax.FuncType:
		return nil, fmt.Errorf("%s", msgFuncParam)

	case *syntax.TypeLiteral:
		return nil, fmt.Errorf("%s", msgTypeLiteral)

	default:
		return nil, fmt.Errorf("%s", msgInvalidSpec)
	}
}

// intoUnion accepts two union shapes: a homogeneous literal union, which
// collapses to its base primitive, and the 2-arm nullable form `T | null`.
func (c *collector) intoUnion(union *syntax.UnionType) (ir.TypeDescriptor, error) {
	if td, ok := c.literalUnion(union); ok {
		return td, nil
	}

	if len(union.Members) != 2 {
		return nil, fmt.Errorf("%s", msgUnionType)
	}
	var base syntax.TypeNode
	switch {
	case isNullKeyword(union.Members[0]):
		base = union.Members[1]
	case isNullKeyword(union.Members[1]):
		base = union.Members[0]
	default:
		return nil, fmt.Errorf("%s", msgUnionType)
	}

	td, err := c.intoDescriptor(base)
	if err != nil {
		return nil, err
	}
	if td.Kind() == ir.KindPromise {
		return nil, fmt.Errorf("%s", msgNullablePromise)
	}
	return ir.Nullable(td), nil
}

// literalUnion collapses a union whose arms are all literals of one base
// type, e.g. 'on' | 'off', into that primitive.
func (c *collector) literalUnion(union *syntax.UnionType) (ir.TypeDescriptor, bool) {
	var kind ir.DescriptorKind
	for i, m := range union.Members {
		lit, ok := m.(*syntax.LiteralType)
		if !ok {
			return nil, false
		}
		var k ir.DescriptorKind
		switch lit.Value.(type) {
		case string:
			k = ir.KindString
		case float64:
			k = ir.KindNumber
		default:
			return nil, false
		}
		if i == 0 {
			kind = k
		} else if k != kind {
			return nil, false
		}
	}
	if kind == ir.KindString {
		return ir.String(), true
	}
	return ir.Number(), true
}

func isNullKeyword(t syntax.TypeNode) bool {
	kw, ok := t.(*syntax.KeywordType)
	return ok && kw.Name == "null"
}

// reservedName rejects the promise wrapper name and the nullable prefix.
func reservedName(name string) (string, bool) {
	if name == reservedTypePromise {
		return "Cannot use reserved type: " + name, true
	}
	if strings.HasPrefix(name, reservedNullablePrefix) {
		return "Nullable prefix is not allowed: " + name, true
	}
	return "", false
}
