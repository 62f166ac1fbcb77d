package syntax

// Node is implemented by every syntax tree node.
type Node interface {
	// Span returns the node's source range.
	Span() Span
}

// Decl is a top-level declaration in a spec file.
type Decl interface {
	Node
	decl()
}

// TypeNode is a type annotation as written in the source.
type TypeNode interface {
	Node
	typeNode()
}

// Expr is a value-level expression. The subset is limited to the shapes a
// registration statement can take.
type Expr interface {
	Node
	expr()
}

// File is a parsed spec source file.
type File struct {
	// Path is the source path the file was parsed from, used in diagnostics.
	Path string

	// Decls contains the top-level declarations in source order.
	Decls []Decl
}

// Ident is an identifier occurrence.
type Ident struct {
	Name string
	Loc  Span
}

func (n *Ident) Span() Span { return n.Loc }
func (n *Ident) expr()      {}

// ImportDecl is an import statement.
//
//	import { TurboModule } from 'react-native'
//	import * as ReactNative from 'react-native'
//	import Default, { a as b } from './mod'
type ImportDecl struct {
	// Default is the default-import binding name, empty if absent.
	Default string

	// Namespace is the namespace-import binding name (import * as N), empty
	// if absent.
	Namespace string

	// Named contains the named import specifiers.
	Named []ImportSpecifier

	// Source is the module specifier string.
	Source string

	Loc Span
}

func (n *ImportDecl) Span() Span { return n.Loc }
func (n *ImportDecl) decl()      {}

// ImportSpecifier is one named binding inside an import statement.
type ImportSpecifier struct {
	// Imported is the exported name in the source module.
	Imported string

	// Local is the binding name in this file. Equals Imported unless the
	// specifier carries an alias.
	Local string

	// TypeOnly marks `import type` style specifiers.
	TypeOnly bool

	Loc Span
}

// InterfaceDecl is an interface declaration.
type InterfaceDecl struct {
	Name    *Ident
	Extends []TypeNode
	Members []Member
	Export  bool
	Loc     Span
}

func (n *InterfaceDecl) Span() Span { return n.Loc }
func (n *InterfaceDecl) decl()      {}

// Member is a member of an interface or a type literal.
type Member interface {
	Node
	member()
}

// MethodSig is a method signature member.
type MethodSig struct {
	Name   *Ident
	Params []ParamDecl
	Return TypeNode
	Loc    Span
}

func (n *MethodSig) Span() Span { return n.Loc }
func (n *MethodSig) member()    {}

// PropertySig is a property signature member.
type PropertySig struct {
	Name     *Ident
	Optional bool
	Readonly bool
	Type     TypeNode
	Loc      Span
}

func (n *PropertySig) Span() Span { return n.Loc }
func (n *PropertySig) member()    {}

// ParamDecl is a single parameter in a method signature.
type ParamDecl struct {
	Name     *Ident
	Optional bool
	Type     TypeNode
	Loc      Span
}

// TypeAliasDecl is a type alias declaration.
type TypeAliasDecl struct {
	Name *Ident

	// TypeParams holds generic parameter names. The collector rejects any
	// alias that declares them, but the parser records them so the error can
	// point at the declaration.
	TypeParams []string

	Type   TypeNode
	Export bool
	Loc    Span
}

func (n *TypeAliasDecl) Span() Span { return n.Loc }
func (n *TypeAliasDecl) decl()      {}

// EnumDecl is an enum declaration.
type EnumDecl struct {
	Name    *Ident
	Members []EnumMemberDecl
	Export  bool
	Loc     Span
}

func (n *EnumDecl) Span() Span { return n.Loc }
func (n *EnumDecl) decl()      {}

// EnumMemberDecl is a single enum member with an optional initializer.
type EnumMemberDecl struct {
	Name *Ident

	// Init is the initializer expression: a StringLit, a NumberLit, or nil
	// when the member has no explicit value.
	Init Expr

	Loc Span
}

// VarDecl is a `const name = <expr>` declaration. Registration calls are
// commonly assigned this way instead of being default-exported.
type VarDecl struct {
	Name   *Ident
	Init   Expr
	Export bool
	Loc    Span
}

func (n *VarDecl) Span() Span { return n.Loc }
func (n *VarDecl) decl()      {}

// ExportDefaultDecl is an `export default <expr>` statement. Registration
// calls are recognized here.
type ExportDefaultDecl struct {
	Expr Expr
	Loc  Span
}

func (n *ExportDefaultDecl) Span() Span { return n.Loc }
func (n *ExportDefaultDecl) decl()      {}

// ExprStmt is a bare expression statement at the top level.
type ExprStmt struct {
	Expr Expr
	Loc  Span
}

func (n *ExprStmt) Span() Span { return n.Loc }
func (n *ExprStmt) decl()      {}

// MemberExpr is a property access, e.g. Registry.getEnforcing.
type MemberExpr struct {
	Obj  Expr
	Prop *Ident
	Loc  Span
}

func (n *MemberExpr) Span() Span { return n.Loc }
func (n *MemberExpr) expr()      {}

// CallExpr is a call with optional type arguments.
type CallExpr struct {
	Callee   Expr
	TypeArgs []TypeNode
	Args     []Expr
	Loc      Span
}

func (n *CallExpr) Span() Span { return n.Loc }
func (n *CallExpr) expr()      {}

// StringLit is a string literal expression.
type StringLit struct {
	Value string
	Loc   Span
}

func (n *StringLit) Span() Span { return n.Loc }
func (n *StringLit) expr()      {}

// NumberLit is a numeric literal expression. Raw keeps the source spelling so
// integer and floating forms stay distinguishable.
type NumberLit struct {
	Value float64
	Raw   string
	Loc   Span
}

func (n *NumberLit) Span() Span { return n.Loc }
func (n *NumberLit) expr()      {}

// KeywordType is a built-in type keyword: number, string, boolean, void,
// null, undefined.
type KeywordType struct {
	Name string
	Loc  Span
}

func (n *KeywordType) Span() Span { return n.Loc }
func (n *KeywordType) typeNode()  {}

// TypeRef is a reference to a named type, optionally qualified by a namespace
// and optionally carrying type arguments.
type TypeRef struct {
	// Qualifier is the namespace part of a qualified name like NS.Shape,
	// nil for plain references.
	Qualifier *Ident

	Name *Ident
	Args []TypeNode
	Loc  Span
}

func (n *TypeRef) Span() Span { return n.Loc }
func (n *TypeRef) typeNode()  {}

// ArrayType is an element-type followed by [].
type ArrayType struct {
	Elem TypeNode
	Loc  Span
}

func (n *ArrayType) Span() Span { return n.Loc }
func (n *ArrayType) typeNode()  {}

// UnionType is a union of two or more member types.
type UnionType struct {
	Members []TypeNode
	Loc     Span
}

func (n *UnionType) Span() Span { return n.Loc }
func (n *UnionType) typeNode()  {}

// LiteralType is a literal used in type position, e.g. 'on' or 3.
type LiteralType struct {
	// Value is a string or float64.
	Value any
	Loc   Span
}

func (n *LiteralType) Span() Span { return n.Loc }
func (n *LiteralType) typeNode()  {}

// FuncType is a function type annotation, e.g. (a: number) => void.
type FuncType struct {
	Params []ParamDecl
	Return TypeNode
	Loc    Span
}

func (n *FuncType) Span() Span { return n.Loc }
func (n *FuncType) typeNode()  {}

// TypeLiteral is an inline record type, e.g. { x: number; y: number }.
type TypeLiteral struct {
	Members []Member
	Loc     Span
}

func (n *TypeLiteral) Span() Span { return n.Loc }
func (n *TypeLiteral) typeNode()  {}
