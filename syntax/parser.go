package syntax

import (
	"fmt"
	"strconv"
)

// Error is a parse or bind error anchored to a source location.
type Error struct {
	Path    string
	Message string
	Loc     Span
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s:%s: %s", e.Path, e.Loc.Start, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Loc.Start, e.Message)
}

// ParseFile parses a spec source file. Errors do not stop the parse: the
// parser skips to the next declaration and keeps going, so a file with one
// malformed declaration still yields every other declaration.
func ParseFile(path, src string) (*File, []*Error) {
	p := &parser{lex: NewLexer(src), path: path}
	p.next()
	p.next()

	file := &File{Path: path}
	for p.cur.Kind != TokenEOF {
		before := p.cur
		if d := p.parseDecl(); d != nil {
			file.Decls = append(file.Decls, d)
		}
		// A declaration parse that consumed nothing would loop forever.
		if p.cur == before && p.cur.Kind != TokenEOF {
			p.next()
		}
	}
	return file, p.errs
}

type parser struct {
	lex  *Lexer
	path string
	cur  Token
	peek Token
	errs []*Error
}

func (p *parser) next() {
	p.cur = p.peek
	p.peek = p.lex.Next()
}

func (p *parser) errorf(loc Span, format string, args ...any) {
	p.errs = append(p.errs, &Error{
		Path:    p.path,
		Message: fmt.Sprintf(format, args...),
		Loc:     loc,
	})
}

// expect consumes the current token if it has the wanted kind, otherwise
// records an error and leaves the token in place.
func (p *parser) expect(kind TokenKind) (Token, bool) {
	if p.cur.Kind != kind {
		p.errorf(p.cur.Span, "expected %s, found %s", kind, p.describe(p.cur))
		return p.cur, false
	}
	tok := p.cur
	p.next()
	return tok, true
}

func (p *parser) describe(tok Token) string {
	switch tok.Kind {
	case TokenIdent:
		return fmt.Sprintf("identifier %q", tok.Text)
	case TokenString:
		return fmt.Sprintf("string %q", tok.Text)
	case TokenNumber:
		return fmt.Sprintf("number %s", tok.Text)
	case TokenIllegal:
		return fmt.Sprintf("illegal input %q", tok.Text)
	default:
		return tok.Kind.String()
	}
}

// syncDecl skips tokens until a plausible declaration start.
func (p *parser) syncDecl() {
	for {
		switch p.cur.Kind {
		case TokenEOF, TokenImport, TokenExport, TokenInterface, TokenType, TokenEnum, TokenConst:
			return
		case TokenSemi:
			p.next()
			return
		}
		p.next()
	}
}

func (p *parser) parseDecl() Decl {
	switch p.cur.Kind {
	case TokenImport:
		return p.parseImport()
	case TokenExport:
		return p.parseExport()
	case TokenInterface:
		return p.parseInterface(false)
	case TokenType:
		return p.parseTypeAlias(false)
	case TokenEnum:
		return p.parseEnum(false)
	case TokenConst:
		if p.peek.Kind == TokenEnum {
			p.next()
			return p.parseEnum(false)
		}
		return p.parseVar(false)
	case TokenSemi:
		p.next()
		return nil
	case TokenIdent:
		return p.parseExprStmt()
	default:
		p.errorf(p.cur.Span, "expected a declaration, found %s", p.describe(p.cur))
		p.next()
		p.syncDecl()
		return nil
	}
}

func (p *parser) parseExport() Decl {
	start := p.cur.Span.Start
	p.next() // export
	switch p.cur.Kind {
	case TokenDefault:
		p.next()
		expr := p.parseExpr()
		end := p.cur.Span.Start
		if p.cur.Kind == TokenSemi {
			p.next()
		}
		if expr == nil {
			return nil
		}
		return &ExportDefaultDecl{Expr: expr, Loc: Span{Start: start, End: end}}
	case TokenInterface:
		return p.parseInterface(true)
	case TokenType:
		return p.parseTypeAlias(true)
	case TokenEnum:
		return p.parseEnum(true)
	case TokenConst:
		if p.peek.Kind == TokenEnum {
			p.next()
			return p.parseEnum(true)
		}
		return p.parseVar(true)
	}
	p.errorf(p.cur.Span, "expected a declaration after 'export', found %s", p.describe(p.cur))
	p.syncDecl()
	return nil
}

func (p *parser) parseVar(export bool) Decl {
	start := p.cur.Span.Start
	p.next() // const
	nameTok, ok := p.expect(TokenIdent)
	if !ok {
		p.syncDecl()
		return nil
	}
	if _, ok := p.expect(TokenAssign); !ok {
		p.syncDecl()
		return nil
	}
	init := p.parseExpr()
	if init == nil {
		p.syncDecl()
		return nil
	}
	end := init.Span().End
	if p.cur.Kind == TokenSemi {
		p.next()
	}
	return &VarDecl{
		Name:   &Ident{Name: nameTok.Text, Loc: nameTok.Span},
		Init:   init,
		Export: export,
		Loc:    Span{Start: start, End: end},
	}
}

func (p *parser) parseImport() Decl {
	start := p.cur.Span.Start
	p.next() // import

	decl := &ImportDecl{}
	allTypeOnly := false
	if p.cur.Kind == TokenType && (p.peek.Kind == TokenLBrace || p.peek.Kind == TokenIdent || p.peek.Kind == TokenStar) {
		allTypeOnly = true
		p.next()
	}

	switch p.cur.Kind {
	case TokenStar:
		p.next()
		if _, ok := p.expect(TokenAs); !ok {
			p.syncDecl()
			return nil
		}
		name, ok := p.expect(TokenIdent)
		if !ok {
			p.syncDecl()
			return nil
		}
		decl.Namespace = name.Text
	case TokenIdent:
		decl.Default = p.cur.Text
		p.next()
		if p.cur.Kind == TokenComma {
			p.next()
			if !p.parseNamedImports(decl, allTypeOnly) {
				return nil
			}
		}
	case TokenLBrace:
		if !p.parseNamedImports(decl, allTypeOnly) {
			return nil
		}
	case TokenString:
		// Bare side-effect import, nothing to bind.
		decl.Source = p.cur.Text
		end := p.cur.Span.End
		p.next()
		if p.cur.Kind == TokenSemi {
			p.next()
		}
		decl.Loc = Span{Start: start, End: end}
		return decl
	default:
		p.errorf(p.cur.Span, "expected import bindings, found %s", p.describe(p.cur))
		p.syncDecl()
		return nil
	}

	if _, ok := p.expect(TokenFrom); !ok {
		p.syncDecl()
		return nil
	}
	src, ok := p.expect(TokenString)
	if !ok {
		p.syncDecl()
		return nil
	}
	decl.Source = src.Text
	end := src.Span.End
	if p.cur.Kind == TokenSemi {
		p.next()
	}
	decl.Loc = Span{Start: start, End: end}
	return decl
}

func (p *parser) parseNamedImports(decl *ImportDecl, allTypeOnly bool) bool {
	if _, ok := p.expect(TokenLBrace); !ok {
		p.syncDecl()
		return false
	}
	for p.cur.Kind != TokenRBrace && p.cur.Kind != TokenEOF {
		spec := ImportSpecifier{TypeOnly: allTypeOnly}
		if p.cur.Kind == TokenType && p.peek.Kind == TokenIdent {
			spec.TypeOnly = true
			p.next()
		}
		name, ok := p.importedName()
		if !ok {
			p.syncDecl()
			return false
		}
		spec.Imported = name.Text
		spec.Local = name.Text
		spec.Loc = name.Span
		if p.cur.Kind == TokenAs {
			p.next()
			local, ok := p.expect(TokenIdent)
			if !ok {
				p.syncDecl()
				return false
			}
			spec.Local = local.Text
		}
		decl.Named = append(decl.Named, spec)
		if p.cur.Kind != TokenComma {
			break
		}
		p.next()
	}
	_, ok := p.expect(TokenRBrace)
	if !ok {
		p.syncDecl()
	}
	return ok
}

// importedName accepts identifiers plus keywords usable as import names,
// such as `default as Foo`.
func (p *parser) importedName() (Token, bool) {
	switch p.cur.Kind {
	case TokenIdent, TokenDefault, TokenType:
		tok := p.cur
		p.next()
		return tok, true
	}
	return p.expect(TokenIdent)
}

func (p *parser) parseInterface(export bool) Decl {
	start := p.cur.Span.Start
	p.next() // interface
	nameTok, ok := p.expect(TokenIdent)
	if !ok {
		p.syncDecl()
		return nil
	}
	decl := &InterfaceDecl{
		Name:   &Ident{Name: nameTok.Text, Loc: nameTok.Span},
		Export: export,
	}
	if p.cur.Kind == TokenExtends {
		p.next()
		for {
			t := p.parsePostfixType()
			if t == nil {
				p.syncDecl()
				return nil
			}
			decl.Extends = append(decl.Extends, t)
			if p.cur.Kind != TokenComma {
				break
			}
			p.next()
		}
	}
	if _, ok := p.expect(TokenLBrace); !ok {
		p.syncDecl()
		return nil
	}
	for p.cur.Kind != TokenRBrace && p.cur.Kind != TokenEOF {
		before := p.cur
		m := p.parseMember()
		if m == nil {
			p.skipMember()
			// skipMember stops at an unmatched ) or } without consuming it;
			// a member parse that consumed nothing would loop forever.
			if p.cur == before {
				p.next()
			}
			continue
		}
		decl.Members = append(decl.Members, m)
	}
	endTok, _ := p.expect(TokenRBrace)
	decl.Loc = Span{Start: start, End: endTok.Span.End}
	return decl
}

func (p *parser) parseMember() Member {
	start := p.cur.Span.Start
	readonly := false
	if p.cur.Kind == TokenReadonly && (p.peek.Kind == TokenIdent || p.peek.Kind == TokenColon) {
		readonly = true
		p.next()
	}
	nameTok, ok := p.memberName()
	if !ok {
		return nil
	}
	name := &Ident{Name: nameTok.Text, Loc: nameTok.Span}

	optional := false
	if p.cur.Kind == TokenQuestion {
		optional = true
		p.next()
	}

	if p.cur.Kind == TokenLParen {
		if optional {
			p.errorf(nameTok.Span, "optional method %q is not supported", nameTok.Text)
		}
		return p.parseMethodSig(name, start)
	}

	if _, ok := p.expect(TokenColon); !ok {
		return nil
	}
	t := p.parseType()
	if t == nil {
		return nil
	}
	end := t.Span().End
	if p.cur.Kind == TokenSemi || p.cur.Kind == TokenComma {
		p.next()
	}
	return &PropertySig{
		Name:     name,
		Optional: optional,
		Readonly: readonly,
		Type:     t,
		Loc:      Span{Start: start, End: end},
	}
}

// memberName accepts identifiers and keyword-spelled member names.
func (p *parser) memberName() (Token, bool) {
	switch p.cur.Kind {
	case TokenIdent, TokenType, TokenDefault, TokenFrom, TokenAs, TokenEnum, TokenReadonly:
		tok := p.cur
		p.next()
		return tok, true
	}
	return p.expect(TokenIdent)
}

func (p *parser) parseMethodSig(name *Ident, start Pos) Member {
	p.next() // (
	var params []ParamDecl
	for p.cur.Kind != TokenRParen && p.cur.Kind != TokenEOF {
		pd, ok := p.parseParam()
		if !ok {
			p.skipMember()
			return nil
		}
		params = append(params, pd)
		if p.cur.Kind != TokenComma {
			break
		}
		p.next()
	}
	if _, ok := p.expect(TokenRParen); !ok {
		return nil
	}
	if _, ok := p.expect(TokenColon); !ok {
		return nil
	}
	ret := p.parseType()
	if ret == nil {
		return nil
	}
	end := ret.Span().End
	if p.cur.Kind == TokenSemi || p.cur.Kind == TokenComma {
		p.next()
	}
	return &MethodSig{
		Name:   name,
		Params: params,
		Return: ret,
		Loc:    Span{Start: start, End: end},
	}
}

func (p *parser) parseParam() (ParamDecl, bool) {
	start := p.cur.Span.Start
	nameTok, ok := p.memberName()
	if !ok {
		return ParamDecl{}, false
	}
	pd := ParamDecl{Name: &Ident{Name: nameTok.Text, Loc: nameTok.Span}}
	if p.cur.Kind == TokenQuestion {
		pd.Optional = true
		p.next()
	}
	if _, ok := p.expect(TokenColon); !ok {
		return ParamDecl{}, false
	}
	t := p.parseType()
	if t == nil {
		return ParamDecl{}, false
	}
	pd.Type = t
	pd.Loc = Span{Start: start, End: t.Span().End}
	return pd, true
}

// skipMember discards tokens to the end of the current interface member.
func (p *parser) skipMember() {
	depth := 0
	for p.cur.Kind != TokenEOF {
		switch p.cur.Kind {
		case TokenSemi:
			if depth == 0 {
				p.next()
				return
			}
		case TokenLBrace, TokenLParen:
			depth++
		case TokenRBrace, TokenRParen:
			if depth == 0 {
				return
			}
			depth--
		}
		p.next()
	}
}

func (p *parser) parseTypeAlias(export bool) Decl {
	start := p.cur.Span.Start
	p.next() // type
	nameTok, ok := p.expect(TokenIdent)
	if !ok {
		p.syncDecl()
		return nil
	}
	decl := &TypeAliasDecl{
		Name:   &Ident{Name: nameTok.Text, Loc: nameTok.Span},
		Export: export,
	}
	if p.cur.Kind == TokenLAngle {
		p.next()
		for p.cur.Kind == TokenIdent {
			decl.TypeParams = append(decl.TypeParams, p.cur.Text)
			p.next()
			if p.cur.Kind != TokenComma {
				break
			}
			p.next()
		}
		if _, ok := p.expect(TokenRAngle); !ok {
			p.syncDecl()
			return nil
		}
	}
	if _, ok := p.expect(TokenAssign); !ok {
		p.syncDecl()
		return nil
	}
	t := p.parseType()
	if t == nil {
		p.syncDecl()
		return nil
	}
	decl.Type = t
	end := t.Span().End
	if p.cur.Kind == TokenSemi {
		p.next()
	}
	decl.Loc = Span{Start: start, End: end}
	return decl
}

func (p *parser) parseEnum(export bool) Decl {
	start := p.cur.Span.Start
	p.next() // enum
	nameTok, ok := p.expect(TokenIdent)
	if !ok {
		p.syncDecl()
		return nil
	}
	decl := &EnumDecl{
		Name:   &Ident{Name: nameTok.Text, Loc: nameTok.Span},
		Export: export,
	}
	if _, ok := p.expect(TokenLBrace); !ok {
		p.syncDecl()
		return nil
	}
	for p.cur.Kind != TokenRBrace && p.cur.Kind != TokenEOF {
		memberTok, ok := p.memberName()
		if !ok {
			p.syncDecl()
			return nil
		}
		member := EnumMemberDecl{
			Name: &Ident{Name: memberTok.Text, Loc: memberTok.Span},
			Loc:  memberTok.Span,
		}
		if p.cur.Kind == TokenAssign {
			p.next()
			init := p.parseEnumInit()
			if init == nil {
				p.syncDecl()
				return nil
			}
			member.Init = init
			member.Loc = Span{Start: memberTok.Span.Start, End: init.Span().End}
		}
		decl.Members = append(decl.Members, member)
		if p.cur.Kind != TokenComma {
			break
		}
		p.next()
	}
	endTok, _ := p.expect(TokenRBrace)
	decl.Loc = Span{Start: start, End: endTok.Span.End}
	return decl
}

func (p *parser) parseEnumInit() Expr {
	switch p.cur.Kind {
	case TokenString:
		lit := &StringLit{Value: p.cur.Text, Loc: p.cur.Span}
		p.next()
		return lit
	case TokenNumber:
		return p.parseNumberLit(false)
	case TokenMinus:
		start := p.cur.Span
		p.next()
		if p.cur.Kind != TokenNumber {
			p.errorf(p.cur.Span, "expected number literal after '-', found %s", p.describe(p.cur))
			return nil
		}
		lit := p.parseNumberLit(true)
		if nl, ok := lit.(*NumberLit); ok {
			nl.Loc = Span{Start: start.Start, End: nl.Loc.End}
		}
		return lit
	default:
		p.errorf(p.cur.Span, "expected enum member initializer, found %s", p.describe(p.cur))
		return nil
	}
}

func (p *parser) parseNumberLit(negate bool) Expr {
	v, err := strconv.ParseFloat(p.cur.Text, 64)
	if err != nil {
		p.errorf(p.cur.Span, "invalid number literal %q", p.cur.Text)
		p.next()
		return nil
	}
	raw := p.cur.Text
	if negate {
		v = -v
		raw = "-" + raw
	}
	lit := &NumberLit{Value: v, Raw: raw, Loc: p.cur.Span}
	p.next()
	return lit
}

func (p *parser) parseExprStmt() Decl {
	start := p.cur.Span.Start
	expr := p.parseExpr()
	if expr == nil {
		p.syncDecl()
		return nil
	}
	end := expr.Span().End
	if p.cur.Kind == TokenSemi {
		p.next()
	}
	return &ExprStmt{Expr: expr, Loc: Span{Start: start, End: end}}
}

func (p *parser) parseExpr() Expr {
	var expr Expr
	switch p.cur.Kind {
	case TokenIdent:
		expr = &Ident{Name: p.cur.Text, Loc: p.cur.Span}
		p.next()
	case TokenString:
		expr = &StringLit{Value: p.cur.Text, Loc: p.cur.Span}
		p.next()
	case TokenNumber:
		expr = p.parseNumberLit(false)
	case TokenNull:
		expr = &Ident{Name: "null", Loc: p.cur.Span}
		p.next()
	default:
		p.errorf(p.cur.Span, "expected an expression, found %s", p.describe(p.cur))
		return nil
	}
	if expr == nil {
		return nil
	}

	for {
		switch p.cur.Kind {
		case TokenDot:
			p.next()
			nameTok, ok := p.memberName()
			if !ok {
				return nil
			}
			expr = &MemberExpr{
				Obj:  expr,
				Prop: &Ident{Name: nameTok.Text, Loc: nameTok.Span},
				Loc:  Span{Start: expr.Span().Start, End: nameTok.Span.End},
			}
		case TokenLAngle:
			call := p.parseCall(expr, true)
			if call == nil {
				return nil
			}
			expr = call
		case TokenLParen:
			call := p.parseCall(expr, false)
			if call == nil {
				return nil
			}
			expr = call
		default:
			return expr
		}
	}
}

func (p *parser) parseCall(callee Expr, typeArgs bool) Expr {
	call := &CallExpr{Callee: callee}
	if typeArgs {
		p.next() // <
		for p.cur.Kind != TokenRAngle && p.cur.Kind != TokenEOF {
			t := p.parseType()
			if t == nil {
				return nil
			}
			call.TypeArgs = append(call.TypeArgs, t)
			if p.cur.Kind != TokenComma {
				break
			}
			p.next()
		}
		if _, ok := p.expect(TokenRAngle); !ok {
			return nil
		}
	}
	if _, ok := p.expect(TokenLParen); !ok {
		return nil
	}
	for p.cur.Kind != TokenRParen && p.cur.Kind != TokenEOF {
		arg := p.parseExpr()
		if arg == nil {
			return nil
		}
		call.Args = append(call.Args, arg)
		if p.cur.Kind != TokenComma {
			break
		}
		p.next()
	}
	endTok, ok := p.expect(TokenRParen)
	if !ok {
		return nil
	}
	call.Loc = Span{Start: callee.Span().Start, End: endTok.Span.End}
	return call
}

func (p *parser) parseType() TypeNode {
	first := p.parsePostfixType()
	if first == nil {
		return nil
	}
	if p.cur.Kind != TokenPipe {
		return first
	}
	union := &UnionType{Members: []TypeNode{first}}
	for p.cur.Kind == TokenPipe {
		p.next()
		m := p.parsePostfixType()
		if m == nil {
			return nil
		}
		union.Members = append(union.Members, m)
	}
	union.Loc = Span{
		Start: first.Span().Start,
		End:   union.Members[len(union.Members)-1].Span().End,
	}
	return union
}

func (p *parser) parsePostfixType() TypeNode {
	t := p.parsePrimaryType()
	if t == nil {
		return nil
	}
	for p.cur.Kind == TokenLBracket && p.peek.Kind == TokenRBracket {
		p.next()
		end := p.cur.Span.End
		p.next()
		t = &ArrayType{Elem: t, Loc: Span{Start: t.Span().Start, End: end}}
	}
	return t
}

var keywordTypes = map[string]bool{
	"number":    true,
	"string":    true,
	"boolean":   true,
	"void":      true,
	"undefined": true,
}

func (p *parser) parsePrimaryType() TypeNode {
	switch p.cur.Kind {
	case TokenIdent:
		tok := p.cur
		p.next()
		if keywordTypes[tok.Text] {
			return &KeywordType{Name: tok.Text, Loc: tok.Span}
		}
		ref := &TypeRef{Name: &Ident{Name: tok.Text, Loc: tok.Span}, Loc: tok.Span}
		if p.cur.Kind == TokenDot {
			p.next()
			nameTok, ok := p.expect(TokenIdent)
			if !ok {
				return nil
			}
			ref.Qualifier = ref.Name
			ref.Name = &Ident{Name: nameTok.Text, Loc: nameTok.Span}
			ref.Loc = Span{Start: tok.Span.Start, End: nameTok.Span.End}
		}
		if p.cur.Kind == TokenLAngle {
			p.next()
			for p.cur.Kind != TokenRAngle && p.cur.Kind != TokenEOF {
				arg := p.parseType()
				if arg == nil {
					return nil
				}
				ref.Args = append(ref.Args, arg)
				if p.cur.Kind != TokenComma {
					break
				}
				p.next()
			}
			endTok, ok := p.expect(TokenRAngle)
			if !ok {
				return nil
			}
			ref.Loc = Span{Start: tok.Span.Start, End: endTok.Span.End}
		}
		return ref
	case TokenNull:
		t := &KeywordType{Name: "null", Loc: p.cur.Span}
		p.next()
		return t
	case TokenString:
		t := &LiteralType{Value: p.cur.Text, Loc: p.cur.Span}
		p.next()
		return t
	case TokenNumber:
		lit := p.parseNumberLit(false)
		if lit == nil {
			return nil
		}
		nl := lit.(*NumberLit)
		return &LiteralType{Value: nl.Value, Loc: nl.Loc}
	case TokenMinus:
		start := p.cur.Span.Start
		p.next()
		if p.cur.Kind != TokenNumber {
			p.errorf(p.cur.Span, "expected number literal after '-', found %s", p.describe(p.cur))
			return nil
		}
		lit := p.parseNumberLit(true)
		if lit == nil {
			return nil
		}
		nl := lit.(*NumberLit)
		return &LiteralType{Value: nl.Value, Loc: Span{Start: start, End: nl.Loc.End}}
	case TokenLBrace:
		return p.parseTypeLiteral()
	case TokenLParen:
		// A parenthesis opens either a function type's parameter list or a
		// parenthesized type. Parameter lists start with `)` or `name:`.
		if p.peek.Kind == TokenRParen || p.isParamListAhead() {
			return p.parseFuncType()
		}
		p.next()
		t := p.parseType()
		if t == nil {
			return nil
		}
		if _, ok := p.expect(TokenRParen); !ok {
			return nil
		}
		if p.cur.Kind == TokenArrow {
			p.errorf(p.cur.Span, "function type parameters must be named")
			return nil
		}
		return t
	default:
		p.errorf(p.cur.Span, "expected a type, found %s", p.describe(p.cur))
		return nil
	}
}

// isParamListAhead peeks past the opening parenthesis: an identifier
// followed by ':', '?' or ',' can only start a parameter list.
func (p *parser) isParamListAhead() bool {
	if p.peek.Kind != TokenIdent {
		return false
	}
	save := *p.lex
	third := p.lex.Next()
	*p.lex = save
	switch third.Kind {
	case TokenColon, TokenQuestion, TokenComma:
		return true
	}
	return false
}

func (p *parser) parseFuncType() TypeNode {
	start := p.cur.Span.Start
	p.next() // (
	var params []ParamDecl
	for p.cur.Kind != TokenRParen && p.cur.Kind != TokenEOF {
		pd, ok := p.parseParam()
		if !ok {
			return nil
		}
		params = append(params, pd)
		if p.cur.Kind != TokenComma {
			break
		}
		p.next()
	}
	if _, ok := p.expect(TokenRParen); !ok {
		return nil
	}
	if _, ok := p.expect(TokenArrow); !ok {
		return nil
	}
	ret := p.parseType()
	if ret == nil {
		return nil
	}
	return &FuncType{Params: params, Return: ret, Loc: Span{Start: start, End: ret.Span().End}}
}

func (p *parser) parseTypeLiteral() TypeNode {
	start := p.cur.Span.Start
	p.next() // {
	lit := &TypeLiteral{}
	for p.cur.Kind != TokenRBrace && p.cur.Kind != TokenEOF {
		before := p.cur
		m := p.parseMember()
		if m == nil {
			p.skipMember()
			if p.cur == before {
				p.next()
			}
			continue
		}
		lit.Members = append(lit.Members, m)
	}
	endTok, ok := p.expect(TokenRBrace)
	if !ok {
		return nil
	}
	lit.Loc = Span{Start: start, End: endTok.Span.End}
	return lit
}
