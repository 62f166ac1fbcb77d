// Package syntax implements the source frontend for native module spec files:
// a lexer and parser for the TypeScript subset spec files are written in, and
// a binder that assigns scope-level identity to declared names so later stages
// can recognize declarations by symbol rather than by text.
package syntax

import "fmt"

// TokenKind identifies the lexical category of a token.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenIllegal

	TokenIdent
	TokenString // quoted string literal, Text holds the decoded value
	TokenNumber // numeric literal, Text holds the raw spelling

	// Keywords.
	TokenImport
	TokenExport
	TokenDefault
	TokenFrom
	TokenInterface
	TokenExtends
	TokenType
	TokenEnum
	TokenConst
	TokenAs
	TokenNull
	TokenReadonly

	// Punctuation.
	TokenLBrace   // {
	TokenRBrace   // }
	TokenLParen   // (
	TokenRParen   // )
	TokenLBracket // [
	TokenRBracket // ]
	TokenLAngle   // <
	TokenRAngle   // >
	TokenComma    // ,
	TokenSemi     // ;
	TokenColon    // :
	TokenDot      // .
	TokenAssign   // =
	TokenPipe     // |
	TokenQuestion // ?
	TokenStar     // *
	TokenMinus    // -
	TokenArrow    // =>
)

var tokenNames = map[TokenKind]string{
	TokenEOF:       "end of file",
	TokenIllegal:   "illegal token",
	TokenIdent:     "identifier",
	TokenString:    "string literal",
	TokenNumber:    "number literal",
	TokenImport:    "'import'",
	TokenExport:    "'export'",
	TokenDefault:   "'default'",
	TokenFrom:      "'from'",
	TokenInterface: "'interface'",
	TokenExtends:   "'extends'",
	TokenType:      "'type'",
	TokenEnum:      "'enum'",
	TokenConst:     "'const'",
	TokenAs:        "'as'",
	TokenNull:      "'null'",
	TokenReadonly:  "'readonly'",
	TokenLBrace:    "'{'",
	TokenRBrace:    "'}'",
	TokenLParen:    "'('",
	TokenRParen:    "')'",
	TokenLBracket:  "'['",
	TokenRBracket:  "']'",
	TokenLAngle:    "'<'",
	TokenRAngle:    "'>'",
	TokenComma:     "','",
	TokenSemi:      "';'",
	TokenColon:     "':'",
	TokenDot:       "'.'",
	TokenAssign:    "'='",
	TokenPipe:      "'|'",
	TokenQuestion:  "'?'",
	TokenStar:      "'*'",
	TokenMinus:     "'-'",
	TokenArrow:     "'=>'",
}

// String returns a human-readable name for the token kind.
func (k TokenKind) String() string {
	if s, ok := tokenNames[k]; ok {
		return s
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

var keywords = map[string]TokenKind{
	"import":    TokenImport,
	"export":    TokenExport,
	"default":   TokenDefault,
	"from":      TokenFrom,
	"interface": TokenInterface,
	"extends":   TokenExtends,
	"type":      TokenType,
	"enum":      TokenEnum,
	"const":     TokenConst,
	"as":        TokenAs,
	"null":      TokenNull,
	"readonly":  TokenReadonly,
}

// Token is a single lexical token with its source location.
type Token struct {
	Kind TokenKind
	Text string
	Span Span
}

// Pos is a position in a source file. Line and Column are 1-based.
type Pos struct {
	Offset int
	Line   int
	Column int
}

// String formats the position as line:column.
func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is a half-open source range [Start, End).
type Span struct {
	Start Pos
	End   Pos
}

// String formats the span's start position.
func (s Span) String() string {
	return s.Start.String()
}
