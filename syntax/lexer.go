package syntax

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Lexer tokenizes a spec source file. Whitespace and comments are skipped;
// every other byte produces a token, with unrecognized input surfacing as
// TokenIllegal rather than stopping the scan.
type Lexer struct {
	input   string
	pos     int  // offset of ch
	readPos int  // offset after ch
	ch      rune // current character, 0 at EOF
	line    int
	column  int
}

// NewLexer returns a lexer over the given source text.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPos >= len(l.input) {
		l.ch = 0
		l.pos = l.readPos
		l.readPos++
		l.column++
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.readPos:])
	l.ch = r
	l.pos = l.readPos
	l.readPos += w
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r
}

func (l *Lexer) position() Pos {
	return Pos{Offset: l.pos, Line: l.line, Column: l.column}
}

// Next returns the next token in the input.
func (l *Lexer) Next() Token {
	l.skipTrivia()

	start := l.position()

	switch {
	case l.ch == 0:
		return Token{Kind: TokenEOF, Span: Span{Start: start, End: start}}
	case isIdentStart(l.ch):
		return l.lexIdent(start)
	case unicode.IsDigit(l.ch):
		return l.lexNumber(start)
	case l.ch == '\'' || l.ch == '"':
		return l.lexString(start)
	case l.ch == '=' && l.peekChar() == '>':
		l.readChar()
		l.readChar()
		return Token{Kind: TokenArrow, Text: "=>", Span: Span{Start: start, End: l.position()}}
	}

	var kind TokenKind
	switch l.ch {
	case '{':
		kind = TokenLBrace
	case '}':
		kind = TokenRBrace
	case '(':
		kind = TokenLParen
	case ')':
		kind = TokenRParen
	case '[':
		kind = TokenLBracket
	case ']':
		kind = TokenRBracket
	case '<':
		kind = TokenLAngle
	case '>':
		kind = TokenRAngle
	case ',':
		kind = TokenComma
	case ';':
		kind = TokenSemi
	case ':':
		kind = TokenColon
	case '.':
		kind = TokenDot
	case '=':
		kind = TokenAssign
	case '|':
		kind = TokenPipe
	case '?':
		kind = TokenQuestion
	case '*':
		kind = TokenStar
	case '-':
		kind = TokenMinus
	default:
		text := string(l.ch)
		l.readChar()
		return Token{Kind: TokenIllegal, Text: text, Span: Span{Start: start, End: l.position()}}
	}
	text := string(l.ch)
	l.readChar()
	return Token{Kind: kind, Text: text, Span: Span{Start: start, End: l.position()}}
}

func (l *Lexer) skipTrivia() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		case l.ch == '/' && l.peekChar() == '*':
			l.readChar()
			l.readChar()
			for l.ch != 0 {
				if l.ch == '*' && l.peekChar() == '/' {
					l.readChar()
					l.readChar()
					break
				}
				l.readChar()
			}
		default:
			return
		}
	}
}

func (l *Lexer) lexIdent(start Pos) Token {
	for isIdentPart(l.ch) {
		l.readChar()
	}
	text := l.input[start.Offset:l.pos]
	kind := TokenIdent
	if kw, ok := keywords[text]; ok {
		kind = kw
	}
	return Token{Kind: kind, Text: text, Span: Span{Start: start, End: l.position()}}
}

func (l *Lexer) lexNumber(start Pos) Token {
	for unicode.IsDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && unicode.IsDigit(l.peekChar()) {
		l.readChar()
		for unicode.IsDigit(l.ch) {
			l.readChar()
		}
	}
	text := l.input[start.Offset:l.pos]
	return Token{Kind: TokenNumber, Text: text, Span: Span{Start: start, End: l.position()}}
}

func (l *Lexer) lexString(start Pos) Token {
	quote := l.ch
	l.readChar()
	var out []rune
	for l.ch != quote {
		if l.ch == 0 || l.ch == '\n' {
			return Token{
				Kind: TokenIllegal,
				Text: fmt.Sprintf("unterminated string literal starting at %s", start),
				Span: Span{Start: start, End: l.position()},
			}
		}
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case 'r':
				out = append(out, '\r')
			case '\\', '\'', '"', '`':
				out = append(out, l.ch)
			default:
				out = append(out, l.ch)
			}
		} else {
			out = append(out, l.ch)
		}
		l.readChar()
	}
	l.readChar() // closing quote
	return Token{Kind: TokenString, Text: string(out), Span: Span{Start: start, End: l.position()}}
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
