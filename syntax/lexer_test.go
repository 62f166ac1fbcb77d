package syntax

import "testing"

func TestLexerKinds(t *testing.T) {
	src := `import { TurboModule } from 'react-native';
interface Spec extends TurboModule {
  add(a: number, b?: number): Promise<number>;
}
enum Level { Low = 0, High = -1.5 }
// line comment
/* block
   comment */
export default reg.getEnforcing<Spec>("Calc");`

	want := []struct {
		kind TokenKind
		text string
	}{
		{TokenImport, "import"},
		{TokenLBrace, "{"},
		{TokenIdent, "TurboModule"},
		{TokenRBrace, "}"},
		{TokenFrom, "from"},
		{TokenString, "react-native"},
		{TokenSemi, ";"},
		{TokenInterface, "interface"},
		{TokenIdent, "Spec"},
		{TokenExtends, "extends"},
		{TokenIdent, "TurboModule"},
		{TokenLBrace, "{"},
		{TokenIdent, "add"},
		{TokenLParen, "("},
		{TokenIdent, "a"},
		{TokenColon, ":"},
		{TokenIdent, "number"},
		{TokenComma, ","},
		{TokenIdent, "b"},
		{TokenQuestion, "?"},
		{TokenColon, ":"},
		{TokenIdent, "number"},
		{TokenRParen, ")"},
		{TokenColon, ":"},
		{TokenIdent, "Promise"},
		{TokenLAngle, "<"},
		{TokenIdent, "number"},
		{TokenRAngle, ">"},
		{TokenSemi, ";"},
		{TokenRBrace, "}"},
		{TokenEnum, "enum"},
		{TokenIdent, "Level"},
		{TokenLBrace, "{"},
		{TokenIdent, "Low"},
		{TokenAssign, "="},
		{TokenNumber, "0"},
		{TokenComma, ","},
		{TokenIdent, "High"},
		{TokenAssign, "="},
		{TokenMinus, "-"},
		{TokenNumber, "1.5"},
		{TokenRBrace, "}"},
		{TokenExport, "export"},
		{TokenDefault, "default"},
		{TokenIdent, "reg"},
		{TokenDot, "."},
		{TokenIdent, "getEnforcing"},
		{TokenLAngle, "<"},
		{TokenIdent, "Spec"},
		{TokenRAngle, ">"},
		{TokenLParen, "("},
		{TokenString, "Calc"},
		{TokenRParen, ")"},
		{TokenSemi, ";"},
	}

	lex := NewLexer(src)
	for i, w := range want {
		tok := lex.Next()
		if tok.Kind != w.kind {
			t.Fatalf("token %d: kind = %v, want %v (text %q)", i, tok.Kind, w.kind, tok.Text)
		}
		if tok.Text != w.text {
			t.Errorf("token %d: text = %q, want %q", i, tok.Text, w.text)
		}
	}
	if tok := lex.Next(); tok.Kind != TokenEOF {
		t.Errorf("trailing token kind = %v, want TokenEOF", tok.Kind)
	}
}

func TestLexerPositions(t *testing.T) {
	lex := NewLexer("interface\n  Spec")
	first := lex.Next()
	if first.Span.Start.Line != 1 || first.Span.Start.Column != 1 {
		t.Errorf("first token at %d:%d, want 1:1", first.Span.Start.Line, first.Span.Start.Column)
	}
	second := lex.Next()
	if second.Span.Start.Line != 2 || second.Span.Start.Column != 3 {
		t.Errorf("second token at %d:%d, want 2:3", second.Span.Start.Line, second.Span.Start.Column)
	}
}

func TestLexerStringEscapes(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`'plain'`, "plain"},
		{`"double"`, "double"},
		{`'it\'s'`, "it's"},
		{`"tab\there"`, "tab\there"},
	}
	for _, tt := range tests {
		tok := NewLexer(tt.src).Next()
		if tok.Kind != TokenString {
			t.Errorf("%s: kind = %v, want TokenString", tt.src, tok.Kind)
			continue
		}
		if tok.Text != tt.want {
			t.Errorf("%s: text = %q, want %q", tt.src, tok.Text, tt.want)
		}
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	tok := NewLexer("'oops\n").Next()
	if tok.Kind != TokenIllegal {
		t.Errorf("kind = %v, want TokenIllegal", tok.Kind)
	}
}

func TestLexerIllegalRune(t *testing.T) {
	lex := NewLexer("@ foo")
	if tok := lex.Next(); tok.Kind != TokenIllegal {
		t.Fatalf("kind = %v, want TokenIllegal", tok.Kind)
	}
	if tok := lex.Next(); tok.Kind != TokenIdent || tok.Text != "foo" {
		t.Errorf("lexer did not recover after illegal rune, got %v %q", tok.Kind, tok.Text)
	}
}
