package lexer

import (
	"testing"

	"solparse/token"
)

func kindsOf(toks []token.Token) []token.Type {
	kinds := make([]token.Type, 0, len(toks))
	for _, t := range toks {
		kinds = append(kinds, t.Type)
	}
	return kinds
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	input := "pragma contract struct enum function modifier event using mapping customIdent"
	expected := []token.Type{
		token.PRAGMA, token.CONTRACT, token.STRUCT, token.ENUM, token.FUNCTION,
		token.MODIFIER, token.EVENT, token.USING, token.MAPPING, token.IDENTIFIER,
	}

	toks := New("t.sol", input).Scan()
	if len(toks) < len(expected) {
		t.Fatalf("expected at least %d tokens, got %d", len(expected), len(toks))
	}
	for i, exp := range expected {
		if toks[i].Type != exp {
			t.Errorf("token %d: expected %s, got %s", i, exp, toks[i].Type)
		}
	}
}

func TestSizedElementaryTypes(t *testing.T) {
	input := "uint uint256 uint8 bytes bytes32 fixed ufixed128x18 int24"
	toks := New("t.sol", input).Scan()

	want := []struct {
		kind   token.Type
		first  int
		second int
	}{
		{token.UINT, 256, 0},
		{token.UINT, 256, 0},
		{token.UINT, 8, 0},
		{token.BYTES, 0, 0},
		{token.BYTES, 32, 0},
		{token.FIXED, 128, 18},
		{token.UFIXED, 128, 18},
		{token.INT, 24, 0},
	}
	for i, w := range want {
		got := toks[i]
		if got.Type != w.kind || got.FirstSize != w.first || got.SecondSize != w.second {
			t.Errorf("token %d: expected {%s %d %d}, got {%s %d %d}",
				i, w.kind, w.first, w.second, got.Type, got.FirstSize, got.SecondSize)
		}
	}
}

func TestNumbers(t *testing.T) {
	input := "42 0 1.5 2e10 1_000 0x1F 0XAB"
	expected := []token.Type{
		token.NUMBER, token.NUMBER, token.NUMBER, token.NUMBER, token.NUMBER,
		token.HEX_NUMBER, token.HEX_NUMBER,
	}
	toks := New("t.sol", input).Scan()
	for i, exp := range expected {
		if toks[i].Type != exp {
			t.Errorf("token %d: expected %s, got %s (%q)", i, exp, toks[i].Type, toks[i].Literal)
		}
	}
}

func TestStrings(t *testing.T) {
	input := `"hello" unicode"world" hex"DEADBEEF"`
	toks := New("t.sol", input).Scan()

	if toks[0].Type != token.STRING || toks[0].Literal != "hello" {
		t.Errorf("expected STRING 'hello', got %s %q", toks[0].Type, toks[0].Literal)
	}
	if toks[1].Type != token.UNICODE_STRING || toks[1].Literal != "world" {
		t.Errorf("expected UNICODE_STRING 'world', got %s %q", toks[1].Type, toks[1].Literal)
	}
	if toks[2].Type != token.HEX_STRING || toks[2].Literal != "DEADBEEF" {
		t.Errorf("expected HEX_STRING 'DEADBEEF', got %s %q", toks[2].Type, toks[2].Literal)
	}
}

func TestOperatorsAndBrackets(t *testing.T) {
	input := `(){}[],.;+-*/%! != == = < <= > >= && || & | ^ ~ << >> ? : :: => ++ --`
	expected := []token.Type{
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE, token.LBRACKET, token.RBRACKET,
		token.COMMA, token.DOT, token.SEMICOLON, token.PLUS, token.MINUS, token.STAR, token.SLASH,
		token.PERCENT, token.BANG, token.NOT_EQ, token.EQ, token.ASSIGN, token.LT, token.LT_EQ,
		token.GT, token.GT_EQ, token.AND_AND, token.OR_OR, token.AMPERSAND, token.PIPE, token.CARET,
		token.TILDE, token.SHL, token.SHR, token.QUESTION, token.COLON, token.DOUBLE_COLON,
		token.ARROW, token.INCREMENT, token.DECREMENT,
	}
	toks := New("t.sol", input).Scan()
	got := kindsOf(toks)
	for i, exp := range expected {
		if got[i] != exp {
			t.Errorf("token %d: expected %s, got %s", i, exp, got[i])
		}
	}
}

func TestDocCommentVsPlainComment(t *testing.T) {
	input := "// plain\n/// doc\ncontract C {}"
	toks := New("t.sol", input).Scan()
	if toks[0].Type != token.COMMENT {
		t.Errorf("expected COMMENT, got %s", toks[0].Type)
	}
	if toks[1].Type != token.DOC_COMMENT {
		t.Errorf("expected DOC_COMMENT, got %s", toks[1].Type)
	}
}

func TestUnterminatedStringReportsError(t *testing.T) {
	s := New("t.sol", `"unterminated`)
	s.Scan()
	if len(s.Errors()) == 0 {
		t.Errorf("expected a lexical error for an unterminated string")
	}
}
