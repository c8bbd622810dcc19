package lox

import "testing"

func scanAll(t *testing.T, source string) ([]Token, *Session) {
	s := NewSession(func(line string) {})
	var sc Scanner
	sc.Init(source, s)
	toks := sc.ScanTokens()
	return toks, s
}

func TestScanTokensPunctuationAndOperators(t *testing.T) {
	toks, s := scanAll(t, "(){},.-+;*!!====<=>=<>")
	if s.HadError() {
		t.Fatalf("unexpected scan error")
	}

	want := []TokenType{
		LEFT_PAREN, RIGHT_PAREN, LEFT_BRACE, RIGHT_BRACE, COMMA, DOT,
		MINUS, PLUS, SEMICOLON, STAR, BANG, BANG_EQUAL, EQUAL_EQUAL, EQUAL,
		LESS_EQUAL, GREATER_EQUAL, LESS, GREATER, EOF,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i, typ := range want {
		if toks[i].Type != typ {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, typ)
		}
	}
}

func TestScanLineComments(t *testing.T) {
	toks, s := scanAll(t, "var x = 1; // a comment\nvar y = 2;")
	if s.HadError() {
		t.Fatalf("unexpected scan error")
	}
	for _, tok := range toks {
		if tok.Lexeme == "a comment" {
			t.Fatalf("comment text should not produce a token")
		}
	}
}

func TestScanStringLiteral(t *testing.T) {
	toks, s := scanAll(t, `"hello world"`)
	if s.HadError() {
		t.Fatalf("unexpected scan error")
	}
	if toks[0].Type != STRING || toks[0].Literal != "hello world" {
		t.Fatalf("got %+v", toks[0])
	}
}

func TestScanUnterminatedString(t *testing.T) {
	_, s := scanAll(t, `"unterminated`)
	if !s.HadError() {
		t.Fatalf("expected scan error for unterminated string")
	}
}

func TestScanNumberLiteral(t *testing.T) {
	toks, s := scanAll(t, "123 45.67")
	if s.HadError() {
		t.Fatalf("unexpected scan error")
	}
	if toks[0].Literal.(float64) != 123 {
		t.Errorf("got %v, want 123", toks[0].Literal)
	}
	if toks[1].Literal.(float64) != 45.67 {
		t.Errorf("got %v, want 45.67", toks[1].Literal)
	}
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	toks, s := scanAll(t, "var class fun myVar")
	if s.HadError() {
		t.Fatalf("unexpected scan error")
	}
	want := []TokenType{VAR, CLASS, FUN, IDENTIFIER, EOF}
	for i, typ := range want {
		if toks[i].Type != typ {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, typ)
		}
	}
}

func TestScanUnexpectedCharacterContinuesScanning(t *testing.T) {
	toks, s := scanAll(t, "@ var x = 1;")
	if !s.HadError() {
		t.Fatalf("expected scan error for '@'")
	}
	// Scanning should continue past the bad character and still find VAR.
	found := false
	for _, tok := range toks {
		if tok.Type == VAR {
			found = true
		}
	}
	if !found {
		t.Fatalf("scanning should continue past unexpected character, got %v", toks)
	}
}
