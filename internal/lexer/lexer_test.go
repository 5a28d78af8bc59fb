package lexer

import "testing"

func TestNextTokenBasics(t *testing.T) {
	input := "T = Union[int, float]\nT(3)\n"

	expected := []struct {
		typ TokenType
		lit string
	}{
		{TokenIdentifier, "T"},
		{TokenAssign, "="},
		{TokenIdentifier, "Union"},
		{TokenLBracket, "["},
		{TokenIdentifier, "int"},
		{TokenComma, ","},
		{TokenIdentifier, "float"},
		{TokenRBracket, "]"},
		{TokenNewline, "\n"},
		{TokenIdentifier, "T"},
		{TokenLParen, "("},
		{TokenNumber, "3"},
		{TokenRParen, ")"},
		{TokenNewline, "\n"},
		{TokenEOF, ""},
	}

	l := New(input, "t.py")
	for i, exp := range expected {
		tok := l.NextToken()
		if tok.Type != exp.typ {
			t.Fatalf("token %d: type = %s, want %s (literal %q)", i, tok.Type, exp.typ, tok.Literal)
		}
		if tok.Literal != exp.lit {
			t.Fatalf("token %d: literal = %q, want %q", i, tok.Literal, exp.lit)
		}
	}
}

func TestKeywordsAndImports(t *testing.T) {
	input := "from typing import Union as U\n"

	expected := []TokenType{
		TokenFrom, TokenIdentifier, TokenImport, TokenIdentifier,
		TokenAs, TokenIdentifier, TokenNewline, TokenEOF,
	}

	l := New(input, "t.py")
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("token %d: type = %s, want %s", i, tok.Type, want)
		}
	}
}

func TestEllipsisAndArrow(t *testing.T) {
	input := "Tuple[int, ...] -> None"

	var types []TokenType
	l := New(input, "t.py")
	for {
		tok := l.NextToken()
		types = append(types, tok.Type)
		if tok.Type == TokenEOF {
			break
		}
	}

	want := []TokenType{
		TokenIdentifier, TokenLBracket, TokenIdentifier, TokenComma,
		TokenEllipsis, TokenRBracket, TokenArrow, TokenNone, TokenEOF,
	}
	if len(types) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(types), len(want), types)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("token %d: type = %s, want %s", i, types[i], want[i])
		}
	}
}

func TestStringLiterals(t *testing.T) {
	l := New(`TypeVar("T")`, "t.py")

	toks := l.Tokenize()
	if len(toks) != 5 {
		t.Fatalf("got %d tokens, want 5: %v", len(toks), toks)
	}
	if toks[2].Type != TokenString || toks[2].Literal != "T" {
		t.Errorf("string token = %v, want STRING %q", toks[2], "T")
	}
	if len(l.Errors()) != 0 {
		t.Errorf("unexpected lexical errors: %v", l.Errors())
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New(`x = "abc`, "t.py")
	l.Tokenize()

	if len(l.Errors()) != 1 {
		t.Fatalf("got %d errors, want 1", len(l.Errors()))
	}
}

func TestCommentsAreSkipped(t *testing.T) {
	input := "# This should generate an error\nT(3)\n"

	l := New(input, "t.py")
	toks := l.Tokenize()

	want := []TokenType{
		TokenNewline, TokenIdentifier, TokenLParen, TokenNumber,
		TokenRParen, TokenNewline, TokenEOF,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(toks), len(want), toks)
	}
	for i := range want {
		if toks[i].Type != want[i] {
			t.Errorf("token %d: type = %s, want %s", i, toks[i].Type, want[i])
		}
	}
}

func TestTokenPositions(t *testing.T) {
	l := New("a = b\nc\n", "t.py")
	toks := l.Tokenize()

	// "c" is the 5th token: a, =, b, NEWLINE, c.
	c := toks[4]
	if c.Span.Start.Line != 2 || c.Span.Start.Column != 1 {
		t.Errorf("c position = %d:%d, want 2:1", c.Span.Start.Line, c.Span.Start.Column)
	}
	if c.Span.Start.Offset != 6 {
		t.Errorf("c offset = %d, want 6", c.Span.Start.Offset)
	}
}

func TestUnexpectedCharacter(t *testing.T) {
	l := New("a $ b", "t.py")
	toks := l.Tokenize()

	foundError := false
	for _, tok := range toks {
		if tok.Type == TokenError {
			foundError = true
		}
	}
	if !foundError {
		t.Error("expected an ERROR token for '$'")
	}
	if len(l.Errors()) != 1 {
		t.Errorf("got %d lexical errors, want 1", len(l.Errors()))
	}
}
