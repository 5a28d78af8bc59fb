// Package lexer implements the tokenizer for the Python-like subset
// understood by the pyrite checker. The scanner is line oriented:
// logical statements end at a newline, and comments never reach the
// parser.
package lexer

import (
	"fmt"

	"github.com/pyrite-dev/pyrite/internal/position"
)

// TokenType represents the type of a token.
type TokenType int

// Token types for the checked subset.
const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenError
	TokenNewline

	// Literals
	TokenIdentifier
	TokenNumber
	TokenString

	// Keywords
	TokenFrom
	TokenImport
	TokenAs
	TokenClass
	TokenDef
	TokenPass
	TokenNone

	// Symbols
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenComma
	TokenAssign
	TokenDot
	TokenColon
	TokenPipe
	TokenArrow
	TokenEllipsis
)

// tokenNames provides string representations for token types.
var tokenNames = map[TokenType]string{
	TokenEOF:     "EOF",
	TokenError:   "ERROR",
	TokenNewline: "NEWLINE",

	TokenIdentifier: "IDENTIFIER",
	TokenNumber:     "NUMBER",
	TokenString:     "STRING",

	TokenFrom:   "FROM",
	TokenImport: "IMPORT",
	TokenAs:     "AS",
	TokenClass:  "CLASS",
	TokenDef:    "DEF",
	TokenPass:   "PASS",
	TokenNone:   "NONE",

	TokenLParen:   "LPAREN",
	TokenRParen:   "RPAREN",
	TokenLBracket: "LBRACKET",
	TokenRBracket: "RBRACKET",
	TokenComma:    "COMMA",
	TokenAssign:   "ASSIGN",
	TokenDot:      "DOT",
	TokenColon:    "COLON",
	TokenPipe:     "PIPE",
	TokenArrow:    "ARROW",
	TokenEllipsis: "ELLIPSIS",
}

// String returns a string representation of the token type.
func (tt TokenType) String() string {
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(tt))
}

// keywords maps reserved words to their token types.
var keywords = map[string]TokenType{
	"from":   TokenFrom,
	"import": TokenImport,
	"as":     TokenAs,
	"class":  TokenClass,
	"def":    TokenDef,
	"pass":   TokenPass,
	"None":   TokenNone,
}

// Token represents a lexical token with position information.
type Token struct {
	Type    TokenType
	Literal string
	Span    position.Span
}

// String returns a string representation of the token.
func (t Token) String() string {
	return fmt.Sprintf("{%s %q %s}", t.Type, t.Literal, t.Span)
}

// Error describes a lexical error. Errors are accumulated on the lexer
// rather than aborting the scan.
type Error struct {
	Message string
	Span    position.Span
}

func (e Error) String() string {
	return fmt.Sprintf("%s: %s", e.Span.Start, e.Message)
}

// Lexer is a byte-cursor scanner over a single source file.
type Lexer struct {
	input        string
	filename     string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position (after current char)
	ch           byte // current char under examination
	line         int  // current 1-based line number
	column       int  // current 1-based column number

	errors []Error
}

// New creates a lexer for input with filename used in positions.
func New(input, filename string) *Lexer {
	l := &Lexer{
		input:    input,
		filename: filename,
		line:     1,
		column:   0,
	}
	l.readChar()
	return l
}

// Errors returns the lexical errors accumulated so far.
func (l *Lexer) Errors() []Error { return l.errors }

// readChar reads the next character and advances position.
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0 // NUL marks end of input
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++

	if l.position > 0 && l.position <= len(l.input) && l.input[l.position-1] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

// pos returns the position of the current character.
func (l *Lexer) pos() position.Position {
	return position.Position{
		Filename: l.filename,
		Line:     l.line,
		Column:   l.column,
		Offset:   l.position,
	}
}

// skipSpace skips spaces, tabs and carriage returns, never newlines.
func (l *Lexer) skipSpace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

// skipComment consumes a '#' comment up to (not including) the newline.
func (l *Lexer) skipComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// NextToken scans and returns the next token.
func (l *Lexer) NextToken() Token {
	l.skipSpace()
	if l.ch == '#' {
		l.skipComment()
	}

	start := l.pos()

	switch {
	case l.ch == 0:
		return Token{Type: TokenEOF, Span: position.Span{Start: start, End: start}}
	case l.ch == '\n':
		l.readChar()
		return l.token(TokenNewline, "\n", start)
	case isLetter(l.ch):
		lit := l.readIdentifier()
		typ := TokenIdentifier
		if kw, ok := keywords[lit]; ok {
			typ = kw
		}
		return l.token(typ, lit, start)
	case isDigit(l.ch):
		return l.token(TokenNumber, l.readNumber(), start)
	case l.ch == '\'' || l.ch == '"':
		lit, ok := l.readString(l.ch)
		if !ok {
			l.addError("unterminated string literal", start)
			return l.token(TokenError, lit, start)
		}
		return l.token(TokenString, lit, start)
	}

	switch l.ch {
	case '(':
		return l.emitSingle(TokenLParen, start)
	case ')':
		return l.emitSingle(TokenRParen, start)
	case '[':
		return l.emitSingle(TokenLBracket, start)
	case ']':
		return l.emitSingle(TokenRBracket, start)
	case ',':
		return l.emitSingle(TokenComma, start)
	case '=':
		return l.emitSingle(TokenAssign, start)
	case ':':
		return l.emitSingle(TokenColon, start)
	case '|':
		return l.emitSingle(TokenPipe, start)
	case '-':
		if l.peekChar() == '>' {
			l.readChar()
			l.readChar()
			return l.token(TokenArrow, "->", start)
		}
	case '.':
		if l.peekChar() == '.' {
			// Only "..." is meaningful; ".." falls through to an error.
			l.readChar()
			if l.peekChar() == '.' {
				l.readChar()
				l.readChar()
				return l.token(TokenEllipsis, "...", start)
			}
			l.addError("unexpected '..'", start)
			l.readChar()
			return l.token(TokenError, "..", start)
		}
		return l.emitSingle(TokenDot, start)
	}

	ch := l.ch
	l.addError(fmt.Sprintf("unexpected character %q", ch), start)
	l.readChar()
	return l.token(TokenError, string(ch), start)
}

// Tokenize scans the whole input, returning every token up to and
// including EOF.
func (l *Lexer) Tokenize() []Token {
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == TokenEOF {
			return toks
		}
	}
}

// token builds a token whose literal was already consumed.
func (l *Lexer) token(typ TokenType, lit string, start position.Position) Token {
	return Token{Type: typ, Literal: lit, Span: position.Span{Start: start, End: l.pos()}}
}

// emitSingle consumes the current character and builds its token.
func (l *Lexer) emitSingle(typ TokenType, start position.Position) Token {
	lit := string(l.ch)
	l.readChar()
	return l.token(typ, lit, start)
}

// readIdentifier consumes an identifier and returns its literal.
func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readNumber consumes an integer or decimal literal.
func (l *Lexer) readNumber() string {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.input[start:l.position]
}

// readString consumes a quoted string. The returned literal excludes
// the quotes. ok is false when the string is unterminated.
func (l *Lexer) readString(quote byte) (lit string, ok bool) {
	l.readChar() // consume opening quote
	start := l.position
	for l.ch != quote {
		if l.ch == 0 || l.ch == '\n' {
			return l.input[start:l.position], false
		}
		if l.ch == '\\' {
			l.readChar()
		}
		l.readChar()
	}
	lit = l.input[start:l.position]
	l.readChar() // consume closing quote
	return lit, true
}

// addError records a lexical error at start.
func (l *Lexer) addError(msg string, start position.Position) {
	l.errors = append(l.errors, Error{
		Message: msg,
		Span:    position.Span{Start: start, End: l.pos()},
	})
}
