// Package parser implements a recursive-descent parser for the
// Python-like subset checked by pyrite. Parsing is module level only:
// indented suite bodies are skipped, since alias definitions and the
// calls the checker validates live at module scope. Parse errors are
// reported through the diagnostic engine and recovery resumes at the
// next line, so a broken statement never hides diagnostics elsewhere
// in the file.
package parser

import (
	"github.com/pyrite-dev/pyrite/internal/ast"
	"github.com/pyrite-dev/pyrite/internal/diagnostic"
	"github.com/pyrite-dev/pyrite/internal/lexer"
)

// Parser consumes a token stream and produces an *ast.Module.
type Parser struct {
	tokens   []lexer.Token
	pos      int
	filename string
	engine   *diagnostic.Engine
}

// New creates a parser over source, reporting errors to engine.
func New(source, filename string, engine *diagnostic.Engine) *Parser {
	l := lexer.New(source, filename)
	tokens := l.Tokenize()
	for _, lerr := range l.Errors() {
		engine.Report(diagnostic.New().
			Error().
			Syntax().
			Code(diagnostic.CodeInvalidCharacter).
			Title("lexical error").
			Message("%s", lerr.Message).
			Span(lerr.Span).
			Build())
	}
	return &Parser{
		tokens:   tokens,
		filename: filename,
		engine:   engine,
	}
}

// ParseModule parses the whole token stream.
func (p *Parser) ParseModule() *ast.Module {
	mod := &ast.Module{Filename: p.filename}

	for !p.at(lexer.TokenEOF) {
		if p.at(lexer.TokenNewline) {
			p.next()
			continue
		}
		// Indented lines belong to a suite body (class or def); the
		// checker only validates module scope, so skip them.
		if p.cur().Span.Start.Column > 1 {
			p.skipLine()
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			mod.Statements = append(mod.Statements, stmt)
		}
	}

	if len(mod.Statements) > 0 {
		mod.Span = mod.Statements[0].GetSpan().Union(
			mod.Statements[len(mod.Statements)-1].GetSpan())
	}
	return mod
}

// ===== token cursor =====

func (p *Parser) cur() lexer.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos]
}

func (p *Parser) peek() lexer.Token {
	if p.pos+1 >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+1]
}

func (p *Parser) at(typ lexer.TokenType) bool { return p.cur().Type == typ }

func (p *Parser) next() lexer.Token {
	tok := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

// expect consumes a token of the given type or reports an error and
// returns false without consuming.
func (p *Parser) expect(typ lexer.TokenType) (lexer.Token, bool) {
	if p.at(typ) {
		return p.next(), true
	}
	p.errorAt(p.cur(), "expected %s, found %s", typ, p.cur().Type)
	return p.cur(), false
}

func (p *Parser) errorAt(tok lexer.Token, format string, args ...interface{}) {
	p.engine.Report(diagnostic.New().
		Error().
		Syntax().
		Code(diagnostic.CodeUnexpectedToken).
		Title("syntax error").
		Message(format, args...).
		Span(tok.Span).
		Build())
}

// skipLine consumes tokens up to and including the next newline.
func (p *Parser) skipLine() {
	for !p.at(lexer.TokenNewline) && !p.at(lexer.TokenEOF) {
		p.next()
	}
	if p.at(lexer.TokenNewline) {
		p.next()
	}
}

// endLine consumes the statement terminator.
func (p *Parser) endLine() {
	if p.at(lexer.TokenNewline) {
		p.next()
		return
	}
	if p.at(lexer.TokenEOF) {
		return
	}
	p.errorAt(p.cur(), "unexpected %s at end of statement", p.cur().Type)
	p.skipLine()
}

// ===== statements =====

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur().Type {
	case lexer.TokenFrom:
		return p.parseImportFrom()
	case lexer.TokenClass:
		return p.parseClassDef()
	case lexer.TokenDef, lexer.TokenImport, lexer.TokenPass:
		// Function bodies and plain imports introduce no alias
		// bindings; consume without modelling.
		p.skipLine()
		return nil
	case lexer.TokenError:
		// Already reported by the lexer.
		p.skipLine()
		return nil
	}
	return p.parseAssignOrExpr()
}

// parseImportFrom parses "from MODULE import NAME [as NAME], ...".
func (p *Parser) parseImportFrom() ast.Statement {
	start := p.next() // from

	module, ok := p.parseDottedName()
	if !ok {
		p.skipLine()
		return &ast.BadStmt{Span: start.Span}
	}
	if _, ok := p.expect(lexer.TokenImport); !ok {
		p.skipLine()
		return &ast.BadStmt{Span: start.Span}
	}

	imp := &ast.ImportFrom{Module: module}
	for {
		nameTok, ok := p.expect(lexer.TokenIdentifier)
		if !ok {
			p.skipLine()
			return &ast.BadStmt{Span: start.Span}
		}
		name := ast.ImportName{Span: nameTok.Span, Name: nameTok.Literal}
		if p.at(lexer.TokenAs) {
			p.next()
			aliasTok, ok := p.expect(lexer.TokenIdentifier)
			if !ok {
				p.skipLine()
				return &ast.BadStmt{Span: start.Span}
			}
			name.Alias = aliasTok.Literal
			name.Span = name.Span.Union(aliasTok.Span)
		}
		imp.Names = append(imp.Names, name)

		if !p.at(lexer.TokenComma) {
			break
		}
		p.next()
	}

	imp.Span = start.Span.Union(imp.Names[len(imp.Names)-1].Span)
	p.endLine()
	return imp
}

// parseDottedName parses "IDENT {. IDENT}" and returns the joined name.
func (p *Parser) parseDottedName() (string, bool) {
	tok, ok := p.expect(lexer.TokenIdentifier)
	if !ok {
		return "", false
	}
	name := tok.Literal
	for p.at(lexer.TokenDot) {
		p.next()
		part, ok := p.expect(lexer.TokenIdentifier)
		if !ok {
			return "", false
		}
		name += "." + part.Literal
	}
	return name, true
}

// parseClassDef parses a class header; the suite body is skipped.
func (p *Parser) parseClassDef() ast.Statement {
	start := p.next() // class

	nameTok, ok := p.expect(lexer.TokenIdentifier)
	if !ok {
		p.skipLine()
		return &ast.BadStmt{Span: start.Span}
	}
	def := &ast.ClassDef{Name: nameTok.Literal}
	def.Span = start.Span.Union(nameTok.Span)

	if p.at(lexer.TokenLParen) {
		p.next()
		for !p.at(lexer.TokenRParen) && !p.at(lexer.TokenNewline) && !p.at(lexer.TokenEOF) {
			base := p.parseExpression()
			def.Bases = append(def.Bases, base)
			if !p.at(lexer.TokenComma) {
				break
			}
			p.next()
		}
		if rp, ok := p.expect(lexer.TokenRParen); ok {
			def.Span = def.Span.Union(rp.Span)
		}
	}

	if _, ok := p.expect(lexer.TokenColon); !ok {
		p.skipLine()
		return def
	}
	// Inline body ("class C: pass") or an indented suite on the
	// following lines; either way the body is not modelled.
	p.skipLine()
	return def
}

// parseAssignOrExpr parses "NAME = expr" or a bare expression.
func (p *Parser) parseAssignOrExpr() ast.Statement {
	startTok := p.cur()

	// Assignment requires a bare name target in the subset.
	if p.at(lexer.TokenIdentifier) && p.peek().Type == lexer.TokenAssign {
		target := &ast.Name{Span: startTok.Span, Value: startTok.Literal}
		p.next() // name
		p.next() // =
		value := p.parseExpression()
		stmt := &ast.Assign{
			Span:   target.Span.Union(value.GetSpan()),
			Target: target,
			Value:  value,
		}
		p.endLine()
		return stmt
	}

	expr := p.parseExpression()
	if _, bad := expr.(*ast.BadExpr); bad {
		p.skipLine()
		return &ast.BadStmt{Span: startTok.Span}
	}
	stmt := &ast.ExprStmt{Span: expr.GetSpan(), Expr: expr}
	p.endLine()
	return stmt
}

// ===== expressions =====

// parseExpression parses a union expression: postfix { "|" postfix }.
func (p *Parser) parseExpression() ast.Expression {
	left := p.parsePostfix()
	for p.at(lexer.TokenPipe) {
		p.next()
		right := p.parsePostfix()
		left = &ast.BinOp{
			Span:  left.GetSpan().Union(right.GetSpan()),
			Op:    "|",
			Left:  left,
			Right: right,
		}
	}
	return left
}

// parsePostfix parses a primary followed by call, subscript and
// attribute trailers.
func (p *Parser) parsePostfix() ast.Expression {
	expr := p.parsePrimary()
	for {
		switch p.cur().Type {
		case lexer.TokenLParen:
			expr = p.parseCall(expr)
		case lexer.TokenLBracket:
			expr = p.parseSubscript(expr)
		case lexer.TokenDot:
			p.next()
			attrTok, ok := p.expect(lexer.TokenIdentifier)
			if !ok {
				return &ast.BadExpr{Span: expr.GetSpan()}
			}
			expr = &ast.Attribute{
				Span:  expr.GetSpan().Union(attrTok.Span),
				Value: expr,
				Attr:  attrTok.Literal,
			}
		default:
			return expr
		}
	}
}

func (p *Parser) parseCall(callee ast.Expression) ast.Expression {
	p.next() // (
	call := &ast.Call{Callee: callee}
	for !p.at(lexer.TokenRParen) && !p.at(lexer.TokenNewline) && !p.at(lexer.TokenEOF) {
		call.Args = append(call.Args, p.parseExpression())
		if !p.at(lexer.TokenComma) {
			break
		}
		p.next()
	}
	rp, ok := p.expect(lexer.TokenRParen)
	if !ok {
		return &ast.BadExpr{Span: callee.GetSpan()}
	}
	call.Span = callee.GetSpan().Union(rp.Span)
	return call
}

func (p *Parser) parseSubscript(value ast.Expression) ast.Expression {
	p.next() // [
	var elements []ast.Expression
	for !p.at(lexer.TokenRBracket) && !p.at(lexer.TokenNewline) && !p.at(lexer.TokenEOF) {
		elements = append(elements, p.parseExpression())
		if !p.at(lexer.TokenComma) {
			break
		}
		p.next()
	}
	rb, ok := p.expect(lexer.TokenRBracket)
	if !ok {
		return &ast.BadExpr{Span: value.GetSpan()}
	}

	var index ast.Expression
	switch len(elements) {
	case 0:
		p.errorAt(rb, "empty subscript")
		return &ast.BadExpr{Span: value.GetSpan().Union(rb.Span)}
	case 1:
		index = elements[0]
	default:
		span := elements[0].GetSpan().Union(elements[len(elements)-1].GetSpan())
		index = &ast.TupleExpr{Span: span, Elements: elements}
	}
	return &ast.Subscript{
		Span:  value.GetSpan().Union(rb.Span),
		Value: value,
		Index: index,
	}
}

func (p *Parser) parsePrimary() ast.Expression {
	tok := p.cur()
	switch tok.Type {
	case lexer.TokenIdentifier:
		p.next()
		return &ast.Name{Span: tok.Span, Value: tok.Literal}
	case lexer.TokenNumber:
		p.next()
		return &ast.NumberLit{Span: tok.Span, Value: tok.Literal}
	case lexer.TokenString:
		p.next()
		return &ast.StringLit{Span: tok.Span, Value: tok.Literal}
	case lexer.TokenNone:
		p.next()
		return &ast.NoneLit{Span: tok.Span}
	case lexer.TokenEllipsis:
		p.next()
		return &ast.EllipsisLit{Span: tok.Span}
	case lexer.TokenLParen:
		p.next()
		expr := p.parseExpression()
		if _, ok := p.expect(lexer.TokenRParen); !ok {
			return &ast.BadExpr{Span: tok.Span}
		}
		return expr
	case lexer.TokenLBracket:
		return p.parseList(tok)
	}
	p.errorAt(tok, "unexpected %s in expression", tok.Type)
	p.next()
	return &ast.BadExpr{Span: tok.Span}
}

// parseList parses "[elem, ...]" literals, as in Callable[[int], None].
func (p *Parser) parseList(start lexer.Token) ast.Expression {
	p.next() // [
	list := &ast.ListExpr{}
	for !p.at(lexer.TokenRBracket) && !p.at(lexer.TokenNewline) && !p.at(lexer.TokenEOF) {
		list.Elements = append(list.Elements, p.parseExpression())
		if !p.at(lexer.TokenComma) {
			break
		}
		p.next()
	}
	rb, ok := p.expect(lexer.TokenRBracket)
	if !ok {
		return &ast.BadExpr{Span: start.Span}
	}
	list.Span = start.Span.Union(rb.Span)
	return list
}

// Parse is a convenience wrapper: lex and parse source in one call.
func Parse(source, filename string, engine *diagnostic.Engine) *ast.Module {
	return New(source, filename, engine).ParseModule()
}
