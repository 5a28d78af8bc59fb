// Package ast defines the syntax tree for the Python-like subset
// checked by pyrite. Nodes are immutable after construction and every
// node carries a position.Span for diagnostics.
package ast

import (
	"fmt"
	"strings"

	"github.com/pyrite-dev/pyrite/internal/position"
)

// Node is the base interface for all AST nodes.
type Node interface {
	// GetSpan returns the source span covered by this node.
	GetSpan() position.Span
	// String returns a source-like representation of the node.
	String() string
}

// Statement represents all statement nodes.
type Statement interface {
	Node
	statementNode()
}

// Expression represents all expression nodes.
type Expression interface {
	Node
	expressionNode()
}

// ===== Module structure =====

// Module is the root of the tree: one checked source file.
type Module struct {
	Span       position.Span
	Filename   string
	Statements []Statement
}

func (m *Module) GetSpan() position.Span { return m.Span }
func (m *Module) String() string {
	parts := make([]string, 0, len(m.Statements))
	for _, stmt := range m.Statements {
		parts = append(parts, stmt.String())
	}
	return strings.Join(parts, "\n")
}

// ===== Statements =====

// ImportFrom represents "from MODULE import NAME [as ALIAS], ...".
type ImportFrom struct {
	Span   position.Span
	Module string
	Names  []ImportName
}

// ImportName is one imported name with its optional local rename.
type ImportName struct {
	Span  position.Span
	Name  string
	Alias string // empty when not renamed
}

// LocalName returns the name the import binds in the module scope.
func (n ImportName) LocalName() string {
	if n.Alias != "" {
		return n.Alias
	}
	return n.Name
}

func (s *ImportFrom) GetSpan() position.Span { return s.Span }
func (s *ImportFrom) statementNode()         {}
func (s *ImportFrom) String() string {
	names := make([]string, 0, len(s.Names))
	for _, n := range s.Names {
		if n.Alias != "" {
			names = append(names, fmt.Sprintf("%s as %s", n.Name, n.Alias))
		} else {
			names = append(names, n.Name)
		}
	}
	return fmt.Sprintf("from %s import %s", s.Module, strings.Join(names, ", "))
}

// Assign represents "NAME = expr" at module level.
type Assign struct {
	Span   position.Span
	Target *Name
	Value  Expression
}

func (s *Assign) GetSpan() position.Span { return s.Span }
func (s *Assign) statementNode()         {}
func (s *Assign) String() string {
	return fmt.Sprintf("%s = %s", s.Target.String(), s.Value.String())
}

// ExprStmt represents a bare expression statement.
type ExprStmt struct {
	Span position.Span
	Expr Expression
}

func (s *ExprStmt) GetSpan() position.Span { return s.Span }
func (s *ExprStmt) statementNode()         {}
func (s *ExprStmt) String() string         { return s.Expr.String() }

// ClassDef represents a class header. The body is not modelled; pyrite
// only needs the name to classify later alias references to the class.
type ClassDef struct {
	Span  position.Span
	Name  string
	Bases []Expression
}

func (s *ClassDef) GetSpan() position.Span { return s.Span }
func (s *ClassDef) statementNode()         {}
func (s *ClassDef) String() string {
	if len(s.Bases) == 0 {
		return fmt.Sprintf("class %s", s.Name)
	}
	bases := make([]string, 0, len(s.Bases))
	for _, b := range s.Bases {
		bases = append(bases, b.String())
	}
	return fmt.Sprintf("class %s(%s)", s.Name, strings.Join(bases, ", "))
}

// BadStmt is a placeholder for a statement that failed to parse. The
// parser records a diagnostic and resumes at the next line.
type BadStmt struct {
	Span position.Span
}

func (s *BadStmt) GetSpan() position.Span { return s.Span }
func (s *BadStmt) statementNode()         {}
func (s *BadStmt) String() string         { return "<bad stmt>" }

// ===== Expressions =====

// Name is an identifier reference.
type Name struct {
	Span  position.Span
	Value string
}

func (e *Name) GetSpan() position.Span { return e.Span }
func (e *Name) expressionNode()        {}
func (e *Name) String() string         { return e.Value }

// Attribute represents "expr.NAME".
type Attribute struct {
	Span  position.Span
	Value Expression
	Attr  string
}

func (e *Attribute) GetSpan() position.Span { return e.Span }
func (e *Attribute) expressionNode()        {}
func (e *Attribute) String() string {
	return fmt.Sprintf("%s.%s", e.Value.String(), e.Attr)
}

// Call represents "callee(args...)".
type Call struct {
	Span   position.Span
	Callee Expression
	Args   []Expression
}

func (e *Call) GetSpan() position.Span { return e.Span }
func (e *Call) expressionNode()        {}
func (e *Call) String() string {
	args := make([]string, 0, len(e.Args))
	for _, a := range e.Args {
		args = append(args, a.String())
	}
	return fmt.Sprintf("%s(%s)", e.Callee.String(), strings.Join(args, ", "))
}

// Subscript represents "value[index]". A multi-element index is a
// TupleExpr, matching how Python parses "Union[int, float]".
type Subscript struct {
	Span  position.Span
	Value Expression
	Index Expression
}

func (e *Subscript) GetSpan() position.Span { return e.Span }
func (e *Subscript) expressionNode()        {}
func (e *Subscript) String() string {
	return fmt.Sprintf("%s[%s]", e.Value.String(), e.Index.String())
}

// TupleExpr represents a comma-separated element list, as appears
// inside subscripts.
type TupleExpr struct {
	Span     position.Span
	Elements []Expression
}

func (e *TupleExpr) GetSpan() position.Span { return e.Span }
func (e *TupleExpr) expressionNode()        {}
func (e *TupleExpr) String() string {
	parts := make([]string, 0, len(e.Elements))
	for _, el := range e.Elements {
		parts = append(parts, el.String())
	}
	return strings.Join(parts, ", ")
}

// ListExpr represents "[elem, ...]", as in Callable[[int], None].
type ListExpr struct {
	Span     position.Span
	Elements []Expression
}

func (e *ListExpr) GetSpan() position.Span { return e.Span }
func (e *ListExpr) expressionNode()        {}
func (e *ListExpr) String() string {
	parts := make([]string, 0, len(e.Elements))
	for _, el := range e.Elements {
		parts = append(parts, el.String())
	}
	return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
}

// BinOp represents a binary operator expression. The only operator in
// the subset is "|", the PEP 604 union operator.
type BinOp struct {
	Span  position.Span
	Op    string
	Left  Expression
	Right Expression
}

func (e *BinOp) GetSpan() position.Span { return e.Span }
func (e *BinOp) expressionNode()        {}
func (e *BinOp) String() string {
	return fmt.Sprintf("%s %s %s", e.Left.String(), e.Op, e.Right.String())
}

// NumberLit is an integer or float literal.
type NumberLit struct {
	Span  position.Span
	Value string
}

func (e *NumberLit) GetSpan() position.Span { return e.Span }
func (e *NumberLit) expressionNode()        {}
func (e *NumberLit) String() string         { return e.Value }

// StringLit is a string literal. Value excludes the quotes.
type StringLit struct {
	Span  position.Span
	Value string
}

func (e *StringLit) GetSpan() position.Span { return e.Span }
func (e *StringLit) expressionNode()        {}
func (e *StringLit) String() string         { return fmt.Sprintf("%q", e.Value) }

// NoneLit is the None literal.
type NoneLit struct {
	Span position.Span
}

func (e *NoneLit) GetSpan() position.Span { return e.Span }
func (e *NoneLit) expressionNode()        {}
func (e *NoneLit) String() string         { return "None" }

// EllipsisLit is the "..." literal, as in Tuple[int, ...].
type EllipsisLit struct {
	Span position.Span
}

func (e *EllipsisLit) GetSpan() position.Span { return e.Span }
func (e *EllipsisLit) expressionNode()        {}
func (e *EllipsisLit) String() string         { return "..." }

// BadExpr is a placeholder for an expression that failed to parse.
type BadExpr struct {
	Span position.Span
}

func (e *BadExpr) GetSpan() position.Span { return e.Span }
func (e *BadExpr) expressionNode()        {}
func (e *BadExpr) String() string         { return "<bad expr>" }
