package parser

import (
	"testing"

	"github.com/pyrite-dev/pyrite/internal/ast"
	"github.com/pyrite-dev/pyrite/internal/diagnostic"
)

func parse(t *testing.T, source string) (*ast.Module, *diagnostic.Engine) {
	t.Helper()
	engine := diagnostic.NewEngine(diagnostic.Config{})
	mod := Parse(source, "test.py", engine)
	return mod, engine
}

func parseClean(t *testing.T, source string) *ast.Module {
	t.Helper()
	mod, engine := parse(t, source)
	if engine.HasErrors() {
		t.Fatalf("unexpected parse errors:\n%s", engine.Format(false))
	}
	return mod
}

func TestParseImportFrom(t *testing.T) {
	mod := parseClean(t, "from typing import Callable, Optional, Tuple, Type, TypeVar, Union\n")

	if len(mod.Statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(mod.Statements))
	}
	imp, ok := mod.Statements[0].(*ast.ImportFrom)
	if !ok {
		t.Fatalf("statement is %T, want *ast.ImportFrom", mod.Statements[0])
	}
	if imp.Module != "typing" {
		t.Errorf("module = %q, want typing", imp.Module)
	}
	if len(imp.Names) != 6 {
		t.Errorf("got %d names, want 6", len(imp.Names))
	}
}

func TestParseImportAs(t *testing.T) {
	mod := parseClean(t, "from typing import Union as U\n")

	imp := mod.Statements[0].(*ast.ImportFrom)
	if imp.Names[0].Name != "Union" || imp.Names[0].Alias != "U" {
		t.Errorf("import name = %+v, want Union as U", imp.Names[0])
	}
	if imp.Names[0].LocalName() != "U" {
		t.Errorf("LocalName() = %q, want U", imp.Names[0].LocalName())
	}
}

func TestParseAliasAssignment(t *testing.T) {
	mod := parseClean(t, "T_Union = Union[int, float]\n")

	assign, ok := mod.Statements[0].(*ast.Assign)
	if !ok {
		t.Fatalf("statement is %T, want *ast.Assign", mod.Statements[0])
	}
	if assign.Target.Value != "T_Union" {
		t.Errorf("target = %q", assign.Target.Value)
	}
	sub, ok := assign.Value.(*ast.Subscript)
	if !ok {
		t.Fatalf("value is %T, want *ast.Subscript", assign.Value)
	}
	if name, ok := sub.Value.(*ast.Name); !ok || name.Value != "Union" {
		t.Errorf("subscript value = %s", sub.Value)
	}
	tuple, ok := sub.Index.(*ast.TupleExpr)
	if !ok {
		t.Fatalf("index is %T, want *ast.TupleExpr", sub.Index)
	}
	if len(tuple.Elements) != 2 {
		t.Errorf("got %d tuple elements, want 2", len(tuple.Elements))
	}
}

func TestParseCallStatement(t *testing.T) {
	mod := parseClean(t, "T_Union(3)\n")

	stmt, ok := mod.Statements[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("statement is %T, want *ast.ExprStmt", mod.Statements[0])
	}
	call, ok := stmt.Expr.(*ast.Call)
	if !ok {
		t.Fatalf("expr is %T, want *ast.Call", stmt.Expr)
	}
	if name, ok := call.Callee.(*ast.Name); !ok || name.Value != "T_Union" {
		t.Errorf("callee = %s", call.Callee)
	}
	if len(call.Args) != 1 {
		t.Errorf("got %d args, want 1", len(call.Args))
	}
}

func TestParseCallableForm(t *testing.T) {
	mod := parseClean(t, "T = Callable[[int], None]\n")

	assign := mod.Statements[0].(*ast.Assign)
	sub := assign.Value.(*ast.Subscript)
	tuple := sub.Index.(*ast.TupleExpr)
	if len(tuple.Elements) != 2 {
		t.Fatalf("got %d elements, want 2", len(tuple.Elements))
	}
	if _, ok := tuple.Elements[0].(*ast.ListExpr); !ok {
		t.Errorf("first element is %T, want *ast.ListExpr", tuple.Elements[0])
	}
	if _, ok := tuple.Elements[1].(*ast.NoneLit); !ok {
		t.Errorf("second element is %T, want *ast.NoneLit", tuple.Elements[1])
	}
}

func TestParseVariadicTuple(t *testing.T) {
	mod := parseClean(t, "T = Tuple[int, ...]\n")

	assign := mod.Statements[0].(*ast.Assign)
	sub := assign.Value.(*ast.Subscript)
	tuple := sub.Index.(*ast.TupleExpr)
	if _, ok := tuple.Elements[1].(*ast.EllipsisLit); !ok {
		t.Errorf("second element is %T, want *ast.EllipsisLit", tuple.Elements[1])
	}
}

func TestParseTypeVarCall(t *testing.T) {
	mod := parseClean(t, `T = TypeVar("T")`+"\n")

	assign := mod.Statements[0].(*ast.Assign)
	call, ok := assign.Value.(*ast.Call)
	if !ok {
		t.Fatalf("value is %T, want *ast.Call", assign.Value)
	}
	str, ok := call.Args[0].(*ast.StringLit)
	if !ok || str.Value != "T" {
		t.Errorf("arg = %v, want string literal T", call.Args[0])
	}
}

func TestParsePEP604Union(t *testing.T) {
	mod := parseClean(t, "T = int | str | None\n")

	assign := mod.Statements[0].(*ast.Assign)
	top, ok := assign.Value.(*ast.BinOp)
	if !ok {
		t.Fatalf("value is %T, want *ast.BinOp", assign.Value)
	}
	// Left associative: (int | str) | None.
	if _, ok := top.Left.(*ast.BinOp); !ok {
		t.Errorf("left is %T, want nested *ast.BinOp", top.Left)
	}
	if _, ok := top.Right.(*ast.NoneLit); !ok {
		t.Errorf("right is %T, want *ast.NoneLit", top.Right)
	}
}

func TestParseClassDef(t *testing.T) {
	mod := parseClean(t, "class Foo(Base): pass\nclass Bar:\n    pass\n")

	if len(mod.Statements) != 2 {
		t.Fatalf("got %d statements, want 2", len(mod.Statements))
	}
	foo := mod.Statements[0].(*ast.ClassDef)
	if foo.Name != "Foo" || len(foo.Bases) != 1 {
		t.Errorf("class = %s", foo)
	}
	bar := mod.Statements[1].(*ast.ClassDef)
	if bar.Name != "Bar" {
		t.Errorf("class = %s", bar)
	}
}

func TestIndentedLinesAreSkipped(t *testing.T) {
	source := "def f():\n    x = Union[int, str]\n    x(3)\ny = 1\n"
	mod := parseClean(t, source)

	// Only the module-level assignment should be modelled.
	if len(mod.Statements) != 1 {
		t.Fatalf("got %d statements, want 1: %v", len(mod.Statements), mod.Statements)
	}
	if _, ok := mod.Statements[0].(*ast.Assign); !ok {
		t.Errorf("statement is %T, want *ast.Assign", mod.Statements[0])
	}
}

func TestCommentsAndBlankLines(t *testing.T) {
	source := "# This should generate an error\n\nT_Union(3)\n"
	mod := parseClean(t, source)

	if len(mod.Statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(mod.Statements))
	}
}

func TestParseErrorRecovery(t *testing.T) {
	// The broken first line must not hide the call on the second.
	source := "T = Union[int,\nT(3)\n"
	mod, engine := parse(t, source)

	if !engine.HasErrors() {
		t.Fatal("expected a syntax error")
	}
	foundCall := false
	for _, stmt := range mod.Statements {
		if es, ok := stmt.(*ast.ExprStmt); ok {
			if _, ok := es.Expr.(*ast.Call); ok {
				foundCall = true
			}
		}
	}
	if !foundCall {
		t.Error("call statement after broken line was not parsed")
	}
}

func TestAttributeCallee(t *testing.T) {
	mod := parseClean(t, "a.b.c(1)\n")

	stmt := mod.Statements[0].(*ast.ExprStmt)
	call := stmt.Expr.(*ast.Call)
	attr, ok := call.Callee.(*ast.Attribute)
	if !ok {
		t.Fatalf("callee is %T, want *ast.Attribute", call.Callee)
	}
	if attr.Attr != "c" {
		t.Errorf("attr = %q, want c", attr.Attr)
	}
}

func TestModuleWithoutTrailingNewline(t *testing.T) {
	mod := parseClean(t, "I = int")

	if len(mod.Statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(mod.Statements))
	}
}
