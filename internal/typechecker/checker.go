// Package typechecker implements pyrite's checking pass. The pass is a
// single forward walk over a module's statements: alias definitions
// update the symbol table, and every call expression is validated
// against the binding active at that point, so redefinitions take
// effect exactly at their source position.
package typechecker

import (
	"github.com/pyrite-dev/pyrite/internal/ast"
	"github.com/pyrite-dev/pyrite/internal/diagnostic"
	"github.com/pyrite-dev/pyrite/internal/parser"
	"github.com/pyrite-dev/pyrite/internal/resolver"
)

// Checker validates one module. Each Checker owns a private symbol
// table, so independent files can be checked concurrently.
type Checker struct {
	table  *resolver.SymbolTable
	engine *diagnostic.Engine
}

// New creates a checker reporting to engine.
func New(engine *diagnostic.Engine) *Checker {
	return &Checker{
		table:  resolver.NewSymbolTable(),
		engine: engine,
	}
}

// CheckModule walks the module and reports diagnostics. It never
// fails: a broken statement yields diagnostics, not an abort.
func (c *Checker) CheckModule(mod *ast.Module) {
	for _, stmt := range mod.Statements {
		switch s := stmt.(type) {
		case *ast.ImportFrom:
			c.table.ApplyImport(s)
		case *ast.ClassDef:
			for _, base := range s.Bases {
				c.checkExpr(base)
			}
			c.table.DefineClass(s.Name)
		case *ast.Assign:
			// Calls inside the right-hand side are validated against
			// the bindings before this assignment takes effect.
			c.checkExpr(s.Value)
			c.table.Bind(s)
		case *ast.ExprStmt:
			c.checkExpr(s.Expr)
		}
	}
}

// checkExpr validates every call expression in the tree. Each call
// site is judged independently; an illegal outer call does not
// suppress diagnostics for its arguments.
func (c *Checker) checkExpr(expr ast.Expression) {
	ast.Inspect(expr, func(e ast.Expression) bool {
		if call, ok := e.(*ast.Call); ok {
			c.checkCall(call)
		}
		return true
	})
}

// CheckSource parses and checks source in one step, reporting all
// diagnostics to engine. The parsed module is returned for callers
// that want to inspect it.
func CheckSource(source, filename string, engine *diagnostic.Engine) *ast.Module {
	mod := parser.Parse(source, filename, engine)
	New(engine).CheckModule(mod)
	return mod
}
