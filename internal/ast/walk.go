package ast

// Inspect traverses an expression tree in depth-first order, calling f
// for each node. If f returns false for a node, its children are not
// visited.
func Inspect(expr Expression, f func(Expression) bool) {
	if expr == nil || !f(expr) {
		return
	}
	switch e := expr.(type) {
	case *Attribute:
		Inspect(e.Value, f)
	case *Call:
		Inspect(e.Callee, f)
		for _, arg := range e.Args {
			Inspect(arg, f)
		}
	case *Subscript:
		Inspect(e.Value, f)
		Inspect(e.Index, f)
	case *TupleExpr:
		for _, el := range e.Elements {
			Inspect(el, f)
		}
	case *ListExpr:
		for _, el := range e.Elements {
			Inspect(el, f)
		}
	case *BinOp:
		Inspect(e.Left, f)
		Inspect(e.Right, f)
	}
}
