package typechecker

import (
	"github.com/pyrite-dev/pyrite/internal/ast"
	"github.com/pyrite-dev/pyrite/internal/diagnostic"
	"github.com/pyrite-dev/pyrite/internal/resolver"
)

// AliasCallLegal decides whether a call whose callee resolved to
// binding is legal. A nil binding means the callee is not a type alias
// and the rule does not apply. Only plain-class aliases are callable:
// every other target form is a type-system construct with no runtime
// constructor, whatever the argument list looks like.
func AliasCallLegal(binding *resolver.AliasBinding) bool {
	if binding == nil {
		return true
	}
	return binding.Form == resolver.FormPlainClass
}

// checkCall applies the alias-call rule to one call expression. At
// most one diagnostic is emitted per call site.
func (c *Checker) checkCall(call *ast.Call) {
	name, ok := call.Callee.(*ast.Name)
	if !ok {
		// Attribute or computed callees are outside this rule.
		return
	}
	binding := c.table.ResolveAlias(name.Value)
	if AliasCallLegal(binding) {
		return
	}

	c.engine.Report(diagnostic.New().
		Error().
		Type().
		Code(diagnostic.CodeIllegalAliasCall).
		Title("type alias is not callable").
		Message("%q is a %s alias and cannot be instantiated", binding.Name, binding.Form.Describe()).
		Span(call.GetSpan()).
		Build())
}
