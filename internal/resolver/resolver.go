// Package resolver implements name resolution for the pyrite checker:
// per-module symbol tables, typing-import tracking, and the structural
// classification of type-alias right-hand sides into target forms.
// Classification happens once, when an alias is defined; later call
// sites only look the result up.
package resolver

import (
	"github.com/pyrite-dev/pyrite/internal/ast"
	"github.com/pyrite-dev/pyrite/internal/position"
)

// TargetForm classifies what a type alias's right-hand side denotes.
// The set is closed: the legality rule is a total dispatch over it.
type TargetForm int

const (
	// FormPlainClass marks an alias of an ordinary constructible class,
	// builtin or user defined, including subscripted generic classes.
	FormPlainClass TargetForm = iota
	// FormUnion marks a union-of-types special form, either
	// Union[...] or the PEP 604 "X | Y" operator.
	FormUnion
	// FormCallable marks a callable-signature special form.
	FormCallable
	// FormMetaclass marks a type-of special form (Type[X] / type[X]).
	FormMetaclass
	// FormOptional marks the union-with-None sugar (Optional[X]).
	FormOptional
	// FormTypeVar marks a type-variable declaration object.
	FormTypeVar
	// FormTuple marks a fixed or variadic tuple-shape special form.
	FormTuple
)

func (f TargetForm) String() string {
	switch f {
	case FormPlainClass:
		return "plain-class"
	case FormUnion:
		return "union"
	case FormCallable:
		return "callable"
	case FormMetaclass:
		return "metaclass"
	case FormOptional:
		return "optional"
	case FormTypeVar:
		return "typevar"
	case FormTuple:
		return "tuple"
	default:
		return "unknown"
	}
}

// Describe returns the user-facing phrase used in diagnostics.
func (f TargetForm) Describe() string {
	switch f {
	case FormPlainClass:
		return "class"
	case FormUnion:
		return "union type"
	case FormCallable:
		return "callable type"
	case FormMetaclass:
		return "metaclass reference"
	case FormOptional:
		return "optional type"
	case FormTypeVar:
		return "type variable"
	case FormTuple:
		return "tuple type"
	default:
		return "type form"
	}
}

// AliasBinding is a name bound to a type expression. Immutable after
// creation; rebinding a name installs a fresh binding.
type AliasBinding struct {
	Name string
	Form TargetForm
	Decl position.Span
}

// specialKind identifies what a typing-module import stands for.
type specialKind int

const (
	kindUnion specialKind = iota
	kindOptional
	kindCallable
	kindType
	kindTuple
	kindTypeVar
	kindGenericClass // List, Dict, ...: subscripts of plain classes
)

// typingExports maps names exported by the typing module to their
// special kinds. Names absent here are ignored by the checker.
var typingExports = map[string]specialKind{
	"Union":     kindUnion,
	"Optional":  kindOptional,
	"Callable":  kindCallable,
	"Type":      kindType,
	"Tuple":     kindTuple,
	"TypeVar":   kindTypeVar,
	"List":      kindGenericClass,
	"Dict":      kindGenericClass,
	"Set":       kindGenericClass,
	"FrozenSet": kindGenericClass,
}

// builtinClasses are the constructible builtin types. An alias bound
// to one of these names is callable.
var builtinClasses = map[string]bool{
	"int":       true,
	"float":     true,
	"str":       true,
	"bool":      true,
	"bytes":     true,
	"bytearray": true,
	"complex":   true,
	"object":    true,
	"list":      true,
	"dict":      true,
	"set":       true,
	"frozenset": true,
}

// SymbolTable tracks the bindings of one module scope. Tables are not
// shared between modules, which keeps checking parallelizable per file.
type SymbolTable struct {
	specials map[string]specialKind   // local name -> typing special form
	classes  map[string]bool          // user-defined class names
	aliases  map[string]*AliasBinding // name -> active alias binding
}

// NewSymbolTable creates an empty module-scope table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		specials: make(map[string]specialKind),
		classes:  make(map[string]bool),
		aliases:  make(map[string]*AliasBinding),
	}
}

// ApplyImport records typing imports, honoring "as" renames. Imports
// from other modules are ignored.
func (st *SymbolTable) ApplyImport(imp *ast.ImportFrom) {
	if imp.Module != "typing" {
		return
	}
	for _, name := range imp.Names {
		if kind, ok := typingExports[name.Name]; ok {
			st.specials[name.LocalName()] = kind
		}
	}
}

// DefineClass records a user-defined class name. A later alias of the
// class is a plain-class alias.
func (st *SymbolTable) DefineClass(name string) {
	st.classes[name] = true
	// A class definition shadows any earlier alias of the same name.
	delete(st.aliases, name)
}

// Bind processes an assignment. When the right-hand side is a type
// expression the target name gets a fresh alias binding; otherwise any
// existing binding for the name is dropped (the name now holds an
// ordinary value).
func (st *SymbolTable) Bind(assign *ast.Assign) *AliasBinding {
	form, ok := st.ClassifyTypeExpr(assign.Value)
	// Assigning to a name shadows an earlier class of that name, the
	// mirror of DefineClass dropping an earlier alias. Later references
	// must see the latest binding, not the stale class entry.
	delete(st.classes, assign.Target.Value)
	if !ok {
		delete(st.aliases, assign.Target.Value)
		return nil
	}
	binding := &AliasBinding{
		Name: assign.Target.Value,
		Form: form,
		Decl: assign.Span,
	}
	st.aliases[binding.Name] = binding
	return binding
}

// ResolveAlias returns the alias binding currently active for name,
// or nil when the name is not a type alias.
func (st *SymbolTable) ResolveAlias(name string) *AliasBinding {
	return st.aliases[name]
}

// ClassifyTypeExpr determines the target form of a type expression.
// ok is false when expr is not a recognised type expression, in which
// case no alias binding is created.
func (st *SymbolTable) ClassifyTypeExpr(expr ast.Expression) (TargetForm, bool) {
	switch e := expr.(type) {
	case *ast.Name:
		return st.classifyName(e.Value)
	case *ast.Subscript:
		return st.classifySubscript(e)
	case *ast.Call:
		// The only call producing a type object is TypeVar("name").
		if callee, ok := e.Callee.(*ast.Name); ok {
			if kind, ok := st.specials[callee.Value]; ok && kind == kindTypeVar {
				return FormTypeVar, true
			}
		}
		return 0, false
	case *ast.BinOp:
		// PEP 604: any "|" chain of type operands is a union,
		// including "X | None".
		if e.Op == "|" && st.isTypeOperand(e.Left) && st.isTypeOperand(e.Right) {
			return FormUnion, true
		}
		return 0, false
	}
	return 0, false
}

// classifyName classifies a bare-name right-hand side.
func (st *SymbolTable) classifyName(name string) (TargetForm, bool) {
	if builtinClasses[name] || st.classes[name] {
		return FormPlainClass, true
	}
	// Alias of an alias copies the target form.
	if existing := st.aliases[name]; existing != nil {
		return existing.Form, true
	}
	// A bare special form ("T = Union") is that form: it is no more
	// callable unsubscripted than subscripted. TypeVar is excluded:
	// aliasing the TypeVar constructor keeps it callable.
	if kind, ok := st.specials[name]; ok && kind != kindTypeVar {
		if form, ok := formForKind(kind); ok {
			return form, true
		}
		if kind == kindGenericClass {
			return FormPlainClass, true
		}
	}
	return 0, false
}

// classifySubscript classifies "base[...]" right-hand sides.
func (st *SymbolTable) classifySubscript(sub *ast.Subscript) (TargetForm, bool) {
	base, ok := sub.Value.(*ast.Name)
	if !ok {
		return 0, false
	}

	if kind, ok := st.specials[base.Value]; ok {
		if form, ok := formForKind(kind); ok {
			return form, true
		}
		// List[int] and friends are subscripted plain classes.
		if kind == kindGenericClass {
			return FormPlainClass, true
		}
	}

	// Builtin generic syntax: type[X] mirrors Type[X], tuple[X, ...]
	// mirrors Tuple[X, ...]; other builtins stay plain classes.
	switch base.Value {
	case "type":
		return FormMetaclass, true
	case "tuple":
		return FormTuple, true
	}
	if builtinClasses[base.Value] {
		return FormPlainClass, true
	}
	// Subscripted user-defined generic classes remain plain classes.
	if st.classes[base.Value] {
		return FormPlainClass, true
	}
	return 0, false
}

// isTypeOperand reports whether expr can be an operand of the "|"
// type operator.
func (st *SymbolTable) isTypeOperand(expr ast.Expression) bool {
	switch e := expr.(type) {
	case *ast.NoneLit:
		return true
	case *ast.Name:
		_, ok := st.classifyName(e.Value)
		return ok
	case *ast.Subscript:
		_, ok := st.classifySubscript(e)
		return ok
	case *ast.BinOp:
		return e.Op == "|" && st.isTypeOperand(e.Left) && st.isTypeOperand(e.Right)
	}
	return false
}

// formForKind maps typing special kinds to target forms. Generic
// classes have no dedicated form and return false.
func formForKind(kind specialKind) (TargetForm, bool) {
	switch kind {
	case kindUnion:
		return FormUnion, true
	case kindOptional:
		return FormOptional, true
	case kindCallable:
		return FormCallable, true
	case kindType:
		return FormMetaclass, true
	case kindTuple:
		return FormTuple, true
	case kindTypeVar:
		return FormTypeVar, true
	}
	return 0, false
}
