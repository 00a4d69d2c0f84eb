// Package eval declares the interfaces shared by the compiler packages: values,
// expressions, code bodies, scopes, resources, the catalog and the compiler
// itself. Implementations live in the impl, catalog, evaluator, resource and
// compiler packages.
package eval

import (
	"github.com/lyraproj/issue/issue"
)

type (
	// Value is a Go representation of a Puppet value: nil (undef), string,
	// int64, float64, bool, []Value, map[string]Value, *regexp.Regexp or
	// Default.
	Value interface{}

	// DefaultValue is the type of the literal `default`.
	DefaultValue struct{}

	// Expression is something that produces a value when evaluated in a scope.
	// Parameter defaults are expressions.
	Expression interface {
		Evaluate(scope Scope) (Value, error)
	}

	// SourceExpression is an expression that can present itself as
	// manifest source text.
	SourceExpression interface {
		Expression
		Source() string
	}

	// CodeBody is an opaque executable body attached to a resource type.
	CodeBody interface {
		SafeEvaluate(scope Scope) error
	}

	// VariableState tells where, if anywhere, a variable was found.
	VariableState int

	// Scope is a variable environment with a lexical parent, a stack of
	// ephemeral match layers and a reference to the resource it was created
	// for.
	Scope interface {
		// Get returns the value of the named variable. Names prefixed with `::`
		// are looked up in the top scope. Qualified names (a::b) are looked up
		// in the class scope of the named class.
		Get(name string) (Value, bool)

		// Set assigns a variable in this scope. It returns false if the
		// variable is already assigned in this scope.
		Set(name string, value Value) bool

		State(name string) VariableState

		// RxGet returns the regexp capture group with the given index from
		// the innermost ephemeral layer that has one.
		RxGet(index int) (Value, bool)

		// EphemeralFrom pushes a new ephemeral layer holding the given capture
		// groups.
		EphemeralFrom(groups []string)

		EphemeralLevel() int

		// UnsetEphemeral pops ephemeral layers until the given level remains.
		UnsetEphemeral(level int)

		// NewScope creates a child scope.
		NewScope(namespace, module string, resource Resource) Scope

		Parent() Scope

		Namespace() string

		// ModuleName is the name of the module that the code running in
		// this scope was loaded from.
		ModuleName() string

		// ParentModuleName is the module name of the parent scope.
		ParentModuleName() string

		Resource() Resource

		Compiler() Compiler
	}

	// Resource is a resource in a catalog. Class and node resources are
	// created by the engine, defined and native resources by the evaluator.
	Resource interface {
		// Type is the capitalized resource type, e.g. Class, Node or Foo::Bar.
		Type() string

		Title() string

		// Name is the value of the `name` parameter, or the title.
		Name() string

		// Ref returns the resource reference, e.g. Class[Foo].
		Ref() string

		Get(name string) (Value, bool)

		Set(name string, value Value)

		// ParameterNames returns the names of the parameters in the order
		// they were set.
		ParameterNames() []string

		Tag(names ...string)

		Tags() []string

		Scope() Scope

		Evaluated() bool

		// Evaluate evaluates the resource once. Subsequent calls do nothing.
		Evaluate() error

		Location() issue.Location
	}

	// Catalog collects the resources, tags and classes of one compilation.
	Catalog interface {
		Resource(typeName, title string) (Resource, bool)

		// ResourceByRef returns the resource for a reference in the form
		// Type[title]. Quotes around the title are ignored.
		ResourceByRef(ref string) (Resource, bool)

		// AddResource adds a resource. It returns an error if a resource
		// with the same type and title is already present.
		AddResource(r Resource) error

		Resources() []Resource

		Tag(names ...string)

		IsTagged(name string) bool

		Tags() []string

		AddClass(name string)

		Classes() []string
	}

	// Compiler is the per compilation state that scopes and resources share.
	Compiler interface {
		Catalog() Catalog

		// ClassScope returns the scope that was cached for the type with
		// the given key.
		ClassScope(key string) (Scope, bool)

		SetClassScope(key string, scope Scope)

		// EvaluateResource evaluates the code of the type that the resource
		// is an instance of.
		EvaluateResource(r Resource) error

		// NodeName is the name of the node being compiled.
		NodeName() string

		StrictVariables() bool

		Logger() Logger
	}
)

const (
	NotFound = VariableState(iota)
	Global
	Local
)

// MainTitle is the title of the resource for the main class.
const MainTitle = `main`

// Default is the value of the literal `default`.
var Default = DefaultValue{}

// TypeKey returns the stable key used to identify a resource type of
// the given kind.
func TypeKey(kind, name string) string {
	return kind + `/` + name
}

// ClassKey is the TypeKey of the hostclass with the given name.
func ClassKey(name string) string {
	return TypeKey(`hostclass`, name)
}

// Literal is an Expression that always evaluates to its value.
type Literal struct {
	Value Value
}

func (l Literal) Evaluate(scope Scope) (Value, error) {
	return l.Value, nil
}

func (l Literal) Source() string {
	return SourceString(l.Value)
}

func (l Literal) String() string {
	return ToString(l.Value)
}
