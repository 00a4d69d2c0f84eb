package impl

import (
	"strconv"
	"strings"

	"github.com/lyraproj/puppet-catalog/eval"
	"github.com/lyraproj/puppet-catalog/utils"
)

// BasicScope is a variable table with a parent and a stack of ephemeral
// layers. The first entry in scopes holds the variables of the scope itself.
// Entries above it are ephemeral layers holding regexp capture groups.
type BasicScope struct {
	scopes    []map[string]eval.Value
	parent    eval.Scope
	compiler  eval.Compiler
	namespace string
	module    string
	resource  eval.Resource
}

// No key can ever start with '::' or a capital letter
var groupKey = `::R`

// NewTopScope creates the top scope of a compilation.
func NewTopScope(compiler eval.Compiler) *BasicScope {
	return &BasicScope{scopes: []map[string]eval.Value{make(map[string]eval.Value, 8)}, compiler: compiler}
}

// NewParentedScope creates a scope that will override its parent. When a value isn't found in this
// scope, the search continues in the parent scope.
//
// All new values will end up in this scope, i.e. no modifications are ever propagated to
// the parent scope.
func NewParentedScope(parent eval.Scope, namespace, module string, resource eval.Resource) *BasicScope {
	return &BasicScope{
		scopes:    []map[string]eval.Value{make(map[string]eval.Value, 8)},
		parent:    parent,
		compiler:  parent.Compiler(),
		namespace: namespace,
		module:    module,
		resource:  resource}
}

// SetResource assigns the resource that this scope evaluates. Used for the
// top scope which is created before the main resource.
func (e *BasicScope) SetResource(resource eval.Resource) {
	e.resource = resource
}

func (e *BasicScope) NewScope(namespace, module string, resource eval.Resource) eval.Scope {
	return NewParentedScope(e, namespace, module, resource)
}

func (e *BasicScope) Parent() eval.Scope {
	return e.parent
}

func (e *BasicScope) Namespace() string {
	return e.namespace
}

func (e *BasicScope) ModuleName() string {
	return e.module
}

func (e *BasicScope) ParentModuleName() string {
	if e.parent == nil {
		return ``
	}
	return e.parent.ModuleName()
}

func (e *BasicScope) Resource() eval.Resource {
	return e.resource
}

func (e *BasicScope) Compiler() eval.Compiler {
	return e.compiler
}

func (e *BasicScope) top() eval.Scope {
	var s eval.Scope = e
	for s.Parent() != nil {
		s = s.Parent()
	}
	return s
}

func (e *BasicScope) Get(name string) (value eval.Value, found bool) {
	if strings.HasPrefix(name, `::`) {
		name = name[2:]
		if !strings.Contains(name, `::`) {
			top := e.top()
			if t, ok := top.(*BasicScope); ok {
				value, found = t.scopes[0][name]
				return
			}
			return top.Get(name)
		}
	}

	if idx := strings.LastIndex(name, `::`); idx > 0 {
		return e.getQualified(name[:idx], name[idx+2:])
	}

	if utils.IsDecimalInteger(name) {
		if index, err := strconv.Atoi(name); err == nil {
			return e.RxGet(index)
		}
	}

	if value, found = e.scopes[0][name]; found {
		return
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return nil, false
}

func (e *BasicScope) getQualified(className, name string) (eval.Value, bool) {
	if e.compiler == nil {
		return nil, false
	}
	if cs, ok := e.compiler.ClassScope(eval.ClassKey(strings.ToLower(className))); ok {
		return cs.Get(name)
	}
	return nil, false
}

func (e *BasicScope) Set(name string, value eval.Value) bool {
	if strings.HasPrefix(name, `::`) {
		if e.parent != nil {
			return false
		}
		name = name[2:]
	}
	current := e.scopes[0]
	if _, found := current[name]; !found {
		current[name] = value
		return true
	}
	return false
}

func (e *BasicScope) State(name string) eval.VariableState {
	if strings.HasPrefix(name, `::`) {
		// Shortcut to global scope
		top := e.top()
		if top.State(name[2:]) == eval.NotFound {
			return eval.NotFound
		}
		return eval.Global
	}

	if _, ok := e.scopes[0][name]; ok {
		if e.parent == nil {
			return eval.Global
		}
		return eval.Local
	}
	if e.parent != nil {
		return e.parent.State(name)
	}
	return eval.NotFound
}

func (e *BasicScope) EphemeralFrom(groups []string) {
	// Assign the regular expression groups to an array value using the special key
	// '::R' in a new ephemeral layer
	gv := make([]eval.Value, len(groups))
	for idx, v := range groups {
		gv[idx] = v
	}
	e.scopes = append(e.scopes, map[string]eval.Value{groupKey: gv})
}

func (e *BasicScope) RxGet(index int) (value eval.Value, found bool) {
	// Variable is in integer form. An attempt is made to find a Regexp result group
	// in the ephemeral layers of this scope. No attempt is made to traverse parent
	// scopes.
	for idx := len(e.scopes) - 1; idx > 0; idx-- {
		if r, ok := e.scopes[idx][groupKey]; ok {
			if gv, ok := r.([]eval.Value); ok && index < len(gv) {
				return gv[index], true
			}
			return nil, false
		}
	}
	return nil, false
}

func (e *BasicScope) EphemeralLevel() int {
	return len(e.scopes) - 1
}

func (e *BasicScope) UnsetEphemeral(level int) {
	if level < 0 {
		level = 0
	}
	if level+1 < len(e.scopes) {
		e.scopes = e.scopes[:level+1]
	}
}
