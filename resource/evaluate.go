package resource

import (
	"strings"

	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/puppet-catalog/eval"
)

// EvaluateCode evaluates the code of this type for the given resource.
//
// The parent, if any, is evaluated first unless its resource is already evaluated. A new scope
// is then created with the class scope of the parent, or the scope of the resource, as its
// parent. The main class is evaluated directly in the scope of its resource. Class and node
// scopes are cached in the compiler. The parameters of the resource are bound in the new scope
// and the code is evaluated. The capture groups of a regexp named node are available to the
// parameter defaults and the code.
func (t *Type) EvaluateCode(resource eval.Resource) error {
	parentScope, err := t.evaluateParentType(resource)
	if err != nil {
		return err
	}

	scope := resource.Scope()
	if parentScope != nil {
		scope = parentScope
	}
	if resource.Title() != eval.MainTitle {
		scope = scope.NewScope(t.namespace, t.module, resource)
	}

	compiler := scope.Compiler()
	switch t.kind {
	case Hostclass:
		if t.name != `` {
			compiler.Catalog().AddClass(t.name)
		}
		compiler.SetClassScope(t.Key(), scope)
	case Node:
		compiler.SetClassScope(t.Key(), scope)
	case Definition:
	}
	compiler.Logger().Logf(eval.DEBUG, `Evaluating %s`, t.String())

	if t.IsRegexNamed() {
		if groups, ok := t.Match(compiler.NodeName()); ok {
			level := scope.EphemeralLevel()
			scope.EphemeralFrom(groups)
			defer scope.UnsetEphemeral(level)
		}
	}

	if err = t.SetResourceParameters(resource, scope); err != nil {
		return err
	}
	if t.code == nil {
		return nil
	}
	return t.code.SafeEvaluate(scope)
}

// evaluateParentType ensures that the resource of the parent is present in the catalog and
// evaluated. It returns the class scope of the parent.
func (t *Type) evaluateParentType(resource eval.Resource) (eval.Scope, error) {
	scope := resource.Scope()
	parent, err := t.ParentType(scope)
	if err != nil || parent == nil {
		return nil, err
	}

	tn, ok := parent.kind.resourceTypeName()
	if !ok {
		return nil, eval.Error(EVAL_ENSURE_DEFINITION, issue.H{`type`: parent.String()}, t.Location())
	}
	catalog := scope.Compiler().Catalog()
	pr, found := catalog.Resource(tn, parent.name)
	if !found {
		if pr, err = parent.EnsureInCatalog(scope, nil); err != nil {
			return nil, err
		}
	}
	if !pr.Evaluated() {
		if err = pr.Evaluate(); err != nil {
			return nil, err
		}
	}
	ps, _ := scope.Compiler().ClassScope(parent.Key())
	return ps, nil
}

// Evaluate finds the type of the given resource in the registry and evaluates its code. Class
// and Node resources are looked up by title. The resource for the main class has the title
// `main`. Resources of unknown types have no code and are ignored.
func Evaluate(resource eval.Resource, registry Registry) error {
	var t *Type
	var ok bool
	switch resource.Type() {
	case `Class`:
		title := resource.Title()
		if title == eval.MainTitle {
			title = ``
		}
		if t, ok = registry.Lookup(Hostclass, Normalize(title)); !ok && title == `` {
			// an empty main class
			return nil
		}
	case `Node`:
		t, ok = registry.Lookup(Node, Normalize(resource.Title()))
	default:
		t, ok = registry.Lookup(Definition, Normalize(strings.TrimPrefix(resource.Type(), `::`)))
		if !ok {
			return nil
		}
	}
	if !ok {
		return eval.Error(EVAL_UNKNOWN_RESOURCE_TYPE, issue.H{`res_type`: resource.Ref()}, resource.Location())
	}
	return t.EvaluateCode(resource)
}
