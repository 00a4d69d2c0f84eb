package resource

import (
	"strings"

	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/puppet-catalog/eval"
)

// ParentType returns the parent of the type or nil if it has none. The parent
// is resolved once, using the namespace of this type, and then cached until the
// type is merged with another type. The scope is used to find the registry when
// the type doesn't belong to a collection.
//
// An inheritance chain that leads back to a type it has already passed is an
// error. The parent is not cached in that case.
func (t *Type) ParentType(scope eval.Scope) (*Type, error) {
	if t.parent.resolved != nil {
		return t.parent.resolved, nil
	}
	if t.parent.name == `` {
		return nil, nil
	}

	p, err := t.lookupParent(scope)
	if err != nil {
		return nil, err
	}
	if err = t.checkInheritance(p, scope); err != nil {
		return nil, err
	}
	t.parent.resolved = p
	return p, nil
}

func (t *Type) lookupParent(scope eval.Scope) (*Type, error) {
	registry := t.collection
	if registry == nil {
		if r, ok := RegistryOf(scope); ok {
			registry = r
		}
	}
	if registry != nil {
		if p, ok := registry.Lookup(t.kind, t.parent.name, t.namespace); ok {
			return p, nil
		}
	}
	return nil, eval.Error(EVAL_UNRESOLVED_PARENT, issue.H{`parent`: t.parent.name, `kind`: t.kind.String(), `type`: t.String()}, t.Location())
}

// checkInheritance walks the chain that starts with parent and fails if it
// visits a type twice. Parents further up that cannot be resolved end the walk.
// They are reported when their own type is evaluated.
func (t *Type) checkInheritance(parent *Type, scope eval.Scope) error {
	chain := []string{t.String()}
	seen := map[*Type]bool{t: true}
	for a := parent; a != nil; {
		chain = append(chain, a.String())
		if seen[a] {
			return eval.Error(EVAL_CIRCULAR_INHERITANCE, issue.H{`type`: t.String(), `chain`: strings.Join(chain, ` => `)}, t.Location())
		}
		seen[a] = true
		switch {
		case a.parent.resolved != nil:
			a = a.parent.resolved
		case a.parent.name == ``:
			a = nil
		default:
			next, err := a.lookupParent(scope)
			if err != nil {
				return nil
			}
			a = next
		}
	}
	return nil
}

func (t *Type) setParentName(name string) {
	t.parent = parentLink{name: Normalize(name)}
}
