package resource

import (
	"sort"

	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/puppet-catalog/catalog"
	"github.com/lyraproj/puppet-catalog/eval"
)

// EnsureInCatalog returns the catalog resource for this class or node, creating and evaluating
// it if it doesn't exist. The parent is ensured first, without parameters. Creating a new
// resource also tags the catalog with the name of the type. It is an error to call this method
// on a Definition.
func (t *Type) EnsureInCatalog(scope eval.Scope, parameters map[string]eval.Value) (eval.Resource, error) {
	tn, ok := t.kind.resourceTypeName()
	if !ok {
		return nil, eval.Error(EVAL_ENSURE_DEFINITION, issue.H{`type`: t.String()}, t.Location())
	}

	title := t.name
	if t.kind == Hostclass && title == `` {
		title = eval.MainTitle
	}

	cat := scope.Compiler().Catalog()
	if r, found := cat.Resource(tn, title); found {
		return r, nil
	}

	parent, err := t.ParentType(scope)
	if err != nil {
		return nil, err
	}
	if parent != nil {
		if _, err = parent.EnsureInCatalog(scope, nil); err != nil {
			return nil, err
		}
	}

	r := catalog.NewResource(tn, title, scope, t.Location())
	names := make([]string, 0, len(parameters))
	for n := range parameters {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		r.Set(n, parameters[n])
	}
	if err = cat.AddResource(r); err != nil {
		return nil, err
	}
	if t.name != `` {
		cat.Tag(t.name)
	}
	if err = r.Evaluate(); err != nil {
		return nil, err
	}
	return r, nil
}
