package functions

import (
	"strings"

	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/puppet-catalog/catalog"
	"github.com/lyraproj/puppet-catalog/eval"
	"github.com/lyraproj/puppet-catalog/resource"
)

func init() {
	for _, name := range []string{`include`, `require`, `contain`} {
		fn := name
		eval.NewGoFunction(fn, func(scope eval.Scope, args []eval.Value, location issue.Location) (eval.Value, error) {
			return nil, declareClasses(fn, scope, args, location)
		})
	}
}

// declareClasses ensures that each named class is in the catalog. Names are
// resolved relative to the namespace of the calling scope.
func declareClasses(function string, scope eval.Scope, args []eval.Value, location issue.Location) error {
	names := classNames(args, nil)
	if len(names) == 0 {
		return eval.Error(EVAL_WRONG_ARGCOUNT, issue.H{`function`: function, `expected`: 1, `actual`: 0}, location)
	}
	registry, ok := resource.RegistryOf(scope)
	if !ok {
		return eval.Error(EVAL_NO_REGISTRY, issue.H{`function`: function}, location)
	}
	for _, name := range names {
		t, found := registry.Lookup(resource.Hostclass, name, scope.Namespace())
		if !found {
			return eval.Error(EVAL_UNKNOWN_CLASS, issue.H{`name`: name}, location)
		}
		if _, err := t.EnsureInCatalog(scope, nil); err != nil {
			return err
		}
	}
	return nil
}

// classNames flattens arrays and strips the type from Class references.
func classNames(args []eval.Value, names []string) []string {
	for _, arg := range args {
		switch arg := arg.(type) {
		case []eval.Value:
			names = classNames(arg, names)
		case nil:
		default:
			name := eval.ToString(arg)
			if tn, title, ok := catalog.SplitRef(name); ok && strings.EqualFold(tn, `Class`) {
				name = title
			}
			if name != `` {
				names = append(names, name)
			}
		}
	}
	return names
}
