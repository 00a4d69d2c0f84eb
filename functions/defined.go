package functions

import (
	"strings"

	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/puppet-catalog/catalog"
	"github.com/lyraproj/puppet-catalog/eval"
	"github.com/lyraproj/puppet-catalog/resource"
)

func init() {
	eval.NewGoFunction(`defined`, func(scope eval.Scope, args []eval.Value, location issue.Location) (eval.Value, error) {
		if len(args) == 0 {
			return nil, eval.Error(EVAL_WRONG_ARGCOUNT, issue.H{`function`: `defined`, `expected`: 1, `actual`: 0}, location)
		}
		for _, arg := range args {
			if isDefined(scope, eval.ToString(arg)) {
				return true, nil
			}
		}
		return false, nil
	})
}

// isDefined checks a variable when the name starts with '$', a catalog
// resource when the name is a reference and a class or defined type otherwise.
func isDefined(scope eval.Scope, name string) bool {
	if strings.HasPrefix(name, `$`) {
		_, found := scope.Get(name[1:])
		return found
	}
	if _, _, ok := catalog.SplitRef(name); ok {
		_, found := scope.Compiler().Catalog().ResourceByRef(name)
		return found
	}
	registry, ok := resource.RegistryOf(scope)
	if !ok {
		return false
	}
	if _, found := registry.Lookup(resource.Hostclass, name, scope.Namespace()); found {
		return true
	}
	_, found := registry.Lookup(resource.Definition, name, scope.Namespace())
	return found
}
