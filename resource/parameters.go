package resource

import (
	"strings"

	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/puppet-catalog/eval"
)

// SetResourceParameters binds the parameters of the resource as variables in the given scope.
//
// The variables title, name, module_name and caller_module_name are bound first unless the type
// declares a parameter with the same name. The module_name is the module of the type and the
// caller_module_name is the module of the declaring scope. Each declared parameter is then bound,
// in declaration order, to the value given by the resource or to its evaluated default. Defaults
// are stored on the resource as well.
func (t *Type) SetResourceParameters(resource eval.Resource, scope eval.Scope) error {
	location := resource.Location()
	if location == nil {
		location = t.Location()
	}

	for _, name := range resource.ParameterNames() {
		if !t.IsValidParameter(name) {
			return eval.Error(EVAL_INVALID_PARAMETER, issue.H{`type`: t.String(), `param`: name}, location)
		}
	}

	title := resource.Title()
	name := resource.Name()
	if t.kind == Hostclass {
		title = strings.ToLower(title)
		name = strings.ToLower(name)
	}
	specials := [][2]string{{`title`, title}, {`name`, name}}
	if t.module != `` {
		specials = append(specials, [2]string{`module_name`, t.module})
	}
	if caller := scope.ParentModuleName(); caller != `` {
		specials = append(specials, [2]string{`caller_module_name`, caller})
	}
	for _, s := range specials {
		if _, declared := t.argument(s[0]); !declared {
			if err := bind(scope, s[0], s[1], location); err != nil {
				return err
			}
		}
	}

	for _, arg := range t.arguments {
		if v, ok := resource.Get(arg.Name); ok {
			if err := bind(scope, arg.Name, v, location); err != nil {
				return err
			}
			continue
		}
		if arg.Default == nil {
			return eval.Error(EVAL_MISSING_PARAMETER, issue.H{`type`: resource.Ref(), `param`: arg.Name}, location)
		}
		v, err := arg.Default.Evaluate(scope)
		if err != nil {
			return err
		}
		resource.Set(arg.Name, v)
		if err = bind(scope, arg.Name, v, location); err != nil {
			return err
		}
	}
	return nil
}

func bind(scope eval.Scope, name string, value eval.Value, location issue.Location) error {
	if !scope.Set(name, value) {
		return eval.Error(eval.EVAL_ILLEGAL_REASSIGNMENT, issue.H{`var`: name}, location)
	}
	return nil
}
