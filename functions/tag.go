package functions

import (
	"strings"

	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/puppet-catalog/eval"
)

func init() {
	eval.NewGoFunction(`tag`, func(scope eval.Scope, args []eval.Value, _ issue.Location) (eval.Value, error) {
		tags := tagNames(args, nil)
		if r := scope.Resource(); r != nil {
			r.Tag(tags...)
		} else {
			scope.Compiler().Catalog().Tag(tags...)
		}
		return nil, nil
	})

	// tagged is true when every given tag is set on the current resource or
	// on the catalog.
	eval.NewGoFunction(`tagged`, func(scope eval.Scope, args []eval.Value, _ issue.Location) (eval.Value, error) {
		cat := scope.Compiler().Catalog()
		r := scope.Resource()
		for _, tag := range tagNames(args, nil) {
			if cat.IsTagged(tag) || r != nil && hasTag(r.Tags(), tag) {
				continue
			}
			return false, nil
		}
		return true, nil
	})
}

func tagNames(args []eval.Value, names []string) []string {
	for _, arg := range args {
		if a, ok := arg.([]eval.Value); ok {
			names = tagNames(a, names)
		} else if arg != nil {
			names = append(names, strings.ToLower(eval.ToString(arg)))
		}
	}
	return names
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
