package functions

import (
	"bytes"

	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/puppet-catalog/eval"
)

func init() {
	for _, level := range eval.LOG_LEVELS {
		lvl := level
		eval.NewGoFunction(string(lvl), func(scope eval.Scope, args []eval.Value, _ issue.Location) (eval.Value, error) {
			scope.Compiler().Logger().Log(lvl, joinArgs(args))
			return nil, nil
		})
	}
}

func joinArgs(args []eval.Value) string {
	w := bytes.NewBufferString(``)
	for ix, arg := range args {
		if ix > 0 {
			w.WriteByte(' ')
		}
		eval.ToString3(arg, w)
	}
	return w.String()
}
