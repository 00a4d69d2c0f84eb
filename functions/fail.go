package functions

import (
	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/puppet-catalog/eval"
)

func init() {
	eval.NewGoFunction(`fail`, func(_ eval.Scope, args []eval.Value, location issue.Location) (eval.Value, error) {
		return nil, eval.Error(EVAL_FAILURE, issue.H{`message`: joinArgs(args)}, location)
	})
}
