package functions

import (
	"github.com/lyraproj/issue/issue"
)

const (
	EVAL_FAILURE        = `EVAL_FAILURE`
	EVAL_NO_REGISTRY    = `EVAL_NO_REGISTRY`
	EVAL_UNKNOWN_CLASS  = `EVAL_UNKNOWN_CLASS`
	EVAL_WRONG_ARGCOUNT = `EVAL_WRONG_ARGCOUNT`
)

func init() {
	issue.Hard(EVAL_FAILURE, `%{message}`)

	issue.Hard(EVAL_NO_REGISTRY, `Function %{function} cannot be called without a type registry`)

	issue.Hard(EVAL_UNKNOWN_CLASS, `Could not find class '%{name}'`)

	issue.Hard(EVAL_WRONG_ARGCOUNT, `Function %{function} expects at least %{expected} argument(s), got %{actual}`)
}
