package evaluator

import (
	"github.com/lyraproj/issue/issue"
)

const (
	EVAL_DIV_BY_ZERO                   = `EVAL_DIV_BY_ZERO`
	EVAL_ILLEGAL_ASSIGNMENT            = `EVAL_ILLEGAL_ASSIGNMENT`
	EVAL_ILLEGAL_MULTI_ASSIGNMENT_SIZE = `EVAL_ILLEGAL_MULTI_ASSIGNMENT_SIZE`
	EVAL_ILLEGAL_REGEXP                = `EVAL_ILLEGAL_REGEXP`
	EVAL_ILLEGAL_RESOURCE_FORM         = `EVAL_ILLEGAL_RESOURCE_FORM`
	EVAL_ILLEGAL_TITLE                 = `EVAL_ILLEGAL_TITLE`
	EVAL_MISSING_MULTI_ASSIGNMENT_KEY  = `EVAL_MISSING_MULTI_ASSIGNMENT_KEY`
	EVAL_NOT_INDEXABLE                 = `EVAL_NOT_INDEXABLE`
	EVAL_OPERATOR_NOT_APPLICABLE       = `EVAL_OPERATOR_NOT_APPLICABLE`
	EVAL_UNHANDLED_EXPRESSION          = `EVAL_UNHANDLED_EXPRESSION`
	EVAL_UNKNOWN_FUNCTION              = `EVAL_UNKNOWN_FUNCTION`
	EVAL_PARSE_ERROR                   = `EVAL_PARSE_ERROR`
)

func init() {
	issue.Hard(EVAL_DIV_BY_ZERO, `Division by 0`)

	issue.Hard(EVAL_ILLEGAL_ASSIGNMENT, `Illegal attempt to assign to '%{value}'. Not an assignable reference`)

	issue.Hard(EVAL_ILLEGAL_MULTI_ASSIGNMENT_SIZE, `Mismatched number of assignable entries and values, expected %{expected}, got %{actual}`)

	issue.Hard(EVAL_ILLEGAL_REGEXP, `Illegal regular expression /%{pattern}/: %{detail}`)

	issue.Hard(EVAL_ILLEGAL_RESOURCE_FORM, `Only regular resources are supported, got a %{form} resource`)

	issue.Hard(EVAL_ILLEGAL_TITLE, `Illegal title type '%{title}'. Expected a String or an Array of Strings`)

	issue.Hard(EVAL_MISSING_MULTI_ASSIGNMENT_KEY, `No value for required key '%{name}' in assignment to variables from hash`)

	issue.Hard(EVAL_NOT_INDEXABLE, `The value '%{value}' cannot be accessed with [ ]`)

	issue.Hard(EVAL_OPERATOR_NOT_APPLICABLE, `Operator '%{operator}' is not applicable to '%{left}'`)

	issue.Hard(EVAL_UNHANDLED_EXPRESSION, `Evaluator cannot handle an expression of type %{expression}`)

	issue.Hard(EVAL_UNKNOWN_FUNCTION, `Unknown function: '%{name}'`)

	issue.Hard(EVAL_PARSE_ERROR, `Unable to parse expression '%{source}': %{detail}`)
}
