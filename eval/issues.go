package eval

import (
	"github.com/lyraproj/issue/issue"
)

const (
	EVAL_ILLEGAL_REASSIGNMENT = `EVAL_ILLEGAL_REASSIGNMENT`
	EVAL_UNKNOWN_VARIABLE     = `EVAL_UNKNOWN_VARIABLE`
)

func init() {
	issue.Hard(EVAL_ILLEGAL_REASSIGNMENT, `Cannot reassign variable '$%{var}'`)

	issue.Hard(EVAL_UNKNOWN_VARIABLE, `Unknown variable: '$%{name}'`)
}

// Error creates an error issue with the given code and arguments. The
// location may be nil.
func Error(code issue.Code, args issue.H, location issue.Location) issue.Reported {
	return issue.NewReported(code, issue.SEVERITY_ERROR, args, location)
}
