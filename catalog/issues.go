package catalog

import (
	"github.com/lyraproj/issue/issue"
)

const (
	EVAL_DUPLICATE_RESOURCE = `EVAL_DUPLICATE_RESOURCE`
)

func init() {
	issue.Hard(EVAL_DUPLICATE_RESOURCE, `Duplicate declaration: %{ref} is already declared %{previous_location}; cannot redeclare`)
}
