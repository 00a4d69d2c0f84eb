package resource

import (
	"github.com/lyraproj/issue/issue"
)

const (
	EVAL_INVALID_KIND          = `EVAL_INVALID_KIND`
	EVAL_INVALID_TYPE_NAME     = `EVAL_INVALID_TYPE_NAME`
	EVAL_RESERVED_PARAMETER    = `EVAL_RESERVED_PARAMETER`
	EVAL_UNRESOLVED_PARENT     = `EVAL_UNRESOLVED_PARENT`
	EVAL_CIRCULAR_INHERITANCE  = `EVAL_CIRCULAR_INHERITANCE`
	EVAL_MERGE_WRONG_KIND      = `EVAL_MERGE_WRONG_KIND`
	EVAL_MERGE_PARENT_CONFLICT = `EVAL_MERGE_PARENT_CONFLICT`
	EVAL_MERGE_FROZEN_MAIN     = `EVAL_MERGE_FROZEN_MAIN`
	EVAL_INVALID_PARAMETER     = `EVAL_INVALID_PARAMETER`
	EVAL_MISSING_PARAMETER     = `EVAL_MISSING_PARAMETER`
	EVAL_ENSURE_DEFINITION     = `EVAL_ENSURE_DEFINITION`
	EVAL_UNKNOWN_RESOURCE_TYPE = `EVAL_UNKNOWN_RESOURCE_TYPE`
	EVAL_INVALID_RECORD        = `EVAL_INVALID_RECORD`
)

func init() {
	issue.Hard(EVAL_INVALID_KIND, `Invalid resource supertype '%{kind}'`)

	issue.Hard(EVAL_INVALID_TYPE_NAME, `A resource type name must be a string, a regexp or a host name. Got '%{name}'`)

	issue.Hard(EVAL_RESERVED_PARAMETER, `%{type} cannot declare parameter '%{param}'. It is a metaparameter`)

	issue.Hard(EVAL_UNRESOLVED_PARENT, `Could not find parent resource type '%{parent}' of type %{kind} for %{type}`)

	issue.Hard(EVAL_CIRCULAR_INHERITANCE, `Circular inheritance detected for %{type}: %{chain}`)

	issue.Hard(EVAL_MERGE_WRONG_KIND, `%{name} is not a class; cannot add code %{direction} it`)

	issue.Hard(EVAL_MERGE_PARENT_CONFLICT, `Cannot merge classes with different parent classes (%{name} => %{parent} vs. %{other_name} => %{other_parent})`)

	issue.Hard(EVAL_MERGE_FROZEN_MAIN, `Cannot have code outside of a class/node/define because 'freeze_main' is enabled`)

	issue.Hard(EVAL_INVALID_PARAMETER, `%{type} does not accept attribute %{param}`)

	issue.Hard(EVAL_MISSING_PARAMETER, `Must pass %{param} to %{type}`)

	issue.Hard(EVAL_ENSURE_DEFINITION, `Cannot create resources for defined resource type %{type}`)

	issue.Hard(EVAL_UNKNOWN_RESOURCE_TYPE, `Resource type not found: %{res_type}`)

	issue.Hard(EVAL_INVALID_RECORD, `Invalid resource type record. Expected %{expected}, got '%{actual}'`)
}
