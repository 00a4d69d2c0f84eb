package loader

import (
	"github.com/lyraproj/issue/issue"
)

const (
	LOAD_ILLEGAL_NODE_NAME      = `LOAD_ILLEGAL_NODE_NAME`
	LOAD_INVALID_METADATA       = `LOAD_INVALID_METADATA`
	LOAD_MISSING_DEPENDENCY     = `LOAD_MISSING_DEPENDENCY`
	LOAD_PARSE_ERROR            = `LOAD_PARSE_ERROR`
	LOAD_UNABLE_TO_READ_FILE    = `LOAD_UNABLE_TO_READ_FILE`
	LOAD_UNSATISFIED_DEPENDENCY = `LOAD_UNSATISFIED_DEPENDENCY`
	LOAD_UNSUPPORTED_DEFINITION = `LOAD_UNSUPPORTED_DEFINITION`
)

func init() {
	issue.Hard(LOAD_INVALID_METADATA, `Unable to read module metadata from %{path}: %{detail}`)

	issue.Hard(LOAD_PARSE_ERROR, `Unable to parse %{file}: %{detail}`)

	issue.Hard(LOAD_UNABLE_TO_READ_FILE, `Unable to read file '%{path}': %{detail}`)

	issue.Hard(LOAD_UNSATISFIED_DEPENDENCY, `Module '%{module}' depends on '%{dependency}' %{range} but version %{version} is installed`)

	issue.Hard(LOAD_UNSUPPORTED_DEFINITION, `A %{definition} cannot be loaded by the catalog compiler`)

	issue.Hard(LOAD_MISSING_DEPENDENCY, `Module '%{module}' depends on '%{dependency}' which is not installed`)

	issue.Hard(LOAD_ILLEGAL_NODE_NAME, `Illegal node name '%{name}'`)
}
