package compiler

import (
	"github.com/lyraproj/issue/issue"
)

const (
	COMPILE_NO_NODE          = `COMPILE_NO_NODE`
	COMPILE_UNKNOWN_CLASS    = `COMPILE_UNKNOWN_CLASS`
	COMPILE_INVALID_SETTINGS = `COMPILE_INVALID_SETTINGS`
	COMPILE_NODE_FAILED      = `COMPILE_NODE_FAILED`
)

func init() {
	issue.Hard(COMPILE_NO_NODE, `Could not find node statement with name 'default' or '%{node}'`)

	issue.Hard(COMPILE_UNKNOWN_CLASS, `Could not find class %{name} for %{node}`)

	issue.Hard(COMPILE_INVALID_SETTINGS, `Unable to load settings from %{source}: %{detail}`)

	issue.Hard(COMPILE_NODE_FAILED, `Compilation of node %{node} failed: %{detail}`)
}
