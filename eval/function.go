package eval

import (
	"strings"

	"github.com/lyraproj/issue/issue"
)

// GoFunction is a function callable from a manifest. The location is the
// location of the call.
type GoFunction func(scope Scope, args []Value, location issue.Location) (Value, error)

var functions = map[string]GoFunction{}

// NewGoFunction registers a function. It must be called from an init function.
func NewGoFunction(name string, f GoFunction) {
	functions[strings.ToLower(name)] = f
}

// LoadFunction returns the function with the given name.
func LoadFunction(name string) (GoFunction, bool) {
	f, ok := functions[strings.ToLower(strings.TrimPrefix(name, `::`))]
	return f, ok
}
