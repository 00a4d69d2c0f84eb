package resource

import (
	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/puppet-catalog/eval"
)

// Kind is the supertype of a resource type.
type Kind int

const (
	Hostclass = Kind(iota + 1)
	Definition
	Node
)

func (k Kind) String() string {
	switch k {
	case Hostclass:
		return `hostclass`
	case Definition:
		return `definition`
	case Node:
		return `node`
	default:
		return `unknown`
	}
}

func (k Kind) valid() bool {
	switch k {
	case Hostclass, Definition, Node:
		return true
	default:
		return false
	}
}

// resourceTypeName maps the kind to the type of the catalog resources that represent it.
// Definitions have no such type since their resources are always declared explicitly.
func (k Kind) resourceTypeName() (string, bool) {
	switch k {
	case Hostclass:
		return `Class`, true
	case Node:
		return `Node`, true
	default:
		return ``, false
	}
}

// KindFromString returns the Kind with the given name. The names used by manifests
// (class, define) are accepted as well.
func KindFromString(s string) (Kind, error) {
	switch s {
	case `hostclass`, `class`:
		return Hostclass, nil
	case `definition`, `define`:
		return Definition, nil
	case `node`:
		return Node, nil
	default:
		return 0, eval.Error(EVAL_INVALID_KIND, issue.H{`kind`: s}, nil)
	}
}
