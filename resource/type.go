// Package resource contains the resource types (classes, defined types and
// nodes), the collection that they are registered in and the engine that
// evaluates them into a catalog.
package resource

import (
	"regexp"

	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/puppet-catalog/eval"
	"github.com/lyraproj/puppet-catalog/utils"
)

type (
	// Argument is a declared parameter of a resource type. A nil Default means
	// that the parameter is required.
	Argument struct {
		Name    string
		Default eval.Expression
	}

	// Options are the optional attributes of a new Type.
	Options struct {
		Code       eval.CodeBody
		Doc        string
		Line       int
		File       string
		Parent     string
		Arguments  []*Argument
		Collection Registry
		Module     string
	}

	// parentLink is either unresolved, holding only the name of the parent, or
	// resolved, holding the parent type as well.
	parentLink struct {
		name     string
		resolved *Type
	}

	// Type is a class, a defined resource type, or a node definition.
	Type struct {
		kind       Kind
		name       string
		matcher    *regexp.Regexp
		source     *regexp.Regexp
		namespace  string
		parent     parentLink
		arguments  []*Argument
		code       eval.CodeBody
		doc        string
		file       string
		line       int
		module     string
		collection Registry
	}
)

// NewType creates a new resource type. The name must be a string, a
// *regexp.Regexp or a HostName. Only node names can be regular expressions.
func NewType(kind Kind, name interface{}, options *Options) (*Type, error) {
	if !kind.valid() {
		return nil, eval.Error(EVAL_INVALID_KIND, issue.H{`kind`: kind.String()}, nil)
	}
	if options == nil {
		options = &Options{}
	}

	t := &Type{
		kind:       kind,
		code:       options.Code,
		doc:        options.Doc,
		file:       options.File,
		line:       options.Line,
		module:     options.Module,
		collection: options.Collection,
		parent:     parentLink{name: Normalize(options.Parent)}}

	raw := name
	if hn, ok := raw.(HostName); ok {
		raw = hn.Value
	}
	switch n := raw.(type) {
	case string:
		t.name = Normalize(n)
	case *regexp.Regexp:
		if kind != Node {
			return nil, eval.Error(EVAL_INVALID_TYPE_NAME, issue.H{`name`: `/` + n.String() + `/`}, t.Location())
		}
		t.name = Normalize(n)
		m, err := regexp.Compile(`(?i)` + n.String())
		if err != nil {
			return nil, eval.Error(EVAL_INVALID_TYPE_NAME, issue.H{`name`: n.String()}, t.Location())
		}
		t.matcher = m
		t.source = n
	default:
		return nil, eval.Error(EVAL_INVALID_TYPE_NAME, issue.H{`name`: eval.ToString(name)}, t.Location())
	}
	t.namespace = NamespaceOf(kind, t.name, t.matcher != nil)

	if err := t.SetArguments(options.Arguments); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Type) Kind() Kind {
	return t.kind
}

// Name returns the canonical name.
func (t *Type) Name() string {
	return t.name
}

func (t *Type) Namespace() string {
	return t.namespace
}

// Key returns an identifier that is unique for the type within a collection.
func (t *Type) Key() string {
	return eval.TypeKey(t.kind.String(), t.name)
}

func (t *Type) Doc() string {
	return t.doc
}

func (t *Type) File() string {
	return t.file
}

func (t *Type) Line() int {
	return t.line
}

func (t *Type) Code() eval.CodeBody {
	return t.code
}

func (t *Type) ModuleName() string {
	return t.module
}

// ParentName returns the canonical name of the parent or an empty string.
func (t *Type) ParentName() string {
	if t.parent.resolved != nil {
		return t.parent.resolved.name
	}
	return t.parent.name
}

func (t *Type) Arguments() []*Argument {
	return t.arguments
}

// SetArguments replaces the declared parameters of the type. Metaparameters
// cannot be declared.
func (t *Type) SetArguments(arguments []*Argument) error {
	args := make([]*Argument, 0, len(arguments))
	for _, a := range arguments {
		if eval.IsMetaparameter(a.Name) {
			return eval.Error(EVAL_RESERVED_PARAMETER, issue.H{`type`: t.String(), `param`: a.Name}, t.Location())
		}
		args = append(args, &Argument{Name: a.Name, Default: a.Default})
	}
	t.arguments = args
	return nil
}

func (t *Type) argument(name string) (*Argument, bool) {
	for _, a := range t.arguments {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// IsRegexNamed returns true if the name of the type is a regular expression.
func (t *Type) IsRegexNamed() bool {
	return t.matcher != nil
}

// Match returns true if the candidate matches the name of this type. Regexp named types
// match case insensitively and return the capture groups, the whole match first. Other
// types match when the normalized candidate equals the name.
func (t *Type) Match(candidate interface{}) ([]string, bool) {
	if hn, ok := candidate.(HostName); ok {
		candidate = hn.Value
	}
	s, ok := candidate.(string)
	if !ok {
		s = eval.ToString(candidate)
	}
	if t.matcher == nil {
		return nil, Normalize(s) == t.name
	}
	groups := t.matcher.FindStringSubmatch(s)
	return groups, groups != nil
}

// IsValidParameter returns true if the name is `name`, a metaparameter, or a declared
// parameter of the type.
func (t *Type) IsValidParameter(name string) bool {
	if name == `name` || eval.IsMetaparameter(name) {
		return true
	}
	_, ok := t.argument(name)
	return ok
}

// IsChildOf returns true if candidate is the parent of this type or an ancestor of the
// parent. Parents are resolved using the given scope when needed.
func (t *Type) IsChildOf(candidate *Type, scope eval.Scope) bool {
	seen := map[*Type]bool{t: true}
	for p := t; ; {
		parent, err := p.ParentType(scope)
		if err != nil || parent == nil || seen[parent] {
			return false
		}
		if parent == candidate {
			return true
		}
		seen[parent] = true
		p = parent
	}
}

// Location returns the location of the definition of the type or nil when it is unknown.
func (t *Type) Location() issue.Location {
	if t.file == `` && t.line == 0 {
		return nil
	}
	return issue.NewLocation(t.file, t.line, 0)
}

func (t *Type) String() string {
	switch t.kind {
	case Hostclass:
		if t.name == `` {
			return `Class[main]`
		}
		return `Class[` + utils.CapitalizeSegments(t.name) + `]`
	case Node:
		return `Node[` + t.name + `]`
	default:
		return utils.CapitalizeSegments(t.name)
	}
}

// clone returns a copy of the type that belongs to the given collection. The parent link is
// reset to its unresolved state.
func (t *Type) clone(collection Registry) *Type {
	c := *t
	c.parent = parentLink{name: t.ParentName()}
	c.arguments = append([]*Argument(nil), t.arguments...)
	c.collection = collection
	return &c
}
