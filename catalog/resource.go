package catalog

import (
	"strings"

	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/puppet-catalog/eval"
	"github.com/lyraproj/puppet-catalog/utils"
)

// Resource is the catalog entry for a class, node, defined type or native
// resource.
type Resource struct {
	typeName  string
	title     string
	names     []string
	params    map[string]eval.Value
	tags      []string
	scope     eval.Scope
	evaluated bool
	location  issue.Location
}

// NewResource creates a resource with the given type and title. The type
// name is capitalized. The resource is automatically tagged with its type
// name and, for classes, with the class name.
func NewResource(typeName, title string, scope eval.Scope, location issue.Location) *Resource {
	typeName = utils.CapitalizeSegments(strings.TrimPrefix(typeName, `::`))
	r := &Resource{
		typeName: typeName,
		title:    title,
		params:   make(map[string]eval.Value),
		scope:    scope,
		location: location}
	r.Tag(typeName)
	if typeName == `Class` && title != eval.MainTitle {
		r.Tag(title)
	}
	return r
}

func (r *Resource) Type() string {
	return r.typeName
}

func (r *Resource) Title() string {
	return r.title
}

func (r *Resource) Name() string {
	if n, ok := r.params[`name`]; ok && n != nil {
		return eval.ToString(n)
	}
	return r.title
}

func (r *Resource) Ref() string {
	return Reference(r.typeName, r.title)
}

func (r *Resource) Get(name string) (eval.Value, bool) {
	v, ok := r.params[name]
	return v, ok
}

func (r *Resource) Set(name string, value eval.Value) {
	if _, ok := r.params[name]; !ok {
		r.names = append(r.names, name)
	}
	r.params[name] = value
}

func (r *Resource) ParameterNames() []string {
	return r.names
}

// Tag adds tags to the resource. A qualified name adds the name and each of
// its segments.
func (r *Resource) Tag(names ...string) {
	r.tags = addTags(r.tags, names)
}

func (r *Resource) Tags() []string {
	return r.tags
}

func (r *Resource) Scope() eval.Scope {
	return r.scope
}

func (r *Resource) Evaluated() bool {
	return r.evaluated
}

// MarkEvaluated marks the resource as evaluated without evaluating it. Used
// for native resources which have no code.
func (r *Resource) MarkEvaluated() {
	r.evaluated = true
}

// Evaluate evaluates the resource through the compiler of its scope. The
// resource is marked as evaluated before evaluation starts so that a
// resource is never evaluated twice, even when evaluation fails.
func (r *Resource) Evaluate() error {
	if r.evaluated {
		return nil
	}
	r.evaluated = true
	return r.scope.Compiler().EvaluateResource(r)
}

func (r *Resource) Location() issue.Location {
	return r.location
}

func (r *Resource) String() string {
	return r.Ref()
}

func addTags(tags []string, names []string) []string {
	for _, name := range names {
		name = strings.ToLower(strings.TrimPrefix(name, `::`))
		if name == `` {
			continue
		}
		tags = appendTag(tags, name)
		if strings.Contains(name, `::`) {
			for _, s := range utils.NameSegments(name) {
				tags = appendTag(tags, s)
			}
		}
	}
	return tags
}

func appendTag(tags []string, tag string) []string {
	if utils.ContainsString(tags, tag) {
		return tags
	}
	return append(tags, tag)
}
