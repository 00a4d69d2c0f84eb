// Package catalog contains the catalog that a compilation produces.
package catalog

import (
	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/puppet-catalog/eval"
)

// Catalog is the result of compiling one node.
type Catalog struct {
	name        string
	environment string
	resources   []eval.Resource
	index       map[string]eval.Resource
	tags        []string
	classes     []string
}

// NewCatalog creates an empty catalog for the given node and environment.
func NewCatalog(name, environment string) *Catalog {
	return &Catalog{
		name:        name,
		environment: environment,
		index:       make(map[string]eval.Resource, 64)}
}

func (c *Catalog) Name() string {
	return c.name
}

func (c *Catalog) Environment() string {
	return c.environment
}

func (c *Catalog) Resource(typeName, title string) (eval.Resource, bool) {
	r, ok := c.index[key(typeName, title)]
	return r, ok
}

// ResourceByRef returns the resource for a reference in the form Type[title].
func (c *Catalog) ResourceByRef(ref string) (eval.Resource, bool) {
	if typeName, title, ok := SplitRef(ref); ok {
		return c.Resource(typeName, title)
	}
	return nil, false
}

func (c *Catalog) AddResource(r eval.Resource) error {
	k := key(r.Type(), r.Title())
	if prev, ok := c.index[k]; ok {
		return eval.Error(EVAL_DUPLICATE_RESOURCE, issue.H{`ref`: r.Ref(), `previous_location`: describeLocation(prev.Location())}, r.Location())
	}
	c.index[k] = r
	c.resources = append(c.resources, r)
	return nil
}

// Resources returns all resources in the order they were added.
func (c *Catalog) Resources() []eval.Resource {
	return c.resources
}

// Unevaluated returns the resources that have not yet been evaluated in the
// order they were added.
func (c *Catalog) Unevaluated() []eval.Resource {
	var result []eval.Resource
	for _, r := range c.resources {
		if !r.Evaluated() {
			result = append(result, r)
		}
	}
	return result
}

func (c *Catalog) Tag(names ...string) {
	c.tags = addTags(c.tags, names)
}

func (c *Catalog) IsTagged(name string) bool {
	for _, t := range c.tags {
		if t == name {
			return true
		}
	}
	return false
}

func (c *Catalog) Tags() []string {
	return c.tags
}

// AddClass records the name of an evaluated class. Each name is recorded once.
func (c *Catalog) AddClass(name string) {
	for _, n := range c.classes {
		if n == name {
			return
		}
	}
	c.classes = append(c.classes, name)
}

func (c *Catalog) Classes() []string {
	return c.classes
}

func describeLocation(location issue.Location) string {
	if location == nil || location.File() == `` && location.Line() == 0 {
		return `in this catalog`
	}
	return `at ` + issue.LocationString(location)
}
