package catalog

import (
	"regexp"

	"github.com/lyraproj/puppet-catalog/eval"
)

type (
	// Data is the serializable form of a catalog.
	Data struct {
		Name        string          `json:"name"`
		Environment string          `json:"environment,omitempty"`
		Tags        []string        `json:"tags,omitempty"`
		Classes     []string        `json:"classes,omitempty"`
		Resources   []*ResourceData `json:"resources"`
	}

	// ResourceData is the serializable form of a resource.
	ResourceData struct {
		Type       string       `json:"type"`
		Title      string       `json:"title"`
		Tags       []string     `json:"tags,omitempty"`
		File       string       `json:"file,omitempty"`
		Line       int          `json:"line,omitempty"`
		Parameters []*Parameter `json:"parameters,omitempty"`
	}

	Parameter struct {
		Name  string     `json:"name"`
		Value eval.Value `json:"value"`
	}
)

// ToData returns the serializable form of the catalog.
func (c *Catalog) ToData() *Data {
	d := &Data{
		Name:        c.name,
		Environment: c.environment,
		Tags:        c.tags,
		Classes:     c.classes,
		Resources:   make([]*ResourceData, len(c.resources))}
	for i, r := range c.resources {
		d.Resources[i] = ResourceToData(r)
	}
	return d
}

// ResourceToData returns the serializable form of a resource.
func ResourceToData(r eval.Resource) *ResourceData {
	rd := &ResourceData{Type: r.Type(), Title: r.Title(), Tags: r.Tags()}
	if loc := r.Location(); loc != nil {
		rd.File = loc.File()
		rd.Line = loc.Line()
	}
	names := r.ParameterNames()
	if len(names) > 0 {
		rd.Parameters = make([]*Parameter, len(names))
		for i, n := range names {
			v, _ := r.Get(n)
			rd.Parameters[i] = &Parameter{n, DataValue(v)}
		}
	}
	return rd
}

// DataValue converts a value into plain data. Regexps and the default value
// become strings.
func DataValue(v eval.Value) eval.Value {
	switch v := v.(type) {
	case *regexp.Regexp, eval.DefaultValue:
		return eval.SourceString(v)
	case []eval.Value:
		a := make([]eval.Value, len(v))
		for i, e := range v {
			a[i] = DataValue(e)
		}
		return a
	case map[string]eval.Value:
		h := make(map[string]eval.Value, len(v))
		for k, e := range v {
			h[k] = DataValue(e)
		}
		return h
	default:
		return v
	}
}
