package yaml

import (
	"github.com/lyraproj/puppet-catalog/catalog"
	"github.com/lyraproj/puppet-catalog/eval"
	"github.com/lyraproj/puppet-catalog/resource"
	ym "gopkg.in/yaml.v2"
)

// MarshalCatalog writes the catalog as a YAML document.
func MarshalCatalog(c *catalog.Catalog) ([]byte, error) {
	cd := c.ToData()
	resources := make([]ym.MapSlice, len(cd.Resources))
	for i, rd := range cd.Resources {
		r := ym.MapSlice{{Key: `type`, Value: rd.Type}, {Key: `title`, Value: rd.Title}}
		if len(rd.Tags) > 0 {
			r = append(r, ym.MapItem{Key: `tags`, Value: rd.Tags})
		}
		if rd.File != `` {
			r = append(r, ym.MapItem{Key: `file`, Value: rd.File}, ym.MapItem{Key: `line`, Value: rd.Line})
		}
		if len(rd.Parameters) > 0 {
			params := make(ym.MapSlice, len(rd.Parameters))
			for j, p := range rd.Parameters {
				params[j] = ym.MapItem{Key: p.Name, Value: toYAML(p.Value)}
			}
			r = append(r, ym.MapItem{Key: `parameters`, Value: params})
		}
		resources[i] = r
	}
	doc := ym.MapSlice{{Key: `name`, Value: cd.Name}}
	if cd.Environment != `` {
		doc = append(doc, ym.MapItem{Key: `environment`, Value: cd.Environment})
	}
	if len(cd.Tags) > 0 {
		doc = append(doc, ym.MapItem{Key: `tags`, Value: cd.Tags})
	}
	if len(cd.Classes) > 0 {
		doc = append(doc, ym.MapItem{Key: `classes`, Value: cd.Classes})
	}
	doc = append(doc, ym.MapItem{Key: `resources`, Value: resources})
	return ym.Marshal(doc)
}

// MarshalType writes the interchange record of a resource type with its keys in
// the order name, type, line, doc, file, parent, arguments. Empty fields are omitted.
func MarshalType(t *resource.Type) ([]byte, error) {
	return ym.Marshal(typeSlice(t))
}

// MarshalTypes writes all types of the collection as a YAML sequence ordered by
// kind and name.
func MarshalTypes(tc *resource.TypeCollection) ([]byte, error) {
	var all []ym.MapSlice
	for _, k := range []resource.Kind{resource.Hostclass, resource.Definition, resource.Node} {
		for _, t := range tc.Types(k) {
			all = append(all, typeSlice(t))
		}
	}
	return ym.Marshal(all)
}

func typeSlice(t *resource.Type) ym.MapSlice {
	d := t.ToData()
	ms := ym.MapSlice{{Key: `name`, Value: d.Name}, {Key: `type`, Value: d.Type}}
	if d.Line > 0 {
		ms = append(ms, ym.MapItem{Key: `line`, Value: d.Line})
	}
	if d.Doc != `` {
		ms = append(ms, ym.MapItem{Key: `doc`, Value: d.Doc})
	}
	if d.File != `` {
		ms = append(ms, ym.MapItem{Key: `file`, Value: d.File})
	}
	if d.Parent != `` {
		ms = append(ms, ym.MapItem{Key: `parent`, Value: d.Parent})
	}
	if len(d.Arguments) > 0 {
		args := make([]ym.MapSlice, len(d.Arguments))
		for i, a := range d.Arguments {
			am := ym.MapSlice{{Key: `name`, Value: a.Name}}
			if a.Default != nil {
				am = append(am, ym.MapItem{Key: `default`, Value: *a.Default})
			}
			args[i] = am
		}
		ms = append(ms, ym.MapItem{Key: `arguments`, Value: args})
	}
	return ms
}

// UnmarshalType reads a resource type written by MarshalType. The collection is
// used to resolve the parent of the type.
func UnmarshalType(data []byte, collection *resource.TypeCollection) (*resource.Type, error) {
	v, err := Unmarshal(data)
	if err != nil {
		return nil, err
	}
	h, _ := v.(map[string]eval.Value)
	d := &resource.Data{
		Name:   str(h[`name`]),
		Type:   str(h[`type`]),
		Doc:    str(h[`doc`]),
		File:   str(h[`file`]),
		Parent: str(h[`parent`])}
	if line, ok := h[`line`].(int64); ok {
		d.Line = int(line)
	}
	if args, ok := h[`arguments`].([]eval.Value); ok {
		for _, a := range args {
			ah, _ := a.(map[string]eval.Value)
			ad := &resource.ArgumentData{Name: str(ah[`name`])}
			if dv, ok := ah[`default`]; ok {
				s := str(dv)
				ad.Default = &s
			}
			d.Arguments = append(d.Arguments, ad)
		}
	}
	return resource.FromData(d, collection)
}

func str(v eval.Value) string {
	if v == nil {
		return ``
	}
	return eval.ToString(v)
}

// toYAML converts a parameter value into something that the yaml encoder writes
// with sorted hash keys.
func toYAML(v eval.Value) interface{} {
	switch v := v.(type) {
	case []eval.Value:
		a := make([]interface{}, len(v))
		for i, e := range v {
			a[i] = toYAML(e)
		}
		return a
	case map[string]eval.Value:
		ms := make(ym.MapSlice, 0, len(v))
		for _, k := range eval.SortedKeys(v) {
			ms = append(ms, ym.MapItem{Key: k, Value: toYAML(v[k])})
		}
		return ms
	default:
		return v
	}
}
