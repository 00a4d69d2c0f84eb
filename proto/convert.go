// Package proto converts values, resource types and catalogs to and from
// the datapb.Data protobuf message.
package proto

import (
	"github.com/lyraproj/data-protobuf/datapb"
	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/puppet-catalog/catalog"
	"github.com/lyraproj/puppet-catalog/eval"
	"github.com/lyraproj/puppet-catalog/resource"
)

const PROTO_INVALID_TYPE_DATA = `PROTO_INVALID_TYPE_DATA`

func init() {
	issue.Hard(PROTO_INVALID_TYPE_DATA, `Unable to read a resource type from protobuf data: %{detail}`)
}

// ToPBData converts a value to a datapb.Data. Hash entries are sorted by key.
func ToPBData(v eval.Value) (value *datapb.Data) {
	switch v := catalog.DataValue(v).(type) {
	case bool:
		value = &datapb.Data{Kind: &datapb.Data_BooleanValue{BooleanValue: v}}
	case float64:
		value = &datapb.Data{Kind: &datapb.Data_FloatValue{FloatValue: v}}
	case int64:
		value = &datapb.Data{Kind: &datapb.Data_IntegerValue{IntegerValue: v}}
	case int:
		value = &datapb.Data{Kind: &datapb.Data_IntegerValue{IntegerValue: int64(v)}}
	case string:
		value = &datapb.Data{Kind: &datapb.Data_StringValue{StringValue: v}}
	case []eval.Value:
		vs := make([]*datapb.Data, len(v))
		for i, elem := range v {
			vs[i] = ToPBData(elem)
		}
		value = &datapb.Data{Kind: &datapb.Data_ArrayValue{ArrayValue: &datapb.DataArray{Values: vs}}}
	case map[string]eval.Value:
		keys := eval.SortedKeys(v)
		vs := make([]*datapb.DataEntry, len(keys))
		for i, k := range keys {
			vs[i] = &datapb.DataEntry{Key: ToPBData(k), Value: ToPBData(v[k])}
		}
		value = &datapb.Data{Kind: &datapb.Data_HashValue{HashValue: &datapb.DataHash{Entries: vs}}}
	case []byte:
		value = &datapb.Data{Kind: &datapb.Data_BinaryValue{BinaryValue: v}}
	default:
		value = &datapb.Data{Kind: &datapb.Data_UndefValue{}}
	}
	return
}

// FromPBData converts a datapb.Data to a value. Hash keys are converted to strings.
func FromPBData(v *datapb.Data) (value eval.Value) {
	if v == nil {
		return nil
	}
	switch v.Kind.(type) {
	case *datapb.Data_BooleanValue:
		value = v.GetBooleanValue()
	case *datapb.Data_FloatValue:
		value = v.GetFloatValue()
	case *datapb.Data_IntegerValue:
		value = v.GetIntegerValue()
	case *datapb.Data_StringValue:
		value = v.GetStringValue()
	case *datapb.Data_BinaryValue:
		value = v.GetBinaryValue()
	case *datapb.Data_ArrayValue:
		av := v.GetArrayValue().GetValues()
		vs := make([]eval.Value, len(av))
		for i, elem := range av {
			vs[i] = FromPBData(elem)
		}
		value = vs
	case *datapb.Data_HashValue:
		av := v.GetHashValue().Entries
		vs := make(map[string]eval.Value, len(av))
		for _, val := range av {
			vs[eval.ToString(FromPBData(val.Key))] = FromPBData(val.Value)
		}
		value = vs
	default:
		value = nil
	}
	return
}

// TypeToPBData converts the interchange record of a resource type to a hash. Empty
// fields are omitted. A required argument has no default entry.
func TypeToPBData(t *resource.Type) *datapb.Data {
	d := t.ToData()
	h := map[string]eval.Value{
		`name`: d.Name,
		`type`: d.Type}
	if d.Line > 0 {
		h[`line`] = int64(d.Line)
	}
	if d.Doc != `` {
		h[`doc`] = d.Doc
	}
	if d.File != `` {
		h[`file`] = d.File
	}
	if d.Parent != `` {
		h[`parent`] = d.Parent
	}
	if len(d.Arguments) > 0 {
		args := make([]eval.Value, len(d.Arguments))
		for i, a := range d.Arguments {
			ah := map[string]eval.Value{`name`: a.Name}
			if a.Default != nil {
				ah[`default`] = *a.Default
			}
			args[i] = ah
		}
		h[`arguments`] = args
	}
	return ToPBData(h)
}

// TypeFromPBData creates a resource type from data produced by TypeToPBData. The
// collection is used to resolve the parent of the type.
func TypeFromPBData(v *datapb.Data, collection *resource.TypeCollection) (*resource.Type, error) {
	h, ok := FromPBData(v).(map[string]eval.Value)
	if !ok {
		return nil, invalid(`expected a hash`)
	}
	d := &resource.Data{
		Name:   str(h[`name`]),
		Type:   str(h[`type`]),
		Doc:    str(h[`doc`]),
		File:   str(h[`file`]),
		Parent: str(h[`parent`])}
	if line, ok := h[`line`].(int64); ok {
		d.Line = int(line)
	}
	if args, ok := h[`arguments`]; ok {
		list, ok := args.([]eval.Value)
		if !ok {
			return nil, invalid(`arguments must be an array`)
		}
		for _, a := range list {
			ah, ok := a.(map[string]eval.Value)
			if !ok {
				return nil, invalid(`argument must be a hash`)
			}
			ad := &resource.ArgumentData{Name: str(ah[`name`])}
			if dv, ok := ah[`default`].(string); ok {
				ad.Default = &dv
			}
			d.Arguments = append(d.Arguments, ad)
		}
	}
	return resource.FromData(d, collection)
}

// CatalogToPBData converts a catalog to a hash with the keys name, environment,
// tags, classes and resources.
func CatalogToPBData(c *catalog.Catalog) *datapb.Data {
	cd := c.ToData()
	resources := make([]eval.Value, len(cd.Resources))
	for i, rd := range cd.Resources {
		params := make(map[string]eval.Value, len(rd.Parameters))
		for _, p := range rd.Parameters {
			params[p.Name] = p.Value
		}
		rh := map[string]eval.Value{
			`type`:       rd.Type,
			`title`:      rd.Title,
			`tags`:       stringValues(rd.Tags),
			`parameters`: params}
		if rd.File != `` {
			rh[`file`] = rd.File
			rh[`line`] = int64(rd.Line)
		}
		resources[i] = rh
	}
	return ToPBData(map[string]eval.Value{
		`name`:        cd.Name,
		`environment`: cd.Environment,
		`tags`:        stringValues(cd.Tags),
		`classes`:     stringValues(cd.Classes),
		`resources`:   resources})
}

func stringValues(s []string) []eval.Value {
	vs := make([]eval.Value, len(s))
	for i, e := range s {
		vs[i] = e
	}
	return vs
}

// TypesToPBData converts all types of the collection to a datapb array ordered
// by kind and name.
func TypesToPBData(tc *resource.TypeCollection) *datapb.Data {
	var vs []*datapb.Data
	for _, k := range []resource.Kind{resource.Hostclass, resource.Definition, resource.Node} {
		for _, t := range tc.Types(k) {
			vs = append(vs, TypeToPBData(t))
		}
	}
	return &datapb.Data{Kind: &datapb.Data_ArrayValue{ArrayValue: &datapb.DataArray{Values: vs}}}
}

func str(v eval.Value) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ``
}

func invalid(detail string) error {
	return eval.Error(PROTO_INVALID_TYPE_DATA, issue.H{`detail`: detail}, nil)
}
