// Package yaml reads values from YAML and writes catalogs and resource types
// as YAML documents with a stable key order.
package yaml

import (
	"fmt"

	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/puppet-catalog/eval"
	ym "gopkg.in/yaml.v2"
)

const YAML_PARSE_ERROR = `YAML_PARSE_ERROR`

func init() {
	issue.Hard(YAML_PARSE_ERROR, `Unable to parse YAML: %{detail}`)
}

// Unmarshal parses YAML into a value. Mappings become map[string]eval.Value with
// string keys and integers become int64.
func Unmarshal(data []byte) (eval.Value, error) {
	var itm interface{}
	if err := ym.Unmarshal(data, &itm); err != nil {
		return nil, eval.Error(YAML_PARSE_ERROR, issue.H{`detail`: err.Error()}, nil)
	}
	return wrapValue(itm), nil
}

func wrapSlice(ms ym.MapSlice) eval.Value {
	h := make(map[string]eval.Value, len(ms))
	for _, me := range ms {
		h[eval.ToString(wrapValue(me.Key))] = wrapValue(me.Value)
	}
	return h
}

func wrapValue(v interface{}) eval.Value {
	switch v := v.(type) {
	case ym.MapSlice:
		return wrapSlice(v)
	case map[interface{}]interface{}:
		h := make(map[string]eval.Value, len(v))
		for k, e := range v {
			h[fmt.Sprintf(`%v`, k)] = wrapValue(e)
		}
		return h
	case []interface{}:
		vs := make([]eval.Value, len(v))
		for i, y := range v {
			vs[i] = wrapValue(y)
		}
		return vs
	case int:
		return int64(v)
	case uint64:
		return int64(v)
	case float32:
		return float64(v)
	default:
		return v
	}
}
