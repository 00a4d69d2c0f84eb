package proto_test

import (
	"encoding/json"
	"reflect"
	"regexp"
	"strings"
	"testing"

	"github.com/lyraproj/puppet-catalog/catalog"
	"github.com/lyraproj/puppet-catalog/eval"
	_ "github.com/lyraproj/puppet-catalog/evaluator"
	"github.com/lyraproj/puppet-catalog/proto"
	"github.com/lyraproj/puppet-catalog/resource"
)

func TestValueConversion(t *testing.T) {
	v := map[string]eval.Value{
		`b`: []eval.Value{int64(1), 2.5, true, nil},
		`a`: `text`,
		`c`: map[string]eval.Value{`rx`: regexp.MustCompile(`^a.*`)},
		`d`: []byte{1, 2}}

	pd := proto.ToPBData(v)
	entries := pd.GetHashValue().GetEntries()
	var keys []string
	for _, e := range entries {
		keys = append(keys, e.Key.GetStringValue())
	}
	if strings.Join(keys, `,`) != `a,b,c,d` {
		t.Errorf(`Expected sorted keys, got %v`, keys)
	}

	expected := map[string]eval.Value{
		`b`: []eval.Value{int64(1), 2.5, true, nil},
		`a`: `text`,
		`c`: map[string]eval.Value{`rx`: `/^a.*/`},
		`d`: []byte{1, 2}}
	if actual := proto.FromPBData(pd); !reflect.DeepEqual(actual, expected) {
		t.Errorf(`Expected %v, got %v`, expected, actual)
	}
}

func TestFromNil(t *testing.T) {
	if proto.FromPBData(nil) != nil {
		t.Errorf(`Expected nil`)
	}
}

func TestTypeConversion(t *testing.T) {
	rt, err := resource.NewType(resource.Definition, `apache::vhost`, &resource.Options{
		File:      `vhost.pp`,
		Line:      12,
		Arguments: []*resource.Argument{{Name: `port`, Default: eval.Literal{Value: int64(80)}}, {Name: `docroot`}}})
	if err != nil {
		t.Fatal(err)
	}
	rt2, err := proto.TypeFromPBData(proto.TypeToPBData(rt), nil)
	if err != nil {
		t.Fatal(err)
	}
	expected, _ := json.Marshal(rt.ToData())
	actual, _ := json.Marshal(rt2.ToData())
	if string(expected) != string(actual) {
		t.Errorf("Expected %s\ngot %s", expected, actual)
	}
}

func TestRegexpNodeConversion(t *testing.T) {
	rt, err := resource.NewType(resource.Node, resource.HostName{Value: regexp.MustCompile(`^web(\d+)$`)}, nil)
	if err != nil {
		t.Fatal(err)
	}
	rt2, err := proto.TypeFromPBData(proto.TypeToPBData(rt), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !rt2.IsRegexNamed() {
		t.Fatalf(`Expected %s to be regexp named`, rt2)
	}
	if _, ok := rt2.Match(`web42`); !ok {
		t.Errorf(`Expected %s to match web42`, rt2)
	}
}

func TestTypeFromInvalidData(t *testing.T) {
	_, err := proto.TypeFromPBData(proto.ToPBData(`foo`), nil)
	if err == nil || !strings.Contains(err.Error(), `expected a hash`) {
		t.Errorf(`Expected invalid data error, got %v`, err)
	}
	_, err = proto.TypeFromPBData(proto.ToPBData(map[string]eval.Value{`name`: `foo`, `type`: `hostclass`, `arguments`: `x`}), nil)
	if err == nil || !strings.Contains(err.Error(), `arguments must be an array`) {
		t.Errorf(`Expected invalid arguments error, got %v`, err)
	}
}

func TestCatalogConversion(t *testing.T) {
	c := catalog.NewCatalog(`web1`, `production`)
	c.AddClass(`web`)
	r := catalog.NewResource(`package`, `nginx`, nil, nil)
	r.Set(`ensure`, `installed`)
	if err := c.AddResource(r); err != nil {
		t.Fatal(err)
	}

	h, ok := proto.FromPBData(proto.CatalogToPBData(c)).(map[string]eval.Value)
	if !ok {
		t.Fatal(`Expected a hash`)
	}
	if h[`name`] != `web1` || h[`environment`] != `production` {
		t.Errorf(`Unexpected catalog name or environment in %v`, h)
	}
	if !reflect.DeepEqual(h[`classes`], []eval.Value{`web`}) {
		t.Errorf(`Unexpected classes %v`, h[`classes`])
	}
	expected := []eval.Value{map[string]eval.Value{
		`type`:       `Package`,
		`title`:      `nginx`,
		`tags`:       []eval.Value{`package`},
		`parameters`: map[string]eval.Value{`ensure`: `installed`}}}
	if !reflect.DeepEqual(h[`resources`], expected) {
		t.Errorf(`Expected %v, got %v`, expected, h[`resources`])
	}
}

func TestTypesToPBData(t *testing.T) {
	tc := resource.NewTypeCollection(`production`)
	for _, n := range []string{`b`, `a`} {
		rt, err := resource.NewType(resource.Hostclass, n, nil)
		if err != nil {
			t.Fatal(err)
		}
		tc.Add(rt)
	}
	types := proto.TypesToPBData(tc).GetArrayValue().GetValues()
	if len(types) != 2 {
		t.Fatalf(`Expected 2 types, got %d`, len(types))
	}
	if n := proto.FromPBData(types[0]).(map[string]eval.Value)[`name`]; n != `a` {
		t.Errorf(`Expected first type to be a, got %v`, n)
	}
}
