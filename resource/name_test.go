package resource

import (
	"fmt"
	"regexp"
	"testing"
)

func ExampleNormalize() {
	fmt.Println(Normalize(`::Apache::Vhost`))
	fmt.Println(Normalize(regexp.MustCompile(`^web\d+\.example\.com$`)))
	fmt.Println(Normalize(HostName{`Web01`}))
	// Output:
	// apache::vhost
	// webdexamplecom
	// web01
}

func TestNormalizeIsIdempotent(t *testing.T) {
	for _, n := range []interface{}{`::A::B`, regexp.MustCompile(`.:x(\d)`), HostName{`X`}} {
		once := Normalize(n)
		if twice := Normalize(once); once != twice {
			t.Errorf(`Expected '%s' to normalize to itself, got '%s'`, once, twice)
		}
	}
}

func TestNamespaceOf(t *testing.T) {
	if ns := NamespaceOf(Hostclass, `a::b`, false); ns != `a::b` {
		t.Errorf(`Expected class namespace 'a::b', got '%s'`, ns)
	}
	if ns := NamespaceOf(Definition, `a::b`, false); ns != `a` {
		t.Errorf(`Expected definition namespace 'a', got '%s'`, ns)
	}
	if ns := NamespaceOf(Node, `a`, false); ns != `` {
		t.Errorf(`Expected empty node namespace, got '%s'`, ns)
	}
	if ns := NamespaceOf(Node, `a::b`, true); ns != `` {
		t.Errorf(`Expected regexp named type to have no namespace, got '%s'`, ns)
	}
}

func TestKindFromString(t *testing.T) {
	for s, k := range map[string]Kind{`class`: Hostclass, `hostclass`: Hostclass, `define`: Definition, `definition`: Definition, `node`: Node} {
		if got, err := KindFromString(s); err != nil || got != k {
			t.Errorf(`Expected %s to be %s, got %s`, s, k, got)
		}
	}
	if _, err := KindFromString(`site`); err == nil {
		t.Errorf(`Expected 'site' to be rejected`)
	}
}

func TestHostName(t *testing.T) {
	h := HostName{regexp.MustCompile(`^db`)}
	if !h.IsRegexp() || h.String() != `/^db/` {
		t.Errorf(`Unexpected host name %s`, h)
	}
	if (HostName{`db1`}).IsRegexp() {
		t.Errorf(`Expected a string host name to not be a regexp`)
	}
}
