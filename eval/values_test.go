package eval

import (
	"fmt"
	"regexp"
	"testing"

	"github.com/lyraproj/issue/issue"
)

func ExampleToString() {
	fmt.Println(ToString([]Value{`a`, int64(2), 1.5, nil, Default}))
	fmt.Println(ToString(map[string]Value{`b`: true, `a`: `x`}))
	fmt.Println(ToString(regexp.MustCompile(`^web\d+$`)))
	// Output:
	// ['a', 2, 1.5, undef, default]
	// {'a' => 'x', 'b' => true}
	// /^web\d+$/
}

func ExampleSourceString() {
	fmt.Println(SourceString(`it's`))
	fmt.Println(SourceString(nil))
	// Output:
	// 'it\'s'
	// undef
}

func TestIsTruthy(t *testing.T) {
	for _, v := range []Value{nil, false} {
		if IsTruthy(v) {
			t.Errorf(`Expected %v to be falsy`, v)
		}
	}
	for _, v := range []Value{true, ``, int64(0), []Value{}, Default} {
		if !IsTruthy(v) {
			t.Errorf(`Expected %v to be truthy`, v)
		}
	}
}

func TestPuppetEquals(t *testing.T) {
	if !PuppetEquals(`Foo`, `foo`) {
		t.Errorf(`Expected string comparison to be case insensitive`)
	}
	if !PuppetEquals(int64(1), 1.0) {
		t.Errorf(`Expected 1 to equal 1.0`)
	}
	if PuppetEquals(`1`, int64(1)) {
		t.Errorf(`Expected '1' to not equal 1`)
	}
	if !PuppetEquals([]Value{`A`, int64(1)}, []Value{`a`, int64(1)}) {
		t.Errorf(`Expected arrays to be equal`)
	}
	if PuppetEquals(map[string]Value{`a`: int64(1)}, map[string]Value{`a`: int64(2)}) {
		t.Errorf(`Expected hashes to differ`)
	}
	if !PuppetEquals(regexp.MustCompile(`x`), regexp.MustCompile(`x`)) {
		t.Errorf(`Expected regexps with the same pattern to be equal`)
	}
	if !PuppetEquals(nil, nil) {
		t.Errorf(`Expected undef to equal undef`)
	}
}

func TestSortedKeys(t *testing.T) {
	keys := SortedKeys(map[string]Value{`c`: 1, `a`: 2, `b`: 3})
	if fmt.Sprint(keys) != `[a b c]` {
		t.Errorf(`Expected [a b c], got %v`, keys)
	}
}

func TestTypeKey(t *testing.T) {
	if ClassKey(`foo::bar`) != `hostclass/foo::bar` {
		t.Errorf(`Unexpected class key '%s'`, ClassKey(`foo::bar`))
	}
}

func TestLiteral(t *testing.T) {
	l := Literal{`x`}
	v, err := l.Evaluate(nil)
	if err != nil || v != `x` {
		t.Errorf(`Expected 'x', got %v (%v)`, v, err)
	}
	if l.Source() != `'x'` {
		t.Errorf(`Expected source 'x', got %s`, l.Source())
	}
}

type recorder struct {
	calls *[]string
	name  string
	err   error
}

func (r recorder) SafeEvaluate(scope Scope) error {
	*r.calls = append(*r.calls, r.name)
	return r.err
}

func TestSequence(t *testing.T) {
	var calls []string
	s := NewSequence(recorder{&calls, `a`, nil}, nil, recorder{&calls, `b`, nil})
	if len(s.Children()) != 2 {
		t.Fatalf(`Expected nil children to be dropped`)
	}
	if err := s.SafeEvaluate(nil); err != nil {
		t.Fatal(err)
	}
	if fmt.Sprint(calls) != `[a b]` {
		t.Errorf(`Expected [a b], got %v`, calls)
	}
}

func TestSequenceStopsOnError(t *testing.T) {
	var calls []string
	err := Error(EVAL_UNKNOWN_VARIABLE, issue.H{`name`: `x`}, nil)
	s := NewSequence(recorder{&calls, `a`, err}, recorder{&calls, `b`, nil})
	if s.SafeEvaluate(nil) != err {
		t.Errorf(`Expected error to be returned`)
	}
	if len(calls) != 1 {
		t.Errorf(`Expected evaluation to stop after the first error`)
	}
}

func TestIsMetaparameter(t *testing.T) {
	if !IsMetaparameter(`require`) || IsMetaparameter(`ensure`) {
		t.Errorf(`Unexpected metaparameter classification`)
	}
}

func TestLoadFunction(t *testing.T) {
	NewGoFunction(`Test_Func`, func(scope Scope, args []Value, location issue.Location) (Value, error) {
		return len(args), nil
	})
	if _, ok := LoadFunction(`::test_func`); !ok {
		t.Errorf(`Expected function to be found`)
	}
	if _, ok := LoadFunction(`no_such_func`); ok {
		t.Errorf(`Expected function to not be found`)
	}
}
