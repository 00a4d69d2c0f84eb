package utils

import (
	"fmt"
	"strings"
	"testing"
)

func ExampleCapitalizeSegments() {
	fmt.Println(CapitalizeSegments(`apache::vhost`))
	fmt.Println(CapitalizeSegments(`x::MOD_ssl`))
	// Output:
	// Apache::Vhost
	// X::Mod_ssl
}

func ExamplePuppetQuote() {
	fmt.Println(PuppetQuote(`it's c:\temp`))
	fmt.Println(PuppetQuote("line\n$x"))
	// Output:
	// 'it\'s c:\\temp'
	// "line\n\$x"
}

func TestNameSegments(t *testing.T) {
	if s := strings.Join(NameSegments(`::apache::vhost`), `,`); s != `apache,vhost` {
		t.Errorf(`Expected apache,vhost, got %s`, s)
	}
}

func TestIsDecimalInteger(t *testing.T) {
	for s, expected := range map[string]bool{`0`: true, `123`: true, ``: false, `1a`: false, `-1`: false} {
		if IsDecimalInteger(s) != expected {
			t.Errorf(`IsDecimalInteger(%q) should be %t`, s, expected)
		}
	}
}

func TestContainsString(t *testing.T) {
	if !ContainsString([]string{`a`, `b`}, `b`) || ContainsString([]string{`a`, ``}, ``) {
		t.Errorf(`Unexpected ContainsString result`)
	}
}
