package compiler_test

import (
	"context"
	"strings"
	"testing"

	"github.com/lyraproj/puppet-catalog/compiler"
	"github.com/lyraproj/puppet-catalog/eval"
	"github.com/lyraproj/puppet-catalog/loader"
	"github.com/lyraproj/puppet-catalog/resource"
)

const site = `
class common {
  $motd = "Welcome to ${::clientcert}"
  file { '/etc/motd':
    content => $motd
  }
}
class web inherits common {
  package { 'nginx': ensure => installed }
}
node /^web\d+$/ {
  include web
}
node default {
  include common
}`

func load(t *testing.T, manifest string) *resource.TypeCollection {
	t.Helper()
	tc := resource.NewTypeCollection(`production`)
	if err := loader.New(tc, false, eval.NewArrayLogger()).LoadString(`site.pp`, manifest, ``); err != nil {
		t.Fatal(err)
	}
	return tc
}

func TestCompile(t *testing.T) {
	logger := eval.NewArrayLogger()
	cat, err := compiler.New(load(t, site), `web1`, nil, logger).Compile()
	if err != nil {
		t.Fatal(err)
	}
	var refs []string
	for _, r := range cat.Resources() {
		refs = append(refs, r.Ref())
	}
	expected := `Class[Main], Node[webd], Class[Common], File[/etc/motd], Class[Web], Package[nginx]`
	if strings.Join(refs, `, `) != expected {
		t.Errorf("Expected %s\ngot %s", expected, strings.Join(refs, `, `))
	}
	motd, _ := cat.Resource(`File`, `/etc/motd`)
	if v, _ := motd.Get(`content`); v != `Welcome to web1` {
		t.Errorf(`Unexpected motd %v`, v)
	}
	if cat.Name() != `web1` || cat.Environment() != `production` {
		t.Errorf(`Unexpected catalog name or environment`)
	}
	if info := logger.Entries(eval.INFO); len(info) != 1 || !strings.Contains(info[0], `Compiled catalog for web1`) {
		t.Errorf(`Expected info message about the compilation, got %v`, info)
	}
}

func TestCompileUnknownNodeClass(t *testing.T) {
	_, err := compiler.New(load(t, site), `db1`, &compiler.Settings{Classes: []string{`nope`}}, eval.NewArrayLogger()).Compile()
	if err == nil || !strings.Contains(err.Error(), `Could not find class nope for db1`) {
		t.Errorf(`Expected unknown class error, got %v`, err)
	}
}

func TestCompileAll(t *testing.T) {
	tc := load(t, site)
	nodes := []string{`web1`, `db1`, `web2`}
	catalogs, err := compiler.CompileAll(context.Background(), tc, nodes, nil, eval.NewArrayLogger())
	if err != nil {
		t.Fatal(err)
	}
	if len(catalogs) != len(nodes) {
		t.Fatalf(`Expected %d catalogs, got %d`, len(nodes), len(catalogs))
	}
	for i, node := range nodes {
		c := catalogs[i]
		if c.Name() != node {
			t.Errorf(`Expected catalog %d to be for %s, got %s`, i, node, c.Name())
		}
		_, isWeb := c.Resource(`Package`, `nginx`)
		if isWeb != strings.HasPrefix(node, `web`) {
			t.Errorf(`Unexpected presence of Package[nginx] in catalog of %s`, node)
		}
	}
}

func TestCompileAllFailure(t *testing.T) {
	tc := load(t, `node 'a' {}`)
	_, err := compiler.CompileAll(context.Background(), tc, []string{`a`, `b`}, nil, eval.NewArrayLogger())
	if err == nil || !strings.Contains(err.Error(), `Could not find node statement with name 'default' or 'b'`) {
		t.Errorf(`Expected missing node error, got %v`, err)
	}
}
