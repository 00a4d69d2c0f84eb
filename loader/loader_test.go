package loader

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lyraproj/puppet-catalog/eval"
	"github.com/lyraproj/puppet-catalog/resource"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir, err := ioutil.TempDir(``, `loader`)
	if err != nil {
		t.Fatal(err)
	}
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err = os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err = ioutil.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func newLoader(freezeMain bool) (*Loader, *eval.ArrayLogger) {
	logger := eval.NewArrayLogger()
	return New(resource.NewTypeCollection(`production`), freezeMain, logger), logger
}

func TestLoadString(t *testing.T) {
	l, _ := newLoader(false)
	err := l.LoadString(`site.pp`, `
class foo($x = 1) inherits bar {}
define foo::thing($y) {}
node 'a', 'b' inherits 'base' {}
node /^web/ {}
notice('hi')`, ``)
	if err != nil {
		t.Fatal(err)
	}
	tc := l.Collection()
	foo, ok := tc.Hostclass(`foo`)
	if !ok {
		t.Fatalf(`Expected class foo`)
	}
	if foo.ParentName() != `bar` || len(foo.Arguments()) != 1 || foo.File() != `site.pp` || foo.Line() != 2 {
		t.Errorf(`Unexpected class foo: parent %s, file %s, line %d`, foo.ParentName(), foo.File(), foo.Line())
	}
	if _, ok = tc.Definition(`foo::thing`); !ok {
		t.Errorf(`Expected definition foo::thing`)
	}
	for _, n := range []string{`a`, `b`} {
		node, ok := tc.Node(n)
		if !ok {
			t.Fatalf(`Expected node %s`, n)
		}
		if node.ParentName() != `base` {
			t.Errorf(`Expected node %s to inherit base, got %s`, n, node.ParentName())
		}
	}
	if node, ok := tc.FindNode(`web01`); !ok || !node.IsRegexNamed() {
		t.Errorf(`Expected regexp node to match web01`)
	}
	main, ok := tc.Hostclass(``)
	if !ok || main.Code() == nil {
		t.Errorf(`Expected main class with code`)
	}
}

func TestDefinitionsOnlyHaveNoMain(t *testing.T) {
	l, _ := newLoader(true)
	if err := l.LoadString(`a.pp`, `class a {}`, ``); err != nil {
		t.Fatal(err)
	}
	if err := l.LoadString(`b.pp`, `class b {}`, ``); err != nil {
		t.Fatal(err)
	}
	if _, ok := l.Collection().Hostclass(``); ok {
		t.Errorf(`Expected no main class`)
	}
}

func TestFreezeMain(t *testing.T) {
	l, _ := newLoader(true)
	if err := l.LoadString(`a.pp`, `notice('a')`, ``); err != nil {
		t.Fatal(err)
	}
	err := l.LoadString(`b.pp`, `notice('b')`, ``)
	if err == nil || !strings.Contains(err.Error(), `'freeze_main' is enabled`) {
		t.Errorf(`Expected freeze_main error, got %v`, err)
	}

	l, _ = newLoader(false)
	l.LoadString(`a.pp`, `notice('a')`, ``)
	if err = l.LoadString(`b.pp`, `notice('b')`, ``); err != nil {
		t.Errorf(`Expected main code to be merged, got %v`, err)
	}
}

func TestReopenedClass(t *testing.T) {
	l, _ := newLoader(false)
	if err := l.LoadString(`a.pp`, `class foo { notice('a') }`, ``); err != nil {
		t.Fatal(err)
	}
	if err := l.LoadString(`b.pp`, `class foo inherits bar { notice('b') }`, ``); err != nil {
		t.Fatal(err)
	}
	foo, _ := l.Collection().Hostclass(`foo`)
	if foo.ParentName() != `bar` {
		t.Errorf(`Expected reopened class to get parent bar`)
	}
	if _, ok := foo.Code().(*eval.Sequence); !ok {
		t.Errorf(`Expected merged code to be a sequence`)
	}
}

func TestParseError(t *testing.T) {
	l, _ := newLoader(false)
	if err := l.LoadString(`bad.pp`, `class foo {`, ``); err == nil {
		t.Errorf(`Expected parse error`)
	}
}

func TestLoadManifestDirectory(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		`manifests/b.pp`:      `include a`,
		`manifests/a.pp`:      `class a {}`,
		`manifests/sub/c.pp`:  `class c {}`,
		`manifests/readme.md`: `not a manifest`,
	})
	defer os.RemoveAll(dir)

	l, _ := newLoader(false)
	if err := l.LoadManifest(filepath.Join(dir, `manifests`)); err != nil {
		t.Fatal(err)
	}
	tc := l.Collection()
	for _, n := range []string{`a`, `c`, ``} {
		if _, ok := tc.Hostclass(n); !ok {
			t.Errorf(`Expected class '%s'`, n)
		}
	}
	if err := l.LoadManifest(filepath.Join(dir, `nope.pp`)); err == nil {
		t.Errorf(`Expected missing manifest to be an error`)
	}
}

func TestLoadModules(t *testing.T) {
	first := writeFiles(t, map[string]string{
		`foo/metadata.json`: `{
  "name": "acme-foo",
  "version": "1.0.0",
  "dependencies": [
    {"name": "acme/bar", "version_requirement": ">= 2.0.0"},
    {"name": "acme-baz"}
  ]
}`,
		`foo/manifests/init.pp`:   `class foo { include bar }`,
		`foo/manifests/config.pp`: `class foo::config {}`,
		`bar/metadata.json`:       `{"name": "acme-bar", "version": "1.2.0"}`,
		`bar/manifests/init.pp`:   `class bar {}`,
		`nomanifests/files/x.txt`: `x`,
	})
	defer os.RemoveAll(first)
	second := writeFiles(t, map[string]string{
		`bar/manifests/init.pp`:   `class bar { notice('hidden') }`,
		`other/manifests/init.pp`: `define other::thing {}`,
	})
	defer os.RemoveAll(second)

	l, logger := newLoader(false)
	if err := l.LoadModules(context.Background(), []string{first, second, filepath.Join(first, `missing`)}); err != nil {
		t.Fatal(err)
	}

	var names []string
	for _, m := range l.Modules() {
		names = append(names, m.Name)
	}
	if strings.Join(names, `,`) != `bar,foo,nomanifests,other` {
		t.Errorf(`Unexpected modules %v`, names)
	}

	tc := l.Collection()
	foo, ok := tc.Hostclass(`foo`)
	if !ok || foo.ModuleName() != `foo` {
		t.Errorf(`Expected class foo in module foo`)
	}
	if _, ok = tc.Hostclass(`foo::config`); !ok {
		t.Errorf(`Expected class foo::config`)
	}
	if bar, _ := tc.Hostclass(`bar`); bar.Code() != nil {
		t.Errorf(`Expected bar of the first module path entry to be used`)
	}
	if thing, ok := tc.Definition(`other::thing`); !ok || thing.ModuleName() != `other` {
		t.Errorf(`Expected definition other::thing in module other`)
	}

	warnings := strings.Join(logger.Entries(eval.WARNING), "\n")
	if !strings.Contains(warnings, `Module 'foo' depends on 'bar' >= 2.0.0 but version 1.2.0 is installed`) {
		t.Errorf("Expected unsatisfied dependency warning, got:\n%s", warnings)
	}
	if !strings.Contains(warnings, `Module 'foo' depends on 'baz' which is not installed`) {
		t.Errorf("Expected missing dependency warning, got:\n%s", warnings)
	}
}

func TestReadModule(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		`good/metadata.json`:   `{"name": "acme/good", "version": "0.1.0"}`,
		`bad/metadata.json`:    `{"name": `,
		`badver/metadata.json`: `{"version": "x.y"}`,
	})
	defer os.RemoveAll(dir)

	m, err := ReadModule(filepath.Join(dir, `good`))
	if err != nil {
		t.Fatal(err)
	}
	if m.Name != `good` || m.Version.String() != `0.1.0` {
		t.Errorf(`Unexpected module %s %s`, m.Name, m.Version)
	}
	if _, err = ReadModule(filepath.Join(dir, `bad`)); err == nil {
		t.Errorf(`Expected invalid metadata to be an error`)
	}
	if _, err = ReadModule(filepath.Join(dir, `badver`)); err == nil {
		t.Errorf(`Expected invalid version to be an error`)
	}
	if m, err = ReadModule(filepath.Join(dir, `Plain`)); err != nil || m.Name != `plain` {
		t.Errorf(`Expected module without metadata to be named after its directory`)
	}
}

func TestShortName(t *testing.T) {
	for in, out := range map[string]string{`acme-foo`: `foo`, `acme/Foo`: `foo`, `foo`: `foo`} {
		if s := shortName(in); s != out {
			t.Errorf(`Expected %s, got %s`, out, s)
		}
	}
}
