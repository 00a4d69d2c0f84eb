package puppet_test

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/lyraproj/puppet-catalog/compiler"
	"github.com/lyraproj/puppet-catalog/eval"
	"github.com/lyraproj/puppet-catalog/puppet"
)

func environment(t *testing.T) (string, *compiler.Settings) {
	t.Helper()
	dir, err := ioutil.TempDir(``, `env`)
	if err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		`modules/ntp/manifests/init.pp`: `class ntp($server = 'pool.ntp.org') { file { '/etc/ntp.conf': content => $server } }`,
		`manifests/site.pp`:             `node default { include ntp }`}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err = os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err = ioutil.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	settings := compiler.DefaultSettings()
	settings.Manifest = filepath.Join(dir, `manifests`)
	settings.ModulePath = []string{filepath.Join(dir, `modules`)}
	return dir, settings
}

func TestLoad(t *testing.T) {
	dir, settings := environment(t)
	defer os.RemoveAll(dir)

	tc, err := puppet.Load(context.Background(), settings, eval.NewArrayLogger())
	if err != nil {
		t.Fatal(err)
	}
	ntp, ok := tc.Hostclass(`ntp`)
	if !ok {
		t.Fatal(`Expected class ntp to be loaded`)
	}
	if ntp.ModuleName() != `ntp` {
		t.Errorf(`Expected class ntp to belong to module ntp, got '%s'`, ntp.ModuleName())
	}
	if _, ok = tc.FindNode(`anything`); !ok {
		t.Errorf(`Expected the default node to be loaded`)
	}
}

func TestCompile(t *testing.T) {
	dir, settings := environment(t)
	defer os.RemoveAll(dir)

	settings.Nodes = []string{`a`, `b`}
	catalogs, err := puppet.Compile(context.Background(), settings, eval.NewArrayLogger())
	if err != nil {
		t.Fatal(err)
	}
	if len(catalogs) != 2 || catalogs[0].Name() != `a` || catalogs[1].Name() != `b` {
		t.Fatalf(`Unexpected catalogs %v`, catalogs)
	}
	for _, c := range catalogs {
		r, ok := c.Resource(`File`, `/etc/ntp.conf`)
		if !ok {
			t.Errorf(`Expected File[/etc/ntp.conf] in catalog of %s`, c.Name())
			continue
		}
		if v, _ := r.Get(`content`); v != `pool.ntp.org` {
			t.Errorf(`Unexpected content %v`, v)
		}
	}
}

func TestCompileLocalHost(t *testing.T) {
	dir, settings := environment(t)
	defer os.RemoveAll(dir)

	host, err := os.Hostname()
	if err != nil {
		t.Skip(err)
	}
	catalogs, err := puppet.Compile(context.Background(), settings, eval.NewArrayLogger())
	if err != nil {
		t.Fatal(err)
	}
	if len(catalogs) != 1 || catalogs[0].Name() != host {
		t.Errorf(`Expected one catalog for %s`, host)
	}
}
