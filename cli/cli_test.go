package cli

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const site = `
class motd($message = 'hello') {
  file { '/etc/motd':
    content => "${message} ${role}"
  }
}
node 'web1' {
  class { 'motd': message => 'welcome' }
}`

func workspace(t *testing.T) string {
	t.Helper()
	dir, err := ioutil.TempDir(``, `catalogc`)
	if err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		`site.pp`:    site,
		`facts.yaml`: "role: web\nos: linux\n",
		`list.yaml`:  "- role\n"}
	for name, content := range files {
		if err = ioutil.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func run(args ...string) (string, string, error) {
	cmd := NewRootCmd()
	out := bytes.NewBufferString(``)
	errOut := bytes.NewBufferString(``)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestCompile(t *testing.T) {
	dir := workspace(t)
	defer os.RemoveAll(dir)

	out, logs, err := run(`compile`, `-m`, filepath.Join(dir, `site.pp`), `-n`, `web1`,
		`--facts-file`, filepath.Join(dir, `facts.yaml`), `--facts`, `role=db`, `--log-level`, `info`)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "---\nname: web1\nenvironment: production\n") {
		t.Errorf("Unexpected catalog header in\n%s", out)
	}
	if !strings.Contains(out, `title: /etc/motd`) || !strings.Contains(out, `content: welcome db`) {
		t.Errorf("Expected motd resource in\n%s", out)
	}
	if !strings.Contains(logs, `Compiled catalog for web1`) {
		t.Errorf("Expected compilation to be logged, got\n%s", logs)
	}
}

func TestCompileJSON(t *testing.T) {
	dir := workspace(t)
	defer os.RemoveAll(dir)

	out, _, err := run(`compile`, `-m`, filepath.Join(dir, `site.pp`), `-n`, `web1`, `-o`, `json`)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "[\n  {\n    \"name\": \"web1\"") {
		t.Errorf("Unexpected json\n%s", out)
	}
	if !strings.Contains(out, `"value": "welcome "`) {
		t.Errorf("Expected content without role in\n%s", out)
	}
}

func TestCompileErrors(t *testing.T) {
	dir := workspace(t)
	defer os.RemoveAll(dir)
	manifest := filepath.Join(dir, `site.pp`)

	_, _, err := run(`compile`, `-m`, manifest, `-n`, `web1`, `-o`, `xml`)
	if err == nil || !strings.Contains(err.Error(), `Unknown output format 'xml'`) {
		t.Errorf(`Expected unknown format error, got %v`, err)
	}

	_, _, err = run(`compile`, `-m`, manifest, `-n`, `db1`)
	if err == nil || !strings.Contains(err.Error(), `Could not find node statement`) {
		t.Errorf(`Expected missing node error, got %v`, err)
	}

	_, _, err = run(`compile`, `-m`, manifest, `-n`, `web1`, `--facts-file`, filepath.Join(dir, `list.yaml`))
	if err == nil || !strings.Contains(err.Error(), `must contain a hash`) {
		t.Errorf(`Expected invalid facts error, got %v`, err)
	}

	_, _, err = run(`compile`, `-m`, manifest, `--log-level`, `loud`)
	if err == nil || !strings.Contains(err.Error(), `unknown log level 'loud'`) {
		t.Errorf(`Expected invalid log level error, got %v`, err)
	}
}

func TestTypes(t *testing.T) {
	dir := workspace(t)
	defer os.RemoveAll(dir)

	out, _, err := run(`types`, `-m`, filepath.Join(dir, `site.pp`))
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{"- name: motd\n  type: hostclass\n", "- name: web1\n  type: node\n"} {
		if !strings.Contains(out, s) {
			t.Errorf("Expected %q in\n%s", s, out)
		}
	}

	out, _, err = run(`types`, `-m`, filepath.Join(dir, `site.pp`), `-o`, `json`)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"type": "node"`) || !strings.Contains(out, `"message": "'hello'"`) {
		t.Errorf("Unexpected json\n%s", out)
	}
}
