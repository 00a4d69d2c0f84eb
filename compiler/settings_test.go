package compiler

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func settingsFile(t *testing.T, content string) string {
	t.Helper()
	dir, err := ioutil.TempDir(``, `settings`)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, `catalogc.yaml`)
	if err = ioutil.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultSettings(t *testing.T) {
	s, err := LoadSettings(``, nil)
	if err != nil {
		t.Fatal(err)
	}
	if s.Environment != DefaultEnvironment || s.Format != DefaultFormat || s.LogLevel != DefaultLogLevel {
		t.Errorf(`Unexpected defaults %+v`, s)
	}
}

func TestLoadSettingsPrecedence(t *testing.T) {
	path := settingsFile(t, `
environment: staging
modulepath:
  - /etc/modules
  - /usr/share/modules
nodes: [a, b]
facts:
  os: linux
log_level: info
`)
	defer os.RemoveAll(filepath.Dir(path))

	os.Setenv(`CATALOGC_LOG_LEVEL`, `debug`)
	defer os.Unsetenv(`CATALOGC_LOG_LEVEL`)

	flags := pflag.NewFlagSet(`test`, pflag.ContinueOnError)
	flags.StringSlice(`nodes`, nil, ``)
	flags.Bool(`strict-variables`, false, ``)
	flags.String(`environment`, `ignored`, ``)
	if err := flags.Parse([]string{`--nodes`, `c`, `--strict-variables`}); err != nil {
		t.Fatal(err)
	}

	s, err := LoadSettings(path, flags)
	if err != nil {
		t.Fatal(err)
	}
	if s.Environment != `staging` {
		t.Errorf(`Expected environment from file, got %s`, s.Environment)
	}
	if strings.Join(s.ModulePath, `:`) != `/etc/modules:/usr/share/modules` {
		t.Errorf(`Unexpected module path %v`, s.ModulePath)
	}
	if s.LogLevel != `debug` {
		t.Errorf(`Expected log level from environment, got %s`, s.LogLevel)
	}
	if strings.Join(s.Nodes, `,`) != `c` {
		t.Errorf(`Expected nodes from flags, got %v`, s.Nodes)
	}
	if !s.StrictVariables {
		t.Errorf(`Expected strict variables from flags`)
	}
	if s.Facts[`os`] != `linux` {
		t.Errorf(`Unexpected facts %v`, s.Facts)
	}
}

func TestLoadSettingsErrors(t *testing.T) {
	if _, err := LoadSettings(`/no/such/file.yaml`, nil); err == nil {
		t.Errorf(`Expected missing settings file to be an error`)
	}
	path := settingsFile(t, "log_level: verbose\n")
	defer os.RemoveAll(filepath.Dir(path))
	_, err := LoadSettings(path, nil)
	if err == nil || !strings.Contains(err.Error(), `unknown log level 'verbose'`) {
		t.Errorf(`Expected invalid log level error, got %v`, err)
	}
}
