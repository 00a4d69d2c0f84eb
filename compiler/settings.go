package compiler

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/puppet-catalog/eval"
	"github.com/spf13/pflag"
)

// EnvPrefix is the prefix of environment variables that override settings.
const EnvPrefix = `CATALOGC_`

const (
	DefaultEnvironment = `production`
	DefaultFormat      = `yaml`
	DefaultLogLevel    = `notice`
)

// Settings control how catalogs are compiled.
type Settings struct {
	// Environment is the name of the environment that the types belong to.
	Environment string `koanf:"environment"`

	// Manifest is the site manifest file or directory.
	Manifest string `koanf:"manifest"`

	// ModulePath lists directories containing modules.
	ModulePath []string `koanf:"modulepath"`

	// Nodes are the names of the nodes to compile catalogs for.
	Nodes []string `koanf:"nodes"`

	// Classes are declared for every node after the node definition has been evaluated.
	Classes []string `koanf:"classes"`

	// Facts are assigned as top scope variables and in the $facts hash.
	Facts map[string]string `koanf:"facts"`

	// FactsFile is a YAML file containing a hash of facts. Facts in Facts take
	// precedence over those read from the file.
	FactsFile string `koanf:"facts_file"`

	// FreezeMain prevents code from being added to the main class by more than
	// one manifest.
	FreezeMain bool `koanf:"freeze_main"`

	// StrictVariables makes a reference to an unknown variable an error.
	StrictVariables bool `koanf:"strict_variables"`

	Format string `koanf:"format"`

	LogLevel string `koanf:"log_level"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() *Settings {
	return &Settings{
		Environment: DefaultEnvironment,
		Format:      DefaultFormat,
		LogLevel:    DefaultLogLevel}
}

// LoadSettings loads settings from defaults, an optional YAML file, environment
// variables prefixed with CATALOGC_ and the flags that were set explicitly, in
// that order of precedence. Flag names use dashes where setting keys use
// underscores.
func LoadSettings(path string, flags *pflag.FlagSet) (*Settings, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		`environment`: DefaultEnvironment,
		`format`:      DefaultFormat,
		`log_level`:   DefaultLogLevel,
	}, "."), nil); err != nil {
		return nil, settingsError(`defaults`, err)
	}

	if path != `` {
		if _, err := os.Stat(path); err != nil {
			return nil, settingsError(path, err)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, settingsError(path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, settingsError(`environment variables`, err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return ``, nil
			}
			key := strings.ReplaceAll(f.Name, `-`, `_`)
			if f.Value.Type() == `stringToString` {
				m, _ := flags.GetStringToString(f.Name)
				h := make(map[string]interface{}, len(m))
				for mk, mv := range m {
					h[mk] = mv
				}
				return key, h
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, settingsError(`flags`, err)
		}
	}

	s := &Settings{}
	if err := k.Unmarshal(``, s); err != nil {
		return nil, settingsError(path, err)
	}
	if s.LogLevel != `` && !eval.IsLogLevel(s.LogLevel) {
		return nil, eval.Error(COMPILE_INVALID_SETTINGS, issue.H{`source`: `log_level`, `detail`: `unknown log level '` + s.LogLevel + `'`}, nil)
	}
	return s, nil
}

func settingsError(source string, err error) error {
	return eval.Error(COMPILE_INVALID_SETTINGS, issue.H{`source`: source, `detail`: err.Error()}, nil)
}
