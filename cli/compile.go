package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/puppet-catalog/catalog"
	"github.com/lyraproj/puppet-catalog/compiler"
	"github.com/lyraproj/puppet-catalog/eval"
	"github.com/lyraproj/puppet-catalog/proto"
	"github.com/lyraproj/puppet-catalog/puppet"
	"github.com/lyraproj/puppet-catalog/yaml"
	"github.com/spf13/cobra"
)

const CLI_UNKNOWN_FORMAT = `CLI_UNKNOWN_FORMAT`
const CLI_INVALID_FACTS = `CLI_INVALID_FACTS`

func init() {
	issue.Hard(CLI_UNKNOWN_FORMAT, `Unknown output format '%{format}'`)
	issue.Hard(CLI_INVALID_FACTS, `Facts file '%{path}' must contain a hash`)
}

// NewCompileCommand creates the compile command.
func NewCompileCommand() *cobra.Command {
	return &cobra.Command{
		Use:   `compile`,
		Short: `Compile catalogs for the given nodes`,
		Long: `Loads the module path and the site manifest and compiles one catalog for
each node. The catalogs are written to standard output in the order of the nodes.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings := GetSettings(cmd.Context())
			if err := readFacts(settings); err != nil {
				return err
			}
			logger := newLogger(settings, cmd.ErrOrStderr())
			catalogs, err := puppet.Compile(cmd.Context(), settings, logger)
			if err != nil {
				return err
			}
			return writeCatalogs(cmd.OutOrStdout(), settings.Format, catalogs)
		},
	}
}

func writeCatalogs(out io.Writer, format string, catalogs []*catalog.Catalog) error {
	switch format {
	case `yaml`, ``:
		for _, c := range catalogs {
			bs, err := yaml.MarshalCatalog(c)
			if err != nil {
				return err
			}
			if _, err = fmt.Fprintf(out, "---\n%s", bs); err != nil {
				return err
			}
		}
	case `json`:
		data := make([]*catalog.Data, len(catalogs))
		for i, c := range catalogs {
			data[i] = c.ToData()
		}
		enc := json.NewEncoder(out)
		enc.SetIndent(``, `  `)
		return enc.Encode(data)
	case `pb`:
		for _, c := range catalogs {
			if _, err := fmt.Fprintln(out, proto.CatalogToPBData(c).String()); err != nil {
				return err
			}
		}
	default:
		return eval.Error(CLI_UNKNOWN_FORMAT, issue.H{`format`: format}, nil)
	}
	return nil
}

// readFacts adds the facts of the facts file to the settings. Facts that are
// already present are kept.
func readFacts(settings *compiler.Settings) error {
	if settings.FactsFile == `` {
		return nil
	}
	content, err := ioutil.ReadFile(settings.FactsFile)
	if err != nil {
		return err
	}
	v, err := yaml.Unmarshal(content)
	if err != nil {
		return err
	}
	facts, ok := v.(map[string]eval.Value)
	if !ok {
		return eval.Error(CLI_INVALID_FACTS, issue.H{`path`: settings.FactsFile}, nil)
	}
	if settings.Facts == nil {
		settings.Facts = make(map[string]string, len(facts))
	}
	for k, fv := range facts {
		if _, found := settings.Facts[k]; !found {
			settings.Facts[k] = eval.ToString(fv)
		}
	}
	return nil
}
