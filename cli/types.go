package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/puppet-catalog/eval"
	"github.com/lyraproj/puppet-catalog/proto"
	"github.com/lyraproj/puppet-catalog/puppet"
	"github.com/lyraproj/puppet-catalog/resource"
	"github.com/lyraproj/puppet-catalog/yaml"
	"github.com/spf13/cobra"
)

// NewTypesCommand creates the types command.
func NewTypesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   `types`,
		Short: `List the classes, defined types and nodes of the environment`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings := GetSettings(cmd.Context())
			tc, err := puppet.Load(cmd.Context(), settings, newLogger(settings, cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			return writeTypes(cmd.OutOrStdout(), settings.Format, tc)
		},
	}
}

func writeTypes(out io.Writer, format string, tc *resource.TypeCollection) error {
	switch format {
	case `yaml`, ``:
		bs, err := yaml.MarshalTypes(tc)
		if err != nil {
			return err
		}
		_, err = out.Write(bs)
		return err
	case `json`:
		var data []*resource.Data
		for _, k := range []resource.Kind{resource.Hostclass, resource.Definition, resource.Node} {
			for _, t := range tc.Types(k) {
				data = append(data, t.ToData())
			}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent(``, `  `)
		return enc.Encode(data)
	case `pb`:
		_, err := fmt.Fprintln(out, proto.TypesToPBData(tc).String())
		return err
	default:
		return eval.Error(CLI_UNKNOWN_FORMAT, issue.H{`format`: format}, nil)
	}
}
