// Package cli provides the catalogc command line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/lyraproj/puppet-catalog/compiler"
	"github.com/lyraproj/puppet-catalog/eval"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = `0.1.0`

var cfgFile string

type settingsKey struct{}

// NewRootCmd creates the root command and its subcommands.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   `catalogc`,
		Short: `Compile Puppet catalogs`,
		Long: `catalogc loads the classes, defined types and nodes of an environment and
compiles a catalog of resources for each requested node.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == `help` || cmd.Name() == `completion` || cmd.Name() == `__complete` {
				return nil
			}
			settings, err := compiler.LoadSettings(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), settingsKey{}, settings))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, `config`, ``, `YAML settings file`)
	flags.StringP(`environment`, `e`, compiler.DefaultEnvironment, `Environment name`)
	flags.StringP(`manifest`, `m`, ``, `Site manifest file or directory`)
	flags.StringSlice(`modulepath`, nil, `Directories containing modules`)
	flags.StringSliceP(`nodes`, `n`, nil, `Nodes to compile catalogs for (default: the local host)`)
	flags.StringSlice(`classes`, nil, `Classes to declare for every node`)
	flags.StringToString(`facts`, nil, `Facts given as name=value`)
	flags.String(`facts-file`, ``, `YAML file with a hash of facts`)
	flags.Bool(`freeze-main`, false, `Allow only one manifest to contribute code to the main class`)
	flags.Bool(`strict-variables`, false, `Make references to unknown variables an error`)
	flags.StringP(`format`, `o`, compiler.DefaultFormat, `Output format (yaml|json|pb)`)
	flags.String(`log-level`, compiler.DefaultLogLevel, `Lowest level of messages that are logged`)

	_ = rootCmd.RegisterFlagCompletionFunc(`format`, func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{`yaml`, `json`, `pb`}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(NewCompileCommand())
	rootCmd.AddCommand(NewTypesCommand())
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// GetSettings retrieves the settings from the command context.
func GetSettings(ctx context.Context) *compiler.Settings {
	if s, ok := ctx.Value(settingsKey{}).(*compiler.Settings); ok {
		return s
	}
	return compiler.DefaultSettings()
}

func newLogger(settings *compiler.Settings, out io.Writer) eval.Logger {
	level := eval.LogLevel(settings.LogLevel)
	if level == `` {
		level = eval.NOTICE
	}
	return eval.NewLevelLogger(eval.NewWriterLogger(out, out), level)
}
