// Package cli wires the blog module into the blog command line tool.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goliatone/go-blog"
)

type ctxKey string

const moduleKey ctxKey = "module"

var errNoModule = errors.New("blog module not initialised")

// Execute builds the root command and runs it.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd constructs the root command. Configuration is loaded once in
// PersistentPreRunE and the resulting module is stored on the command
// context for subcommands.
func NewRootCmd() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:           "blog",
		Short:         "Serve and publish a markdown blog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			if cfgPath != "" {
				v.SetConfigFile(cfgPath)
			}
			cfg, err := LoadConfig(v)
			if err != nil {
				return err
			}
			module, err := blog.New(cfg, blog.WithLogWriter(cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), moduleKey, module))
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (yaml|toml|json)")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newSitemapCmd())
	cmd.AddCommand(newFeedCmd())
	cmd.AddCommand(newCheckCmd())
	return cmd
}

func moduleFrom(ctx context.Context) (*blog.Module, error) {
	if ctx == nil {
		return nil, errNoModule
	}
	module, ok := ctx.Value(moduleKey).(*blog.Module)
	if !ok || module == nil {
		return nil, errNoModule
	}
	return module, nil
}
