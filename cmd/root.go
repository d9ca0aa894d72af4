// Package cmd wires the Perchlog CLI commands to the shared datastore
// resolution.
package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/perchlog/perchlog/internal/conf"
	"github.com/perchlog/perchlog/internal/datastore"
	"github.com/perchlog/perchlog/internal/logging"
)

// Context carries the settings and the single shared backend resolution to
// every subcommand. Commands never probe backends themselves.
type Context struct {
	Settings *conf.Settings
	Resolver *datastore.Resolver
}

// Store returns the resolved datastore, probing backends on first use.
func (c *Context) Store() (datastore.Interface, error) {
	return c.Resolver.Resolve()
}

// RootCommand creates and returns the root command
func RootCommand(ctx *Context) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "perchlog",
		Short: "Perchlog birding journal CLI",
		Long:  "Perchlog keeps a local journal of bird sightings tied to your photos.",
	}

	var configPath string
	rootCmd.PersistentFlags().BoolVar(&ctx.Settings.Debug, "debug", ctx.Settings.Debug, "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to an explicit config file")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if configPath != "" {
			loaded, err := conf.LoadFrom(configPath)
			if err != nil {
				return err
			}
			// The resolver holds a pointer to the same settings value, so
			// the reload must happen before the first backend resolution.
			debug := ctx.Settings.Debug
			*ctx.Settings = *loaded
			ctx.Settings.Debug = ctx.Settings.Debug || debug

			// File logging follows the reloaded settings.
			if err := logging.CloseFileLogging(); err != nil {
				return err
			}
			if err := logging.InitFileLogging(ctx.Settings); err != nil {
				return err
			}
		}
		if ctx.Settings.Debug {
			logging.SetLevel(slog.LevelDebug)
		}
		return nil
	}

	rootCmd.AddCommand(
		addCommand(ctx),
		importCommand(ctx),
		listCommand(ctx),
		searchCommand(ctx),
		statsCommand(ctx),
		seedCommand(ctx),
		deleteCommand(ctx),
		speciesCommand(ctx),
	)

	return rootCmd
}
