package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/perchlog/perchlog/internal/suggest"
)

func speciesCommand(ctx *Context) *cobra.Command {
	return &cobra.Command{
		Use:   "species [partial]",
		Short: "Suggest species names for tagging",
		Long:  "Species lists name suggestions from your journal merged with common backyard species. Any free-form name is still accepted when adding a sighting.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.Store()
			if err != nil {
				return err
			}

			partial := ""
			if len(args) == 1 {
				partial = args[0]
			}

			names, err := suggest.New(store).Species(partial)
			if err != nil {
				return err
			}
			if len(names) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No suggestions.")
				return nil
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
