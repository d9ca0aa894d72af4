package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func deleteCommand(ctx *Context) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a sighting by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid sighting id %q", args[0])
			}

			store, err := ctx.Store()
			if err != nil {
				return err
			}

			changes, err := store.Delete(id)
			if err != nil {
				return err
			}

			if changes == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No sighting with id %d.\n", id)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted sighting %d.\n", id)
			return nil
		},
	}
}
