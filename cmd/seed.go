package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/perchlog/perchlog/internal/seed"
)

func seedCommand(ctx *Context) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Populate an empty journal with sample sightings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.Store()
			if err != nil {
				return err
			}

			inserted, err := seed.Ensure(store, time.Now())
			if err != nil {
				return err
			}

			if inserted == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Journal is not empty, nothing seeded.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d sample sightings.\n", inserted)
			return nil
		},
	}
}
