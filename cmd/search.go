package cmd

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func searchCommand(ctx *Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [term]",
		Short: "Search sightings by species or notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.Store()
			if err != nil {
				return err
			}

			results, err := store.Search(args[0])
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No matches.")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"ID", "Species", "Datetime", "Photo", "Notes"})
			for i := range results {
				s := &results[i]
				t.AppendRow(table.Row{s.ID, s.Species, s.Datetime, s.FilePath, truncate(s.Notes, 48)})
			}
			t.Render()
			return nil
		},
	}

	return cmd
}
