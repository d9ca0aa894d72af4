package cmd

import (
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/perchlog/perchlog/internal/query"
)

func statsCommand(ctx *Context) *cobra.Command {
	var showDays bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show journal statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.Store()
			if err != nil {
				return err
			}

			all, err := store.GetAll()
			if err != nil {
				return err
			}

			stats := query.Summarize(all)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Sightings:      %s\n", humanize.Comma(int64(stats.Total)))
			fmt.Fprintf(out, "Unique species: %d\n", stats.UniqueSpecies)
			fmt.Fprintf(out, "Active days:    %d\n", stats.ActiveDays)
			if stats.BestDay != "" {
				fmt.Fprintf(out, "Best day:       %s (%d sightings)\n", stats.BestDay, stats.BestDayCount)
			}

			if !showDays {
				return nil
			}

			counts := query.DailyCounts(all)
			days := make([]string, 0, len(counts))
			for day := range counts {
				days = append(days, day)
			}
			sort.Sort(sort.Reverse(sort.StringSlice(days)))

			t := table.NewWriter()
			t.SetOutputMirror(out)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Day", "Sightings", "Intensity"})
			for _, day := range days {
				t.AppendRow(table.Row{day, counts[day], string(query.IntensityFor(counts[day]))})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().BoolVar(&showDays, "days", false, "Show the per-day activity table")

	return cmd
}
