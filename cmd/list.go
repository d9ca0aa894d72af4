package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/perchlog/perchlog/internal/query"
	"github.com/perchlog/perchlog/internal/sighting"
)

func listCommand(ctx *Context) *cobra.Command {
	var (
		term    string
		filters query.Filters
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the journal, grouped by day",
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

			filtered := query.Apply(all, term, filters)
			if len(filtered) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sightings found.")
				return nil
			}

			for _, group := range query.GroupByDay(filtered) {
				fmt.Fprintf(cmd.OutOrStdout(), "\n%s (%d sighting(s))\n", dayHeader(group), len(group.Sightings))

				t := table.NewWriter()
				t.SetOutputMirror(cmd.OutOrStdout())
				t.SetStyle(table.StyleLight)
				t.AppendHeader(table.Row{"ID", "Species", "Time", "Photo", "Notes"})
				for i := range group.Sightings {
					s := &group.Sightings[i]
					t.AppendRow(table.Row{s.ID, s.Species, sightingTime(s), s.FilePath, truncate(s.Notes, 48)})
				}
				t.Render()
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&term, "search", "", "Free-text search over species, notes and photo path")
	cmd.Flags().StringVar(&filters.Species, "species", "", "Filter by species substring")
	cmd.Flags().StringVar(&filters.DateFrom, "from", "", "Earliest date, e.g. 2024-01-01")
	cmd.Flags().StringVar(&filters.DateTo, "to", "", "Latest date, inclusive of the whole day")
	cmd.Flags().StringVar(&filters.Location, "location", "", "Filter by location text or coordinate substring")
	cmd.Flags().BoolVar(&filters.HasCoordinates, "has-coordinates", false, "Only sightings with GPS coordinates")
	cmd.Flags().BoolVar(&filters.HasNotes, "has-notes", false, "Only sightings with notes")

	return cmd
}

// dayHeader renders a group heading, with a relative time for dated groups.
func dayHeader(group query.DayGroup) string {
	if group.Day == query.NoDateKey {
		return "Unknown date"
	}
	if t, ok := sighting.ParseDatetime(group.Day); ok {
		return fmt.Sprintf("%s, %s", group.Day, humanize.Time(t))
	}
	return group.Day
}

// sightingTime shows the clock time of a dated sighting.
func sightingTime(s *sighting.Sighting) string {
	t, ok := sighting.ParseDatetime(s.Datetime)
	if !ok {
		return ""
	}
	return t.Format("15:04")
}

// truncate shortens a string to maxLen runes, never cutting a rune in half.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}
