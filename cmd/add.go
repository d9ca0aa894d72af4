package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/perchlog/perchlog/internal/sighting"
)

func addCommand(ctx *Context) *cobra.Command {
	var (
		species  string
		datetime string
		lat      string
		lon      string
		notes    string
	)

	cmd := &cobra.Command{
		Use:   "add [photo]",
		Short: "Add a sighting for a photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			latitude, longitude, err := sighting.NormalizeCoordinates(lat, lon)
			if err != nil {
				return err
			}

			input := &sighting.Input{
				FilePath:  args[0],
				Species:   species,
				Datetime:  datetime,
				Latitude:  latitude,
				Longitude: longitude,
				Notes:     notes,
			}

			// Validation runs before any storage call and reports every
			// violated rule at once.
			if result := sighting.Validate(input); !result.Valid {
				for _, msg := range result.Errors {
					fmt.Fprintln(cmd.ErrOrStderr(), "error:", msg)
				}
				return fmt.Errorf("sighting failed validation with %d error(s)", len(result.Errors))
			}

			store, err := ctx.Store()
			if err != nil {
				return err
			}

			id, err := store.Insert(input)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added sighting %d for %s\n", id, input.FilePath)
			return nil
		},
	}

	cmd.Flags().StringVar(&species, "species", "", "Species common name")
	cmd.Flags().StringVar(&datetime, "datetime", "", "Observation time, e.g. 2024-05-12T06:30:00")
	cmd.Flags().StringVar(&lat, "lat", "", "Latitude")
	cmd.Flags().StringVar(&lon, "lon", "", "Longitude")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes about the sighting")

	return cmd
}
