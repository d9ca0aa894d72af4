package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/perchlog/perchlog/internal/sighting"
)

// imageExtensions matches the file-picker filter of the desktop shell.
var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".bmp":  {},
	".webp": {},
}

// IsImagePath reports whether the path carries a supported image extension.
func IsImagePath(path string) bool {
	_, ok := imageExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

func importCommand(ctx *Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [photos...]",
		Short: "Import photos as untagged sightings",
		Long:  "Import creates one sighting per photo. Species, time and location are tagged later via edit flows.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.Store()
			if err != nil {
				return err
			}

			imported, skipped := 0, 0
			for _, path := range args {
				if !IsImagePath(path) {
					fmt.Fprintf(cmd.ErrOrStderr(), "skipping %s: not a supported image\n", path)
					skipped++
					continue
				}

				input := &sighting.Input{FilePath: path}
				if result := sighting.Validate(input); !result.Valid {
					fmt.Fprintf(cmd.ErrOrStderr(), "skipping %s: %s\n", path, strings.Join(result.Errors, "; "))
					skipped++
					continue
				}

				if _, err := store.Insert(input); err != nil {
					return err
				}
				imported++
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d photo(s), skipped %d\n", imported, skipped)
			return nil
		},
	}

	return cmd
}
