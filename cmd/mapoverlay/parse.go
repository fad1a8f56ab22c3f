package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"simple-directions/internal/directions"
)

func newParseCmd(c *cli) *cobra.Command {
	var geojsonPath string

	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Print the directions in a saved XML response",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open document: %w", err)
			}
			defer f.Close()

			route, err := directions.Parse(f)
			if errors.Is(err, directions.ErrEmptyInput) {
				fmt.Fprintln(cmd.OutOrStdout(), infoStyle.Render("document is empty"))
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to parse %s: %w", args[0], err)
			}

			printRoute(cmd.OutOrStdout(), filepath.Base(args[0]), route)

			if geojsonPath != "" {
				return writeOverlay(geojsonPath, route, c.cfg.Presentation)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&geojsonPath, "geojson", "", "write the map overlay as GeoJSON to this file")
	return cmd
}
