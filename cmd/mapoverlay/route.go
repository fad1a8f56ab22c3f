package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"simple-directions/internal/directions"
	"simple-directions/internal/presentation"
	"simple-directions/internal/timezone"
)

func newRouteCmd(c *cli) *cobra.Command {
	var (
		origin      string
		destination string
		geojsonPath string
		polyline    bool
	)

	cmd := &cobra.Command{
		Use:   "route",
		Short: "Fetch and print directions between two locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.newService()
			if err != nil {
				return err
			}

			route, err := svc.GetRoute(cmd.Context(), origin, destination)
			if errors.Is(err, directions.ErrEmptyInput) {
				fmt.Fprintln(cmd.OutOrStdout(), infoStyle.Render("no directions returned"))
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to get route: %w", err)
			}

			printRoute(cmd.OutOrStdout(), origin+" → "+destination, route)

			if tz, err := timezone.NewService(); err != nil {
				c.logger.Warn("timezone lookup disabled", "error", err)
			} else if zones, ok := timezone.ForRoute(tz, route); ok {
				fmt.Fprintln(cmd.OutOrStdout(), infoStyle.Render("time zones: "+zones.Start+" → "+zones.End))
			}

			if polyline {
				fmt.Fprintln(cmd.OutOrStdout(), presentation.EncodePolyline(route.Points()))
			}
			if geojsonPath != "" {
				if err := writeOverlay(geojsonPath, route, c.cfg.Presentation); err != nil {
					return err
				}
				c.logger.Debug("overlay written", "path", geojsonPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&origin, "origin", "o", "", "start address or \"lat,lng\"")
	cmd.Flags().StringVarP(&destination, "destination", "d", "", "end address or \"lat,lng\"")
	cmd.Flags().StringVar(&geojsonPath, "geojson", "", "write the map overlay as GeoJSON to this file")
	cmd.Flags().BoolVar(&polyline, "polyline", false, "print the route as an encoded polyline")
	_ = cmd.MarkFlagRequired("origin")
	_ = cmd.MarkFlagRequired("destination")

	return cmd
}
