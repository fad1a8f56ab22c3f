package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"simple-directions/internal/config"
	"simple-directions/internal/metrics"
	"simple-directions/internal/overlay"
)

// cli carries the state shared by all subcommands.
type cli struct {
	configFile string
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:   "mapoverlay",
		Short: "Driving directions as a numbered step list and map overlay",
		Long: `mapoverlay fetches driving directions and renders them for display.

Examples:

- mapoverlay route --origin "Denver, CO" --destination "Boulder, CO"
- mapoverlay route --origin A --destination B --geojson route.geojson --polyline
- mapoverlay parse saved-response.xml
- echo "Denver, CO | Boulder, CO" | mapoverlay watch`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	rootCmd.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(
		newRouteCmd(c),
		newParseCmd(c),
		newWatchCmd(c),
	)
	return rootCmd
}

func (c *cli) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFile(c.configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if c.logLevel != "" {
		cfg.Log.Level = c.logLevel
	}

	c.cfg = cfg
	c.logger = cfg.NewLogger()
	slog.SetDefault(c.logger)
	return nil
}

// newService builds the directions service for commands that go to the network.
func (c *cli) newService() (overlay.Service, error) {
	if err := c.cfg.Validate(); err != nil {
		return nil, err
	}
	return overlay.NewService(c.cfg, c.logger, metrics.Nop()), nil
}
