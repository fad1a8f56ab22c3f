package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"simple-directions/internal/config"
	"simple-directions/internal/directions"
	"simple-directions/internal/presentation"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FF00"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555"))
)

// printRoute writes a header followed by the numbered steps.
func printRoute(w io.Writer, header string, route *directions.Route) {
	fmt.Fprintln(w, headerStyle.Render(header))

	view := &presentation.TextView{}
	presentation.NewAdapter(nil, view).Present(route)

	if view.Text() == "" {
		fmt.Fprintln(w, infoStyle.Render("no steps to display"))
		return
	}
	for _, line := range strings.Split(strings.TrimSuffix(view.Text(), "\r\n"), "\r\n") {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w, infoStyle.Render(fmt.Sprintf("%d steps, %d points", route.StepCount(), route.PointCount())))
}

func printError(w io.Writer, err error) {
	fmt.Fprintln(w, errorStyle.Render("error: "+err.Error()))
}

// writeOverlay renders the route onto a GeoJSON surface and writes it to path.
func writeOverlay(path string, route *directions.Route, titles config.PresentationConfig) error {
	surface := presentation.NewGeoJSONSurface()
	presentation.NewAdapter(surface, nil).
		WithTitles(titles.StartTitle, titles.EndTitle).
		Present(route)

	data, err := surface.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode overlay: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write overlay: %w", err)
	}
	return nil
}
