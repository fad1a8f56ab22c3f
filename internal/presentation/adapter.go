// Package presentation turns a parsed route into map and instruction updates.
package presentation

import (
	"simple-directions/internal/directions"
	"simple-directions/internal/types"
)

const (
	DefaultStartTitle = "Start"
	DefaultEndTitle   = "Destination"
)

// MapSurface is the map widget a route is drawn on.
type MapSurface interface {
	AddMarker(position types.Coords, title string)
	AddPolyline(points []types.Coords)
	MoveCamera(center types.Coords)
}

// InstructionView displays the numbered step list.
type InstructionView interface {
	SetText(text string)
}

type Adapter struct {
	surface    MapSurface
	view       InstructionView
	startTitle string
	endTitle   string
}

func NewAdapter(surface MapSurface, view InstructionView) *Adapter {
	return &Adapter{
		surface:    surface,
		view:       view,
		startTitle: DefaultStartTitle,
		endTitle:   DefaultEndTitle,
	}
}

// WithTitles sets the marker titles. Blank titles keep the current value.
func (a *Adapter) WithTitles(start, end string) *Adapter {
	if start != "" {
		a.startTitle = start
	}
	if end != "" {
		a.endTitle = end
	}
	return a
}

// Present draws route on the map and fills the instruction view. A route with no
// steps leaves the map untouched and clears the view. It reports whether the map
// was updated.
func (a *Adapter) Present(route *directions.Route) bool {
	if route == nil || route.StepCount() == 0 {
		if a.view != nil {
			a.view.SetText("")
		}
		return false
	}

	if a.view != nil {
		a.view.SetText(FormatSteps(route.Steps()))
	}

	start, ok := route.Start()
	if !ok || a.surface == nil {
		return false
	}
	end, _ := route.End()

	a.surface.AddMarker(start, a.startTitle)
	a.surface.AddMarker(end, a.endTitle)
	a.surface.AddPolyline(route.Points())
	a.surface.MoveCamera(start)
	return true
}
