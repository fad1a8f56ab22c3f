// Package directions turns a directions-response XML document into a Route: the
// ordered instruction text of every step plus the polyline formed by each step's
// start and end location.
package directions

import (
	"encoding/json"

	"simple-directions/internal/types"
)

// Route is the result of parsing one directions document. Every step contributes one
// instruction and two points (start, then end), so for well-formed input
// PointCount() == 2*StepCount(). A Route is never modified after it is returned.
type Route struct {
	steps  []string
	points []types.Coords
}

// NewRoute builds a Route from already-parsed data. The slices are copied.
func NewRoute(steps []string, points []types.Coords) *Route {
	return &Route{
		steps:  append([]string(nil), steps...),
		points: append([]types.Coords(nil), points...),
	}
}

// Steps returns the instructions in document order.
func (r *Route) Steps() []string {
	return append([]string(nil), r.steps...)
}

// Points returns the polyline in document order.
func (r *Route) Points() []types.Coords {
	return append([]types.Coords(nil), r.points...)
}

func (r *Route) StepCount() int {
	return len(r.steps)
}

func (r *Route) PointCount() int {
	return len(r.points)
}

// IsEmpty reports whether the route has no steps, i.e. nothing to draw.
func (r *Route) IsEmpty() bool {
	return len(r.steps) == 0
}

// Start returns the first point of the polyline.
func (r *Route) Start() (types.Coords, bool) {
	if len(r.points) == 0 {
		return types.Coords{}, false
	}
	return r.points[0], true
}

// End returns the last point of the polyline.
func (r *Route) End() (types.Coords, bool) {
	if len(r.points) == 0 {
		return types.Coords{}, false
	}
	return r.points[len(r.points)-1], true
}

type routeJSON struct {
	Steps  []string       `json:"steps"`
	Points []types.Coords `json:"points"`
}

func (r *Route) MarshalJSON() ([]byte, error) {
	out := routeJSON{Steps: r.steps, Points: r.points}
	if out.Steps == nil {
		out.Steps = []string{}
	}
	if out.Points == nil {
		out.Points = []types.Coords{}
	}
	return json.Marshal(out)
}

// routeBuilder accumulates one parse pass. Each call to Parse owns its own builder.
type routeBuilder struct {
	steps  []string
	points []types.Coords
}

func (b *routeBuilder) addStep(instruction string) {
	b.steps = append(b.steps, instruction)
}

func (b *routeBuilder) addPoint(c types.Coords) {
	b.points = append(b.points, c)
}

func (b *routeBuilder) build() *Route {
	return &Route{steps: b.steps, points: b.points}
}
