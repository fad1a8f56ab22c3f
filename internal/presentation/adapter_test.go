package presentation

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"simple-directions/internal/directions"
	"simple-directions/internal/types"
)

type markerCall struct {
	position types.Coords
	title    string
}

// recordingSurface captures every call made on the map.
type recordingSurface struct {
	markers   []markerCall
	polylines [][]types.Coords
	cameras   []types.Coords
}

func (r *recordingSurface) AddMarker(position types.Coords, title string) {
	r.markers = append(r.markers, markerCall{position: position, title: title})
}

func (r *recordingSurface) AddPolyline(points []types.Coords) {
	r.polylines = append(r.polylines, points)
}

func (r *recordingSurface) MoveCamera(center types.Coords) {
	r.cameras = append(r.cameras, center)
}

func (r *recordingSurface) calls() int {
	return len(r.markers) + len(r.polylines) + len(r.cameras)
}

func twoStepRoute() *directions.Route {
	return directions.NewRoute(
		[]string{"Head north", "Turn right onto Main St"},
		[]types.Coords{
			types.NewCoords(1, 2), types.NewCoords(3, 4),
			types.NewCoords(3, 4), types.NewCoords(5, 6),
		},
	)
}

func TestAdapter_Present(t *testing.T) {
	surface := &recordingSurface{}
	view := &TextView{}

	updated := NewAdapter(surface, view).Present(twoStepRoute())
	if !updated {
		t.Fatal("expected map update")
	}

	wantMarkers := []markerCall{
		{position: types.NewCoords(1, 2), title: "Start"},
		{position: types.NewCoords(5, 6), title: "Destination"},
	}
	if diff := cmp.Diff(wantMarkers, surface.markers, cmp.AllowUnexported(markerCall{})); diff != "" {
		t.Errorf("markers mismatch (-want +got):\n%s", diff)
	}

	wantLine := [][]types.Coords{{
		types.NewCoords(1, 2), types.NewCoords(3, 4),
		types.NewCoords(3, 4), types.NewCoords(5, 6),
	}}
	if diff := cmp.Diff(wantLine, surface.polylines); diff != "" {
		t.Errorf("polyline mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]types.Coords{types.NewCoords(1, 2)}, surface.cameras); diff != "" {
		t.Errorf("camera mismatch (-want +got):\n%s", diff)
	}

	want := "1. Head north\r\n2. Turn right onto Main St\r\n"
	if got := view.Text(); got != want {
		t.Errorf("view text = %q, want %q", got, want)
	}
}

func TestAdapter_PresentEmptyRoute(t *testing.T) {
	tests := []struct {
		name  string
		route *directions.Route
	}{
		{name: "nil route", route: nil},
		{name: "no steps or points", route: directions.NewRoute(nil, nil)},
		{name: "points without steps", route: directions.NewRoute(nil, []types.Coords{types.NewCoords(1, 1)})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			surface := &recordingSurface{}
			view := &TextView{}
			view.SetText("1. stale\r\n")

			if NewAdapter(surface, view).Present(tt.route) {
				t.Error("expected no map update")
			}
			if surface.calls() != 0 {
				t.Errorf("expected no map calls, got %d", surface.calls())
			}
			if got := view.Text(); got != "" {
				t.Errorf("view text = %q, want empty", got)
			}
		})
	}
}

func TestAdapter_WithTitles(t *testing.T) {
	surface := &recordingSurface{}
	NewAdapter(surface, nil).WithTitles("A", "").Present(twoStepRoute())

	if len(surface.markers) != 2 {
		t.Fatalf("expected 2 markers, got %d", len(surface.markers))
	}
	if surface.markers[0].title != "A" {
		t.Errorf("start title = %q, want A", surface.markers[0].title)
	}
	if surface.markers[1].title != DefaultEndTitle {
		t.Errorf("end title = %q, want %q", surface.markers[1].title, DefaultEndTitle)
	}
}

func TestFormatSteps(t *testing.T) {
	tests := []struct {
		name  string
		steps []string
		want  string
	}{
		{name: "none", steps: nil, want: ""},
		{name: "one", steps: []string{"Go"}, want: "1. Go\r\n"},
		{
			name:  "numbering past nine",
			steps: []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"},
			want:  "1. a\r\n2. b\r\n3. c\r\n4. d\r\n5. e\r\n6. f\r\n7. g\r\n8. h\r\n9. i\r\n10. j\r\n",
		},
		{name: "empty step kept", steps: []string{"", "x"}, want: "1. \r\n2. x\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatSteps(tt.steps); got != tt.want {
				t.Errorf("FormatSteps() = %q, want %q", got, tt.want)
			}
		})
	}
}
