package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/paulmach/orb/geojson"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simple-directions/internal/config"
	"simple-directions/internal/directions"
	"simple-directions/internal/metrics"
	"simple-directions/internal/overlay"
	"simple-directions/internal/timezone"
	"simple-directions/internal/types"
)

const sampleDocument = `<?xml version="1.0" encoding="UTF-8"?>
<DirectionsResponse>
 <status>OK</status>
 <route>
  <leg>
   <step>
    <start_location><lat>1</lat><lng>2</lng></start_location>
    <end_location><lat>3</lat><lng>4</lng></end_location>
    <html_instructions>Head &lt;b&gt;north&lt;/b&gt;</html_instructions>
   </step>
   <step>
    <start_location><lat>3</lat><lng>4</lng></start_location>
    <end_location><lat>5</lat><lng>6</lng></end_location>
    <html_instructions>Turn right</html_instructions>
   </step>
  </leg>
 </route>
</DirectionsResponse>`

// Mock overlay service for testing
type mockOverlayService struct {
	route *directions.Route
	err   error

	origin      string
	destination string
}

func (m *mockOverlayService) GetRoute(ctx context.Context, origin, destination string) (*directions.Route, error) {
	m.origin = origin
	m.destination = destination
	return m.route, m.err
}

// Mock timezone service for testing
type mockTimezoneService struct{}

func (mockTimezoneService) GetTimezone(position types.Coords) (string, error) {
	if position.Latitude < 3 {
		return "America/Denver", nil
	}
	return "America/Chicago", nil
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 8080, GinMode: "test"},
		Log:    config.LogConfig{Level: "error", Format: "text"},
		Directions: config.DirectionsConfig{
			BaseURL: config.DefaultDirectionsURL,
			APIKey:  "test-key",
		},
		Presentation: config.PresentationConfig{StartTitle: "Start", EndTitle: "Destination"},
	}
}

func newTestApp(t *testing.T, svc overlay.Service) *App {
	t.Helper()
	return newTestAppWithTimezones(t, svc, nil)
}

func newTestAppWithTimezones(t *testing.T, svc overlay.Service, timezones timezone.Service) *App {
	t.Helper()
	collector, err := metrics.NewCollector(prometheus.NewRegistry())
	require.NoError(t, err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return newApp(testConfig(), logger, svc, collector, timezones)
}

func serve(app *App, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	return w
}

func TestPing(t *testing.T) {
	app := newTestApp(t, &mockOverlayService{})

	w := serve(app, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}

func TestGetDirections(t *testing.T) {
	route := directions.NewRoute(
		[]string{"Head north", "Turn right"},
		[]types.Coords{
			types.NewCoords(1, 2), types.NewCoords(3, 4),
			types.NewCoords(3, 4), types.NewCoords(5, 6),
		},
	)
	svc := &mockOverlayService{route: route}
	app := newTestAppWithTimezones(t, svc, mockTimezoneService{})

	w := serve(app, httptest.NewRequest(http.MethodGet, "/directions?origin=Denver%2C+CO&destination=Boulder", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Denver, CO", svc.origin)
	assert.Equal(t, "Boulder", svc.destination)

	var resp DirectionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Head north", "Turn right"}, resp.Steps)
	assert.Equal(t, "1. Head north\r\n2. Turn right\r\n", resp.Instructions)
	assert.Len(t, resp.Points, 4)
	assert.NotEmpty(t, resp.Polyline)
	require.NotNil(t, resp.Bounds)
	assert.Equal(t, BoundsResponse{South: 1, West: 2, North: 5, East: 6}, *resp.Bounds)
	require.NotNil(t, resp.Timezones)
	assert.Equal(t, timezone.RouteZones{Start: "America/Denver", End: "America/Chicago"}, *resp.Timezones)

	fc, err := geojson.UnmarshalFeatureCollection(resp.Overlay)
	require.NoError(t, err)
	require.Len(t, fc.Features, 3)
	assert.Equal(t, "Start", fc.Features[0].Properties.MustString("title"))
	assert.Equal(t, "Destination", fc.Features[1].Properties.MustString("title"))
}

func TestGetDirections_EmptyRoute(t *testing.T) {
	app := newTestApp(t, &mockOverlayService{route: directions.NewRoute(nil, nil)})

	w := serve(app, httptest.NewRequest(http.MethodGet, "/directions?origin=a&destination=b", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp DirectionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Steps)
	assert.NotNil(t, resp.Steps)
	assert.Empty(t, resp.Instructions)
	assert.Nil(t, resp.Bounds)
	assert.Nil(t, resp.Timezones)
}

func TestGetDirections_Errors(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		err        error
		wantStatus int
	}{
		{name: "missing origin", query: "destination=b", wantStatus: http.StatusBadRequest},
		{name: "missing destination", query: "origin=a", wantStatus: http.StatusBadRequest},
		{name: "blank origin", query: "origin=+&destination=b", err: overlay.ErrInvalidOrigin, wantStatus: http.StatusBadRequest},
		{name: "empty document", query: "origin=a&destination=b", err: directions.ErrEmptyInput, wantStatus: http.StatusNoContent},
		{
			name:       "fetch error",
			query:      "origin=a&destination=b",
			err:        &directions.FetchError{Op: "status", StatusCode: 503, Err: errors.New("unavailable")},
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "parse error",
			query:      "origin=a&destination=b",
			err:        &directions.ParseError{Element: "lat", Line: 4, Err: errors.New("bad number")},
			wantStatus: http.StatusBadGateway,
		},
		{name: "client canceled", query: "origin=a&destination=b", err: context.Canceled, wantStatus: statusClientClosedRequest},
		{name: "unexpected error", query: "origin=a&destination=b", err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, &mockOverlayService{err: tt.err})

			w := serve(app, httptest.NewRequest(http.MethodGet, "/directions?"+tt.query, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus != http.StatusNoContent && tt.wantStatus != statusClientClosedRequest {
				var body map[string]string
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.NotEmpty(t, body["error"])
			} else {
				assert.Empty(t, w.Body.String())
			}
		})
	}
}

func TestParseDirections(t *testing.T) {
	app := newTestApp(t, &mockOverlayService{})

	req := httptest.NewRequest(http.MethodPost, "/directions/parse", strings.NewReader(sampleDocument))
	req.Header.Set("Content-Type", "application/xml")
	w := serve(app, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp DirectionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Head north", "Turn right"}, resp.Steps)
	assert.Equal(t, []types.Coords{
		types.NewCoords(1, 2), types.NewCoords(3, 4),
		types.NewCoords(3, 4), types.NewCoords(5, 6),
	}, resp.Points)
}

func TestParseDirections_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "empty body", body: "", wantStatus: http.StatusNoContent},
		{name: "whitespace body", body: " \n\t", wantStatus: http.StatusNoContent},
		{name: "bad number", body: "<DirectionsResponse><route><leg><step><start_location><lat>north</lat></start_location></step></leg></route></DirectionsResponse>", wantStatus: http.StatusUnprocessableEntity},
		{name: "truncated", body: "<DirectionsResponse><route>", wantStatus: http.StatusUnprocessableEntity},
		{name: "wrong root", body: "<GeocodeResponse/>", wantStatus: http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t, &mockOverlayService{})

			w := serve(app, httptest.NewRequest(http.MethodPost, "/directions/parse", strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestParseDirections_TooLarge(t *testing.T) {
	app := newTestApp(t, &mockOverlayService{})

	body := strings.NewReader(strings.Repeat(" ", maxDocumentSize+1))
	w := serve(app, httptest.NewRequest(http.MethodPost, "/directions/parse", body))

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	app := newTestApp(t, &mockOverlayService{})

	serve(app, httptest.NewRequest(http.MethodPost, "/directions/parse", strings.NewReader(sampleDocument)))
	w := serve(app, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `directions_requests_total{outcome="ok"} 1`)
	assert.Contains(t, w.Body.String(), "directions_route_steps_count 1")
}

func TestSwaggerRedirect(t *testing.T) {
	app := newTestApp(t, &mockOverlayService{})

	w := serve(app, httptest.NewRequest(http.MethodGet, "/swagger/", nil))

	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "/swagger/index.html", w.Header().Get("Location"))
}

func TestNewApp_RequiresAPIKey(t *testing.T) {
	cfg := testConfig()
	cfg.Directions.APIKey = ""

	_, err := NewApp(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.ErrorIs(t, err, config.ErrMissingAPIKey)
}
