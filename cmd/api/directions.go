package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"simple-directions/internal/directions"
	"simple-directions/internal/overlay"
	"simple-directions/internal/presentation"
	"simple-directions/internal/timezone"
	"simple-directions/internal/types"
)

// maxDocumentSize caps uploaded directions documents.
const maxDocumentSize = 8 << 20

// statusClientClosedRequest marks requests the caller abandoned (nginx's 499).
const statusClientClosedRequest = 499

// GetDirectionsInput defines the query parameters for the directions endpoint
type GetDirectionsInput struct {
	Origin      string `form:"origin" binding:"required"`      // Start address or "lat,lng"
	Destination string `form:"destination" binding:"required"` // End address or "lat,lng"
}

// BoundsResponse is the box enclosing every route point
type BoundsResponse struct {
	South float64 `json:"south" example:"39.7392"`
	West  float64 `json:"west" example:"-105.2705"`
	North float64 `json:"north" example:"40.0150"`
	East  float64 `json:"east" example:"-104.9903"`
}

// DirectionsResponse is a route ready for display
type DirectionsResponse struct {
	Steps        []string             `json:"steps" example:"Head north on Main St,Turn right"`
	Instructions string               `json:"instructions" example:"1. Head north on Main St\r\n2. Turn right\r\n"`
	Points       []types.Coords       `json:"points"`
	Polyline     string               `json:"polyline" example:"_p~iF~ps|U_ulLnnqC"`
	Overlay      json.RawMessage      `json:"overlay" swaggertype:"object"` // GeoJSON FeatureCollection
	Bounds       *BoundsResponse      `json:"bounds,omitempty"`
	Timezones    *timezone.RouteZones `json:"timezones,omitempty"`
}

// handleGetDirections godoc
// @Summary Get driving directions
// @Description Fetch the route between two locations and render it as a numbered step list and a GeoJSON map overlay
// @Tags directions
// @Produce json
// @Param origin query string true "Start address or coordinates" example(Denver, CO)
// @Param destination query string true "End address or coordinates" example(Boulder, CO)
// @Success 200 {object} DirectionsResponse
// @Success 204 "No route to display"
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /directions [get]
func (app *App) handleGetDirections(c *gin.Context) {
	var input GetDirectionsInput

	// Bind and validate query parameters
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Delegate to business layer
	route, err := app.overlayService.GetRoute(c.Request.Context(), input.Origin, input.Destination)
	if err != nil {
		var parseErr *directions.ParseError
		var fetchErr *directions.FetchError
		switch {
		case errors.Is(err, overlay.ErrInvalidOrigin) || errors.Is(err, overlay.ErrInvalidDestination):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, directions.ErrEmptyInput):
			c.Status(http.StatusNoContent)
		case errors.Is(err, context.Canceled):
			app.logger.Debug("directions request canceled by client",
				"origin", input.Origin,
				"destination", input.Destination,
			)
			c.AbortWithStatus(statusClientClosedRequest)
		case errors.As(err, &parseErr) || errors.As(err, &fetchErr):
			app.logger.Error("failed to get directions",
				"origin", input.Origin,
				"destination", input.Destination,
				"error", err,
			)
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to get directions from upstream"})
		default:
			app.logger.Error("failed to get directions",
				"origin", input.Origin,
				"destination", input.Destination,
				"error", err,
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get directions"})
		}
		return
	}

	app.respondWithRoute(c, route)
}

// handleParseDirections godoc
// @Summary Render a saved directions document
// @Description Parse an uploaded directions XML document and render it like GET /directions
// @Tags directions
// @Accept xml
// @Produce json
// @Param document body string true "DirectionsResponse XML document"
// @Success 200 {object} DirectionsResponse
// @Success 204 "Empty document"
// @Failure 413 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /directions/parse [post]
func (app *App) handleParseDirections(c *gin.Context) {
	start := time.Now()

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxDocumentSize+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("failed to read body: %v", err)})
		return
	}
	if len(body) > maxDocumentSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "document too large"})
		return
	}

	route, err := directions.ParseBytes(body)
	app.metrics.ObserveRequest(overlay.Classify(err), time.Since(start))
	if err != nil {
		if errors.Is(err, directions.ErrEmptyInput) {
			c.Status(http.StatusNoContent)
			return
		}
		app.logger.Debug("rejected directions document", "error", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	app.metrics.ObserveRoute(route.StepCount())

	app.respondWithRoute(c, route)
}

func (app *App) respondWithRoute(c *gin.Context, route *directions.Route) {
	resp, err := app.buildResponse(route)
	if err != nil {
		app.logger.Error("failed to render route", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render route"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (app *App) buildResponse(route *directions.Route) (*DirectionsResponse, error) {
	surface := presentation.NewGeoJSONSurface()
	view := &presentation.TextView{}
	presentation.NewAdapter(surface, view).
		WithTitles(app.cfg.Presentation.StartTitle, app.cfg.Presentation.EndTitle).
		Present(route)

	overlayJSON, err := surface.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to encode overlay: %w", err)
	}

	points := route.Points()
	resp := &DirectionsResponse{
		Steps:        route.Steps(),
		Instructions: view.Text(),
		Points:       points,
		Polyline:     presentation.EncodePolyline(points),
		Overlay:      overlayJSON,
	}
	if resp.Steps == nil {
		resp.Steps = []string{}
	}
	if resp.Points == nil {
		resp.Points = []types.Coords{}
	}

	if bound, ok := presentation.Bounds(route); ok {
		resp.Bounds = &BoundsResponse{
			South: bound.Min.Lat(),
			West:  bound.Min.Lon(),
			North: bound.Max.Lat(),
			East:  bound.Max.Lon(),
		}
	}
	if zones, ok := timezone.ForRoute(app.timezones, route); ok {
		resp.Timezones = &zones
	}
	return resp, nil
}
