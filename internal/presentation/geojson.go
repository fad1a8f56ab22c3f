package presentation

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"simple-directions/internal/directions"
	"simple-directions/internal/types"
)

const (
	RoleStart = "start"
	RoleEnd   = "end"
	RoleRoute = "route"
)

// GeoJSONSurface is a MapSurface that records the overlay as a GeoJSON feature
// collection. The first marker added is the start, later ones the end.
type GeoJSONSurface struct {
	fc      *geojson.FeatureCollection
	markers int
}

func NewGeoJSONSurface() *GeoJSONSurface {
	return &GeoJSONSurface{fc: geojson.NewFeatureCollection()}
}

func (s *GeoJSONSurface) AddMarker(position types.Coords, title string) {
	role := RoleEnd
	if s.markers == 0 {
		role = RoleStart
	}
	s.markers++

	f := geojson.NewFeature(toPoint(position))
	f.Properties["title"] = title
	f.Properties["role"] = role
	s.fc.Append(f)
}

func (s *GeoJSONSurface) AddPolyline(points []types.Coords) {
	line := make(orb.LineString, 0, len(points))
	for _, p := range points {
		line = append(line, toPoint(p))
	}
	f := geojson.NewFeature(line)
	f.Properties["role"] = RoleRoute
	s.fc.Append(f)
}

func (s *GeoJSONSurface) MoveCamera(center types.Coords) {
	if s.fc.ExtraMembers == nil {
		s.fc.ExtraMembers = geojson.Properties{}
	}
	s.fc.ExtraMembers["center"] = toPoint(center)
}

func (s *GeoJSONSurface) FeatureCollection() *geojson.FeatureCollection {
	return s.fc
}

func (s *GeoJSONSurface) MarshalJSON() ([]byte, error) {
	return s.fc.MarshalJSON()
}

// Bounds returns the bounding box of the route's points.
func Bounds(route *directions.Route) (orb.Bound, bool) {
	if route == nil || route.PointCount() == 0 {
		return orb.Bound{}, false
	}
	points := route.Points()
	bound := toPoint(points[0]).Bound()
	for _, p := range points[1:] {
		bound = bound.Extend(toPoint(p))
	}
	return bound, true
}

// GeoJSON points are longitude first.
func toPoint(c types.Coords) orb.Point {
	return orb.Point{c.Longitude, c.Latitude}
}
