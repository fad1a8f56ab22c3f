package types

import "strconv"

// Coords is a latitude/longitude pair in decimal degrees. Values are kept exactly as
// supplied; no range checks are applied.
type Coords struct {
	Latitude  float64 `json:"lat" example:"39.7392" doc:"Latitude in decimal degrees"`
	Longitude float64 `json:"lng" example:"-104.9903" doc:"Longitude in decimal degrees"`
}

func NewCoords(latitude, longitude float64) Coords {
	return Coords{
		Latitude:  latitude,
		Longitude: longitude,
	}
}

// String renders the pair as "(lat,lng)".
func (c Coords) String() string {
	return "(" + strconv.FormatFloat(c.Latitude, 'f', -1, 64) + "," +
		strconv.FormatFloat(c.Longitude, 'f', -1, 64) + ")"
}
