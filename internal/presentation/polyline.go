package presentation

import (
	"fmt"

	"github.com/twpayne/go-polyline"

	"simple-directions/internal/types"
)

// EncodePolyline encodes points with the Google encoded polyline algorithm.
func EncodePolyline(points []types.Coords) string {
	coords := make([][]float64, 0, len(points))
	for _, p := range points {
		coords = append(coords, []float64{p.Latitude, p.Longitude})
	}
	return string(polyline.EncodeCoords(coords))
}

func DecodePolyline(s string) ([]types.Coords, error) {
	coords, rest, err := polyline.DecodeCoords([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("failed to decode polyline: %w", err)
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("failed to decode polyline: %d trailing bytes", len(rest))
	}

	points := make([]types.Coords, 0, len(coords))
	for _, c := range coords {
		points = append(points, types.NewCoords(c[0], c[1]))
	}
	return points, nil
}
