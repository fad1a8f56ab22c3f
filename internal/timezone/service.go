// Package timezone resolves IANA time zone names for route endpoints.
package timezone

import (
	"fmt"
	"sync"

	"github.com/ringsaturn/tzf"

	"simple-directions/internal/directions"
	"simple-directions/internal/types"
)

// Service provides timezone lookup functionality
type Service interface {
	GetTimezone(position types.Coords) (string, error)
}

// RouteZones holds the time zones at both ends of a route.
type RouteZones struct {
	Start string `json:"start" example:"America/Denver"`
	End   string `json:"end" example:"America/Denver"`
}

// service implements timezone lookup using tzf
type service struct {
	finder tzf.F
}

var (
	instance *service
	initErr  error
	once     sync.Once
)

// NewService creates or returns the shared timezone service. The finder holds the
// timezone polygons in memory, so it is built once per process.
func NewService() (Service, error) {
	once.Do(func() {
		finder, err := tzf.NewDefaultFinder()
		if err != nil {
			initErr = fmt.Errorf("failed to initialize timezone finder: %w", err)
			return
		}
		instance = &service{finder: finder}
	})
	if initErr != nil {
		return nil, initErr
	}
	return instance, nil
}

// GetTimezone returns the IANA timezone name, such as "America/Denver", at position.
func (s *service) GetTimezone(position types.Coords) (string, error) {
	name := s.finder.GetTimezoneName(position.Longitude, position.Latitude)
	if name == "" {
		return "", fmt.Errorf("could not determine timezone for coordinates %s", position)
	}
	return name, nil
}

// ForRoute looks up the zones at the start and end of route. It reports false when
// the route has no points or either end falls outside every zone.
func ForRoute(svc Service, route *directions.Route) (RouteZones, bool) {
	if svc == nil || route == nil {
		return RouteZones{}, false
	}
	start, ok := route.Start()
	if !ok {
		return RouteZones{}, false
	}
	end, _ := route.End()

	startZone, err := svc.GetTimezone(start)
	if err != nil {
		return RouteZones{}, false
	}
	endZone, err := svc.GetTimezone(end)
	if err != nil {
		return RouteZones{}, false
	}
	return RouteZones{Start: startZone, End: endZone}, true
}
