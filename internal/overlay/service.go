// Package overlay coordinates directions lookups: it validates a query, fetches and
// parses the route through a provider, and records the outcome.
package overlay

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"simple-directions/internal/config"
	"simple-directions/internal/directions"
	"simple-directions/internal/metrics"
	"simple-directions/internal/providers/googlemaps"
)

var (
	ErrInvalidOrigin      = errors.New("origin is required")
	ErrInvalidDestination = errors.New("destination is required")
)

// DirectionsProvider fetches and parses the route between two places.
type DirectionsProvider interface {
	GetRoute(ctx context.Context, origin, destination string) (*directions.Route, error)
}

// Service provides routes for origin/destination queries.
type Service interface {
	// GetRoute returns the parsed route. Failures are directions.ErrEmptyInput,
	// a *directions.ParseError, a *directions.FetchError, or one of the
	// validation errors of this package.
	GetRoute(ctx context.Context, origin, destination string) (*directions.Route, error)
}

type overlayService struct {
	provider DirectionsProvider
	recorder metrics.Recorder
	group    singleflight.Group
	logger   *slog.Logger
}

// NewService creates a service backed by the Google Directions client.
func NewService(cfg *config.Config, logger *slog.Logger, recorder metrics.Recorder) Service {
	return NewServiceWithProvider(googlemaps.NewClient(cfg.Directions, logger), logger, recorder)
}

// NewServiceWithProvider creates a service with a custom provider.
// This is useful for testing with mock providers.
func NewServiceWithProvider(provider DirectionsProvider, logger *slog.Logger, recorder metrics.Recorder) Service {
	if recorder == nil {
		recorder = metrics.Nop()
	}
	return &overlayService{
		provider: provider,
		recorder: recorder,
		logger:   logger.With("component", "overlay-service"),
	}
}

// GetRoute validates the query and fetches the route. Identical queries in flight at
// the same time share one upstream request. A caller whose context ends stops waiting
// immediately; the shared request itself runs to completion under the client's
// timeouts so other waiters still get their answer.
func (s *overlayService) GetRoute(ctx context.Context, origin, destination string) (*directions.Route, error) {
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)

	if origin == "" {
		s.recorder.ObserveRequest(metrics.OutcomeInvalid, 0)
		return nil, ErrInvalidOrigin
	}
	if destination == "" {
		s.recorder.ObserveRequest(metrics.OutcomeInvalid, 0)
		return nil, ErrInvalidDestination
	}

	start := time.Now()
	key := origin + "\x00" + destination
	detached := context.WithoutCancel(ctx)

	ch := s.group.DoChan(key, func() (any, error) {
		return s.provider.GetRoute(detached, origin, destination)
	})

	select {
	case <-ctx.Done():
		s.recorder.ObserveRequest(metrics.OutcomeCanceled, time.Since(start))
		s.logger.Debug("directions request abandoned",
			"origin", origin,
			"destination", destination,
			"error", ctx.Err(),
		)
		return nil, ctx.Err()
	case res := <-ch:
		elapsed := time.Since(start)
		route, _ := res.Val.(*directions.Route)
		if res.Err == nil && route == nil {
			res.Err = directions.ErrEmptyInput
		}
		outcome := Classify(res.Err)
		s.recorder.ObserveRequest(outcome, elapsed)

		if res.Err != nil {
			s.logger.Debug("directions request failed",
				"origin", origin,
				"destination", destination,
				"outcome", outcome,
				"shared", res.Shared,
				"error", res.Err,
			)
			return nil, res.Err
		}

		s.recorder.ObserveRoute(route.StepCount())
		s.logger.Info("directions request completed",
			"origin", origin,
			"destination", destination,
			"steps", route.StepCount(),
			"shared", res.Shared,
			"duration_ms", elapsed.Milliseconds(),
		)
		return route, nil
	}
}

// Classify maps an error to its metrics outcome label.
func Classify(err error) string {
	var parseErr *directions.ParseError
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, directions.ErrEmptyInput):
		return metrics.OutcomeEmpty
	case errors.As(err, &parseErr):
		return metrics.OutcomeParseError
	case errors.Is(err, context.Canceled):
		return metrics.OutcomeCanceled
	default:
		return metrics.OutcomeFetchError
	}
}
