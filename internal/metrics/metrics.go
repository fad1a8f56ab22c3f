// Package metrics exposes Prometheus instrumentation for directions lookups.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for directions_requests_total.
const (
	OutcomeOK         = "ok"
	OutcomeEmpty      = "empty"
	OutcomeParseError = "parse_error"
	OutcomeFetchError = "fetch_error"
	OutcomeInvalid    = "invalid"
	OutcomeCanceled   = "canceled"
)

// Recorder receives directions lookup measurements.
type Recorder interface {
	ObserveRequest(outcome string, d time.Duration)
	ObserveRoute(steps int)
}

// Collector records directions metrics on a Prometheus registry.
type Collector struct {
	gatherer prometheus.Gatherer

	Requests        *prometheus.CounterVec
	RequestDuration prometheus.Histogram
	RouteSteps      prometheus.Histogram
}

// NewCollector registers the directions metrics against reg, or the default
// registerer when reg is nil. Registering twice on the same registry reuses the
// existing collectors.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "directions_requests_total",
		Help: "Directions lookups by outcome.",
	}, []string{"outcome"})
	if err := reg.Register(requests); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return nil, err
		}
		existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, fmt.Errorf("collector directions_requests_total already registered with incompatible type")
		}
		requests = existing
	}

	duration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "directions_request_duration_seconds",
		Help:    "Time spent fetching and parsing a directions document.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 25},
	}), "directions_request_duration_seconds")
	if err != nil {
		return nil, err
	}

	steps, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "directions_route_steps",
		Help:    "Number of steps in successfully parsed routes.",
		Buckets: []float64{1, 2, 5, 10, 20, 50, 100, 200},
	}), "directions_route_steps")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:        gatherer,
		Requests:        requests,
		RequestDuration: duration,
		RouteSteps:      steps,
	}, nil
}

// Gatherer returns the Prometheus gatherer associated with the collector.
func (c *Collector) Gatherer() prometheus.Gatherer {
	if c == nil {
		return nil
	}
	return c.gatherer
}

// ObserveRequest counts one lookup and records how long it took.
func (c *Collector) ObserveRequest(outcome string, d time.Duration) {
	if c == nil {
		return
	}
	c.Requests.WithLabelValues(outcome).Inc()
	c.RequestDuration.Observe(d.Seconds())
}

// ObserveRoute records the size of a parsed route.
func (c *Collector) ObserveRoute(steps int) {
	if c == nil {
		return
	}
	c.RouteSteps.Observe(float64(steps))
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}

type nopRecorder struct{}

func (nopRecorder) ObserveRequest(string, time.Duration) {}
func (nopRecorder) ObserveRoute(int)                     {}

// Nop returns a Recorder that discards everything.
func Nop() Recorder {
	return nopRecorder{}
}
