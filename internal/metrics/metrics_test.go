package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}

	c.ObserveRequest(OutcomeOK, 120*time.Millisecond)
	c.ObserveRequest(OutcomeOK, 80*time.Millisecond)
	c.ObserveRequest(OutcomeFetchError, time.Second)
	c.ObserveRoute(12)

	if got := testutil.ToFloat64(c.Requests.WithLabelValues(OutcomeOK)); got != 2 {
		t.Errorf("directions_requests_total{outcome=ok} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.Requests.WithLabelValues(OutcomeFetchError)); got != 1 {
		t.Errorf("directions_requests_total{outcome=fetch_error} = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(c.RequestDuration); got != 1 {
		t.Errorf("directions_request_duration_seconds series = %d, want 1", got)
	}

	families, err := c.Gatherer().Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == "directions_route_steps" {
			if count := mf.GetMetric()[0].GetHistogram().GetSampleCount(); count != 1 {
				t.Errorf("directions_route_steps sample_count = %d, want 1", count)
			}
			return
		}
	}
	t.Error("directions_route_steps not gathered")
}

func TestNewCollector_ReusesRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}
	second, err := NewCollector(reg)
	if err != nil {
		t.Fatalf("NewCollector (second): %v", err)
	}

	first.ObserveRequest(OutcomeEmpty, time.Millisecond)
	if got := testutil.ToFloat64(second.Requests.WithLabelValues(OutcomeEmpty)); got != 1 {
		t.Errorf("second collector sees %v, want 1", got)
	}
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *Collector
	c.ObserveRequest(OutcomeOK, time.Second)
	c.ObserveRoute(3)
	if c.Gatherer() != nil {
		t.Error("Gatherer() on nil collector should be nil")
	}
}
