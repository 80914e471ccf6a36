// SPDX-License-Identifier: MIT

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	searchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "connect4_search_duration_seconds",
		Help:    "Wall time of a best-move search by depth",
		Buckets: prometheus.ExponentialBuckets(0.0005, 4, 9),
	}, []string{"depth"})

	searchNodes = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "connect4_search_nodes",
		Help:    "Nodes visited per best-move search by depth",
		Buckets: prometheus.ExponentialBuckets(10, 4, 10),
	}, []string{"depth"})

	searchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "connect4_search_total",
		Help: "Best-move searches by result",
	}, []string{"result"}) // result=computed|cached|canceled|error

	cacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "connect4_analysis_cache_requests_total",
		Help: "Analysis cache lookups by backend and outcome",
	}, []string{"backend", "outcome"}) // outcome=hit|miss
)

// ObserveSearch records a computed search.
func ObserveSearch(depth int, elapsed time.Duration, nodes int64) {
	d := strconv.Itoa(depth)
	searchDuration.WithLabelValues(d).Observe(elapsed.Seconds())
	searchNodes.WithLabelValues(d).Observe(float64(nodes))
	searchTotal.WithLabelValues("computed").Inc()
}

// IncSearchResult counts searches that did not compute a fresh tree.
func IncSearchResult(result string) { searchTotal.WithLabelValues(result).Inc() }

func RecordCacheLookup(backend string, hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	cacheRequests.WithLabelValues(backend, outcome).Inc()
}

var (
	circuitBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "connect4_circuit_breaker_state",
		Help: "Circuit breaker state per component (1 for the active state)",
	}, []string{"component", "state"})

	circuitBreakerTrips = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "connect4_circuit_breaker_trips_total",
		Help: "Circuit breaker trips by component and reason",
	}, []string{"component", "reason"})
)

var breakerStates = []string{"closed", "open", "half-open"}

func SetCircuitBreakerState(component, state string) {
	for _, s := range breakerStates {
		v := 0.0
		if s == state {
			v = 1
		}
		circuitBreakerState.WithLabelValues(component, s).Set(v)
	}
}

func RecordCircuitBreakerTrip(component, reason string) {
	circuitBreakerTrips.WithLabelValues(component, reason).Inc()
}
