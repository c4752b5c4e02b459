package dijkstra

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("github.com/pdrpinto/dijkstra")

var (
	// searchTotal counts searches by outcome
	searchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dijkstra_search_total",
		Help: "Total grid searches by result",
	}, []string{"result"})

	searchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dijkstra_search_duration_seconds",
		Help:    "Grid search duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16), // 0.1ms to ~3s
	})

	searchExpandedNodes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dijkstra_search_expanded_nodes",
		Help:    "Frontier extractions per search",
		Buckets: prometheus.ExponentialBuckets(1, 4, 12),
	})

	searchDecreaseKeys = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dijkstra_search_decrease_keys_total",
		Help: "Frontier entries replaced by a cheaper route",
	})
)

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "found"
	case errors.Is(err, ErrNoPathFound):
		return "no_path"
	case errors.Is(err, ErrOutOfBounds):
		return "out_of_bounds"
	case errors.Is(err, ErrStartOrGoalObstructed):
		return "obstructed"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "error"
	}
}

func observeSearch(err error, expanded, decreaseKeys int, elapsed time.Duration) {
	searchTotal.WithLabelValues(resultLabel(err)).Inc()
	searchDuration.Observe(elapsed.Seconds())
	if expanded > 0 {
		searchExpandedNodes.Observe(float64(expanded))
	}
	if decreaseKeys > 0 {
		searchDecreaseKeys.Add(float64(decreaseKeys))
	}
}
