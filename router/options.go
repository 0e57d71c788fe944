package router

import (
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/wayfinder/graph"
	"github.com/katalvlaran/wayfinder/internal/logging"
	"github.com/katalvlaran/wayfinder/pathfind"
)

// MetricsRecorder receives one observation per Route call.
type MetricsRecorder interface {
	ObserveRoute(preference, outcome string, legs int, elapsed time.Duration)
}

type noopMetrics struct{}

func (noopMetrics) ObserveRoute(string, string, int, time.Duration) {}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the request logger. Nil means Noop.
func WithLogger(l logging.Logger) Option {
	return func(r *Router) {
		if l == nil {
			l = logging.Noop()
		}
		r.log = l
	}
}

// WithMetrics sets the metrics sink. Nil disables metrics.
func WithMetrics(m MetricsRecorder) Option {
	return func(r *Router) {
		if m == nil {
			m = noopMetrics{}
		}
		r.metrics = m
	}
}

// WithTracerProvider takes the router tracer from tp instead of the global
// provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(r *Router) {
		if tp != nil {
			r.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithSpatialIndex enables position waypoints resolved to the k nearest
// nodes; k <= 0 keeps the resolver default.
func WithSpatialIndex(idx *graph.SpatialIndex, k int) Option {
	return func(r *Router) {
		r.resolver.Index = idx
		r.resolver.NearestK = k
	}
}

// WithOutdoor sets the outdoor classifier passed to every search.
// Panics if fn is nil.
func WithOutdoor(fn pathfind.OutdoorFunc) Option {
	opt := pathfind.WithOutdoor(fn)
	return func(r *Router) { r.search = append(r.search, opt) }
}

// WithMaxCost bounds the effective cost of each leg.
// Panics if max is negative.
func WithMaxCost(max float64) Option {
	opt := pathfind.WithMaxCost(max)
	return func(r *Router) { r.search = append(r.search, opt) }
}
