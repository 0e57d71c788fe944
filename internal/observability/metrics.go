// Package observability wires Prometheus metrics and OpenTelemetry tracing
// for the wayfinder service.
package observability

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouteCollector bundles the routing metrics. It satisfies
// router.MetricsRecorder.
type RouteCollector struct {
	gatherer prometheus.Gatherer

	Requests         *prometheus.CounterVec
	Durations        *prometheus.HistogramVec
	Legs             prometheus.Histogram
	WeatherFallbacks prometheus.Counter
	GraphNodes       prometheus.Gauge
	GraphEdges       prometheus.Gauge
}

// NewRouteCollector registers the routing metrics on reg, defaulting to the
// global registry when nil. Registering twice on the same registry returns
// collectors bound to the existing series.
func NewRouteCollector(reg prometheus.Registerer) (*RouteCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	requests, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wayfinder_route_requests_total",
		Help: "Route requests, labeled by preference and outcome.",
	}, []string{"preference", "outcome"}))
	if err != nil {
		return nil, err
	}
	durations, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wayfinder_route_duration_seconds",
		Help:    "Route computation latency in seconds.",
		Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"preference"}))
	if err != nil {
		return nil, err
	}
	legs, err := register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "wayfinder_route_legs",
		Help:    "Legs attempted per route request.",
		Buckets: prometheus.LinearBuckets(1, 1, 8),
	}))
	if err != nil {
		return nil, err
	}
	fallbacks, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "wayfinder_weather_fallbacks_total",
		Help: "Weather-preference requests downgraded to balanced after a failed weather fetch.",
	}))
	if err != nil {
		return nil, err
	}
	nodes, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "wayfinder_graph_nodes",
		Help: "Nodes in the loaded campus graph.",
	}))
	if err != nil {
		return nil, err
	}
	edges, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "wayfinder_graph_edges",
		Help: "Directed edges in the loaded campus graph.",
	}))
	if err != nil {
		return nil, err
	}

	return &RouteCollector{
		gatherer:         gatherer,
		Requests:         requests,
		Durations:        durations,
		Legs:             legs,
		WeatherFallbacks: fallbacks,
		GraphNodes:       nodes,
		GraphEdges:       edges,
	}, nil
}

// ObserveRoute records one finished route request.
func (c *RouteCollector) ObserveRoute(preference, outcome string, legs int, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.Requests.WithLabelValues(preference, outcome).Inc()
	c.Durations.WithLabelValues(preference).Observe(elapsed.Seconds())
	if legs > 0 {
		c.Legs.Observe(float64(legs))
	}
}

// WeatherFallback counts one downgrade from weather to balanced.
func (c *RouteCollector) WeatherFallback() {
	if c == nil {
		return
	}
	c.WeatherFallbacks.Inc()
}

// SetGraphSize publishes the size of the loaded graph.
func (c *RouteCollector) SetGraphSize(nodes, edges int) {
	if c == nil {
		return
	}
	c.GraphNodes.Set(float64(nodes))
	c.GraphEdges.Set(float64(edges))
}

// Handler serves the registry in the Prometheus exposition format.
func (c *RouteCollector) Handler() http.Handler {
	if c == nil || c.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
			var zero C
			return zero, fmt.Errorf("observability: collector already registered with incompatible type: %w", err)
		}
		var zero C
		return zero, err
	}
	return c, nil
}
