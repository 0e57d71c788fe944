package router

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/wayfinder/graph"
	"github.com/katalvlaran/wayfinder/internal/logging"
	"github.com/katalvlaran/wayfinder/pathfind"
	"github.com/katalvlaran/wayfinder/waypoint"
)

const tracerName = "github.com/katalvlaran/wayfinder/router"

// Router computes multi-waypoint routes over one graph.
type Router struct {
	graph    *graph.Graph
	resolver waypoint.Resolver
	search   []pathfind.Option

	log     logging.Logger
	metrics MetricsRecorder
	tracer  trace.Tracer
}

// New returns a Router over g and its building index.
func New(g *graph.Graph, b graph.Buildings, opts ...Option) *Router {
	r := &Router{
		graph:    g,
		resolver: waypoint.Resolver{Graph: g, Buildings: b},
		log:      logging.Noop(),
		metrics:  noopMetrics{},
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Graph returns the graph the router searches.
func (r *Router) Graph() *graph.Graph { return r.graph }

// Route visits waypoints in order and returns the concatenated route.
// Cost and Distance are summed across legs. When a leg begins on the node
// the previous leg ended on, that junction appears once in Path.
//
// Errors: pathfind.ErrInvalidInput for fewer than two waypoints; otherwise
// a *LegError wrapping the failure of the first failing leg.
func (r *Router) Route(ctx context.Context, wps []waypoint.Waypoint, po pathfind.PathingOptions) (pathfind.Route, error) {
	start := time.Now()
	ctx, span := r.tracer.Start(ctx, "router.Route", trace.WithAttributes(
		attribute.Int("route.waypoints", len(wps)),
		attribute.String("route.preference", po.Preference.String()),
	))
	defer span.End()

	route, legs, err := r.route(ctx, wps, po)

	outcome := Outcome(err)
	elapsed := time.Since(start)
	r.metrics.ObserveRoute(po.Preference.String(), outcome, legs, elapsed)
	span.SetAttributes(attribute.String("route.outcome", outcome))

	fields := []logging.Field{
		logging.Int("waypoints", len(wps)),
		logging.String("preference", po.Preference.String()),
		logging.String("outcome", outcome),
		logging.Duration("elapsed", elapsed),
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		if i, ok := WaypointIndex(err); ok {
			fields = append(fields, logging.Int("waypoint", i))
		}
		r.log.Warn(ctx, "route failed", append(fields, logging.Err(err))...)
		return pathfind.Route{}, err
	}

	span.SetAttributes(
		attribute.Int("route.nodes", len(route.Path)),
		attribute.Float64("route.cost", route.Cost),
	)
	r.log.Info(ctx, "route computed", append(fields,
		logging.Int("nodes", len(route.Path)),
		logging.Float("cost", route.Cost),
		logging.Float("distance", route.Distance),
	)...)

	return route, nil
}

// route runs the legs and reports how many were attempted.
func (r *Router) route(ctx context.Context, wps []waypoint.Waypoint, po pathfind.PathingOptions) (pathfind.Route, int, error) {
	if len(wps) < 2 {
		return pathfind.Route{}, 0, fmt.Errorf("%w: need at least 2 waypoints, got %d", pathfind.ErrInvalidInput, len(wps))
	}

	candidates := make([][]string, len(wps))
	resolve := func(i int) ([]string, error) {
		if candidates[i] == nil {
			ids, err := r.resolver.Resolve(wps[i])
			if err != nil {
				return nil, err
			}
			candidates[i] = ids
		}
		return candidates[i], nil
	}

	var out pathfind.Route
	for leg := 0; leg < len(wps)-1; leg++ {
		if err := ctx.Err(); err != nil {
			return pathfind.Route{}, leg + 1, &LegError{Leg: leg, Waypoint: leg, Err: err}
		}

		from, err := resolve(leg)
		if err != nil {
			return pathfind.Route{}, leg + 1, &LegError{Leg: leg, Waypoint: leg, Err: err}
		}
		to, err := resolve(leg + 1)
		if err != nil {
			return pathfind.Route{}, leg + 1, &LegError{Leg: leg, Waypoint: leg + 1, Err: err}
		}

		seg, err := r.leg(ctx, leg, wps, from, to, po)
		if err != nil {
			return pathfind.Route{}, leg + 1, &LegError{Leg: leg, Waypoint: leg + 1, Err: err}
		}

		path := seg.Path
		if n := len(out.Path); n > 0 && len(path) > 0 && out.Path[n-1] == path[0] {
			path = path[1:]
		}
		out.Path = append(out.Path, path...)
		out.Cost += seg.Cost
		out.Distance += seg.Distance
	}

	return out, len(wps) - 1, nil
}

func (r *Router) leg(ctx context.Context, leg int, wps []waypoint.Waypoint, from, to []string, po pathfind.PathingOptions) (pathfind.Route, error) {
	_, span := r.tracer.Start(ctx, "router.Leg", trace.WithAttributes(
		attribute.Int("leg.index", leg),
		attribute.String("leg.from", wps[leg].String()),
		attribute.String("leg.to", wps[leg+1].String()),
		attribute.Int("leg.sources", len(from)),
		attribute.Int("leg.targets", len(to)),
	))
	defer span.End()

	seg, err := pathfind.FindPath(r.graph, from, to, po, r.search...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, Outcome(err))
		return pathfind.Route{}, err
	}
	span.SetAttributes(attribute.Int("leg.nodes", len(seg.Path)), attribute.Float64("leg.cost", seg.Cost))

	return seg, nil
}
