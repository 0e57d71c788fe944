// Package wayfinder computes walking routes across a multi-building campus
// whose cost can lean on the current weather.
//
// The module is organized as small packages layered bottom-up:
//
//	graph/      immutable campus graph, JSON/YAML loader, R-tree spatial index
//	weather/    Kelvin→°F comfort multiplier and an OpenWeatherMap fetcher with retry
//	pathfind/   multi-source, multi-target Dijkstra with deterministic tie-breaking
//	waypoint/   room / node / position stops resolved to candidate node sets
//	router/     chains legs across an ordered waypoint list, with logs, metrics and spans
//
// The wayfinder binary (cmd/wayfinder) serves the router over HTTP:
//
//	POST /api/v1/route   {"waypoints":[{"type":"room","value":"GHC-4401"}, ...], "preference":"weather"}
//	GET  /healthz
//	GET  /metrics
//
// Quick ASCII example:
//
//	room1      outside      room2
//	  A ──100── B ──100── C
//
// Under the balanced preference A→C costs 200. Under the weather preference on
// a snowy day each outdoor edge is multiplied by 1000, so any indoor detour
// shorter than 200 000 wins; with none available the route is kept and its
// cost reflects the penalty.
//
// Graphs are built once and shared read-only by every request; no locks are
// taken on the routing path.
package wayfinder
