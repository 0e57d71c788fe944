// Package router chains pathfind searches across an ordered list of
// waypoints.
//
// Each consecutive pair of waypoints is one leg. A leg resolves both
// endpoints to candidate node sets, runs a multi-source search between them,
// and appends the result to the route. The first failing leg aborts the
// whole request with a *LegError naming the waypoint at fault; partial
// routes are never returned.
//
// A Router is safe for concurrent use. It shares the read-only graph,
// building index and spatial index across requests and holds no per-request
// state between calls.
package router
