// Package waypoint models the stops of a route request and resolves each
// stop to the set of graph nodes a search may start from or end at.
//
// A room resolves to all of its access nodes, so a multi-source search can
// pick the cheapest entrance on its own. A node resolves to itself. A raw
// position resolves to the nearest graph nodes via the spatial index.
package waypoint
