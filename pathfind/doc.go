// Package pathfind provides the weighted shortest-path search used to route
// between sets of graph nodes.
//
// Overview:
//
//   - FindPath runs a multi-source, multi-target Dijkstra: every start node is
//     seeded at distance 0 and the search stops as soon as any end node is
//     popped from the frontier. With non-negative weights that first end node
//     is the one closest to the nearest start.
//   - The frontier is ordered by (distance, node ID) and neighbors are relaxed
//     in ascending ID order, so identical inputs always yield the same path.
//   - Edge cost is distance × factor. Under Balanced the factor is 1. Under
//     Weather the factor is weather.Multiplier for edges that the injected
//     OutdoorFunc classifies as outdoor, and 1 otherwise.
//
// Complexity:
//
//   - Time:  O((V + E) log V) with a binary heap and lazy decrease-key.
//   - Space: O(V + E) for distances, predecessors and stale heap entries.
//
// Only nodes reachable before the first end node is settled are touched; the
// graph is never scanned in full.
//
// Errors (sentinel):
//
//	– ErrInvalidInput        nil graph, empty or unknown start/end nodes, bad preference.
//	– ErrMissingWeatherData  Weather preference without a weather snapshot.
//	– ErrNoPathFound         frontier exhausted before reaching any end node.
//	– ErrInternal            predecessor chain could not be reconstructed.
package pathfind
